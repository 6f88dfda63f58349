package validation

import (
	"fmt"
	"strings"

	"github.com/loganmatson/playbook/internal/models"
)

// Violation describes one structural problem in a generated practice or a
// user config. Field is a path like "practices[3].protocol".
type Violation struct {
	Field       string
	Description string
}

// Result collects the violations found by a validation pass.
type Result struct {
	Violations []Violation
}

func (r *Result) add(field, format string, args ...interface{}) {
	r.Violations = append(r.Violations, Violation{
		Field:       field,
		Description: fmt.Sprintf(format, args...),
	})
}

// OK reports whether no violations were found.
func (r *Result) OK() bool {
	return len(r.Violations) == 0
}

// FormatReport returns a human-readable summary of all violations.
func (r *Result) FormatReport() string {
	if r.OK() {
		return "No violations detected."
	}
	var b strings.Builder
	for _, v := range r.Violations {
		fmt.Fprintf(&b, "- %s: %s\n", v.Field, v.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Practice checks a single generated practice against the required shape:
// every field present, protocol and takeaway non-empty, scale one of the
// two enumerated values. The field prefix is used in violation paths so
// PracticeSet can report per-element positions.
func Practice(p models.Practice, prefix string) Result {
	var r Result
	if prefix == "" {
		prefix = "practice"
	}
	if p.ID < 1 || p.ID > models.PracticeCount {
		r.add(prefix+".id", "id must be between 1 and %d, got %d", models.PracticeCount, p.ID)
	}
	if p.Title == "" {
		r.add(prefix+".title", "title is required")
	}
	if p.Scale != models.ScaleMicroHabit && p.Scale != models.ScaleDeepDive {
		r.add(prefix+".scale", "scale must be %q or %q, got %q", models.ScaleMicroHabit, models.ScaleDeepDive, p.Scale)
	}
	if p.Time == "" {
		r.add(prefix+".time", "time is required")
	}
	if p.Skill == "" {
		r.add(prefix+".skill", "skill is required")
	}
	if p.Quote.Text == "" {
		r.add(prefix+".quote.text", "quote text is required")
	}
	if p.Quote.Source == "" {
		r.add(prefix+".quote.source", "quote source is required")
	}
	if p.Bridge == "" {
		r.add(prefix+".bridge", "bridge is required")
	}
	if len(p.Protocol) == 0 {
		r.add(prefix+".protocol", "protocol must contain at least one step")
	}
	for i, step := range p.Protocol {
		if step == "" {
			r.add(fmt.Sprintf("%s.protocol[%d]", prefix, i), "protocol step is empty")
		}
	}
	if p.Prompt == "" {
		r.add(prefix+".prompt", "prompt is required")
	}
	if len(p.Takeaway) == 0 {
		r.add(prefix+".takeaway", "takeaway must contain at least one entry")
	}
	return r
}

// PracticeSet checks a full generated playbook payload: exactly ten
// practices with distinct ids 1..10, each individually well-formed.
func PracticeSet(practices []models.Practice) Result {
	var r Result
	if len(practices) != models.PracticeCount {
		r.add("practices", "expected exactly %d practices, got %d", models.PracticeCount, len(practices))
		return r
	}
	seen := make(map[int]bool, models.PracticeCount)
	for i, p := range practices {
		pr := Practice(p, fmt.Sprintf("practices[%d]", i))
		r.Violations = append(r.Violations, pr.Violations...)
		if seen[p.ID] {
			r.add(fmt.Sprintf("practices[%d].id", i), "duplicate practice id %d", p.ID)
		}
		seen[p.ID] = true
	}
	for id := 1; id <= models.PracticeCount; id++ {
		if !seen[id] {
			r.add("practices", "missing practice id %d", id)
		}
	}
	return r
}

// Config checks the user's setup answers before generation.
func Config(c models.Config) Result {
	var r Result
	if c.Company == "" {
		r.add("config.company", "company/role is required")
	}
	if c.WorkDescription == "" {
		r.add("config.workDescription", "work description is required")
	}
	if c.WeeklyHours == "" {
		r.add("config.weeklyHours", "weekly hours is required")
	}
	switch c.DataType {
	case models.DataTypeBusiness, models.DataTypePersonal, models.DataTypeBoth:
	default:
		r.add("config.dataType", "invalid data type %q", c.DataType)
	}
	if c.WorkExperience < 1 || c.WorkExperience > 10 {
		r.add("config.workExperience", "work experience must be between 1 and 10, got %d", c.WorkExperience)
	}
	if c.AIExperience < 1 || c.AIExperience > 10 {
		r.add("config.aiExperience", "AI experience must be between 1 and 10, got %d", c.AIExperience)
	}
	switch c.CommStyle {
	case models.CommStyleFormal, models.CommStyleProfessional, models.CommStyleCasual:
	default:
		r.add("config.commStyle", "invalid communication style %q", c.CommStyle)
	}
	return r
}
