package generation

import (
	"strings"
	"testing"

	"github.com/loganmatson/playbook/internal/models"
)

func promptConfig() models.Config {
	return models.Config{
		Company:         "Junior consultant at Acme Strategy",
		WorkDescription: "Market sizing and client deliverables",
		WeeklyHours:     "3-5",
		DataType:        models.DataTypeBusiness,
		DataAccess:      "CRM exports, meeting notes",
		AIModels:        "Claude, ChatGPT",
		WorkExperience:  4,
		AIExperience:    7,
		CommStyle:       models.CommStyleProfessional,
	}
}

func TestWorkExperienceClauseBands(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "Explain concepts from first principles, assume zero domain knowledge"},
		{2, "Explain concepts from first principles, assume zero domain knowledge"},
		{3, "Explain core concepts, basic familiarity assumed"},
		{4, "Explain core concepts, basic familiarity assumed"},
		{5, "Working knowledge assumed, focus on application"},
		{6, "Working knowledge assumed, focus on application"},
		{7, "Deep expertise assumed, advanced techniques, no hand-holding"},
		{8, "Deep expertise assumed, advanced techniques, no hand-holding"},
		{9, "Mastery-level, cutting-edge techniques, strategic implications"},
		{10, "Mastery-level, cutting-edge techniques, strategic implications"},
	}
	for _, tt := range tests {
		if got := WorkExperienceClause(tt.level); got != tt.want {
			t.Errorf("WorkExperienceClause(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestAIExperienceClauseBands(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{2, "Extremely detailed prompting instructions, step-by-step"},
		{4, "Standard templates with explanations"},
		{6, "Basic prompting familiarity assumed"},
		{8, "Advanced techniques (few-shot, chain-of-thought, structured outputs)"},
		{10, "Expert techniques (meta-prompting, RAG concepts, agentic workflows)"},
	}
	for _, tt := range tests {
		if got := AIExperienceClause(tt.level); got != tt.want {
			t.Errorf("AIExperienceClause(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestBuildPlaybookPromptEmbedsConfig(t *testing.T) {
	cfg := promptConfig()
	prompt := BuildPlaybookPrompt(cfg)

	for _, want := range []string{
		cfg.Company,
		cfg.WorkDescription,
		"3-5 hours per week",
		"Business/work data for professional practice",
		cfg.DataAccess,
		cfg.AIModels,
		"Work Experience (4/10)",
		"AI Experience (7/10)",
		"10 professional development practices",
		"ONLY a valid JSON array of 10 practices",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}
}

func TestBuildPlaybookPromptOptionalFields(t *testing.T) {
	cfg := promptConfig()
	base := BuildPlaybookPrompt(cfg)
	for _, absent := range []string{"Recent Specific Task", "Most Tedious/Repetitive Work", "Skills to Focus On"} {
		if strings.Contains(base, absent) {
			t.Errorf("Prompt without optional fields should not contain %q", absent)
		}
	}

	cfg.RecentTask = "Summarized a 40-page industry report"
	cfg.TediousWork = "Weekly status deck formatting"
	cfg.SkillFocus = []string{"Data Analysis & Insights", "Client Communication"}
	full := BuildPlaybookPrompt(cfg)
	for _, want := range []string{
		"Recent Specific Task: Summarized a 40-page industry report",
		"Most Tedious/Repetitive Work: Weekly status deck formatting",
		"Skills to Focus On: Data Analysis & Insights, Client Communication",
		"6. Include practices related to the recent task",
		"7. Include practices that address their repetitive/tedious work",
		"8. Prioritize practices that develop these skills",
	} {
		if !strings.Contains(full, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}
}

func TestBuildPlaybookPromptIncludesAllBands(t *testing.T) {
	prompt := BuildPlaybookPrompt(promptConfig())
	for _, clause := range []string{
		"Explain concepts from first principles",
		"Working knowledge assumed",
		"Mastery-level",
		"Extremely detailed prompting instructions",
		"meta-prompting, RAG concepts, agentic workflows",
	} {
		if !strings.Contains(prompt, clause) {
			t.Errorf("Calibration table missing clause %q", clause)
		}
	}
}

func TestBuildRegeneratePromptPinsID(t *testing.T) {
	prompt := BuildRegeneratePrompt(promptConfig(), 7)
	if !strings.Contains(prompt, `"id": 7`) {
		t.Error("Regenerate prompt should pin the requested practice id")
	}
	if !strings.Contains(prompt, "just the object, no array") {
		t.Error("Regenerate prompt should demand a single object")
	}
	if !strings.Contains(prompt, "CRITICAL CALIBRATION - Work Experience (4/10)") {
		t.Error("Regenerate prompt should carry the same calibration tables")
	}
}

func TestBuildCoachingPromptEmbedsReflection(t *testing.T) {
	cfg := promptConfig()
	practice := models.Practice{
		ID:       3,
		Title:    "Meeting Notes to Action Items",
		Scale:    models.ScaleMicroHabit,
		Time:     "10 min",
		Skill:    "Process Automation",
		Protocol: []string{"Export notes", "Run the prompt", "Review output"},
		Prompt:   "Extract action items from [NOTES]",
	}
	reflection := "The AI caught two follow-ups I had missed entirely."

	prompt := BuildCoachingPrompt(cfg, practice, reflection)
	for _, want := range []string{
		reflection,
		practice.Title,
		"Export notes → Run the prompt → Review output",
		"skillConnection",
		"Work Experience 4/10",
		"AI Experience 7/10",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Coaching prompt missing %q", want)
		}
	}
	// 7 is above the mid band for AI but not above 7.
	if !strings.Contains(prompt, "Reference intermediate techniques freely.") {
		t.Error("AI experience 7 should get the intermediate coaching clause")
	}
	if !strings.Contains(prompt, "Explain any field-specific concepts.") {
		t.Error("Work experience 4 should get the beginner coaching clause")
	}
}

func TestBuildProjectPromptLevels(t *testing.T) {
	cfg := promptConfig()
	cfg.WorkExperience = 2
	cfg.AIExperience = 9
	prompt := BuildProjectPrompt(cfg)

	if !strings.Contains(prompt, "beginner — explain concepts from first principles") {
		t.Error("Work experience 2 should map to the beginner description")
	}
	if !strings.Contains(prompt, "expert — familiar with meta-prompting") {
		t.Error("AI experience 9 should map to the expert description")
	}
	if !strings.Contains(prompt, "approachable but business-appropriate") {
		t.Error("Professional style should map to the balanced tone paragraph")
	}
}

func TestBuildProjectPromptTones(t *testing.T) {
	cfg := promptConfig()

	cfg.CommStyle = models.CommStyleFormal
	if !strings.Contains(BuildProjectPrompt(cfg), "formal, structured language") {
		t.Error("Formal style should map to the formal tone paragraph")
	}

	cfg.CommStyle = models.CommStyleCasual
	if !strings.Contains(BuildProjectPrompt(cfg), "conversational, relaxed language") {
		t.Error("Casual style should map to the casual tone paragraph")
	}
}
