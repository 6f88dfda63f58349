package models

type DataType string

const (
	DataTypeBusiness DataType = "business"
	DataTypePersonal DataType = "personal"
	DataTypeBoth     DataType = "both"
)

type CommStyle string

const (
	CommStyleFormal       CommStyle = "formal"
	CommStyleProfessional CommStyle = "professional"
	CommStyleCasual       CommStyle = "casual"
)

type Scale string

const (
	ScaleMicroHabit Scale = "Micro-Habit"
	ScaleDeepDive   Scale = "Deep Dive"
)

// PracticeCount is the fixed number of practices in every playbook.
// Practice ids always run 1..PracticeCount.
const PracticeCount = 10

// Config captures the user's setup answers. It is immutable once a
// playbook has been generated from it.
type Config struct {
	Company         string    `json:"company"`
	WorkDescription string    `json:"workDescription"`
	WeeklyHours     string    `json:"weeklyHours"`
	DataType        DataType  `json:"dataType"`
	DataAccess      string    `json:"dataAccess"`
	AIModels        string    `json:"aiModels"`
	WorkExperience  int       `json:"workExperience"`
	AIExperience    int       `json:"aiExperience"`
	RecentTask      string    `json:"recentTask,omitempty"`
	TediousWork     string    `json:"tediousWork,omitempty"`
	SkillFocus      []string  `json:"skillFocus,omitempty"`
	CommStyle       CommStyle `json:"commStyle"`
}

// DefaultConfig returns the configuration a fresh setup starts from.
func DefaultConfig() Config {
	return Config{
		DataType:       DataTypeBusiness,
		WorkExperience: 5,
		AIExperience:   5,
		CommStyle:      CommStyleProfessional,
	}
}

type Quote struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// Practice is one generated exercise. Prompt may contain literal
// [PLACEHOLDER] tokens; they are rendered verbatim, never substituted.
type Practice struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Scale    Scale    `json:"scale"`
	Time     string   `json:"time"`
	Skill    string   `json:"skill"`
	Quote    Quote    `json:"quote"`
	Bridge   string   `json:"bridge"`
	Protocol []string `json:"protocol"`
	Prompt   string   `json:"prompt"`
	Takeaway []string `json:"takeaway"`
}

// Coaching is structured feedback generated from a reflection. The four
// fields are always present together; an absent coaching record is a nil
// *Coaching on the Reflection.
type Coaching struct {
	Feedback        string `json:"feedback"`
	PromptTip       string `json:"promptTip"`
	NextChallenge   string `json:"nextChallenge"`
	SkillConnection string `json:"skillConnection"`
}

type Reflection struct {
	Text     string    `json:"text"`
	Coaching *Coaching `json:"coaching,omitempty"`
}

// Playbook is the persisted bundle of one Config and ten Practices plus
// per-practice completion and reflection state. Timestamps are unix
// milliseconds; the id is derived from CreatedAt.
type Playbook struct {
	ID           string             `json:"id"`
	Config       Config             `json:"config"`
	Practices    []Practice         `json:"practices"`
	Completed    map[int]bool       `json:"completed"`
	Reflections  map[int]Reflection `json:"reflections"`
	CreatedAt    int64              `json:"createdAt"`
	LastAccessed int64              `json:"lastAccessed"`
}

// PracticeByID returns the practice with the given id, or nil.
func (p *Playbook) PracticeByID(id int) *Practice {
	for i := range p.Practices {
		if p.Practices[i].ID == id {
			return &p.Practices[i]
		}
	}
	return nil
}

// HasPractice reports whether id names a practice in this playbook.
func (p *Playbook) HasPractice(id int) bool {
	return p.PracticeByID(id) != nil
}

// CompletedCount returns the number of practices marked complete.
func (p *Playbook) CompletedCount() int {
	n := 0
	for _, done := range p.Completed {
		if done {
			n++
		}
	}
	return n
}

// Normalize initializes nil maps and drops completion/reflection entries
// that do not match a practice id, restoring the subset invariant after
// deserialization.
func (p *Playbook) Normalize() {
	if p.Completed == nil {
		p.Completed = make(map[int]bool)
	}
	if p.Reflections == nil {
		p.Reflections = make(map[int]Reflection)
	}
	for id := range p.Completed {
		if !p.HasPractice(id) {
			delete(p.Completed, id)
		}
	}
	for id := range p.Reflections {
		if !p.HasPractice(id) {
			delete(p.Reflections, id)
		}
	}
	if p.LastAccessed < p.CreatedAt {
		p.LastAccessed = p.CreatedAt
	}
}
