package models

// SkillColor pairs a card background with an accent color for a skill tag.
// The tag is presentation metadata only; unknown skills fall back to
// DefaultSkillColor.
type SkillColor struct {
	Background string
	Accent     string
}

var DefaultSkillColor = SkillColor{Background: "#1A2230", Accent: "#e94560"}

var SkillColors = map[string]SkillColor{
	"Enterprise Risk Management (ERM)":                  {Background: "#182030", Accent: "#e94560"},
	"SOC 1, 2 & 3 Reporting":                            {Background: "#161E2E", Accent: "#4a8ab8"},
	"IT Risk Assessment / Technology Risk":              {Background: "#171F2F", Accent: "#c7354a"},
	"Data Analytics & Business Intelligence":            {Background: "#141C2C", Accent: "#4a9aba"},
	"Internal Controls over Financial Reporting (ICFR)": {Background: "#182030", Accent: "#c84b31"},
	"IT General Controls — Change Management":           {Background: "#161E2D", Accent: "#c7354a"},
	"Assurance & Analytical Procedures":                 {Background: "#172030", Accent: "#4a9aba"},
	"IT General Controls — Logical Access":              {Background: "#171F2E", Accent: "#7040b0"},
	"Audit Planning — Materiality Determination":        {Background: "#141C2B", Accent: "#5a8ec8"},
	"Quality Control & Engagement Wrap-Up":              {Background: "#171E2D", Accent: "#7b2d8e"},
}

// ColorForSkill returns the color pair for a skill tag.
func ColorForSkill(skill string) SkillColor {
	if c, ok := SkillColors[skill]; ok {
		return c
	}
	return DefaultSkillColor
}

// SkillFocusOptions are the selectable skills on the customize screen.
var SkillFocusOptions = []string{
	"Data Analysis & Interpretation",
	"Report Writing & Documentation",
	"Client Communication",
	"Strategic Decision-Making",
	"Time Management & Prioritization",
	"Technical Problem-Solving",
	"Presentation & Storytelling",
	"Process Optimization",
	"Risk Assessment",
	"Cross-functional Collaboration",
}

// CommStyleDescriptions label the communication style choices.
var CommStyleDescriptions = map[CommStyle]string{
	CommStyleFormal:       "Structured, precise, and professional — suited for executive or client-facing work",
	CommStyleProfessional: "Clear and business-appropriate, but approachable — the default for most work contexts",
	CommStyleCasual:       "Conversational and relaxed — great for learning, brainstorming, and personal projects",
}

// MotivationalQuotes are shown while a playbook is generating.
var MotivationalQuotes = []Quote{
	{Text: "The expert in anything was once a beginner.", Source: "Helen Hayes"},
	{Text: "The only way to do great work is to love what you do.", Source: "Steve Jobs"},
	{Text: "Success is not final, failure is not fatal: it is the courage to continue that counts.", Source: "Winston Churchill"},
	{Text: "The future depends on what you do today.", Source: "Mahatma Gandhi"},
	{Text: "Don't watch the clock; do what it does. Keep going.", Source: "Sam Levenson"},
	{Text: "The secret of getting ahead is getting started.", Source: "Mark Twain"},
	{Text: "It always seems impossible until it's done.", Source: "Nelson Mandela"},
	{Text: "The way to get started is to quit talking and begin doing.", Source: "Walt Disney"},
	{Text: "Learning is not attained by chance, it must be sought for with ardor and diligence.", Source: "Abigail Adams"},
	{Text: "The beautiful thing about learning is that no one can take it away from you.", Source: "B.B. King"},
	{Text: "An investment in knowledge pays the best interest.", Source: "Benjamin Franklin"},
	{Text: "The capacity to learn is a gift; the ability to learn is a skill; the willingness to learn is a choice.", Source: "Brian Herbert"},
	{Text: "Success is stumbling from failure to failure with no loss of enthusiasm.", Source: "Winston Churchill"},
	{Text: "The only person who is educated is the one who has learned how to learn and change.", Source: "Carl Rogers"},
	{Text: "What we learn with pleasure we never forget.", Source: "Alfred Mercier"},
	{Text: "I am always doing what I cannot do yet, in order to learn how to do it.", Source: "Vincent van Gogh"},
	{Text: "The more that you read, the more things you will know. The more that you learn, the more places you'll go.", Source: "Dr. Seuss"},
	{Text: "Change is the end result of all true learning.", Source: "Leo Buscaglia"},
	{Text: "Learning never exhausts the mind.", Source: "Leonardo da Vinci"},
	{Text: "The mind is not a vessel to be filled, but a fire to be kindled.", Source: "Plutarch"},
}
