package generation

import (
	"fmt"
	"strings"

	"github.com/loganmatson/playbook/internal/models"
)

// Experience calibration bands. The five bands and their clauses are a
// hard contract: downstream prompt quality depends on every level mapping
// to exactly one fixed instructional clause.
type band struct {
	min, max int
	clause   string
}

var workBands = []band{
	{1, 2, "Explain concepts from first principles, assume zero domain knowledge"},
	{3, 4, "Explain core concepts, basic familiarity assumed"},
	{5, 6, "Working knowledge assumed, focus on application"},
	{7, 8, "Deep expertise assumed, advanced techniques, no hand-holding"},
	{9, 10, "Mastery-level, cutting-edge techniques, strategic implications"},
}

var aiBands = []band{
	{1, 2, "Extremely detailed prompting instructions, step-by-step"},
	{3, 4, "Standard templates with explanations"},
	{5, 6, "Basic prompting familiarity assumed"},
	{7, 8, "Advanced techniques (few-shot, chain-of-thought, structured outputs)"},
	{9, 10, "Expert techniques (meta-prompting, RAG concepts, agentic workflows)"},
}

func clauseFor(bands []band, level int) string {
	for _, b := range bands {
		if level >= b.min && level <= b.max {
			return b.clause
		}
	}
	// Out-of-range levels are rejected by config validation; clamp so a
	// prompt is still well-formed if one slips through.
	if level < bands[0].min {
		return bands[0].clause
	}
	return bands[len(bands)-1].clause
}

// WorkExperienceClause returns the calibration clause for a work
// experience level.
func WorkExperienceClause(level int) string {
	return clauseFor(workBands, level)
}

// AIExperienceClause returns the calibration clause for an AI/prompting
// experience level.
func AIExperienceClause(level int) string {
	return clauseFor(aiBands, level)
}

func bandTable(bands []band) string {
	var b strings.Builder
	for _, bd := range bands {
		fmt.Fprintf(&b, "  * %d-%d: %s\n", bd.min, bd.max, bd.clause)
	}
	return strings.TrimRight(b.String(), "\n")
}

func dataTypeDescription(dt models.DataType) string {
	switch dt {
	case models.DataTypePersonal:
		return "Personal data for self-improvement"
	case models.DataTypeBusiness:
		return "Business/work data for professional practice"
	default:
		return "Both personal and business data"
	}
}

// BuildPlaybookPrompt renders the full-playbook generation prompt. Every
// config field is embedded; optional fields add numbered requirements.
func BuildPlaybookPrompt(cfg models.Config) string {
	var b strings.Builder

	b.WriteString("You are a professional development consultant creating a personalized consulting simulation playbook.\n\n")
	b.WriteString("USER CONFIGURATION:\n")
	fmt.Fprintf(&b, "- Job & Company: %s\n", cfg.Company)
	fmt.Fprintf(&b, "- Actual Work Description: %s\n", cfg.WorkDescription)
	fmt.Fprintf(&b, "- Time Commitment: %s hours per week\n", cfg.WeeklyHours)
	fmt.Fprintf(&b, "- Data Type: %s\n", dataTypeDescription(cfg.DataType))
	fmt.Fprintf(&b, "- Data Access: %s\n", cfg.DataAccess)
	fmt.Fprintf(&b, "- AI Models Available: %s\n", cfg.AIModels)
	fmt.Fprintf(&b, "- Work Experience Level: %d/10\n", cfg.WorkExperience)
	fmt.Fprintf(&b, "- AI/Prompting Experience: %d/10\n", cfg.AIExperience)
	if cfg.RecentTask != "" {
		fmt.Fprintf(&b, "- Recent Specific Task: %s\n", cfg.RecentTask)
	}
	if cfg.TediousWork != "" {
		fmt.Fprintf(&b, "- Most Tedious/Repetitive Work: %s\n", cfg.TediousWork)
	}
	if len(cfg.SkillFocus) > 0 {
		fmt.Fprintf(&b, "- Skills to Focus On: %s\n", strings.Join(cfg.SkillFocus, ", "))
	}

	b.WriteString("\nGenerate 10 professional development practices that:\n")
	b.WriteString("1. Are specific to their actual job responsibilities and work context\n")
	b.WriteString("2. Use the data sources they have available\n")
	b.WriteString("3. Can be completed within their time constraints\n")
	b.WriteString("4. Leverage the AI models they have access to\n")
	b.WriteString("5. Build real consulting skills applicable to their future career\n")
	next := 6
	if cfg.RecentTask != "" {
		fmt.Fprintf(&b, "%d. Include practices related to the recent task they mentioned\n", next)
		next++
	}
	if cfg.TediousWork != "" {
		fmt.Fprintf(&b, "%d. Include practices that address their repetitive/tedious work\n", next)
		next++
	}
	if len(cfg.SkillFocus) > 0 {
		fmt.Fprintf(&b, "%d. Prioritize practices that develop these skills: %s\n", next, strings.Join(cfg.SkillFocus, ", "))
	}

	b.WriteString("\nIMPORTANT: The \"protocol\" section must contain IMMEDIATE, ACTIONABLE steps.\n\n")
	fmt.Fprintf(&b, "CRITICAL CALIBRATION - Work Experience (%d/10):\n%s\n\n", cfg.WorkExperience, bandTable(workBands))
	fmt.Fprintf(&b, "CRITICAL CALIBRATION - AI Experience (%d/10):\n%s\n\n", cfg.AIExperience, bandTable(aiBands))

	b.WriteString(`Each practice must follow this EXACT JSON structure:
{
  "id": number,
  "title": "Practice Name",
  "scale": "Micro-Habit" or "Deep Dive",
  "time": "X min",
  "skill": "Professional Skill Category",
  "quote": {
    "text": "Relevant quote",
    "source": "Attribution"
  },
  "bridge": "2-3 sentences explaining why this matters",
  "protocol": ["step 1", "step 2", "step 3", "step 4"],
  "prompt": "The exact AI prompt with [PLACEHOLDER] markers",
  "takeaway": [
    "Key AI feature that makes this powerful",
    "Something to remember next time",
    "Specific prompting skill highlighted",
    "How to go further with AI"
  ]
}

CRITICAL: Return ONLY a valid JSON array of 10 practices. No preamble, no markdown. Just [ ... ].`)

	return b.String()
}

// BuildRegeneratePrompt renders the single-practice regeneration prompt.
// Construction and calibration follow BuildPlaybookPrompt; the requested
// id is fixed in the prompt so the replacement keeps its slot.
func BuildRegeneratePrompt(cfg models.Config, practiceID int) string {
	var b strings.Builder

	b.WriteString("You are regenerating a SINGLE practice for a professional development playbook.\n\n")
	b.WriteString("USER CONFIGURATION:\n")
	fmt.Fprintf(&b, "- Job & Company: %s\n", cfg.Company)
	fmt.Fprintf(&b, "- Actual Work Description: %s\n", cfg.WorkDescription)
	fmt.Fprintf(&b, "- Time Commitment: %s hours per week\n", cfg.WeeklyHours)
	fmt.Fprintf(&b, "- Data Type: %s\n", dataTypeDescription(cfg.DataType))
	fmt.Fprintf(&b, "- Data Access: %s\n", cfg.DataAccess)
	fmt.Fprintf(&b, "- AI Models Available: %s\n", cfg.AIModels)
	fmt.Fprintf(&b, "- Work Experience Level: %d/10\n", cfg.WorkExperience)
	fmt.Fprintf(&b, "- AI/Prompting Experience: %d/10\n", cfg.AIExperience)

	b.WriteString("\nGenerate ONE professional development practice that:\n")
	b.WriteString("1. Is specific to their actual job responsibilities and work context\n")
	b.WriteString("2. Uses the data sources they have available\n")
	b.WriteString("3. Can be completed within their time constraints\n")
	b.WriteString("4. Leverages the AI models they have access to\n")
	b.WriteString("5. Builds real consulting skills applicable to their future career\n\n")

	fmt.Fprintf(&b, "CRITICAL CALIBRATION - Work Experience (%d/10):\n%s\n\n", cfg.WorkExperience, bandTable(workBands))
	fmt.Fprintf(&b, "CRITICAL CALIBRATION - AI Experience (%d/10):\n%s\n\n", cfg.AIExperience, bandTable(aiBands))

	fmt.Fprintf(&b, `Return this EXACT JSON structure (just the object, no array):
{
  "id": %d,
  "title": "Practice Name",
  "scale": "Micro-Habit" or "Deep Dive",
  "time": "X min",
  "skill": "Professional Skill Category",
  "quote": {
    "text": "Relevant quote",
    "source": "Attribution"
  },
  "bridge": "2-3 sentences explaining why this matters for their career path",
  "protocol": ["step 1", "step 2", "step 3", "step 4"],
  "prompt": "The exact AI prompt they should use, with [PLACEHOLDER] markers for where they insert their data",
  "takeaway": [
    "Key AI feature or technique that makes this practice powerful",
    "Something to remember for next time they do this practice",
    "Specific prompting or automation skill highlighted in this practice",
    "How to go even further with AI on this task"
  ]
}

CRITICAL: Return ONLY valid JSON. No preamble, no explanation, no markdown formatting. Just the JSON object starting with { and ending with }.`, practiceID)

	return b.String()
}

// BuildCoachingPrompt renders the reflection-coaching prompt. The user's
// reflection text is embedded verbatim.
func BuildCoachingPrompt(cfg models.Config, practice models.Practice, reflectionText string) string {
	workClause := "Explain any field-specific concepts. Be encouraging and supportive."
	if cfg.WorkExperience > 7 {
		workClause = "Speak peer-to-peer. Be direct and advanced."
	} else if cfg.WorkExperience > 4 {
		workClause = "Assume working knowledge. Focus on application."
	}
	aiClause := "Keep prompting tips simple and step-by-step."
	if cfg.AIExperience > 7 {
		aiClause = "Use advanced prompting terminology."
	} else if cfg.AIExperience > 4 {
		aiClause = "Reference intermediate techniques freely."
	}

	return fmt.Sprintf(`You are an AI skills coach providing personalized feedback on a practice exercise.

USER CONTEXT:
- Role: %s
- Work Description: %s
- Work Experience: %d/10
- AI/Prompting Experience: %d/10
- Communication Style: %s

PRACTICE THEY JUST COMPLETED:
- Title: %s
- Skill: %s
- Scale: %s (%s)
- Protocol: %s
- Prompt Used: %s

THE USER'S REFLECTION:
"%s"

Based on their reflection, provide coaching feedback in this EXACT JSON format:
{
  "feedback": "2-3 sentences of specific, encouraging feedback on what they observed. Reference their exact words and validate what they learned.",
  "promptTip": "One concrete prompting technique or modification they can try next time based on what they struggled with or found interesting. Be specific — give them the actual words to add to their prompt.",
  "nextChallenge": "A specific follow-up challenge that builds on this practice. Make it actionable and slightly harder than what they just did. Frame it as a single sentence starting with a verb.",
  "skillConnection": "One sentence connecting what they learned to a real professional scenario in their field (%s)."
}

CALIBRATE your language to their experience levels:
- Work Experience %d/10: %s
- AI Experience %d/10: %s

CRITICAL: Return ONLY valid JSON. No preamble, no markdown.`,
		cfg.Company, cfg.WorkDescription, cfg.WorkExperience, cfg.AIExperience, cfg.CommStyle,
		practice.Title, practice.Skill, practice.Scale, practice.Time,
		strings.Join(practice.Protocol, " → "), practice.Prompt,
		reflectionText,
		cfg.WorkDescription,
		cfg.WorkExperience, workClause,
		cfg.AIExperience, aiClause)
}

// BuildProjectPrompt renders the derived system prompt that summarizes a
// config for use in an external AI session. It is generated on demand and
// never persisted.
func BuildProjectPrompt(cfg models.Config) string {
	workLevel := "expert — mastery-level, discuss cutting-edge techniques and strategic implications"
	switch {
	case cfg.WorkExperience <= 3:
		workLevel = "beginner — explain concepts from first principles, assume no domain knowledge"
	case cfg.WorkExperience <= 6:
		workLevel = "intermediate — working knowledge assumed, focus on practical application"
	case cfg.WorkExperience <= 8:
		workLevel = "advanced — deep expertise assumed, use advanced techniques with no hand-holding"
	}

	aiLevel := "expert — familiar with meta-prompting, RAG concepts, and agentic workflows"
	switch {
	case cfg.AIExperience <= 3:
		aiLevel = "beginner — provide detailed, step-by-step prompting instructions"
	case cfg.AIExperience <= 6:
		aiLevel = "intermediate — standard prompting familiarity assumed, explain when introducing new techniques"
	case cfg.AIExperience <= 8:
		aiLevel = "advanced — comfortable with chain-of-thought, few-shot prompting, and structured outputs"
	}

	var toneDesc string
	switch cfg.CommStyle {
	case models.CommStyleFormal:
		toneDesc = "Use formal, structured language throughout. Write with precision and professionalism suitable for executive or client-facing contexts. Avoid colloquialisms and keep tone authoritative."
	case models.CommStyleCasual:
		toneDesc = "Use conversational, relaxed language throughout. Explain concepts naturally as if talking to a peer. Prioritize clarity and engagement over formality. Keep things approachable and direct."
	default:
		toneDesc = "Use clear, professional language that is approachable but business-appropriate. Balance thoroughness with readability. Be direct without being stiff."
	}

	workRule := "Define jargon before using it. Build up from fundamentals."
	if cfg.WorkExperience > 7 {
		workRule = "Speak peer-to-peer. Skip basics entirely."
	} else if cfg.WorkExperience > 4 {
		workRule = "You can assume familiarity with core concepts in their field."
	}
	aiRule := "Walk through prompts step-by-step. Explain why each part of a prompt matters."
	if cfg.AIExperience > 7 {
		aiRule = "Discuss advanced patterns freely — they'll keep up."
	} else if cfg.AIExperience > 4 {
		aiRule = "Reference prompting best practices without over-explaining."
	}

	return fmt.Sprintf(`You are a professional development coach and AI skills trainer.

ABOUT THE USER:
- Role: %s
- Work Description: %s
- Available Data Sources: %s
- AI Tools in Use: %s
- Time Commitment: %s hours per week
- Work Experience Level: %d/10 (%s)
- AI/Prompting Experience Level: %d/10 (%s)

COMMUNICATION STYLE:
%s

YOUR GOAL:
The user is building professional skills through hands-on, AI-driven practice exercises tailored to their actual work. Every response you give should be grounded in their role, data sources, and tools listed above.

CALIBRATION RULES:
- Match technical depth to their work experience level (%d/10). %s
- Match AI/prompting complexity to their AI experience level (%d/10). %s
- Reference their specific data sources and tools when suggesting exercises or examples.
- Keep all guidance actionable and directly applicable to their professional context.
- Respect their time commitment of %s hours/week — scope suggestions accordingly.`,
		cfg.Company, cfg.WorkDescription, cfg.DataAccess, cfg.AIModels, cfg.WeeklyHours,
		cfg.WorkExperience, workLevel,
		cfg.AIExperience, aiLevel,
		toneDesc,
		cfg.WorkExperience, workRule,
		cfg.AIExperience, aiRule,
		cfg.WeeklyHours)
}
