package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/loganmatson/playbook/internal/generation"
	"github.com/loganmatson/playbook/internal/models"
	"github.com/loganmatson/playbook/internal/validation"
)

type NewCmd struct {
	Company     string `help:"Job title and company."`
	Work        string `help:"Description of your actual work."`
	Hours       string `help:"Weekly hours to invest (e.g. 3-5)."`
	DataType    string `help:"Data to practice with (personal|business|both)." default:"business"`
	DataAccess  string `help:"Data sources you can access."`
	Models      string `help:"AI models available to you."`
	WorkExp     int    `help:"Work experience level (1-10)." default:"5"`
	AIExp       int    `help:"AI/prompting experience level (1-10)." default:"5"`
	RecentTask  string `help:"A recent specific task (optional)."`
	Tedious     string `help:"Your most tedious/repetitive work (optional)."`
	SkillFocus  string `help:"Comma-separated skills to focus on (optional)."`
	Style       string `help:"Communication style (formal|professional|casual)." default:"professional"`
	Interactive bool   `short:"i" help:"Fill in the configuration interactively."`
}

func (c *NewCmd) Run(ctx *Context) error {
	cfg := models.Config{
		Company:         c.Company,
		WorkDescription: c.Work,
		WeeklyHours:     c.Hours,
		DataType:        models.DataType(c.DataType),
		DataAccess:      c.DataAccess,
		AIModels:        c.Models,
		WorkExperience:  c.WorkExp,
		AIExperience:    c.AIExp,
		RecentTask:      c.RecentTask,
		TediousWork:     c.Tedious,
		SkillFocus:      parseSkillFocus(c.SkillFocus),
		CommStyle:       models.CommStyle(c.Style),
	}

	if c.Interactive || cfg.Company == "" || cfg.WorkDescription == "" || cfg.WeeklyHours == "" {
		var err error
		cfg, err = runSetupForm(cfg)
		if err != nil {
			return err
		}
	}

	if res := validation.Config(cfg); !res.OK() {
		return fmt.Errorf("configuration is incomplete:\n%s", res.FormatReport())
	}

	client, err := newCompleter()
	if err != nil {
		return err
	}
	orch := generation.NewOrchestrator(client, ctx.Store, generation.WithProgress(func(pct int) {
		fmt.Printf("\rGenerating playbook... %d%%", pct)
	}))

	pb, err := orch.GeneratePlaybook(context.Background(), cfg)
	fmt.Println()
	if err != nil {
		return err
	}

	fmt.Printf("Created playbook %s with %d practices.\n", pb.ID, len(pb.Practices))
	fmt.Printf("Run 'playbook open %s' to view it.\n", pb.ID)
	return nil
}

// runSetupForm collects the config interactively, prefilled from any flags
// already given.
func runSetupForm(cfg models.Config) (models.Config, error) {
	dataType := string(cfg.DataType)
	style := string(cfg.CommStyle)
	skillFocus := cfg.SkillFocus
	workExp := cfg.WorkExperience
	aiExp := cfg.AIExperience

	levelOptions := func() []huh.Option[int] {
		opts := make([]huh.Option[int], 0, 10)
		for i := 1; i <= 10; i++ {
			opts = append(opts, huh.NewOption(fmt.Sprintf("%d", i), i))
		}
		return opts
	}

	skillOptions := make([]huh.Option[string], 0, len(models.SkillFocusOptions))
	for _, s := range models.SkillFocusOptions {
		skillOptions = append(skillOptions, huh.NewOption(s, s))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What's your job title and company?").
				Value(&cfg.Company),
			huh.NewText().
				Title("What does your actual work look like day to day?").
				Value(&cfg.WorkDescription),
			huh.NewInput().
				Title("How many hours per week can you invest? (e.g. 3-5)").
				Value(&cfg.WeeklyHours),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What data do you want to practice with?").
				Options(
					huh.NewOption("Business/work data", "business"),
					huh.NewOption("Personal data", "personal"),
					huh.NewOption("Both", "both"),
				).
				Value(&dataType),
			huh.NewInput().
				Title("What data sources can you access?").
				Value(&cfg.DataAccess),
			huh.NewInput().
				Title("Which AI models do you have access to?").
				Value(&cfg.AIModels),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Work experience level").
				Options(levelOptions()...).
				Value(&workExp),
			huh.NewSelect[int]().
				Title("AI/prompting experience level").
				Options(levelOptions()...).
				Value(&aiExp),
			huh.NewSelect[string]().
				Title("Communication style").
				Options(
					huh.NewOption("Formal", "formal"),
					huh.NewOption("Professional", "professional"),
					huh.NewOption("Casual", "casual"),
				).
				Value(&style),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("A recent specific task? (optional)").
				Value(&cfg.RecentTask),
			huh.NewInput().
				Title("Your most tedious or repetitive work? (optional)").
				Value(&cfg.TediousWork),
			huh.NewMultiSelect[string]().
				Title("Skills to focus on (optional)").
				Options(skillOptions...).
				Value(&skillFocus),
		),
	)

	if err := form.Run(); err != nil {
		return cfg, err
	}

	cfg.DataType = models.DataType(dataType)
	cfg.CommStyle = models.CommStyle(style)
	cfg.SkillFocus = skillFocus
	cfg.WorkExperience = workExp
	cfg.AIExperience = aiExp
	return cfg, nil
}
