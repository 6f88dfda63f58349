package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/loganmatson/playbook/internal/models"
)

func levelOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, 10)
	for i := 1; i <= 10; i++ {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%d", i), i))
	}
	return opts
}

// newSetupForm builds the required-answers form, prefilled from cfg.
func newSetupForm(cfg models.Config) (*huh.Form, *SetupFormModel) {
	fm := &SetupFormModel{
		Company:  cfg.Company,
		Work:     cfg.WorkDescription,
		Hours:    cfg.WeeklyHours,
		DataType: string(cfg.DataType),
		Access:   cfg.DataAccess,
		Models:   cfg.AIModels,
		WorkExp:  cfg.WorkExperience,
		AIExp:    cfg.AIExperience,
		Style:    string(cfg.CommStyle),
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What's your job title and company?").
				Value(&fm.Company),
			huh.NewText().
				Title("What does your actual work look like day to day?").
				Value(&fm.Work),
			huh.NewInput().
				Title("How many hours per week can you invest? (e.g. 3-5)").
				Value(&fm.Hours),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What data do you want to practice with?").
				Options(
					huh.NewOption("Business/work data", "business"),
					huh.NewOption("Personal data", "personal"),
					huh.NewOption("Both", "both"),
				).
				Value(&fm.DataType),
			huh.NewInput().
				Title("What data sources can you access?").
				Value(&fm.Access),
			huh.NewInput().
				Title("Which AI models do you have access to?").
				Value(&fm.Models),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Work experience level").
				Options(levelOptions()...).
				Value(&fm.WorkExp),
			huh.NewSelect[int]().
				Title("AI/prompting experience level").
				Options(levelOptions()...).
				Value(&fm.AIExp),
			huh.NewSelect[string]().
				Title("Communication style").
				Description(commStyleHint()).
				Options(
					huh.NewOption("Formal", "formal"),
					huh.NewOption("Professional", "professional"),
					huh.NewOption("Casual", "casual"),
				).
				Value(&fm.Style),
		),
	)
	return form, fm
}

func commStyleHint() string {
	return models.CommStyleDescriptions[models.CommStyleProfessional]
}

// newCustomizeForm builds the optional-answers form.
func newCustomizeForm(cfg models.Config) (*huh.Form, *CustomizeFormModel) {
	fm := &CustomizeFormModel{
		RecentTask: cfg.RecentTask,
		Tedious:    cfg.TediousWork,
		SkillFocus: cfg.SkillFocus,
	}

	skillOptions := make([]huh.Option[string], 0, len(models.SkillFocusOptions))
	for _, s := range models.SkillFocusOptions {
		skillOptions = append(skillOptions, huh.NewOption(s, s))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("A recent specific task? (optional)").
				Value(&fm.RecentTask),
			huh.NewInput().
				Title("Your most tedious or repetitive work? (optional)").
				Value(&fm.Tedious),
			huh.NewMultiSelect[string]().
				Title("Skills to focus on (optional)").
				Options(skillOptions...).
				Value(&fm.SkillFocus),
		),
	)
	return form, fm
}

// applySetup folds the form answers back into a config.
func applySetup(cfg models.Config, fm *SetupFormModel) models.Config {
	cfg.Company = fm.Company
	cfg.WorkDescription = fm.Work
	cfg.WeeklyHours = fm.Hours
	cfg.DataType = models.DataType(fm.DataType)
	cfg.DataAccess = fm.Access
	cfg.AIModels = fm.Models
	cfg.WorkExperience = fm.WorkExp
	cfg.AIExperience = fm.AIExp
	cfg.CommStyle = models.CommStyle(fm.Style)
	return cfg
}

// applyCustomize folds the optional answers back into a config.
func applyCustomize(cfg models.Config, fm *CustomizeFormModel) models.Config {
	cfg.RecentTask = fm.RecentTask
	cfg.TediousWork = fm.Tedious
	cfg.SkillFocus = fm.SkillFocus
	return cfg
}

// newReflectForm builds the reflection editor for one practice.
func newReflectForm(title string, draft *string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title(fmt.Sprintf("Reflection on \"%s\"", title)).
			Description("What did you notice? What surprised you?").
			Value(draft),
	))
}
