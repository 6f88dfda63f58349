package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/loganmatson/playbook/internal/models"
	"github.com/loganmatson/playbook/internal/storage"
)

type ReflectCmd struct {
	Practice string `arg:"" help:"Practice number (1-10)."`
	Text     string `short:"t" help:"Reflection text. Opens an editor prompt when omitted."`
	ID       string `help:"Playbook id. Defaults to the newest playbook."`
}

func (c *ReflectCmd) Run(ctx *Context) error {
	pb, err := resolvePlaybook(ctx, c.ID)
	if err != nil {
		return err
	}
	pid, err := parsePracticeID(c.Practice)
	if err != nil {
		return err
	}
	practice := pb.PracticeByID(pid)
	if practice == nil {
		return fmt.Errorf("playbook %s has no practice %d", pb.ID, pid)
	}

	text := c.Text
	if strings.TrimSpace(text) == "" {
		existing := pb.Reflections[pid].Text
		text = existing
		form := huh.NewForm(huh.NewGroup(
			huh.NewText().
				Title(fmt.Sprintf("Reflection on \"%s\"", practice.Title)).
				Description("What did you notice? What surprised you?").
				Value(&text),
		))
		if err := form.Run(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("reflection text is empty")
	}

	// Re-saving text keeps any coaching already attached.
	refl := models.Reflection{Text: text}
	if existing, ok := pb.Reflections[pid]; ok {
		refl.Coaching = existing.Coaching
	}
	err = ctx.Store.ApplyPatch(pb.ID, storage.Patch{
		Reflections: map[int]models.Reflection{pid: refl},
	})
	if err != nil {
		return err
	}

	fmt.Printf("Saved reflection for practice %d.\n", pid)
	fmt.Printf("Run 'playbook coach %d' for feedback on it.\n", pid)
	return nil
}
