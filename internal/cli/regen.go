package cli

import (
	"context"
	"fmt"

	"github.com/loganmatson/playbook/internal/generation"
)

type RegenCmd struct {
	Practice string `arg:"" help:"Practice number (1-10) to regenerate."`
	ID       string `help:"Playbook id. Defaults to the newest playbook."`
}

func (c *RegenCmd) Run(ctx *Context) error {
	pb, err := resolvePlaybook(ctx, c.ID)
	if err != nil {
		return err
	}
	pid, err := parsePracticeID(c.Practice)
	if err != nil {
		return err
	}

	client, err := newCompleter()
	if err != nil {
		return err
	}
	orch := generation.NewOrchestrator(client, ctx.Store)

	fmt.Printf("Regenerating practice %d...\n", pid)
	practice, err := orch.RegeneratePractice(context.Background(), pb, pid)
	if err != nil {
		return err
	}

	fmt.Printf("Replaced practice %d: %s\n", practice.ID, practice.Title)
	return nil
}
