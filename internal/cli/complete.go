package cli

import (
	"fmt"

	"github.com/loganmatson/playbook/internal/storage"
)

type CompleteCmd struct {
	Practice string `arg:"" help:"Practice number (1-10)."`
	ID       string `help:"Playbook id. Defaults to the newest playbook."`
	Undo     bool   `help:"Mark the practice as not complete."`
}

func (c *CompleteCmd) Run(ctx *Context) error {
	pb, err := resolvePlaybook(ctx, c.ID)
	if err != nil {
		return err
	}
	pid, err := parsePracticeID(c.Practice)
	if err != nil {
		return err
	}
	if !pb.HasPractice(pid) {
		return fmt.Errorf("playbook %s has no practice %d", pb.ID, pid)
	}

	done := !c.Undo
	err = ctx.Store.ApplyPatch(pb.ID, storage.Patch{
		Completed: map[int]bool{pid: done},
	})
	if err != nil {
		return err
	}

	if done {
		fmt.Printf("Marked practice %d complete.\n", pid)
	} else {
		fmt.Printf("Marked practice %d not complete.\n", pid)
	}
	return nil
}
