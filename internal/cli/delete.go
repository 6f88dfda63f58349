package cli

import (
	"errors"
	"fmt"

	"github.com/loganmatson/playbook/internal/storage"
)

type DeleteCmd struct {
	ID    string `arg:"" help:"Playbook id to delete."`
	Force bool   `short:"f" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	if !c.Force {
		fmt.Printf("Delete playbook %s? This cannot be undone. [y/N] ", c.ID)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	err := ctx.Store.Delete(c.ID)
	if errors.Is(err, storage.ErrNotFound) {
		// Already gone is the outcome the user wanted.
		fmt.Printf("Playbook %s is already gone.\n", c.ID)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("Deleted playbook %s.\n", c.ID)
	return nil
}
