package cli

import (
	"encoding/json"
	"fmt"
)

type DebugCmd struct {
	Dump *DebugDumpCmd `cmd:"" help:"Dump a playbook record as JSON."`
}

type DebugDumpCmd struct {
	ID string `arg:"" optional:"" help:"Playbook id. Defaults to the newest playbook."`
}

func (cmd *DebugDumpCmd) Run(ctx *Context) error {
	pb, err := resolvePlaybook(ctx, cmd.ID)
	if err != nil {
		return err
	}

	jsonBytes, err := json.MarshalIndent(pb, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal playbook: %w", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}
