package cli

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/loganmatson/playbook/internal/generation"
)

type PromptCmd struct {
	Project  PromptProjectCmd  `cmd:"" help:"Print a system prompt that describes your setup for an external AI session."`
	Practice PromptPracticeCmd `cmd:"" help:"Print the AI prompt for one practice."`
}

type PromptProjectCmd struct {
	ID   string `help:"Playbook id. Defaults to the newest playbook."`
	Copy bool   `short:"c" help:"Copy the prompt to the clipboard instead of printing it."`
}

func (c *PromptProjectCmd) Run(ctx *Context) error {
	pb, err := resolvePlaybook(ctx, c.ID)
	if err != nil {
		return err
	}
	return emitPrompt(generation.BuildProjectPrompt(pb.Config), c.Copy)
}

type PromptPracticeCmd struct {
	Practice string `arg:"" help:"Practice number (1-10)."`
	ID       string `help:"Playbook id. Defaults to the newest playbook."`
	Copy     bool   `short:"c" help:"Copy the prompt to the clipboard instead of printing it."`
}

func (c *PromptPracticeCmd) Run(ctx *Context) error {
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
	return emitPrompt(practice.Prompt, c.Copy)
}

func emitPrompt(text string, copyToClipboard bool) error {
	if copyToClipboard {
		if err := clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Println("Copied to clipboard.")
		return nil
	}
	fmt.Println(text)
	return nil
}
