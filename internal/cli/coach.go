package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/loganmatson/playbook/internal/coaching"
)

type CoachCmd struct {
	Practice string `arg:"" help:"Practice number (1-10)."`
	ID       string `help:"Playbook id. Defaults to the newest playbook."`
}

func (c *CoachCmd) Run(ctx *Context) error {
	pb, err := resolvePlaybook(ctx, c.ID)
	if err != nil {
		return err
	}
	pid, err := parsePracticeID(c.Practice)
	if err != nil {
		return err
	}
	refl, ok := pb.Reflections[pid]
	if !ok || strings.TrimSpace(refl.Text) == "" {
		return fmt.Errorf("no reflection saved for practice %d: run 'playbook reflect %d' first", pid, pid)
	}

	client, err := newCompleter()
	if err != nil {
		return err
	}
	engine := coaching.NewEngine(client, ctx.Store)

	fmt.Println("Generating coaching feedback...")
	res, err := engine.Coach(context.Background(), pb, pid, refl.Text)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n", res.Coaching.Feedback)
	if res.Degraded {
		return nil
	}
	if res.Coaching.PromptTip != "" {
		fmt.Printf("\nPrompt tip: %s\n", res.Coaching.PromptTip)
	}
	if res.Coaching.NextChallenge != "" {
		fmt.Printf("Next challenge: %s\n", res.Coaching.NextChallenge)
	}
	if res.Coaching.SkillConnection != "" {
		fmt.Printf("Skill connection: %s\n", res.Coaching.SkillConnection)
	}
	return nil
}
