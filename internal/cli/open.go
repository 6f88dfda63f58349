package cli

import "fmt"

type OpenCmd struct {
	ID       string `arg:"" optional:"" help:"Playbook id. Defaults to the newest playbook."`
	Practice string `short:"p" help:"Show one practice in full."`
}

func (c *OpenCmd) Run(ctx *Context) error {
	pb, err := resolvePlaybook(ctx, c.ID)
	if err != nil {
		return err
	}

	if c.Practice != "" {
		pid, err := parsePracticeID(c.Practice)
		if err != nil {
			return err
		}
		practice := pb.PracticeByID(pid)
		if practice == nil {
			return fmt.Errorf("playbook %s has no practice %d", pb.ID, pid)
		}
		printPracticeDetail(pb, practice)
		return nil
	}

	fmt.Printf("Playbook %s (created %s)\n", pb.ID, formatCreated(pb.CreatedAt))
	fmt.Printf("%s\n", pb.Config.Company)
	fmt.Printf("%d of %d practices complete\n\n", pb.CompletedCount(), len(pb.Practices))
	for _, p := range pb.Practices {
		fmt.Println(practiceLine(pb, p))
	}
	fmt.Println("\n* has a saved reflection")
	return nil
}
