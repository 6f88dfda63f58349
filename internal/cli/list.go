package cli

import "fmt"

type ListCmd struct{}

func (c *ListCmd) Run(ctx *Context) error {
	playbooks, err := ctx.Store.ListAll()
	if err != nil {
		return err
	}
	if len(playbooks) == 0 {
		fmt.Println("No playbooks yet. Run 'playbook new' to create one.")
		return nil
	}
	for _, pb := range playbooks {
		fmt.Println(summarize(pb))
	}
	return nil
}
