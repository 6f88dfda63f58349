package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/loganmatson/playbook/internal/coaching"
	"github.com/loganmatson/playbook/internal/generation"
	"github.com/loganmatson/playbook/internal/manager"
	"github.com/loganmatson/playbook/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	client, err := newCompleter()
	if err != nil {
		return err
	}

	relay := tui.NewProgressRelay()
	orch := generation.NewOrchestrator(client, ctx.Store, generation.WithProgress(relay.Send))
	mgr := manager.New(ctx.Store, orch)
	engine := coaching.NewEngine(client, ctx.Store)

	p := tea.NewProgram(tui.NewModel(ctx.Store, mgr, engine, orch, relay), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
