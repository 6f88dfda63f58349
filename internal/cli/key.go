package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/loganmatson/playbook/internal/keyring"
)

type KeyCmd struct {
	Set   KeySetCmd   `cmd:"" help:"Store the Anthropic API key in the system keyring."`
	Clear KeyClearCmd `cmd:"" help:"Remove the stored API key."`
}

type KeySetCmd struct {
	Key string `arg:"" optional:"" help:"API key. Prompted for securely when omitted."`
}

func (c *KeySetCmd) Run(ctx *Context) error {
	key := c.Key
	if key == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Anthropic API key").
				EchoMode(huh.EchoModePassword).
				Value(&key),
		))
		if err := form.Run(); err != nil {
			return err
		}
	}
	if key == "" {
		return fmt.Errorf("no key provided")
	}
	if err := keyring.SetAPIKey(key); err != nil {
		return err
	}
	fmt.Println("API key stored.")
	return nil
}

type KeyClearCmd struct{}

func (c *KeyClearCmd) Run(ctx *Context) error {
	err := keyring.DeleteAPIKey()
	if errors.Is(err, keyring.ErrNotFound) {
		fmt.Println("No API key was stored.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println("API key removed.")
	return nil
}
