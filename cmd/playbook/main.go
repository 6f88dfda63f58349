package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/loganmatson/playbook/internal/cli"
	"github.com/loganmatson/playbook/internal/constants"
	"github.com/loganmatson/playbook/internal/logger"
	"github.com/loganmatson/playbook/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Storage string `help:"Storage path or URL (file.json, file.db, postgres://, redis://)." default:"~/.config/playbook/playbook.db"`
	Debug   bool   `help:"Enable debug logging."`

	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	New      cli.NewCmd      `cmd:"" help:"Generate a new playbook."`
	List     cli.ListCmd     `cmd:"" help:"List saved playbooks."`
	Open     cli.OpenCmd     `cmd:"" help:"Show a playbook or one of its practices."`
	Delete   cli.DeleteCmd   `cmd:"" help:"Delete a playbook."`
	Complete cli.CompleteCmd `cmd:"" help:"Toggle a practice's completion."`
	Reflect  cli.ReflectCmd  `cmd:"" help:"Save a reflection on a practice."`
	Coach    cli.CoachCmd    `cmd:"" help:"Get coaching feedback on a saved reflection."`
	Regen    cli.RegenCmd    `cmd:"" help:"Regenerate a single practice."`
	Prompt   cli.PromptCmd   `cmd:"" help:"Print or copy AI prompts."`
	Key      cli.KeyCmd      `cmd:"" help:"Manage the stored Anthropic API key."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks on storage and configuration."`
	DebugCmd cli.DebugCmd    `cmd:"" name:"debug" help:"Inspection helpers for troubleshooting."`
}

// newGateway picks the storage backend from the config value: URLs route
// to Postgres or Redis, a .json path to the flat-file store, anything
// else to SQLite.
func newGateway(config string) (storage.Gateway, error) {
	switch {
	case strings.HasPrefix(config, "postgres://"), strings.HasPrefix(config, "postgresql://"):
		return storage.NewPostgresGateway(config), nil
	case strings.HasPrefix(config, "redis://"), strings.HasPrefix(config, "rediss://"):
		return storage.NewRedisGateway(config)
	case strings.HasSuffix(config, ".json"):
		return storage.NewFileGateway(config), nil
	default:
		return storage.NewSQLiteGateway(config), nil
	}
}

// expandHome resolves a leading ~ in file paths. URL-style storage values
// pass through untouched; kong's path type would mangle them.
func expandHome(p string) string {
	if strings.Contains(p, "://") || !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

// logDir picks where log files go. URL-backed storage has no directory to
// sit next to, so logs fall back to the default config dir.
func logDir(storagePath string) string {
	if strings.Contains(storagePath, "://") {
		return filepath.Dir(expandHome(constants.DefaultConfigPath))
	}
	return filepath.Dir(storagePath)
}

// run holds the deferred store/gateway teardown so it fires on the error
// path too; os.Exit in main would skip it and strand queued writes.
func run(ctx *kong.Context) error {
	gw, err := newGateway(CLI.Storage)
	if err != nil {
		return err
	}
	if err := gw.Init(); err != nil {
		return err
	}
	defer gw.Close()

	store := storage.NewPlaybookStore(gw)
	defer store.Close()

	return ctx.Run(&cli.Context{Store: store})
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("AI practice playbooks built around your actual work"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)
	CLI.Storage = expandHome(CLI.Storage)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: logDir(CLI.Storage),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
