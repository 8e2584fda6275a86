package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ekim5sg/plugforge/internal/config"
	"github.com/ekim5sg/plugforge/internal/gitops"
	"github.com/ekim5sg/plugforge/internal/history"
	"github.com/ekim5sg/plugforge/internal/logfields"
	"github.com/ekim5sg/plugforge/internal/scaffold"
)

// CreateCmd implements the 'create' command.
type CreateCmd struct {
	Name     string `arg:"" help:"Plug identifier (lowercase letters, numbers, hyphens)"`
	Title    string `short:"t" help:"Display title (defaults to the plug name)"`
	Subtitle string `short:"s" help:"Display tagline (defaults to the scaffold placeholder)"`
	Publish  bool   `short:"p" help:"Stage, commit, and push the scaffold after generation"`
}

func (c *CreateCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	generator := &scaffold.Generator{
		Root:       root.Root,
		PlugsDir:   cfg.PlugsDir,
		DeployHost: cfg.DeployHost,
		Publisher:  gitops.NewClient(cfg.Git),
	}

	request := scaffold.Request{
		Name:     c.Name,
		Title:    c.Title,
		Subtitle: c.Subtitle,
		Publish:  c.Publish,
	}

	run := history.NewRun(c.Name, request.EffectiveTitle(), false)
	outcome, genErr := generator.Generate(ctx, request)
	// The journal records what actually happened, not what was requested:
	// a failed publish stays unpublished.
	run.Published = outcome != nil && outcome.Published
	run.Finish(genErr)
	recordRun(ctx, root, cfg, run)

	if genErr != nil {
		if outcome != nil && scaffold.IsPublishError(genErr) {
			// The scaffold survived; only the publish step failed.
			fmt.Printf("Scaffold written to %s (publish failed)\n", outcome.Path)
		}
		return genErr
	}

	fmt.Printf("Scaffold written to %s\n", outcome.Path)
	fmt.Printf("Deploy URL: %s\n", outcome.DeployURL)
	if outcome.Published {
		fmt.Printf("Published as commit %s\n", outcome.Commit)
	}
	return nil
}

// recordRun appends the run to the journal. Journal failures are logged,
// never surfaced: the scaffold result must not depend on local bookkeeping.
func recordRun(ctx context.Context, root *CLI, cfg *config.Config, run history.Run) {
	store, err := history.NewSQLiteStore(filepath.Join(root.Root, cfg.History.Path))
	if err != nil {
		slog.Warn("Could not open run journal", logfields.Error(err))
		return
	}
	defer func() { _ = store.Close() }()

	if err := store.Append(ctx, run); err != nil {
		slog.Warn("Could not record run", logfields.RunID(run.ID), logfields.Error(err))
	}
}
