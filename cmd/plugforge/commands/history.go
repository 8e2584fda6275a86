package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ekim5sg/plugforge/internal/config"
	"github.com/ekim5sg/plugforge/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int `short:"n" help:"Maximum number of runs to show" default:"20"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return err
	}

	store, err := history.NewSQLiteStore(filepath.Join(root.Root, cfg.History.Path))
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No scaffold runs recorded")
		return nil
	}

	for _, run := range runs {
		published := ""
		if run.Published {
			published = " published"
		}
		line := fmt.Sprintf("%s  %-7s %-24s%s", run.StartedAt.Format("2006-01-02 15:04:05"), run.Status, run.Plug, published)
		if run.Error != "" {
			line += "  (" + run.Error + ")"
		}
		fmt.Println(line)
	}
	return nil
}
