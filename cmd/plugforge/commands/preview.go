package commands

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ekim5sg/plugforge/internal/config"
	"github.com/ekim5sg/plugforge/internal/preview"
)

// PreviewCmd implements the 'preview' command.
type PreviewCmd struct {
	Port int `short:"p" help:"Listen port (defaults to the configured preview port)"`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return err
	}

	port := p.Port
	if port == 0 {
		port = cfg.Preview.Port
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	server := preview.NewServer(filepath.Join(root.Root, cfg.PlugsDir), port)
	return server.Start(ctx)
}
