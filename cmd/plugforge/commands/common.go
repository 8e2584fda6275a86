package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"plugforge.yaml"`
	Root    string           `short:"r" help:"Working root containing the plugs directory" default:"."`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Create  CreateCmd  `cmd:"" help:"Scaffold a new plug project directory"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
	List    ListCmd    `cmd:"" help:"List plugs under the configured plugs directory"`
	History HistoryCmd `cmd:"" help:"Show recent scaffold runs"`
	Preview PreviewCmd `cmd:"" help:"Serve the plugs directory locally with change watching"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}
