package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ekim5sg/plugforge/internal/config"
	founderr "github.com/ekim5sg/plugforge/internal/foundation/errors"
	"github.com/ekim5sg/plugforge/internal/scaffold"
)

// ListCmd implements the 'list' command.
type ListCmd struct{}

func (l *ListCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return err
	}

	plugsDir := filepath.Join(root.Root, cfg.PlugsDir)
	entries, err := os.ReadDir(plugsDir)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No plugs directory yet")
			return nil
		}
		return founderr.FileSystemError("failed to read plugs directory").
			WithCause(err).
			WithContext("path", plugsDir).
			Build()
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		fmt.Println("No plugs found")
		return nil
	}

	for _, name := range names {
		request := scaffold.Request{Name: name}
		marker := " "
		if isScaffold(filepath.Join(plugsDir, name)) {
			marker = "*"
		}
		fmt.Printf("%s %-32s %s\n", marker, name, request.DeployURL(cfg.DeployHost))
	}
	return nil
}

// isScaffold reports whether a directory carries all four generated artifacts.
func isScaffold(dir string) bool {
	for _, rel := range []string{"index.html", "styles.css", "Cargo.toml", filepath.Join(scaffold.SourceDir, "main.rs")} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			return false
		}
	}
	return true
}
