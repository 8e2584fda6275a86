// Package scaffold materializes new plug project directories from fixed
// templates and optionally publishes them through a gitops.Publisher.
//
// Generation is idempotent: re-running with the same request reproduces
// byte-identical artifacts, overwriting whatever is already at the fixed
// paths. Nothing is rolled back on publish failure; the scaffold stays on
// disk.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	founderr "github.com/ekim5sg/plugforge/internal/foundation/errors"
	"github.com/ekim5sg/plugforge/internal/gitops"
	"github.com/ekim5sg/plugforge/internal/logfields"
)

// SourceDir is the nested source subdirectory inside each plug.
const SourceDir = "src"

// Artifact pairs a plug-relative path with its rendered content.
type Artifact struct {
	RelPath string
	Content string
}

// Outcome reports a completed generation.
type Outcome struct {
	Plug      string
	Path      string // relative path of the plug directory, e.g. plugs/todo-app
	DeployURL string
	Artifacts []string
	Published bool
	Commit    string
}

// Generator materializes plug scaffolds under Root/PlugsDir.
//
// Root is threaded explicitly into every filesystem call so the generator
// can run against a temporary directory in tests.
type Generator struct {
	Root       string
	PlugsDir   string
	DeployHost string
	Publisher  gitops.Publisher
}

// Generate runs the scaffold procedure for one request.
//
// Steps: validate, create directories, ensure the root repository exists,
// render and write the four artifacts, then optionally publish. The first
// error aborts the remaining steps of its phase; a publish failure does not
// undo the writes.
func (g *Generator) Generate(ctx context.Context, req Request) (*Outcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	relDir := filepath.Join(g.PlugsDir, req.Name)
	plugDir := filepath.Join(g.Root, relDir)

	slog.Info("Scaffolding plug", logfields.Plug(req.Name), logfields.Path(relDir))

	if err := os.MkdirAll(filepath.Join(plugDir, SourceDir), 0o750); err != nil {
		return nil, founderr.FileSystemError("failed to create plug directory").
			WithCause(err).
			WithContext("path", plugDir).
			Build()
	}

	if err := g.Publisher.EnsureRepository(g.Root); err != nil {
		return nil, err
	}

	artifacts, err := RenderArtifacts(req, g.DeployHost)
	if err != nil {
		return nil, err
	}

	written := make([]string, 0, len(artifacts))
	for _, artifact := range artifacts {
		if err := writeArtifact(plugDir, artifact); err != nil {
			return nil, err
		}
		written = append(written, artifact.RelPath)
		slog.Debug("Artifact written", logfields.Plug(req.Name), logfields.Artifact(artifact.RelPath))
	}

	outcome := &Outcome{
		Plug:      req.Name,
		Path:      relDir,
		DeployURL: req.DeployURL(g.DeployHost),
		Artifacts: written,
	}

	if req.Publish {
		commit, err := g.publish(ctx, req)
		if err != nil {
			// The scaffold stays on disk; the caller sees the publish failure.
			return outcome, err
		}
		outcome.Published = true
		outcome.Commit = commit
	}

	slog.Info("Plug scaffolded", logfields.Plug(req.Name), logfields.Path(relDir))
	return outcome, nil
}

// RenderArtifacts renders all four artifacts for a request without touching
// the filesystem.
func RenderArtifacts(req Request, deployHost string) ([]Artifact, error) {
	data := templateData(req, deployHost)

	indexHTML, err := RenderIndexHTML(data)
	if err != nil {
		return nil, founderr.NewError(founderr.CategoryInternal, "failed to render entry page").
			WithCause(err).
			Build()
	}
	cargoTOML, err := RenderCargoTOML(data)
	if err != nil {
		return nil, founderr.NewError(founderr.CategoryInternal, "failed to render manifest").
			WithCause(err).
			Build()
	}
	mainRS, err := RenderMainRS(data)
	if err != nil {
		return nil, founderr.NewError(founderr.CategoryInternal, "failed to render application stub").
			WithCause(err).
			Build()
	}

	return []Artifact{
		{RelPath: "index.html", Content: indexHTML},
		{RelPath: "styles.css", Content: RenderStylesCSS()},
		{RelPath: "Cargo.toml", Content: cargoTOML},
		{RelPath: filepath.Join(SourceDir, "main.rs"), Content: mainRS},
	}, nil
}

// writeArtifact writes content to a fixed path inside the plug directory,
// overwriting any existing file. The path is validated to stay under the
// plug directory.
func writeArtifact(plugDir string, artifact Artifact) error {
	cleanRel := filepath.Clean(artifact.RelPath)
	if filepath.IsAbs(cleanRel) || strings.HasPrefix(cleanRel, "..") {
		return founderr.FileSystemError("artifact path must be relative to the plug directory").
			WithContext("path", artifact.RelPath).
			Build()
	}

	fullPath := filepath.Join(plugDir, cleanRel)
	rel, err := filepath.Rel(plugDir, fullPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return founderr.FileSystemError("artifact path escapes the plug directory").
			WithContext("path", artifact.RelPath).
			Build()
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return founderr.FileSystemError("failed to create artifact directory").
			WithCause(err).
			WithContext("path", fullPath).
			Build()
	}

	if err := os.WriteFile(fullPath, []byte(artifact.Content), 0o600); err != nil {
		return founderr.FileSystemError("failed to write artifact").
			WithCause(err).
			WithContext("path", fullPath).
			Build()
	}
	return nil
}

// publish stages everything in the repository root, commits, and pushes.
func (g *Generator) publish(ctx context.Context, req Request) (string, error) {
	message := fmt.Sprintf("Add plug scaffold: %s", req.Name)

	if err := g.Publisher.StageAll(g.Root); err != nil {
		return "", err
	}
	commit, err := g.Publisher.Commit(g.Root, message)
	if err != nil {
		return "", err
	}
	if err := g.Publisher.Push(ctx, g.Root); err != nil {
		return "", err
	}
	return commit, nil
}

// IsPublishError reports whether err came from the publish step rather than
// validation or the filesystem.
func IsPublishError(err error) bool {
	if err == nil {
		return false
	}
	var classified *founderr.ClassifiedError
	if errors.As(err, &classified) {
		return classified.IsCategory(founderr.CategoryGit)
	}
	return false
}
