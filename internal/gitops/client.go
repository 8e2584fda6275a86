package gitops

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	appcfg "github.com/ekim5sg/plugforge/internal/config"
	founderr "github.com/ekim5sg/plugforge/internal/foundation/errors"
	"github.com/ekim5sg/plugforge/internal/logfields"
)

// Client is the go-git backed Publisher implementation.
type Client struct {
	cfg appcfg.GitConfig
}

// NewClient creates a new git client with the given publish configuration.
func NewClient(cfg appcfg.GitConfig) *Client { return &Client{cfg: cfg} }

// localIgnores keeps plugforge bookkeeping out of published commits: the
// run journal, the config file (which may carry auth material), and .env.
const localIgnores = ".plugforge/\nplugforge.yaml\n.env\n"

// EnsureRepository initializes a repository at root if none exists. The
// initial branch is the configured branch name.
func (c *Client) EnsureRepository(root string) error {
	branch := c.branch()
	_, err := git.PlainInitWithOptions(root, &git.PlainInitOptions{
		InitOptions: git.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName(branch),
		},
	})
	if err == nil {
		slog.Info("Initialized repository", logfields.Path(root), slog.String("branch", branch))
		return c.writeIgnoreFile(root)
	}
	if err == git.ErrRepositoryAlreadyExists {
		slog.Debug("Repository already initialized", logfields.Path(root))
		return nil
	}
	return founderr.GitError("failed to initialize repository").
		WithCause(err).
		WithContext("path", root).
		Build()
}

// writeIgnoreFile seeds a fresh repository with the local-only ignore
// rules. A pre-existing ignore file is left untouched.
func (c *Client) writeIgnoreFile(root string) error {
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, []byte(localIgnores), 0o600); err != nil {
		return founderr.GitError("failed to write ignore file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}

// StageAll stages every change under root.
func (c *Client) StageAll(root string) error {
	worktree, err := c.worktree(root)
	if err != nil {
		return err
	}
	if err := worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return founderr.GitError("failed to stage changes").
			WithCause(err).
			WithContext("path", root).
			Build()
	}
	return nil
}

// Commit records staged changes and returns the short commit hash.
func (c *Client) Commit(root, message string) (string, error) {
	worktree, err := c.worktree(root)
	if err != nil {
		return "", err
	}

	author := &object.Signature{
		Name:  c.cfg.Author.Name,
		Email: c.cfg.Author.Email,
		When:  time.Now(),
	}
	if author.Name == "" {
		author.Name = "plugforge"
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{Author: author})
	if err != nil {
		return "", founderr.GitError("failed to create commit").
			WithCause(err).
			WithContext("path", root).
			Build()
	}

	short := hash.String()[:8]
	slog.Info("Commit created", slog.String("commit", short), logfields.Path(root))
	return short, nil
}

// Push publishes the current branch to the configured remote.
func (c *Client) Push(ctx context.Context, root string) error {
	repository, err := git.PlainOpen(root)
	if err != nil {
		return founderr.GitError("failed to open repository").
			WithCause(err).
			WithContext("path", root).
			Build()
	}

	branch := c.branch()
	pushOptions := &git.PushOptions{
		RemoteName: c.cfg.Remote,
		RefSpecs: []gitcfg.RefSpec{
			gitcfg.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch)),
		},
	}
	if c.cfg.Auth != nil {
		auth, err := c.getAuthentication(c.cfg.Auth)
		if err != nil {
			return err
		}
		pushOptions.Auth = auth
	}

	err = repository.PushContext(ctx, pushOptions)
	if err == git.NoErrAlreadyUpToDate {
		slog.Info("Remote already up to date", logfields.Remote(c.cfg.Remote))
		return nil
	}
	if err != nil {
		return founderr.GitError("failed to push to remote").
			WithCause(err).
			WithContext("remote", c.cfg.Remote).
			Build()
	}

	slog.Info("Pushed to remote", logfields.Remote(c.cfg.Remote))
	return nil
}

// branch returns the configured branch name, falling back to the default.
func (c *Client) branch() string {
	if c.cfg.Branch == "" {
		return appcfg.DefaultBranch
	}
	return c.cfg.Branch
}

func (c *Client) worktree(root string) (*git.Worktree, error) {
	repository, err := git.PlainOpen(root)
	if err != nil {
		return nil, founderr.GitError("failed to open repository").
			WithCause(err).
			WithContext("path", root).
			Build()
	}
	worktree, err := repository.Worktree()
	if err != nil {
		return nil, founderr.GitError("failed to get worktree").
			WithCause(err).
			WithContext("path", root).
			Build()
	}
	return worktree, nil
}

// getAuthentication creates authentication based on config.
func (c *Client) getAuthentication(auth *appcfg.AuthConfig) (transport.AuthMethod, error) {
	switch auth.Type {
	case "none", "":
		return nil, nil // No authentication needed for public remotes

	case "ssh":
		keyPath := auth.KeyPath
		if keyPath == "" {
			keyPath = filepath.Join(os.Getenv("HOME"), ".ssh", "id_rsa")
		}
		publicKeys, err := ssh.NewPublicKeysFromFile("git", keyPath, "")
		if err != nil {
			return nil, founderr.GitError("failed to load SSH key").
				WithCause(err).
				WithContext("key_path", keyPath).
				Build()
		}
		return publicKeys, nil

	case "token":
		if auth.Token == "" {
			return nil, founderr.ConfigError("token authentication requires a token").Build()
		}
		return &http.BasicAuth{
			Username: "token", // GitHub/GitLab use "token" as username
			Password: auth.Token,
		}, nil

	case "basic":
		if auth.Username == "" || auth.Password == "" {
			return nil, founderr.ConfigError("basic authentication requires username and password").Build()
		}
		return &http.BasicAuth{
			Username: auth.Username,
			Password: auth.Password,
		}, nil

	default:
		return nil, founderr.ConfigError("unsupported authentication type").
			WithContext("type", auth.Type).
			Build()
	}
}
