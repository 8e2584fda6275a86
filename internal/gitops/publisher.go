package gitops

import "context"

// Publisher is the capability interface for the publish step.
//
// Every method operates on root, the directory that is (or becomes) the
// repository worktree. All methods are synchronous and perform no retries.
type Publisher interface {
	// EnsureRepository initializes a repository at root if none exists.
	// Idempotent: an already-initialized repository is left untouched.
	EnsureRepository(root string) error

	// StageAll stages every change under root.
	StageAll(root string) error

	// Commit records staged changes and returns the short commit hash.
	Commit(root, message string) (string, error)

	// Push publishes the current branch to the configured remote.
	Push(ctx context.Context, root string) error
}
