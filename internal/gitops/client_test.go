package gitops

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/require"

	appcfg "github.com/ekim5sg/plugforge/internal/config"
	founderr "github.com/ekim5sg/plugforge/internal/foundation/errors"
)

func testClient() *Client {
	return NewClient(appcfg.GitConfig{
		Remote: "origin",
		Branch: "main",
		Author: appcfg.AuthorConfig{Name: "Test", Email: "test@example.com"},
	})
}

func TestEnsureRepositoryIdempotent(t *testing.T) {
	root := t.TempDir()
	client := testClient()

	require.NoError(t, client.EnsureRepository(root))
	require.DirExists(t, filepath.Join(root, ".git"))

	// Second call must not error or reinitialize
	require.NoError(t, client.EnsureRepository(root))
}

func TestEnsureRepositoryUsesConfiguredBranch(t *testing.T) {
	root := t.TempDir()
	client := NewClient(appcfg.GitConfig{
		Remote: "origin",
		Branch: "trunk",
		Author: appcfg.AuthorConfig{Name: "Test", Email: "test@example.com"},
	})
	require.NoError(t, client.EnsureRepository(root))

	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<html></html>"), 0o600))
	require.NoError(t, client.StageAll(root))
	_, err := client.Commit(root, "Add plug scaffold: branch-check")
	require.NoError(t, err)

	repository, err := git.PlainOpen(root)
	require.NoError(t, err)
	head, err := repository.Head()
	require.NoError(t, err)
	require.Equal(t, plumbing.NewBranchReferenceName("trunk"), head.Name())
}

func TestEnsureRepositoryDefaultsToMain(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, NewClient(appcfg.GitConfig{}).EnsureRepository(root))

	repository, err := git.PlainOpen(root)
	require.NoError(t, err)
	head, err := repository.Reference(plumbing.HEAD, false)
	require.NoError(t, err)
	require.Equal(t, plumbing.NewBranchReferenceName("main"), head.Target())
}

func TestEnsureRepositoryWritesIgnoreFile(t *testing.T) {
	root := t.TempDir()
	client := testClient()
	require.NoError(t, client.EnsureRepository(root))

	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	require.NoError(t, err)
	require.Contains(t, string(data), ".plugforge/")
	require.Contains(t, string(data), "plugforge.yaml")
}

func TestEnsureRepositoryKeepsExistingIgnoreFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("custom\n"), 0o600))
	require.NoError(t, testClient().EnsureRepository(root))

	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	require.NoError(t, err)
	require.Equal(t, "custom\n", string(data))
}

func TestStageAllAndCommit(t *testing.T) {
	root := t.TempDir()
	client := testClient()
	require.NoError(t, client.EnsureRepository(root))

	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<html></html>"), 0o600))
	require.NoError(t, client.StageAll(root))

	hash, err := client.Commit(root, "Add plug scaffold: todo-app")
	require.NoError(t, err)
	require.Len(t, hash, 8)
}

func TestCommitNothingStaged(t *testing.T) {
	root := t.TempDir()
	client := testClient()
	require.NoError(t, client.EnsureRepository(root))

	_, err := client.Commit(root, "Add plug scaffold: empty")
	require.Error(t, err)
	require.True(t, founderr.HasCategory(err, founderr.CategoryGit))
}

func TestStageAllWithoutRepository(t *testing.T) {
	err := testClient().StageAll(t.TempDir())
	require.Error(t, err)
	require.True(t, founderr.HasCategory(err, founderr.CategoryGit))
}

func TestPushUnreachableRemote(t *testing.T) {
	root := t.TempDir()
	client := testClient()
	require.NoError(t, client.EnsureRepository(root))

	require.NoError(t, os.WriteFile(filepath.Join(root, "styles.css"), []byte("body{}"), 0o600))
	require.NoError(t, client.StageAll(root))
	_, err := client.Commit(root, "Add plug scaffold: css-only")
	require.NoError(t, err)

	repository, err := git.PlainOpen(root)
	require.NoError(t, err)
	_, err = repository.CreateRemote(&gitcfg.RemoteConfig{
		Name: "origin",
		URLs: []string{filepath.Join(t.TempDir(), "missing-remote")},
	})
	require.NoError(t, err)

	err = client.Push(context.Background(), root)
	require.Error(t, err)
	require.True(t, founderr.HasCategory(err, founderr.CategoryGit))
}

func TestPushWithoutRemote(t *testing.T) {
	root := t.TempDir()
	client := testClient()
	require.NoError(t, client.EnsureRepository(root))

	err := client.Push(context.Background(), root)
	require.Error(t, err)
	require.True(t, founderr.HasCategory(err, founderr.CategoryGit))
}

func TestGetAuthentication(t *testing.T) {
	client := testClient()

	auth, err := client.getAuthentication(&appcfg.AuthConfig{Type: "none"})
	require.NoError(t, err)
	require.Nil(t, auth)

	auth, err = client.getAuthentication(&appcfg.AuthConfig{Type: "token", Token: "abc"})
	require.NoError(t, err)
	require.NotNil(t, auth)

	_, err = client.getAuthentication(&appcfg.AuthConfig{Type: "token"})
	require.Error(t, err)
	require.True(t, founderr.HasCategory(err, founderr.CategoryConfig))

	_, err = client.getAuthentication(&appcfg.AuthConfig{Type: "basic", Username: "u"})
	require.Error(t, err)

	_, err = client.getAuthentication(&appcfg.AuthConfig{Type: "kerberos"})
	require.Error(t, err)
}
