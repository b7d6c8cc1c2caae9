package cli_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gitkit.dev/gitkit/internal/cli"
	"gitkit.dev/gitkit/testhelpers"
)

// runCLI executes the root command in dir and returns its stdout.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
	root := cli.NewRootCmd("test", "none", "unknown")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), err
}

func TestInitAndDiscoverCommands(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "init")
	require.NoError(t, err)

	out, err := runCLI(t, dir, "discover")
	require.NoError(t, err)
	require.Contains(t, strings.TrimSpace(out), ".git")
}

func TestAddCommitLogCommands(t *testing.T) {
	t.Setenv("GIT_AUTHOR_NAME", "Test Author")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")

	repo := testhelpers.NewTestRepo(t)
	repo.WriteFile("a.txt", "content\n")

	_, err := runCLI(t, repo.Dir, "add", "a.txt")
	require.NoError(t, err)

	_, err = runCLI(t, repo.Dir, "commit", "-m", "first commit")
	require.NoError(t, err)

	out, err := runCLI(t, repo.Dir, "log")
	require.NoError(t, err)
	require.Contains(t, out, "first commit")
	require.Contains(t, out, "Test Author")

	t.Run("commit without a message fails", func(t *testing.T) {
		_, err := runCLI(t, repo.Dir, "commit")
		require.Error(t, err)
	})
}

func TestStatusCommand(t *testing.T) {
	repo := testhelpers.NewTestRepo(t)
	repo.CommitFile("tracked.txt", "x\n", "initial")
	repo.WriteFile("untracked.txt", "y\n")

	out, err := runCLI(t, repo.Dir, "status")
	require.NoError(t, err)
	require.Contains(t, out, "untracked.txt")
	require.NotContains(t, out, "tracked.txt")
}

func TestBranchCommand(t *testing.T) {
	repo := testhelpers.NewTestRepo(t)
	repo.CommitFile("a.txt", "x\n", "initial")

	_, err := runCLI(t, repo.Dir, "branch", "feature")
	require.NoError(t, err)

	out, err := runCLI(t, repo.Dir, "branch")
	require.NoError(t, err)
	require.Contains(t, out, "feature")

	t.Run("delete removes the branch", func(t *testing.T) {
		_, err := runCLI(t, repo.Dir, "branch", "-d", "feature")
		require.NoError(t, err)

		out, err := runCLI(t, repo.Dir, "branch")
		require.NoError(t, err)
		require.NotContains(t, out, "feature")
	})

	t.Run("deleting the current branch fails", func(t *testing.T) {
		head, err := repo.Repo.Head()
		require.NoError(t, err)
		current, ok := head.BranchName()
		require.True(t, ok)

		_, err = runCLI(t, repo.Dir, "branch", "-d", current)
		require.Error(t, err)
	})
}

func TestLsTreeAndCatFileCommands(t *testing.T) {
	repo := testhelpers.NewTestRepo(t)
	repo.WriteFile("a.txt", "hello\n")
	repo.WriteFile("sub/b.txt", "nested\n")
	repo.Stage("a.txt", "sub/b.txt")
	repo.Commit("tree fixture")

	out, err := runCLI(t, repo.Dir, "ls-tree", "HEAD")
	require.NoError(t, err)
	require.Contains(t, out, "100644 blob")
	require.Contains(t, out, "a.txt")
	require.Contains(t, out, "040000 tree")

	t.Run("recursive listing includes nested blobs", func(t *testing.T) {
		out, err := runCLI(t, repo.Dir, "ls-tree", "-r", "HEAD")
		require.NoError(t, err)
		require.Contains(t, out, "sub/b.txt")
	})

	t.Run("cat-file prints type and content", func(t *testing.T) {
		out, err := runCLI(t, repo.Dir, "cat-file", "-t", "HEAD")
		require.NoError(t, err)
		require.Equal(t, "commit", strings.TrimSpace(out))

		hashOut, err := runCLI(t, repo.Dir, "hash-object", "a.txt")
		require.NoError(t, err)
		oid := strings.TrimSpace(hashOut)
		require.Len(t, oid, 40)

		content, err := runCLI(t, repo.Dir, "cat-file", oid)
		require.NoError(t, err)
		require.Equal(t, "hello\n", content)
	})
}
