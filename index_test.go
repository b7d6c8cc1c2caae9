package gitkit_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gitkit.dev/gitkit"
	"gitkit.dev/gitkit/testhelpers"
)

func TestIndexAddByPath(t *testing.T) {
	repo := testhelpers.NewTestRepo(t)
	repo.WriteFile("a.txt", "content\n")

	idx, err := repo.Repo.Index()
	require.NoError(t, err)
	require.Equal(t, 0, idx.EntryCount())

	require.NoError(t, idx.AddByPath("a.txt"))
	require.Equal(t, 1, idx.EntryCount())

	t.Run("re-adding updates in place", func(t *testing.T) {
		repo.WriteFile("a.txt", "changed\n")
		require.NoError(t, idx.AddByPath("a.txt"))
		require.Equal(t, 1, idx.EntryCount())
	})

	t.Run("missing file is an index error", func(t *testing.T) {
		err := idx.AddByPath("absent.txt")
		var gitErr *gitkit.GitError
		require.ErrorAs(t, err, &gitErr)
		require.Equal(t, gitkit.ClassIndex, gitErr.Class)
	})

	t.Run("symlinks stage the link target", func(t *testing.T) {
		require.NoError(t, os.Symlink("a.txt", filepath.Join(repo.Dir, "link")))
		require.NoError(t, idx.AddByPath("link"))
		require.Equal(t, 2, idx.EntryCount())
	})
}

func TestIndexRemoveByPath(t *testing.T) {
	repo := testhelpers.NewTestRepo(t)
	repo.WriteFile("a.txt", "x\n")

	idx, err := repo.Repo.Index()
	require.NoError(t, err)
	require.NoError(t, idx.AddByPath("a.txt"))

	require.NoError(t, idx.RemoveByPath("a.txt"))
	require.Equal(t, 0, idx.EntryCount())

	t.Run("removing an unstaged path is an error", func(t *testing.T) {
		err := idx.RemoveByPath("a.txt")
		var gitErr *gitkit.GitError
		require.ErrorAs(t, err, &gitErr)
		require.Equal(t, gitkit.ClassIndex, gitErr.Class)
	})
}

func TestIndexWritePersists(t *testing.T) {
	repo := testhelpers.NewTestRepo(t)
	repo.WriteFile("a.txt", "x\n")

	idx, err := repo.Repo.Index()
	require.NoError(t, err)
	require.NoError(t, idx.AddByPath("a.txt"))
	require.NoError(t, idx.Write())

	reloaded, err := repo.Repo.Index()
	require.NoError(t, err)
	require.Equal(t, 1, reloaded.EntryCount())
}

func TestIndexWriteTree(t *testing.T) {
	repo := testhelpers.NewTestRepo(t)
	repo.WriteFile("top.txt", "top\n")
	repo.WriteFile("dir/nested.txt", "nested\n")
	repo.WriteFile("dir/deep/leaf.txt", "leaf\n")
	repo.Stage("top.txt", "dir/nested.txt", "dir/deep/leaf.txt")

	idx, err := repo.Repo.Index()
	require.NoError(t, err)
	tree, err := idx.WriteTree()
	require.NoError(t, err)

	require.NotNil(t, tree.EntryByName("top.txt"))
	require.NotNil(t, tree.EntryByName("dir"))
	require.NotNil(t, tree.EntryByPath("dir/nested.txt"))
	require.NotNil(t, tree.EntryByPath("dir/deep/leaf.txt"))

	dir := tree.EntryByName("dir")
	require.Equal(t, gitkit.FileModeTree, dir.FileMode())
}

func TestIndexReadTree(t *testing.T) {
	repo := testhelpers.NewTestRepo(t)
	oid := repo.CommitFile("committed.txt", "x\n", "initial")

	commit, err := repo.Repo.LookupCommit(oid)
	require.NoError(t, err)
	tree, err := commit.Tree()
	require.NoError(t, err)

	idx, err := repo.Repo.Index()
	require.NoError(t, err)

	// Stage something extra, then reset the index to the tree.
	repo.WriteFile("staged.txt", "y\n")
	require.NoError(t, idx.AddByPath("staged.txt"))
	require.Equal(t, 2, idx.EntryCount())

	require.NoError(t, idx.ReadTree(tree))
	require.Equal(t, 1, idx.EntryCount())

	rebuilt, err := idx.WriteTree()
	require.NoError(t, err)
	require.Equal(t, tree.ID(), rebuilt.ID())
}

func TestIndexClear(t *testing.T) {
	repo := testhelpers.NewTestRepo(t)
	repo.WriteFile("a.txt", "x\n")

	idx, err := repo.Repo.Index()
	require.NoError(t, err)
	require.NoError(t, idx.AddByPath("a.txt"))

	idx.Clear()
	require.Equal(t, 0, idx.EntryCount())
	require.False(t, idx.HasConflicts())
}

func TestIndexOnBareRepository(t *testing.T) {
	dir := testhelpers.NewBareRepoDir(t)
	repo, err := gitkit.Open(dir)
	require.NoError(t, err)

	idx, err := repo.Index()
	require.NoError(t, err)
	err = idx.AddByPath("a.txt")
	var gitErr *gitkit.GitError
	require.ErrorAs(t, err, &gitErr)
	require.Equal(t, gitkit.ClassIndex, gitErr.Class)
}
