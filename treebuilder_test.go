package gitkit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitkit.dev/gitkit"
	"gitkit.dev/gitkit/testhelpers"
)

func TestTreeBuilderInsertAndWrite(t *testing.T) {
	repo := testhelpers.NewTestRepo(t)
	blob := testhelpers.Must(repo.Repo.CreateBlobFromBuffer([]byte("content\n")))

	builder := gitkit.NewTreeBuilder()
	entry, err := builder.Insert("a.txt", blob.ID(), gitkit.FileModeBlob)
	require.NoError(t, err)
	require.Equal(t, "a.txt", entry.Name())
	require.Equal(t, 1, builder.EntryCount())

	oid, err := builder.Write(repo.Repo)
	require.NoError(t, err)

	tree, err := repo.Repo.LookupTree(oid)
	require.NoError(t, err)
	require.NotNil(t, tree)

	found := tree.EntryByName("a.txt")
	require.NotNil(t, found)
	require.Equal(t, blob.ID(), found.ID())
	require.Equal(t, gitkit.FileModeBlob, found.FileMode())

	t.Run("remove then write drops the entry", func(t *testing.T) {
		require.True(t, builder.Remove("a.txt"))
		require.False(t, builder.Remove("a.txt"), "second remove finds nothing")

		emptyOID, err := builder.Write(repo.Repo)
		require.NoError(t, err)
		emptyTree, err := repo.Repo.LookupTree(emptyOID)
		require.NoError(t, err)
		require.Nil(t, emptyTree.EntryByName("a.txt"))
		require.Equal(t, 0, emptyTree.EntryCount())
	})
}

func TestTreeBuilderValidation(t *testing.T) {
	repo := testhelpers.NewTestRepo(t)
	blob := testhelpers.Must(repo.Repo.CreateBlobFromBuffer([]byte("x\n")))
	builder := gitkit.NewTreeBuilder()

	t.Run("rejects the unset file mode", func(t *testing.T) {
		_, err := builder.Insert("a.txt", blob.ID(), gitkit.FileModeNew)
		var gitErr *gitkit.GitError
		require.ErrorAs(t, err, &gitErr)
		require.Equal(t, gitkit.ClassInvalid, gitErr.Class)
	})

	t.Run("rejects names with separators", func(t *testing.T) {
		_, err := builder.Insert("dir/file", blob.ID(), gitkit.FileModeBlob)
		require.Error(t, err)
	})
}

func TestTreeBuilderFromTree(t *testing.T) {
	repo := testhelpers.NewTestRepo(t)
	blob := testhelpers.Must(repo.Repo.CreateBlobFromBuffer([]byte("seed\n")))

	seed := gitkit.NewTreeBuilder()
	testhelpers.Must(seed.Insert("one.txt", blob.ID(), gitkit.FileModeBlob))
	testhelpers.Must(seed.Insert("two.txt", blob.ID(), gitkit.FileModeBlobExecutable))
	oid := testhelpers.Must(seed.Write(repo.Repo))
	tree := testhelpers.Must(repo.Repo.LookupTree(oid))

	builder := gitkit.NewTreeBuilderFromTree(tree)
	require.Equal(t, 2, builder.EntryCount())

	got := builder.Get("two.txt")
	require.NotNil(t, got)
	require.Equal(t, gitkit.FileModeBlobExecutable, got.FileMode())
	require.Nil(t, builder.Get("absent.txt"))
}

func TestTreeBuilderFilterAndClear(t *testing.T) {
	repo := testhelpers.NewTestRepo(t)
	blob := testhelpers.Must(repo.Repo.CreateBlobFromBuffer([]byte("x\n")))

	builder := gitkit.NewTreeBuilder()
	testhelpers.Must(builder.Insert("keep.txt", blob.ID(), gitkit.FileModeBlob))
	testhelpers.Must(builder.Insert("drop.txt", blob.ID(), gitkit.FileModeBlob))

	builder.Filter(func(entry *gitkit.TreeEntry) bool {
		return entry.Name() == "keep.txt"
	})
	require.Equal(t, 1, builder.EntryCount())
	require.NotNil(t, builder.Get("keep.txt"))
	require.Nil(t, builder.Get("drop.txt"))

	builder.Clear()
	require.Equal(t, 0, builder.EntryCount())
}

func TestTreeBuilderWriteOrdersEntries(t *testing.T) {
	repo := testhelpers.NewTestRepo(t)
	blob := testhelpers.Must(repo.Repo.CreateBlobFromBuffer([]byte("x\n")))

	// Insert a subtree and files whose names straddle it; the written
	// tree must come back in the engine's entry order.
	subBuilder := gitkit.NewTreeBuilder()
	testhelpers.Must(subBuilder.Insert("inner.txt", blob.ID(), gitkit.FileModeBlob))
	subOID := testhelpers.Must(subBuilder.Write(repo.Repo))

	builder := gitkit.NewTreeBuilder()
	testhelpers.Must(builder.Insert("zzz.txt", blob.ID(), gitkit.FileModeBlob))
	testhelpers.Must(builder.Insert("sub", subOID, gitkit.FileModeTree))
	testhelpers.Must(builder.Insert("aaa.txt", blob.ID(), gitkit.FileModeBlob))

	oid := testhelpers.Must(builder.Write(repo.Repo))
	tree := testhelpers.Must(repo.Repo.LookupTree(oid))

	var names []string
	completed, err := tree.WalkPreorder(func(root string, entry *gitkit.TreeEntry) gitkit.WalkMode {
		if root == "" {
			names = append(names, entry.Name())
		}
		return gitkit.WalkSkip
	})
	require.NoError(t, err)
	require.True(t, completed)
	require.Equal(t, []string{"aaa.txt", "sub", "zzz.txt"}, names)
}
