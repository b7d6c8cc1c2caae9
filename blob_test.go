package gitkit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitkit.dev/gitkit/testhelpers"
)

func TestBlobContent(t *testing.T) {
	repo := testhelpers.NewTestRepo(t)
	content := []byte("hello, blob\n")
	blob, err := repo.Repo.CreateBlobFromBuffer(content)
	require.NoError(t, err)

	require.Equal(t, int64(len(content)), blob.Size())

	var got []byte
	err = blob.RawContent(func(data []byte) error {
		got = append(got, data...)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, content, got)
}

func TestBlobIsBinary(t *testing.T) {
	repo := testhelpers.NewTestRepo(t)

	t.Run("text content", func(t *testing.T) {
		blob, err := repo.Repo.CreateBlobFromBuffer([]byte("plain text, no surprises\n"))
		require.NoError(t, err)
		bin, err := blob.IsBinary()
		require.NoError(t, err)
		require.False(t, bin)
	})

	t.Run("content with NUL bytes", func(t *testing.T) {
		blob, err := repo.Repo.CreateBlobFromBuffer([]byte{0x89, 'P', 'N', 'G', 0x00, 0x01, 0x02})
		require.NoError(t, err)
		bin, err := blob.IsBinary()
		require.NoError(t, err)
		require.True(t, bin)
	})

	t.Run("empty blob", func(t *testing.T) {
		blob, err := repo.Repo.CreateBlobFromBuffer(nil)
		require.NoError(t, err)
		bin, err := blob.IsBinary()
		require.NoError(t, err)
		require.False(t, bin)

		require.Equal(t, int64(0), blob.Size())
	})
}
