package gitkit_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"gitkit.dev/gitkit"
)

func TestGitError(t *testing.T) {
	t.Run("carries class and message", func(t *testing.T) {
		_, err := gitkit.Open(t.TempDir())
		require.Error(t, err)

		var gitErr *gitkit.GitError
		require.ErrorAs(t, err, &gitErr)
		require.Equal(t, gitkit.ClassRepository, gitErr.Class)
		require.NotEmpty(t, gitErr.Message)
		require.Contains(t, gitErr.Error(), "repository")
	})

	t.Run("survives wrapping", func(t *testing.T) {
		_, err := gitkit.Open(t.TempDir())
		require.Error(t, err)
		wrapped := fmt.Errorf("outer context: %w", err)

		var gitErr *gitkit.GitError
		require.True(t, errors.As(wrapped, &gitErr))
		require.Equal(t, gitkit.ClassRepository, gitErr.Class)
	})
}

func TestErrorClassString(t *testing.T) {
	require.Equal(t, "repository", gitkit.ClassRepository.String())
	require.Equal(t, "index", gitkit.ClassIndex.String())
	require.Equal(t, "odb", gitkit.ClassODB.String())
}
