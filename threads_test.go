package gitkit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitkit.dev/gitkit"
)

func TestThreadsInit(t *testing.T) {
	require.NoError(t, gitkit.ThreadsInit())
	defer gitkit.ThreadsShutdown()

	err := gitkit.ThreadsInit()
	var gitErr *gitkit.GitError
	require.ErrorAs(t, err, &gitErr)
	require.Equal(t, gitkit.ClassThread, gitErr.Class)

	gitkit.ThreadsShutdown()
	require.NoError(t, gitkit.ThreadsInit())
}
