package gitkit

import (
	"sync"
)

var threadState struct {
	mu          sync.Mutex
	initialized bool
}

// ThreadsInit prepares process-wide state for using the library from
// multiple goroutines. It must be called before any other library call
// when handles are shared across goroutines; single-goroutine programs
// may omit it. It is not reentrant: initializing twice without an
// intervening ThreadsShutdown is an error.
func ThreadsInit() error {
	threadState.mu.Lock()
	defer threadState.mu.Unlock()
	if threadState.initialized {
		return newGitError(ClassThread, "library already initialized")
	}
	threadState.initialized = true
	return nil
}

// ThreadsShutdown releases the process-wide state set up by
// ThreadsInit. All repositories and derived handles must be out of use
// before calling it.
func ThreadsShutdown() {
	threadState.mu.Lock()
	defer threadState.mu.Unlock()
	threadState.initialized = false
}
