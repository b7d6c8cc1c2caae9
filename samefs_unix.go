//go:build !windows

package gitkit

import (
	"os"
	"syscall"
)

// deviceOf returns the filesystem device id of path. ok is false when
// the id cannot be determined, in which case filesystem boundaries are
// not enforced.
func deviceOf(path string) (uint64, bool) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, false
	}
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, false
	}
	return uint64(st.Dev), true
}
