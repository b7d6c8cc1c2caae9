//go:build windows

package gitkit

// deviceOf is not implemented on Windows; Discover treats every
// directory as being on the same filesystem there.
func deviceOf(path string) (uint64, bool) {
	return 0, false
}
