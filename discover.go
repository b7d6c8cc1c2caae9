package gitkit

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// Discover walks parent directories from start until it finds a
// repository, returning the git directory path. ok is false when no
// repository was found before hitting a ceiling directory, a filesystem
// boundary (unless acrossFS is set), or the root. ceilingDirs is a list
// of absolute paths separated by ':' or ';'; the walk stops before
// entering any of them. Discover never reports an error: any failure is
// an absence.
func Discover(start string, acrossFS bool, ceilingDirs string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	ceilings := splitCeilingDirs(ceilingDirs)
	startDev, devOK := deviceOf(dir)

	for {
		if gitDir, found := gitDirAt(dir); found {
			return gitDir + string(filepath.Separator), true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		if _, isCeiling := ceilings[parent]; isCeiling {
			return "", false
		}
		if !acrossFS && devOK {
			if parentDev, ok := deviceOf(parent); ok && parentDev != startDev {
				return "", false
			}
		}
		dir = parent
	}
}

// gitDirAt reports whether dir holds a repository and returns its git
// directory. It recognizes both a worktree layout (a .git subdirectory)
// and a bare layout (HEAD plus objects and refs directly in dir).
func gitDirAt(dir string) (string, bool) {
	dotGit := filepath.Join(dir, git.GitDirName)
	if fi, err := os.Stat(dotGit); err == nil && fi.IsDir() {
		if looksLikeGitDir(dotGit) {
			return dotGit, true
		}
	}
	if looksLikeGitDir(dir) {
		return dir, true
	}
	return "", false
}

func looksLikeGitDir(dir string) bool {
	if fi, err := os.Stat(filepath.Join(dir, "HEAD")); err != nil || fi.IsDir() {
		return false
	}
	if fi, err := os.Stat(filepath.Join(dir, "objects")); err != nil || !fi.IsDir() {
		return false
	}
	fi, err := os.Stat(filepath.Join(dir, "refs"))
	return err == nil && fi.IsDir()
}

func splitCeilingDirs(list string) map[string]struct{} {
	ceilings := make(map[string]struct{})
	for _, dir := range strings.FieldsFunc(list, func(r rune) bool {
		return r == ':' || r == ';'
	}) {
		if abs, err := filepath.Abs(dir); err == nil {
			ceilings[abs] = struct{}{}
		}
	}
	return ceilings
}
