package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gitkit.dev/gitkit"
	"gitkit.dev/gitkit/internal/logging"
)

// newSplog builds the CLI logger, wiring in the optional debug log file
// from GITKIT_LOG_FILE.
func newSplog() *logging.Splog {
	if logFile := os.Getenv("GITKIT_LOG_FILE"); logFile != "" {
		if splog, err := logging.NewSplogWithFile(logFile); err == nil {
			return splog
		}
	}
	return logging.NewSplog()
}

// openRepo discovers the repository containing the working directory
// and opens it.
func openRepo() (*gitkit.Repository, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	gitDir, found := gitkit.Discover(cwd, false, "")
	if !found {
		return nil, fmt.Errorf("not a git repository (or any parent up to mount point)")
	}
	// Discover yields the git directory with a trailing separator; Open
	// wants the repository itself, which for a worktree layout is the
	// parent of .git.
	repoPath := filepath.Clean(gitDir)
	if filepath.Base(repoPath) == ".git" {
		repoPath = filepath.Dir(repoPath)
	}
	repo, err := gitkit.Open(repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	return repo, nil
}

// resolveOID turns a revision argument into an object id. It accepts a
// full hex id, "HEAD", a short branch name, or a canonical reference
// name.
func resolveOID(repo *gitkit.Repository, rev string) (gitkit.OID, error) {
	if oid, err := gitkit.ParseOID(rev); err == nil {
		return oid, nil
	}

	var ref *gitkit.Reference
	var err error
	switch {
	case rev == "HEAD":
		ref, err = repo.Head()
	case strings.HasPrefix(rev, "refs/"):
		ref, err = repo.Lookup(rev)
	default:
		ref, err = repo.LookupBranch(rev, false)
	}
	if err != nil {
		return gitkit.OID{}, err
	}
	if ref == nil {
		return gitkit.OID{}, fmt.Errorf("revision %q not found", rev)
	}
	return ref.Resolve()
}

// resolveCommit resolves a revision argument to a commit.
func resolveCommit(repo *gitkit.Repository, rev string) (*gitkit.Commit, error) {
	oid, err := resolveOID(repo, rev)
	if err != nil {
		return nil, err
	}
	commit, err := repo.LookupCommit(oid)
	if err != nil {
		return nil, err
	}
	if commit == nil {
		return nil, fmt.Errorf("%s is not a commit", oid)
	}
	return commit, nil
}

// shortOID abbreviates an object id for display.
func shortOID(oid gitkit.OID) string {
	return oid.String()[:8]
}

// summaryLine returns the first line of a commit message.
func summaryLine(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		return message[:i]
	}
	return message
}
