// Package testhelpers provides fixture repositories for gitkit tests.
// Fixtures are built through the library itself rather than by shelling
// out to a git binary, so the tests have no external dependencies.
package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/stretchr/testify/require"

	"gitkit.dev/gitkit"
)

// Must panics if err is not nil, otherwise returns the value. Useful in
// test setup where errors should halt execution immediately.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// TestRepo is a non-bare repository in a temporary directory, removed
// automatically when the test finishes.
type TestRepo struct {
	Dir  string
	Repo *gitkit.Repository

	t     *testing.T
	clock time.Time
}

// NewTestRepo initializes an empty repository in a fresh temp dir.
func NewTestRepo(t *testing.T) *TestRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := gitkit.Init(dir, false)
	require.NoError(t, err, "init fixture repository")
	return &TestRepo{
		Dir:   dir,
		Repo:  repo,
		t:     t,
		clock: time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("", 2*3600)),
	}
}

// Signature returns a deterministic identity. Each call advances the
// fixture clock by one minute so consecutive commits order cleanly.
func (r *TestRepo) Signature() *gitkit.Signature {
	r.clock = r.clock.Add(time.Minute)
	return gitkit.NewSignature("Test Author", "test@example.com", r.clock)
}

// WriteFile creates or overwrites a file relative to the worktree,
// creating parent directories as needed.
func (r *TestRepo) WriteFile(name, content string) {
	r.t.Helper()
	full := filepath.Join(r.Dir, name)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(r.t, os.WriteFile(full, []byte(content), 0o644))
}

// Stage adds files to the index and persists it.
func (r *TestRepo) Stage(paths ...string) {
	r.t.Helper()
	idx := Must(r.Repo.Index())
	for _, path := range paths {
		require.NoError(r.t, idx.AddByPath(path))
	}
	require.NoError(r.t, idx.Write())
}

// Commit writes the current index as a tree and commits it on HEAD,
// returning the new commit's id.
func (r *TestRepo) Commit(message string) gitkit.OID {
	r.t.Helper()
	idx := Must(r.Repo.Index())
	tree := Must(idx.WriteTree())

	sig := r.Signature()
	var parents []*gitkit.Commit
	if head := Must(r.Repo.Head()); head != nil {
		oid := Must(head.Resolve())
		if parent := Must(r.Repo.LookupCommit(oid)); parent != nil {
			parents = append(parents, parent)
		}
	}
	oid, err := r.Repo.CreateCommit("HEAD", sig, sig, "", message, tree, parents...)
	require.NoError(r.t, err, "create fixture commit")
	return oid
}

// CommitFile writes, stages and commits a single file.
func (r *TestRepo) CommitFile(name, content, message string) gitkit.OID {
	r.t.Helper()
	r.WriteFile(name, content)
	r.Stage(name)
	return r.Commit(message)
}

// NewBareRepoDir creates a bare repository in a fresh temp dir using
// the engine's filesystem storage directly, and returns its path.
func NewBareRepoDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	storage := filesystem.NewStorage(osfs.New(dir), cache.NewObjectLRUDefault())
	_, err := gogit.Init(storage, nil)
	require.NoError(t, err, "init bare fixture repository")
	return dir
}
