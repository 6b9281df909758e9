package git

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// Diagnostic text git prints when a branch does not exist. Matched
// case-insensitively against combined subprocess output; pinned by
// TestNotFoundPatterns so a git upgrade that changes the wording is caught.
const (
	cloneMissingBranch = "remote branch %s not found"
	fetchMissingRef    = "couldn't find remote ref %s"
)

// DefaultFreshFor is how long a checkout is considered current after a
// fetch, suppressing further network calls to the same destination.
const DefaultFreshFor = 60 * time.Second

// fetchStampName is the file inside .git whose mtime records the last fetch
// for this checkout. Each destination carries its own stamp, so one
// repository's fetch never suppresses another's.
const fetchStampName = "srcup-last-fetch"

// Options configures a Reconciler.
type Options struct {
	// FreshFor is the fetch-throttle window. Zero means DefaultFreshFor.
	FreshFor time.Duration

	// Timeout bounds each git subprocess. Zero means no deadline beyond
	// the caller's context.
	Timeout time.Duration

	// Runner overrides the subprocess runner. Nil means DefaultRunner.
	Runner Runner
}

// Reconciler drives a destination path toward a clean checkout of a branch
// from a remote. It holds no per-repository state; everything is re-derived
// from disk on each call.
type Reconciler struct {
	freshFor time.Duration
	timeout  time.Duration
	runner   Runner
}

// NewReconciler creates a Reconciler with the given options.
func NewReconciler(opts Options) *Reconciler {
	r := &Reconciler{
		freshFor: opts.FreshFor,
		timeout:  opts.Timeout,
		runner:   opts.Runner,
	}
	if r.freshFor <= 0 {
		r.freshFor = DefaultFreshFor
	}
	if r.runner == nil {
		r.runner = DefaultRunner()
	}
	return r
}

// ValidateBranch rejects branch names this tool cannot safely pass to git:
// empty strings and anything containing whitespace.
func ValidateBranch(branch string) error {
	if branch == "" || strings.IndexFunc(branch, unicode.IsSpace) >= 0 {
		return &InvalidBranchError{Branch: branch}
	}
	return nil
}

// EnforceState brings destPath to a clean checkout of origin/<branch> from
// repoURL: clone when the path is absent, prune-fetch when the last fetch is
// older than the freshness window, then hard-reset to the remote-tracking
// ref. When removeOnError is true and the branch turns out not to exist, the
// destination is removed so a partial checkout is never left behind.
func (r *Reconciler) EnforceState(ctx context.Context, repoURL, destPath, branch string, removeOnError bool) error {
	if err := ValidateBranch(branch); err != nil {
		return err
	}

	err := r.enforce(ctx, repoURL, destPath, branch)

	var bnf *BranchNotFoundError
	if errors.As(err, &bnf) && removeOnError {
		// Best effort; the checkout is already known to be unusable.
		_ = os.RemoveAll(destPath)
	}
	return err
}

func (r *Reconciler) enforce(ctx context.Context, repoURL, destPath, branch string) error {
	info, statErr := os.Stat(destPath)
	switch {
	case statErr != nil || !info.IsDir():
		if err := r.Clone(ctx, repoURL, destPath, branch); err != nil {
			return err
		}
	case r.stale(destPath):
		if err := r.Fetch(ctx, destPath); err != nil {
			return err
		}
	default:
		log.Printf("%s fetched recently; assuming it is current", destPath)
	}

	// Whether cloned, fetched, or skipped, converge on the remote-tracking
	// ref. This is also where a branch deleted upstream is noticed.
	return r.Reset(ctx, repoURL, destPath, branch)
}

// Clone clones repoURL into destPath, restricted to branch. Returns
// BranchNotFoundError when the remote does not have the branch.
func (r *Reconciler) Clone(ctx context.Context, repoURL, destPath, branch string) error {
	if err := ValidateBranch(branch); err != nil {
		return err
	}
	log.Printf("cloning %s %s from upstream", repoURL, branch)
	out, err := r.run(ctx, filepath.Dir(destPath), "clone", "--branch", branch, repoURL, destPath)
	if err != nil {
		if isTimeout(err) {
			return err
		}
		if containsFold(out, fmt.Sprintf(cloneMissingBranch, branch)) {
			return &BranchNotFoundError{Branch: branch, URL: repoURL}
		}
		return &CommandError{Cmd: "git clone", Output: out, Err: err}
	}
	r.markFetched(destPath)
	return nil
}

// Fetch runs a prune-fetch of origin, updating every remote-tracking ref in
// the checkout at destPath.
func (r *Reconciler) Fetch(ctx context.Context, destPath string) error {
	out, err := r.run(ctx, destPath, "fetch", "-p", "origin")
	if err != nil {
		if isTimeout(err) {
			return err
		}
		return &CommandError{Cmd: "git fetch", Output: out, Err: err}
	}
	r.markFetched(destPath)
	return nil
}

// FetchBranch prune-fetches a single branch from origin, for callers that
// want to refresh one remote-tracking ref without a full fetch. Returns
// BranchNotFoundError when origin has no such ref.
func (r *Reconciler) FetchBranch(ctx context.Context, destPath, branch string) error {
	if err := ValidateBranch(branch); err != nil {
		return err
	}
	log.Printf("fetching %s from upstream", branch)
	out, err := r.run(ctx, destPath, "fetch", "-p", "origin", branch)
	if err != nil {
		if isTimeout(err) {
			return err
		}
		if containsFold(out, fmt.Sprintf(fetchMissingRef, branch)) {
			return &BranchNotFoundError{Branch: branch}
		}
		return &CommandError{Cmd: "git fetch", Output: out, Err: err}
	}
	r.markFetched(destPath)
	return nil
}

// Reset hard-resets the working tree at destPath to origin/<branch>. A
// failed reset means the remote-tracking ref does not exist, whether the
// checkout was just cloned, just fetched, or the branch has since been
// deleted upstream, so it is reported as BranchNotFoundError.
func (r *Reconciler) Reset(ctx context.Context, repoURL, destPath, branch string) error {
	if err := ValidateBranch(branch); err != nil {
		return err
	}
	_, err := r.run(ctx, destPath, "reset", "--hard", "origin/"+branch)
	if err != nil {
		if isTimeout(err) {
			return err
		}
		return &BranchNotFoundError{Branch: branch, URL: repoURL}
	}
	return nil
}

func (r *Reconciler) run(ctx context.Context, dir string, args ...string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return r.runner.Exec(ctx, dir, args...)
}

// stale reports whether the checkout's last recorded fetch is older than the
// freshness window. A missing or unreadable stamp counts as stale.
func (r *Reconciler) stale(destPath string) bool {
	when, ok := LastFetched(destPath)
	if !ok {
		return true
	}
	return time.Since(when) > r.freshFor
}

// LastFetched returns the checkout's recorded last fetch time, or false when
// no fetch has been recorded.
func LastFetched(destPath string) (time.Time, bool) {
	info, err := os.Stat(stampPath(destPath))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// markFetched records "now" as the checkout's last fetch time. Best effort:
// a failure only means the next call fetches again.
func (r *Reconciler) markFetched(destPath string) {
	path := stampPath(destPath)
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		log.Printf("warning: could not update fetch stamp %s: %v", path, err)
	}
}

func stampPath(destPath string) string {
	return filepath.Join(destPath, ".git", fetchStampName)
}

func isTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// containsFold reports whether out contains needle, ignoring case. Git has
// changed the capitalization of its "not found" diagnostics across versions.
func containsFold(out, needle string) bool {
	return strings.Contains(strings.ToLower(out), strings.ToLower(needle))
}
