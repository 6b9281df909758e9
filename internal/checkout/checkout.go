// Package checkout composes the advisory lock and the repository reconciler
// into per-artifact materialization: "make the test-suite checkout for
// branch X exist and be current, exactly once at a time."
package checkout

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/srcup/srcup/internal/config"
	"github.com/srcup/srcup/internal/git"
	"github.com/srcup/srcup/internal/lockfile"
	"github.com/srcup/srcup/internal/registry"
)

// Manager materializes configured artifacts under the base path.
type Manager struct {
	cfg *config.Config
	rec *git.Reconciler
	reg *registry.Registry // optional; nil disables history recording

	// KeepOnError leaves a broken destination in place for inspection
	// instead of removing it when the branch turns out not to exist.
	KeepOnError bool
}

// NewManager creates a Manager for the given configuration. reg may be nil.
func NewManager(cfg *config.Config, reg *registry.Registry) *Manager {
	return &Manager{
		cfg: cfg,
		reg: reg,
		rec: git.NewReconciler(git.Options{
			FreshFor: cfg.FreshForDuration(),
			Timeout:  cfg.CommandTimeoutDuration(),
		}),
	}
}

// DestPath returns the destination directory for a prefix and branch:
// <base>/<prefix>_<branch>.
func DestPath(basePath, prefix, branch string) string {
	return strings.TrimSuffix(basePath, "/") + "/" + prefix + "_" + branch
}

// LockPath returns the lock file guarding a destination path.
func LockPath(destPath string) string {
	return strings.TrimSuffix(destPath, "/") + ".lock"
}

// Materialize brings the named artifact's checkout for branch up to date and
// returns its destination path. Reconciliation of a given destination is
// serialized by the advisory lock; different destinations proceed in
// parallel.
func (m *Manager) Materialize(ctx context.Context, name, branch string) (string, error) {
	art, ok := m.cfg.FindArtifact(name)
	if !ok {
		return "", fmt.Errorf("artifact %q is not configured", name)
	}
	return m.materialize(ctx, art, branch)
}

// MaterializeAll materializes every configured artifact for branch
// concurrently. Returns artifact name to destination path on success.
func (m *Manager) MaterializeAll(ctx context.Context, branch string) (map[string]string, error) {
	if len(m.cfg.Artifacts) == 0 {
		return nil, fmt.Errorf("no artifacts configured")
	}

	var mu sync.Mutex
	dests := make(map[string]string, len(m.cfg.Artifacts))

	g, ctx := errgroup.WithContext(ctx)
	for _, art := range m.cfg.Artifacts {
		art := art
		g.Go(func() error {
			dest, err := m.materialize(ctx, art, branch)
			if err != nil {
				return fmt.Errorf("%s: %w", art.Name, err)
			}
			mu.Lock()
			dests[art.Name] = dest
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dests, nil
}

func (m *Manager) materialize(ctx context.Context, art config.Artifact, branch string) (string, error) {
	if err := git.ValidateBranch(branch); err != nil {
		return "", err
	}
	if err := os.MkdirAll(m.cfg.BasePath, 0o755); err != nil {
		return "", fmt.Errorf("create base path: %w", err)
	}

	dest := DestPath(m.cfg.BasePath, art.DestPrefix(), branch)

	lock := lockfile.Noop()
	if !m.cfg.DisableLock {
		var err error
		lock, err = lockfile.Acquire(ctx, LockPath(dest))
		if err != nil {
			return "", err
		}
	}
	defer func() {
		if err := lock.Release(); err != nil {
			log.Printf("warning: %v", err)
		}
	}()

	started := time.Now()
	err := m.rec.EnforceState(ctx, m.cfg.RepoURL(art), dest, branch, !m.KeepOnError)
	if err == nil && art.Bootstrap {
		m.runBootstrap(ctx, dest)
	}
	m.record(art, branch, dest, started, err)

	if err != nil {
		return "", err
	}
	return dest, nil
}

// record persists the outcome to the registry. Failures are logged only;
// history is advisory.
func (m *Manager) record(art config.Artifact, branch, dest string, started time.Time, recErr error) {
	if m.reg == nil {
		return
	}

	rec := &registry.Record{
		Artifact:   art.Name,
		Branch:     branch,
		DestPath:   dest,
		Status:     registry.StatusOK,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}
	if recErr != nil {
		rec.Status = registry.StatusFailed
		rec.Error = recErr.Error()
	} else {
		rec.HeadCommit = headCommit(context.Background(), dest)
	}

	if err := m.reg.Add(rec); err != nil {
		log.Printf("warning: could not record reconcile for %s: %v", dest, err)
	}
}

// headCommit returns the short HEAD hash of the checkout, or empty.
func headCommit(ctx context.Context, dest string) string {
	out, err := git.DefaultRunner().Exec(ctx, dest, "rev-parse", "--short", "HEAD")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}
