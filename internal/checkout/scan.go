package checkout

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/srcup/srcup/internal/git"
)

// State describes one materialized checkout found under the base path.
type State struct {
	Artifact   string
	Branch     string
	DestPath   string
	HeadCommit string
	LastFetch  time.Time
	HasFetch   bool
}

// FetchAge returns how long ago the checkout last fetched, or -1 when no
// fetch has been recorded.
func (s State) FetchAge() time.Duration {
	if !s.HasFetch {
		return -1
	}
	return time.Since(s.LastFetch)
}

// List scans the base path for materialized checkouts of configured
// artifacts. Directories that match no configured prefix are ignored.
func (m *Manager) List(ctx context.Context) ([]State, error) {
	entries, err := os.ReadDir(m.cfg.BasePath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var states []State
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		for _, art := range m.cfg.Artifacts {
			prefix := art.DestPrefix() + "_"
			if !strings.HasPrefix(name, prefix) {
				continue
			}
			dest := filepath.Join(m.cfg.BasePath, name)
			state := State{
				Artifact:   art.Name,
				Branch:     strings.TrimPrefix(name, prefix),
				DestPath:   dest,
				HeadCommit: headCommit(ctx, dest),
			}
			state.LastFetch, state.HasFetch = git.LastFetched(dest)
			states = append(states, state)
			break
		}
	}

	sort.Slice(states, func(i, j int) bool {
		if states[i].Artifact != states[j].Artifact {
			return states[i].Artifact < states[j].Artifact
		}
		return states[i].Branch < states[j].Branch
	})
	return states, nil
}
