package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srcup/srcup/internal/checkout"
)

func staticRefresh(states []checkout.State, err error) RefreshFunc {
	return func(context.Context) ([]checkout.State, error) {
		return states, err
	}
}

func TestView_Empty(t *testing.T) {
	m := NewModel(staticRefresh(nil, nil), time.Minute)

	_, _ = m.Update(RefreshedMsg{})
	view := m.View()

	assert.Contains(t, view, "srcup checkouts")
	assert.Contains(t, view, "no checkouts materialized")
	assert.Contains(t, view, "q quit")
}

func TestView_States(t *testing.T) {
	states := []checkout.State{
		{
			Artifact:   "suite",
			Branch:     "main",
			HeadCommit: "abc1234",
			LastFetch:  time.Now().Add(-10 * time.Second),
			HasFetch:   true,
		},
		{
			Artifact: "tooling",
			Branch:   "wip",
			HasFetch: false,
		},
	}

	m := NewModel(staticRefresh(states, nil), time.Minute)
	_, _ = m.Update(RefreshedMsg{States: states})

	view := m.View()
	assert.Contains(t, view, "suite")
	assert.Contains(t, view, "main")
	assert.Contains(t, view, "abc1234")
	assert.Contains(t, view, "s ago")
	assert.Contains(t, view, "never")
}

func TestView_Error(t *testing.T) {
	m := NewModel(staticRefresh(nil, errors.New("scan failed")), time.Minute)

	msg := refreshCmd(m.refresh)()
	refreshed, ok := msg.(RefreshedMsg)
	require.True(t, ok)
	_, _ = m.Update(refreshed)

	assert.Contains(t, m.View(), "scan failed")
}

func TestUpdate_Quit(t *testing.T) {
	m := NewModel(staticRefresh(nil, nil), time.Minute)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.True(t, m.Quitting)
	assert.Equal(t, "", m.View())
}

func TestFormatAge(t *testing.T) {
	assert.Equal(t, "never", formatAge(-1))
	assert.Equal(t, "5s ago", formatAge(5*time.Second))
	assert.Equal(t, "3m ago", formatAge(3*time.Minute+2*time.Second))
	assert.True(t, strings.HasSuffix(formatAge(26*time.Hour), "h ago"))
}
