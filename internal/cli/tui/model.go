package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/srcup/srcup/internal/checkout"
)

// refreshInterval is how often the watch view rescans the base path.
const refreshInterval = 2 * time.Second

// RefreshFunc supplies the current checkout states for each refresh.
type RefreshFunc func(ctx context.Context) ([]checkout.State, error)

// Model is the bubbletea model for `srcup watch`
type Model struct {
	// Configuration
	FreshFor time.Duration
	Styles   Styles

	// State
	refresh  RefreshFunc
	states   []checkout.State
	err      error
	lastScan time.Time
	Width    int
	Height   int

	// Control
	Quitting bool
}

// NewModel creates a new watch model
func NewModel(refresh RefreshFunc, freshFor time.Duration) *Model {
	return &Model{
		FreshFor: freshFor,
		Styles:   DefaultStyles(),
		refresh:  refresh,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		refreshCmd(m.refresh),
		tickCmd(),
	)
}

// TickMsg triggers a periodic rescan
type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// RefreshedMsg carries the result of a rescan
type RefreshedMsg struct {
	States []checkout.State
	Err    error
}

func refreshCmd(refresh RefreshFunc) tea.Cmd {
	return func() tea.Msg {
		states, err := refresh(context.Background())
		return RefreshedMsg{States: states, Err: err}
	}
}
