package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/runner"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// leanWindow is how long a lean key press holds. Terminals send no key
// release, so key repeat keeps the hold alive.
const leanWindow = 0.25

// leanHold is the sticky lateral input built from lean key presses.
type leanHold struct {
	dir       float64
	remaining float64
}

func (h *leanHold) press(dir float64) {
	h.dir, h.remaining = dir, leanWindow
}

func (h *leanHold) value() float64 {
	if h.remaining <= 0 {
		return 0
	}
	return h.dir
}

func (h *leanHold) tick(dt float64) {
	if h.remaining > 0 {
		h.remaining -= dt
	}
}

// Model is the Bubble Tea model for playing a run.
type Model struct {
	sim      *runner.Simulation
	screen   *core.Screen
	store    *storage.Store
	config   core.RuntimeConfig
	frame    core.InputFrame
	lean     leanHold
	keys     GameKeyMap
	help     help.Model
	feed     *eventFeed
	logger   *log.Logger
	embedded bool // Back returns to a parent menu instead of quitting

	paused     bool
	quitting   bool
	backToMenu bool
}

// NewModel creates a model running a fresh simulation in the Menu phase.
// store may be nil, in which case nothing is persisted.
func NewModel(settings config.RunSettings, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (Model, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	feed := newEventFeed()

	opts := []runner.Option{
		runner.WithSeed(cfg.Seed),
		runner.WithListener(feed.listen),
	}
	if logger != nil {
		opts = append(opts, runner.WithLogger(logger))
	}
	if store != nil {
		opts = append(opts, runner.WithHighScores(store.Game(storage.DefaultGameID)))
	}
	sim, err := runner.New(settings, opts...)
	if err != nil {
		return Model{}, err
	}

	return Model{
		sim:    sim,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:  store,
		config: cfg,
		frame:  core.NewInputFrame(),
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
		feed:   feed,
		logger: logger,
	}, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		// The bottom row is reserved for the help bar.
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if dir := m.keys.Lean(msg); dir != 0 {
		m.lean.press(dir)
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		if m.sim.Phase() == runner.PhasePlaying && !m.paused {
			return m, nil
		}
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case core.ActionPause:
		if m.sim.Phase() == runner.PhasePlaying {
			m.paused = !m.paused
		}

	case core.ActionNone:

	default:
		m.frame.Set(action)
	}
	return m, nil
}

// handleTick advances the simulation by one fixed step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	dt := m.config.TickDuration()

	switch m.sim.Phase() {
	case runner.PhaseMenu:
		if m.frame.Has(core.ActionConfirm) || m.frame.Has(core.ActionJump) {
			m.startRun(m.sim.Start)
		}

	case runner.PhaseGameOver:
		if m.frame.Has(core.ActionRestart) || m.frame.Has(core.ActionConfirm) {
			m.startRun(m.sim.Restart)
		}

	case runner.PhasePlaying:
		if m.paused {
			break
		}
		in := runner.Input{
			Lateral:   m.lean.value(),
			LaneLeft:  m.frame.Has(core.ActionLaneLeft),
			LaneRight: m.frame.Has(core.ActionLaneRight),
			Jump:      m.frame.Has(core.ActionJump),
			Slide:     m.frame.Has(core.ActionSlide),
		}
		if res := m.sim.Step(dt, in); res.Died {
			m.recordRun()
		}
		m.feed.tick(dt)
	}

	m.lean.tick(dt)
	m.frame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m *Model) startRun(start func() error) {
	if err := start(); err != nil && m.logger != nil {
		m.logger.Warn("cannot start run", "error", err)
	}
	m.paused = false
	m.lean = leanHold{}
}

// recordRun appends the finished run to the history. Best effort.
func (m *Model) recordRun() {
	snap := m.sim.Snapshot()
	if m.logger != nil {
		m.logger.Info("run finished",
			"score", snap.Score.Current,
			"distance", int(snap.Distance),
			"coins", snap.Score.Coins,
		)
	}
	if m.store == nil {
		return
	}
	_, err := m.store.SaveRun(storage.RunRecord{
		Seed:     m.sim.Seed(),
		Score:    snap.Score.Current,
		Distance: snap.Distance,
		Coins:    snap.Score.Coins,
	})
	if err != nil && m.logger != nil {
		m.logger.Warn("cannot save run", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	drawWorld(m.screen, m.sim.Snapshot(), m.sim.Settings(), m.feed, m.paused)

	dir := filepath.Join(os.Getenv("HOME"), ".runner", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("runner_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	drawWorld(m.screen, m.sim.Snapshot(), m.sim.Settings(), m.feed, m.paused)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single session of runs.
func Run(settings config.RunSettings, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model, err := NewModel(settings, store, cfg, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
