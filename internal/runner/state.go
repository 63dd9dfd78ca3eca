package runner

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-runner/internal/config"
)

// ErrInvalidTransition is returned when a phase change is not allowed
// from the current phase.
var ErrInvalidTransition = errors.New("runner: invalid state transition")

// Phase is the global run phase.
type Phase int

const (
	PhaseMenu     Phase = iota // Initial phase, nothing advances
	PhasePlaying               // Distance, speed and clock advance
	PhaseGameOver              // Terminal until Restart
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "Menu"
	case PhasePlaying:
		return "Playing"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// SpeedSource supplies the multiplier applied on top of base speed.
type SpeedSource interface {
	SpeedMultiplier() float64
}

// RunState is the single source of truth for phase, distance and speed.
// Other components read it; only the transition methods change the phase.
type RunState struct {
	settings config.PlayerSettings
	speed    SpeedSource
	bus      *Bus

	phase     Phase
	distance  float64
	baseSpeed float64
	clock     float64
}

// NewRunState creates a run state in the Menu phase.
func NewRunState(settings config.PlayerSettings, speed SpeedSource, bus *Bus) *RunState {
	rs := &RunState{
		settings: settings,
		speed:    speed,
		bus:      bus,
	}
	rs.reset()
	return rs
}

func (rs *RunState) reset() {
	rs.distance = 0
	rs.baseSpeed = rs.settings.RunSpeed
	rs.clock = 0
}

// StartGame moves Menu -> Playing with a fresh distance and speed.
func (rs *RunState) StartGame() error {
	if rs.phase != PhaseMenu {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, rs.phase, PhasePlaying)
	}
	rs.reset()
	rs.transition(PhasePlaying)
	return nil
}

// ReportFailure moves Playing -> GameOver. It returns false, and does
// nothing, when the run is not Playing, so repeated reports are harmless.
func (rs *RunState) ReportFailure() bool {
	if rs.phase != PhasePlaying {
		return false
	}
	rs.transition(PhaseGameOver)
	return true
}

// Restart moves GameOver -> Playing with a full reset.
func (rs *RunState) Restart() error {
	if rs.phase != PhaseGameOver {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, rs.phase, PhasePlaying)
	}
	rs.reset()
	rs.transition(PhasePlaying)
	return nil
}

func (rs *RunState) transition(to Phase) {
	from := rs.phase
	rs.phase = to
	rs.bus.Publish(StateChanged{From: from, To: to})
}

// Advance moves the run forward by dt seconds. No-op outside Playing.
func (rs *RunState) Advance(dt float64) {
	if rs.phase != PhasePlaying || dt <= 0 {
		return
	}
	rs.distance += rs.EffectiveSpeed() * dt
	rs.baseSpeed = rs.settings.BaseSpeed(rs.distance)
	rs.clock += dt
}

// EffectiveSpeed returns base speed times the active speed multiplier.
func (rs *RunState) EffectiveSpeed() float64 {
	if rs.speed == nil {
		return rs.baseSpeed
	}
	return rs.baseSpeed * rs.speed.SpeedMultiplier()
}

// Phase returns the current phase.
func (rs *RunState) Phase() Phase { return rs.phase }

// Distance returns the distance traveled in this run.
func (rs *RunState) Distance() float64 { return rs.distance }

// BaseSpeed returns the forward speed before power-up multipliers.
func (rs *RunState) BaseSpeed() float64 { return rs.baseSpeed }

// Clock returns seconds spent Playing in this run.
func (rs *RunState) Clock() float64 { return rs.clock }
