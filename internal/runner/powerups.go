package runner

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
)

// PowerUpKind is the closed set of pickups.
type PowerUpKind int

const (
	PowerUpMagnet      PowerUpKind = iota // Pulls nearby coins toward the player
	PowerUpShield                         // Absorbs one hit; a charge, not a timer
	PowerUpDoubleScore                    // Coins count twice
	PowerUpSpeedBoost                     // Multiplies forward speed
	powerUpKindCount
)

// timedKinds lists the timer-based kinds in display order.
var timedKinds = [...]PowerUpKind{PowerUpMagnet, PowerUpDoubleScore, PowerUpSpeedBoost}

// String returns the name of the power-up kind.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpMagnet:
		return "Magnet"
	case PowerUpShield:
		return "Shield"
	case PowerUpDoubleScore:
		return "x2"
	case PowerUpSpeedBoost:
		return "Boost"
	default:
		return "?"
	}
}

// Glyph returns the display character for the pickup.
func (k PowerUpKind) Glyph() rune {
	switch k {
	case PowerUpMagnet:
		return 'M'
	case PowerUpShield:
		return 'S'
	case PowerUpDoubleScore:
		return '2'
	case PowerUpSpeedBoost:
		return '>'
	default:
		return '?'
	}
}

// Duration returns the configured duration of a timed kind; 0 for Shield.
func (k PowerUpKind) Duration(s config.PowerUpSettings) float64 {
	switch k {
	case PowerUpMagnet:
		return s.MagnetDuration
	case PowerUpDoubleScore:
		return s.DoubleScoreDuration
	case PowerUpSpeedBoost:
		return s.SpeedBoostDuration
	default:
		return 0
	}
}

// ActiveEffect is a timed power-up with its remaining seconds.
type ActiveEffect struct {
	Kind      PowerUpKind
	Remaining float64
}

// PowerUpEffects tracks timed buffs and the shield charge.
// Re-acquiring an active kind resets its timer; durations never stack.
type PowerUpEffects struct {
	settings config.PowerUpSettings
	bus      *Bus
	logger   *log.Logger

	timers map[PowerUpKind]float64
	shield bool
}

// NewPowerUpEffects creates an empty effect set.
func NewPowerUpEffects(settings config.PowerUpSettings, bus *Bus, logger *log.Logger) *PowerUpEffects {
	return &PowerUpEffects{
		settings: settings,
		bus:      bus,
		logger:   orDiscard(logger),
		timers:   make(map[PowerUpKind]float64, len(timedKinds)),
	}
}

// Activate applies a pickup.
func (pe *PowerUpEffects) Activate(kind PowerUpKind) {
	if kind == PowerUpShield {
		pe.shield = true
		pe.logger.Debug("power-up activated", "kind", kind)
		pe.bus.Publish(PowerUpActivated{Kind: kind})
		return
	}

	d := kind.Duration(pe.settings)
	if d <= 0 {
		return
	}
	pe.timers[kind] = d
	pe.logger.Debug("power-up activated", "kind", kind, "duration", d)
	pe.bus.Publish(PowerUpActivated{Kind: kind, Duration: d})
}

// Tick decays every timer by dt and removes the ones that ran out.
// Returns the kinds that expired this tick.
func (pe *PowerUpEffects) Tick(dt float64) []PowerUpKind {
	var expired []PowerUpKind
	for _, kind := range timedKinds {
		remaining, ok := pe.timers[kind]
		if !ok {
			continue
		}
		remaining -= dt
		if remaining > 0 {
			pe.timers[kind] = remaining
			continue
		}
		delete(pe.timers, kind)
		expired = append(expired, kind)
		pe.logger.Debug("power-up expired", "kind", kind)
		pe.bus.Publish(PowerUpExpired{Kind: kind})
	}
	return expired
}

// ConsumeShield spends the shield charge. Returns false if there was none.
func (pe *PowerUpEffects) ConsumeShield() bool {
	if !pe.shield {
		return false
	}
	pe.shield = false
	pe.logger.Debug("shield consumed")
	pe.bus.Publish(PowerUpExpired{Kind: PowerUpShield})
	return true
}

// Reset clears every effect without publishing expiry events.
func (pe *PowerUpEffects) Reset() {
	clear(pe.timers)
	pe.shield = false
}

func (pe *PowerUpEffects) has(kind PowerUpKind) bool {
	_, ok := pe.timers[kind]
	return ok
}

// HasMagnet reports whether the magnet is active.
func (pe *PowerUpEffects) HasMagnet() bool { return pe.has(PowerUpMagnet) }

// HasDoubleScore reports whether double score is active.
func (pe *PowerUpEffects) HasDoubleScore() bool { return pe.has(PowerUpDoubleScore) }

// HasSpeedBoost reports whether the speed boost is active.
func (pe *PowerUpEffects) HasSpeedBoost() bool { return pe.has(PowerUpSpeedBoost) }

// HasShield reports whether a shield charge is held.
func (pe *PowerUpEffects) HasShield() bool { return pe.shield }

// SpeedMultiplier returns the boost multiplier, or 1.
func (pe *PowerUpEffects) SpeedMultiplier() float64 {
	if pe.HasSpeedBoost() {
		return pe.settings.SpeedBoostMultiplier
	}
	return 1
}

// ScoreMultiplier returns 2 while double score is active, else 1.
func (pe *PowerUpEffects) ScoreMultiplier() int {
	if pe.HasDoubleScore() {
		return 2
	}
	return 1
}

// RemainingTime returns seconds left for a timed kind, 0 when inactive.
func (pe *PowerUpEffects) RemainingTime(kind PowerUpKind) float64 {
	return pe.timers[kind]
}

// Active lists running timers in a stable order.
func (pe *PowerUpEffects) Active() []ActiveEffect {
	active := make([]ActiveEffect, 0, len(pe.timers))
	for _, kind := range timedKinds {
		if remaining, ok := pe.timers[kind]; ok {
			active = append(active, ActiveEffect{Kind: kind, Remaining: remaining})
		}
	}
	return active
}
