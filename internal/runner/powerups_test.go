package runner

import (
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
)

func newTestEffects() (*PowerUpEffects, *recorder) {
	rec := &recorder{}
	bus := NewBus()
	bus.Subscribe(rec.listen)
	return NewPowerUpEffects(config.DefaultRunSettings().PowerUps, bus, nil), rec
}

func TestSpeedBoostRefreshDoesNotStack(t *testing.T) {
	pe, _ := newTestEffects()

	pe.Activate(PowerUpSpeedBoost)
	pe.Tick(1)
	if got := pe.RemainingTime(PowerUpSpeedBoost); got != 2 {
		t.Fatalf("RemainingTime after 1s = %v, expected 2", got)
	}

	pe.Activate(PowerUpSpeedBoost)
	if got := pe.RemainingTime(PowerUpSpeedBoost); got != 3 {
		t.Errorf("RemainingTime after refresh = %v, expected full 3", got)
	}
}

func TestRemainingTimeInactive(t *testing.T) {
	pe, _ := newTestEffects()
	for _, kind := range []PowerUpKind{PowerUpMagnet, PowerUpShield, PowerUpDoubleScore, PowerUpSpeedBoost} {
		if got := pe.RemainingTime(kind); got != 0 {
			t.Errorf("RemainingTime(%v) = %v, expected 0", kind, got)
		}
	}
}

func TestEffectExpiresInSameTick(t *testing.T) {
	pe, rec := newTestEffects()

	pe.Activate(PowerUpSpeedBoost)
	if pe.SpeedMultiplier() != 1.5 {
		t.Errorf("SpeedMultiplier() = %v, expected 1.5", pe.SpeedMultiplier())
	}

	expired := pe.Tick(3)
	if len(expired) != 1 || expired[0] != PowerUpSpeedBoost {
		t.Fatalf("Tick() expired = %v, expected [SpeedBoost]", expired)
	}
	if pe.HasSpeedBoost() || pe.SpeedMultiplier() != 1 {
		t.Error("speed boost should be gone after expiry")
	}

	last := rec.events[len(rec.events)-1]
	if last != (PowerUpExpired{Kind: PowerUpSpeedBoost}) {
		t.Errorf("last event = %#v, expected expiry", last)
	}
}

func TestShieldConsumedOnce(t *testing.T) {
	pe, rec := newTestEffects()

	pe.Activate(PowerUpShield)
	pe.Activate(PowerUpShield) // idempotent
	if !pe.HasShield() {
		t.Fatal("shield should be held")
	}
	if pe.RemainingTime(PowerUpShield) != 0 {
		t.Error("shield has no timer")
	}

	if !pe.ConsumeShield() {
		t.Error("first ConsumeShield should succeed")
	}
	if pe.ConsumeShield() {
		t.Error("second ConsumeShield should fail")
	}

	expected := []Event{
		PowerUpActivated{Kind: PowerUpShield},
		PowerUpActivated{Kind: PowerUpShield},
		PowerUpExpired{Kind: PowerUpShield},
	}
	if len(rec.events) != len(expected) {
		t.Fatalf("events = %v", rec.events)
	}
	for i := range expected {
		if rec.events[i] != expected[i] {
			t.Errorf("event %d = %#v, expected %#v", i, rec.events[i], expected[i])
		}
	}
}

func TestMultipliersAndActiveOrder(t *testing.T) {
	pe, _ := newTestEffects()

	if pe.ScoreMultiplier() != 1 {
		t.Error("ScoreMultiplier without double score should be 1")
	}
	pe.Activate(PowerUpSpeedBoost)
	pe.Activate(PowerUpDoubleScore)
	pe.Activate(PowerUpMagnet)
	if pe.ScoreMultiplier() != 2 {
		t.Error("ScoreMultiplier with double score should be 2")
	}

	active := pe.Active()
	order := []PowerUpKind{PowerUpMagnet, PowerUpDoubleScore, PowerUpSpeedBoost}
	if len(active) != len(order) {
		t.Fatalf("Active() = %v", active)
	}
	for i, kind := range order {
		if active[i].Kind != kind {
			t.Errorf("Active()[%d] = %v, expected %v", i, active[i].Kind, kind)
		}
	}
}

func TestResetIsSilent(t *testing.T) {
	pe, rec := newTestEffects()
	pe.Activate(PowerUpMagnet)
	pe.Activate(PowerUpShield)
	n := len(rec.events)

	pe.Reset()
	if pe.HasMagnet() || pe.HasShield() {
		t.Error("Reset should clear every effect")
	}
	if len(rec.events) != n {
		t.Error("Reset should not publish events")
	}
}
