package tui

import (
	"strings"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/runner"
)

const feedTTL = 1.5 // Seconds a notification stays on the HUD

// eventFeed turns simulation events into short HUD notifications.
// It is shared by pointer so the value-typed Model sees updates.
type eventFeed struct {
	msg   string
	color core.Color
	ttl   float64
}

func newEventFeed() *eventFeed {
	return &eventFeed{}
}

func (f *eventFeed) listen(e runner.Event) {
	switch ev := e.(type) {
	case runner.PowerUpActivated:
		f.show(strings.ToUpper(ev.Kind.String())+"!", core.ColorBrightGreen)
	case runner.PowerUpExpired:
		if ev.Kind != runner.PowerUpShield {
			f.show(strings.ToLower(ev.Kind.String())+" wore off", core.ColorGray)
		}
	case runner.ObstacleHitAbsorbed:
		f.show("SHIELD BROKEN", core.ColorBrightCyan)
	case runner.StateChanged:
		if ev.To == runner.PhasePlaying {
			f.clear()
		}
	}
}

func (f *eventFeed) show(msg string, c core.Color) {
	f.msg, f.color, f.ttl = msg, c, feedTTL
}

func (f *eventFeed) clear() {
	f.msg, f.ttl = "", 0
}

func (f *eventFeed) tick(dt float64) {
	if f.ttl > 0 {
		f.ttl -= dt
	}
}

func (f *eventFeed) current() (string, core.Color, bool) {
	if f == nil || f.ttl <= 0 {
		return "", core.ColorDefault, false
	}
	return f.msg, f.color, true
}
