package runner

import "github.com/vovakirdan/tui-runner/internal/core"

// Event is a one-way notification published by the simulation.
// Collaborators (renderer, audio, HUD) subscribe to the Bus and never
// reply; the sealed marker keeps the set closed to this package.
type Event interface {
	runnerEvent()
}

// StateChanged fires exactly once per RunState transition.
type StateChanged struct {
	From Phase
	To   Phase
}

func (StateChanged) runnerEvent() {}

// PowerUpActivated fires on pickup. Duration is 0 for Shield.
type PowerUpActivated struct {
	Kind     PowerUpKind
	Duration float64
}

func (PowerUpActivated) runnerEvent() {}

// PowerUpExpired fires when a timer runs out or the shield is used.
type PowerUpExpired struct {
	Kind PowerUpKind
}

func (PowerUpExpired) runnerEvent() {}

// CoinCollected fires when the player picks up a coin.
type CoinCollected struct {
	Pos core.Vec3
}

func (CoinCollected) runnerEvent() {}

// ObstacleHitAbsorbed fires when a shield charge saves the player.
type ObstacleHitAbsorbed struct {
	Pos core.Vec3
}

func (ObstacleHitAbsorbed) runnerEvent() {}

// PlayerDied fires once per run, right before the GameOver transition.
type PlayerDied struct {
	Pos core.Vec3
}

func (PlayerDied) runnerEvent() {}

// ChunkSpawned fires when the streamer appends a chunk to the window.
type ChunkSpawned struct {
	Index  int
	StartZ float64
}

func (ChunkSpawned) runnerEvent() {}

// ChunkDespawned fires when the oldest chunk leaves the window.
type ChunkDespawned struct {
	Index  int
	StartZ float64
}

func (ChunkDespawned) runnerEvent() {}

// Listener receives published events.
type Listener func(Event)

// Bus delivers events synchronously, in subscription order.
// It is not safe for concurrent use; the tick loop is single-threaded.
type Bus struct {
	listeners []Listener
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a listener.
func (b *Bus) Subscribe(l Listener) {
	if l == nil {
		return
	}
	b.listeners = append(b.listeners, l)
}

// Publish delivers e to every listener. A nil bus drops the event.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	for _, l := range b.listeners {
		l(e)
	}
}
