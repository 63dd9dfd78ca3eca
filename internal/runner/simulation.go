// Package runner is the endless-runner simulation core: run state, track
// streaming, procedural placement, the player state machine and timed
// power-ups, advanced together by a single fixed-order tick.
package runner

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// Option configures a Simulation.
type Option func(*Simulation)

// WithSeed sets the seed for placement and skyline generation.
func WithSeed(seed int64) Option {
	return func(s *Simulation) { s.seed = seed }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) { s.logger = l }
}

// WithHighScores sets the store used to load and save the best score.
func WithHighScores(store HighScoreStore) Option {
	return func(s *Simulation) { s.store = store }
}

// WithMover replaces the collision primitive.
func WithMover(m Mover) Option {
	return func(s *Simulation) { s.mover = m }
}

// WithListener subscribes fn to every event. Listeners run after the
// core's own handlers.
func WithListener(fn Listener) Option {
	return func(s *Simulation) { s.listeners = append(s.listeners, fn) }
}

// StepResult summarizes one tick.
type StepResult struct {
	Phase    Phase
	Score    int
	Distance float64
	Died     bool // Player died during this tick
}

// Simulation owns every core service and advances them in order.
type Simulation struct {
	settings  config.RunSettings
	seed      int64
	logger    *log.Logger
	store     HighScoreStore
	mover     Mover
	listeners []Listener

	bus          *Bus
	state        *RunState
	effects      *PowerUpEffects
	score        *ScoreTracker
	track        *TrackStreamer
	obstacles    *Scheduler
	enemies      *Scheduler
	collectibles *Scheduler
	player       *Player

	ticks int
}

// New validates settings and wires a simulation in the Menu phase.
func New(settings config.RunSettings, opts ...Option) (*Simulation, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("runner: %w", err)
	}

	s := &Simulation{settings: settings}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = orDiscard(s.logger)

	s.bus = NewBus()
	s.effects = NewPowerUpEffects(settings.PowerUps, s.bus, s.logger)
	s.state = NewRunState(settings.Player, s.effects, s.bus)
	s.score = NewScoreTracker(settings.Scoring, s.state, s.store, s.bus, s.logger)
	s.track = NewTrackStreamer(settings.Track, s.seed, s.bus)

	spawn := settings.Spawning
	lw := settings.Player.LaneWidth
	s.obstacles = NewObstacleScheduler(spawn.Obstacles, lw, s.seed, s.logger)
	s.enemies = NewEnemyScheduler(spawn.Enemies, lw, s.seed, s.logger)
	s.collectibles = NewCollectibleScheduler(spawn.Collectibles, lw, s.seed, s.logger)

	if s.mover == nil {
		s.mover = NewTrackPhysics(s.obstacles, s.enemies, s.collectibles)
	}
	s.player = NewPlayer(settings.Player, s.state, s.effects, s.score, s.mover, s.bus, s.logger)

	s.bus.Subscribe(s.onEvent)
	for _, l := range s.listeners {
		s.bus.Subscribe(l)
	}
	return s, nil
}

// onEvent rebuilds the world whenever a run (re)starts, so listeners
// reacting to StateChanged(Playing) already see a fresh track.
func (s *Simulation) onEvent(e Event) {
	sc, ok := e.(StateChanged)
	if !ok {
		return
	}
	s.logger.Debug("state changed", "from", sc.From, "to", sc.To)
	if sc.To != PhasePlaying {
		return
	}
	s.ticks = 0
	s.effects.Reset()
	s.player.Reset()
	s.obstacles.Reset()
	s.enemies.Reset()
	s.collectibles.Reset()
	s.track.Reset()
}

// Start begins the first run.
func (s *Simulation) Start() error {
	return s.state.StartGame()
}

// Restart begins a new run after GameOver. The RNG streams continue, so
// the new run gets a different layout.
func (s *Simulation) Restart() error {
	return s.state.Restart()
}

// Reseed restarts every RNG stream from seed when the next run starts.
// The run in progress keeps its layout.
func (s *Simulation) Reseed(seed int64) {
	s.seed = seed
	s.track.Reseed(seed)
	s.obstacles.Reseed(seed)
	s.enemies.Reseed(seed)
	s.collectibles.Reseed(seed)
}

// Step advances the simulation by dt seconds. The order is fixed:
// clock and timers, then streaming and placement, then the player, then
// the score. Outside Playing nothing changes.
func (s *Simulation) Step(dt float64, in Input) StepResult {
	if s.state.Phase() != PhasePlaying || dt <= 0 {
		return s.result(false)
	}

	s.state.Advance(dt)
	s.effects.Tick(dt)
	clock := s.state.Clock()
	for _, sch := range s.schedulers() {
		sch.Animate(clock)
	}

	pz := s.player.Position().Z
	distance := s.state.Distance()
	s.track.Advance(pz)
	for _, sch := range s.schedulers() {
		sch.Advance(pz, distance)
	}
	if s.effects.HasMagnet() {
		pu := s.settings.PowerUps
		s.collectibles.ApplyMagnet(s.player.Body().Center(), pu.MagnetRadius, pu.MagnetPullSpeed, dt)
	}

	wasDead := s.player.Dead()
	s.player.Update(dt, in)
	s.score.Update()
	s.ticks++

	return s.result(!wasDead && s.player.Dead())
}

func (s *Simulation) result(died bool) StepResult {
	return StepResult{
		Phase:    s.state.Phase(),
		Score:    s.score.State().Current,
		Distance: s.state.Distance(),
		Died:     died,
	}
}

func (s *Simulation) schedulers() [3]*Scheduler {
	return [3]*Scheduler{s.obstacles, s.enemies, s.collectibles}
}

// Phase returns the current run phase.
func (s *Simulation) Phase() Phase { return s.state.Phase() }

// Score returns the current score view.
func (s *Simulation) Score() ScoreState { return s.score.State() }

// Settings returns the settings the simulation was built with.
func (s *Simulation) Settings() config.RunSettings { return s.settings }

// Seed returns the current seed.
func (s *Simulation) Seed() int64 { return s.seed }

// Player returns the player state machine.
func (s *Simulation) Player() *Player { return s.player }

// Effects returns the power-up effects.
func (s *Simulation) Effects() *PowerUpEffects { return s.effects }

// PlayerView is the renderer-facing copy of player state.
type PlayerView struct {
	Pos        core.Vec3
	Envelope   Envelope
	Lane       int
	Grounded   bool
	Sliding    bool
	Dead       bool
	Invincible bool
}

// Snapshot is a read-only copy of the world for renderers and tests.
type Snapshot struct {
	Phase          Phase
	Tick           int
	Clock          float64
	Distance       float64
	BaseSpeed      float64
	EffectiveSpeed float64
	Score          ScoreState
	Player         PlayerView
	Shield         bool
	Effects        []ActiveEffect
	Chunks         []Chunk
	Entities       []Entity
}

// Snapshot copies the current world state.
func (s *Simulation) Snapshot() Snapshot {
	p := s.player
	snap := Snapshot{
		Phase:          s.state.Phase(),
		Tick:           s.ticks,
		Clock:          s.state.Clock(),
		Distance:       s.state.Distance(),
		BaseSpeed:      s.state.BaseSpeed(),
		EffectiveSpeed: s.state.EffectiveSpeed(),
		Score:          s.score.State(),
		Player: PlayerView{
			Pos:        p.Position(),
			Envelope:   p.Body().Envelope,
			Lane:       p.Lane(),
			Grounded:   p.Grounded(),
			Sliding:    p.Sliding(),
			Dead:       p.Dead(),
			Invincible: p.Invincible(),
		},
		Shield:  s.effects.HasShield(),
		Effects: s.effects.Active(),
		Chunks:  append([]Chunk(nil), s.track.Chunks()...),
	}
	for _, sch := range s.schedulers() {
		for _, e := range sch.Entities() {
			if e.Alive {
				snap.Entities = append(snap.Entities, *e)
			}
		}
	}
	return snap
}

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard)
	}
	return l
}
