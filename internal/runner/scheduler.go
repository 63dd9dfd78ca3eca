package runner

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// Family names the entity family a scheduler places.
type Family int

const (
	FamilyObstacles Family = iota
	FamilyEnemies
	FamilyCollectibles
)

// String returns the name of the family.
func (f Family) String() string {
	switch f {
	case FamilyObstacles:
		return "obstacles"
	case FamilyEnemies:
		return "enemies"
	case FamilyCollectibles:
		return "collectibles"
	default:
		return "unknown"
	}
}

// placer evaluates one candidate at cursor and returns the next cursor.
type placer func(cursor, distance float64) float64

// placementTrack is one spawn cursor with its policy.
type placementTrack struct {
	start  float64
	cursor float64
	place  placer
}

// Scheduler places one entity family ahead of the player and removes
// entities that fall behind. Placement depends only on cursor state and
// the RNG stream, never on elapsed time.
type Scheduler struct {
	family    Family
	ahead     float64
	margin    float64
	laneWidth float64
	rng       *rand.Rand
	reseed    *int64 // Applied by the next Reset
	logger    *log.Logger

	tracks   []placementTrack
	entities []*Entity
	nextID   int
	disabled bool
}

func newScheduler(family Family, ahead, margin, laneWidth float64, seed int64, logger *log.Logger) *Scheduler {
	return &Scheduler{
		family:    family,
		ahead:     ahead,
		margin:    margin,
		laneWidth: laneWidth,
		rng:       rand.New(rand.NewSource(familySeed(seed, family))),
		logger:    orDiscard(logger).With("family", family),
		entities:  make([]*Entity, 0, 32),
	}
}

// familySeed derives an independent stream per family so disabling one
// family does not change what the others place.
func familySeed(seed int64, family Family) int64 {
	return seed*31 + int64(family) + 1
}

// disable turns the scheduler into a no-op for the rest of its life.
// A validation error is logged once; a family switched off in config is not.
func (s *Scheduler) disable(err error) *Scheduler {
	s.disabled = true
	if err != nil {
		s.logger.Error("scheduler disabled by invalid config", "err", err)
	}
	return s
}

func (s *Scheduler) addTrack(start float64, p placer) {
	s.tracks = append(s.tracks, placementTrack{start: start, cursor: start, place: p})
}

// NewObstacleScheduler places jump-over, slide-under and lane-block
// obstacles with a chance that ramps with distance.
func NewObstacleScheduler(cfg config.ObstacleSpawn, laneWidth float64, seed int64, logger *log.Logger) *Scheduler {
	s := newScheduler(FamilyObstacles, cfg.AheadDistance, cfg.CleanupMargin, laneWidth, seed, logger)
	if !cfg.Enabled {
		return s.disable(nil)
	}
	if err := cfg.Validate(); err != nil {
		return s.disable(err)
	}

	curve := cfg.ObstacleCurve()
	s.addTrack(cfg.StartZ, func(z, distance float64) float64 {
		if s.rng.Float64() < curve.At(distance) {
			kind := ObstacleType(s.rng.Intn(int(obstacleTypeCount)))
			lane := s.randomLane()
			s.spawn(&Entity{
				Tag:      TagObstacle,
				Obstacle: kind,
				Lane:     lane,
				Pos:      core.Vec3{X: s.laneX(lane), Y: kind.Height(), Z: z},
				Size:     kind.Size(),
			})
		}
		return z + cfg.MinGap + s.rng.Float64()*(cfg.MaxGap-cfg.MinGap)
	})
	return s
}

// NewEnemyScheduler places ground and air enemies at a fixed gap.
// Ground is rolled first, air takes the next slice of probability.
func NewEnemyScheduler(cfg config.EnemySpawn, laneWidth float64, seed int64, logger *log.Logger) *Scheduler {
	s := newScheduler(FamilyEnemies, cfg.AheadDistance, cfg.CleanupMargin, laneWidth, seed, logger)
	if !cfg.Enabled {
		return s.disable(nil)
	}
	if err := cfg.Validate(); err != nil {
		return s.disable(err)
	}

	s.addTrack(cfg.StartZ, func(z, _ float64) float64 {
		r := s.rng.Float64()
		var kind EnemyType
		switch {
		case r < cfg.GroundChance:
			kind = EnemyGround
		case r < cfg.GroundChance+cfg.AirChance:
			kind = EnemyAir
		default:
			return z + cfg.Gap
		}

		lane := s.randomLane()
		e := &Entity{
			Tag:   TagEnemy,
			Enemy: kind,
			Lane:  lane,
			Pos:   core.Vec3{X: s.laneX(lane), Y: kind.Height(), Z: z},
			Size:  kind.Size(),
			motion: motion{
				speed:     cfg.MoveSpeed,
				patrol:    cfg.PatrolRange,
				amplitude: cfg.FloatAmplitude,
				frequency: cfg.FloatFrequency,
				drift:     cfg.Drift,
			},
		}
		if kind == EnemyAir {
			e.motion.phase = s.rng.Float64() * 2 * math.Pi
		}
		s.spawn(e)
		return z + cfg.Gap
	})
	return s
}

// NewCollectibleScheduler places coin lines and power-up pickups on two
// independent cursors sharing one entity list.
func NewCollectibleScheduler(cfg config.CollectibleSpawn, laneWidth float64, seed int64, logger *log.Logger) *Scheduler {
	s := newScheduler(FamilyCollectibles, cfg.AheadDistance, cfg.CleanupMargin, laneWidth, seed, logger)
	if !cfg.Enabled {
		return s.disable(nil)
	}
	if err := cfg.Validate(); err != nil {
		return s.disable(err)
	}

	s.addTrack(cfg.CoinStartZ, func(z, _ float64) float64 {
		if s.rng.Float64() >= cfg.LineChance {
			return z + cfg.CoinGap*2
		}
		count := cfg.MinCoins + s.rng.Intn(cfg.MaxCoins-cfg.MinCoins+1)
		lane := s.randomLane()
		for i := 0; i < count; i++ {
			s.spawn(&Entity{
				Tag:  TagCoin,
				Lane: lane,
				Pos:  core.Vec3{X: s.laneX(lane), Y: cfg.CoinY, Z: z + float64(i)*cfg.CoinGap},
				Size: coinSize,
			})
		}
		return z + float64(count)*cfg.CoinGap + cfg.CoinGap
	})

	s.addTrack(cfg.PowerUpStartZ, func(z, _ float64) float64 {
		if s.rng.Float64() < cfg.PowerUpChance {
			kind := PowerUpKind(s.rng.Intn(int(powerUpKindCount)))
			lane := s.randomLane()
			s.spawn(&Entity{
				Tag:     TagPowerUp,
				PowerUp: kind,
				Lane:    lane,
				Pos:     core.Vec3{X: s.laneX(lane), Y: cfg.PowerUpY, Z: z},
				Size:    powerUpSize,
			})
		}
		return z + cfg.PowerUpStep
	})
	return s
}

func (s *Scheduler) randomLane() int {
	return s.rng.Intn(config.LaneCount) - 1
}

func (s *Scheduler) laneX(lane int) float64 {
	return float64(lane) * s.laneWidth
}

func (s *Scheduler) spawn(e *Entity) {
	e.ID = s.nextID
	e.Alive = true
	e.ColliderEnabled = true
	e.home = e.Pos
	s.nextID++
	s.entities = append(s.entities, e)
}

// Reset clears entities and rewinds cursors. The RNG stream continues
// unless Reseed was called since the last Reset.
func (s *Scheduler) Reset() {
	if s.reseed != nil {
		s.rng = rand.New(rand.NewSource(familySeed(*s.reseed, s.family)))
		s.reseed = nil
	}
	clear(s.entities)
	s.entities = s.entities[:0]
	s.nextID = 0
	for i := range s.tracks {
		s.tracks[i].cursor = s.tracks[i].start
	}
}

// Reseed restarts the RNG stream from seed at the next Reset.
func (s *Scheduler) Reseed(seed int64) {
	s.reseed = &seed
}

// Advance places candidates until every cursor is past the ahead window,
// then drops entities behind the cleanup margin and dead ones.
func (s *Scheduler) Advance(playerZ, distance float64) {
	if s.disabled {
		return
	}
	horizon := playerZ + s.ahead
	for i := range s.tracks {
		t := &s.tracks[i]
		for t.cursor < horizon {
			t.cursor = t.place(t.cursor, distance)
		}
	}
	s.cleanup(playerZ)
}

func (s *Scheduler) cleanup(playerZ float64) {
	limit := playerZ - s.margin
	live := s.entities[:0]
	for _, e := range s.entities {
		if e.Alive && e.Pos.Z >= limit {
			live = append(live, e)
		}
	}
	// Clear the tail so dropped entities can be collected.
	for i := len(live); i < len(s.entities); i++ {
		s.entities[i] = nil
	}
	s.entities = live
}

// Animate runs the cosmetic motion of every live entity.
func (s *Scheduler) Animate(clock float64) {
	for _, e := range s.entities {
		if e.Alive {
			e.Animate(clock)
		}
	}
}

// Overlapping calls fn for each live, collider-enabled entity whose box
// intersects box.
func (s *Scheduler) Overlapping(box core.Box, fn func(*Entity)) {
	for _, e := range s.entities {
		if e.Alive && e.ColliderEnabled && e.Box().Intersects(box) {
			fn(e)
		}
	}
}

// ApplyMagnet pulls live coins within radius of target toward it.
// This scans every coin; the live set is bounded by the ahead window.
func (s *Scheduler) ApplyMagnet(target core.Vec3, radius, speed, dt float64) {
	step := speed * dt
	for _, e := range s.entities {
		if !e.Alive || e.Tag != TagCoin {
			continue
		}
		d := target.Sub(e.Pos)
		dist := d.Len()
		if dist == 0 || dist > radius {
			continue
		}
		if step >= dist {
			e.Pos = target
			continue
		}
		e.Pos = e.Pos.Add(d.Scale(step / dist))
	}
}

// Entities returns the live entity list. Callers must not retain it
// across ticks.
func (s *Scheduler) Entities() []*Entity {
	return s.entities
}

// Family returns which family the scheduler places.
func (s *Scheduler) Family() Family {
	return s.family
}

// Disabled reports whether the scheduler was switched off.
func (s *Scheduler) Disabled() bool {
	return s.disabled
}

// Cursors returns the next candidate Z of each placement track.
func (s *Scheduler) Cursors() []float64 {
	out := make([]float64, len(s.tracks))
	for i, t := range s.tracks {
		out[i] = t.cursor
	}
	return out
}
