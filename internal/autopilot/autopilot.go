// Package autopilot drives a runner simulation without a human, for the
// headless simulate command and soak tests. It reads only the public
// Snapshot, so it plays by the same rules as the terminal front end.
package autopilot

import (
	"math"

	"github.com/vovakirdan/tui-runner/internal/runner"
)

// Reaction windows in seconds of travel at the current speed.
const (
	lookahead   = 0.8  // How far ahead hazards are considered
	jumpLead    = 0.18 // Jump when a low barrier is this close
	slideLead   = 0.12 // Slide when an overhead hazard is this close
	laneMargin  = 2.0  // Units behind the player still counted as occupying a lane
	minLookhead = 6.0
)

// Pilot decides one Input per tick from a Snapshot.
type Pilot struct {
	targetLane int
	coinHunt   bool
}

// Option configures a Pilot.
type Option func(*Pilot)

// WithCoinHunting makes the pilot drift toward coin lines when no hazard
// is near.
func WithCoinHunting() Option {
	return func(p *Pilot) { p.coinHunt = true }
}

// New creates a pilot in the center lane.
func New(opts ...Option) *Pilot {
	p := &Pilot{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Reset forgets the lane target, for a new run.
func (p *Pilot) Reset() {
	p.targetLane = 0
}

// Decide returns the input for the next tick.
func (p *Pilot) Decide(snap runner.Snapshot) runner.Input {
	var in runner.Input
	if snap.Phase != runner.PhasePlaying || snap.Player.Dead {
		return in
	}

	speed := math.Max(snap.EffectiveSpeed, 1)
	horizon := math.Max(speed*lookahead, minLookhead)
	pz := snap.Player.Pos.Z
	lane := snap.Player.Lane

	if threat, dz, ok := nearestHazard(snap.Entities, lane, pz, horizon); ok {
		switch {
		case needsLaneChange(threat):
			p.targetLane = p.pickLane(snap.Entities, lane, pz, horizon)
			if p.targetLane == lane && dz < speed*jumpLead+1.5 {
				in.Jump = true // Boxed in; a jump is the only chance
			}
		case threat.Tag == runner.TagObstacle && threat.Obstacle == runner.ObstacleJumpOver:
			in.Jump = dz < speed*jumpLead+1.5
		default:
			in.Slide = dz < speed*slideLead+1.5 && !snap.Player.Sliding
		}
	} else if p.coinHunt {
		if coinLane, ok := nearestCoinLane(snap.Entities, pz, horizon); ok {
			if _, _, blocked := nearestHazard(snap.Entities, coinLane, pz-laneMargin, horizon); !blocked {
				p.targetLane = coinLane
			}
		}
	}

	switch {
	case lane > p.targetLane:
		in.LaneLeft = true
	case lane < p.targetLane:
		in.LaneRight = true
	}
	return in
}

// needsLaneChange reports hazards that can be neither jumped nor slid under.
func needsLaneChange(e runner.Entity) bool {
	switch e.Tag {
	case runner.TagObstacle:
		return e.Obstacle == runner.ObstacleLaneBlock
	case runner.TagEnemy:
		return e.Enemy == runner.EnemyGround
	}
	return false
}

func isHazard(e runner.Entity) bool {
	return (e.Tag == runner.TagObstacle || e.Tag == runner.TagEnemy) && e.ColliderEnabled
}

// nearestHazard returns the closest live hazard in lane whose far edge
// is ahead of pz and whose near edge is within horizon.
func nearestHazard(entities []runner.Entity, lane int, pz, horizon float64) (runner.Entity, float64, bool) {
	var best runner.Entity
	bestDZ := math.Inf(1)
	for _, e := range entities {
		if !isHazard(e) || e.Lane != lane {
			continue
		}
		near := e.Pos.Z - e.Size.Z/2 - pz
		far := e.Pos.Z + e.Size.Z/2 - pz
		if far < 0 || near > horizon {
			continue
		}
		if near < bestDZ {
			best, bestDZ = e, near
		}
	}
	return best, math.Max(bestDZ, 0), !math.IsInf(bestDZ, 1)
}

// pickLane returns the neighbouring lane with the most free track ahead,
// staying put if neither is better.
func (p *Pilot) pickLane(entities []runner.Entity, lane int, pz, horizon float64) int {
	best, bestFree := lane, freeDistance(entities, lane, pz-laneMargin, horizon)
	for _, cand := range []int{lane - 1, lane + 1} {
		if cand < -1 || cand > 1 {
			continue
		}
		free := freeDistance(entities, cand, pz-laneMargin, horizon)
		if free > bestFree {
			best, bestFree = cand, free
		}
	}
	return best
}

func freeDistance(entities []runner.Entity, lane int, pz, horizon float64) float64 {
	if _, dz, ok := nearestHazard(entities, lane, pz, horizon); ok {
		return dz
	}
	return horizon + 1
}

func nearestCoinLane(entities []runner.Entity, pz, horizon float64) (int, bool) {
	bestDZ := math.Inf(1)
	lane := 0
	for _, e := range entities {
		if e.Tag != runner.TagCoin && e.Tag != runner.TagPowerUp {
			continue
		}
		dz := e.Pos.Z - pz
		if dz > 0 && dz < horizon && dz < bestDZ {
			bestDZ, lane = dz, e.Lane
		}
	}
	return lane, !math.IsInf(bestDZ, 1)
}
