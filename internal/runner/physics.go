package runner

import (
	"math"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// Envelope is the player's collision capsule, relative to the feet.
type Envelope struct {
	Height  float64
	CenterY float64 // Offset of the center above Body.Pos.Y
	Radius  float64
}

// Bottom returns the offset of the lowest point above Body.Pos.Y.
func (e Envelope) Bottom() float64 {
	return e.CenterY - e.Height/2
}

// Top returns the offset of the highest point above Body.Pos.Y.
func (e Envelope) Top() float64 {
	return e.CenterY + e.Height/2
}

// Body is a moving collision shape.
type Body struct {
	Pos      core.Vec3 // Feet position
	Envelope Envelope
}

// Center returns the world center of the envelope.
func (b Body) Center() core.Vec3 {
	return core.Vec3{X: b.Pos.X, Y: b.Pos.Y + b.Envelope.CenterY, Z: b.Pos.Z}
}

// Box returns the axis-aligned box around the capsule.
func (b Body) Box() core.Box {
	d := b.Envelope.Radius * 2
	return core.NewBox(b.Center(), core.Vec3{X: d, Y: b.Envelope.Height, Z: d})
}

// MoveResult reports what a move touched.
type MoveResult struct {
	Grounded bool
	Contacts []*Entity
}

// Mover is the collision-move primitive: it displaces the body by delta,
// resolves it against the ground and reports overlapped entities.
type Mover interface {
	Move(body *Body, delta core.Vec3) MoveResult
}

// EntitySource answers overlap queries.
type EntitySource interface {
	Overlapping(box core.Box, fn func(*Entity))
}

// TrackPhysics is the reference Mover: a flat floor at y=0 plus box
// overlap against the given sources. The query box covers the whole
// move, so a large step cannot skip over a thin barrier.
type TrackPhysics struct {
	sources []EntitySource
}

// NewTrackPhysics creates a mover that queries sources in order.
func NewTrackPhysics(sources ...EntitySource) *TrackPhysics {
	return &TrackPhysics{sources: sources}
}

// Move implements Mover.
func (tp *TrackPhysics) Move(body *Body, delta core.Vec3) MoveResult {
	before := body.Box()
	body.Pos = body.Pos.Add(delta)

	var res MoveResult
	floor := -body.Envelope.Bottom()
	if body.Pos.Y <= floor {
		body.Pos.Y = floor
		res.Grounded = true
	}

	sweep := union(before, body.Box())
	for _, src := range tp.sources {
		src.Overlapping(sweep, func(e *Entity) {
			res.Contacts = append(res.Contacts, e)
		})
	}
	return res
}

func union(a, b core.Box) core.Box {
	amin, amax := a.Min(), a.Max()
	bmin, bmax := b.Min(), b.Max()
	lo := core.Vec3{X: math.Min(amin.X, bmin.X), Y: math.Min(amin.Y, bmin.Y), Z: math.Min(amin.Z, bmin.Z)}
	hi := core.Vec3{X: math.Max(amax.X, bmax.X), Y: math.Max(amax.Y, bmax.Y), Z: math.Max(amax.Z, bmax.Z)}
	return core.NewBox(lo.Add(hi).Scale(0.5), hi.Sub(lo))
}
