package runner

import (
	"math"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// Tag classifies an entity for collision handling.
type Tag int

const (
	TagObstacle Tag = iota
	TagEnemy
	TagCoin
	TagPowerUp
)

// String returns the name of the tag.
func (t Tag) String() string {
	switch t {
	case TagObstacle:
		return "Obstacle"
	case TagEnemy:
		return "Enemy"
	case TagCoin:
		return "Coin"
	case TagPowerUp:
		return "PowerUp"
	default:
		return "Unknown"
	}
}

// ObstacleType is the closed set of obstacle shapes. Each is cleared by
// exactly one action: jump, slide or lane change.
type ObstacleType int

const (
	ObstacleJumpOver   ObstacleType = iota // Low barrier
	ObstacleSlideUnder                     // Raised bar
	ObstacleLaneBlock                      // Long block filling the lane
	obstacleTypeCount
)

// String returns the name of the obstacle type.
func (o ObstacleType) String() string {
	switch o {
	case ObstacleJumpOver:
		return "JumpOver"
	case ObstacleSlideUnder:
		return "SlideUnder"
	case ObstacleLaneBlock:
		return "LaneBlock"
	default:
		return "Unknown"
	}
}

// Height returns the center height the obstacle is placed at.
func (o ObstacleType) Height() float64 {
	switch o {
	case ObstacleJumpOver:
		return 0.4
	case ObstacleSlideUnder:
		return 2.0
	default:
		return 0.75
	}
}

// Size returns the full collision extent (X, Y, Z).
func (o ObstacleType) Size() core.Vec3 {
	switch o {
	case ObstacleJumpOver:
		return core.Vec3{X: 2.5, Y: 0.8, Z: 0.5}
	case ObstacleSlideUnder:
		return core.Vec3{X: 2.5, Y: 1.0, Z: 0.5}
	default:
		return core.Vec3{X: 2.5, Y: 1.5, Z: 6}
	}
}

// EnemyType is the closed set of enemies.
type EnemyType int

const (
	EnemyGround EnemyType = iota // Patrols sideways within its lane
	EnemyAir                     // Floats with a bob and drift
)

// String returns the name of the enemy type.
func (e EnemyType) String() string {
	if e == EnemyAir {
		return "Air"
	}
	return "Ground"
}

// Height returns the spawn height of the enemy.
func (e EnemyType) Height() float64 {
	if e == EnemyAir {
		return 2.0
	}
	return 1.0
}

// Size returns the full collision extent (X, Y, Z).
func (e EnemyType) Size() core.Vec3 {
	if e == EnemyAir {
		return core.Vec3{X: 1.5, Y: 1.0, Z: 1.5}
	}
	return core.Vec3{X: 1.5, Y: 2.0, Z: 1.5}
}

var (
	coinSize    = core.Vec3{X: 1, Y: 1, Z: 1}
	powerUpSize = core.Vec3{X: 1.2, Y: 1.2, Z: 1.2}
)

// motion holds the cosmetic movement parameters of an enemy.
type motion struct {
	speed     float64
	patrol    float64
	amplitude float64
	frequency float64
	drift     float64
	phase     float64
}

// Entity is anything placed on the track by a scheduler.
// Only the field matching Tag among Obstacle, Enemy and PowerUp is meaningful.
type Entity struct {
	ID              int
	Tag             Tag
	Obstacle        ObstacleType
	Enemy           EnemyType
	PowerUp         PowerUpKind
	Lane            int
	Pos             core.Vec3 // Center
	Size            core.Vec3
	Alive           bool
	ColliderEnabled bool

	home   core.Vec3
	motion motion
}

// Box returns the collision box.
func (e *Entity) Box() core.Box {
	return core.NewBox(e.Pos, e.Size)
}

// Animate moves enemies along their cosmetic path for the given run clock.
// Other entities stay put.
func (e *Entity) Animate(clock float64) {
	if e.Tag != TagEnemy {
		return
	}
	m := e.motion
	switch e.Enemy {
	case EnemyGround:
		e.Pos.X = e.home.X + core.PingPong(clock*m.speed, m.patrol*2) - m.patrol
	case EnemyAir:
		t := (clock + m.phase) * m.frequency
		e.Pos.Y = e.home.Y + math.Sin(t)*m.amplitude
		e.Pos.X = e.home.X + math.Sin(t*0.5)*m.drift
	}
}
