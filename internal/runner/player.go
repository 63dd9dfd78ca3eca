package runner

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

const (
	restingVelocity = -2.0 // Keeps the body pressed to the floor while grounded
	holdDeadZone    = 0.1
)

// Input is the per-tick control signal.
type Input struct {
	Lateral   float64 // Continuous hold in [-1, 1]
	LaneLeft  bool    // Edge: step one lane left
	LaneRight bool    // Edge: step one lane right
	Jump      bool    // Edge
	Slide     bool    // Edge
}

// Player is the runner's movement and collision state machine.
//
// Vertical state is Grounded or Airborne; Sliding is an orthogonal flag
// that can only be entered while Grounded. Dead is terminal for the run.
type Player struct {
	settings config.PlayerSettings
	state    *RunState
	effects  *PowerUpEffects
	score    *ScoreTracker
	mover    Mover
	bus      *Bus
	logger   *log.Logger

	body     Body
	standing Envelope

	lane    int
	targetX float64
	vy      float64

	grounded   bool
	sliding    bool
	dead       bool
	slideTimer float64
	invincible float64
}

// NewPlayer creates a player standing in the center lane.
func NewPlayer(settings config.PlayerSettings, state *RunState, effects *PowerUpEffects, score *ScoreTracker, mover Mover, bus *Bus, logger *log.Logger) *Player {
	p := &Player{
		settings: settings,
		state:    state,
		effects:  effects,
		score:    score,
		mover:    mover,
		bus:      bus,
		logger:   orDiscard(logger),
		standing: Envelope{
			Height:  settings.ColliderHeight,
			CenterY: settings.ColliderHeight / 2,
			Radius:  settings.ColliderRadius,
		},
	}
	p.Reset()
	return p
}

// Reset puts the player back at the origin, alive and grounded.
func (p *Player) Reset() {
	p.body = Body{Envelope: p.standing}
	p.lane = 0
	p.targetX = 0
	p.vy = 0
	p.grounded = true
	p.sliding = false
	p.dead = false
	p.slideTimer = 0
	p.invincible = 0
}

// Update runs one tick: steering, jump, slide, then a single move.
// Does nothing when dead or when the run is not Playing.
func (p *Player) Update(dt float64, in Input) {
	if p.dead || p.state.Phase() != PhasePlaying || dt <= 0 {
		return
	}
	if p.invincible > 0 {
		p.invincible -= dt
	}

	p.steer(in)
	p.jump(in, dt)
	p.slide(in, dt)
	p.move(dt)
}

func (p *Player) steer(in Input) {
	if in.LaneLeft {
		p.lane = max(p.lane-1, -1)
	} else if in.LaneRight {
		p.lane = min(p.lane+1, 1)
	}

	target := float64(p.lane) * p.settings.LaneWidth
	if hold := core.ClampF(in.Lateral, -1, 1); math.Abs(hold) > holdDeadZone {
		target += hold * p.settings.LaneWidth * 0.5
	}
	p.targetX = core.ClampF(target, -p.settings.MaxX, p.settings.MaxX)
}

func (p *Player) jump(in Input, dt float64) {
	if p.grounded && p.vy < 0 {
		p.vy = restingVelocity
	}
	if in.Jump && p.grounded && !p.sliding {
		p.vy = p.settings.JumpForce
		p.grounded = false
	}
	p.vy += p.settings.Gravity * p.settings.GravityMultiplier * dt
}

func (p *Player) slide(in Input, dt float64) {
	if in.Slide && p.grounded && !p.sliding {
		p.startSlide()
	}
	if p.sliding {
		p.slideTimer -= dt
		if p.slideTimer <= 0 {
			p.endSlide()
		}
	}
}

// startSlide shrinks the envelope while keeping its bottom where the
// standing envelope's bottom is.
func (p *Player) startSlide() {
	p.sliding = true
	p.slideTimer = p.settings.SlideDuration

	bottom := p.standing.CenterY - p.standing.Height/2
	h := p.settings.SlideHeight
	p.body.Envelope.Height = h
	p.body.Envelope.CenterY = bottom + h/2
}

func (p *Player) endSlide() {
	p.sliding = false
	p.slideTimer = 0
	p.body.Envelope = p.standing
}

func (p *Player) move(dt float64) {
	x := p.body.Pos.X
	newX := core.MoveTowards(x, p.targetX, p.settings.LaneSwitchSpeed*dt)
	delta := core.Vec3{
		X: newX - x,
		Y: p.vy * dt,
		Z: p.state.EffectiveSpeed() * dt,
	}

	res := p.mover.Move(&p.body, delta)
	p.grounded = res.Grounded
	for _, e := range res.Contacts {
		if p.dead {
			return
		}
		p.OnCollision(e.Tag, e)
	}
}

// OnCollision resolves contact with an entity. It is a no-op once the
// player is dead or the run has ended, and for entities already removed.
func (p *Player) OnCollision(tag Tag, e *Entity) {
	if p.dead || p.state.Phase() != PhasePlaying || e == nil || !e.Alive {
		return
	}
	switch tag {
	case TagObstacle, TagEnemy:
		p.hit(e)
	case TagCoin:
		e.Alive = false
		p.score.AddCoins(p.effects.ScoreMultiplier())
		p.bus.Publish(CoinCollected{Pos: e.Pos})
	case TagPowerUp:
		e.Alive = false
		p.effects.Activate(e.PowerUp)
	}
}

func (p *Player) hit(e *Entity) {
	if !e.ColliderEnabled || p.invincible > 0 {
		return
	}
	if p.effects.ConsumeShield() {
		e.ColliderEnabled = false
		p.invincible = p.settings.Invincibility
		p.logger.Debug("shield absorbed hit", "tag", e.Tag, "z", e.Pos.Z)
		p.bus.Publish(ObstacleHitAbsorbed{Pos: p.body.Pos})
		return
	}

	p.dead = true
	p.logger.Debug("player died", "tag", e.Tag, "z", p.body.Pos.Z)
	p.bus.Publish(PlayerDied{Pos: p.body.Pos})
	p.state.ReportFailure()
}

// Body returns the current collision body.
func (p *Player) Body() Body { return p.body }

// Position returns the feet position.
func (p *Player) Position() core.Vec3 { return p.body.Pos }

// Lane returns the targeted lane index in [-1, 1].
func (p *Player) Lane() int { return p.lane }

// Grounded reports ground contact from the last move.
func (p *Player) Grounded() bool { return p.grounded }

// Sliding reports whether the slide envelope is in use.
func (p *Player) Sliding() bool { return p.sliding }

// Dead reports whether the player died this run.
func (p *Player) Dead() bool { return p.dead }

// Invincible reports whether a post-shield window is running.
func (p *Player) Invincible() bool { return p.invincible > 0 }

// StandingEnvelope returns the unmodified envelope.
func (p *Player) StandingEnvelope() Envelope { return p.standing }
