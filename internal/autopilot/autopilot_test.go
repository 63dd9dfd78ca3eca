package autopilot

import (
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/runner"
)

func placed(tag runner.Tag, lane int, z float64) runner.Entity {
	return runner.Entity{
		Tag:             tag,
		Lane:            lane,
		Pos:             core.Vec3{X: float64(lane) * 3, Z: z},
		Alive:           true,
		ColliderEnabled: true,
	}
}

func obstacle(kind runner.ObstacleType, lane int, z float64) runner.Entity {
	e := placed(runner.TagObstacle, lane, z)
	e.Obstacle = kind
	e.Size = kind.Size()
	return e
}

func enemy(kind runner.EnemyType, lane int, z float64) runner.Entity {
	e := placed(runner.TagEnemy, lane, z)
	e.Enemy = kind
	e.Size = kind.Size()
	return e
}

func playing(entities ...runner.Entity) runner.Snapshot {
	return runner.Snapshot{
		Phase:          runner.PhasePlaying,
		EffectiveSpeed: 20,
		Player:         runner.PlayerView{Grounded: true},
		Entities:       entities,
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name string
		snap runner.Snapshot
		want runner.Input
	}{
		{"clear track", playing(), runner.Input{}},
		{"barrier far", playing(obstacle(runner.ObstacleJumpOver, 0, 12)), runner.Input{}},
		{"barrier close", playing(obstacle(runner.ObstacleJumpOver, 0, 4)), runner.Input{Jump: true}},
		{"overhead close", playing(obstacle(runner.ObstacleSlideUnder, 0, 3)), runner.Input{Slide: true}},
		{"other lane", playing(obstacle(runner.ObstacleJumpOver, 1, 4)), runner.Input{}},
		{"air enemy close", playing(enemy(runner.EnemyAir, 0, 4)), runner.Input{Slide: true}},
		{"spent barrier", playing(func() runner.Entity {
			e := obstacle(runner.ObstacleJumpOver, 0, 4)
			e.ColliderEnabled = false
			return e
		}()), runner.Input{}},
		{"ground enemy dodged", playing(
			enemy(runner.EnemyGround, 0, 10),
			obstacle(runner.ObstacleLaneBlock, -1, 12),
		), runner.Input{LaneRight: true}},
		{"block dodged left", playing(
			obstacle(runner.ObstacleLaneBlock, 0, 8),
			obstacle(runner.ObstacleLaneBlock, 1, 9),
		), runner.Input{LaneLeft: true}},
		{"block dodged right", playing(
			obstacle(runner.ObstacleLaneBlock, 0, 8),
			obstacle(runner.ObstacleLaneBlock, -1, 9),
		), runner.Input{LaneRight: true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := New().Decide(tc.snap); got != tc.want {
				t.Errorf("Decide() = %+v, expected %+v", got, tc.want)
			}
		})
	}
}

func TestDecideIdleOutsidePlaying(t *testing.T) {
	snap := playing(obstacle(runner.ObstacleJumpOver, 0, 3))
	snap.Phase = runner.PhaseGameOver
	if got := New().Decide(snap); got != (runner.Input{}) {
		t.Errorf("Decide() = %+v, expected no input", got)
	}
}

func TestPilotOutlastsIdlePlayer(t *testing.T) {
	settings := config.DefaultRunSettings()
	distance := func(seed int64, decide func(runner.Snapshot) runner.Input) float64 {
		sim, err := runner.New(settings, runner.WithSeed(seed))
		if err != nil {
			t.Fatal(err)
		}
		_ = sim.Start()
		for i := 0; i < 60*120 && sim.Phase() == runner.PhasePlaying; i++ {
			sim.Step(1.0/60, decide(sim.Snapshot()))
		}
		return sim.Snapshot().Distance
	}

	var idle, piloted float64
	for _, seed := range []int64{3, 21, 99} {
		idle += distance(seed, func(runner.Snapshot) runner.Input { return runner.Input{} })
		pilot := New()
		piloted += distance(seed, pilot.Decide)
	}
	if piloted <= idle {
		t.Errorf("pilot ran %v in total, idle player ran %v", piloted, idle)
	}
}

func TestLaneEdgeStopsAtTarget(t *testing.T) {
	p := New()
	snap := playing(
		obstacle(runner.ObstacleLaneBlock, 0, 8),
		obstacle(runner.ObstacleLaneBlock, 1, 9),
	)
	if got := p.Decide(snap); !got.LaneLeft {
		t.Fatalf("Decide() = %+v, expected a step left", got)
	}

	snap.Player.Lane = -1
	if got := p.Decide(snap); got != (runner.Input{}) {
		t.Errorf("Decide() in target lane = %+v, expected no input", got)
	}
}
