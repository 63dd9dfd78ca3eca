package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunSettings returns the hard-coded runner configuration.
// It mirrors defaults/runner.yaml and is used when the embed cannot be parsed.
func DefaultRunSettings() RunSettings {
	return RunSettings{
		Player: PlayerSettings{
			RunSpeed:          20,
			MaxRunSpeed:       40,
			SpeedIncreaseRate: 0.5,
			LaneWidth:         3,
			MaxX:              4.5,
			LaneSwitchSpeed:   15,
			JumpForce:         12,
			Gravity:           -9.81,
			GravityMultiplier: 2.5,
			SlideDuration:     0.8,
			SlideHeight:       0.5,
			ColliderHeight:    2,
			ColliderRadius:    0.5,
			Invincibility:     1.0,
		},
		Track: TrackSettings{
			ChunkLength:  50,
			ChunksAhead:  3,
			ChunksBehind: 1,
			Skyline: SkylineSettings{
				Enabled:   true,
				MinHeight: 10,
				MaxHeight: 40,
				MinDepth:  5,
				MaxDepth:  15,
			},
		},
		Scoring: ScoringSettings{
			PointsPerMeter: 1,
			PointsPerCoin:  10,
		},
		PowerUps: PowerUpSettings{
			MagnetDuration:       5,
			DoubleScoreDuration:  10,
			SpeedBoostDuration:   3,
			SpeedBoostMultiplier: 1.5,
			MagnetRadius:         15,
			MagnetPullSpeed:      30,
		},
		Spawning: SpawningSettings{
			Obstacles: ObstacleSpawn{
				Enabled:            true,
				StartZ:             60,
				AheadDistance:      100,
				MinGap:             15,
				MaxGap:             30,
				BaseChance:         0.3,
				MaxChance:          0.7,
				DifficultyPerMeter: 0.001,
				CleanupMargin:      20,
			},
			Enemies: EnemySpawn{
				Enabled:        true,
				StartZ:         50,
				AheadDistance:  60,
				Gap:            30,
				GroundChance:   0.15,
				AirChance:      0.1,
				CleanupMargin:  20,
				MoveSpeed:      2,
				PatrolRange:    2,
				FloatAmplitude: 0.5,
				FloatFrequency: 2,
				Drift:          1,
			},
			Collectibles: CollectibleSpawn{
				Enabled:       true,
				CoinStartZ:    10,
				AheadDistance: 40,
				CoinGap:       3,
				LineChance:    0.4,
				MinCoins:      3,
				MaxCoins:      8,
				CoinY:         1,
				PowerUpStartZ: 30,
				PowerUpStep:   20,
				PowerUpChance: 0.25,
				PowerUpY:      1.5,
				CleanupMargin: 10,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
