// Package config provides YAML-based run settings loading, validation and
// difficulty presets for the runner.
package config

// LaneCount is the number of lanes on the track (left, center, right).
const LaneCount = 3

// RunSettings is the immutable tuning bundle loaded once at run start.
type RunSettings struct {
	Player   PlayerSettings   `yaml:"player"`
	Track    TrackSettings    `yaml:"track"`
	Scoring  ScoringSettings  `yaml:"scoring"`
	PowerUps PowerUpSettings  `yaml:"power_ups"`
	Spawning SpawningSettings `yaml:"spawning"`
}

// PlayerSettings defines movement, jump and slide parameters.
type PlayerSettings struct {
	RunSpeed          float64 `yaml:"run_speed"`           // Forward speed at run start (units/sec)
	MaxRunSpeed       float64 `yaml:"max_run_speed"`       // Upper clamp for base speed
	SpeedIncreaseRate float64 `yaml:"speed_increase_rate"` // Speed added per 100 units traveled
	LaneWidth         float64 `yaml:"lane_width"`
	MaxX              float64 `yaml:"max_x"` // Lateral bound for the target position
	LaneSwitchSpeed   float64 `yaml:"lane_switch_speed"`
	JumpForce         float64 `yaml:"jump_force"`
	Gravity           float64 `yaml:"gravity"` // Negative = down
	GravityMultiplier float64 `yaml:"gravity_multiplier"`
	SlideDuration     float64 `yaml:"slide_duration"`
	SlideHeight       float64 `yaml:"slide_collider_height"`
	ColliderHeight    float64 `yaml:"collider_height"`
	ColliderRadius    float64 `yaml:"collider_radius"`
	Invincibility     float64 `yaml:"invincibility_duration"` // Window after a shield absorbs a hit
}

// TrackSettings defines chunk streaming geometry.
type TrackSettings struct {
	ChunkLength  float64         `yaml:"chunk_length"`
	ChunksAhead  int             `yaml:"chunks_ahead"`
	ChunksBehind int             `yaml:"chunks_behind"`
	Skyline      SkylineSettings `yaml:"skyline"`
}

// SkylineSettings controls the cosmetic buildings generated per chunk.
type SkylineSettings struct {
	Enabled   bool    `yaml:"enabled"`
	MinHeight float64 `yaml:"min_height"`
	MaxHeight float64 `yaml:"max_height"`
	MinDepth  float64 `yaml:"min_depth"`
	MaxDepth  float64 `yaml:"max_depth"`
}

// ScoringSettings defines score weights.
type ScoringSettings struct {
	PointsPerMeter int `yaml:"points_per_meter"`
	PointsPerCoin  int `yaml:"points_per_coin"`
}

// PowerUpSettings defines power-up durations and effect magnitudes.
type PowerUpSettings struct {
	MagnetDuration       float64 `yaml:"magnet_duration"`
	DoubleScoreDuration  float64 `yaml:"double_score_duration"`
	SpeedBoostDuration   float64 `yaml:"speed_boost_duration"`
	SpeedBoostMultiplier float64 `yaml:"speed_boost_multiplier"`
	MagnetRadius         float64 `yaml:"magnet_radius"`
	MagnetPullSpeed      float64 `yaml:"magnet_pull_speed"`
}

// SpawningSettings groups the per-family placement parameters.
type SpawningSettings struct {
	Obstacles    ObstacleSpawn    `yaml:"obstacles"`
	Enemies      EnemySpawn       `yaml:"enemies"`
	Collectibles CollectibleSpawn `yaml:"collectibles"`
}

// ObstacleSpawn defines obstacle placement and the difficulty ramp.
type ObstacleSpawn struct {
	Enabled            bool    `yaml:"enabled"`
	StartZ             float64 `yaml:"start_z"`
	AheadDistance      float64 `yaml:"ahead_distance"`
	MinGap             float64 `yaml:"min_gap"`
	MaxGap             float64 `yaml:"max_gap"`
	BaseChance         float64 `yaml:"base_chance"`
	MaxChance          float64 `yaml:"max_chance"`
	DifficultyPerMeter float64 `yaml:"difficulty_per_meter"`
	CleanupMargin      float64 `yaml:"cleanup_margin"`
}

// EnemySpawn defines enemy placement and cosmetic motion.
type EnemySpawn struct {
	Enabled        bool    `yaml:"enabled"`
	StartZ         float64 `yaml:"start_z"`
	AheadDistance  float64 `yaml:"ahead_distance"`
	Gap            float64 `yaml:"gap"`
	GroundChance   float64 `yaml:"ground_chance"`
	AirChance      float64 `yaml:"air_chance"`
	CleanupMargin  float64 `yaml:"cleanup_margin"`
	MoveSpeed      float64 `yaml:"move_speed"`
	PatrolRange    float64 `yaml:"patrol_range"`
	FloatAmplitude float64 `yaml:"float_amplitude"`
	FloatFrequency float64 `yaml:"float_frequency"`
	Drift          float64 `yaml:"horizontal_drift"`
}

// CollectibleSpawn defines coin lines and power-up pickups.
type CollectibleSpawn struct {
	Enabled       bool    `yaml:"enabled"`
	CoinStartZ    float64 `yaml:"coin_start_z"`
	AheadDistance float64 `yaml:"ahead_distance"`
	CoinGap       float64 `yaml:"coin_gap"`
	LineChance    float64 `yaml:"line_chance"`
	MinCoins      int     `yaml:"min_coins"`
	MaxCoins      int     `yaml:"max_coins"`
	CoinY         float64 `yaml:"coin_y"`
	PowerUpStartZ float64 `yaml:"power_up_start_z"`
	PowerUpStep   float64 `yaml:"power_up_step"`
	PowerUpChance float64 `yaml:"power_up_chance"`
	PowerUpY      float64 `yaml:"power_up_y"`
	CleanupMargin float64 `yaml:"cleanup_margin"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
