package config

import (
	"errors"
	"fmt"
)

// ErrInvalidSettings is wrapped by every validation failure.
var ErrInvalidSettings = errors.New("config: invalid settings")

// Validate checks the settings the core cannot run without.
// Spawning sections are validated separately so a bad family only
// disables its own scheduler.
func (s RunSettings) Validate() error {
	var errs []error
	p := s.Player
	if p.RunSpeed <= 0 {
		errs = append(errs, invalid("player.run_speed", p.RunSpeed))
	}
	if p.MaxRunSpeed < p.RunSpeed {
		errs = append(errs, invalid("player.max_run_speed", p.MaxRunSpeed))
	}
	if p.LaneWidth <= 0 {
		errs = append(errs, invalid("player.lane_width", p.LaneWidth))
	}
	if p.LaneSwitchSpeed <= 0 {
		errs = append(errs, invalid("player.lane_switch_speed", p.LaneSwitchSpeed))
	}
	if p.ColliderHeight <= 0 || p.SlideHeight <= 0 || p.SlideHeight > p.ColliderHeight {
		errs = append(errs, invalid("player.slide_collider_height", p.SlideHeight))
	}
	if p.SlideDuration <= 0 {
		errs = append(errs, invalid("player.slide_duration", p.SlideDuration))
	}
	t := s.Track
	if t.ChunkLength <= 0 {
		errs = append(errs, invalid("track.chunk_length", t.ChunkLength))
	}
	if t.ChunksAhead < 1 {
		errs = append(errs, invalid("track.chunks_ahead", t.ChunksAhead))
	}
	if t.ChunksBehind < 0 {
		errs = append(errs, invalid("track.chunks_behind", t.ChunksBehind))
	}
	if s.PowerUps.SpeedBoostMultiplier <= 0 {
		errs = append(errs, invalid("power_ups.speed_boost_multiplier", s.PowerUps.SpeedBoostMultiplier))
	}
	return errors.Join(errs...)
}

// Validate checks obstacle placement parameters.
func (o ObstacleSpawn) Validate() error {
	var errs []error
	if o.AheadDistance <= 0 {
		errs = append(errs, invalid("spawning.obstacles.ahead_distance", o.AheadDistance))
	}
	if o.MinGap <= 0 || o.MaxGap < o.MinGap {
		errs = append(errs, invalid("spawning.obstacles.min_gap", o.MinGap))
	}
	if o.BaseChance < 0 || o.MaxChance > 1 || o.MaxChance < o.BaseChance {
		errs = append(errs, invalid("spawning.obstacles.max_chance", o.MaxChance))
	}
	return errors.Join(errs...)
}

// Validate checks enemy placement parameters.
func (e EnemySpawn) Validate() error {
	var errs []error
	if e.AheadDistance <= 0 {
		errs = append(errs, invalid("spawning.enemies.ahead_distance", e.AheadDistance))
	}
	if e.Gap <= 0 {
		errs = append(errs, invalid("spawning.enemies.gap", e.Gap))
	}
	if e.GroundChance < 0 || e.AirChance < 0 || e.GroundChance+e.AirChance > 1 {
		errs = append(errs, invalid("spawning.enemies.air_chance", e.AirChance))
	}
	return errors.Join(errs...)
}

// Validate checks coin and power-up placement parameters.
func (c CollectibleSpawn) Validate() error {
	var errs []error
	if c.AheadDistance <= 0 {
		errs = append(errs, invalid("spawning.collectibles.ahead_distance", c.AheadDistance))
	}
	if c.CoinGap <= 0 {
		errs = append(errs, invalid("spawning.collectibles.coin_gap", c.CoinGap))
	}
	if c.MinCoins < 1 || c.MaxCoins < c.MinCoins {
		errs = append(errs, invalid("spawning.collectibles.max_coins", c.MaxCoins))
	}
	if c.PowerUpStep <= 0 {
		errs = append(errs, invalid("spawning.collectibles.power_up_step", c.PowerUpStep))
	}
	return errors.Join(errs...)
}

func invalid(field string, value any) error {
	return fmt.Errorf("%w: %s = %v", ErrInvalidSettings, field, value)
}
