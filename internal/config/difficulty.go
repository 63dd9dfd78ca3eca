package config

import "math"

// Curve interpolates a value from a base to a cap as distance grows.
// Progress is distance*rate clamped to [0, 1].
type Curve struct {
	Base float64
	Max  float64
	Rate float64
}

// ObstacleCurve returns the obstacle spawn-chance curve.
func (o ObstacleSpawn) ObstacleCurve() Curve {
	return Curve{Base: o.BaseChance, Max: o.MaxChance, Rate: o.DifficultyPerMeter}
}

// Progress returns the difficulty level (0.0 to 1.0) at the given distance.
func (c Curve) Progress(distance float64) float64 {
	return clampF(distance*c.Rate, 0.0, 1.0)
}

// At returns the interpolated value at the given distance.
func (c Curve) At(distance float64) float64 {
	return c.Base + (c.Max-c.Base)*c.Progress(distance)
}

// BaseSpeed returns the forward speed for the distance traveled:
// run speed plus rate per 100 units, clamped to the max run speed.
func (p PlayerSettings) BaseSpeed(distance float64) float64 {
	return math.Min(p.RunSpeed+(distance/100)*p.SpeedIncreaseRate, p.MaxRunSpeed)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
