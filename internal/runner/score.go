package runner

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/config"
)

// HighScoreStore persists the single best score.
type HighScoreStore interface {
	HighScore() (int, error)
	SaveHighScore(score int) error
}

// DistanceSource supplies the distance traveled in the current run.
type DistanceSource interface {
	Distance() float64
}

// ScoreState is the read-only score view.
type ScoreState struct {
	Current int
	High    int
	Coins   int // Physical coins picked up this run
}

// ScoreTracker derives the score from distance and coin units.
// Coin units already include the score multiplier applied by the caller.
type ScoreTracker struct {
	scoring  config.ScoringSettings
	distance DistanceSource
	store    HighScoreStore
	logger   *log.Logger

	current   int
	high      int
	coins     int
	coinUnits int
}

// NewScoreTracker loads the high score and subscribes to phase changes.
// A nil store disables persistence.
func NewScoreTracker(scoring config.ScoringSettings, distance DistanceSource, store HighScoreStore, bus *Bus, logger *log.Logger) *ScoreTracker {
	logger = orDiscard(logger)
	st := &ScoreTracker{
		scoring:  scoring,
		distance: distance,
		store:    store,
		logger:   logger,
	}
	if store != nil {
		high, err := store.HighScore()
		if err != nil {
			logger.Warn("failed to load high score", "err", err)
		} else {
			st.high = high
		}
	}
	bus.Subscribe(st.onEvent)
	return st
}

func (st *ScoreTracker) onEvent(e Event) {
	sc, ok := e.(StateChanged)
	if !ok {
		return
	}
	switch sc.To {
	case PhasePlaying:
		st.current = 0
		st.coins = 0
		st.coinUnits = 0
	case PhaseGameOver:
		st.Update()
		st.finish()
	}
}

func (st *ScoreTracker) finish() {
	if st.current <= st.high {
		return
	}
	st.high = st.current
	if st.store == nil {
		return
	}
	if err := st.store.SaveHighScore(st.high); err != nil {
		st.logger.Warn("failed to save high score", "score", st.high, "err", err)
		return
	}
	st.logger.Info("new high score", "score", st.high)
}

// AddCoins records one physical coin worth units coin values.
func (st *ScoreTracker) AddCoins(units int) {
	st.coins++
	st.coinUnits += units
}

// Update recomputes the current score from distance and coins.
func (st *ScoreTracker) Update() {
	meters := int(math.Floor(st.distance.Distance()))
	st.current = meters*st.scoring.PointsPerMeter + st.coinUnits*st.scoring.PointsPerCoin
}

// State returns the current score view.
func (st *ScoreTracker) State() ScoreState {
	return ScoreState{Current: st.current, High: st.high, Coins: st.coins}
}
