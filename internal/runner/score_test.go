package runner

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-runner/internal/config"
)

type fixedDistance float64

func (f fixedDistance) Distance() float64 { return float64(f) }

type memoryStore struct {
	high  int
	saves []int
	err   error
}

func (m *memoryStore) HighScore() (int, error) { return m.high, m.err }

func (m *memoryStore) SaveHighScore(score int) error {
	if m.err != nil {
		return m.err
	}
	m.saves = append(m.saves, score)
	m.high = score
	return nil
}

func TestScoreFormula(t *testing.T) {
	bus := NewBus()
	st := NewScoreTracker(config.DefaultRunSettings().Scoring, fixedDistance(123.9), nil, bus, nil)

	st.AddCoins(1)
	st.AddCoins(2) // picked up under double score
	st.Update()

	got := st.State()
	if got.Current != 123+30 {
		t.Errorf("Current = %d, expected 153", got.Current)
	}
	if got.Coins != 2 {
		t.Errorf("Coins = %d, expected 2 physical coins", got.Coins)
	}
}

func TestHighScoreSavedOnlyWhenBeaten(t *testing.T) {
	tests := []struct {
		name      string
		stored    int
		distance  float64
		wantSaves int
		wantHigh  int
	}{
		{"beaten", 50, 100, 1, 100},
		{"equal", 100, 100, 0, 100},
		{"lower", 500, 100, 0, 500},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &memoryStore{high: tc.stored}
			bus := NewBus()
			st := NewScoreTracker(config.DefaultRunSettings().Scoring, fixedDistance(tc.distance), store, bus, nil)
			if st.State().High != tc.stored {
				t.Fatalf("High = %d, expected loaded %d", st.State().High, tc.stored)
			}

			bus.Publish(StateChanged{From: PhaseMenu, To: PhasePlaying})
			bus.Publish(StateChanged{From: PhasePlaying, To: PhaseGameOver})

			if len(store.saves) != tc.wantSaves {
				t.Errorf("saves = %v, expected %d", store.saves, tc.wantSaves)
			}
			if st.State().High != tc.wantHigh {
				t.Errorf("High = %d, expected %d", st.State().High, tc.wantHigh)
			}
		})
	}
}

func TestScoreResetsOnPlaying(t *testing.T) {
	bus := NewBus()
	st := NewScoreTracker(config.DefaultRunSettings().Scoring, fixedDistance(0), nil, bus, nil)
	st.AddCoins(1)
	st.Update()

	bus.Publish(StateChanged{From: PhaseGameOver, To: PhasePlaying})
	if got := st.State(); got.Current != 0 || got.Coins != 0 {
		t.Errorf("State() after restart = %+v, expected zero", got)
	}
}

func TestScoreStoreErrorsAreNotFatal(t *testing.T) {
	store := &memoryStore{err: errors.New("disk gone")}
	bus := NewBus()
	st := NewScoreTracker(config.DefaultRunSettings().Scoring, fixedDistance(10), store, bus, nil)

	bus.Publish(StateChanged{From: PhasePlaying, To: PhaseGameOver})
	if st.State().High != 10 {
		t.Errorf("High = %d, expected in-memory 10 after failed save", st.State().High)
	}
}
