package metrics

import (
	"sync"
	"testing"

	"github.com/rocketscienceinc/tictactoe-env/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestOutcomes_Metrics(t *testing.T) {
	t.Run("Empty window", func(t *testing.T) {
		outcomes := NewOutcomes(10)

		metrics := outcomes.Metrics()

		assert.Len(t, metrics, 7)
		assert.Zero(t, metrics[KeyTie])
		assert.Zero(t, outcomes.Total())
	})

	t.Run("Rates, lengths and returns", func(t *testing.T) {
		// Given: one X win, one O win and two ties
		outcomes := NewOutcomes(10)
		outcomes.Record(Episode{Winner: entity.PlayerX, Length: 5, Returns: map[string]float64{"X": 1, "O": -1}})
		outcomes.Record(Episode{Winner: entity.PlayerO, Length: 6, Returns: map[string]float64{"X": -1, "O": 1}})
		outcomes.Record(Episode{Winner: entity.PlayerTie, Length: 9, Returns: map[string]float64{"X": 0.2, "O": 0.4}})
		outcomes.Record(Episode{Winner: entity.PlayerTie, Length: 8, Returns: map[string]float64{"X": 0.2, "O": 0.5}})

		// When: reading the metrics
		metrics := outcomes.Metrics()

		// Then: every key is averaged over the four episodes
		assert.InDelta(t, 0.25, metrics[KeyWinX], 1e-9)
		assert.InDelta(t, 0.25, metrics[KeyWinO], 1e-9)
		assert.InDelta(t, 0.5, metrics[KeyTie], 1e-9)
		assert.InDelta(t, 7, metrics[KeyEpisodeLenMean], 1e-9)
		assert.InDelta(t, 0.1, metrics[KeyReturnX], 1e-9)
		assert.InDelta(t, 0.225, metrics[KeyReturnO], 1e-9)
		assert.InDelta(t, 0.325, metrics[KeyEpisodeReturnMean], 1e-9)
	})

	t.Run("Old episodes leave the window", func(t *testing.T) {
		// Given: a window of two
		outcomes := NewOutcomes(2)

		// When: an X win is followed by two ties
		outcomes.Record(Episode{Winner: entity.PlayerX, Length: 5})
		outcomes.Record(Episode{Winner: entity.PlayerTie, Length: 9})
		outcomes.Record(Episode{Winner: entity.PlayerTie, Length: 9})

		// Then: only the ties count but the total remembers all three
		metrics := outcomes.Metrics()
		assert.InDelta(t, 1, metrics[KeyTie], 1e-9)
		assert.Zero(t, metrics[KeyWinX])
		assert.Equal(t, 3, outcomes.Total())
	})
}

func TestOutcomes_ConcurrentRecord(t *testing.T) {
	outcomes := NewOutcomes(0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				outcomes.Record(Episode{Winner: entity.PlayerTie, Length: 9})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 800, outcomes.Total())
	assert.InDelta(t, 1, outcomes.Metrics()[KeyTie], 1e-9)
}

func TestWinnerFromInfos(t *testing.T) {
	assert.Equal(t, entity.PlayerX, WinnerFromInfos(entity.OutcomeWin))
	assert.Equal(t, entity.PlayerO, WinnerFromInfos(entity.OutcomeLose))
	assert.Equal(t, entity.PlayerTie, WinnerFromInfos(entity.OutcomeTie))
}
