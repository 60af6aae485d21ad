package metrics

import (
	"sync"

	"github.com/rocketscienceinc/tictactoe-env/internal/entity"
)

// Keys read by result extraction. They must not change.
const (
	KeyWinX              = "WinX"
	KeyWinO              = "WinO"
	KeyTie               = "Tie"
	KeyEpisodeLenMean    = "episode_len_mean"
	KeyEpisodeReturnMean = "episode_return_mean"
	KeyReturnX           = "agent_episode_returns_mean/X"
	KeyReturnO           = "agent_episode_returns_mean/O"
)

const DefaultWindow = 1000

// Episode is the result of one finished episode.
type Episode struct {
	// Winner is PlayerX, PlayerO or PlayerTie.
	Winner  string
	Length  int
	Returns map[string]float64
}

// Outcomes keeps the last window episodes and reports smoothed outcome rates over them.
// It is safe for concurrent use.
type Outcomes struct {
	mu       sync.Mutex
	window   int
	episodes []Episode
	next     int
	total    int
}

func NewOutcomes(window int) *Outcomes {
	if window <= 0 {
		window = DefaultWindow
	}

	return &Outcomes{
		window:   window,
		episodes: make([]Episode, 0, window),
	}
}

func (that *Outcomes) Record(episode Episode) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.total++
	if len(that.episodes) < that.window {
		that.episodes = append(that.episodes, episode)
		return
	}

	that.episodes[that.next] = episode
	that.next = (that.next + 1) % that.window
}

// Total counts every recorded episode, including those that left the window.
func (that *Outcomes) Total() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.total
}

// Metrics returns the smoothed values under the stable keys. An empty window reports zeros.
func (that *Outcomes) Metrics() map[string]float64 {
	that.mu.Lock()
	defer that.mu.Unlock()

	result := map[string]float64{
		KeyWinX:              0,
		KeyWinO:              0,
		KeyTie:               0,
		KeyEpisodeLenMean:    0,
		KeyEpisodeReturnMean: 0,
		KeyReturnX:           0,
		KeyReturnO:           0,
	}

	if len(that.episodes) == 0 {
		return result
	}

	for _, episode := range that.episodes {
		switch episode.Winner {
		case entity.PlayerX:
			result[KeyWinX]++
		case entity.PlayerO:
			result[KeyWinO]++
		case entity.PlayerTie:
			result[KeyTie]++
		}

		returnX, returnO := episode.Returns[entity.PlayerX], episode.Returns[entity.PlayerO]
		result[KeyReturnX] += returnX
		result[KeyReturnO] += returnO
		result[KeyEpisodeReturnMean] += returnX + returnO
		result[KeyEpisodeLenMean] += float64(episode.Length)
	}

	count := float64(len(that.episodes))
	for key := range result {
		result[key] /= count
	}

	return result
}

// WinnerFromInfos derives the winner from the terminal step's outcome labels.
func WinnerFromInfos(outcomeX string) string {
	switch outcomeX {
	case entity.OutcomeWin:
		return entity.PlayerX
	case entity.OutcomeLose:
		return entity.PlayerO
	default:
		return entity.PlayerTie
	}
}
