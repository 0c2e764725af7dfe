// Package statistics keeps per-player results for a session and summarises
// them the way a simulation report needs: mean chips per round with a
// confidence interval.
package statistics

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/lox/twentyone/internal/game"
)

// Statistics tracks one player's results. Each round a player takes part in
// is one sample of their net chip change.
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Per-round nets for median/percentile calculation

	Hands      int
	Wins       int
	Blackjacks int
	Busts      int
	Splits     int
	Net        int
}

// AddRound records a player's net chip change for one round.
func (s *Statistics) AddRound(net int) {
	v := float64(net)
	s.Rounds++
	s.SumNet += v
	s.SumNet2 += v * v
	s.Values = append(s.Values, v)
	s.Net += net
}

// AddHand records one settled hand.
func (s *Statistics) AddHand(result game.HandResult) {
	s.Hands++
	if result.Won {
		s.Wins++
	}
	switch score := result.Hand.Score; {
	case score.IsBlackjack():
		s.Blackjacks++
	case score.IsBust():
		s.Busts++
	}
}

// Merge folds other into s.
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)
	s.Hands += other.Hands
	s.Wins += other.Wins
	s.Blackjacks += other.Blackjacks
	s.Busts += other.Busts
	s.Splits += other.Splits
	s.Net += other.Net
}

// Mean returns the average chips won per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of per-round results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of per-round results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of hands won.
func (s *Statistics) WinRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Hands)
}

// Median returns the median per-round result
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks the counters agree with each other.
func (s *Statistics) Validate() error {
	if math.Abs(s.SumNet-float64(s.Net)) > 1e-6 {
		return fmt.Errorf("ledger mismatch: sum of rounds %.0f, net %d", s.SumNet, s.Net)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("recorded %d values for %d rounds", len(s.Values), s.Rounds)
	}
	if s.Wins+s.Busts > s.Hands {
		return fmt.Errorf("%d wins and %d busts from only %d hands", s.Wins, s.Busts, s.Hands)
	}
	if s.Blackjacks > s.Hands {
		return fmt.Errorf("%d blackjacks from only %d hands", s.Blackjacks, s.Hands)
	}
	return nil
}

// Tracker builds Statistics for every player from round events. It is safe
// to subscribe to a bus that publishes from another goroutine.
type Tracker struct {
	mu      sync.Mutex
	players map[string]*Statistics
	order   []string
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{players: make(map[string]*Statistics)}
}

// OnEvent implements game.EventSubscriber.
func (t *Tracker) OnEvent(event game.GameEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch e := event.(type) {
	case game.PlayerActionEvent:
		if e.Action == game.Split {
			t.get(e.Hand.Owner).Splits++
		}
	case game.RoundEndEvent:
		if e.Result == nil {
			return
		}
		for _, h := range e.Result.Hands {
			t.get(h.Player.Name).AddHand(h)
		}
		for _, w := range e.Result.Winnings {
			t.get(w.Player.Name).AddRound(w.Net)
		}
	}
}

func (t *Tracker) get(name string) *Statistics {
	s, ok := t.players[name]
	if !ok {
		s = &Statistics{}
		t.players[name] = s
		t.order = append(t.order, name)
	}
	return s
}

// Players returns player names in the order they were first seen.
func (t *Tracker) Players() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.order...)
}

// Player returns a copy of one player's statistics.
func (t *Tracker) Player(name string) (Statistics, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.players[name]
	if !ok {
		return Statistics{}, false
	}
	out := *s
	out.Values = append([]float64(nil), s.Values...)
	return out, true
}

// Overall returns everyone's results combined.
func (t *Tracker) Overall() Statistics {
	t.mu.Lock()
	defer t.mu.Unlock()
	var total Statistics
	for _, name := range t.order {
		total.Merge(t.players[name])
	}
	return total
}

// Merge folds another tracker's results into t, matching players by name.
func (t *Tracker) Merge(other *Tracker) {
	if other == t {
		return
	}
	other.mu.Lock()
	defer other.mu.Unlock()
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, name := range other.order {
		t.get(name).Merge(other.players[name])
	}
}

// PlayerReport is one player's line in a Report.
type PlayerReport struct {
	Name       string  `json:"name"`
	Rounds     int     `json:"rounds"`
	Hands      int     `json:"hands"`
	Wins       int     `json:"wins"`
	Blackjacks int     `json:"blackjacks"`
	Busts      int     `json:"busts"`
	Splits     int     `json:"splits"`
	Net        int     `json:"net"`
	Mean       float64 `json:"mean_per_round"`
	StdDev     float64 `json:"stddev_per_round"`
	CILow      float64 `json:"ci95_low"`
	CIHigh     float64 `json:"ci95_high"`
}

// Report is the serialisable form of a tracker.
type Report struct {
	Overall PlayerReport   `json:"overall"`
	Players []PlayerReport `json:"players"`
}

func playerReport(name string, s Statistics) PlayerReport {
	low, high := s.ConfidenceInterval95()
	return PlayerReport{
		Name:       name,
		Rounds:     s.Rounds,
		Hands:      s.Hands,
		Wins:       s.Wins,
		Blackjacks: s.Blackjacks,
		Busts:      s.Busts,
		Splits:     s.Splits,
		Net:        s.Net,
		Mean:       s.Mean(),
		StdDev:     s.StdDev(),
		CILow:      low,
		CIHigh:     high,
	}
}

// Report summarises every player and the combined results.
func (t *Tracker) Report() Report {
	r := Report{Overall: playerReport("all", t.Overall())}
	for _, name := range t.Players() {
		s, _ := t.Player(name)
		r.Players = append(r.Players, playerReport(name, s))
	}
	return r
}
