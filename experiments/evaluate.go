package experiments

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"quixo/engine"
	"quixo/experiments/metrics"
	"quixo/game"
	"quixo/player"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Factory builds a fresh strategy for one game. Every game gets its own
// instances, so strategies never need to be safe for concurrent use.
type Factory func(seed uint64) player.Strategy

type EvalConfig struct {
	Games   int
	Workers int
	Seed    uint64 // Master seed; per-game seeds are drawn from it
	Retries int
	MoveCap int
}

// GameResult is one game of an evaluation.
type GameResult struct {
	Index   int
	Seeds   [2]uint64
	Outcome engine.Outcome
	Capped  bool
	Game    metrics.GameMetric
	Moves   []metrics.MoveMetric
}

type Result struct {
	Games      int
	Wins       [2]int // Indexed by game.Player
	Forfeits   [2]int // Games lost by forfeit, indexed by the offending player
	Unfinished int    // Games stopped by the move cap
	Duration   time.Duration
	Records    []GameResult
}

// WinRate is the share of all games won by p, unfinished games included in
// the denominator.
func (r Result) WinRate(p game.Player) float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Wins[p]) / float64(r.Games)
}

// Evaluate plays cfg.Games games of zero against one on cfg.Workers
// goroutines. Results are deterministic for a given seed as long as the
// strategies are.
func Evaluate(cfg EvalConfig, zero, one Factory) (Result, error) {
	if cfg.Games <= 0 {
		return Result{}, fmt.Errorf("games must be positive, got %d", cfg.Games)
	}
	workers := min(max(cfg.Workers, 1), cfg.Games)

	// Draw seeds up front so they do not depend on scheduling
	master := rand.New(rand.NewSource(cfg.Seed))
	seeds := make([][2]uint64, cfg.Games)
	for i := range seeds {
		seeds[i] = [2]uint64{master.Uint64(), master.Uint64()}
	}

	task := make(chan int, cfg.Games)
	for i := 0; i < cfg.Games; i++ {
		task <- i
	}
	close(task)

	start := time.Now()
	records := make([]GameResult, cfg.Games)
	errs := make([]error, cfg.Games)
	var completed atomic.Int32
	every := max(cfg.Games/10, 1)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range task {
				records[i], errs[i] = runGame(i, seeds[i], cfg, zero, one)
				if done := int(completed.Add(1)); done%every == 0 || done == cfg.Games {
					log.Info().Msgf("played %d of %d games", done, cfg.Games)
				}
			}
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return Result{}, err
	}

	result := Result{Games: cfg.Games, Duration: time.Since(start), Records: records}
	for _, record := range records {
		if record.Capped {
			result.Unfinished++
			continue
		}
		result.Wins[record.Outcome.Winner]++
		if record.Outcome.Forfeit {
			result.Forfeits[record.Outcome.Winner.Opponent()]++
		}
	}
	return result, nil
}

func runGame(index int, seeds [2]uint64, cfg EvalConfig, zero, one Factory) (GameResult, error) {
	s := engine.NewSession(zero(seeds[0]), one(seeds[1]),
		engine.WithRetries(cfg.Retries),
		engine.WithMoveCap(cfg.MoveCap),
	)
	outcome, err := s.Run()
	capped := errors.Is(err, engine.ErrMoveCapReached)
	if err != nil && !capped {
		return GameResult{}, fmt.Errorf("game %d: %w", index, err)
	}

	gameMetric, moveMetrics := s.Metrics()
	return GameResult{
		Index:   index,
		Seeds:   seeds,
		Outcome: outcome,
		Capped:  capped,
		Game:    gameMetric,
		Moves:   moveMetrics,
	}, nil
}
