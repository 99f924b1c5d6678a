package experiments

import (
	"fmt"
	"sort"
	"time"

	"quixo/engine"
	"quixo/experiments/metrics"
	"quixo/game"
	"quixo/meta"
	"quixo/player"
	"quixo/searcher"
	"quixo/searcher/agent"

	"github.com/rs/zerolog/log"
)

const TimeBudget = 10 * time.Millisecond

// Settings apply to every matchup of an experiment.
type Settings struct {
	Games     int
	Workers   int
	Seed      uint64
	Retries   int
	MoveCap   int
	OutputDir string // CSV output is skipped when empty
}

func (s Settings) eval(offset int) EvalConfig {
	return EvalConfig{
		Games:   s.Games,
		Workers: s.Workers,
		Seed:    s.Seed + uint64(offset),
		Retries: s.Retries,
		MoveCap: s.MoveCap,
	}
}

type MatchUp [2]metrics.AgentConfig

type preset func() ([]metrics.AgentConfig, []MatchUp)

var presets = map[string]preset{
	"baseline":        baseline,
	"parallelization": parallelization,
	"throughput":      throughput,
	"cutoff":          cutoff,
}

// Names lists the named experiments.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// baseline pits each kind of strategy against uniform random play, including
// the naive random player that needs re-soliciting.
func baseline() ([]metrics.AgentConfig, []MatchUp) {
	random := metrics.AgentConfig{ID: 1, Kind: metrics.KindRandom}
	naive := metrics.AgentConfig{ID: 2, Kind: metrics.KindNaive}
	greedy := metrics.AgentConfig{ID: 3, Kind: metrics.KindGreedy, Evaluation: "lines"}
	mcts := metrics.AgentConfig{ID: 4, Kind: metrics.KindMCTS, Goroutines: meta.GO_ROUTINES, Episodes: meta.EPISODES, Cutoff: meta.WITH_CUTOFF, Evaluation: "lines"}

	configs := []metrics.AgentConfig{random, naive, greedy, mcts}
	matchUps := []MatchUp{
		{random, random},
		{naive, random},
		{greedy, random},
		{mcts, random},
		{mcts, greedy},
	}
	return configs, matchUps
}

var parallelConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: metrics.KindMCTS, Goroutines: 1, Duration: TimeBudget, Cutoff: meta.WITH_CUTOFF},
	{ID: 2, Kind: metrics.KindMCTS, Goroutines: 2, Duration: TimeBudget, Cutoff: meta.WITH_CUTOFF},
	{ID: 3, Kind: metrics.KindMCTS, Goroutines: 4, Duration: TimeBudget, Cutoff: meta.WITH_CUTOFF},
	{ID: 4, Kind: metrics.KindMCTS, Goroutines: 8, Duration: TimeBudget, Cutoff: meta.WITH_CUTOFF},
	{ID: 5, Kind: metrics.KindMCTS, Goroutines: 16, Duration: TimeBudget, Cutoff: meta.WITH_CUTOFF},
}

// parallelization pairs each agent against the sequential agent under the
// same time budget.
func parallelization() ([]metrics.AgentConfig, []MatchUp) {
	sequential := parallelConfigs[0]
	matchUps := []MatchUp{}
	for _, config := range parallelConfigs[1:] {
		matchUps = append(matchUps, MatchUp{sequential, config})
	}
	return parallelConfigs, matchUps
}

// throughput uses the same config for both players in each game for the
// same playing strength and similar game length.
func throughput() ([]metrics.AgentConfig, []MatchUp) {
	matchUps := []MatchUp{}
	for _, config := range parallelConfigs {
		matchUps = append(matchUps, MatchUp{config, config})
	}
	return parallelConfigs, matchUps
}

// cutoff pairs the full playout agent against agents that stop rollouts early.
func cutoff() ([]metrics.AgentConfig, []MatchUp) {
	full := metrics.AgentConfig{ID: 0, Kind: metrics.KindMCTS, Goroutines: meta.GO_ROUTINES, Duration: TimeBudget}
	configs := []metrics.AgentConfig{full}
	matchUps := []MatchUp{}
	for i, depth := range []int{5, 15, 30, 60} {
		config := full
		config.ID = i + 1
		config.Cutoff = depth
		config.Evaluation = "lines"
		configs = append(configs, config)
		matchUps = append(matchUps, MatchUp{full, config})
	}
	return configs, matchUps
}

// RunExperiment runs a named experiment and stores its records as CSV.
func RunExperiment(name string, settings Settings) error {
	preset, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown experiment %q, expected one of %v", name, Names())
	}
	configs, matchUps := preset()
	return runExperiment(name, configs, matchUps, settings)
}

// RunMatchUp evaluates zero against one and stores the records as CSV when an
// output directory is set.
func RunMatchUp(zero, one metrics.AgentConfig, settings Settings) (Result, error) {
	zeroFactory, err := createStrategy(zero)
	if err != nil {
		return Result{}, fmt.Errorf("player zero: %w", err)
	}
	oneFactory, err := createStrategy(one)
	if err != nil {
		return Result{}, fmt.Errorf("player one: %w", err)
	}

	result, err := Evaluate(settings.eval(0), zeroFactory, oneFactory)
	if err != nil {
		return Result{}, err
	}
	if settings.OutputDir == "" {
		return result, nil
	}

	gameRecords, moveRecords := toRecords(0, MatchUp{zero, one}, result)
	err = store(settings.OutputDir, "matchup", []metrics.AgentConfig{zero, one}, gameRecords, moveRecords)
	return result, err
}

func runExperiment(name string, configs []metrics.AgentConfig, matchUps []MatchUp, settings Settings) error {
	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchUp := range matchUps {
		config1 := matchUp[0]
		config2 := matchUp[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		factory1, err := createStrategy(config1)
		if err != nil {
			return fmt.Errorf("matchup %d: %w", mi+1, err)
		}
		factory2, err := createStrategy(config2)
		if err != nil {
			return fmt.Errorf("matchup %d: %w", mi+1, err)
		}

		result, err := Evaluate(settings.eval(mi), factory1, factory2)
		if err != nil {
			return fmt.Errorf("matchup %d: %w", mi+1, err)
		}

		games, moves := toRecords(count, matchUp, result)
		count += len(games)
		gameRecords = append(gameRecords, games...)
		moveRecords = append(moveRecords, moves...)

		log.Info().Msgf("completed matchup %d of %d: agent1 won %.2f, agent2 won %.2f, %d unfinished, %d forfeits",
			mi+1, len(matchUps), result.WinRate(game.PlayerZero), result.WinRate(game.PlayerOne),
			result.Unfinished, result.Forfeits[0]+result.Forfeits[1])
	}

	log.Info().Msgf("completed %s experiment", name)

	if settings.OutputDir == "" {
		return nil
	}
	return store(settings.OutputDir, name, configs, gameRecords, moveRecords)
}

func toRecords(offset int, matchUp MatchUp, result Result) ([]metrics.GameRecord, []metrics.MoveRecord) {
	gameRecords := make([]metrics.GameRecord, 0, len(result.Records))
	moveRecords := []metrics.MoveRecord{}
	for _, record := range result.Records {
		id := offset + record.Index + 1
		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         id,
			Agent1:     matchUp[0].ID,
			Agent2:     matchUp[1].ID,
			Seed:       record.Seeds[0],
			GameMetric: record.Game,
		})
		for _, mm := range record.Moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       id,
				MoveMetric: mm,
			})
		}
	}
	return gameRecords, moveRecords
}

func store(root, name string, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) error {
	// Store experiment metadata
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}

func createStrategy(config metrics.AgentConfig) (Factory, error) {
	evaluate, err := game.LookupEvaluation(config.Evaluation)
	if err != nil {
		return nil, err
	}

	switch config.Kind {
	case metrics.KindRandom, "":
		return func(seed uint64) player.Strategy { return player.NewRandomStrategy(seed) }, nil
	case metrics.KindNaive:
		return func(seed uint64) player.Strategy { return player.NewNaiveRandomStrategy(seed) }, nil
	case metrics.KindGreedy:
		return func(seed uint64) player.Strategy { return player.NewGreedyStrategy(seed, evaluate) }, nil
	case metrics.KindMCTS:
		return func(seed uint64) player.Strategy {
			return &engine.MCTSAdapter{InternalAgent: agent.NewEvaluationAgent(createMCTS(config, evaluate, seed))}
		}, nil
	case metrics.KindTraining:
		return func(seed uint64) player.Strategy {
			mcts := createMCTS(config, evaluate, seed)
			return &engine.MCTSAdapter{InternalAgent: agent.NewTrainingAgent(mcts, config.Temperature, seed^0x9e3779b97f4a7c15)}
		}, nil
	default:
		return nil, fmt.Errorf("unknown agent kind %q", config.Kind)
	}
}

func createMCTS(config metrics.AgentConfig, evaluate game.Evaluate, seed uint64) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithEvaluationFn(evaluate),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Episodes <= 0 && config.Duration <= 0 {
		options = append(options, searcher.WithEpisodes(meta.EPISODES))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}

	goroutines := config.Goroutines
	if goroutines <= 0 {
		goroutines = meta.GO_ROUTINES
	}
	return searcher.NewMCTS(goroutines, options...)
}
