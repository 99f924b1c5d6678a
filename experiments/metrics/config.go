package metrics

import "time"

// Strategy kinds accepted in AgentConfig.Kind.
const (
	KindRandom   = "random"
	KindNaive    = "naive"
	KindGreedy   = "greedy"
	KindMCTS     = "mcts"
	KindTraining = "mcts-training"
)

// AgentConfig describes one side of a matchup. The yaml and env tags let the
// same struct be read from the configuration file.
type AgentConfig struct {
	ID          int           `yaml:"id"`
	Kind        string        `yaml:"kind" env:"KIND" env-default:"random"`
	Goroutines  int           `yaml:"goroutines" env:"GOROUTINES" env-default:"1"`
	Duration    time.Duration `yaml:"duration" env:"DURATION"`
	Episodes    int           `yaml:"episodes" env:"EPISODES"`
	Cutoff      int           `yaml:"cutoff" env:"CUTOFF"`
	Evaluation  string        `yaml:"evaluation" env:"EVALUATION" env-default:"lines"`
	Temperature float64       `yaml:"temperature" env:"TEMPERATURE" env-default:"1"`
}
