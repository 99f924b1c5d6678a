// meta/meta.go
package meta

// GO_ROUTINES defines the number of goroutines an MCTS agent searches with
// when its configuration leaves it unset.
const GO_ROUTINES = 4

// EPISODES defines the number of episodes for MCTS.
const EPISODES = 400

// WITH_CUTOFF defines the rollout depth after which MCTS evaluates the position.
const WITH_CUTOFF = 30

// GAMES defines the number of games per matchup.
const GAMES = 100
