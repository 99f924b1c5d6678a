package searcher

import (
	"sync"

	"quixo/game"
)

// decision is a tree node for one game state. Its statistics are kept from the
// perspective of the player whose move led here, so a parent can rank its
// children directly.
type decision struct {
	sync.RWMutex
	parent     *decision
	player     game.Player // Player who moved into this node
	hash       game.StateHash
	unexplored []game.Move
	explored   []game.Move
	children   []*decision
	rewards    float64
	visits     float64
}

func newDecision(parent *decision, state game.State) *decision {
	moves := state.LegalMoves()
	return &decision{
		parent:     parent,
		player:     state.Player().Opponent(),
		hash:       state.Hash(),
		unexplored: moves,
		explored:   make([]game.Move, 0, len(moves)),
		children:   make([]*decision, 0, len(moves)),
	}
}

// SelectOrExpand descends one level. It expands an unexplored move if there
// is one, otherwise selects the child with the highest UCT score. Either way
// the returned child carries a virtual loss until it is backed up. A terminal
// node returns itself.
func (d *decision) SelectOrExpand(state game.State) (*decision, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.unexplored) == 0 && len(d.children) == 0 { // Terminal node
		return d, state, false
	}

	if n := len(d.unexplored); n > 0 { // Expandable node
		move := d.unexplored[n-1]
		d.unexplored = d.unexplored[:n-1]
		childState := state.Play(move)
		child := newDecision(d, childState)
		child.applyLoss()
		d.explored = append(d.explored, move)
		d.children = append(d.children, child)
		return child, childState, false
	}

	// Fully expanded node
	ith := selectChild(d.children, d.visits)
	child := d.children[ith]
	child.applyLoss()
	return child, state.Play(d.explored[ith]), true
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

// Backup records a rollout result scored for player and returns the parent.
func (d *decision) Backup(player game.Player, score float64) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
	}

	if d.player == player {
		d.rewards += score
	} else {
		d.rewards -= score
	}
	d.visits++

	return d.parent
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

func (d *decision) Value() float64 {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

// Policy returns the visit count of every explored move.
func (d *decision) Policy() map[game.Move]float64 {
	d.RLock()
	defer d.RUnlock()

	policy := make(map[game.Move]float64, len(d.children))
	for i, child := range d.children {
		policy[d.explored[i]] = child.Value()
	}
	return policy
}
