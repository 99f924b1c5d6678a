package searcher

import "math"

// uct scores children of a node visited N times.
type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}

// selectChild returns the index of the child with the highest UCT score, the
// first one on ties. Children must have at least one (possibly virtual) visit.
func selectChild(children []*decision, parentVisits float64) int {
	policy := newUCT(CSquared, math.Max(parentVisits, 1))

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range children {
		child.RLock()
		score := policy.evaluate(child.rewards, child.visits)
		child.RUnlock()
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}
