package harness

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// budgetMargin is the slack reserved by the search loop so that its final
// iteration (one constraint call plus at most one objective call) cannot
// overshoot the budget. The comparator's compliance check uses the same
// margin; the two must stay in lockstep for the comparison to be fair.
const budgetMargin = 2

// Violation returns the penalty of a constraint evaluation: the maximum
// component, floored at zero. A fully feasible point has Violation 0.
func Violation(c []float64) float64 {
	if len(c) == 0 {
		return 0
	}
	v := floats.Max(c)
	if v < 0 {
		return 0
	}
	return v
}

// RandomSearch is the baseline optimizer: a derivative-free random walk
// around the initial point. Candidates are x0 plus independent standard
// normal steps. Feasibility dominates the objective: any feasible point
// beats any infeasible one, and among infeasible points the smallest
// maximum violation wins, so the search degrades toward a near-feasible
// point when no feasible candidate is ever drawn. Ties keep the earlier
// point. With a budget below 2 the loop never runs and x0 is returned
// unchanged.
func RandomSearch(t Task) ([]float64, error) {
	xBest := append([]float64(nil), t.X0...)
	yBest := math.Inf(1)
	pBest := math.Inf(1)

	step := distuv.Normal{Mu: 0, Sigma: 1, Src: t.RNG}
	x := make([]float64, len(t.X0))

	for t.Count() < t.Budget-budgetMargin {
		for i := range x {
			x[i] = t.X0[i] + step.Rand()
		}

		cx, err := t.Constraint(x)
		if err != nil {
			return nil, err
		}
		p := Violation(cx)

		if p <= 0 {
			if p < pBest {
				pBest = p
			}
			y, err := t.Objective(x)
			if err != nil {
				return nil, err
			}
			if y < yBest {
				yBest = y
				xBest = append(xBest[:0], x...)
			}
		} else if p < pBest {
			pBest = p
			xBest = append(xBest[:0], x...)
		}
	}

	return xBest, nil
}
