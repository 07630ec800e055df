// Package harness grades user-supplied optimizers against a seeded
// random-search baseline under a hard evaluation budget.
package harness

import (
	"golang.org/x/exp/rand"
)

// Objective evaluates the objective function at x.
type Objective func(x []float64) (float64, error)

// Gradient evaluates the gradient of the objective at x.
type Gradient func(x []float64) ([]float64, error)

// Constraint evaluates the constraint components at x. A point is feasible
// when every component is <= 0.
type Constraint func(x []float64) ([]float64, error)

// InitFunc draws a fresh initial point from the problem's starting
// distribution using the trial's random stream.
type InitFunc func(rng *rand.Rand) []float64

// Problem is one named constrained minimization task. The harness only
// reads problems; registration lives in internal/problems.
type Problem struct {
	Name       string
	Dim        int
	Budget     int
	Objective  Objective
	Gradient   Gradient
	Constraint Constraint
	Init       InitFunc
}

// Task bundles everything an optimizer receives for a single trial. The
// function fields are counted: each call spends evaluation budget, and
// Count reports the weighted total spent so far.
type Task struct {
	Objective  Objective
	Gradient   Gradient
	Constraint Constraint
	X0         []float64
	Budget     int
	Count      func() int
	Problem    string
	RNG        *rand.Rand
}

// Optimizer runs one optimization trial and returns the best point found.
// Implementations must respect Task.Budget using Task.Count, the same
// discipline the baseline follows.
type Optimizer func(t Task) ([]float64, error)
