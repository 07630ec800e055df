package problems

import (
	"golang.org/x/exp/rand"

	"github.com/copyleftdev/GAUNTLET/internal/harness"
)

// The simple problem set: three small constrained minimization tasks with
// analytic gradients, each allowed 2000 weighted evaluations per trial.

const simpleBudget = 2000

func init() {
	Register(&harness.Problem{
		Name:   "simple1",
		Dim:    2,
		Budget: simpleBudget,
		Objective: func(x []float64) (float64, error) {
			return -x[0] * x[1], nil
		},
		Gradient: func(x []float64) ([]float64, error) {
			return []float64{-x[1], -x[0]}, nil
		},
		Constraint: func(x []float64) ([]float64, error) {
			return []float64{
				x[0] + x[1]*x[1] - 1,
				-x[0] - x[1],
			}, nil
		},
		Init: func(rng *rand.Rand) []float64 {
			// Uniform over [0,2]^2.
			return []float64{rng.Float64() * 2, rng.Float64() * 2}
		},
	})

	Register(&harness.Problem{
		Name:   "simple2",
		Dim:    2,
		Budget: simpleBudget,
		Objective: func(x []float64) (float64, error) {
			// Rosenbrock.
			a := x[1] - x[0]*x[0]
			b := 1 - x[0]
			return 100*a*a + b*b, nil
		},
		Gradient: func(x []float64) ([]float64, error) {
			return []float64{
				2 * (-1 + x[0] + 200*x[0]*x[0]*x[0] - 200*x[0]*x[1]),
				200 * (x[1] - x[0]*x[0]),
			}, nil
		},
		Constraint: func(x []float64) ([]float64, error) {
			d := x[0] - 1
			return []float64{
				d*d*d - x[1] + 1,
				x[0] + x[1] - 2,
			}, nil
		},
		Init: func(rng *rand.Rand) []float64 {
			// Uniform over [-1,1]^2.
			return []float64{rng.Float64()*2 - 1, rng.Float64()*2 - 1}
		},
	})

	Register(&harness.Problem{
		Name:   "simple3",
		Dim:    3,
		Budget: simpleBudget,
		Objective: func(x []float64) (float64, error) {
			return x[0] - 2*x[1] + x[2], nil
		},
		Gradient: func(x []float64) ([]float64, error) {
			return []float64{1, -2, 1}, nil
		},
		Constraint: func(x []float64) ([]float64, error) {
			return []float64{x[0]*x[0] + x[1]*x[1] + x[2]*x[2] - 1}, nil
		},
		Init: func(rng *rand.Rand) []float64 {
			// Uniform over the box [-2,2] x [-2,2] x {0}.
			lo := []float64{-2, 2, 0}
			hi := []float64{2, -2, 0}
			x := make([]float64, 3)
			for i := range x {
				x[i] = lo[i] + rng.Float64()*(hi[i]-lo[i])
			}
			return x
		},
	})
}
