package harness

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// sphereTask builds a counted task for f(x) = x1^2 + x2^2 subject to
// x1 + x2 - 1 <= 0, recording every candidate the search evaluates.
func sphereTask(x0 []float64, budget int, seed uint64) (Task, *Meter, *[][]float64) {
	meter := NewMeter()
	var seen [][]float64

	objective := func(x []float64) (float64, error) {
		return x[0]*x[0] + x[1]*x[1], nil
	}
	constraint := func(x []float64) ([]float64, error) {
		seen = append(seen, append([]float64(nil), x...))
		return []float64{x[0] + x[1] - 1}, nil
	}

	return Task{
		Objective:  meter.Objective(objective),
		Constraint: meter.Constraint(constraint),
		X0:         x0,
		Budget:     budget,
		Count:      meter.Total,
		Problem:    "sphere",
		RNG:        rand.New(rand.NewSource(seed)),
	}, meter, &seen
}

func TestViolation(t *testing.T) {
	tests := []struct {
		name string
		c    []float64
		want float64
	}{
		{name: "all satisfied", c: []float64{-1, -0.5}, want: 0},
		{name: "boundary", c: []float64{0, -2}, want: 0},
		{name: "one violated", c: []float64{-1, 0.25}, want: 0.25},
		{name: "max component wins", c: []float64{0.1, 3, 0.5}, want: 3},
		{name: "no constraints", c: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Violation(tt.c))
		})
	}
}

func TestRandomSearchTinyBudget(t *testing.T) {
	// With fewer than 2 evaluations allowed the loop body never executes
	// and the initial point comes back unchanged.
	for _, budget := range []int{-1, 0, 1, 2} {
		x0 := []float64{4, -3}
		task, meter, _ := sphereTask(x0, budget, 1)

		x, err := RandomSearch(task)
		require.NoError(t, err)
		assert.Equal(t, x0, x, "budget %d", budget)
		assert.Equal(t, 0, meter.Total(), "budget %d", budget)
	}
}

func TestRandomSearchBudgetNeverExceeded(t *testing.T) {
	for _, budget := range []int{3, 10, 50, 501, 2000} {
		task, meter, _ := sphereTask([]float64{2, 2}, budget, 7)
		_, err := RandomSearch(task)
		require.NoError(t, err)
		assert.LessOrEqual(t, meter.Total(), budget+2, "budget %d", budget)
	}
}

func TestRandomSearchDeterministic(t *testing.T) {
	run := func() []float64 {
		task, _, _ := sphereTask([]float64{2, 2}, 50, 43)
		x, err := RandomSearch(task)
		require.NoError(t, err)
		return x
	}
	assert.Equal(t, run(), run(), "same seed must reproduce bit for bit")
}

func TestRandomSearchReturnsLeastViolatedDraw(t *testing.T) {
	// End-to-end scenario: f(x) = x1^2 + x2^2, c(x) = [x1 + x2 - 1],
	// x0 = [2,2], budget 50, seed 43. The returned point's violation must
	// not exceed the smallest violation seen across all draws.
	task, _, seen := sphereTask([]float64{2, 2}, 50, 43)
	x, err := RandomSearch(task)
	require.NoError(t, err)
	require.NotEmpty(t, *seen)

	minSeen := math.Inf(1)
	for _, cand := range *seen {
		if p := cand[0] + cand[1] - 1; math.Max(p, 0) < minSeen {
			minSeen = math.Max(p, 0)
		}
	}
	assert.LessOrEqual(t, math.Max(x[0]+x[1]-1, 0), minSeen)
}

func TestRandomSearchFeasibilityPriority(t *testing.T) {
	// If any feasible candidate is drawn, the returned point is feasible
	// and its objective is no worse than that of any feasible candidate.
	task, _, seen := sphereTask([]float64{0, 0}, 200, 11)
	x, err := RandomSearch(task)
	require.NoError(t, err)

	feasible := false
	bestFeasible := math.Inf(1)
	for _, cand := range *seen {
		if cand[0]+cand[1]-1 <= 0 {
			feasible = true
			if y := cand[0]*cand[0] + cand[1]*cand[1]; y < bestFeasible {
				bestFeasible = y
			}
		}
	}
	require.True(t, feasible, "starting at the origin some draw must be feasible")

	assert.LessOrEqual(t, x[0]+x[1]-1, 0.0, "returned point must be feasible")
	assert.InDelta(t, bestFeasible, x[0]*x[0]+x[1]*x[1], 1e-12,
		"returned point must match the best feasible draw")
}

func TestRandomSearchNeverFeasible(t *testing.T) {
	// An unsatisfiable constraint still yields the least-infeasible draw
	// rather than the untouched initial point.
	meter := NewMeter()
	var minViolation = math.Inf(1)
	task := Task{
		Objective: meter.Objective(func(x []float64) (float64, error) {
			return x[0], nil
		}),
		Constraint: meter.Constraint(func(x []float64) ([]float64, error) {
			v := x[0]*x[0] + 1 // always positive
			if v < minViolation {
				minViolation = v
			}
			return []float64{v}, nil
		}),
		X0:     []float64{5},
		Budget: 100,
		Count:  meter.Total,
		RNG:    rand.New(rand.NewSource(3)),
	}

	x, err := RandomSearch(task)
	require.NoError(t, err)
	assert.InDelta(t, minViolation, x[0]*x[0]+1, 1e-12)
}
