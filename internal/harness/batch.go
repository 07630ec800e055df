package harness

import (
	"math"

	"golang.org/x/exp/rand"
)

// TrialOutcome records one optimizer trial. It is immutable once produced.
type TrialOutcome struct {
	// X is the best point returned by the optimizer.
	X []float64
	// Objective is the objective value at X when X is feasible, +Inf
	// otherwise. Infeasible objective values are never mixed in.
	Objective float64
	// Violation is the maximum constraint violation at X, floored at 0.
	Violation float64
	// Evaluations is the weighted evaluation count spent by the trial.
	Evaluations int
}

// RunTrials runs K independent trials of opt on p. Trial i (1-indexed)
// seeds a fresh random stream with baseSeed+i, draws an initial point
// from it, and hands the same stream to the optimizer, so two invocations
// with the same base seed reproduce bit for bit. Each trial owns a fresh
// Meter, so evaluation counts never leak across trials.
//
// A failing trial fails the whole batch: a working optimizer should not
// error, so per-trial errors propagate to the per-problem boundary.
func RunTrials(p *Problem, opt Optimizer, trials int, baseSeed int64) ([]TrialOutcome, error) {
	outcomes := make([]TrialOutcome, 0, trials)
	for i := 1; i <= trials; i++ {
		out, err := runTrial(p, opt, uint64(baseSeed)+uint64(i))
		if err != nil {
			return nil, WrapErrorf(err, "trial %d of %d failed", i, trials).
				WithOperation("run trials").
				WithProblem(p.Name)
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

func runTrial(p *Problem, opt Optimizer, seed uint64) (TrialOutcome, error) {
	rng := rand.New(rand.NewSource(seed))
	x0 := p.Init(rng)

	meter := NewMeter()
	x, err := opt(Task{
		Objective:  meter.Objective(p.Objective),
		Gradient:   meter.Gradient(p.Gradient),
		Constraint: meter.Constraint(p.Constraint),
		X0:         x0,
		Budget:     p.Budget,
		Count:      meter.Total,
		Problem:    p.Name,
		RNG:        rng,
	})
	if err != nil {
		return TrialOutcome{}, err
	}

	out := TrialOutcome{X: x, Evaluations: meter.Total()}

	// Outcome fields come from uncounted evaluations of the returned
	// point; inspecting the result costs the optimizer nothing.
	cx, err := p.Constraint(x)
	if err != nil {
		return TrialOutcome{}, err
	}
	out.Violation = Violation(cx)
	if out.Violation > 0 {
		out.Objective = math.Inf(1)
		return out, nil
	}
	y, err := p.Objective(x)
	if err != nil {
		return TrialOutcome{}, err
	}
	out.Objective = y
	return out, nil
}
