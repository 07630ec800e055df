package harness

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/copyleftdev/GAUNTLET/internal/logging"
	"github.com/copyleftdev/GAUNTLET/internal/metrics"
)

// PassThreshold is the win fraction a candidate must strictly exceed to
// pass a problem.
const PassThreshold = 0.55

// infeasiblePenalty is added to the score of any returned point that
// violates a constraint, so that every feasible point outscores every
// infeasible one.
const infeasiblePenalty = 1e7

// Comparison holds the matched-seed grading of a candidate optimizer
// against the random-search baseline on one problem.
type Comparison struct {
	Problem          string    `json:"problem"`
	Trials           int       `json:"trials"`
	BaselineScores   []float64 `json:"baseline_scores"`
	CandidateScores  []float64 `json:"candidate_scores"`
	Evaluations      []int     `json:"candidate_evaluations"`
	WinFraction      float64   `json:"win_fraction"`
	BudgetViolations int       `json:"budget_violations"`
	Pass             bool      `json:"pass"`
}

// Score grades a returned point: the objective value plus a large penalty
// when the quadratic constraint violation is nonzero. Evaluations here are
// uncounted; scoring costs the optimizer nothing.
func Score(p *Problem, x []float64) (float64, error) {
	y, err := p.Objective(x)
	if err != nil {
		return 0, WrapError(err, "scoring objective").WithProblem(p.Name)
	}
	cx, err := p.Constraint(x)
	if err != nil {
		return 0, WrapError(err, "scoring constraint").WithProblem(p.Name)
	}
	var quad float64
	for _, ci := range cx {
		if ci > 0 {
			quad += ci * ci
		}
	}
	if quad > 0 {
		y += infeasiblePenalty
	}
	return y, nil
}

// Grader runs matched-seed comparisons between the random-search baseline
// and a candidate optimizer.
type Grader struct {
	logger *logging.Logger
}

// NewGrader returns a Grader that reports through logger.
func NewGrader(logger *logging.Logger) *Grader {
	return &Grader{logger: logger}
}

// Compare grades opt against RandomSearch on p. Both batches run from the
// same base seed, so trial i of each draws the identical initial point.
// Budget overruns by the candidate are a reportable warning, not a fatal
// condition. A panic anywhere inside the comparison (malformed problem,
// numerical blowup in user code) is recovered here, at the per-problem
// boundary, so one broken problem cannot take down the rest of a run.
func (g *Grader) Compare(p *Problem, opt Optimizer, trials int, baseSeed int64) (cmp *Comparison, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			cmp = nil
			err = NewErrorf("panic: %v", rec).
				WithOperation("compare").
				WithProblem(p.Name)
		}
	}()

	start := time.Now()
	log := g.logger.WithFields(map[string]interface{}{
		"problem": p.Name,
		"trials":  trials,
		"seed":    baseSeed,
	})
	log.Info("Comparing optimizer against random search")

	candidate, err := RunTrials(p, opt, trials, baseSeed)
	if err != nil {
		return nil, err
	}
	baseline, err := RunTrials(p, RandomSearch, trials, baseSeed)
	if err != nil {
		return nil, err
	}

	cmp = &Comparison{
		Problem:         p.Name,
		Trials:          trials,
		BaselineScores:  make([]float64, trials),
		CandidateScores: make([]float64, trials),
		Evaluations:     make([]int, trials),
	}
	wins := make([]float64, trials)

	for i := 0; i < trials; i++ {
		bs, serr := Score(p, baseline[i].X)
		if serr != nil {
			return nil, serr
		}
		cmp.BaselineScores[i] = bs
		cmp.Evaluations[i] = candidate[i].Evaluations
		metrics.Evaluations.WithLabelValues(p.Name, "baseline").Add(float64(baseline[i].Evaluations))
		metrics.Evaluations.WithLabelValues(p.Name, "candidate").Add(float64(candidate[i].Evaluations))

		if candidate[i].Evaluations > p.Budget+budgetMargin {
			cmp.BudgetViolations++
			metrics.BudgetViolations.WithLabelValues(p.Name).Inc()
			log.Warn("Candidate exceeded evaluation budget", map[string]interface{}{
				"trial":       i + 1,
				"evaluations": candidate[i].Evaluations,
				"budget":      p.Budget,
			})
		}

		if hasNaN(candidate[i].X) {
			// NaN output is an automatic loss for the trial.
			log.Warn("Candidate returned NaN, trial scored as loss", map[string]interface{}{
				"trial": i + 1,
			})
			cmp.CandidateScores[i] = math.Inf(1)
			continue
		}

		cs, serr := Score(p, candidate[i].X)
		if serr != nil {
			return nil, serr
		}
		cmp.CandidateScores[i] = cs
		if cs < bs {
			wins[i] = 1
			metrics.Wins.WithLabelValues(p.Name).Inc()
		}
	}

	cmp.WinFraction = stat.Mean(wins, nil)
	cmp.Pass = cmp.WinFraction > PassThreshold

	metrics.Trials.WithLabelValues(p.Name).Add(float64(trials))
	metrics.ComparisonDuration.WithLabelValues(p.Name).Observe(time.Since(start).Seconds())

	log.Info("Comparison finished", map[string]interface{}{
		"win_fraction":      cmp.WinFraction,
		"pass":              cmp.Pass,
		"budget_violations": cmp.BudgetViolations,
		"elapsed":           time.Since(start).String(),
	})
	return cmp, nil
}

func hasNaN(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
