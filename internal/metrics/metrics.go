// Package metrics exposes Prometheus instrumentation for the grading
// harness. Collectors register against the default registry, which the
// serve command publishes at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Evaluations counts weighted objective/gradient/constraint
	// evaluations spent, by problem and optimizer role.
	Evaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gauntlet",
		Name:      "evaluations_total",
		Help:      "Weighted evaluation cost spent, by problem and optimizer.",
	}, []string{"problem", "optimizer"})

	// Trials counts comparison trials completed per problem.
	Trials = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gauntlet",
		Name:      "trials_total",
		Help:      "Comparison trials completed, by problem.",
	}, []string{"problem"})

	// Wins counts trials where the candidate strictly beat the baseline.
	Wins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gauntlet",
		Name:      "wins_total",
		Help:      "Trials where the candidate beat the baseline, by problem.",
	}, []string{"problem"})

	// BudgetViolations counts trials where the candidate overspent its
	// evaluation budget.
	BudgetViolations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gauntlet",
		Name:      "budget_violations_total",
		Help:      "Trials where the candidate exceeded the evaluation budget.",
	}, []string{"problem"})

	// ComparisonDuration tracks wall-clock time of full comparisons.
	ComparisonDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gauntlet",
		Name:      "comparison_duration_seconds",
		Help:      "Wall-clock duration of a full baseline-vs-candidate comparison.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
	}, []string{"problem"})
)
