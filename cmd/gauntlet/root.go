package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/copyleftdev/GAUNTLET/internal/config"
	"github.com/copyleftdev/GAUNTLET/internal/harness"
	"github.com/copyleftdev/GAUNTLET/internal/logging"
	"github.com/copyleftdev/GAUNTLET/internal/problems"
	"github.com/copyleftdev/GAUNTLET/optimizer"
)

var (
	cfg    *config.Config
	logger *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gauntlet [trials] [problem]",
	Short: "Grade an optimizer against a random-search baseline",
	Long: `GAUNTLET grades the optimizer in the optimizer package against a seeded
random-search baseline under a hard evaluation budget. With no arguments
it runs every registered problem for 500 trials; an integer argument
overrides the trial count and a string argument names a single problem,
in either order.`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logger, err = logging.NewLogger(&logging.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: cfg.Logging.Output,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	RunE: runGrade,
}

// classifyArgs splits the positional arguments into a trial count and a
// problem name. The first argument that parses as an integer is the
// count; position is otherwise free. Anything that cannot be resolved to
// exactly one count and at most one name is ambiguous and fatal.
func classifyArgs(args []string) (trials int, problem string, err error) {
	for _, arg := range args {
		if n, perr := strconv.Atoi(arg); perr == nil {
			if trials != 0 {
				return 0, "", fmt.Errorf("ambiguous arguments: two trial counts (%d and %d)", trials, n)
			}
			if n < 1 {
				return 0, "", fmt.Errorf("trial count must be positive, got %d", n)
			}
			trials = n
			continue
		}
		if problem != "" {
			return 0, "", fmt.Errorf("ambiguous arguments: two problem names (%q and %q)", problem, arg)
		}
		problem = arg
	}
	return trials, problem, nil
}

func runGrade(cmd *cobra.Command, args []string) error {
	trials, problem, err := classifyArgs(args)
	if err != nil {
		return err
	}
	if trials == 0 {
		trials = cfg.Grading.Trials
	}

	names := problems.Names()
	if problem != "" {
		if _, ok := problems.Lookup(problem); !ok {
			return fmt.Errorf("unknown problem %q (registered: %v)", problem, names)
		}
		names = []string{problem}
	}

	grader := harness.NewGrader(logger)
	for _, name := range names {
		p, _ := problems.Lookup(name)
		if budget, ok := cfg.Overrides.Budgets[name]; ok && budget > 0 {
			override := *p
			override.Budget = budget
			p = &override
		}

		cmp, err := grader.Compare(p, optimizer.Optimize, trials, cfg.Grading.BaseSeed)
		if err != nil {
			// One broken problem must not stop the rest of the run.
			logger.WithError(err).Error("Comparison failed", map[string]interface{}{
				"problem": name,
			})
			fmt.Printf("Error: comparison on %s failed: %v\n", name, err)
			continue
		}

		if cmp.BudgetViolations > 0 {
			fmt.Printf("Warning: optimize exceeded the evaluation budget on %s in %d of %d trials.\n",
				name, cmp.BudgetViolations, cmp.Trials)
		}
		if cmp.Pass {
			fmt.Printf("Pass: optimize does better than random search on %s %.3f pct of the time.\n",
				name, cmp.WinFraction*100)
		} else {
			fmt.Printf("Fail: optimize is only random search on %s %.3f pct of the time.\n",
				name, cmp.WinFraction*100)
		}
	}
	return nil
}
