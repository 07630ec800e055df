package harness

// Evaluation costs. Fixed policy: a gradient call is twice as expensive as
// an objective or constraint call.
const (
	CostObjective  = 1
	CostGradient   = 2
	CostConstraint = 1
)

// tally is the counter owned by a single wrapped function.
type tally struct {
	cost  int
	spent int
}

// Meter owns the evaluation tallies for one optimization run. Every
// function wrapped through the same Meter gets its own tally; Total sums
// them. A Meter is created fresh for each trial so counts cannot leak
// across trials, and it is not safe for concurrent use.
type Meter struct {
	tallies []*tally
}

// NewMeter returns a Meter with no wrapped functions.
func NewMeter() *Meter {
	return &Meter{}
}

func (m *Meter) newTally(cost int) *tally {
	t := &tally{cost: cost}
	m.tallies = append(m.tallies, t)
	return t
}

// Objective wraps f so that every call spends CostObjective. The wrapped
// function forwards arguments and results untouched.
func (m *Meter) Objective(f Objective) Objective {
	t := m.newTally(CostObjective)
	return func(x []float64) (float64, error) {
		y, err := f(x)
		t.spent += t.cost
		return y, err
	}
}

// Gradient wraps g so that every call spends CostGradient.
func (m *Meter) Gradient(g Gradient) Gradient {
	t := m.newTally(CostGradient)
	return func(x []float64) ([]float64, error) {
		v, err := g(x)
		t.spent += t.cost
		return v, err
	}
}

// Constraint wraps c so that every call spends CostConstraint.
func (m *Meter) Constraint(c Constraint) Constraint {
	t := m.newTally(CostConstraint)
	return func(x []float64) ([]float64, error) {
		v, err := c(x)
		t.spent += t.cost
		return v, err
	}
}

// Total returns the weighted evaluation count spent across all functions
// wrapped by this Meter.
func (m *Meter) Total() int {
	n := 0
	for _, t := range m.tallies {
		n += t.spent
	}
	return n
}

// Reset zeroes every tally owned by the Meter.
func (m *Meter) Reset() {
	for _, t := range m.tallies {
		t.spent = 0
	}
}
