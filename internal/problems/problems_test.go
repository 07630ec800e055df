package problems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestNamesSorted(t *testing.T) {
	assert.Equal(t, []string{"simple1", "simple2", "simple3"}, Names())
}

func TestLookup(t *testing.T) {
	p, ok := Lookup("simple1")
	require.True(t, ok)
	assert.Equal(t, "simple1", p.Name)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestSimpleDefinitions(t *testing.T) {
	tests := []struct {
		name string
		dim  int
		cdim int
	}{
		{name: "simple1", dim: 2, cdim: 2},
		{name: "simple2", dim: 2, cdim: 2},
		{name: "simple3", dim: 3, cdim: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := Lookup(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.dim, p.Dim)
			assert.Equal(t, 2000, p.Budget)

			x := make([]float64, tt.dim)
			c, err := p.Constraint(x)
			require.NoError(t, err)
			assert.Len(t, c, tt.cdim)

			g, err := p.Gradient(x)
			require.NoError(t, err)
			assert.Len(t, g, tt.dim)
		})
	}
}

func TestSimpleValues(t *testing.T) {
	t.Run("simple1", func(t *testing.T) {
		p, _ := Lookup("simple1")
		y, err := p.Objective([]float64{1, 2})
		require.NoError(t, err)
		assert.Equal(t, -2.0, y)

		c, err := p.Constraint([]float64{0.2, 0.3})
		require.NoError(t, err)
		assert.InDelta(t, 0.2+0.09-1, c[0], 1e-12)
		assert.InDelta(t, -0.5, c[1], 1e-12)
	})

	t.Run("simple2 rosenbrock minimum", func(t *testing.T) {
		p, _ := Lookup("simple2")
		y, err := p.Objective([]float64{1, 1})
		require.NoError(t, err)
		assert.Equal(t, 0.0, y)

		g, err := p.Gradient([]float64{1, 1})
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0}, g)
	})

	t.Run("simple3 linear gradient", func(t *testing.T) {
		p, _ := Lookup("simple3")
		g, err := p.Gradient([]float64{0.3, -0.1, 0.9})
		require.NoError(t, err)
		assert.Equal(t, []float64{1, -2, 1}, g)

		c, err := p.Constraint([]float64{1, 0, 0})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, c[0], 1e-12)
	})
}

func TestInitialPointRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		p, _ := Lookup("simple1")
		x := p.Init(rng)
		require.Len(t, x, 2)
		for _, v := range x {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 2.0)
		}

		p, _ = Lookup("simple2")
		x = p.Init(rng)
		for _, v := range x {
			assert.GreaterOrEqual(t, v, -1.0)
			assert.Less(t, v, 1.0)
		}

		p, _ = Lookup("simple3")
		x = p.Init(rng)
		require.Len(t, x, 3)
		assert.GreaterOrEqual(t, x[0], -2.0)
		assert.Less(t, x[0], 2.0)
		assert.LessOrEqual(t, x[1], 2.0)
		assert.Greater(t, x[1], -2.0)
		assert.Equal(t, 0.0, x[2])
	}
}

func TestInitialPointDeterministic(t *testing.T) {
	p, _ := Lookup("simple1")

	a := p.Init(rand.New(rand.NewSource(43)))
	b := p.Init(rand.New(rand.NewSource(43)))
	assert.Equal(t, a, b)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	p, _ := Lookup("simple1")
	assert.Panics(t, func() { Register(p) })
}
