package stencil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFourthOrder(t *testing.T) {
	b, err := Coefficients(4)
	require.NoError(t, err)
	assert.Equal(t, []float64{9.0 / 8.0, -1.0 / 24.0}, b)
}

func TestTaylorMatchesTables(t *testing.T) {
	for order := 2; order <= MaxOrder; order += 2 {
		b, err := Taylor(order)
		require.NoError(t, err)
		want := exact[order]
		if !assert.Equal(t, len(want), len(b), "order %d", order) {
			continue
		}
		for k := range b {
			assert.InDelta(t, want[k], b[k], 1e-12, "order %d, b_%d", order, k+1)
		}
	}
}

func TestTaylorConsistency(t *testing.T) {
	// A staggered stencil must differentiate linear functions exactly.
	for _, order := range []int{10} {
		b, err := Coefficients(order)
		require.NoError(t, err)

		sum := 0.0
		for k := range b {
			sum += b[k] * float64(2*(k+1)-1)
		}
		assert.InDelta(t, 1.0, sum, 1e-6, "order %d", order)
		assert.InDelta(t, 19845.0/16384.0, b[0], 1e-6)
	}
}

func TestBadOrders(t *testing.T) {
	for i, order := range []int{-2, 0, 1, 3, 7} {
		if _, err := Coefficients(order); err == nil {
			t.Errorf("%d) Expected an error for order %d", i, order)
		}
	}
}

func TestScaled(t *testing.T) {
	s, err := New(4)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Reach())

	dx := 15.0
	c := s.Scaled(dx)
	assert.Equal(t, 9.0/(8.0*dx), c[0])
	assert.InDelta(t, -1.0/(24.0*dx), c[1], 1e-18)
}

func TestLeapfrogCFLLimit(t *testing.T) {
	table := []struct {
		order int
		limit float64
	}{
		{2, 1.0},
		{4, 6.0 / 7.0},
		{8, 0.77742},
	}

	for i, test := range table {
		b, _ := Coefficients(test.order)
		got := LeapfrogCFLLimit(b, 1)
		if math.Abs(got-test.limit) > 2e-3 {
			t.Errorf("%d) Expected 1-D limit %g, got %g", i, test.limit, got)
		}
	}

	b, _ := Coefficients(4)
	assert.InDelta(t, LeapfrogCFLLimit(b, 1)/math.Sqrt2, LeapfrogCFLLimit(b, 2), 1e-12)
	assert.True(t, LeapfrogCFLLimit(b, 2) > 0.5, "reference CFL of 0.5 is stable")
}
