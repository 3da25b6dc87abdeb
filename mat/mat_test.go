package mat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmat "gonum.org/v1/gonum/mat"
)

func TestLUSolveAgainstGonum(t *testing.T) {
	vals := []float64{
		1, 3, 5,
		2, 4, 7,
		1, 1, 0,
	}
	bs := []float64{1, -2, 3}

	M := NewMatrix(append([]float64{}, vals...), 3, 3)
	luf, err := M.LU()
	require.NoError(t, err)

	xs := make([]float64, 3)
	luf.SolveVector(bs, xs)

	var gx gmat.VecDense
	D := gmat.NewDense(3, 3, append([]float64{}, vals...))
	require.NoError(t, gx.SolveVec(D, gmat.NewVecDense(3, append([]float64{}, bs...))))

	for i := range xs {
		assert.InDelta(t, gx.AtVec(i), xs[i], 1e-12, "component %d", i)
	}
	assert.InDelta(t, gmat.Det(D), luf.Determinant(), 1e-12)
}

func TestSolveInPlace(t *testing.T) {
	M := NewMatrix([]float64{
		4, 1,
		2, 3,
	}, 2, 2)
	luf, err := M.LU()
	require.NoError(t, err)

	bs := []float64{1, 2}
	luf.SolveVector(bs, bs)
	assert.InDelta(t, 0.1, bs[0], 1e-14)
	assert.InDelta(t, 0.6, bs[1], 1e-14)
}

func TestSingular(t *testing.T) {
	table := []*Matrix{
		NewMatrix([]float64{1, 2, 0, 0}, 2, 2),
		NewMatrix([]float64{1, 2, 2, 4}, 2, 2),
		NewMatrix([]float64{1, 2, 3, 4, 5, 6}, 3, 2),
	}
	for i, m := range table {
		if _, err := m.LU(); err == nil {
			t.Errorf("%d) Expected an error factoring %v", i, m.Vals)
		}
	}
}
