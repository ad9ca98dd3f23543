package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestDefaultWeightsAllOnes(t *testing.T) {
	w := DefaultWeights([]float64{1, 2, 3})
	assert.Equal(t, []float64{1, 1, 1}, w)
}

// With an identity Jacobian H is the identity, so the update solved
// from the synthetic linear residual model e = J*dpTrue must be dpTrue.
func TestSolveGaussNewtonRecoversKnownUpdate(t *testing.T) {
	J := mat.NewDense(6, 6, []float64{
		1, 0, 0, 0, 0, 0,
		0, 1, 0, 0, 0, 0,
		0, 0, 1, 0, 0, 0,
		0, 0, 0, 1, 0, 0,
		0, 0, 0, 0, 1, 0,
		0, 0, 0, 0, 0, 1,
	})
	dpTrue := []float64{0.1, -0.2, 0.05, 0.3, -0.15, 0.4}
	residual := make([]float64, 6)
	for i := range residual {
		residual[i] = dpTrue[i]
	}

	dp, err := solveGaussNewton(J, residual, nil)
	require.NoError(t, err)
	for i := range dpTrue {
		assert.InDelta(t, dpTrue[i], dp[i], 1e-9)
	}
}

func TestSolveGaussNewtonSingular(t *testing.T) {
	// All-zero Jacobian rows make H the zero matrix, not
	// positive-definite.
	J := mat.NewDense(6, 6, make([]float64, 36))
	residual := make([]float64, 6)

	_, err := solveGaussNewton(J, residual, nil)
	assert.ErrorIs(t, err, ErrSingular)
}

func TestSolveGaussNewtonResidualLengthMismatch(t *testing.T) {
	J := mat.NewDense(4, 6, make([]float64, 24))
	_, err := solveGaussNewton(J, []float64{1, 2, 3}, nil)
	assert.Error(t, err)
}

func TestSolveGaussNewtonWeightLengthMismatch(t *testing.T) {
	J := mat.NewDense(4, 6, make([]float64, 24))
	bad := func(residual []float64) []float64 { return residual[:len(residual)-1] }
	_, err := solveGaussNewton(J, []float64{1, 2, 3, 4}, bad)
	assert.Error(t, err)
}
