package tracking

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// WeightFunc computes the diagonal of the per-pixel weight matrix D
// from the current residual vector. The baseline tracker uses
// DefaultWeights (the identity); this is the hook reserved for an
// M-estimator (Huber/Tukey-style) weighting scheme, called once per
// inner iteration with that iteration's residual.
type WeightFunc func(residual []float64) []float64

// DefaultWeights returns the identity weighting: every observation
// contributes equally.
func DefaultWeights(residual []float64) []float64 {
	w := make([]float64, len(residual))
	for i := range w {
		w[i] = 1
	}
	return w
}

// solveGaussNewton forms H = J^T.D.J and b = J^T.D.e and solves
// H.dp = b via a Cholesky factorization, appropriate since H is
// symmetric positive semi-definite by construction. If H cannot be
// factorized (e.g. a near-degenerate template), it returns
// ErrSingular and the caller is expected to keep the previous warp.
func solveGaussNewton(J *mat.Dense, residual []float64, weights WeightFunc) ([]float64, error) {
	n, p := J.Dims()
	if len(residual) != n {
		return nil, fmt.Errorf("tracking: residual length %d does not match Jacobian rows %d", len(residual), n)
	}
	if weights == nil {
		weights = DefaultWeights
	}
	d := weights(residual)
	if len(d) != n {
		return nil, fmt.Errorf("tracking: weight vector length %d does not match %d observations", len(d), n)
	}

	weighted := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			weighted.Set(i, j, J.At(i, j)*d[i])
		}
	}

	var hDense mat.Dense
	hDense.Mul(weighted.T(), J)

	h := mat.NewSymDense(p, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			h.SetSym(i, j, hDense.At(i, j))
		}
	}

	b := make([]float64, p)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			b[j] += weighted.At(i, j) * residual[i]
		}
	}
	bVec := mat.NewVecDense(p, b)

	var chol mat.Cholesky
	if ok := chol.Factorize(h); !ok {
		return nil, ErrSingular
	}

	var dpVec mat.VecDense
	if err := chol.SolveVecTo(&dpVec, bVec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	dp := make([]float64, p)
	for i := 0; i < p; i++ {
		dp[i] = dpVec.AtVec(i)
	}
	return dp, nil
}
