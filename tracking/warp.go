package tracking

import (
	"fmt"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"
)

// Warp holds the running 3x3 affine warp estimate. Its last row
// stays [0,0,1] to numerical precision: the affine subspace is never
// left.
type Warp struct {
	M *mat.Dense
}

// IdentityWarp returns the identity 3x3 warp, p = 0.
func IdentityWarp() *Warp {
	m := mat.NewDense(3, 3, nil)
	m.Set(0, 0, 1)
	m.Set(1, 1, 1)
	m.Set(2, 2, 1)
	return &Warp{M: m}
}

// ParamsToMatrix builds the incremental warp matrix M(dp) for a
// 6-parameter update dp = (p1..p6):
//
//	[[1+p1,  p3,   p5],
//	 [ p2,  1+p4,  p6],
//	 [  0,    0,    1]]
func ParamsToMatrix(dp []float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1 + dp[0], dp[2], dp[4],
		dp[1], 1 + dp[3], dp[5],
		0, 0, 1,
	})
}

// ComposeInverse forms M(dp), inverts it, and composes w <- w * M(dp)^-1,
// the inverse-compositional update rule of spec.md §4.5 step 6.
func (w *Warp) ComposeInverse(dp []float64) error {
	m := ParamsToMatrix(dp)
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return fmt.Errorf("%w: incremental warp not invertible: %v", ErrSingular, err)
	}
	var composed mat.Dense
	composed.Mul(w.M, &inv)
	w.M = &composed
	return nil
}

// Clone returns an independent copy of w.
func (w *Warp) Clone() *Warp {
	var m mat.Dense
	m.CloneFrom(w.M)
	return &Warp{M: &m}
}

// WarpImage produces a new Image of the same shape as img whose pixel
// at (x, y) equals Sample(img, (M^-1 . [x,y,1]^T).xy) — the warp
// matrix maps source to destination coordinates, and the inverse
// mapping is evaluated at each destination pixel with bilinear
// interpolation and the same border reflection Sample uses. The
// caller owns the returned Image and must Close it.
func WarpImage(img *Image, w *Warp) (*Image, error) {
	if img == nil || img.mat.Empty() {
		return nil, ErrEmptyImage
	}

	var inv mat.Dense
	if err := inv.Inverse(w.M); err != nil {
		return nil, fmt.Errorf("%w: warp not invertible: %v", ErrSingular, err)
	}

	rows, cols := img.Rows(), img.Cols()
	out := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV32FC1)

	dst := mat.NewVecDense(3, []float64{0, 0, 1})
	var src mat.VecDense
	for y := 0; y < rows; y++ {
		dst.SetVec(1, float64(y))
		for x := 0; x < cols; x++ {
			dst.SetVec(0, float64(x))
			src.MulVec(&inv, dst)

			v, err := Sample(img, src.AtVec(0), src.AtVec(1))
			if err != nil {
				out.Close()
				return nil, err
			}
			out.SetFloatAt(y, x, float32(v))
		}
	}

	return NewImage(out)
}
