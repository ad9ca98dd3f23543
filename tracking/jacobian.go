package tracking

import "gonum.org/v1/gonum/mat"

// BuildJacobian assembles the N x 6 steepest-descent matrix from the
// template gradients gx, gy and the warp Jacobian at each sample
// point of b's grid. Row k is [gx*x, gy*x, gx*y, gy*y, gx, gy],
// ordered to match the parameter vector p = (p1..p6) of the affine
// warp in warp.go. J depends only on the template and the BBox, so it
// is safe to build once and reuse across every inner IC iteration of
// a single Track call.
func BuildJacobian(gx, gy *Image, b BBox) (*mat.Dense, error) {
	if gx == nil || gy == nil {
		return nil, ErrEmptyImage
	}
	nx, ny, dx, dy, err := b.SampleGrid()
	if err != nil {
		return nil, err
	}

	n := nx * ny
	J := mat.NewDense(n, 6, nil)
	k := 0
	for i := 0; i < ny; i++ {
		y := float64(b.Y0) + float64(i)*dy
		for j := 0; j < nx; j++ {
			x := float64(b.X0) + float64(j)*dx

			gxv, err := Sample(gx, x, y)
			if err != nil {
				return nil, err
			}
			gyv, err := Sample(gy, x, y)
			if err != nil {
				return nil, err
			}

			J.SetRow(k, []float64{gxv * x, gyv * x, gxv * y, gyv * y, gxv, gyv})
			k++
		}
	}
	return J, nil
}
