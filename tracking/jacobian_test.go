package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// P5: Jacobian shape invariant, N = nx*ny.
func TestBuildJacobianShape(t *testing.T) {
	m := newGradientMat(100, 100)
	img, err := NewImage(m)
	require.NoError(t, err)
	defer img.Close()

	gx, gy, err := Gradients(img)
	require.NoError(t, err)
	defer gx.Close()
	defer gy.Close()

	b := BBox{20, 20, 80, 80}
	J, err := BuildJacobian(gx, gy, b)
	require.NoError(t, err)

	rows, cols := J.Dims()
	assert.Equal(t, 60*60, rows)
	assert.Equal(t, 6, cols)
}

// Row layout must be [gx*x, gy*x, gx*y, gy*y, gx, gy] at each sample
// point, matching the p1..p6 parameter ordering ParamsToMatrix uses.
func TestBuildJacobianRowLayout(t *testing.T) {
	m := newGradientMat(30, 30)
	img, err := NewImage(m)
	require.NoError(t, err)
	defer img.Close()

	gx, gy, err := Gradients(img)
	require.NoError(t, err)
	defer gx.Close()
	defer gy.Close()

	b := BBox{5, 5, 15, 15}
	J, err := BuildJacobian(gx, gy, b)
	require.NoError(t, err)

	nx, ny, dx, dy, err := b.SampleGrid()
	require.NoError(t, err)

	// Check the first sample point (k=0) by hand.
	x0, y0 := float64(b.X0), float64(b.Y0)
	gxv, err := Sample(gx, x0, y0)
	require.NoError(t, err)
	gyv, err := Sample(gy, x0, y0)
	require.NoError(t, err)

	assert.InDelta(t, gxv*x0, J.At(0, 0), 1e-9)
	assert.InDelta(t, gyv*x0, J.At(0, 1), 1e-9)
	assert.InDelta(t, gxv*y0, J.At(0, 2), 1e-9)
	assert.InDelta(t, gyv*y0, J.At(0, 3), 1e-9)
	assert.InDelta(t, gxv, J.At(0, 4), 1e-9)
	assert.InDelta(t, gyv, J.At(0, 5), 1e-9)

	_ = nx
	_ = ny
	_ = dx
	_ = dy
}

func TestBuildJacobianEmptyGradients(t *testing.T) {
	_, err := BuildJacobian(nil, nil, BBox{0, 0, 10, 10})
	assert.ErrorIs(t, err, ErrEmptyImage)
}
