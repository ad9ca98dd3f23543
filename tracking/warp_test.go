package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityWarpIsIdentityMatrix(t *testing.T) {
	w := IdentityWarp()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.Equal(t, want, w.M.At(i, j))
		}
	}
}

func TestParamsToMatrixLayout(t *testing.T) {
	dp := []float64{1, 2, 3, 4, 5, 6}
	m := ParamsToMatrix(dp)
	assert.Equal(t, 2.0, m.At(0, 0))  // 1+p1
	assert.Equal(t, 3.0, m.At(0, 1))  // p3
	assert.Equal(t, 5.0, m.At(0, 2))  // p5
	assert.Equal(t, 2.0, m.At(1, 0))  // p2
	assert.Equal(t, 5.0, m.At(1, 1))  // 1+p4
	assert.Equal(t, 6.0, m.At(1, 2))  // p6
	assert.Equal(t, 0.0, m.At(2, 0))
	assert.Equal(t, 0.0, m.At(2, 1))
	assert.Equal(t, 1.0, m.At(2, 2))
}

func TestComposeInverseZeroUpdateIsNoop(t *testing.T) {
	w := IdentityWarp()
	require.NoError(t, w.ComposeInverse([]float64{0, 0, 0, 0, 0, 0}))
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, w.M.At(i, j), 1e-12)
		}
	}
}

func TestComposeInverseSingularIncrement(t *testing.T) {
	w := IdentityWarp()
	// p1 = -1, p4 = -1 collapses the 2x2 linear block to zero, making
	// M(dp) singular.
	err := w.ComposeInverse([]float64{-1, 0, 0, -1, 0, 0})
	assert.ErrorIs(t, err, ErrSingular)
}

func TestWarpImageIdentityIsNoop(t *testing.T) {
	m := newGradientMat(20, 20)
	img, err := NewImage(m)
	require.NoError(t, err)
	defer img.Close()

	out, err := WarpImage(img, IdentityWarp())
	require.NoError(t, err)
	defer out.Close()

	for y := 1; y < 19; y++ {
		for x := 1; x < 19; x++ {
			v, err := Sample(out, float64(x), float64(y))
			require.NoError(t, err)
			assert.InDelta(t, float64((x+2*y)%17), v, 1e-5)
		}
	}
}

func TestWarpImageEmpty(t *testing.T) {
	_, err := WarpImage(nil, IdentityWarp())
	assert.ErrorIs(t, err, ErrEmptyImage)
}
