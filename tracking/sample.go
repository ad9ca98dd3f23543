package tracking

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Sample returns the bilinearly-interpolated intensity of img at the
// real-valued coordinate (x, y). Out-of-bounds reads use symmetric
// border reflection (see reflectIndex). Sampling a nil or empty image
// is reported as ErrEmptyImage.
func Sample(img *Image, x, y float64) (float64, error) {
	if img == nil || img.mat.Empty() {
		return 0, ErrEmptyImage
	}

	i := int(math.Floor(x))
	j := int(math.Floor(y))
	dx := x - float64(i)
	dy := y - float64(j)
	dx1 := 1 - dx
	dy1 := 1 - dy

	v00 := img.at(j, i)
	v10 := img.at(j, i+1)
	v01 := img.at(j+1, i)
	v11 := img.at(j+1, i+1)

	return dx1*dy1*v00 + dx*dy1*v10 + dx1*dy*v01 + dx*dy*v11, nil
}

// RectSample extracts the BBox-shaped sub-pixel patch from img: an
// ny x nx matrix whose (i, j) entry is Sample(img, x0+j*dx, y0+i*dy).
// It returns the patch along with the grid shape it used.
func RectSample(img *Image, b BBox) (patch *mat.Dense, nx, ny int, err error) {
	if img == nil || img.mat.Empty() {
		return nil, 0, 0, ErrEmptyImage
	}
	nx, ny, dx, dy, err := b.SampleGrid()
	if err != nil {
		return nil, 0, 0, err
	}

	patch = mat.NewDense(ny, nx, nil)
	for i := 0; i < ny; i++ {
		y := float64(b.Y0) + float64(i)*dy
		for j := 0; j < nx; j++ {
			x := float64(b.X0) + float64(j)*dx
			v, err := Sample(img, x, y)
			if err != nil {
				return nil, 0, 0, err
			}
			patch.Set(i, j, v)
		}
	}
	return patch, nx, ny, nil
}

// flattenRowMajor flattens an ny x nx patch in the row-major
// enumeration used throughout this package (the N observations of a
// single Track call).
func flattenRowMajor(patch *mat.Dense, ny, nx int) []float64 {
	out := make([]float64, ny*nx)
	k := 0
	for i := 0; i < ny; i++ {
		for j := 0; j < nx; j++ {
			out[k] = patch.At(i, j)
			k++
		}
	}
	return out
}
