package tracking

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// BBox is an axis-aligned rectangle (x0, y0, x1, y1) in image pixel
// coordinates: (left, top, right, bottom). Width and height are
// non-integer in general.
type BBox struct {
	X0, Y0, X1, Y1 float32
}

// Width returns x1 - x0.
func (b BBox) Width() float64 { return float64(b.X1) - float64(b.X0) }

// Height returns y1 - y0.
func (b BBox) Height() float64 { return float64(b.Y1) - float64(b.Y0) }

// Validate checks the invariants: finite coordinates, x0 < x1, y0 <
// y1, and width/height exceeding 2 pixels so the sample grid can't
// collapse.
func (b BBox) Validate() error {
	for _, v := range []float32{b.X0, b.Y0, b.X1, b.Y1} {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return ErrBadBBox
		}
	}
	if b.X1 <= b.X0 || b.Y1 <= b.Y0 {
		return ErrBadBBox
	}
	if b.Width() <= 2 || b.Height() <= 2 {
		return ErrBadBBox
	}
	return nil
}

// SampleGrid derives the sample-grid shape and step for this BBox:
// nx = floor(width), ny = floor(height), dx = width/(nx-1), dy =
// height/(ny-1). The inclusive step form is fixed by spec; do not
// switch to width/nx.
func (b BBox) SampleGrid() (nx, ny int, dx, dy float64, err error) {
	if err = b.Validate(); err != nil {
		return 0, 0, 0, 0, err
	}
	w, h := b.Width(), b.Height()
	nx = int(math.Floor(w))
	ny = int(math.Floor(h))
	if nx < 2 || ny < 2 {
		return 0, 0, 0, 0, ErrBadBBox
	}
	dx = w / float64(nx-1)
	dy = h / float64(ny-1)
	return nx, ny, dx, dy, nil
}

// Corners returns the homogeneous 3x2 matrix of the box's two
// defining corners, [[x0,x1],[y0,y1],[1,1]], for the BBOX propagator.
func (b BBox) Corners() *mat.Dense {
	return mat.NewDense(3, 2, []float64{
		float64(b.X0), float64(b.X1),
		float64(b.Y0), float64(b.Y1),
		1, 1,
	})
}
