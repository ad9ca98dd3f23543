package tracking

import "gocv.io/x/gocv"

// Image is a single-channel floating-point view over a gocv.Mat, with
// symmetric (non-repeating) border reflection for out-of-bounds
// pixel access. It is the concrete image type the tracker's own
// fields use; Sample and RectSample accept it directly.
type Image struct {
	mat gocv.Mat
}

// NewImage wraps a gocv.Mat, rejecting empty or multi-channel input.
// The Mat is not cloned: the returned Image aliases it.
func NewImage(m gocv.Mat) (*Image, error) {
	if m.Empty() {
		return nil, ErrEmptyImage
	}
	if m.Channels() != 1 {
		return nil, ErrChannelMismatch
	}
	return &Image{mat: m}, nil
}

// Rows returns the image height.
func (img *Image) Rows() int { return img.mat.Rows() }

// Cols returns the image width.
func (img *Image) Cols() int { return img.mat.Cols() }

// Mat returns the underlying gocv.Mat, aliased (not copied).
func (img *Image) Mat() gocv.Mat { return img.mat }

// Close releases the underlying Mat.
func (img *Image) Close() error { return img.mat.Close() }

// at reads the pixel at (row, col), reflecting out-of-bounds indices
// about the last interior row/column without repeating the edge
// sample. CV_64F and CV_8U elements are converted to float64; every
// other element type is read as float32, so other integer types are
// not promoted correctly.
func (img *Image) at(row, col int) float64 {
	row = reflectIndex(row, img.Rows())
	col = reflectIndex(col, img.Cols())
	switch img.mat.Type() {
	case gocv.MatTypeCV64FC1:
		return img.mat.GetDoubleAt(row, col)
	case gocv.MatTypeCV8UC1:
		return float64(img.mat.GetUCharAt(row, col))
	default:
		return float64(img.mat.GetFloatAt(row, col))
	}
}

// reflectIndex maps an arbitrary integer index into [0, n) using
// OpenCV's BORDER_REFLECT_101 convention: the sequence mirrors about
// the last interior sample without repeating it, e.g. for n=5 the
// extended sequence reads ..., 2, 1, 0, 1, 2, 3, 4, 3, 2, ...
func reflectIndex(i, n int) int {
	if n <= 1 {
		return 0
	}
	period := 2 * (n - 1)
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}
