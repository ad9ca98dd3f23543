// Package testimage generates synthetic single-channel gocv.Mat
// frames for exercising the tracking package without depending on a
// live camera feed or checked-in fixture images.
package testimage

import (
	"math"

	"gocv.io/x/gocv"

	"trackalign/tracking"
)

// Gradient returns a rows x cols CV_32FC1 image with
// I[y,x] = (x + 2y) mod 17, the pattern used by scenario S1
// (identity-frame convergence).
func Gradient(rows, cols int) gocv.Mat {
	m := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV32FC1)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := float32((x + 2*y) % 17)
			m.SetFloatAt(y, x, v)
		}
	}
	return m
}

// BrightSquare returns a rows x cols CV_32FC1 image of background
// intensity bg with a square of intensity fg occupying [x0,x1)x[y0,y1),
// the pattern used by scenarios S2/S3 (translation).
func BrightSquare(rows, cols, x0, y0, x1, y1 int, bg, fg float32) gocv.Mat {
	m := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV32FC1)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := bg
			if x >= x0 && x < x1 && y >= y0 && y < y1 {
				v = fg
			}
			m.SetFloatAt(y, x, v)
		}
	}
	return m
}

// Translate resamples img shifted by (dx, dy): the returned image's
// pixel at (x, y) equals img's value at (x-dx, y-dy), synthesized via
// bilinear interpolation so that sub-pixel shifts are exact inputs
// for the tracker under test (scenario S3).
func Translate(img gocv.Mat, dx, dy float64) (gocv.Mat, error) {
	src, err := tracking.NewImage(img.Clone())
	if err != nil {
		return gocv.Mat{}, err
	}
	defer src.Close()

	rows, cols := img.Rows(), img.Cols()
	out := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV32FC1)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v, err := tracking.Sample(src, float64(x)-dx, float64(y)-dy)
			if err != nil {
				out.Close()
				return gocv.Mat{}, err
			}
			out.SetFloatAt(y, x, float32(v))
		}
	}
	return out, nil
}

// Rotate resamples img rotated by angleDeg degrees about (cx, cy),
// for scenario S4.
func Rotate(img gocv.Mat, cx, cy, angleDeg float64) (gocv.Mat, error) {
	src, err := tracking.NewImage(img.Clone())
	if err != nil {
		return gocv.Mat{}, err
	}
	defer src.Close()

	theta := angleDeg * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)

	rows, cols := img.Rows(), img.Cols()
	out := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV32FC1)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			// Inverse-map the destination pixel back through the
			// rotation to find where to sample the source.
			px, py := float64(x)-cx, float64(y)-cy
			sx := cos*px + sin*py + cx
			sy := -sin*px + cos*py + cy

			v, err := tracking.Sample(src, sx, sy)
			if err != nil {
				out.Close()
				return gocv.Mat{}, err
			}
			out.SetFloatAt(y, x, float32(v))
		}
	}
	return out, nil
}
