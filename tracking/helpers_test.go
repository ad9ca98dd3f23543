package tracking

import "gocv.io/x/gocv"

func newEmptyMat() gocv.Mat {
	return gocv.NewMat()
}

func newThreeChannelMat(rows, cols int) gocv.Mat {
	return gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV32FC3)
}

// newGradientMat returns a rows x cols CV_32FC1 image where
// I[y,x] = (x + 2y) mod 17, the pattern used by scenario S1.
func newGradientMat(rows, cols int) gocv.Mat {
	m := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV32FC1)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			m.SetFloatAt(y, x, float32((x+2*y)%17))
		}
	}
	return m
}

// newBrightSquareMat returns a rows x cols CV_32FC1 image of
// background bg with a square of fg occupying [x0,x1)x[y0,y1).
func newBrightSquareMat(rows, cols, x0, y0, x1, y1 int, bg, fg float32) gocv.Mat {
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
