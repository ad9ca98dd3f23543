package tracking

import "gocv.io/x/gocv"

// Gradients computes the horizontal and vertical image gradients of
// img using a 3x3 Sobel operator with OpenCV's BORDER_REFLECT_101
// border policy, which is exactly the symmetric non-repeating
// reflection Sample uses (see reflectIndex). The caller owns the
// returned Images and must Close them.
func Gradients(img *Image) (gx, gy *Image, err error) {
	if img == nil || img.mat.Empty() {
		return nil, nil, ErrEmptyImage
	}

	gxMat := gocv.NewMatWithSize(img.Rows(), img.Cols(), gocv.MatTypeCV32FC1)
	gocv.Sobel(img.mat, &gxMat, gocv.MatTypeCV32F, 1, 0, 3, 1.0, 0.0, gocv.BorderReflect101)
	gx, err = NewImage(gxMat)
	if err != nil {
		gxMat.Close()
		return nil, nil, err
	}

	gyMat := gocv.NewMatWithSize(img.Rows(), img.Cols(), gocv.MatTypeCV32FC1)
	gocv.Sobel(img.mat, &gyMat, gocv.MatTypeCV32F, 0, 1, 3, 1.0, 0.0, gocv.BorderReflect101)
	gy, err = NewImage(gyMat)
	if err != nil {
		gx.Close()
		gyMat.Close()
		return nil, nil, err
	}

	return gx, gy, nil
}
