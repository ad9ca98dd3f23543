package tracking

import "gonum.org/v1/gonum/mat"

// PropagateBBox maps b's two corners through the final warp w and
// returns the resulting BBox: new[0,0],new[1,0] is the new (x0,y0)
// and new[0,1],new[1,1] is the new (x1,y1).
func PropagateBBox(b BBox, w *Warp) (BBox, error) {
	var result mat.Dense
	result.Mul(w.M, b.Corners())

	nb := BBox{
		X0: float32(result.At(0, 0)),
		Y0: float32(result.At(1, 0)),
		X1: float32(result.At(0, 1)),
		Y1: float32(result.At(1, 1)),
	}
	if err := nb.Validate(); err != nil {
		return BBox{}, err
	}
	return nb, nil
}
