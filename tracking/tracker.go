package tracking

import (
	"sync"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Default convergence threshold and iteration cap, matching the
// reference Baker-Matthews implementation this package is grounded
// on.
const (
	DefaultThreshold = 0.01875
	DefaultMaxIters  = 100
)

// State is one of the three states a Tracker can be in.
type State int

const (
	// StateUninitialized means no BBox and/or no current image has
	// been set yet.
	StateUninitialized State = iota
	// StateReady means a BBox and a current image are present; Track
	// may be called.
	StateReady
	// StateTracking means a Track call is in progress on this
	// instance. There is no terminal state: Track always returns to
	// StateReady, and a precondition failure leaves the state as it was.
	StateTracking
)

// Option configures a Tracker at construction time.
type Option func(*Tracker)

// WithWeightFunc installs a non-default per-pixel weight callback
// (see WeightFunc), the M-estimator hook reserved by spec.md §9.
func WithWeightFunc(fn WeightFunc) Option {
	return func(t *Tracker) { t.weights = fn }
}

// Tracker holds a bounding box and the previous/current frames and
// advances them one call to Track at a time. It is not safe for
// concurrent Track calls on the same instance; distinct instances are
// independent.
type Tracker struct {
	mu sync.Mutex

	bbox    BBox
	bboxSet bool

	templateImage *Image
	currentImage  *Image

	weights WeightFunc
	state   State
}

// NewTracker returns an uninitialized Tracker. Call SetBBox and
// SetCurrentImage (or use one of the NewTrackerWith* constructors)
// before Track.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{weights: DefaultWeights, state: StateUninitialized}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTrackerWithImage returns a Tracker initialized with an initial
// current image. A BBox must still be set before Track.
func NewTrackerWithImage(img gocv.Mat, opts ...Option) (*Tracker, error) {
	t := NewTracker(opts...)
	if err := t.SetCurrentImage(img); err != nil {
		return nil, err
	}
	return t, nil
}

// NewTrackerWithBBox returns a Tracker initialized with an initial
// BBox. A current image must still be set before Track.
func NewTrackerWithBBox(b BBox, opts ...Option) (*Tracker, error) {
	t := NewTracker(opts...)
	if err := t.SetBBox(b); err != nil {
		return nil, err
	}
	return t, nil
}

// NewTrackerWithImageAndBBox returns a Tracker ready for Track: both
// an initial current image and a BBox are set.
func NewTrackerWithImageAndBBox(img gocv.Mat, b BBox, opts ...Option) (*Tracker, error) {
	t := NewTracker(opts...)
	if err := t.SetCurrentImage(img); err != nil {
		return nil, err
	}
	if err := t.SetBBox(b); err != nil {
		return nil, err
	}
	return t, nil
}

// State returns the tracker's current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// GetBBox returns the current BBox. The returned value is a copy;
// mutating it has no effect on the tracker.
func (t *Tracker) GetBBox() BBox {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bbox
}

// SetBBox replaces the stored BBox, rejecting a degenerate one
// without mutating any existing state.
func (t *Tracker) SetBBox(b BBox) error {
	if err := b.Validate(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bbox = b
	t.bboxSet = true
	t.refreshState()
	return nil
}

// GetCurrentImage returns the tracker's current-frame Mat, aliased
// (not copied) to the tracker's internal buffer.
func (t *Tracker) GetCurrentImage() gocv.Mat {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.currentImage == nil {
		return gocv.NewMat()
	}
	return t.currentImage.Mat()
}

// SetCurrentImage replaces the current-frame slot, converting to a
// single-channel single-precision float image as needed.
func (t *Tracker) SetCurrentImage(img gocv.Mat) error {
	gray, err := toGray32F(img)
	if err != nil {
		return err
	}
	im, err := NewImage(gray)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.currentImage != nil {
		t.currentImage.Close()
	}
	t.currentImage = im
	t.refreshState()
	return nil
}

// GetTemplateImage returns the tracker's template-frame Mat, aliased
// (not copied) to the tracker's internal buffer.
func (t *Tracker) GetTemplateImage() gocv.Mat {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.templateImage == nil {
		return gocv.NewMat()
	}
	return t.templateImage.Mat()
}

// SetTemplateImage replaces the template-frame slot, converting to a
// single-channel single-precision float image as needed. Track
// itself manages this slot (promoting the previous current image);
// callers normally only need this to seed or reset a tracker.
func (t *Tracker) SetTemplateImage(img gocv.Mat) error {
	gray, err := toGray32F(img)
	if err != nil {
		return err
	}
	im, err := NewImage(gray)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.templateImage != nil {
		t.templateImage.Close()
	}
	t.templateImage = im
	return nil
}

// Close releases the tracker's image buffers. No background tasks
// exist, so there is nothing else to tear down.
func (t *Tracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	var err error
	if t.templateImage != nil {
		err = t.templateImage.Close()
		t.templateImage = nil
	}
	if t.currentImage != nil {
		if e := t.currentImage.Close(); e != nil && err == nil {
			err = e
		}
		t.currentImage = nil
	}
	t.bboxSet = false
	t.state = StateUninitialized
	return err
}

// refreshState recomputes State from the bbox/currentImage presence;
// it leaves StateTracking alone, since Track manages that transition
// itself.
func (t *Tracker) refreshState() {
	if t.state == StateTracking {
		return
	}
	if t.bboxSet && t.currentImage != nil {
		t.state = StateReady
	} else {
		t.state = StateUninitialized
	}
}

// Track advances the tracker by one frame: the stored current image
// becomes the template, newFrame becomes the current image, and the
// BBox is updated in place by running the inverse-compositional
// iteration to alignment (or to the maxIters cap).
//
// EmptyImage, BadBBox, and ChannelMismatch are reported before any
// iteration begins and leave the tracker's state untouched. If the
// propagated BBox itself fails validation, ErrBadBBox is returned after
// the images have been promoted, and the stored BBox is left as it
// was. A Singular Hessian during an inner iteration is not an error: the
// driver logs a warning, keeps the warp as it stood, and proceeds to
// propagate the BBox.
func (t *Tracker) Track(newFrame gocv.Mat, threshold float64, maxIters int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if newFrame.Empty() {
		return ErrEmptyImage
	}
	if newFrame.Channels() != 1 {
		return ErrChannelMismatch
	}
	if !t.bboxSet {
		return ErrBadBBox
	}
	if err := t.bbox.Validate(); err != nil {
		return err
	}
	if t.currentImage == nil {
		return ErrEmptyImage
	}

	grayNew, err := toGray32F(newFrame)
	if err != nil {
		return err
	}
	newImg, err := NewImage(grayNew)
	if err != nil {
		return err
	}

	t.state = StateTracking
	defer t.refreshState()

	if t.templateImage != nil {
		t.templateImage.Close()
	}
	t.templateImage = t.currentImage
	t.currentImage = newImg

	template := t.templateImage
	templatePatch, nx, ny, err := RectSample(template, t.bbox)
	if err != nil {
		return err
	}
	n := nx * ny
	templateFlat := flattenRowMajor(templatePatch, ny, nx)

	gx, gy, err := Gradients(template)
	if err != nil {
		return err
	}
	defer gx.Close()
	defer gy.Close()

	J, err := BuildJacobian(gx, gy, t.bbox)
	if err != nil {
		return err
	}

	w := IdentityWarp()

	for iter := 0; iter < maxIters; iter++ {
		// WarpImage samples its input at M^-1·x, so handing it W^-1
		// yields I(W·x): the new frame resampled onto the template grid.
		var wInv mat.Dense
		if err := wInv.Inverse(w.M); err != nil {
			debugMsg("track", "warp not invertible at iteration %d, keeping current estimate: %v", iter, err)
			break
		}
		warped, err := WarpImage(t.currentImage, &Warp{M: &wInv})
		if err != nil {
			debugMsg("track", "warp failed at iteration %d, keeping current estimate: %v", iter, err)
			break
		}
		currentPatch, _, _, err := RectSample(warped, t.bbox)
		warped.Close()
		if err != nil {
			debugMsg("track", "rect sample failed at iteration %d, keeping current estimate: %v", iter, err)
			break
		}
		currentFlat := flattenRowMajor(currentPatch, ny, nx)

		residual := make([]float64, n)
		for i := range residual {
			residual[i] = currentFlat[i] - templateFlat[i]
		}

		dp, err := solveGaussNewton(J, residual, t.weights)
		if err != nil {
			debugMsg("track", "singular hessian at iteration %d, keeping current warp: %v", iter, err)
			break
		}

		if err := w.ComposeInverse(dp); err != nil {
			debugMsg("track", "warp composition failed at iteration %d, keeping current warp: %v", iter, err)
			break
		}

		norm := floats.Norm(dp, 2)
		debugMsgVerbose("track", "iteration %d: |dp|=%.6f", iter, norm)
		if norm < threshold {
			break
		}
	}

	newBBox, err := PropagateBBox(t.bbox, w)
	if err != nil {
		return err
	}
	t.bbox = newBBox
	return nil
}

// toGray32F validates img is non-empty and single-channel, then
// returns a single-channel CV_32F Mat: img itself, aliased, if it is
// already CV_32FC1, or a newly allocated converted copy otherwise.
// Ownership passes to the tracker either way; the caller should not
// continue writing to a Mat it has handed to SetCurrentImage/
// SetTemplateImage/Track.
func toGray32F(img gocv.Mat) (gocv.Mat, error) {
	if img.Empty() {
		return gocv.Mat{}, ErrEmptyImage
	}
	if img.Channels() != 1 {
		return gocv.Mat{}, ErrChannelMismatch
	}
	if img.Type() == gocv.MatTypeCV32FC1 {
		return img, nil
	}
	out := gocv.NewMat()
	img.ConvertTo(&out, gocv.MatTypeCV32FC1)
	return out, nil
}
