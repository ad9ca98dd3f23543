// Package tracking implements single-object visual tracking via
// Baker-Matthews Inverse Compositional (IC) affine alignment.
//
// A Tracker holds a bounding box and the previous and current frames.
// Track advances the tracker by one frame: it warps the new frame
// toward the stored template, solves the Gauss-Newton normal
// equations for an incremental affine warp, composes the inverse
// into a running estimate, and repeats until convergence or an
// iteration cap. The final warp is propagated onto the bounding box.
//
// The Jacobian is built once per call from the template image and
// never changes across inner iterations, which is the defining trick
// of the inverse-compositional formulation. The Hessian J^T·D·J is
// re-formed from it in each inner iteration, with that iteration's
// per-pixel weights D.
package tracking
