package artwizard

import "github.com/wbrown/artwizard/imageutil"

const (
	// SketchBlurSize is the Gaussian kernel applied to the inverted
	// grayscale image. Larger kernels give softer, wider strokes.
	SketchBlurSize = 21

	// SketchScale is the color-dodge scale passed to the divide step.
	SketchScale = 256.0
)

// PencilSketch renders a color image as a single-channel pencil sketch.
//
// The grayscale image is divided by the inverse of its blurred inverse
// (a color dodge), which pushes flat regions to white and leaves dark
// strokes only where intensity changes. A uniform image therefore comes
// out blank white, except a uniform black one, which stays black because
// division by zero yields 0.
func PencilSketch(img *imageutil.RGBAImage) *imageutil.GrayImage {
	gray := imageutil.ToGrayscale(img)
	inverted := imageutil.InvertGray(gray)
	blurred := imageutil.GaussianBlurGraySize(inverted, SketchBlurSize, 0)
	return imageutil.DivideGray(gray, imageutil.InvertGray(blurred), SketchScale)
}
