//go:build gocv

package artwizard

import (
	"fmt"
	"image"

	"github.com/wbrown/artwizard/imageutil"
	"gocv.io/x/gocv"
)

func init() {
	RegisterBackend(GocvBackend{})
}

// GocvBackend runs the filters through OpenCV. It is compiled only with
// the gocv build tag, since it needs the OpenCV shared libraries.
type GocvBackend struct{}

func (GocvBackend) Name() string { return "gocv" }

func (GocvBackend) PencilSketch(img *imageutil.RGBAImage) (*imageutil.GrayImage, error) {
	src, err := toMat(img)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	inverted := gocv.NewMat()
	defer inverted.Close()
	gocv.BitwiseNot(gray, &inverted)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(inverted, &blurred, image.Pt(SketchBlurSize, SketchBlurSize), 0, 0, gocv.BorderDefault)

	invBlurred := gocv.NewMat()
	defer invBlurred.Close()
	gocv.BitwiseNot(blurred, &invBlurred)

	sketch := gocv.NewMat()
	defer sketch.Close()
	gocv.DivideWithParams(gray, invBlurred, &sketch, SketchScale, -1)

	out, err := sketch.ToImage()
	if err != nil {
		return nil, fmt.Errorf("gocv: convert sketch: %w", err)
	}
	return imageutil.GrayImageFromImage(out), nil
}

func (GocvBackend) Cartoonify(img *imageutil.RGBAImage) (*imageutil.RGBAImage, error) {
	src, err := toMat(img)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	smooth := gocv.NewMat()
	defer smooth.Close()
	gocv.MedianBlur(gray, &smooth, CartoonMedianSize)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.AdaptiveThreshold(smooth, &edges, 255, gocv.AdaptiveThresholdMean,
		gocv.ThresholdBinary, CartoonThresholdBlock, CartoonThresholdC)

	color := gocv.NewMat()
	defer color.Close()
	gocv.BilateralFilter(src, &color, CartoonBilateralD, CartoonSigmaColor, CartoonSigmaSpace)

	cartoon := gocv.NewMat()
	defer cartoon.Close()
	gocv.BitwiseAndWithMask(color, color, &cartoon, edges)

	out, err := cartoon.ToImage()
	if err != nil {
		return nil, fmt.Errorf("gocv: convert cartoon: %w", err)
	}
	return imageutil.RGBAImageFromImage(out), nil
}

// toMat converts an image to a BGR gocv.Mat. The caller closes it.
func toMat(img *imageutil.RGBAImage) (gocv.Mat, error) {
	if img.Empty() {
		return gocv.Mat{}, ErrEmptyImage
	}
	mat, err := gocv.ImageToMatRGB(img.RGBA)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("gocv: convert input: %w", err)
	}
	return mat, nil
}
