package artwizard

import "github.com/wbrown/artwizard/imageutil"

const (
	CartoonMedianSize     = 5
	CartoonThresholdBlock = 9
	CartoonThresholdC     = 9
	CartoonBilateralD     = 9
	CartoonSigmaColor     = 300.0
	CartoonSigmaSpace     = 300.0
)

// CartoonEdges returns the binary outline mask used by Cartoonify: 0 on
// detected edges, 255 elsewhere.
func CartoonEdges(img *imageutil.RGBAImage) *imageutil.GrayImage {
	gray := imageutil.ToGrayscale(img)
	smooth := imageutil.MedianBlurGray(gray, CartoonMedianSize)
	return imageutil.AdaptiveThresholdMean(smooth, 255, CartoonThresholdBlock, CartoonThresholdC)
}

// Cartoonify flattens the colors of img with an edge-preserving bilateral
// filter and draws black outlines wherever the local-mean threshold
// detects an edge. Output dimensions and channel layout match the input.
func Cartoonify(img *imageutil.RGBAImage) *imageutil.RGBAImage {
	edges := CartoonEdges(img)
	color := imageutil.BilateralFilter(img, CartoonBilateralD, CartoonSigmaColor, CartoonSigmaSpace)
	return imageutil.MaskRGBA(color, edges)
}
