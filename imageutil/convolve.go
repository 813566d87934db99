package imageutil

import "math"

// Border selects how pixels outside the image are synthesized when a
// window extends past the edge.
type Border int

const (
	// BorderReflect101 mirrors without repeating the edge pixel
	// (gfedcb|abcdefgh|gfedcba). OpenCV's BORDER_DEFAULT.
	BorderReflect101 Border = iota

	// BorderReplicate repeats the edge pixel (aaaaaa|abcdefgh|hhhhhhh).
	BorderReplicate
)

// borderIndex maps a possibly out-of-range coordinate onto [0, n).
func borderIndex(i, n int, border Border) int {
	if i >= 0 && i < n {
		return i
	}
	if n == 1 {
		return 0
	}
	if border == BorderReplicate {
		return clampInt(i, 0, n-1)
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*n - 2 - i
		}
	}
	return i
}

// smallGaussianKernels are the fixed kernels OpenCV uses for ksize <= 7
// when sigma is not given.
var smallGaussianKernels = map[int][]float64{
	1: {1},
	3: {0.25, 0.5, 0.25},
	5: {0.0625, 0.25, 0.375, 0.25, 0.0625},
	7: {0.03125, 0.109375, 0.21875, 0.28125, 0.21875, 0.109375, 0.03125},
}

// GaussianSigma returns the sigma OpenCV derives from a kernel size when
// none is given.
func GaussianSigma(ksize int) float64 {
	return 0.3*(float64(ksize-1)*0.5-1) + 0.8
}

// GaussianKernel1D returns a normalized 1-D Gaussian kernel of length
// ksize. A sigma <= 0 is derived from ksize.
func GaussianKernel1D(ksize int, sigma float64) []float64 {
	ksize = oddKernelSize(ksize)
	if sigma <= 0 {
		if k, ok := smallGaussianKernels[ksize]; ok {
			out := make([]float64, len(k))
			copy(out, k)
			return out
		}
		sigma = GaussianSigma(ksize)
	}

	kernel := make([]float64, ksize)
	center := float64(ksize-1) / 2
	scale := -0.5 / (sigma * sigma)
	var sum float64
	for i := range kernel {
		d := float64(i) - center
		kernel[i] = math.Exp(scale * d * d)
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// ConvolveSeparableGray applies a horizontal then a vertical 1-D kernel
// to a grayscale image. Intermediate values stay in floating point; the
// result is rounded and clamped once.
func ConvolveSeparableGray(img *GrayImage, kx, ky []float64, border Border) *GrayImage {
	width, height := img.Width(), img.Height()
	dst := NewGrayImage(width, height)
	if width == 0 || height == 0 {
		return dst
	}

	halfX := len(kx) / 2
	halfY := len(ky) / 2

	tmp := make([]float64, width*height)
	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+width]
		for x := 0; x < width; x++ {
			var sum float64
			for k, w := range kx {
				sum += float64(row[borderIndex(x+k-halfX, width, border)]) * w
			}
			tmp[y*width+x] = sum
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64
			for k, w := range ky {
				sy := borderIndex(y+k-halfY, height, border)
				sum += tmp[sy*width+x] * w
			}
			dst.Pix[y*dst.Stride+x] = clampUint8(sum)
		}
	}

	return dst
}

// GaussianBlurGraySize applies a ksize x ksize Gaussian blur to a
// grayscale image with reflect-101 borders, like cv::GaussianBlur.
// Even sizes are bumped to the next odd size.
func GaussianBlurGraySize(img *GrayImage, ksize int, sigma float64) *GrayImage {
	kernel := GaussianKernel1D(ksize, sigma)
	return ConvolveSeparableGray(img, kernel, kernel, BorderReflect101)
}

// oddKernelSize coerces a kernel size to a positive odd number.
func oddKernelSize(ksize int) int {
	if ksize < 1 {
		return 1
	}
	if ksize%2 == 0 {
		return ksize + 1
	}
	return ksize
}

// clampInt clamps an integer to the given range.
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampUint8 clamps a float64 to [0, 255] and converts to uint8.
func clampUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.RoundToEven(v))
}
