package imageutil

import "math"

// BoxMeanGray returns the rounded mean of each pixel's blockSize x
// blockSize neighbourhood, with replicated borders. This is the local
// threshold surface used by ADAPTIVE_THRESH_MEAN_C.
func BoxMeanGray(img *GrayImage, blockSize int) *GrayImage {
	blockSize = oddKernelSize(blockSize)
	width, height := img.Width(), img.Height()
	dst := NewGrayImage(width, height)
	if width == 0 || height == 0 {
		return dst
	}

	half := blockSize / 2
	pw, ph := width+2*half, height+2*half

	// Summed-area table over the border-padded image, one extra
	// leading row and column of zeros.
	sat := make([]int, (pw+1)*(ph+1))
	for py := 0; py < ph; py++ {
		sy := borderIndex(py-half, height, BorderReplicate)
		var rowSum int
		for px := 0; px < pw; px++ {
			sx := borderIndex(px-half, width, BorderReplicate)
			rowSum += int(img.Pix[sy*img.Stride+sx])
			sat[(py+1)*(pw+1)+px+1] = sat[py*(pw+1)+px+1] + rowSum
		}
	}

	area := blockSize * blockSize
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			x0, y0 := x, y
			x1, y1 := x+blockSize, y+blockSize
			sum := sat[y1*(pw+1)+x1] - sat[y0*(pw+1)+x1] -
				sat[y1*(pw+1)+x0] + sat[y0*(pw+1)+x0]
			dst.Pix[y*dst.Stride+x] = uint8((2*sum + area) / (2 * area))
		}
	}

	return dst
}

// AdaptiveThresholdMean binarizes a grayscale image against the local
// mean: a pixel becomes maxValue when it exceeds its blockSize x
// blockSize mean minus c, and 0 otherwise. Equivalent to
// cv::adaptiveThreshold with ADAPTIVE_THRESH_MEAN_C and THRESH_BINARY.
func AdaptiveThresholdMean(img *GrayImage, maxValue float64, blockSize int, c float64) *GrayImage {
	width, height := img.Width(), img.Height()
	dst := NewGrayImage(width, height)

	imaxval := clampUint8(maxValue)
	idelta := int(math.Ceil(c))
	mean := BoxMeanGray(img, blockSize)

	for y := 0; y < height; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+width]
		m := mean.Pix[y*mean.Stride : y*mean.Stride+width]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+width]
		for x := range out {
			if int(src[x])-int(m[x]) > -idelta {
				out[x] = imaxval
			}
		}
	}

	return dst
}
