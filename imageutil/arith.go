package imageutil

import "math"

// DivideGray computes saturate(round(a*scale/b)) per pixel, writing 0
// wherever b is 0, like cv::divide on 8-bit input. Both images must have
// the same dimensions; the result takes a's.
func DivideGray(a, b *GrayImage, scale float64) *GrayImage {
	width, height := a.Width(), a.Height()
	dst := NewGrayImage(width, height)

	for y := 0; y < height; y++ {
		ra := a.Pix[y*a.Stride : y*a.Stride+width]
		rb := b.Pix[y*b.Stride : y*b.Stride+width]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+width]
		for x := range out {
			if rb[x] == 0 {
				continue
			}
			v := math.RoundToEven(float64(ra[x]) * scale / float64(rb[x]))
			if v > 255 {
				v = 255
			}
			out[x] = uint8(v)
		}
	}

	return dst
}

// MaskRGBA keeps the color of every pixel whose mask value is non-zero
// and blacks out the rest: cv::bitwise_and(src, src, mask).
func MaskRGBA(img *RGBAImage, mask *GrayImage) *RGBAImage {
	width, height := img.Width(), img.Height()
	dst := NewRGBAImage(width, height)

	for y := 0; y < height; y++ {
		m := mask.Pix[y*mask.Stride : y*mask.Stride+width]
		for x, on := range m {
			if on == 0 {
				continue
			}
			si := y*img.Stride + x*4
			di := y*dst.Stride + x*4
			copy(dst.Pix[di:di+3], img.Pix[si:si+3])
		}
	}

	return dst
}

// CountNonZero returns the number of non-zero pixels in a gray image.
func CountNonZero(img *GrayImage) int {
	n := 0
	for y := 0; y < img.Height(); y++ {
		for _, v := range img.Pix[y*img.Stride : y*img.Stride+img.Width()] {
			if v != 0 {
				n++
			}
		}
	}
	return n
}
