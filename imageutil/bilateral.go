package imageutil

import "math"

// BilateralFilter smooths a color image while keeping strong edges.
// Each output pixel is the average of its neighbours within a circular
// window of diameter d, weighted by spatial distance (sigmaSpace) and by
// the L1 color distance to the center pixel (sigmaColor). When d <= 0 it
// is derived from sigmaSpace. Matches cv::bilateralFilter on 8-bit
// three-channel input, including its reflect-101 border.
func BilateralFilter(img *RGBAImage, d int, sigmaColor, sigmaSpace float64) *RGBAImage {
	width, height := img.Width(), img.Height()
	dst := NewRGBAImage(width, height)
	if width == 0 || height == 0 {
		return dst
	}

	if sigmaColor <= 0 {
		sigmaColor = 1
	}
	if sigmaSpace <= 0 {
		sigmaSpace = 1
	}

	var radius int
	if d <= 0 {
		radius = int(math.Round(sigmaSpace * 1.5))
	} else {
		radius = d / 2
	}
	if radius < 1 {
		radius = 1
	}

	colorCoeff := -0.5 / (sigmaColor * sigmaColor)
	spaceCoeff := -0.5 / (sigmaSpace * sigmaSpace)

	const channels = 3
	colorWeight := make([]float64, channels*256)
	for i := range colorWeight {
		colorWeight[i] = math.Exp(float64(i*i) * colorCoeff)
	}

	type tap struct {
		dx, dy int
		w      float64
	}
	taps := make([]tap, 0, (2*radius+1)*(2*radius+1))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			r := math.Sqrt(float64(dx*dx + dy*dy))
			if r > float64(radius) {
				continue
			}
			taps = append(taps, tap{dx: dx, dy: dy, w: math.Exp(r * r * spaceCoeff)})
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ci := y*img.Stride + x*4
			r0, g0, b0 := int(img.Pix[ci]), int(img.Pix[ci+1]), int(img.Pix[ci+2])

			var sumR, sumG, sumB, wsum float64
			for _, t := range taps {
				sx := borderIndex(x+t.dx, width, BorderReflect101)
				sy := borderIndex(y+t.dy, height, BorderReflect101)
				si := sy*img.Stride + sx*4
				r, g, b := int(img.Pix[si]), int(img.Pix[si+1]), int(img.Pix[si+2])

				w := t.w * colorWeight[absInt(r-r0)+absInt(g-g0)+absInt(b-b0)]
				sumR += float64(r) * w
				sumG += float64(g) * w
				sumB += float64(b) * w
				wsum += w
			}

			di := y*dst.Stride + x*4
			dst.Pix[di] = clampUint8(sumR / wsum)
			dst.Pix[di+1] = clampUint8(sumG / wsum)
			dst.Pix[di+2] = clampUint8(sumB / wsum)
		}
	}

	return dst
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
