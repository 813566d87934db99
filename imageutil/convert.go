package imageutil

// ToGrayscale converts an RGBA image to grayscale using the standard
// luminance formula: Y = 0.299*R + 0.587*G + 0.114*B
// This matches the BT.601 standard used by OpenCV's COLOR_BGR2GRAY.
func ToGrayscale(img *RGBAImage) *GrayImage {
	width, height := img.Width(), img.Height()
	gray := NewGrayImage(width, height)

	for y := 0; y < height; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+width*4]
		dst := gray.Pix[y*gray.Stride : y*gray.Stride+width]
		for x := range dst {
			r, g, b := int(src[x*4]), int(src[x*4+1]), int(src[x*4+2])
			// Integer math, scaled by 1000 and rounded
			lum := (299*r + 587*g + 114*b + 500) / 1000
			if lum > 255 {
				lum = 255
			}
			dst[x] = uint8(lum)
		}
	}

	return gray
}

// InvertGray returns the tonal inverse (255 - v) of a grayscale image.
func InvertGray(img *GrayImage) *GrayImage {
	dst := NewGrayImage(img.Width(), img.Height())
	for y := 0; y < img.Height(); y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+img.Width()]
		row := dst.Pix[y*dst.Stride : y*dst.Stride+dst.Width()]
		for x, v := range src {
			row[x] = 255 - v
		}
	}
	return dst
}
