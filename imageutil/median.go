package imageutil

// MedianBlurGray replaces each pixel with the median of its ksize x ksize
// neighbourhood, replicating edge pixels like cv::medianBlur. Even sizes
// are bumped to the next odd size.
func MedianBlurGray(img *GrayImage, ksize int) *GrayImage {
	ksize = oddKernelSize(ksize)
	width, height := img.Width(), img.Height()
	dst := NewGrayImage(width, height)
	if ksize == 1 {
		copy(dst.Pix, img.Pix)
		return dst
	}

	half := ksize / 2
	window := make([]uint8, ksize*ksize)
	mid := len(window) / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			n := 0
			for dy := -half; dy <= half; dy++ {
				sy := borderIndex(y+dy, height, BorderReplicate)
				row := img.Pix[sy*img.Stride:]
				for dx := -half; dx <= half; dx++ {
					window[n] = row[borderIndex(x+dx, width, BorderReplicate)]
					n++
				}
			}
			dst.Pix[y*dst.Stride+x] = selectNth(window, mid)
		}
	}

	return dst
}

// selectNth returns the n-th smallest value, reordering values in place.
// Windows are small, so insertion sort beats anything cleverer.
func selectNth(values []uint8, n int) uint8 {
	for i := 1; i < len(values); i++ {
		v := values[i]
		j := i - 1
		for j >= 0 && values[j] > v {
			values[j+1] = values[j]
			j--
		}
		values[j+1] = v
	}
	return values[n]
}
