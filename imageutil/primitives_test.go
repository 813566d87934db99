package imageutil

import (
	"math"
	"testing"
)

func solidGray(width, height int, v uint8) *GrayImage {
	img := NewGrayImage(width, height)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// stepGray returns an image whose left half is lo and right half hi.
func stepGray(width, height int, lo, hi uint8) *GrayImage {
	img := NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.SetGrayValue(x, y, lo)
			} else {
				img.SetGrayValue(x, y, hi)
			}
		}
	}
	return img
}

func TestBorderIndex(t *testing.T) {
	tests := []struct {
		i, n   int
		border Border
		want   int
	}{
		{2, 5, BorderReflect101, 2},
		{-1, 5, BorderReflect101, 1},
		{-2, 5, BorderReflect101, 2},
		{5, 5, BorderReflect101, 3},
		{6, 5, BorderReflect101, 2},
		{-7, 3, BorderReflect101, 1},
		{-1, 5, BorderReplicate, 0},
		{9, 5, BorderReplicate, 4},
		{-3, 1, BorderReflect101, 0},
	}
	for _, tc := range tests {
		if got := borderIndex(tc.i, tc.n, tc.border); got != tc.want {
			t.Errorf("borderIndex(%d, %d, %d) = %d, want %d", tc.i, tc.n, tc.border, got, tc.want)
		}
	}
}

func TestGaussianKernel1D(t *testing.T) {
	if s := GaussianSigma(21); math.Abs(s-3.5) > 1e-9 {
		t.Errorf("Expected derived sigma 3.5 for ksize 21, got %f", s)
	}

	for _, ksize := range []int{3, 5, 21, 22} {
		k := GaussianKernel1D(ksize, 0)
		if len(k)%2 != 1 {
			t.Errorf("ksize %d: kernel length %d should be odd", ksize, len(k))
		}
		var sum float64
		for i, w := range k {
			sum += w
			if math.Abs(w-k[len(k)-1-i]) > 1e-12 {
				t.Errorf("ksize %d: kernel not symmetric at %d", ksize, i)
			}
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("ksize %d: kernel sums to %f", ksize, sum)
		}
	}

	small := GaussianKernel1D(5, 0)
	small[0] = 42
	if GaussianKernel1D(5, 0)[0] == 42 {
		t.Error("Returned kernels must not alias the shared table")
	}
}

func TestGaussianBlurGraySize(t *testing.T) {
	flat := solidGray(30, 20, 137)
	blurred := GaussianBlurGraySize(flat, 21, 0)
	if d := CalculateMaxDiffGray(flat, blurred); d != 0 {
		t.Errorf("Blurring a flat image should be a no-op, max diff %d", d)
	}

	step := stepGray(40, 10, 0, 200)
	blurred = GaussianBlurGraySize(step, 21, 0)
	left, right := blurred.GetGray(19, 5), blurred.GetGray(20, 5)
	if left == 0 || right == 200 {
		t.Errorf("Blur should soften the step, got %d|%d", left, right)
	}
	if left >= right {
		t.Errorf("Blur should keep the step monotonic, got %d|%d", left, right)
	}
}

func TestMedianBlurGray(t *testing.T) {
	img := solidGray(11, 11, 100)
	img.SetGrayValue(5, 5, 255)
	img.SetGrayValue(0, 0, 0)

	out := MedianBlurGray(img, 5)
	if d := CalculateMaxDiffGray(solidGray(11, 11, 100), out); d != 0 {
		t.Errorf("Median should remove isolated outliers, max diff %d", d)
	}

	if got := MedianBlurGray(img, 1); CalculateMaxDiffGray(img, got) != 0 {
		t.Error("ksize 1 should copy the input")
	}
}

func TestBoxMeanGray(t *testing.T) {
	flat := solidGray(12, 7, 90)
	if d := CalculateMaxDiffGray(flat, BoxMeanGray(flat, 9)); d != 0 {
		t.Errorf("Mean of a flat image should equal it, max diff %d", d)
	}

	img := NewGrayImage(3, 3)
	img.SetGrayValue(1, 1, 90)
	mean := BoxMeanGray(img, 3)
	if got := mean.GetGray(1, 1); got != 10 {
		t.Errorf("Expected center mean 10, got %d", got)
	}
}

func TestAdaptiveThresholdMean(t *testing.T) {
	flat := solidGray(20, 20, 77)
	mask := AdaptiveThresholdMean(flat, 255, 9, 9)
	if n := CountNonZero(mask); n != 20*20 {
		t.Errorf("Flat image should produce an all-on mask, got %d of %d", n, 20*20)
	}

	step := stepGray(20, 10, 0, 200)
	mask = AdaptiveThresholdMean(step, 255, 9, 9)
	if v := mask.GetGray(9, 5); v != 0 {
		t.Errorf("Dark side of the edge should be masked out, got %d", v)
	}
	if v := mask.GetGray(0, 5); v != 255 {
		t.Errorf("Pixels far from the edge should be on, got %d", v)
	}
	if v := mask.GetGray(10, 5); v != 255 {
		t.Errorf("Bright side of the edge should be on, got %d", v)
	}
	for _, v := range mask.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("Mask should be binary, found %d", v)
		}
	}
}

func TestBilateralFilter(t *testing.T) {
	flat := CreateSolidImage(15, 15, RGB{R: 40, G: 120, B: 200})
	out := BilateralFilter(flat, 9, 300, 300)
	if d := CalculateMaxDiff(flat, out); d != 0 {
		t.Errorf("Bilateral filter of a flat image should be a no-op, max diff %d", d)
	}

	// A small color sigma makes the filter refuse to average across the edge.
	checker := CreateCheckerboardImage(32, 32, 8)
	out = BilateralFilter(checker, 9, 10, 300)
	if d := CalculateMaxDiff(checker, out); d > 1 {
		t.Errorf("Strong edges should survive a narrow color sigma, max diff %d", d)
	}

	// A huge color sigma degrades toward a plain blur.
	out = BilateralFilter(checker, 9, 1e6, 300)
	if CalculateMaxDiff(checker, out) < 50 {
		t.Error("A wide color sigma should blur across edges")
	}
	if out.Width() != 32 || out.Height() != 32 {
		t.Errorf("Expected 32x32, got %dx%d", out.Width(), out.Height())
	}
}

func TestDivideGray(t *testing.T) {
	tests := []struct {
		a, b uint8
		want uint8
	}{
		{128, 128, 255}, // 256 saturates
		{64, 128, 128},
		{1, 3, 85},
		{200, 0, 0},
		{0, 50, 0},
	}
	for _, tc := range tests {
		a, b := solidGray(1, 1, tc.a), solidGray(1, 1, tc.b)
		if got := DivideGray(a, b, 256).GetGray(0, 0); got != tc.want {
			t.Errorf("%d*256/%d: expected %d, got %d", tc.a, tc.b, tc.want, got)
		}
	}
}

func TestMaskRGBA(t *testing.T) {
	img := CreateSolidImage(4, 1, RGB{R: 10, G: 20, B: 30})
	mask := NewGrayImage(4, 1)
	mask.SetGrayValue(1, 0, 255)
	mask.SetGrayValue(3, 0, 1)

	out := MaskRGBA(img, mask)
	want := []RGB{{}, {10, 20, 30}, {}, {10, 20, 30}}
	for x, w := range want {
		if got := out.GetRGB(x, 0); got != w {
			t.Errorf("x=%d: expected %v, got %v", x, w, got)
		}
		if out.RGBAAt(x, 0).A != 255 {
			t.Errorf("x=%d: masked output should stay opaque", x)
		}
	}
}

func TestPrimitivesPreserveDimensions(t *testing.T) {
	rgba := CreateNoiseImage(23, 17, 1)
	gray := ToGrayscale(rgba)

	grays := map[string]*GrayImage{
		"gaussian":  GaussianBlurGraySize(gray, 21, 0),
		"median":    MedianBlurGray(gray, 5),
		"threshold": AdaptiveThresholdMean(gray, 255, 9, 9),
		"invert":    InvertGray(gray),
		"divide":    DivideGray(gray, InvertGray(gray), 256),
	}
	for name, g := range grays {
		if g.Width() != 23 || g.Height() != 17 {
			t.Errorf("%s: expected 23x17, got %dx%d", name, g.Width(), g.Height())
		}
	}

	for name, c := range map[string]*RGBAImage{
		"bilateral": BilateralFilter(rgba, 9, 300, 300),
		"mask":      MaskRGBA(rgba, gray),
	} {
		if c.Width() != 23 || c.Height() != 17 {
			t.Errorf("%s: expected 23x17, got %dx%d", name, c.Width(), c.Height())
		}
	}
}

func TestPrimitivesHandleEmptyImages(t *testing.T) {
	gray := NewGrayImage(0, 0)
	if out := GaussianBlurGraySize(gray, 21, 0); out.Width() != 0 {
		t.Error("Gaussian of empty image should be empty")
	}
	if out := AdaptiveThresholdMean(gray, 255, 9, 9); out.Width() != 0 {
		t.Error("Threshold of empty image should be empty")
	}
	if out := BilateralFilter(NewRGBAImage(0, 0), 9, 300, 300); !out.Empty() {
		t.Error("Bilateral of empty image should be empty")
	}
}

func TestGaussianKernel1DKnownValues(t *testing.T) {
	// First half of the 21-tap kernel at the derived sigma 3.5; the rest
	// mirrors it.
	want := []float64{
		0.001929, 0.004189, 0.008385, 0.015466, 0.026292, 0.041193,
		0.059478, 0.079148, 0.097067, 0.109711, 0.114282,
	}
	k := GaussianKernel1D(21, 0)
	if len(k) != 21 {
		t.Fatalf("Expected 21 taps, got %d", len(k))
	}
	for i, w := range want {
		if math.Abs(k[i]-w) > 1e-6 {
			t.Errorf("tap %d = %.6f, want %.6f", i, k[i], w)
		}
		if k[20-i] != k[i] {
			t.Errorf("tap %d = %v is not mirrored by tap %d = %v", i, k[i], 20-i, k[20-i])
		}
	}

	small := GaussianKernel1D(5, 0)
	for i, w := range []float64{0.0625, 0.25, 0.375, 0.25, 0.0625} {
		if small[i] != w {
			t.Errorf("5-tap kernel[%d] = %v, want %v", i, small[i], w)
		}
	}
}

func TestBilateralFilterKnownValues(t *testing.T) {
	src := NewRGBAImage(3, 3)
	pixels := [3][3]RGB{
		{{10, 20, 30}, {200, 100, 50}, {10, 20, 30}},
		{{40, 40, 40}, {90, 60, 30}, {0, 0, 255}},
		{{10, 20, 30}, {120, 120, 120}, {255, 255, 255}},
	}
	for y, row := range pixels {
		for x, c := range row {
			src.SetRGB(x, y, c)
		}
	}

	want := [3][3]RGB{
		{{16, 24, 32}, {200, 100, 50}, {10, 20, 30}},
		{{36, 37, 38}, {89, 60, 30}, {0, 0, 255}},
		{{16, 24, 32}, {120, 120, 120}, {255, 255, 255}},
	}
	out := BilateralFilter(src, 3, 30, 2)
	for y, row := range want {
		for x, c := range row {
			if got := out.GetRGB(x, y); got != c {
				t.Errorf("(%d,%d) = %v, want %v", x, y, got, c)
			}
		}
	}
}
