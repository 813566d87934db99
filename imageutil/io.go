package imageutil

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// ErrEmptyImage is returned when a decoded image has no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// SupportedExtensions lists the upload extensions Decode understands.
var SupportedExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp",
}

// IsSupportedExtension reports whether a filename or extension names an
// image format Decode can read.
func IsSupportedExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = "." + strings.TrimPrefix(strings.ToLower(name), ".")
	}
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Decode reads an image from r, applying any EXIF orientation so camera
// captures come out upright.
// Supports PNG, JPEG, GIF, BMP, TIFF and WebP.
func Decode(r io.Reader) (*RGBAImage, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	return RGBAImageFromImage(img), nil
}

// LoadImage loads an image from the specified path.
func LoadImage(path string) (*RGBAImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, unwrap(img))
}

// SaveImage saves an image to the specified path.
// Format is determined by file extension; unknown extensions get PNG.
func SaveImage(img image.Image, path string) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		format = imaging.PNG
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	err = imaging.Encode(f, unwrap(img), format, imaging.JPEGQuality(95))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// SavePNG saves an image as PNG to the specified path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	err = EncodePNG(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// unwrap hands encoders the concrete standard library image so their
// fast paths for *image.Gray and *image.RGBA apply.
func unwrap(img image.Image) image.Image {
	switch v := img.(type) {
	case *GrayImage:
		return v.Gray
	case *RGBAImage:
		return v.RGBA
	}
	return img
}
