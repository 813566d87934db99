package artwizard

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/wbrown/artwizard/imageutil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// OriginalCaption labels the unfiltered panel of a comparison sheet.
const OriginalCaption = "Original Image"

// ComparisonOptions controls the layout of a comparison sheet.
type ComparisonOptions struct {
	PanelWidth int     // panels are downscaled to this width; 0 keeps full size
	Padding    int     // pixels around and between panels
	FontSize   float64 // caption size in points at 72 DPI
}

// DefaultComparisonOptions returns the layout used by the CLI.
func DefaultComparisonOptions() ComparisonOptions {
	return ComparisonOptions{
		PanelWidth: 480,
		Padding:    16,
		FontSize:   20,
	}
}

// Panel is one captioned image on a comparison sheet.
type Panel struct {
	Caption string
	Image   image.Image
}

var (
	captionFontOnce sync.Once
	captionFont     *truetype.Font
	captionFontErr  error
)

func loadCaptionFont() (*truetype.Font, error) {
	captionFontOnce.Do(func() {
		captionFont, captionFontErr = freetype.ParseFont(goregular.TTF)
	})
	return captionFont, captionFontErr
}

// RenderComparison lays the original, its pencil sketch and its cartoon
// side by side on a white sheet, each captioned above.
func (t *Transformer) RenderComparison(img *imageutil.RGBAImage, opts ComparisonOptions) (*imageutil.RGBAImage, error) {
	panels := []Panel{{Caption: OriginalCaption, Image: img}}
	for _, f := range Filters {
		res, err := t.Transform(f.Kind, img)
		if err != nil {
			return nil, err
		}
		panels = append(panels, Panel{Caption: f.Caption, Image: res.Image})
	}
	return RenderPanels(panels, opts)
}

// RenderPanels draws captioned panels left to right.
func RenderPanels(panels []Panel, opts ComparisonOptions) (*imageutil.RGBAImage, error) {
	if len(panels) == 0 {
		return nil, ErrEmptyImage
	}
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultComparisonOptions().FontSize
	}
	if opts.Padding < 0 {
		opts.Padding = 0
	}

	ttf, err := loadCaptionFont()
	if err != nil {
		return nil, fmt.Errorf("load caption font: %w", err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    opts.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	captionHeight := ascent + metrics.Descent.Ceil()

	scaled := make([]image.Image, len(panels))
	width, tallest := opts.Padding, 0
	for i, p := range panels {
		if p.Image == nil || p.Image.Bounds().Empty() {
			return nil, fmt.Errorf("panel %q: %w", p.Caption, ErrEmptyImage)
		}
		scaled[i] = imageutil.Fit(p.Image, opts.PanelWidth, 0)
		b := scaled[i].Bounds()
		width += b.Dx() + opts.Padding
		tallest = max(tallest, b.Dy())
	}
	height := opts.Padding + captionHeight + opts.Padding/2 + tallest + opts.Padding

	sheet := imageutil.NewRGBAImage(width, height)
	draw.Draw(sheet.RGBA, sheet.Bounds(), image.White, image.Point{}, draw.Src)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(opts.FontSize)
	ctx.SetClip(sheet.Bounds())
	ctx.SetDst(sheet.RGBA)
	ctx.SetSrc(image.NewUniform(color.Black))
	ctx.SetHinting(font.HintingFull)

	x := opts.Padding
	top := opts.Padding + captionHeight + opts.Padding/2
	for i, p := range panels {
		b := scaled[i].Bounds()

		// Center the caption over its panel
		textWidth := font.MeasureString(face, p.Caption).Ceil()
		tx := x + (b.Dx()-textWidth)/2
		if tx < x {
			tx = x
		}
		pt := fixed.Point26_6{X: fixed.I(tx), Y: fixed.I(opts.Padding + ascent)}
		if _, err := ctx.DrawString(p.Caption, pt); err != nil {
			return nil, fmt.Errorf("draw caption %q: %w", p.Caption, err)
		}

		dst := image.Rect(x, top, x+b.Dx(), top+b.Dy())
		draw.Draw(sheet.RGBA, dst, scaled[i], b.Min, draw.Src)
		x += b.Dx() + opts.Padding
	}

	return sheet, nil
}
