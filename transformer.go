package artwizard

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/wbrown/artwizard/imageutil"
)

// Transformer applies a filter through a chosen backend and packages the
// output for preview and download. It holds no per-image state and is
// safe for concurrent use.
type Transformer struct {
	backend      Backend
	previewWidth int
}

// TransformerOption is a functional option for configuring a Transformer.
type TransformerOption func(*Transformer)

// NewTransformer creates a Transformer with the given options.
// Defaults: the pure Go backend and an 800 pixel preview width.
func NewTransformer(opts ...TransformerOption) *Transformer {
	t := &Transformer{
		backend:      GoBackend{},
		previewWidth: 800,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// WithBackend selects the engine that runs the filters.
func WithBackend(b Backend) TransformerOption {
	return func(t *Transformer) {
		if b != nil {
			t.backend = b
		}
	}
}

// WithPreviewWidth bounds the width of preview images; 0 disables
// downscaling.
func WithPreviewWidth(width int) TransformerOption {
	return func(t *Transformer) {
		if width >= 0 {
			t.previewWidth = width
		}
	}
}

// Backend returns the backend in use.
func (t *Transformer) Backend() Backend {
	return t.backend
}

// Result is a filtered image together with its download metadata.
type Result struct {
	Kind        FilterKind
	Image       image.Image
	Filename    string
	ContentType string
	Backend     string
	Duration    time.Duration
}

// WritePNG encodes the result as PNG.
func (r *Result) WritePNG(w io.Writer) error {
	return imageutil.EncodePNG(w, r.Image)
}

// PNG returns the encoded result.
func (r *Result) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.WritePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode %s: %w", r.Filename, err)
	}
	return buf.Bytes(), nil
}

// Filter is one transformation bound to a backend.
type Filter interface {
	Kind() FilterKind
	Apply(img *imageutil.RGBAImage) (image.Image, error)
}

type backendFilter struct {
	kind    FilterKind
	backend Backend
}

func (f backendFilter) Kind() FilterKind { return f.kind }

func (f backendFilter) Apply(img *imageutil.RGBAImage) (image.Image, error) {
	if img.Empty() {
		return nil, ErrEmptyImage
	}
	// On error the returned image.Image must be nil, not a typed nil.
	switch f.kind {
	case Pencil:
		out, err := f.backend.PencilSketch(img)
		if err != nil {
			return nil, err
		}
		return out, nil
	case Cartoon:
		out, err := f.backend.Cartoonify(img)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, string(f.kind))
}

// Filter returns the filter for kind running on the transformer's
// backend.
func (t *Transformer) Filter(kind FilterKind) (Filter, error) {
	if _, err := kind.Info(); err != nil {
		return nil, err
	}
	return backendFilter{kind: kind, backend: t.backend}, nil
}

// Transform runs the filter named by kind over img.
func (t *Transformer) Transform(kind FilterKind, img *imageutil.RGBAImage) (*Result, error) {
	f, err := t.Filter(kind)
	if err != nil {
		return nil, err
	}
	if img.Empty() {
		return nil, ErrEmptyImage
	}

	start := time.Now()
	out, err := f.Apply(img)
	if err != nil {
		return nil, fmt.Errorf("%s via %s: %w", kind, t.backend.Name(), err)
	}

	return &Result{
		Kind:        kind,
		Image:       out,
		Filename:    kind.Filename(),
		ContentType: "image/png",
		Backend:     t.backend.Name(),
		Duration:    time.Since(start),
	}, nil
}

// Preview downscales img to the configured preview width.
func (t *Transformer) Preview(img image.Image) image.Image {
	return imageutil.Fit(img, t.previewWidth, 0)
}
