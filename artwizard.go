// Package artwizard turns photographs into pencil sketches and cartoons.
//
// The two filters are fixed pipelines of standard image-processing
// primitives from the imageutil package. They run on a pure Go backend by
// default; building with -tags gocv adds an OpenCV backend that performs
// the same pipeline through gocv.
package artwizard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownFilter is returned for a filter name that is neither
	// the pencil sketch nor the cartoon.
	ErrUnknownFilter = errors.New("unknown filter")

	// ErrUnknownBackend is returned when no backend is registered under
	// the requested name.
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrEmptyImage is returned when a filter is handed an image with
	// no pixels.
	ErrEmptyImage = errors.New("empty image")
)

// FilterKind identifies one of the two transformations.
type FilterKind string

const (
	Pencil  FilterKind = "pencil"
	Cartoon FilterKind = "cartoon"
)

// FilterInfo describes how a filter is presented and downloaded.
type FilterInfo struct {
	Kind     FilterKind `json:"kind"`
	Name     string     `json:"name"`
	Button   string     `json:"button"`
	Caption  string     `json:"caption"`
	Filename string     `json:"filename"`
}

// Filters lists the available transformations in display order.
var Filters = []FilterInfo{
	{
		Kind:     Pencil,
		Name:     "Pencil Sketch",
		Button:   "Convert to Pencil Sketch",
		Caption:  "Pencil Sketch",
		Filename: "pencil_sketch.png",
	},
	{
		Kind:     Cartoon,
		Name:     "Cartoonify",
		Button:   "Convert to Cartoon",
		Caption:  "Cartoonified Image",
		Filename: "cartoonified_image.png",
	},
}

// Info returns the presentation details for k.
func (k FilterKind) Info() (FilterInfo, error) {
	for _, f := range Filters {
		if f.Kind == k {
			return f, nil
		}
	}
	return FilterInfo{}, fmt.Errorf("%w: %q", ErrUnknownFilter, string(k))
}

// Filename returns the fixed download filename for k, or "" when k is
// not a known filter.
func (k FilterKind) Filename() string {
	info, err := k.Info()
	if err != nil {
		return ""
	}
	return info.Filename
}

func (k FilterKind) String() string {
	return string(k)
}

// ParseFilterKind maps the names users and forms send to a FilterKind.
// Matching ignores case, spaces, dashes and underscores.
func ParseFilterKind(s string) (FilterKind, error) {
	norm := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch norm {
	case "pencil", "pencilsketch", "sketch":
		return Pencil, nil
	case "cartoon", "cartoonify", "cartoonified", "cartoonifiedimage":
		return Cartoon, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}
