package artwizard

import (
	"fmt"
	"sort"
	"sync"

	"github.com/wbrown/artwizard/imageutil"
)

// Backend runs the two filter pipelines on some image-processing engine.
type Backend interface {
	Name() string
	PencilSketch(img *imageutil.RGBAImage) (*imageutil.GrayImage, error)
	Cartoonify(img *imageutil.RGBAImage) (*imageutil.RGBAImage, error)
}

// DefaultBackend is the name of the pure Go backend, always available.
const DefaultBackend = "go"

var (
	backendsMu sync.RWMutex
	backends   = map[string]Backend{}
)

func init() {
	RegisterBackend(GoBackend{})
}

// RegisterBackend makes a backend available by name. Registering the
// same name twice replaces the earlier backend.
func RegisterBackend(b Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[b.Name()] = b
}

// LookupBackend returns the backend registered under name. An empty name
// selects DefaultBackend.
func LookupBackend(name string) (Backend, error) {
	if name == "" {
		name = DefaultBackend
	}
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	b, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownBackend, name, backendNamesLocked())
	}
	return b, nil
}

// BackendNames lists the registered backends in sorted order.
func BackendNames() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	return backendNamesLocked()
}

func backendNamesLocked() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GoBackend runs the filters with the pure Go imageutil primitives.
type GoBackend struct{}

func (GoBackend) Name() string { return DefaultBackend }

func (GoBackend) PencilSketch(img *imageutil.RGBAImage) (*imageutil.GrayImage, error) {
	if img.Empty() {
		return nil, ErrEmptyImage
	}
	return PencilSketch(img), nil
}

func (GoBackend) Cartoonify(img *imageutil.RGBAImage) (*imageutil.RGBAImage, error) {
	if img.Empty() {
		return nil, ErrEmptyImage
	}
	return Cartoonify(img), nil
}
