// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rasterize turns SVG documents into PNG bytes. The backend is
// chosen once at startup by Resolve and handed to the converter; a nil
// Rasterizer means SVG support is unavailable for the run.
package rasterize

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/jpegify/internal/container"
	"github.com/pdiddy/jpegify/pkg/types"
)

// ErrUnavailable is returned by Resolve when the configured backend cannot
// be used.
var ErrUnavailable = errors.New("svg rasterizer unavailable")

// Rasterizer converts SVG content into PNG content.
type Rasterizer interface {
	// Name identifies the backend in log lines.
	Name() string

	// Rasterize renders svg and returns the encoded PNG.
	Rasterize(ctx context.Context, svg []byte) ([]byte, error)
}

// Resolve picks the rasterizer for backend. When the backend cannot serve
// the run it returns a nil Rasterizer and an error wrapping ErrUnavailable;
// callers log the reason and carry on without SVG support.
func Resolve(backend types.SVGBackend, image string) (Rasterizer, error) {
	return resolve(backend, image, container.DetectRuntime)
}

func resolve(backend types.SVGBackend, image string, detect func() (container.Runtime, error)) (Rasterizer, error) {
	switch backend {
	case types.SVGNative, "":
		return NewNative(), nil
	case types.SVGContainer:
		rt, err := detect()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		c, err := NewContainer(rt, image)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return c, nil
	case types.SVGNone:
		return nil, fmt.Errorf("%w: disabled by configuration", ErrUnavailable)
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrUnavailable, backend)
	}
}
