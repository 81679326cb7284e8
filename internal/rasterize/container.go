// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rasterize

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pdiddy/jpegify/internal/container"
)

// Container rasterizes SVG by piping it through a container image that
// reads SVG on stdin and writes PNG on stdout (rsvg-convert based images
// do this by default).
type Container struct {
	runtime container.Runtime
	image   string
}

// NewContainer verifies that image exists in rt before returning.
func NewContainer(rt container.Runtime, image string) (*Container, error) {
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("rasterizer image not available in %s: %w", rt.Name(), err)
	}
	return &Container{runtime: rt, image: image}, nil
}

func (c *Container) Name() string { return "container:" + c.image }

// Rasterize runs the image once per document.
func (c *Container) Rasterize(ctx context.Context, svg []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := c.runtime.Run(ctx, c.image, []string{"--format", "png"}, bytes.NewReader(svg), &out); err != nil {
		return nil, fmt.Errorf("rasterizing with %s: %w", c.image, err)
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("%s produced empty output", c.image)
	}
	return out.Bytes(), nil
}
