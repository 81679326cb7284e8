// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rasterize

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// maxSide caps either output dimension so a bogus viewBox cannot allocate
// an unbounded canvas.
const maxSide = 16384

// Native rasterizes SVG in-process with oksvg. It covers paths, basic
// shapes, gradients and transforms; text elements are ignored.
type Native struct{}

// NewNative returns the in-process rasterizer.
func NewNative() *Native { return &Native{} }

func (n *Native) Name() string { return "native" }

// Rasterize renders svg at its viewBox size onto a transparent canvas.
func (n *Native) Rasterize(ctx context.Context, svg []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parsing svg: %w", err)
	}

	w := int(math.Ceil(icon.ViewBox.W))
	h := int(math.Ceil(icon.ViewBox.H))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("svg has no usable viewBox (%gx%g)", icon.ViewBox.W, icon.ViewBox.H)
	}
	if w > maxSide || h > maxSide {
		return nil, fmt.Errorf("svg size %dx%d exceeds %d pixel limit", w, h, maxSide)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, canvas, canvas.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encoding rasterized svg: %w", err)
	}
	return buf.Bytes(), nil
}
