// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"

	// Raster formats accepted as sources.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"

	"github.com/pdiddy/jpegify/pkg/types"
)

// decodeReader decodes any registered raster format and returns the image
// with its format name.
func decodeReader(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	return img, format, nil
}

func decodeFile(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	return decodeReader(f)
}

func decodeBytes(data []byte) (image.Image, string, error) {
	return decodeReader(bytes.NewReader(data))
}

// HasAlpha reports whether img has any pixel that is not fully opaque.
func HasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}

// Flatten returns an opaque RGBA copy of img anchored at (0,0). Images with
// transparency are composited over bg; opaque images are converted as-is.
func Flatten(img image.Image, bg types.RGB) *image.RGBA {
	src := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))

	if HasAlpha(img) {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(bg.Color()), image.Point{}, draw.Src)
		draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Over)
		return dst
	}
	draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
	return dst
}

// encodeJPEG writes img to path and syncs it to disk. An existing file at
// path is truncated.
func encodeJPEG(path string, img image.Image, quality int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	return nil
}
