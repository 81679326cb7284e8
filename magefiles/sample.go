//go:build mage

package main

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
)

const sampleDir = "testdata/sample"

const sampleSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32">
  <circle cx="16" cy="16" r="12" fill="#1e88e5"/>
</svg>
`

// Sample writes a small icon tree under testdata/sample for trying the CLI:
// an opaque PNG, a transparent PNG, a paletted GIF, an SVG, a corrupt PNG,
// and a file that is already a JPEG.
func Sample() error {
	if err := os.MkdirAll(filepath.Join(sampleDir, "nested"), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", sampleDir, err)
	}

	opaque := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	fill(opaque, color.NRGBA{R: 255, A: 255})
	transparent := image.NewNRGBA(image.Rect(0, 0, 10, 10))

	pal := image.NewPaletted(image.Rect(0, 0, 10, 10), color.Palette{color.NRGBA{}, color.NRGBA{G: 160, A: 255}})
	for i := 0; i < 10; i++ {
		pal.SetColorIndex(i, i, 1)
	}

	files := []struct {
		name  string
		write func(path string) error
	}{
		{"a.png", func(p string) error { return writeImage(p, func(f *os.File) error { return png.Encode(f, opaque) }) }},
		{"b.png", func(p string) error { return writeImage(p, func(f *os.File) error { return png.Encode(f, transparent) }) }},
		{"nested/diag.gif", func(p string) error { return writeImage(p, func(f *os.File) error { return gif.Encode(f, pal, nil) }) }},
		{"nested/logo.svg", func(p string) error { return os.WriteFile(p, []byte(sampleSVG), 0o644) }},
		{"broken.png", func(p string) error { return os.WriteFile(p, nil, 0o644) }},
		{"c.jpg", func(p string) error { return os.WriteFile(p, []byte("already converted"), 0o644) }},
	}
	for _, f := range files {
		path := filepath.Join(sampleDir, f.name)
		if err := f.write(path); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Println("  ", path)
	}
	fmt.Println("Sample tree written. Try: jpegify --root", sampleDir)
	return nil
}

func fill(img *image.NRGBA, c color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func writeImage(path string, enc func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := enc(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
