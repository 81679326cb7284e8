// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

const (
	// DefaultRootDir is the directory converted when none is configured.
	DefaultRootDir = "icons"

	// DefaultQuality is the JPEG quality used when none is configured.
	DefaultQuality = 95

	// DefaultBackground is opaque white.
	DefaultBackground = "#ffffff"

	// DefaultSVGImage is the container image used by the container rasterizer.
	DefaultSVGImage = "jpegify-rsvg:latest"
)

// SVGBackend identifies how SVG sources are rasterized.
type SVGBackend string

const (
	SVGNative    SVGBackend = "native"
	SVGContainer SVGBackend = "container"
	SVGNone      SVGBackend = "none"
)

// RGB is an opaque background colour used to flatten transparency.
type RGB struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// White is the default background.
var White = RGB{R: 255, G: 255, B: 255}

// Color returns the background as a fully opaque color.RGBA.
func (c RGB) Color() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// String formats the colour as #rrggbb.
func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseRGB accepts "#rrggbb", "#rgb", "rrggbb" or "r,g,b" (decimal components).
func ParseRGB(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RGB{}, fmt.Errorf("empty colour")
	}

	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		if len(parts) != 3 {
			return RGB{}, fmt.Errorf("colour %q: want three comma-separated components", s)
		}
		var out [3]uint8
		for i, p := range parts {
			v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return RGB{}, fmt.Errorf("colour %q: component %d: %w", s, i+1, err)
			}
			out[i] = uint8(v)
		}
		return RGB{R: out[0], G: out[1], B: out[2]}, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("colour %q: want #rrggbb, #rgb or r,g,b", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// ConversionConfig holds the settings for one conversion run. It is built
// once by the CLI and passed by value; nothing mutates it afterwards.
type ConversionConfig struct {
	// RootDir is the directory walked recursively.
	RootDir string `json:"root_dir" yaml:"root_dir"`

	// Quality is the JPEG quality, 1-100 (default 95).
	Quality int `json:"quality" yaml:"quality"`

	// Background is the colour transparent pixels are flattened onto.
	Background RGB `json:"background" yaml:"background"`

	// SVGBackend selects the rasterizer: native, container, or none.
	SVGBackend SVGBackend `json:"svg_backend" yaml:"svg_backend"`

	// SVGImage is the container image used when SVGBackend is container.
	SVGImage string `json:"svg_image" yaml:"svg_image"`

	// JournalPath is the SQLite journal file. Empty disables the journal.
	JournalPath string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// ReportPath is the YAML run report file. Empty disables the report.
	ReportPath string `json:"report,omitempty" yaml:"report,omitempty"`
}

// DefaultConversionConfig returns the built-in settings.
func DefaultConversionConfig() ConversionConfig {
	return ConversionConfig{
		RootDir:    DefaultRootDir,
		Quality:    DefaultQuality,
		Background: White,
		SVGBackend: SVGNative,
		SVGImage:   DefaultSVGImage,
	}
}

// Normalize fills zero values with defaults and clamps Quality to 1..100.
func (c ConversionConfig) Normalize() ConversionConfig {
	if c.RootDir == "" {
		c.RootDir = DefaultRootDir
	}
	switch {
	case c.Quality <= 0:
		c.Quality = DefaultQuality
	case c.Quality > 100:
		c.Quality = 100
	}
	if c.SVGBackend == "" {
		c.SVGBackend = SVGNative
	}
	if c.SVGImage == "" {
		c.SVGImage = DefaultSVGImage
	}
	return c
}

// Validate reports settings that cannot be used.
func (c ConversionConfig) Validate() error {
	switch c.SVGBackend {
	case SVGNative, SVGContainer, SVGNone:
	default:
		return fmt.Errorf("unknown svg backend %q (want native, container, or none)", c.SVGBackend)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("quality %d out of range 1-100", c.Quality)
	}
	return nil
}
