// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/jpegify/pkg/types"
)

// Viper keys. Each is also readable from JPEGIFY_<KEY> and the config file.
const (
	keyRootDir    = "root_dir"
	keyQuality    = "quality"
	keyBackground = "background"
	keySVGBackend = "svg_backend"
	keySVGImage   = "svg_image"
	keyJournal    = "journal"
	keyReport     = "report"
)

func registerConvertFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("root", types.DefaultRootDir, "directory to convert recursively")
	f.Int("quality", types.DefaultQuality, "JPEG quality (1-100)")
	f.String("background", types.DefaultBackground, "background for transparent pixels (#rrggbb or r,g,b)")
	f.String("svg-backend", string(types.SVGNative), "SVG rasterizer: native, container, or none")
	f.String("svg-image", types.DefaultSVGImage, "container image used by the container rasterizer")
	f.String("report", "", "write a YAML run report to this file")

	for key, flag := range map[string]string{
		keyRootDir:    "root",
		keyQuality:    "quality",
		keyBackground: "background",
		keySVGBackend: "svg-backend",
		keySVGImage:   "svg-image",
		keyReport:     "report",
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}
}

// loadConversionConfig resolves the run settings from v.
func loadConversionConfig(v *viper.Viper) (types.ConversionConfig, error) {
	cfg := types.DefaultConversionConfig()

	if s := v.GetString(keyRootDir); s != "" {
		cfg.RootDir = s
	}
	if v.IsSet(keyQuality) {
		cfg.Quality = v.GetInt(keyQuality)
	}
	if s := v.GetString(keyBackground); s != "" {
		bg, err := types.ParseRGB(s)
		if err != nil {
			return cfg, fmt.Errorf("background: %w", err)
		}
		cfg.Background = bg
	}
	if s := v.GetString(keySVGBackend); s != "" {
		cfg.SVGBackend = types.SVGBackend(strings.ToLower(s))
	}
	if s := v.GetString(keySVGImage); s != "" {
		cfg.SVGImage = s
	}
	cfg.JournalPath = v.GetString(keyJournal)
	cfg.ReportPath = v.GetString(keyReport)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
