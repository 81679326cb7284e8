// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/jpegify/internal/convert"
	"github.com/pdiddy/jpegify/internal/journal"
	"github.com/pdiddy/jpegify/internal/rasterize"
	"github.com/pdiddy/jpegify/pkg/types"
)

const doneLine = "DONE: All possible images converted to JPG."

var _ convert.Journal = (*journal.Store)(nil)

// runConvert never returns an error: every failure is reported on the
// output and the process exits zero.
func runConvert(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	cfg, err := loadConversionConfig(viper.GetViper())
	if err != nil {
		fmt.Fprintf(out, "Invalid configuration: %v\n", err)
		fmt.Fprintln(out, doneLine)
		return nil
	}

	raster, err := rasterize.Resolve(cfg.SVGBackend, cfg.SVGImage)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "SVG support disabled: %v\n", err)
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "SVG rasterizer: %s\n", raster.Name())
	}

	runBatch(ctx, cfg, raster, out)
	return nil
}

// runBatch opens the journal when configured, converts the tree, and
// prints the completion line.
func runBatch(ctx context.Context, cfg types.ConversionConfig, raster rasterize.Rasterizer, out io.Writer) convert.BatchResult {
	var j convert.Journal
	if cfg.JournalPath != "" {
		store, err := journal.Open(cfg.JournalPath)
		if err != nil {
			fmt.Fprintf(out, "Journal disabled: %v\n", err)
		} else {
			defer store.Close()
			j = store
		}
	}

	result := convert.New(cfg, raster, j, out).Traverse(ctx)
	fmt.Fprintln(out, doneLine)
	return result
}
