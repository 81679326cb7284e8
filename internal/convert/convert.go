// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert walks a directory tree and rewrites every non-JPEG image
// as a sibling .jpg, flattening transparency onto a solid background and
// deleting the source once the JPEG is on disk.
//
// Processing is sequential. Every failure is confined to its file: it is
// logged, recorded in the FileResult, and the walk moves on.
package convert

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pdiddy/jpegify/internal/rasterize"
	"github.com/pdiddy/jpegify/pkg/types"
)

// Journal records conversion runs. The converter only writes to it; it
// never consults it when deciding what to convert.
type Journal interface {
	BeginRun(ctx context.Context, root string, startedAt time.Time) (int64, error)
	RecordFile(ctx context.Context, runID int64, r types.FileResult) error
	FinishRun(ctx context.Context, runID int64, s types.RunSummary) error
}

// BatchResult holds the outcome of a Traverse call.
type BatchResult struct {
	Summary types.RunSummary
	Results []types.FileResult
}

// Total returns the number of files handed to Convert.
func (r BatchResult) Total() int {
	return r.Summary.Converted + r.Summary.Skipped + r.Summary.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Summary.Failed > 0
}

func (r *BatchResult) add(res types.FileResult) {
	r.Results = append(r.Results, res)
	switch res.Status {
	case types.StatusConverted:
		r.Summary.Converted++
		if res.DeleteFailed() {
			r.Summary.DeleteFailed++
		}
	case types.StatusSkipped:
		r.Summary.Skipped++
	case types.StatusFailed:
		r.Summary.Failed++
	}
}

// BatchConverter converts the images under one root directory.
type BatchConverter struct {
	cfg     types.ConversionConfig
	raster  rasterize.Rasterizer
	journal Journal
	w       io.Writer
	now     func() time.Time
	remove  func(string) error
}

// New builds a converter. raster may be nil, in which case SVG sources are
// skipped; journal may be nil to disable the journal. Status lines go to w.
func New(cfg types.ConversionConfig, raster rasterize.Rasterizer, journal Journal, w io.Writer) *BatchConverter {
	return &BatchConverter{
		cfg:     cfg.Normalize(),
		raster:  raster,
		journal: journal,
		w:       w,
		now:     time.Now,
		remove:  os.Remove,
	}
}

// Traverse converts every eligible file under the configured root. A
// missing root is logged and yields an empty result. Cancelling ctx stops
// the run between files.
func (b *BatchConverter) Traverse(ctx context.Context) BatchResult {
	root := b.cfg.RootDir
	result := BatchResult{Summary: types.RunSummary{Root: root, StartedAt: b.now()}}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(b.w, "Directory not found: %s\n", root)
		result.Summary.FinishedAt = b.now()
		return result
	}

	files := b.discover(root)
	runID := b.beginRun(ctx, result.Summary)

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			fmt.Fprintf(b.w, "Interrupted: %d file(s) left unprocessed\n", len(files)-i)
			break
		}
		res := b.Convert(ctx, path)
		result.add(res)
		b.recordFile(ctx, runID, res)
	}

	result.Summary.FinishedAt = b.now()
	s := result.Summary
	fmt.Fprintf(b.w, "\nBatch summary: %d converted, %d skipped, %d failed, %d delete-failed (total: %d)\n",
		s.Converted, s.Skipped, s.Failed, s.DeleteFailed, result.Total())

	b.finishRun(ctx, runID, s)
	if b.cfg.ReportPath != "" {
		if err := WriteReport(b.cfg.ReportPath, result); err != nil {
			fmt.Fprintf(b.w, "Failed to write report %s: %v\n", b.cfg.ReportPath, err)
		}
	}
	return result
}

// discover returns the sorted regular files under root that are not .jpg.
// Unreadable subtrees are logged and skipped.
func (b *BatchConverter) discover(root string) []string {
	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(b.w, "Cannot read %s: %v\n", path, err)
			return nil
		}
		if !d.Type().IsRegular() || IsJPG(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	sort.Strings(files)
	return files
}

// Convert turns one source file into a sibling .jpg and deletes the source.
// It never returns an error: the outcome, including any failure, is in the
// returned FileResult and has already been logged.
func (b *BatchConverter) Convert(ctx context.Context, src string) (res types.FileResult) {
	res = types.FileResult{Source: src, Stage: types.StageDiscovered}

	defer func() {
		if p := recover(); p != nil {
			res = b.fail(res, stageErr(kindForStage(res.Stage), fmt.Errorf("panic: %v", p)))
		}
	}()

	res.Stage = types.StageDecoding
	img, err := b.decode(ctx, src)
	if err != nil {
		if errors.Is(err, errNoRasterizer) {
			fmt.Fprintf(b.w, "Skipping SVG (no rasterizer available): %s\n", src)
			res.Status = types.StatusSkipped
			res.Kind = types.KindConfiguration
			res.Err = err
			return res
		}
		return b.fail(res, err)
	}

	res.Stage = types.StageFlattening
	flat := Flatten(img, b.cfg.Background)

	res.Stage = types.StageEncoding
	dst := OutputPath(src)
	if err := encodeJPEG(dst, flat, b.cfg.Quality); err != nil {
		return b.fail(res, stageErr(types.KindEncode, err))
	}
	res.Output = dst
	fmt.Fprintf(b.w, "Converted: %s -> %s\n", src, dst)

	res.Stage = types.StageDeleting
	res.Status = types.StatusConverted
	if err := b.remove(src); err != nil {
		fmt.Fprintf(b.w, "Failed to delete original %s: %v\n", src, err)
		res.Kind = types.KindDelete
		res.Err = stageErr(types.KindDelete, err)
		return res
	}
	fmt.Fprintf(b.w, "Deleted original: %s\n", src)
	res.Stage = types.StageDone
	return res
}

// decode loads src as a raster image, rasterizing SVG sources first.
func (b *BatchConverter) decode(ctx context.Context, src string) (image.Image, error) {
	if !isSVG(src) {
		img, _, err := decodeFile(src)
		if err != nil {
			return nil, stageErr(types.KindDecode, err)
		}
		return img, nil
	}

	if b.raster == nil {
		return nil, errNoRasterizer
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, stageErr(types.KindDecode, err)
	}
	png, err := b.raster.Rasterize(ctx, data)
	if err != nil {
		fmt.Fprintf(b.w, "Failed to rasterize SVG %s: %v\n", src, err)
		return nil, stageErr(types.KindDecode, fmt.Errorf("rasterizing svg: %w", err))
	}
	img, _, err := decodeBytes(png)
	if err != nil {
		return nil, stageErr(types.KindDecode, fmt.Errorf("decoding rasterized svg: %w", err))
	}
	return img, nil
}

func (b *BatchConverter) fail(res types.FileResult, err error) types.FileResult {
	fmt.Fprintf(b.w, "Failed to convert %s: %v\n", res.Source, err)
	res.Status = types.StatusFailed
	res.Kind = KindOf(err)
	res.Err = err
	return res
}

func (b *BatchConverter) beginRun(ctx context.Context, s types.RunSummary) int64 {
	if b.journal == nil {
		return 0
	}
	id, err := b.journal.BeginRun(ctx, s.Root, s.StartedAt)
	if err != nil {
		fmt.Fprintf(b.w, "Journal unavailable for this run: %v\n", err)
		b.journal = nil
		return 0
	}
	return id
}

func (b *BatchConverter) recordFile(ctx context.Context, runID int64, res types.FileResult) {
	if b.journal == nil {
		return
	}
	if err := b.journal.RecordFile(context.WithoutCancel(ctx), runID, res); err != nil {
		fmt.Fprintf(b.w, "Journal write failed for %s: %v\n", res.Source, err)
	}
}

func (b *BatchConverter) finishRun(ctx context.Context, runID int64, s types.RunSummary) {
	if b.journal == nil {
		return
	}
	if err := b.journal.FinishRun(context.WithoutCancel(ctx), runID, s); err != nil {
		fmt.Fprintf(b.w, "Journal write failed for run %d: %v\n", runID, err)
	}
}
