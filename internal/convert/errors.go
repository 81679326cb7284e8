// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"

	"github.com/pdiddy/jpegify/pkg/types"
)

// errNoRasterizer marks an SVG source met while no rasterizer is available.
var errNoRasterizer = errors.New("no rasterizer available")

// StageError is a per-file failure tagged with its kind.
type StageError struct {
	Kind types.ErrorKind
	Err  error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(kind types.ErrorKind, err error) *StageError {
	return &StageError{Kind: kind, Err: err}
}

// KindOf returns the ErrorKind carried by err, or KindNone.
func KindOf(err error) types.ErrorKind {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind
	}
	return types.KindNone
}

// kindForStage maps the stage a file was in to the failure kind used when
// a codec panics.
func kindForStage(s types.Stage) types.ErrorKind {
	switch s {
	case types.StageEncoding:
		return types.KindEncode
	case types.StageDeleting:
		return types.KindDelete
	default:
		return types.KindDecode
	}
}
