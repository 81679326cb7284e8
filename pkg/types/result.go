// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// FileStatus is the terminal state of one source file.
type FileStatus string

const (
	StatusConverted FileStatus = "converted"
	StatusSkipped   FileStatus = "skipped"
	StatusFailed    FileStatus = "failed"
)

// ErrorKind classifies why a file was not cleanly converted.
type ErrorKind string

const (
	KindNone          ErrorKind = ""
	KindConfiguration ErrorKind = "configuration"
	KindDecode        ErrorKind = "decode"
	KindEncode        ErrorKind = "encode"
	KindDelete        ErrorKind = "delete"
)

// Stage is the last pipeline step a file reached.
type Stage string

const (
	StageDiscovered Stage = "discovered"
	StageDecoding   Stage = "decoding"
	StageFlattening Stage = "flattening"
	StageEncoding   Stage = "encoding"
	StageDeleting   Stage = "deleting"
	StageDone       Stage = "done"
)

// FileResult is the outcome of converting one source file.
type FileResult struct {
	// Source is the path of the original file.
	Source string `json:"source" yaml:"source"`

	// Output is the sibling .jpg path, set once encoding succeeded.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	Status FileStatus `json:"status" yaml:"status"`
	Kind   ErrorKind  `json:"kind,omitempty" yaml:"kind,omitempty"`
	Stage  Stage      `json:"stage" yaml:"stage"`

	// Err is the failure, or the delete error on a converted file.
	Err error `json:"-" yaml:"-"`
}

// DeleteFailed reports whether the JPEG was written but the original remains.
func (r FileResult) DeleteFailed() bool {
	return r.Status == StatusConverted && r.Kind == KindDelete
}

// ErrorMessage returns Err as text, or "" when there is none.
func (r FileResult) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// RunSummary describes a finished conversion run.
type RunSummary struct {
	Root         string    `json:"root" yaml:"root"`
	StartedAt    time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt   time.Time `json:"finished_at" yaml:"finished_at"`
	Converted    int       `json:"converted" yaml:"converted"`
	Skipped      int       `json:"skipped" yaml:"skipped"`
	Failed       int       `json:"failed" yaml:"failed"`
	DeleteFailed int       `json:"delete_failed" yaml:"delete_failed"`
}
