// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"errors"
)

// Stage names the part of a run that failed.
type Stage string

const (
	StageConfig Stage = "config"
	StageFetch  Stage = "fetch"
	StageRender Stage = "render"
	StageWrite  Stage = "write"
	StageExport Stage = "export"
)

// ErrConfig marks invalid inputs: missing identifiers, unreadable or
// malformed template and badge files, bad proxy settings.
var ErrConfig = errors.New("invalid configuration")

// StageError attributes an error to a pipeline stage.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return string(e.Stage) + ": " + e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }

// StageOf returns the stage err is attributed to, or "" when it carries none.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

func stageErr(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
