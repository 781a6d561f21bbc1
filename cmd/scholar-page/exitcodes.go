// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"

	"github.com/pdiddy/scholar-page/internal/pipeline"
)

// Exit codes.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing id or name, bad template or badge file)
	ExitFetchError  = 3 // Profile could not be fetched (network, rate limit, captcha)
	ExitOutputError = 4 // Page or export could not be rendered or written
)

// exitCode maps an error to the process exit status by the stage it failed in.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	switch pipeline.StageOf(err) {
	case pipeline.StageConfig:
		return ExitConfigError
	case pipeline.StageFetch:
		return ExitFetchError
	case pipeline.StageRender, pipeline.StageWrite, pipeline.StageExport:
		return ExitOutputError
	}
	if errors.Is(err, pipeline.ErrConfig) {
		return ExitConfigError
	}
	return ExitError
}
