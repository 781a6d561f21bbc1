// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by FetchError.
var (
	// ErrNoProfileID indicates an empty profile identifier.
	ErrNoProfileID = errors.New("no profile id")

	// ErrNotFound indicates the profile does not exist.
	ErrNotFound = errors.New("profile not found")

	// ErrRateLimited indicates the source answered HTTP 429.
	ErrRateLimited = errors.New("rate limited by source")

	// ErrBlocked indicates a captcha or an access-denied page.
	ErrBlocked = errors.New("blocked by source")

	// ErrNetwork indicates the request did not complete.
	ErrNetwork = errors.New("network error")

	// ErrInvalidResponse indicates a page that could not be parsed.
	ErrInvalidResponse = errors.New("unrecognized response")
)

// FetchError reports a failure to retrieve publications for a profile.
type FetchError struct {
	ProfileID  string
	URL        string // request URL or input file, when known
	StatusCode int    // HTTP status, when one was received
	Err        error
}

func (e *FetchError) Error() string {
	msg := "fetching profile"
	if e.ProfileID != "" {
		msg += " " + e.ProfileID
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.URL != "" {
		msg += " from " + e.URL
	}
	return msg + ": " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsBlocked reports whether err means the source refused to serve pages,
// either by rate limiting or with a captcha. Retrying through a proxy pool
// is the usual remedy.
func IsBlocked(err error) bool {
	return errors.Is(err, ErrBlocked) || errors.Is(err, ErrRateLimited)
}
