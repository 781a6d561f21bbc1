// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar retrieves a researcher's publication list.
//
// Client scrapes the public Google Scholar profile pages. FileFetcher reads a
// previously saved list, and StaticFetcher serves a fixed list for tests.
package scholar

import (
	"context"
	"strings"

	"github.com/pdiddy/scholar-page/pkg/types"
)

// Fetcher returns the publications listed under a profile.
type Fetcher interface {
	Fetch(ctx context.Context, cfg types.FetchConfig) (*Profile, error)
}

// Profile is a researcher profile and its publications in source order.
type Profile struct {
	ID           string                 `json:"id" yaml:"id"`
	Name         string                 `json:"name,omitempty" yaml:"name,omitempty"`
	Affiliation  string                 `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`
	Publications []types.RawPublication `json:"publications" yaml:"publications"`
}

// assignIDs fills missing publication IDs with the title/year fingerprint.
func assignIDs(pubs []types.RawPublication) {
	for i := range pubs {
		if strings.TrimSpace(pubs[i].ID) == "" {
			pubs[i].ID = types.Fingerprint(pubs[i].Title, pubs[i].Year)
		}
	}
}

// StaticFetcher returns a fixed profile. It is used in tests and for dry runs.
type StaticFetcher struct {
	Profile Profile
	Err     error

	// Calls counts Fetch invocations.
	Calls int
}

// Fetch returns a copy of the configured profile, or the configured error.
func (f *StaticFetcher) Fetch(ctx context.Context, cfg types.FetchConfig) (*Profile, error) {
	f.Calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.Err != nil {
		return nil, f.Err
	}
	p := f.Profile
	if p.ID == "" {
		p.ID = cfg.ProfileID
	}
	p.Publications = append([]types.RawPublication(nil), f.Profile.Publications...)
	assignIDs(p.Publications)
	return &p, nil
}
