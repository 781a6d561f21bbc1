// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"log/slog"
	"strings"

	"github.com/pdiddy/scholar-page/internal/awards"
	"github.com/pdiddy/scholar-page/internal/bibtex"
	"github.com/pdiddy/scholar-page/internal/classify"
	"github.com/pdiddy/scholar-page/internal/highlight"
	"github.com/pdiddy/scholar-page/pkg/types"
)

// EnrichStats counts what Enrich filtered or could not resolve.
type EnrichStats struct {
	Untitled      int // dropped: no title
	Duplicates    int // dropped: same fingerprint or ID as an earlier entry
	Undated       int // kept: no year
	AuthorMissing int // kept: researcher name not found among authors
	Badged        int // publications with at least one badge
}

// Filter drops publications without a title and later duplicates of the
// same title/year fingerprint or ID, logging each at warn level.
func Filter(pubs []types.RawPublication, logger *slog.Logger) ([]types.RawPublication, EnrichStats) {
	var stats EnrichStats
	seenFP := make(map[string]bool, len(pubs))
	seenID := make(map[string]bool, len(pubs))
	out := make([]types.RawPublication, 0, len(pubs))
	for i, p := range pubs {
		if strings.TrimSpace(p.Title) == "" {
			logger.Warn("publication has no title; skipped", "index", i, "id", p.ID)
			stats.Untitled++
			continue
		}
		if p.ID == "" {
			p.ID = types.Fingerprint(p.Title, p.Year)
		}
		fp := types.Fingerprint(p.Title, p.Year)
		if seenFP[fp] || seenID[p.ID] {
			logger.Warn("duplicate publication dropped", "title", p.Title, "year", p.Year)
			stats.Duplicates++
			continue
		}
		seenFP[fp] = true
		seenID[p.ID] = true
		out = append(out, p)
	}
	return out, stats
}

// Enrich classifies, highlights, keys and badges each publication. pubs
// must already be filtered; the result has the same order.
func Enrich(pubs []types.RawPublication, h *highlight.Highlighter, badges *awards.Config, logger *slog.Logger) ([]types.EnrichedPublication, EnrichStats) {
	var stats EnrichStats
	keys := bibtex.AssignKeys(pubs)
	matched := badges.Match(pubs)

	out := make([]types.EnrichedPublication, 0, len(pubs))
	for _, p := range pubs {
		category := classify.Venue(p.Venue)
		authors, ok := h.HighlightNames(p.Authors)
		if !ok {
			logger.Warn("researcher name not found in author list", "title", p.Title)
			stats.AuthorMissing++
		}
		if p.Year == 0 {
			logger.Warn("publication has no year", "title", p.Title)
			stats.Undated++
		}
		b := matched[p.ID]
		if len(b) > 0 {
			stats.Badged++
		}
		out = append(out, types.EnrichedPublication{
			RawPublication:     p,
			Category:           category,
			HighlightedAuthors: authors,
			AuthorMatched:      ok,
			CitationKey:        keys[p.ID],
			BibTeX:             bibtex.Format(p, category, keys[p.ID]),
			Badges:             b,
		})
	}
	return out, stats
}
