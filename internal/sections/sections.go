// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sections groups enriched publications by category and orders them
// for display.
package sections

import (
	"sort"

	"github.com/pdiddy/scholar-page/pkg/types"
)

// Build returns one section per category in page order (journal, then
// conference). Every input publication lands in exactly one section. Each
// section is fully re-sorted, so the result does not depend on input order.
func Build(pubs []types.EnrichedPublication) []types.Section {
	byCategory := make(map[types.Category][]types.EnrichedPublication, len(types.Categories))
	for _, p := range pubs {
		c := p.Category
		if c != types.CategoryConference {
			c = types.CategoryJournal
		}
		byCategory[c] = append(byCategory[c], p)
	}

	out := make([]types.Section, 0, len(types.Categories))
	for _, c := range types.Categories {
		list := byCategory[c]
		Sort(list)
		out = append(out, types.Section{Category: c, Publications: list})
	}
	return out
}

// Sort orders publications in place: year descending (unknown years last),
// then citations descending, then title ascending, then ID ascending.
func Sort(pubs []types.EnrichedPublication) {
	sort.SliceStable(pubs, func(i, j int) bool {
		return Less(pubs[i].RawPublication, pubs[j].RawPublication)
	})
}

// Less reports whether a is listed before b.
func Less(a, b types.RawPublication) bool {
	if a.Year != b.Year {
		if a.Year == 0 || b.Year == 0 {
			return b.Year == 0
		}
		return a.Year > b.Year
	}
	if a.Citations != b.Citations {
		return a.Citations > b.Citations
	}
	if a.Title != b.Title {
		return a.Title < b.Title
	}
	return a.ID < b.ID
}

// Total returns the number of publications across sections.
func Total(secs []types.Section) int {
	n := 0
	for _, s := range secs {
		n += s.Len()
	}
	return n
}
