// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns a publication category from its venue text.
package classify

import (
	"strings"

	"github.com/pdiddy/scholar-page/pkg/types"
)

// ConferenceKeywords are matched case-insensitively as substrings of the venue.
var ConferenceKeywords = []string{
	"conference",
	"proceedings",
	"proc.",
	"symposium",
	"workshop",
	"congress",
	"colloquium",
}

// Venue returns CategoryConference when the venue contains a conference
// keyword and CategoryJournal otherwise, including for an empty venue.
func Venue(venue string) types.Category {
	v := strings.ToLower(venue)
	if strings.TrimSpace(v) == "" {
		return types.CategoryJournal
	}
	for _, kw := range ConferenceKeywords {
		if strings.Contains(v, kw) {
			return types.CategoryConference
		}
	}
	return types.CategoryJournal
}
