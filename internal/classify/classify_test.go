// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"testing"

	"github.com/pdiddy/scholar-page/pkg/types"
)

func TestVenue(t *testing.T) {
	tests := []struct {
		name  string
		venue string
		want  types.Category
	}{
		{"conference keyword", "Proc. of X Conference", types.CategoryConference},
		{"proceedings upper case", "PROCEEDINGS OF THE VLDB ENDOWMENT", types.CategoryConference},
		{"symposium", "IEEE Symposium on Security and Privacy", types.CategoryConference},
		{"workshop", "NeurIPS Workshop on Causality", types.CategoryConference},
		{"abbreviated proc", "Proc. ACM Program. Lang.", types.CategoryConference},
		{"journal", "Journal of Y", types.CategoryJournal},
		{"plain journal title", "Nature", types.CategoryJournal},
		{"preprint", "arXiv preprint arXiv:2301.07041", types.CategoryJournal},
		{"empty", "", types.CategoryJournal},
		{"whitespace", "   ", types.CategoryJournal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Venue(tt.venue); got != tt.want {
				t.Errorf("Venue(%q) = %q, want %q", tt.venue, got, tt.want)
			}
		})
	}
}

func TestVenueEveryKeyword(t *testing.T) {
	for _, kw := range ConferenceKeywords {
		for _, venue := range []string{kw, "The " + kw + " on Things", "x" + kw + "x"} {
			if got := Venue(venue); got != types.CategoryConference {
				t.Errorf("Venue(%q) = %q, want conference", venue, got)
			}
		}
	}
}
