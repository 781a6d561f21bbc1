// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/scholar-page/pkg/types"
)

func TestHighlight(t *testing.T) {
	h := New(types.HighlightConfig{Name: "Yuan Tian"})

	tests := []struct {
		name        string
		authors     string
		want        string
		wantMatched bool
	}{
		{
			"exact name in the middle",
			"Alice Smith, Yuan Tian and Bob Lee",
			"Alice Smith, <b>Yuan Tian</b> and Bob Lee",
			true,
		},
		{
			"upper case",
			"YUAN TIAN and Bob Lee",
			"<b>YUAN TIAN</b> and Bob Lee",
			true,
		},
		{
			"lower case last",
			"Alice Smith and yuan tian",
			"Alice Smith and <b>yuan tian</b>",
			true,
		},
		{
			"diacritics",
			"Yuán Tiān, Bob Lee",
			"<b>Yuán Tiān</b>, Bob Lee",
			true,
		},
		{
			"bibtex style reversed order",
			"Smith, Alice and Tian, Yuan",
			"Smith, Alice and <b>Tian, Yuan</b>",
			true,
		},
		{
			"irregular whitespace kept",
			"Alice Smith ,  Yuan  Tian",
			"Alice Smith ,  <b>Yuan  Tian</b>",
			true,
		},
		{
			"shared surname only",
			"Wei Tian, Bob Lee",
			"Wei Tian, Bob Lee",
			false,
		},
		{
			"surname alone",
			"Tian and Bob Lee",
			"Tian and Bob Lee",
			false,
		},
		{
			"initials are not a full name",
			"Y Tian, Bob Lee",
			"Y Tian, Bob Lee",
			false,
		},
		{
			"name inside a longer name",
			"Yuan Tianyu, Bob Lee",
			"Yuan Tianyu, Bob Lee",
			false,
		},
		{
			"empty",
			"",
			"",
			false,
		},
		{
			"html escaped",
			"Tom & Jerry, Yuan Tian",
			"Tom &amp; Jerry, <b>Yuan Tian</b>",
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, matched := h.Highlight(tt.authors)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantMatched, matched)
		})
	}
}

func TestHighlightLeavesOtherNamesUnchanged(t *testing.T) {
	h := New(types.HighlightConfig{Name: "Ada Lovelace"})
	others := []string{"Charles Babbage", "Mary Somerville", "Augustus De Morgan"}

	for pos := 0; pos <= len(others); pos++ {
		for _, variant := range []string{"Ada Lovelace", "ADA LOVELACE", "ada lovelace", "aDa LoVeLaCe"} {
			names := append([]string{}, others[:pos]...)
			names = append(names, variant)
			names = append(names, others[pos:]...)
			list := JoinAuthors(names)

			got, matched := h.Highlight(list)
			assert.True(t, matched, list)
			assert.Equal(t, 1, strings.Count(got, "<b>"+variant+"</b>"), got)
			assert.Equal(t, list, strings.Replace(got, "<b>"+variant+"</b>", variant, 1),
				"removing the markup must give back the input byte for byte")
		}
	}
}

func TestHighlightAliases(t *testing.T) {
	h := New(types.HighlightConfig{Name: "Jane Doe", Aliases: []string{"Jane Smith"}})

	got, matched := h.Highlight("Jane Smith, Jane Doe and John Roe")
	assert.True(t, matched)
	assert.Equal(t, "<b>Jane Smith</b>, <b>Jane Doe</b> and John Roe", got)
}

func TestHighlightMatchInitials(t *testing.T) {
	h := New(types.HighlightConfig{Name: "Yuan Tian", MatchInitials: true})

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"initial first", "Y Tian", true},
		{"initial with dot", "Y. Tian", true},
		{"surname first", "Tian Y", true},
		{"full name still matches", "Yuan Tian", true},
		{"different initial", "W Tian", false},
		{"different given name", "Wei Tian", false},
		{"different surname", "Y Tan", false},
		{"surname only", "Tian", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.Matches(tt.in))
		})
	}

	multi := New(types.HighlightConfig{Name: "Yuan Tao Tian", MatchInitials: true})
	assert.True(t, multi.Matches("YT Tian"))
	assert.True(t, multi.Matches("Y T Tian"))
	assert.False(t, multi.Matches("TY Tian"))
}

func TestHighlightNoNames(t *testing.T) {
	h := New(types.HighlightConfig{})
	got, matched := h.Highlight("Alice Smith and Bob Lee")
	assert.False(t, matched)
	assert.Equal(t, "Alice Smith and Bob Lee", got)
}

func TestJoinAuthors(t *testing.T) {
	assert.Equal(t, "", JoinAuthors(nil))
	assert.Equal(t, "A", JoinAuthors([]string{"A"}))
	assert.Equal(t, "A and B", JoinAuthors([]string{"A", " B "}))
	assert.Equal(t, "A, B and C", JoinAuthors([]string{"A", "", "B", "C"}))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"tian", "yuan"}, Tokens("Tian, Yuan"))
	assert.Equal(t, []string{"jose", "garcia", "marquez"}, Tokens("José García-Márquez"))
	assert.Empty(t, Tokens(" ,. "))
}

func TestHighlightNames(t *testing.T) {
	h := New(types.HighlightConfig{Name: "Yuan Tian"})

	tests := []struct {
		name        string
		authors     []string
		want        string
		wantMatched bool
	}{
		{"reversed name alone", []string{"Tian, Yuan"}, "<b>Tian, Yuan</b>", true},
		{"reversed name with others", []string{"Tian, Yuan", "Bob Lee"}, "<b>Tian, Yuan</b> and Bob Lee", true},
		{"three authors", []string{"Alice Smith", "Yuan Tian", "Bob Lee"}, "Alice Smith, <b>Yuan Tian</b> and Bob Lee", true},
		{"apostrophe kept", []string{"Conan O'Brien", "Yuan Tian"}, "Conan O'Brien and <b>Yuan Tian</b>", true},
		{"markup escaped", []string{"Tom & Jerry <3", "Yuan Tian"}, "Tom &amp; Jerry &lt;3 and <b>Yuan Tian</b>", true},
		{"blank names dropped", []string{" ", "Yuan Tian", ""}, "<b>Yuan Tian</b>", true},
		{"abbreviated list", []string{"Y Tian", "D Lo"}, "<b>Y Tian</b> and D Lo", true},
		{"abbreviated list with other initial", []string{"W Tian", "D Lo"}, "W Tian and D Lo", false},
		{"initials among full names", []string{"Y Tian", "David Lo"}, "Y Tian and David Lo", false},
		{"no match", []string{"Wei Tian"}, "Wei Tian", false},
		{"empty", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, matched := h.HighlightNames(tt.authors)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantMatched, matched)
		})
	}
}

func TestHighlightNamesWithConfiguredInitials(t *testing.T) {
	h := New(types.HighlightConfig{Name: "Yuan Tian", MatchInitials: true})

	got, matched := h.HighlightNames([]string{"Y. Tian", "David Lo"})
	assert.True(t, matched)
	assert.Equal(t, "<b>Y. Tian</b> and David Lo", got)
}

func TestAbbreviated(t *testing.T) {
	assert.True(t, Abbreviated([]string{"Y Tian", "DA Wagner", "Plato"}))
	assert.True(t, Abbreviated([]string{"Y.T. Tian"}))
	assert.False(t, Abbreviated([]string{"Y Tian", "David Lo"}))
	assert.False(t, Abbreviated([]string{"Tian, Y"}))
	assert.False(t, Abbreviated([]string{"Plato"}))
	assert.False(t, Abbreviated(nil))
}

func TestHighlightKeepsApostrophes(t *testing.T) {
	h := New(types.HighlightConfig{Name: "Yuan Tian"})

	got, matched := h.Highlight("Conan O'Brien, Yuan Tian")
	assert.True(t, matched)
	assert.Equal(t, "Conan O'Brien, <b>Yuan Tian</b>", got)
}
