// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the scholar-page pipeline:
// raw publications as fetched from a profile, their enriched render-ready form,
// and the sections the page is built from.
package types

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"strings"
	"unicode"
)

// RawPublication is one publication as returned by a fetcher. It is treated
// as immutable once fetched.
type RawPublication struct {
	// ID is the title fingerprint (see Fingerprint). Fetchers fill it in.
	ID string `json:"id" yaml:"id"`

	// Title is the publication title as listed on the profile.
	Title string `json:"title" yaml:"title"`

	// Authors lists display names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Venue is the journal, proceedings, or other outlet text.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Year is the publication year, 0 when unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Citations is the citation count reported by the source.
	Citations int `json:"citations" yaml:"citations"`

	// Abstract is the description text when the source provides one.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// URL links to the publication page at the source.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Volume, Number, Pages and Publisher are only known after a detail fill.
	Volume    string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Number    string `json:"number,omitempty" yaml:"number,omitempty"`
	Pages     string `json:"pages,omitempty" yaml:"pages,omitempty"`
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
}

// Category is the section a publication is listed under.
type Category string

const (
	CategoryJournal    Category = "journal"
	CategoryConference Category = "conference"
)

// Categories lists categories in page order.
var Categories = []Category{CategoryJournal, CategoryConference}

// Heading returns the section heading shown on the page.
func (c Category) Heading() string {
	if c == CategoryConference {
		return "Peer Reviewed Conference Publications"
	}
	return "Peer Reviewed Journal Publications"
}

// Label returns the short tag label for the category.
func (c Category) Label() string {
	if c == CategoryConference {
		return "Conference"
	}
	return "Journal"
}

// Badge is an award or recognition shown next to a publication.
type Badge struct {
	Label string `json:"label" yaml:"label"`
	// Icon is a Font Awesome class such as "fa-trophy".
	Icon string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// DefaultBadgeIcon is used when a badge has no icon configured.
const DefaultBadgeIcon = "fa-award"

// IconClass returns the configured icon or DefaultBadgeIcon.
func (b Badge) IconClass() string {
	if b.Icon == "" {
		return DefaultBadgeIcon
	}
	return b.Icon
}

// EnrichedPublication is a RawPublication plus everything derived from it for
// rendering. It is built once per raw publication and not mutated afterwards.
type EnrichedPublication struct {
	RawPublication `yaml:",inline"`

	Category Category `json:"category" yaml:"category"`

	// HighlightedAuthors is HTML: the author list with the researcher's name
	// wrapped in emphasis markup.
	HighlightedAuthors string `json:"highlighted_authors" yaml:"highlighted_authors"`

	// AuthorMatched reports whether the researcher's name was found.
	AuthorMatched bool `json:"author_matched" yaml:"author_matched"`

	CitationKey string  `json:"citation_key" yaml:"citation_key"`
	BibTeX      string  `json:"bibtex" yaml:"bibtex"`
	Badges      []Badge `json:"badges,omitempty" yaml:"badges,omitempty"`
}

// Section is one category's publications in display order.
type Section struct {
	Category     Category
	Publications []EnrichedPublication
}

// Len returns the number of publications in the section.
func (s Section) Len() int { return len(s.Publications) }

// NormalizeTitle lower-cases a title and drops everything that is not a letter
// or digit, so "Foo, Bar!!" and "foo bar" normalize to the same string.
func NormalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Fingerprint returns the stable identifier for a publication: the first 16
// hex characters of sha1(normalized title + ":" + year).
func Fingerprint(title string, year int) string {
	sum := sha1.Sum([]byte(NormalizeTitle(title) + ":" + strconv.Itoa(year)))
	return hex.EncodeToString(sum[:])[:16]
}
