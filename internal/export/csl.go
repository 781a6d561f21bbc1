// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes the page's publications to machine-readable
// formats: a CSL-YAML bibliography and a SQLite table.
package export

import (
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-page/internal/sections"
	"github.com/pdiddy/scholar-page/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-YAML schema so that
// output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Volume         string    `yaml:"volume,omitempty"`
	Issue          string    `yaml:"issue,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	Publisher      string    `yaml:"publisher,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
	Note           string    `yaml:"note,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes the publications of secs, in page order, as a CSL-YAML
// list to w.
func FormatCSL(secs []types.Section, w io.Writer) error {
	items := make([]CSLItem, 0, sections.Total(secs))
	for _, s := range secs {
		for _, p := range s.Publications {
			items = append(items, toCSLItem(p))
		}
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// cslType maps a section category to a CSL item type.
func cslType(c types.Category) string {
	if c == types.CategoryConference {
		return "paper-conference"
	}
	return "article-journal"
}

func toCSLItem(p types.EnrichedPublication) CSLItem {
	item := CSLItem{
		ID:             p.CitationKey,
		Type:           cslType(p.Category),
		Title:          p.Title,
		ContainerTitle: p.Venue,
		Volume:         p.Volume,
		Issue:          p.Number,
		Page:           p.Pages,
		Publisher:      p.Publisher,
		Abstract:       p.Abstract,
		URL:            p.URL,
	}
	if item.ID == "" {
		item.ID = p.ID
	}
	for _, a := range p.Authors {
		if n := parseAuthorName(a); n != (CSLName{}) {
			item.Author = append(item.Author, n)
		}
	}
	if p.Year > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{p.Year}}}
	}
	if len(p.Badges) > 0 {
		labels := make([]string, len(p.Badges))
		for i, b := range p.Badges {
			labels[i] = b.Label
		}
		item.Note = strings.Join(labels, "; ")
	}
	return item
}

// parseAuthorName splits a full name string into CSL family/given parts.
// "Family, Given" is split on the comma; otherwise the last token is the
// family name. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	if family, given, ok := strings.Cut(name, ","); ok {
		family, given = strings.TrimSpace(family), strings.TrimSpace(given)
		if family != "" && given != "" {
			return CSLName{Family: family, Given: given}
		}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  strings.TrimSpace(name[:idx]),
		Family: name[idx+1:],
	}
}
