// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns sections into the publications page.
//
// Page templates are plain text with two placeholders: {content}, which is
// required, and {name}. Substitution is a single pass; the substituted text
// is never rescanned and any other {placeholder} is left as written.
package render

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html"
	"html/template"
	"os"
	"strconv"
	"strings"

	"github.com/pdiddy/scholar-page/pkg/types"
)

const (
	ContentPlaceholder = "{content}"
	NamePlaceholder    = "{name}"

	// EmptyContent replaces {content} when there are no publications.
	EmptyContent = "<p>No publications available.</p>"
)

// ErrMissingPlaceholder is returned for templates without {content}.
var ErrMissingPlaceholder = errors.New("template is missing the " + ContentPlaceholder + " placeholder")

// DefaultTemplate is the built-in page. It references css/site.css,
// js/site.js, navbar.html and footer.html next to the output file.
//
//go:embed default.html
var DefaultTemplate string

// entryTemplates is parsed at init time to fail fast on template errors.
var entryTemplates = template.Must(template.New("sections").Parse(sectionsTemplate))

const sectionsTemplate = `{{define "entry"}}    <li id="pub-{{.ID}}" data-pub-id="{{.ID}}">
       <span class="pub-tag {{.Category}}"><i class="fas {{.CategoryIcon}}"></i> {{.CategoryLabel}}</span>{{range .Badges}} <span class="pub-tag award"><i class="fas {{.IconClass}}"></i> {{.Label}}</span>{{end}}
       {{.Authors}}. <i class="pub-title">{{.Title}}.</i>
       {{if .Venue}}{{if .URL}}<a href="{{.URL}}" target="_blank">{{.Venue}}</a>{{else}}{{.Venue}}{{end}}{{if .Year}}, {{end}}{{end}}{{if .Year}}{{.Year}}.{{else if .Venue}}.{{end}}
       [<button data-copy="bib-{{.ID}}" class="copy-btn">BibTeX</button>]
       <pre id="bib-{{.ID}}" class="bibtex-source">{{.BibTeX}}</pre>
    </li>
{{end}}{{range .}}<h3 class="push-down-4"><span>{{.Heading}}</span></h3>
<ol>
{{range .Entries}}{{template "entry" .}}{{end}}</ol>
{{end}}`

type sectionView struct {
	Heading string
	Entries []entryView
}

type entryView struct {
	ID            string
	Category      string
	CategoryIcon  string
	CategoryLabel string
	Badges        []types.Badge
	Authors       template.HTML
	Title         string
	Venue         string
	URL           string
	Year          string
	BibTeX        string
}

// Template is a page template that has been checked for {content}.
type Template struct {
	text   string
	source string
}

// Source returns where the template came from ("default" or a file path).
func (t *Template) Source() string { return t.source }

// LoadTemplate reads a custom template from path, or returns the default
// template when path is empty.
func LoadTemplate(path string) (*Template, error) {
	if path == "" {
		return ParseTemplate(DefaultTemplate, "default")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}
	return ParseTemplate(string(data), path)
}

// ParseTemplate validates template text.
func ParseTemplate(text, source string) (*Template, error) {
	if !strings.Contains(text, ContentPlaceholder) {
		return nil, fmt.Errorf("%s: %w", source, ErrMissingPlaceholder)
	}
	return &Template{text: text, source: source}, nil
}

// Render builds the section HTML and substitutes it and the researcher name
// into the template.
func (t *Template) Render(secs []types.Section, name string) (string, error) {
	content, err := Content(secs)
	if err != nil {
		return "", err
	}
	r := strings.NewReplacer(
		ContentPlaceholder, content,
		NamePlaceholder, html.EscapeString(name),
	)
	return r.Replace(t.text), nil
}

// Content renders the non-empty sections as headed ordered lists, or
// EmptyContent when every section is empty.
func Content(secs []types.Section) (string, error) {
	var views []sectionView
	for _, s := range secs {
		if s.Len() == 0 {
			continue
		}
		v := sectionView{Heading: s.Category.Heading()}
		for _, p := range s.Publications {
			v.Entries = append(v.Entries, newEntryView(p))
		}
		views = append(views, v)
	}
	if len(views) == 0 {
		return EmptyContent, nil
	}

	var buf bytes.Buffer
	if err := entryTemplates.Execute(&buf, views); err != nil {
		return "", fmt.Errorf("rendering sections: %w", err)
	}
	return buf.String(), nil
}

func newEntryView(p types.EnrichedPublication) entryView {
	icon := "fa-book-open"
	if p.Category == types.CategoryConference {
		icon = "fa-users"
	}
	authors := p.HighlightedAuthors
	if strings.TrimSpace(authors) == "" {
		authors = "No Author"
	}
	year := ""
	if p.Year > 0 {
		year = strconv.Itoa(p.Year)
	}
	return entryView{
		ID:            p.ID,
		Category:      string(p.Category),
		CategoryIcon:  icon,
		CategoryLabel: p.Category.Label(),
		Badges:        p.Badges,
		// Highlighted authors are escaped by the highlighter.
		Authors: template.HTML(authors),
		Title:   strings.TrimRight(strings.TrimSpace(p.Title), "."),
		Venue:   p.Venue,
		URL:     p.URL,
		Year:    year,
		BibTeX:  p.BibTeX,
	}
}
