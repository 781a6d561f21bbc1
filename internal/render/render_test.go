// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-page/pkg/types"
)

func pub(id, title string, cat types.Category, year int) types.EnrichedPublication {
	return types.EnrichedPublication{
		RawPublication: types.RawPublication{
			ID:      id,
			Title:   title,
			Authors: []string{"Yuan Tian"},
			Venue:   "Venue " + id,
			Year:    year,
		},
		Category:           cat,
		HighlightedAuthors: "<b>Yuan Tian</b>",
		AuthorMatched:      true,
		CitationKey:        "tian" + id,
		BibTeX:             "@article{tian" + id + ",\n  title = {" + title + "}\n}",
	}
}

func testSections() []types.Section {
	return []types.Section{
		{Category: types.CategoryJournal, Publications: []types.EnrichedPublication{
			pub("c", "Paper C", types.CategoryJournal, 2022),
			pub("b", "Paper B", types.CategoryJournal, 2022),
		}},
		{Category: types.CategoryConference, Publications: []types.EnrichedPublication{
			pub("a", "Paper A", types.CategoryConference, 2020),
		}},
	}
}

func TestRenderDefaultTemplateListsEachPublicationOnce(t *testing.T) {
	tmpl, err := LoadTemplate("")
	require.NoError(t, err)
	assert.Equal(t, "default", tmpl.Source())

	page, err := tmpl.Render(testSections(), "Yuan Tian")
	require.NoError(t, err)

	assert.NotContains(t, page, ContentPlaceholder)
	assert.NotContains(t, page, NamePlaceholder)
	assert.Contains(t, page, "<title>Yuan Tian | Research</title>")

	start := strings.Index(page, `<h3 class="push-down-4">`)
	require.GreaterOrEqual(t, start, 0)
	content := page[start:]
	for _, s := range testSections() {
		for _, p := range s.Publications {
			assert.Equal(t, 1, strings.Count(content, `data-pub-id="`+p.ID+`"`), p.ID)
			assert.Equal(t, 1, strings.Count(content, `<i class="pub-title">`+p.Title+`.</i>`), p.Title)
		}
	}
	assert.Equal(t, 3, strings.Count(content, "<li "))
}

func TestContentSectionsInOrder(t *testing.T) {
	content, err := Content(testSections())
	require.NoError(t, err)

	journal := strings.Index(content, types.CategoryJournal.Heading())
	conference := strings.Index(content, types.CategoryConference.Heading())
	require.GreaterOrEqual(t, journal, 0)
	require.GreaterOrEqual(t, conference, 0)
	assert.Less(t, journal, conference)
	assert.Less(t, strings.Index(content, "Paper C"), strings.Index(content, "Paper B"))

	assert.Contains(t, content, `<span class="pub-tag journal"><i class="fas fa-book-open"></i> Journal</span>`)
	assert.Contains(t, content, `<span class="pub-tag conference"><i class="fas fa-users"></i> Conference</span>`)
	assert.Contains(t, content, "<b>Yuan Tian</b>. <i")
	assert.Contains(t, content, `<button data-copy="bib-a" class="copy-btn">BibTeX</button>`)
	assert.Contains(t, content, `<pre id="bib-a" class="bibtex-source">@article{tiana,`)
}

func TestContentSkipsEmptySections(t *testing.T) {
	secs := testSections()
	secs[1].Publications = nil

	content, err := Content(secs)
	require.NoError(t, err)
	assert.NotContains(t, content, types.CategoryConference.Heading())
}

func TestContentEmpty(t *testing.T) {
	content, err := Content([]types.Section{{Category: types.CategoryJournal}, {Category: types.CategoryConference}})
	require.NoError(t, err)
	assert.Equal(t, EmptyContent, content)
}

func TestContentEscapesFields(t *testing.T) {
	p := pub("x", "<script>alert(1)</script>", types.CategoryJournal, 2021)
	p.Venue = "R&D Letters"
	p.URL = "https://example.com/p?a=1&b=2"
	p.BibTeX = "@article{x,\n  title = {R\\&D <b>}\n}"

	content, err := Content([]types.Section{{Category: types.CategoryJournal, Publications: []types.EnrichedPublication{p}}})
	require.NoError(t, err)

	assert.NotContains(t, content, "<script>")
	assert.Contains(t, content, "&lt;script&gt;")
	assert.Contains(t, content, `<a href="https://example.com/p?a=1&amp;b=2" target="_blank">R&amp;D Letters</a>, 2021.`)
	assert.Contains(t, content, `title = {R\&amp;D &lt;b&gt;}`)
}

func TestContentBadgesAndMissingFields(t *testing.T) {
	p := pub("y", "Paper Y", types.CategoryConference, 0)
	p.Venue = ""
	p.HighlightedAuthors = ""
	p.Badges = []types.Badge{{Label: "Best Paper", Icon: "fa-trophy"}, {Label: "Oral"}}

	content, err := Content([]types.Section{{Category: types.CategoryConference, Publications: []types.EnrichedPublication{p}}})
	require.NoError(t, err)

	assert.Contains(t, content, `<span class="pub-tag award"><i class="fas fa-trophy"></i> Best Paper</span>`)
	assert.Contains(t, content, `<span class="pub-tag award"><i class="fas fa-award"></i> Oral</span>`)
	assert.Contains(t, content, "No Author. <i")
	assert.NotContains(t, content, "<a href")
}

func TestParseTemplateRequiresContent(t *testing.T) {
	_, err := ParseTemplate("<html>{name}</html>", "custom.html")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingPlaceholder)
	assert.Contains(t, err.Error(), "custom.html")
}

func TestRenderSinglePassAndUnknownPlaceholders(t *testing.T) {
	tmpl, err := ParseTemplate("<h1>{name}</h1>{unknown}<main>{content}</main>{name}", "custom")
	require.NoError(t, err)

	secs := testSections()
	// A title containing a placeholder must not be substituted again.
	secs[0].Publications[0].Title = "About {name} and {content}"

	page, err := tmpl.Render(secs, "Ada & Bob")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(page, "<h1>Ada &amp; Bob</h1>{unknown}<main>"), page)
	assert.True(t, strings.HasSuffix(page, "</main>Ada &amp; Bob"), page)
	assert.Contains(t, page, "About {name} and {content}.")
}

func TestLoadTemplateFromFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.html")
	bad := filepath.Join(dir, "bad.html")
	require.NoError(t, os.WriteFile(good, []byte("<body>{content}</body>"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("<body></body>"), 0o644))

	tmpl, err := LoadTemplate(good)
	require.NoError(t, err)
	assert.Equal(t, good, tmpl.Source())

	_, err = LoadTemplate(bad)
	assert.ErrorIs(t, err, ErrMissingPlaceholder)

	_, err = LoadTemplate(filepath.Join(dir, "missing.html"))
	assert.Error(t, err)
}

func TestDefaultTemplateReferencesSiblingAssets(t *testing.T) {
	for _, asset := range []string{"css/site.css", "js/site.js", "navbar.html", "footer.html"} {
		assert.Contains(t, DefaultTemplate, asset)
	}
}
