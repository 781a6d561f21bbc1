// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-page/pkg/types"
)

func enriched(id, title string, cat types.Category, year int, authors ...string) types.EnrichedPublication {
	return types.EnrichedPublication{
		RawPublication: types.RawPublication{ID: id, Title: title, Authors: authors, Venue: "Venue " + id, Year: year},
		Category:       cat,
		CitationKey:    "key" + id,
		BibTeX:         "@article{key" + id + ",\n}",
	}
}

func testSections() []types.Section {
	c := enriched("c", "Paper C", types.CategoryJournal, 2022, "Yuan Tian", "Lee, Bob")
	c.Volume, c.Number, c.Pages = "12", "3", "100-120"
	c.Badges = []types.Badge{{Label: "Best Paper", Icon: "fa-trophy"}, {Label: "Oral"}}
	return []types.Section{
		{Category: types.CategoryJournal, Publications: []types.EnrichedPublication{c, enriched("b", "Paper B", types.CategoryJournal, 0, "Plato")}},
		{Category: types.CategoryConference, Publications: []types.EnrichedPublication{enriched("a", "Paper A", types.CategoryConference, 2020, "Yuan Tian")}},
	}
}

func TestFormatCSL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatCSL(testSections(), &buf))

	var items []CSLItem
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &items))
	require.Len(t, items, 3)

	c := items[0]
	assert.Equal(t, "keyc", c.ID)
	assert.Equal(t, "article-journal", c.Type)
	assert.Equal(t, "Venue c", c.ContainerTitle)
	assert.Equal(t, "12", c.Volume)
	assert.Equal(t, "3", c.Issue)
	assert.Equal(t, "100-120", c.Page)
	assert.Equal(t, []CSLName{{Given: "Yuan", Family: "Tian"}, {Family: "Lee", Given: "Bob"}}, c.Author)
	require.NotNil(t, c.Issued)
	assert.Equal(t, [][]int{{2022}}, c.Issued.DateParts)
	assert.Equal(t, "Best Paper; Oral", c.Note)

	b := items[1]
	assert.Nil(t, b.Issued)
	assert.Equal(t, []CSLName{{Literal: "Plato"}}, b.Author)

	assert.Equal(t, "paper-conference", items[2].Type)
	assert.Contains(t, buf.String(), "container-title: Venue a")
}

func TestFormatCSLEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatCSL(nil, &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestParseAuthorName(t *testing.T) {
	assert.Equal(t, CSLName{Given: "Mary Ann", Family: "Smith"}, parseAuthorName(" Mary Ann Smith "))
	assert.Equal(t, CSLName{Family: "Smith", Given: "Mary Ann"}, parseAuthorName("Smith, Mary Ann"))
	assert.Equal(t, CSLName{Literal: "Plato"}, parseAuthorName("Plato"))
	assert.Equal(t, CSLName{}, parseAuthorName("  "))
}

func TestStoreWritePage(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pubs.db")

	s, err := OpenStore(path)
	require.NoError(t, err)
	defer s.Close()

	n, err := s.WritePage(ctx, "P1", "Yuan Tian", testSections())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := s.Publications(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, types.CategoryConference, got[2].Category)
	assert.Equal(t, []string{"Yuan Tian", "Lee, Bob"}, got[0].Authors)
	assert.Equal(t, "Best Paper", got[0].Badges[0].Label)
	assert.Equal(t, 0, got[1].Year)
	assert.Equal(t, "keya", got[2].CitationKey)

	// A second run replaces the rows of the same profile only.
	secs := testSections()
	secs[0].Publications = secs[0].Publications[:1]
	_, err = s.WritePage(ctx, "P1", "Yuan Tian", secs)
	require.NoError(t, err)
	_, err = s.WritePage(ctx, "P2", "Someone Else", testSections()[1:])
	require.NoError(t, err)

	got, err = s.Publications(ctx, "P1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	got, err = s.Publications(ctx, "P2")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestOpenStoreReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pubs.db")
	s, err := OpenStore(path)
	require.NoError(t, err)
	_, err = s.WritePage(context.Background(), "P1", "", testSections())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = OpenStore(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Publications(context.Background(), "P1")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
