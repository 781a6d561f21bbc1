// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibtex formats publications as BibTeX entries and allocates
// citation keys that are unique within one run.
package bibtex

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/scholar-page/pkg/types"
)

// stopWords are skipped when picking the title word of a citation key.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "on": true, "in": true, "for": true, "to": true,
	"with": true, "by": true, "at": true, "from": true, "via": true,
	"is": true, "are": true, "toward": true, "towards": true, "using": true,
}

// escaper escapes characters with special meaning in BibTeX/LaTeX.
var escaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	"&", `\&`,
	"%", `\%`,
	"$", `\$`,
	"#", `\#`,
	"_", `\_`,
	"{", `\{`,
	"}", `\}`,
	"~", `\textasciitilde{}`,
	"^", `\textasciicircum{}`,
)

// Escape escapes BibTeX-special characters in s.
func Escape(s string) string {
	return escaper.Replace(s)
}

// EntryType returns "inproceedings" for conference papers and "article"
// otherwise.
func EntryType(c types.Category) string {
	if c == types.CategoryConference {
		return "inproceedings"
	}
	return "article"
}

// venueField returns the field name that carries the venue for an entry type.
func venueField(entryType string) string {
	if entryType == "inproceedings" {
		return "booktitle"
	}
	return "journal"
}

// Format renders pub as a BibTeX entry with the given key. Optional fields
// are only written when known; a missing year omits the year field.
func Format(pub types.RawPublication, category types.Category, key string) string {
	entryType := EntryType(category)

	var fields []string
	add := func(name, value string) {
		if value = strings.TrimSpace(value); value != "" {
			fields = append(fields, fmt.Sprintf("  %s = {%s}", name, value))
		}
	}

	authors := make([]string, 0, len(pub.Authors))
	for _, a := range pub.Authors {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, Escape(a))
		}
	}
	add("author", strings.Join(authors, " and "))
	add("title", Escape(pub.Title))
	add(venueField(entryType), Escape(pub.Venue))
	add("volume", Escape(pub.Volume))
	add("number", Escape(pub.Number))
	add("pages", Escape(pageRange(pub.Pages)))
	add("publisher", Escape(pub.Publisher))
	if pub.Year > 0 {
		add("year", strconv.Itoa(pub.Year))
	}
	add("url", pub.URL)

	return fmt.Sprintf("@%s{%s,\n%s\n}", entryType, key, strings.Join(fields, ",\n"))
}

// pageRange turns "1-10" into the BibTeX range "1--10".
func pageRange(pages string) string {
	if strings.Contains(pages, "--") {
		return pages
	}
	return strings.ReplaceAll(pages, "-", "--")
}

// BaseKey builds the unsuffixed key: first-author surname, year and the first
// significant title word, all folded to lower-case ASCII letters and digits.
func BaseKey(pub types.RawPublication) string {
	surname := "anon"
	if len(pub.Authors) > 0 {
		if s := fold(Surname(pub.Authors[0])); s != "" {
			surname = s
		}
	}

	year := ""
	if pub.Year > 0 {
		year = strconv.Itoa(pub.Year)
	}

	word := "untitled"
	for _, w := range strings.Fields(pub.Title) {
		f := fold(w)
		if f == "" || stopWords[f] {
			continue
		}
		word = f
		break
	}

	return surname + year + word
}

// Surname returns the family name of a display name: the text before a
// comma for "Last, First", otherwise the last whitespace-separated token.
func Surname(name string) string {
	name = strings.TrimSpace(name)
	if idx := strings.Index(name, ","); idx > 0 {
		return strings.TrimSpace(name[:idx])
	}
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// AssignKeys allocates a citation key per publication ID. Keys are handed
// out in ID order so collision suffixes ("a", "b", ...) do not depend on the
// order publications were fetched in.
func AssignKeys(pubs []types.RawPublication) map[string]string {
	sorted := append([]types.RawPublication(nil), pubs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	keys := make(map[string]string, len(sorted))
	used := make(map[string]bool, len(sorted))
	for _, p := range sorted {
		if _, done := keys[p.ID]; done {
			continue
		}
		base := BaseKey(p)
		key := base
		for n := 1; used[key]; n++ {
			key = base + suffix(n)
		}
		used[key] = true
		keys[p.ID] = key
	}
	return keys
}

// suffix returns "a".."z" for 1..26 and the decimal number after that.
func suffix(n int) string {
	if n <= 26 {
		return string(rune('a' + n - 1))
	}
	return strconv.Itoa(n)
}

// fold strips diacritics and keeps only lower-case ASCII letters and digits.
func fold(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
