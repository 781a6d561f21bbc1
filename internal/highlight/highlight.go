// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package highlight marks a researcher's name inside an author list.
//
// Matching is on the full name. Both sides are folded to lower-case ASCII-ish
// tokens (diacritics removed, punctuation treated as whitespace) and compared
// as token multisets, so "Yuan Tian", "TIAN, Yuan" and "Yuán Tian" all match
// each other while "Wei Tian" does not.
package highlight

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/scholar-page/pkg/types"
)

const (
	openTag  = "<b>"
	closeTag = "</b>"
)

var (
	// listSeparator splits "A, B and C" style lists.
	listSeparator = regexp.MustCompile(`\s*,\s*|\s+and\s+`)

	// andSeparator splits BibTeX style "Last, First and Last, First" lists.
	andSeparator = regexp.MustCompile(`\s+and\s+`)

	// escaper escapes only what would change the markup; other bytes of a
	// name, apostrophes included, are written as given.
	escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

	// initialsOnly matches a given-name part written as initials: "Y", "YT", "Y.T.".
	initialsOnly = regexp.MustCompile(`^(?:\p{Lu}\.?)+$`)
)

// Highlighter wraps matches of a researcher's name in <b> markup.
type Highlighter struct {
	targets       [][]string
	matchInitials bool
}

// New returns a Highlighter for cfg.Name and cfg.Aliases. Empty names are
// ignored; a Highlighter with no names never matches.
func New(cfg types.HighlightConfig) *Highlighter {
	h := &Highlighter{matchInitials: cfg.MatchInitials}
	for _, name := range append([]string{cfg.Name}, cfg.Aliases...) {
		if tokens := Tokens(name); len(tokens) > 0 {
			h.targets = append(h.targets, tokens)
		}
	}
	return h
}

// HighlightNames joins names as JoinAuthors does and wraps each one naming
// the researcher in <b></b>. Names are matched whole, so "Tian, Yuan" is one
// author. When every multi-word name is written with initialed given names,
// as profile tables list them, initials matching is used for the list even
// if it was not configured.
func (h *Highlighter) HighlightNames(names []string) (string, bool) {
	initials := h.matchInitials || Abbreviated(names)

	var parts []string
	matched := false
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if h.matches(n, initials) {
			matched = true
			parts = append(parts, openTag+escaper.Replace(n)+closeTag)
			continue
		}
		parts = append(parts, escaper.Replace(n))
	}
	return joinList(parts), matched
}

// Abbreviated reports whether the list looks like a profile table listing:
// at least one multi-word name, and every multi-word name has initials
// before its surname ("Y Tian", "DA Wagner").
func Abbreviated(names []string) bool {
	seen := false
	for _, n := range names {
		fields := strings.Fields(n)
		if len(fields) < 2 {
			continue
		}
		for _, f := range fields[:len(fields)-1] {
			if !initialsOnly.MatchString(f) {
				return false
			}
		}
		seen = true
	}
	return seen
}

// Highlight returns authors as HTML with every segment naming the researcher
// wrapped in <b></b>. Separators and non-matching segments are kept as-is
// (with &, < and > escaped). The bool reports whether any segment matched.
func (h *Highlighter) Highlight(authors string) (string, bool) {
	sep := listSeparator
	if isAndStyle(authors) {
		sep = andSeparator
	}

	var b strings.Builder
	matched := false
	prev := 0
	write := func(segment string) {
		core := strings.TrimSpace(segment)
		if core == "" || !h.Matches(core) {
			b.WriteString(escaper.Replace(segment))
			return
		}
		matched = true
		lead := segment[:strings.Index(segment, core)]
		trail := segment[len(lead)+len(core):]
		b.WriteString(escaper.Replace(lead))
		b.WriteString(openTag)
		b.WriteString(escaper.Replace(core))
		b.WriteString(closeTag)
		b.WriteString(escaper.Replace(trail))
	}

	for _, loc := range sep.FindAllStringIndex(authors, -1) {
		write(authors[prev:loc[0]])
		b.WriteString(escaper.Replace(authors[loc[0]:loc[1]]))
		prev = loc[1]
	}
	write(authors[prev:])

	return b.String(), matched
}

// Matches reports whether a single author name refers to the researcher.
func (h *Highlighter) Matches(name string) bool {
	return h.matches(name, h.matchInitials)
}

func (h *Highlighter) matches(name string, initials bool) bool {
	cand := Tokens(name)
	if len(cand) == 0 {
		return false
	}
	for _, target := range h.targets {
		if sameTokens(cand, target) {
			return true
		}
		if initials && initialsMatch(cand, target) {
			return true
		}
	}
	return false
}

// JoinAuthors formats names as "A", "A and B" or "A, B and C".
func JoinAuthors(names []string) string {
	var clean []string
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			clean = append(clean, n)
		}
	}
	return joinList(clean)
}

func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

// Tokens folds a name into lower-case tokens with diacritics removed and
// punctuation treated as whitespace.
func Tokens(name string) []string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		folded = name
	}
	folded = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, folded)
	return strings.Fields(folded)
}

// isAndStyle reports whether the list looks like "Last, First and Last, First":
// at least two " and "-separated parts, each carrying exactly one comma.
func isAndStyle(authors string) bool {
	parts := andSeparator.Split(strings.TrimSpace(authors), -1)
	if len(parts) < 2 {
		return false
	}
	for _, p := range parts {
		if strings.Count(p, ",") != 1 {
			return false
		}
	}
	return true
}

func sameTokens(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]string(nil), a...)
	y := append([]string(nil), b...)
	sort.Strings(x)
	sort.Strings(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// initialsMatch accepts cand when it carries the target's surname (last
// token) and the given names abbreviated, in order: "Y Tian", "Tian Y",
// "YT Tian" for "Yuan T. Tian" style targets.
func initialsMatch(cand, target []string) bool {
	if len(target) < 2 {
		return false
	}
	surname := target[len(target)-1]
	given := target[:len(target)-1]

	idx := -1
	for i, tok := range cand {
		if tok == surname {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	rest := make([]string, 0, len(cand)-1)
	rest = append(rest, cand[:idx]...)
	rest = append(rest, cand[idx+1:]...)

	// Run-together initials: "yt" for ["yuan", "tian"...].
	if len(rest) == 1 && len(given) > 1 && len([]rune(rest[0])) == len(given) {
		for i, r := range []rune(rest[0]) {
			if []rune(given[i])[0] != r {
				return false
			}
		}
		return true
	}

	if len(rest) != len(given) {
		return false
	}
	for i, tok := range rest {
		if tok == given[i] {
			continue
		}
		tr := []rune(tok)
		if len(tr) != 1 || []rune(given[i])[0] != tr[0] {
			return false
		}
	}
	return true
}
