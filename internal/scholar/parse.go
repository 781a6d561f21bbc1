// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/scholar-page/pkg/types"
)

// profilePage is one page of a profile's publication table.
type profilePage struct {
	Name        string
	Affiliation string
	Rows        []types.RawPublication
	// Links holds each row's detail page URL, parallel to Rows.
	Links   []string
	HasMore bool
}

// yearSuffix matches a trailing ", 2020" on a venue line.
var yearSuffix = regexp.MustCompile(`,\s*((?:19|20)\d{2})\s*$`)

// isBlockedPage reports whether doc is a captcha or "unusual traffic" page.
func isBlockedPage(doc *goquery.Document) bool {
	if doc.Find("#gs_captcha_f, #captcha-form, form[action*='sorry']").Length() > 0 {
		return true
	}
	return strings.Contains(doc.Find("body").Text(), "unusual traffic")
}

// parseProfilePage extracts the profile header and publication rows. Row
// links are resolved against base.
func parseProfilePage(doc *goquery.Document, base *url.URL, pageSize int) profilePage {
	page := profilePage{
		Name:        clean(doc.Find("#gsc_prf_in").First().Text()),
		Affiliation: clean(doc.Find("#gsc_prf_i .gsc_prf_il").First().Text()),
	}

	doc.Find("tr.gsc_a_tr").Each(func(_ int, row *goquery.Selection) {
		titleLink := row.Find("a.gsc_a_at").First()
		pub := types.RawPublication{Title: clean(titleLink.Text())}

		gray := row.Find("div.gs_gray")
		pub.Authors = splitAuthors(gray.Eq(0).Text())
		pub.Year = parseInt(row.Find("span.gsc_a_h").First().Text())
		pub.Venue, pub.Year = cleanVenue(gray.Eq(1).Text(), pub.Year)
		pub.Citations = parseInt(strings.TrimRight(row.Find("a.gsc_a_ac").First().Text(), "*"))

		link := resolve(base, titleLink.AttrOr("href", ""))
		pub.URL = link

		page.Rows = append(page.Rows, pub)
		page.Links = append(page.Links, link)
	})

	more := doc.Find("#gsc_bpf_more")
	if more.Length() > 0 {
		_, disabled := more.Attr("disabled")
		page.HasMore = !disabled && len(page.Rows) > 0
	} else {
		page.HasMore = pageSize > 0 && len(page.Rows) >= pageSize
	}
	return page
}

// applyDetails copies the fields of a publication detail page onto pub.
// Fields missing from the page leave pub unchanged.
func applyDetails(doc *goquery.Document, base *url.URL, pub *types.RawPublication) {
	if t := clean(doc.Find("#gsc_oci_title").First().Text()); t != "" && pub.Title == "" {
		pub.Title = t
	}
	if href, ok := doc.Find("a.gsc_oci_title_link").First().Attr("href"); ok {
		if link := resolve(base, href); link != "" {
			pub.URL = link
		}
	}

	doc.Find("#gsc_oci_table div.gs_scl").Each(func(_ int, s *goquery.Selection) {
		field := strings.ToLower(clean(s.Find("div.gsc_oci_field").Text()))
		value := clean(s.Find("div.gsc_oci_value").Text())
		if value == "" {
			return
		}
		switch field {
		case "authors", "inventors":
			if authors := splitAuthors(value); len(authors) > 0 {
				pub.Authors = authors
			}
		case "publication date":
			if pub.Year == 0 && len(value) >= 4 {
				pub.Year = parseInt(value[:4])
			}
		case "journal", "conference", "book", "source":
			pub.Venue, _ = cleanVenue(value, pub.Year)
		case "volume":
			pub.Volume = value
		case "issue":
			pub.Number = value
		case "pages":
			pub.Pages = value
		case "publisher":
			pub.Publisher = value
		case "description":
			pub.Abstract = value
		}
	})
}

// splitAuthors splits a comma-separated author line, dropping the ellipsis
// that marks a truncated list.
func splitAuthors(s string) []string {
	var out []string
	for _, a := range strings.Split(s, ",") {
		a = clean(a)
		if a == "" || a == "..." || a == "…" {
			continue
		}
		out = append(out, a)
	}
	return out
}

// cleanVenue strips a trailing ", <year>" from a venue line. When the row
// itself has no year, the stripped year is used instead.
func cleanVenue(venue string, year int) (string, int) {
	venue = clean(venue)
	m := yearSuffix.FindStringSubmatchIndex(venue)
	if m == nil {
		return venue, year
	}
	found, _ := strconv.Atoi(venue[m[2]:m[3]])
	if year != 0 && found != year {
		return venue, year
	}
	return strings.TrimSpace(venue[:m[0]]), found
}

func resolve(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// clean collapses runs of whitespace, including non-breaking spaces.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
