// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package awards loads badge configuration and attaches badges to
// publications by normalized title.
//
// Three JSON layouts are accepted and detected from the document itself:
//
//	[{"title": "...", "badges": [{"label": "Best Paper", "icon": "fa-trophy"}]}]
//	{"<title>": [{"label": "Best Paper"}], "<other title>": {"label": "Oral"}}
//	[{"title": "...", "label": "Best Paper", "icon": "fa-trophy"}]
//
// Whatever the layout, Load resolves it into one mapping from normalized
// title to badges.
package awards

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/pdiddy/scholar-page/pkg/types"
)

// DefaultPath is where the badge configuration is looked up when no path is
// given.
const DefaultPath = "awards.json"

// ErrInvalidConfig is returned for badge files that are not valid JSON or do
// not follow one of the accepted layouts.
var ErrInvalidConfig = errors.New("invalid badge configuration")

// Shape identifies the layout a configuration was written in.
type Shape string

const (
	ShapeEmpty   Shape = "empty"
	ShapeList    Shape = "list"    // [{title, badges: [...]}]
	ShapeMapping Shape = "mapping" // {title: [...]}
	ShapeFlat    Shape = "flat"    // [{title, label, icon}]
)

// Config maps normalized titles to badges.
type Config struct {
	Shape   Shape
	byTitle map[string][]types.Badge
	titles  map[string]string // normalized -> title as configured
}

// Empty returns a configuration with no badges.
func Empty() *Config {
	return &Config{Shape: ShapeEmpty, byTitle: map[string][]types.Badge{}, titles: map[string]string{}}
}

// Load reads the badge configuration at path. A missing file is not an
// error: it yields an empty configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Empty(), nil
		}
		return nil, fmt.Errorf("reading badge configuration %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a badge configuration document.
func Parse(data []byte) (*Config, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Empty(), nil
	}

	cfg := Empty()
	switch data[0] {
	case '{':
		var m map[string]json.RawMessage
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		cfg.Shape = ShapeMapping
		// Sorted so merged badge order does not depend on map iteration.
		titles := make([]string, 0, len(m))
		for title := range m {
			titles = append(titles, title)
		}
		sort.Strings(titles)
		for _, title := range titles {
			badges, err := decodeBadges(m[title])
			if err != nil {
				return nil, fmt.Errorf("%w: title %q: %v", ErrInvalidConfig, title, err)
			}
			if err := cfg.add(title, badges...); err != nil {
				return nil, err
			}
		}
	case '[':
		var entries []rawEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		for i, e := range entries {
			shape := e.shape()
			if shape == "" {
				return nil, fmt.Errorf("%w: entry %d: needs either \"badges\" or \"label\"", ErrInvalidConfig, i)
			}
			if cfg.Shape == ShapeEmpty {
				cfg.Shape = shape
			} else if cfg.Shape != shape {
				return nil, fmt.Errorf("%w: entry %d: mixes %s and %s layouts", ErrInvalidConfig, i, cfg.Shape, shape)
			}

			var badges []types.Badge
			if shape == ShapeList {
				b, err := decodeBadges(e.Badges)
				if err != nil {
					return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidConfig, i, err)
				}
				badges = b
			} else {
				badges = []types.Badge{{Label: e.Label, Icon: e.Icon}}
			}
			if err := cfg.add(e.Title, badges...); err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
		}
	default:
		return nil, fmt.Errorf("%w: expected a JSON object or array", ErrInvalidConfig)
	}
	return cfg, nil
}

// rawEntry covers both list layouts.
type rawEntry struct {
	Title  string          `json:"title"`
	Badges json.RawMessage `json:"badges"`
	Label  string          `json:"label"`
	Icon   string          `json:"icon"`
}

func (e rawEntry) shape() Shape {
	switch {
	case len(e.Badges) > 0:
		return ShapeList
	case e.Label != "":
		return ShapeFlat
	default:
		return ""
	}
}

// decodeBadges accepts a list of badges, a single badge object, a bare label
// string, or a list of label strings.
func decodeBadges(raw json.RawMessage) ([]types.Badge, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("no badges")
	}
	switch raw[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		badges := make([]types.Badge, 0, len(items))
		for _, item := range items {
			b, err := decodeBadge(item)
			if err != nil {
				return nil, err
			}
			badges = append(badges, b)
		}
		return badges, nil
	default:
		b, err := decodeBadge(raw)
		if err != nil {
			return nil, err
		}
		return []types.Badge{b}, nil
	}
}

func decodeBadge(raw json.RawMessage) (types.Badge, error) {
	var b types.Badge
	if len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(raw, &b.Label); err != nil {
			return b, err
		}
	} else if err := json.Unmarshal(raw, &b); err != nil {
		return b, err
	}
	if b.Label == "" {
		return b, fmt.Errorf("badge without label")
	}
	return b, nil
}

func (c *Config) add(title string, badges ...types.Badge) error {
	key := types.NormalizeTitle(title)
	if key == "" {
		return fmt.Errorf("%w: badge entry without a title", ErrInvalidConfig)
	}
	if _, ok := c.titles[key]; !ok {
		c.titles[key] = title
	}
	for _, b := range badges {
		if !containsBadge(c.byTitle[key], b) {
			c.byTitle[key] = append(c.byTitle[key], b)
		}
	}
	return nil
}

func containsBadge(list []types.Badge, b types.Badge) bool {
	for _, x := range list {
		if x == b {
			return true
		}
	}
	return false
}

// Len returns the number of distinct configured titles.
func (c *Config) Len() int { return len(c.byTitle) }

// Lookup returns the badges configured for a title, matched after
// normalization.
func (c *Config) Lookup(title string) []types.Badge {
	badges := c.byTitle[types.NormalizeTitle(title)]
	if len(badges) == 0 {
		return nil
	}
	return append([]types.Badge(nil), badges...)
}

// Match returns the badges for each publication ID that has any.
func (c *Config) Match(pubs []types.RawPublication) map[string][]types.Badge {
	out := make(map[string][]types.Badge)
	for _, p := range pubs {
		if badges := c.Lookup(p.Title); len(badges) > 0 {
			out[p.ID] = badges
		}
	}
	return out
}

// Unmatched returns configured titles, as written, that match none of pubs.
// Unmatched entries are not an error; callers may log them.
func (c *Config) Unmatched(pubs []types.RawPublication) []string {
	seen := make(map[string]bool, len(pubs))
	for _, p := range pubs {
		seen[types.NormalizeTitle(p.Title)] = true
	}
	var out []string
	for key, title := range c.titles {
		if !seen[key] {
			out = append(out, title)
		}
	}
	sort.Strings(out)
	return out
}
