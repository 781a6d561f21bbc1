// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-page/pkg/types"
)

// Output formats accepted by Encode.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FileFetcher reads a publication list saved by "scholar-page fetch". The
// file holds either a Profile or a bare list of publications, as JSON or
// YAML (chosen by extension, YAML when unknown).
type FileFetcher struct {
	Path string
}

// Fetch decodes the file. Publications without an ID get their title/year
// fingerprint.
func (f *FileFetcher) Fetch(ctx context.Context, cfg types.FetchConfig) (*Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, &FetchError{ProfileID: cfg.ProfileID, URL: f.Path, Err: err}
	}
	p, err := Decode(data, formatFor(f.Path))
	if err != nil {
		return nil, &FetchError{ProfileID: cfg.ProfileID, URL: f.Path, Err: fmt.Errorf("%w: %v", ErrInvalidResponse, err)}
	}
	if p.ID == "" {
		p.ID = cfg.ProfileID
	}
	return p, nil
}

// Decode parses a saved profile in the given format.
func Decode(data []byte, format string) (*Profile, error) {
	data = bytes.TrimSpace(data)
	p := &Profile{}
	if len(data) == 0 {
		return p, nil
	}

	switch format {
	case FormatJSON:
		if data[0] == '[' {
			if err := json.Unmarshal(data, &p.Publications); err != nil {
				return nil, err
			}
		} else if err := json.Unmarshal(data, p); err != nil {
			return nil, err
		}
	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, err
		}
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
			if err := node.Decode(&p.Publications); err != nil {
				return nil, err
			}
		} else if err := node.Decode(p); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	assignIDs(p.Publications)
	return p, nil
}

// Encode writes p in the given format.
func Encode(w io.Writer, p *Profile, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, FormatJSON, FormatYAML)
	}
}

func formatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}
