// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs a page build end to end: validate inputs, fetch,
// enrich, section, render and write.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pdiddy/scholar-page/internal/awards"
	"github.com/pdiddy/scholar-page/internal/export"
	"github.com/pdiddy/scholar-page/internal/highlight"
	"github.com/pdiddy/scholar-page/internal/httputil"
	"github.com/pdiddy/scholar-page/internal/render"
	"github.com/pdiddy/scholar-page/internal/scholar"
	"github.com/pdiddy/scholar-page/internal/sections"
	"github.com/pdiddy/scholar-page/pkg/types"
)

// DefaultOutputPath is where the page is written when no path is given.
const DefaultOutputPath = "publications.html"

// Options configures a Generate run.
type Options struct {
	Config types.PipelineConfig

	// Fetcher overrides the fetcher chosen from Config.
	Fetcher scholar.Fetcher

	Logger *slog.Logger

	// Progress receives the detail-fetch progress bar; nil discards it.
	Progress io.Writer
}

// Summary describes a completed run.
type Summary struct {
	ProfileID   string
	ProfileName string // as shown on the profile, when known
	OutputPath  string
	Template    string // "default" or the template path

	Fetched    int
	Journal    int
	Conference int
	EnrichStats

	// UnmatchedAwards lists badge entries whose title matched nothing.
	UnmatchedAwards []string

	CSLPath    string
	SQLitePath string
}

// Total returns the number of publications on the page.
func (s Summary) Total() int { return s.Journal + s.Conference }

// NewFetcher returns the fetcher for cfg: a FileFetcher when an input file
// is configured, otherwise the Scholar profile client.
func NewFetcher(cfg types.PipelineConfig, logger *slog.Logger, progress io.Writer) scholar.Fetcher {
	if cfg.Page.InputPath != "" {
		return &scholar.FileFetcher{Path: cfg.Page.InputPath}
	}
	if progress == nil {
		progress = io.Discard
	}
	return scholar.NewClient(scholar.WithLogger(logger), scholar.WithProgress(progress))
}

// Validate checks cfg without touching the network or the filesystem.
func Validate(cfg types.PipelineConfig) error {
	if strings.TrimSpace(cfg.Page.Highlight.Name) == "" {
		return stageErr(StageConfig, fmt.Errorf("%w: researcher name is required", ErrConfig))
	}
	if strings.TrimSpace(cfg.Fetch.ProfileID) == "" && cfg.Page.InputPath == "" {
		return stageErr(StageConfig, fmt.Errorf("%w: profile id is required", ErrConfig))
	}
	if cfg.Fetch.UseProxy {
		if _, err := httputil.NewProxyPool(cfg.Fetch.ProxyURLs); err != nil {
			return stageErr(StageConfig, fmt.Errorf("%w: %w", ErrConfig, err))
		}
	}
	return nil
}

// Generate builds the publications page. Templates and badge configuration
// are loaded before any fetching, and the page is written atomically, so a
// failed run leaves no partial output. Export failures are reported after
// the page has been written, together with the summary.
func Generate(ctx context.Context, opts Options) (*Summary, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	outputPath := cfg.Page.OutputPath
	if outputPath == "" {
		outputPath = DefaultOutputPath
	}
	awardsPath := cfg.Page.AwardsPath
	if awardsPath == "" {
		awardsPath = awards.DefaultPath
	}

	tmpl, err := render.LoadTemplate(cfg.Page.TemplatePath)
	if err != nil {
		return nil, stageErr(StageConfig, fmt.Errorf("%w: %w", ErrConfig, err))
	}
	badges, err := awards.Load(awardsPath)
	if err != nil {
		return nil, stageErr(StageConfig, fmt.Errorf("%w: %w", ErrConfig, err))
	}
	if badges.Len() > 0 {
		logger.Info("loaded badge configuration", "path", awardsPath, "titles", badges.Len(), "layout", badges.Shape)
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = NewFetcher(cfg, logger, opts.Progress)
	}
	profile, err := fetcher.Fetch(ctx, cfg.Fetch)
	if err != nil {
		return nil, stageErr(StageFetch, err)
	}

	h := highlight.New(cfg.Page.Highlight)
	if profile.Name != "" && !h.Matches(profile.Name) {
		logger.Warn("profile name differs from the configured name", "profile", profile.Name, "name", cfg.Page.Highlight.Name)
	}

	pubs, filterStats := Filter(profile.Publications, logger)
	enriched, stats := Enrich(pubs, h, badges, logger)
	stats.Untitled, stats.Duplicates = filterStats.Untitled, filterStats.Duplicates
	unmatched := badges.Unmatched(pubs)
	if len(unmatched) > 0 {
		logger.Info("badge entries matched no publication", "titles", unmatched)
	}

	secs := sections.Build(enriched)
	page, err := tmpl.Render(secs, cfg.Page.Highlight.Name)
	if err != nil {
		return nil, stageErr(StageRender, err)
	}
	if err := writeAtomic(outputPath, []byte(page)); err != nil {
		return nil, stageErr(StageWrite, err)
	}

	summary := &Summary{
		ProfileID:       profile.ID,
		ProfileName:     profile.Name,
		OutputPath:      outputPath,
		Template:        tmpl.Source(),
		Fetched:         len(profile.Publications),
		EnrichStats:     stats,
		UnmatchedAwards: unmatched,
	}
	for _, s := range secs {
		switch s.Category {
		case types.CategoryConference:
			summary.Conference = s.Len()
		default:
			summary.Journal += s.Len()
		}
	}
	logger.Info("wrote publications page", "path", outputPath, "journal", summary.Journal, "conference", summary.Conference)

	if err := writeExports(ctx, cfg.Page, profile, secs, summary); err != nil {
		return summary, stageErr(StageExport, err)
	}
	return summary, nil
}

func writeExports(ctx context.Context, cfg types.PageConfig, profile *scholar.Profile, secs []types.Section, summary *Summary) error {
	if cfg.CSLPath != "" {
		var buf bytes.Buffer
		if err := export.FormatCSL(secs, &buf); err != nil {
			return fmt.Errorf("formatting CSL: %w", err)
		}
		if err := writeAtomic(cfg.CSLPath, buf.Bytes()); err != nil {
			return err
		}
		summary.CSLPath = cfg.CSLPath
	}
	if cfg.SQLitePath != "" {
		store, err := export.OpenStore(cfg.SQLitePath)
		if err != nil {
			return err
		}
		defer store.Close()
		if _, err := store.WritePage(ctx, profile.ID, profile.Name, secs); err != nil {
			return err
		}
		summary.SQLitePath = cfg.SQLitePath
	}
	return nil
}
