// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"

	"github.com/pdiddy/scholar-page/internal/httputil"
	"github.com/pdiddy/scholar-page/pkg/types"
)

// profileBase is the Google Scholar citations endpoint. Declared as a var so
// tests can substitute an httptest server.
var profileBase = "https://scholar.google.com/citations"

const (
	// DefaultPageSize is the largest page the profile table serves.
	DefaultPageSize = 100

	// DefaultRequestInterval spaces consecutive requests.
	DefaultRequestInterval = 1500 * time.Millisecond

	// DefaultUserAgent is sent when FetchConfig.UserAgent is empty.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

	// maxPages bounds pagination against a table that never reports its end.
	maxPages = 50
)

// Client scrapes publication lists from Google Scholar profile pages.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	progress   io.Writer
	logger     *slog.Logger
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client, bypassing proxy selection.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLimiter replaces the per-fetch request limiter.
func WithLimiter(l *rate.Limiter) ClientOption {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithProgress sets where the detail-page progress bar is drawn.
func WithProgress(w io.Writer) ClientOption {
	return func(c *Client) {
		c.progress = w
	}
}

// WithBaseURL sets the citations endpoint, e.g. to point at a mirror or a
// test server.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a profile scraper.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		progress: io.Discard,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch pages through the profile's publication table and, when
// cfg.FillDetails is set, visits each publication's detail page.
func (c *Client) Fetch(ctx context.Context, cfg types.FetchConfig) (*Profile, error) {
	id := strings.TrimSpace(cfg.ProfileID)
	if id == "" {
		return nil, &FetchError{Err: ErrNoProfileID}
	}

	hc, err := c.clientFor(cfg)
	if err != nil {
		return nil, &FetchError{ProfileID: id, Err: err}
	}
	limiter := c.limiter
	if limiter == nil {
		interval := cfg.RequestInterval
		if interval <= 0 {
			interval = DefaultRequestInterval
		}
		limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > DefaultPageSize {
		pageSize = DefaultPageSize
	}
	s := &session{hc: hc, limiter: limiter, userAgent: ua, profileID: id}

	profile := &Profile{ID: id}
	var links []string
	for page, start := 0, 0; page < maxPages; page++ {
		reqURL := c.profileURL(id, start, pageSize)
		doc, err := s.get(ctx, reqURL)
		if err != nil {
			return nil, err
		}
		base, _ := url.Parse(reqURL)
		p := parseProfilePage(doc, base, pageSize)
		if page == 0 {
			if p.Name == "" && len(p.Rows) == 0 {
				return nil, s.fail(reqURL, http.StatusOK, fmt.Errorf("%w: no profile header or publication table", ErrInvalidResponse))
			}
			profile.Name = p.Name
			profile.Affiliation = p.Affiliation
		}
		profile.Publications = append(profile.Publications, p.Rows...)
		links = append(links, p.Links...)
		c.logger.Debug("fetched profile page", "profile", id, "start", start, "rows", len(p.Rows))
		if !p.HasMore {
			break
		}
		start += len(p.Rows)
	}

	if cfg.FillDetails && len(profile.Publications) > 0 {
		if err := c.fillDetails(ctx, s, profile.Publications, links); err != nil {
			return nil, err
		}
	}
	assignIDs(profile.Publications)

	c.logger.Info("fetched profile", "profile", id, "name", profile.Name, "publications", len(profile.Publications))
	return profile, nil
}

// fillDetails visits each detail page. A failed page keeps the row data and
// logs a warning; being blocked aborts the fetch.
func (c *Client) fillDetails(ctx context.Context, s *session, pubs []types.RawPublication, links []string) error {
	bar := progressbar.NewOptions(len(pubs),
		progressbar.OptionSetWriter(c.progress),
		progressbar.OptionSetDescription("fetching publication details"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
	)
	defer bar.Finish()

	for i := range pubs {
		link := links[i]
		if link == "" {
			_ = bar.Add(1)
			continue
		}
		doc, err := s.get(ctx, link)
		if err != nil {
			if IsBlocked(err) || ctx.Err() != nil {
				return err
			}
			c.logger.Warn("could not fetch publication details", "title", pubs[i].Title, "error", err)
			_ = bar.Add(1)
			continue
		}
		base, _ := url.Parse(link)
		applyDetails(doc, base, &pubs[i])
		_ = bar.Add(1)
	}
	return nil
}

// clientFor returns the configured HTTP client, or builds one that routes
// through the proxy pool when cfg.UseProxy is set.
func (c *Client) clientFor(cfg types.FetchConfig) (*http.Client, error) {
	if c.httpClient != nil {
		return c.httpClient, nil
	}
	var pool *httputil.ProxyPool
	if cfg.UseProxy {
		p, err := httputil.NewProxyPool(cfg.ProxyURLs)
		if err != nil {
			return nil, err
		}
		if p.Len() == 0 {
			c.logger.Warn("proxy requested but none configured; requests go direct and may be blocked")
		}
		pool = p
	}
	return httputil.NewClient(cfg.HTTPConfig, pool), nil
}

func (c *Client) profileURL(id string, start, pageSize int) string {
	base := c.baseURL
	if base == "" {
		base = profileBase
	}
	params := url.Values{
		"user":     {id},
		"hl":       {"en"},
		"cstart":   {strconv.Itoa(start)},
		"pagesize": {strconv.Itoa(pageSize)},
	}
	return base + "?" + params.Encode()
}

// session holds the per-fetch request state.
type session struct {
	hc        *http.Client
	limiter   *rate.Limiter
	userAgent string
	profileID string
}

// get waits for the limiter, requests reqURL and parses the HTML response.
func (s *session) get(ctx context.Context, reqURL string) (*goquery.Document, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")

	resp, err := s.hc.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, s.fail(reqURL, 0, fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, s.fail(reqURL, resp.StatusCode, err)
	}
	if resp.Request != nil && strings.HasPrefix(resp.Request.URL.Path, "/sorry") {
		return nil, s.fail(reqURL, resp.StatusCode, fmt.Errorf("%w: redirected to captcha", ErrBlocked))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, s.fail(reqURL, resp.StatusCode, fmt.Errorf("%w: %v", ErrInvalidResponse, err))
	}
	if isBlockedPage(doc) {
		return nil, s.fail(reqURL, resp.StatusCode, fmt.Errorf("%w: captcha page", ErrBlocked))
	}
	return doc, nil
}

func (s *session) fail(reqURL string, status int, err error) error {
	return &FetchError{ProfileID: s.profileID, URL: reqURL, StatusCode: status, Err: err}
}

// checkStatus maps HTTP error statuses to sentinel causes.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode == http.StatusForbidden:
		return ErrBlocked
	default:
		return fmt.Errorf("%w: unexpected status", ErrInvalidResponse)
	}
}

var _ Fetcher = (*Client)(nil)

