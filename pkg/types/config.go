package types

import "time"

// HTTPConfig holds shared HTTP settings used by the fetch stage.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// ProfileID is the opaque profile identifier (e.g. "wX4le_QAAAAJ").
	ProfileID string `json:"profile_id" yaml:"profile_id"`

	// UseProxy routes requests through the rotating proxy pool.
	UseProxy bool `json:"use_proxy" yaml:"use_proxy"`

	// ProxyURLs is the proxy pool, rotated round-robin per request.
	ProxyURLs []string `json:"proxy_urls,omitempty" yaml:"proxy_urls,omitempty"`

	// FillDetails fetches each publication's detail page for full authors,
	// volume, pages and publisher.
	FillDetails bool `json:"fill_details" yaml:"fill_details"`

	// PageSize is the number of rows requested per profile page (default 100).
	PageSize int `json:"page_size" yaml:"page_size"`

	// RequestInterval is the minimum spacing between requests (default 1.5s).
	RequestInterval time.Duration `json:"request_interval" yaml:"request_interval"`
}

// HighlightConfig controls author-name highlighting.
type HighlightConfig struct {
	// Name is the researcher's full display name.
	Name string `json:"name" yaml:"name"`

	// Aliases are additional spellings to highlight (e.g. a maiden name).
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`

	// MatchInitials also accepts the name with given names abbreviated
	// ("Y Tian" for "Yuan Tian").
	MatchInitials bool `json:"match_initials" yaml:"match_initials"`
}

// PageConfig holds settings for building and writing the page.
type PageConfig struct {
	Highlight HighlightConfig `json:"highlight" yaml:"highlight"`

	// OutputPath is where the HTML page is written (default publications.html).
	OutputPath string `json:"output_path" yaml:"output_path"`

	// TemplatePath is an optional custom template containing {content}.
	TemplatePath string `json:"template_path,omitempty" yaml:"template_path,omitempty"`

	// AwardsPath is the badge configuration file (default awards.json).
	AwardsPath string `json:"awards_path,omitempty" yaml:"awards_path,omitempty"`

	// InputPath reads raw publications from a JSON or YAML file instead of
	// fetching them.
	InputPath string `json:"input_path,omitempty" yaml:"input_path,omitempty"`

	// CSLPath optionally writes a CSL-YAML bibliography of the page.
	CSLPath string `json:"csl_path,omitempty" yaml:"csl_path,omitempty"`

	// SQLitePath optionally writes the enriched publications to a SQLite table.
	SQLitePath string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Fetch FetchConfig `json:"fetch" yaml:"fetch"`
	Page  PageConfig  `json:"page" yaml:"page"`
}
