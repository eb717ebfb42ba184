package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	// Enrichment fetches default to a desktop browser string because a
	// number of publishers refuse obviously-scripted agents.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ReconcileConfig holds settings for the reconciliation stage.
type ReconcileConfig struct {
	// Normalized enables a second lookup pass using lowercased,
	// punctuation-stripped titles for records the exact pass missed.
	Normalized bool `json:"normalized" yaml:"normalized"`
}

// ExpandConfig holds settings for the redirect expansion stage.
type ExpandConfig struct {
	HTTPConfig `yaml:",inline"`

	// Domains lists the shortener hosts whose URLs are expanded (suffix
	// match, so "flip.it" also covers "go.flip.it").
	Domains []string `json:"domains" yaml:"domains"`

	// All expands every URL regardless of domain.
	All bool `json:"all" yaml:"all"`

	// Delay is the pause between consecutive requests (default 500ms).
	Delay time.Duration `json:"delay" yaml:"delay"`
}

// EnrichConfig holds settings for the enrichment stage.
type EnrichConfig struct {
	HTTPConfig `yaml:",inline"`

	// Delay is the pause between consecutive fetches (default 2s).
	Delay time.Duration `json:"delay" yaml:"delay"`

	// HeartbeatEvery prints a progress line after this many records
	// (0 disables the heartbeat).
	HeartbeatEvery int `json:"heartbeat_every" yaml:"heartbeat_every"`

	// Cookies maps a hostname to a Cookie header value, loaded from
	// .secrets/. Matched by host suffix.
	Cookies map[string]string `json:"-" yaml:"-"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Reconcile ReconcileConfig `json:"reconcile" yaml:"reconcile"`
	Expand    ExpandConfig    `json:"expand" yaml:"expand"`
	Enrich    EnrichConfig    `json:"enrich" yaml:"enrich"`
}
