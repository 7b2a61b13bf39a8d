package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "article-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the web-search collaborator.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Locale is the interface language hint sent with each query (default "ja").
	Locale string `json:"locale" yaml:"locale"`

	// TopK is the number of ranked results retained for prompting (default 3).
	TopK int `json:"top_k" yaml:"top_k"`

	// APIKey authenticates against the search API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// AIConfig holds shared settings for components that call a generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "gemini-2.0-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// GenerationConfig holds settings for article drafting.
type GenerationConfig struct {
	AIConfig `yaml:",inline"`

	// AliasFile is an optional YAML file of extra section-name synonyms
	// merged over the built-in alias table.
	AliasFile string `json:"alias_file,omitempty" yaml:"alias_file,omitempty"`
}

// ManifestConfig holds settings for plain-text manifest export.
type ManifestConfig struct {
	// Dir is the directory manifests are written to (default ".").
	Dir string `json:"dir" yaml:"dir"`
}

// StoreConfig holds settings for the session article store.
type StoreConfig struct {
	// Path is the SQLite database file (default "articles.db").
	Path string `json:"path" yaml:"path"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// Mode selects the logger profile: "dev" or "prod".
	Mode string `json:"mode" yaml:"mode"`
}

// AppConfig groups all component configurations.
type AppConfig struct {
	Search     SearchConfig     `json:"search" yaml:"search"`
	Generation GenerationConfig `json:"generation" yaml:"generation"`
	Manifest   ManifestConfig   `json:"manifest" yaml:"manifest"`
	Store      StoreConfig      `json:"store" yaml:"store"`
	Server     ServerConfig     `json:"server" yaml:"server"`
}
