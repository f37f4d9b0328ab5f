// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// HTTPConfig holds shared HTTP settings used by stages that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "patent-intake/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// OPSConfig holds settings for the patent office (EPO OPS) client and its
// token manager.
type OPSConfig struct {
	HTTPConfig `yaml:",inline"`

	// TokenURL is the OAuth2 client-credentials token endpoint.
	TokenURL string `json:"token_url" yaml:"token_url"`

	// APIBase is the base URL of the REST services
	// (e.g. "https://ops.epo.org/3.2/rest-services").
	APIBase string `json:"api_base" yaml:"api_base"`

	// ConsumerKey and SecretKey authenticate the client-credentials
	// exchange. Usually loaded from .secrets/, not the config file.
	ConsumerKey string `json:"consumer_key,omitempty" yaml:"consumer_key,omitempty"`
	SecretKey   string `json:"secret_key,omitempty" yaml:"secret_key,omitempty"`
}

// TranslateConfig holds settings for the translation fallback chain.
type TranslateConfig struct {
	HTTPConfig `yaml:",inline"`

	// EngineTimeout bounds each machine-translation engine call
	// (default 5s).
	EngineTimeout time.Duration `json:"engine_timeout" yaml:"engine_timeout"`

	// MaxConcurrentEngines bounds the engine race worker pool (default 3).
	MaxConcurrentEngines int `json:"max_concurrent_engines" yaml:"max_concurrent_engines"`

	// BaiduAppID and BaiduSecretKey configure the Baidu engine. An engine
	// with missing credentials declines to answer instead of erroring.
	BaiduAppID     string `json:"baidu_app_id,omitempty" yaml:"baidu_app_id,omitempty"`
	BaiduSecretKey string `json:"baidu_secret_key,omitempty" yaml:"baidu_secret_key,omitempty"`

	// From and To are the source and target language codes (default zh/en).
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// StoreConfig holds settings for the local submission store.
type StoreConfig struct {
	// DataDir is the base directory for the store (contains intake.db and
	// exports).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of list/search results
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ServerConfig holds HTTP server settings for `patent-intake serve`.
type ServerConfig struct {
	// Port is the TCP port the JSON API listens on.
	Port int `json:"port" yaml:"port"`

	// MaxUploadBytes caps document uploads (default 50 MiB).
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes"`
}

// Address returns the listen address for the HTTP server.
func (c ServerConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the server configuration.
func (c ServerConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.MaxUploadBytes, validation.Min(int64(0))),
	)
}

// IntakeConfig groups all stage configurations.
type IntakeConfig struct {
	OPS       OPSConfig       `json:"ops" yaml:"ops"`
	Translate TranslateConfig `json:"translate" yaml:"translate"`
	Store     StoreConfig     `json:"store" yaml:"store"`
	Server    ServerConfig    `json:"server" yaml:"server"`
}
