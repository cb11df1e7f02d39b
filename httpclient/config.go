// httpclient/config.go
package httpclient

import (
	"time"

	"go.uber.org/zap"
)

// Options/Variables for Client
type ClientConfig struct {
	// BaseURL is the root of the HomeKeeper backend API, e.g. "http://localhost:5000/api".
	BaseURL string `json:"base_url"`

	// Log
	LogLevel          string `json:"log_level"`
	LogOutputFormat   string `json:"log_output_format"` // "console" for human-readable output, "JSON" for structured output
	LogExportPath     string `json:"log_export_path"`
	HideSensitiveData bool   `json:"hide_sensitive_data"`

	// Misc
	CustomTimeout    time.Duration `json:"-"`
	FollowRedirects  bool          `json:"follow_redirects"`
	MaxRedirects     int           `json:"max_redirects"`
	AuthExemptPrefix string        `json:"auth_exempt_prefix"`

	// AuthExempt overrides the prefix check when set. It reports whether an
	// endpoint is part of the backend's auth surface.
	AuthExempt func(endpoint string) bool `json:"-"`

	// Sugar overrides the built logger when set. Used by tests to keep client
	// construction quiet and by embedders that already own a zap logger.
	Sugar *zap.SugaredLogger `json:"-"`
}
