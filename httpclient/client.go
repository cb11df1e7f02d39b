// httpclient/client.go
/* The httpclient package provides the HTTP client for the HomeKeeper backend API.
It layers the backend's session contract on top of the standard HTTP client:
credential cookies travel on every request via the cookie jar, state-mutating
requests carry the CSRF double-submit header, and a 401 on a session-protected
endpoint triggers exactly one transparent session refresh and retry. The main
`Client` structure encapsulates the configuration, the CSRF token cache and an
embedded standard HTTP client. */
package httpclient

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/homekeeper/go-homekeeper-http-client/cookiejar"
	"github.com/homekeeper/go-homekeeper-http-client/csrftoken"
	"github.com/homekeeper/go-homekeeper-http-client/logger"
	"github.com/homekeeper/go-homekeeper-http-client/redirecthandler"
	"go.uber.org/zap"
)

// Master struct/object
type Client struct {
	// Private
	config ClientConfig
	http   *http.Client

	// Exported
	Sugar *zap.SugaredLogger
	CSRF  *csrftoken.Cache
}

// BuildClient creates a new HTTP client with the provided configuration.
func BuildClient(config ClientConfig, populateDefaultValues bool) (*Client, error) {

	err := validateClientConfig(&config, populateDefaultValues)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	parsedLogLevel := logger.ParseLogLevelFromString(config.LogLevel)
	sugar := config.Sugar
	if sugar == nil {
		sugar = logger.BuildLogger(parsedLogLevel, config.LogOutputFormat, config.LogExportPath)
	}

	sugar.Infof("initializing new http client, backend: %s", config.BaseURL)

	httpClient := &http.Client{
		Timeout: config.CustomTimeout,
	}

	// Sessions are cookie-based; a client without a jar cannot authenticate.
	if err := cookiejar.SetupCookieJar(httpClient, sugar); err != nil {
		return nil, err
	}

	if err := redirecthandler.SetupRedirectHandler(httpClient, config.FollowRedirects, config.MaxRedirects, sugar); err != nil {
		sugar.Errorw("Failed to set up redirect handler", zap.Error(err))
		return nil, err
	}

	client := &Client{
		config: config,
		http:   httpClient,
		Sugar:  sugar,
		CSRF:   csrftoken.NewCache(),
	}

	sugar.Debugw("New API client initialized",
		zap.String("Base URL", config.BaseURL),
		zap.String("Logging Level", config.LogLevel),
		zap.String("Log Encoding Format", config.LogOutputFormat),
		zap.Bool("Hide Sensitive Data In Logs", config.HideSensitiveData),
		zap.Bool("Follow Redirects", config.FollowRedirects),
		zap.Int("Max Redirects", config.MaxRedirects),
		zap.String("Auth Exempt Prefix", config.AuthExemptPrefix),
		zap.Duration("Custom Timeout", config.CustomTimeout),
	)

	return client, nil
}

// ClearCSRFToken empties the CSRF token cache. The next state-mutating request
// fetches a fresh token. Call this after a logout or when the server rotates
// tokens out from under the client.
func (c *Client) ClearCSRFToken() {
	c.CSRF.Clear()
	c.Sugar.Debug("CSRF token cache cleared")
}

// isAuthExempt reports whether the endpoint belongs to the backend's own auth
// surface, which neither enforces CSRF nor participates in the 401 refresh cycle.
func (c *Client) isAuthExempt(endpoint string) bool {
	if c.config.AuthExempt != nil {
		return c.config.AuthExempt(endpoint)
	}
	return strings.HasPrefix(endpoint, c.config.AuthExemptPrefix)
}
