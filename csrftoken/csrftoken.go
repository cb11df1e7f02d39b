// csrftoken/csrftoken.go
/* The csrftoken package manages the client side of the HomeKeeper backend's CSRF
double-submit check. The backend sets a non-httpOnly cookie carrying the token and
expects the same value in a request header on every state-mutating call; this
package owns the header side. Tokens are fetched lazily from the token endpoint and
cached until explicitly cleared, so any number of sequential mutating requests cost
at most one token fetch. */
package csrftoken

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

const (
	// HeaderName is the request header the backend validates against the CSRF cookie.
	HeaderName = "X-Csrf-Token"

	// TokenEndpoint is the backend route that issues a CSRF token. It is itself
	// auth-exempt and never requires the header.
	TokenEndpoint = "/auth/csrf-token"
)

// Cache is a goroutine-safe cell holding at most one CSRF token. Each Client owns
// its own Cache, so tests can build isolated clients instead of sharing a
// package-level variable with a teardown hook.
type Cache struct {
	mu    sync.Mutex
	token string
}

// NewCache returns an empty token cache.
func NewCache() *Cache {
	return &Cache{}
}

// Get returns the cached token and whether one is present.
func (c *Cache) Get() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token, c.token != ""
}

// Set stores a token, replacing any previous one.
func (c *Cache) Set(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Clear empties the cache. The next Ensure call will fetch a fresh token.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

// Ensure returns the cached token, invoking fetch to populate the cache when it is
// empty. The fetch runs under the cache lock, so concurrent callers observing an
// empty cache serialize and the endpoint is hit exactly once.
func (c *Cache) Ensure(fetch func() (string, error)) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" {
		return c.token, nil
	}

	token, err := fetch()
	if err != nil {
		return "", err
	}
	c.token = token
	return token, nil
}

// tokenResponse mirrors the token endpoint's body: {"csrfToken": "..."}.
type tokenResponse struct {
	CSRFToken string `json:"csrfToken"`
}

// Fetch retrieves a CSRF token from the backend's token endpoint. The httpClient
// must carry the client's cookie jar so the double-submit cookie set alongside the
// response is retained.
func Fetch(ctx context.Context, httpClient *http.Client, baseURL string, sugar *zap.SugaredLogger) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+TokenEndpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build csrf token request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		sugar.Errorw("Failed to fetch CSRF token", zap.Error(err))
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("csrf token endpoint returned status %d", resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read csrf token response: %w", err)
	}

	var body tokenResponse
	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		return "", fmt.Errorf("failed to unmarshal csrf token response: %w", err)
	}
	if body.CSRFToken == "" {
		return "", fmt.Errorf("csrf token endpoint returned an empty token")
	}

	sugar.Debug("Fetched CSRF token from backend")
	return body.CSRFToken, nil
}
