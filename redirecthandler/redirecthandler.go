// redirecthandler/redirecthandler.go
/* The redirecthandler package applies the redirect policy suited to a
cookie-credentialed API client. Redirects are followed only within the backend's
own host, never for state-mutating methods, and only up to a configured bound.
Session and CSRF headers must not leak to other origins, so cross-host redirects
stop and surface the last response instead. */
package redirecthandler

import (
	"fmt"
	"net/http"

	"github.com/homekeeper/go-homekeeper-http-client/status"
	"go.uber.org/zap"
)

// MaxRedirectsError signals that the redirect bound was reached before a final response.
type MaxRedirectsError struct {
	MaxRedirects int
}

func (e *MaxRedirectsError) Error() string {
	return fmt.Sprintf("stopped after %d redirects", e.MaxRedirects)
}

// RedirectHandler contains configuration for handling HTTP redirects.
type RedirectHandler struct {
	Sugar        *zap.SugaredLogger
	MaxRedirects int
}

// NewRedirectHandler creates a new instance of RedirectHandler.
func NewRedirectHandler(sugar *zap.SugaredLogger, maxRedirects int) *RedirectHandler {
	return &RedirectHandler{
		Sugar:        sugar,
		MaxRedirects: maxRedirects,
	}
}

// SetupRedirectHandler applies the redirect policy to an http.Client. When
// followRedirects is false every redirect response is returned to the caller as-is.
func SetupRedirectHandler(client *http.Client, followRedirects bool, maxRedirects int, sugar *zap.SugaredLogger) error {
	if !followRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
		return nil
	}

	if maxRedirects < 1 {
		return fmt.Errorf("invalid maxRedirects %d: must be at least 1 when following redirects", maxRedirects)
	}

	handler := NewRedirectHandler(sugar, maxRedirects)
	client.CheckRedirect = handler.checkRedirect
	return nil
}

// checkRedirect implements the redirect policy.
func (r *RedirectHandler) checkRedirect(req *http.Request, via []*http.Request) error {
	if status.IsCSRFProtectedMethod(via[0].Method) {
		r.Sugar.Warnw("Redirect attempted on state-mutating method, not following",
			zap.String("method", via[0].Method),
			zap.String("url", req.URL.String()),
		)
		return http.ErrUseLastResponse
	}

	if req.URL.Host != via[0].URL.Host {
		r.Sugar.Warnw("Cross-host redirect refused",
			zap.String("origin_host", via[0].URL.Host),
			zap.String("redirect_host", req.URL.Host),
		)
		return http.ErrUseLastResponse
	}

	if len(via) >= r.MaxRedirects {
		r.Sugar.Warnw("Maximum redirects reached", zap.Int("max_redirects", r.MaxRedirects))
		return &MaxRedirectsError{MaxRedirects: r.MaxRedirects}
	}

	r.Sugar.Debugw("Following redirect",
		zap.String("from", via[len(via)-1].URL.String()),
		zap.String("to", req.URL.String()),
		zap.Int("redirect_count", len(via)),
	)
	return nil
}
