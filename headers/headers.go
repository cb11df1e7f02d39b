// headers/headers.go
package headers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/homekeeper/go-homekeeper-http-client/csrftoken"
	"go.uber.org/zap"
)

// HeaderHandler is responsible for managing and setting headers on HTTP requests.
// Headers are applied in three layers: client defaults first, then caller-supplied
// headers which override defaults, and finally the CSRF token header which cannot
// be overridden by the caller.
type HeaderHandler struct {
	req   *http.Request      // The http.Request for which headers are being managed
	sugar *zap.SugaredLogger // The logger to use for logging headers
}

// NewHeaderHandler creates a new instance of HeaderHandler for a given http.Request.
func NewHeaderHandler(req *http.Request, sugar *zap.SugaredLogger) *HeaderHandler {
	return &HeaderHandler{
		req:   req,
		sugar: sugar,
	}
}

// SetDefaultHeaders applies the client defaults that every request starts from.
func (h *HeaderHandler) SetDefaultHeaders(userAgent, requestID string) {
	h.req.Header.Set("Content-Type", "application/json")
	h.req.Header.Set("Accept", "application/json")
	h.req.Header.Set("User-Agent", userAgent)
	h.req.Header.Set("X-Request-Id", requestID)
}

// SetCallerHeaders merges caller-supplied headers over the defaults.
func (h *HeaderHandler) SetCallerHeaders(custom map[string]string) {
	for name, value := range custom {
		if value != "" {
			h.req.Header.Set(name, value)
		}
	}
}

// SetCSRFToken attaches the CSRF token header. Applied last so a caller header
// cannot shadow it.
func (h *HeaderHandler) SetCSRFToken(token string) {
	h.req.Header.Set(csrftoken.HeaderName, token)
}

// HeadersToString converts a http.Header to a string for logging,
// with each header on a new line for readability.
func HeadersToString(headers http.Header) string {
	var headerStrings []string
	for name, values := range headers {
		valueStr := strings.Join(values, ", ")
		headerStrings = append(headerStrings, fmt.Sprintf("%s: %s", name, valueStr))
	}
	return strings.Join(headerStrings, "\n")
}

// LogHeaders prints the request headers at debug level, redacting sensitive values
// when hideSensitiveData is set.
func (h *HeaderHandler) LogHeaders(hideSensitiveData bool) {
	redactedHeaders := http.Header{}
	for name, values := range h.req.Header {
		if len(values) > 0 {
			redactedHeaders.Set(name, RedactSensitiveHeaderData(hideSensitiveData, name, values[0]))
		}
	}

	h.sugar.Debugw("HTTP Request Headers", zap.String("headers", HeadersToString(redactedHeaders)))
}

// RedactSensitiveHeaderData redacts sensitive data based on the hideSensitiveData flag.
// The CSRF header is not redacted: its value is mirrored in a readable cookie, so
// hiding it would only hinder debugging.
func RedactSensitiveHeaderData(hideSensitiveData bool, key, value string) string {
	if hideSensitiveData {
		sensitiveKeys := map[string]bool{
			"Authorization": true,
			"Cookie":        true,
		}

		if sensitiveKeys[key] {
			return "REDACTED"
		}
	}
	return value
}
