// headers/headers_test.go
package headers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/homekeeper/go-homekeeper-http-client/csrftoken"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*HeaderHandler, *http.Request) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "http://example.com/api/assets", nil)
	return NewHeaderHandler(req, zap.NewNop().Sugar()), req
}

func TestSetDefaultHeaders(t *testing.T) {
	handler, req := newHandler(t)
	handler.SetDefaultHeaders("go-homekeeper-http-client/0.1.0", "req-123")

	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "go-homekeeper-http-client/0.1.0", req.Header.Get("User-Agent"))
	assert.Equal(t, "req-123", req.Header.Get("X-Request-Id"))
}

func TestCallerHeadersOverrideDefaults(t *testing.T) {
	handler, req := newHandler(t)
	handler.SetDefaultHeaders("go-homekeeper-http-client/0.1.0", "req-123")
	handler.SetCallerHeaders(map[string]string{
		"Content-Type":    "multipart/form-data",
		"X-Custom-Header": "custom",
		"Ignored-Empty":   "",
	})

	assert.Equal(t, "multipart/form-data", req.Header.Get("Content-Type"))
	assert.Equal(t, "custom", req.Header.Get("X-Custom-Header"))
	assert.Empty(t, req.Header.Get("Ignored-Empty"))
}

func TestCSRFTokenIsNotOverridable(t *testing.T) {
	handler, req := newHandler(t)
	handler.SetDefaultHeaders("go-homekeeper-http-client/0.1.0", "req-123")
	handler.SetCallerHeaders(map[string]string{
		csrftoken.HeaderName: "spoofed",
	})
	handler.SetCSRFToken("real-token")

	assert.Equal(t, "real-token", req.Header.Get(csrftoken.HeaderName))
}

// TestRedactSensitiveHeaderData tests the RedactSensitiveHeaderData function to ensure it correctly redacts sensitive data.
func TestRedactSensitiveHeaderData(t *testing.T) {
	cases := []struct {
		name              string
		hideSensitiveData bool
		key               string
		value             string
		expected          string
	}{
		{"Cookie With Redaction", true, "Cookie", "accessToken=abc", "REDACTED"},
		{"Cookie Without Redaction", false, "Cookie", "accessToken=abc", "accessToken=abc"},
		{"Authorization With Redaction", true, "Authorization", "Bearer abc", "REDACTED"},
		{"CSRF Header Is Never Redacted", true, "X-Csrf-Token", "token-value", "token-value"},
		{"Non-Sensitive Key With Redaction", true, "User-Agent", "MyCustomAgent", "MyCustomAgent"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := RedactSensitiveHeaderData(tc.hideSensitiveData, tc.key, tc.value)
			assert.Equal(t, tc.expected, result, "Redacted value should match the expected outcome")
		})
	}
}

func TestHeadersToString(t *testing.T) {
	headers := http.Header{}
	headers.Set("Accept", "application/json")
	result := HeadersToString(headers)
	assert.Contains(t, result, "Accept: application/json")
}
