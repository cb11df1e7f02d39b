// redirecthandler/redirecthandler_test.go
package redirecthandler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func request(t *testing.T, method, rawURL string) *http.Request {
	t.Helper()
	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	return &http.Request{Method: method, URL: parsed}
}

// TestRedirectHandler_CheckRedirect covers the redirect policy: mutating methods and
// cross-host hops are never followed, and the redirect count is bounded.
func TestRedirectHandler_CheckRedirect(t *testing.T) {
	handler := NewRedirectHandler(zap.NewNop().Sugar(), 3)

	tests := []struct {
		name        string
		req         *http.Request
		via         []*http.Request
		expectedErr error
	}{
		{
			name:        "GET same host is followed",
			req:         request(t, http.MethodGet, "http://api.homekeeper.test/new"),
			via:         []*http.Request{request(t, http.MethodGet, "http://api.homekeeper.test/old")},
			expectedErr: nil,
		},
		{
			name:        "POST is not followed",
			req:         request(t, http.MethodPost, "http://api.homekeeper.test/new"),
			via:         []*http.Request{request(t, http.MethodPost, "http://api.homekeeper.test/old")},
			expectedErr: http.ErrUseLastResponse,
		},
		{
			name:        "cross host is refused",
			req:         request(t, http.MethodGet, "http://evil.test/steal"),
			via:         []*http.Request{request(t, http.MethodGet, "http://api.homekeeper.test/old")},
			expectedErr: http.ErrUseLastResponse,
		},
		{
			name: "maximum redirects reached",
			req:  request(t, http.MethodGet, "http://api.homekeeper.test/d"),
			via: []*http.Request{
				request(t, http.MethodGet, "http://api.homekeeper.test/a"),
				request(t, http.MethodGet, "http://api.homekeeper.test/b"),
				request(t, http.MethodGet, "http://api.homekeeper.test/c"),
			},
			expectedErr: &MaxRedirectsError{MaxRedirects: 3},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := handler.checkRedirect(tc.req, tc.via)
			assert.Equal(t, tc.expectedErr, err)
		})
	}
}

func TestSetupRedirectHandler(t *testing.T) {
	sugar := zap.NewNop().Sugar()

	t.Run("disabled redirects return last response", func(t *testing.T) {
		client := &http.Client{}
		require.NoError(t, SetupRedirectHandler(client, false, 0, sugar))
		require.NotNil(t, client.CheckRedirect)
		assert.Equal(t, http.ErrUseLastResponse, client.CheckRedirect(nil, nil))
	})

	t.Run("invalid max redirects", func(t *testing.T) {
		client := &http.Client{}
		assert.Error(t, SetupRedirectHandler(client, true, 0, sugar))
	})

	t.Run("enabled redirects install policy", func(t *testing.T) {
		client := &http.Client{}
		require.NoError(t, SetupRedirectHandler(client, true, 5, sugar))
		assert.NotNil(t, client.CheckRedirect)
	})
}

func TestMaxRedirectsError(t *testing.T) {
	err := &MaxRedirectsError{MaxRedirects: 7}
	assert.Contains(t, err.Error(), "7")
}
