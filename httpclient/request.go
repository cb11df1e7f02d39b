// httpclient/request.go
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/homekeeper/go-homekeeper-http-client/cookiejar"
	"github.com/homekeeper/go-homekeeper-http-client/csrftoken"
	"github.com/homekeeper/go-homekeeper-http-client/headers"
	"github.com/homekeeper/go-homekeeper-http-client/response"
	"github.com/homekeeper/go-homekeeper-http-client/status"
	"github.com/homekeeper/go-homekeeper-http-client/version"
	"go.uber.org/zap"
)

// RefreshEndpoint is the backend route that exchanges the refresh cookie for a
// renewed session. It is auth-exempt: a 401 from it never triggers another refresh.
const RefreshEndpoint = "/auth/refresh"

// RequestOptions carries the per-request knobs a caller may set. Caller headers
// merge over the client defaults; the CSRF header cannot be overridden.
type RequestOptions struct {
	Headers map[string]string
}

// supportedMethods is the set of HTTP methods the backend's REST surface uses.
var supportedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodHead:   true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
	http.MethodPatch:  true,
}

// DoRequest executes one logical request against the backend and unmarshals the
// response envelope into out. It transparently handles CSRF token attachment for
// state-mutating methods and performs at most one session-refresh-and-retry cycle
// when the backend answers 401 on a session-protected endpoint.
//
// Per invocation the client issues at most one CSRF token fetch, the original
// request, one refresh call, and one retry of the original request.
//
// Returns the final *http.Response (its body already consumed) and either nil, a
// *response.APIError for an HTTP-level failure, or the unwrapped transport error
// for connectivity failures. A refresh answering 205 yields the session-expired
// sentinel error and the caller should force a re-login.
func (c *Client) DoRequest(method, endpoint string, body, out any) (*http.Response, error) {
	return c.DoRequestWithOptions(context.Background(), method, endpoint, RequestOptions{}, body, out)
}

// DoRequestWithOptions is DoRequest with a caller-supplied context and per-request options.
func (c *Client) DoRequestWithOptions(ctx context.Context, method, endpoint string, opts RequestOptions, body, out any) (*http.Response, error) {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = http.MethodGet
	}
	if !supportedMethods[method] {
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	bodyBytes, err := marshalRequestBody(body)
	if err != nil {
		return nil, err
	}

	exempt := c.isAuthExempt(endpoint)

	// Auth endpoints never receive the CSRF header; the backend does not enforce
	// the double-submit check on its own login/register/logout/refresh routes.
	csrfValue := ""
	if status.IsCSRFProtectedMethod(method) && !exempt {
		csrfValue, err = c.CSRF.Ensure(func() (string, error) {
			return csrftoken.Fetch(ctx, c.http, c.config.BaseURL, c.Sugar)
		})
		if err != nil {
			return nil, err
		}
	}

	resp, err := c.send(ctx, method, endpoint, opts.Headers, bodyBytes, csrfValue)
	if err != nil {
		// Transport failures propagate unwrapped so callers can distinguish
		// connectivity problems from HTTP-level errors.
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !exempt {
		return c.refreshAndRetry(ctx, method, endpoint, opts.Headers, bodyBytes, csrfValue, resp, out)
	}

	return c.finish(resp, out)
}

// refreshAndRetry performs the single session-refresh cycle after a 401.
func (c *Client) refreshAndRetry(ctx context.Context, method, endpoint string, custom map[string]string, bodyBytes []byte, csrfValue string, original *http.Response, out any) (*http.Response, error) {
	// Capture the original failure before the refresh; the body is consumed here.
	originalErr := response.HandleAPIErrorResponse(original, c.Sugar)

	c.Sugar.Debugw("Session rejected, attempting refresh",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
	)

	refreshStatus, refreshErr := c.refreshSession(ctx)

	switch {
	case refreshErr != nil:
		// A refresh that never reached the backend is treated like any other
		// failed refresh: the original 401 is what the caller acts on.
		c.Sugar.Warnw("Session refresh failed at transport level", zap.Error(refreshErr))
		return original, originalErr

	case status.IsSessionExpiredStatusCode(refreshStatus):
		// The refresh token itself is gone; the CSRF cache is left intact since
		// the token may still be valid for a fresh login.
		c.Sugar.Infow("Session expired, re-login required", zap.String("endpoint", endpoint))
		return original, response.NewSessionExpiredError()

	case status.IsSuccessStatusCode(refreshStatus):
		c.Sugar.Debugw("Session refreshed, retrying original request",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
		)
		retryResp, retryErr := c.send(ctx, method, endpoint, custom, bodyBytes, csrfValue)
		if retryErr != nil {
			return nil, retryErr
		}
		// The retry's outcome is final, success or not. A second 401 does not
		// trigger another refresh.
		return c.finish(retryResp, out)

	default:
		// Hard refresh failure: surface the original 401, not the refresh status.
		c.Sugar.Warnw("Session refresh rejected",
			zap.Int("refresh_status", refreshStatus),
			zap.Int("original_status", original.StatusCode),
		)
		return original, originalErr
	}
}

// finish resolves a response that needs no further retry handling.
func (c *Client) finish(resp *http.Response, out any) (*http.Response, error) {
	if status.IsSuccessStatusCode(resp.StatusCode) {
		return resp, response.HandleAPISuccessResponse(resp, out, c.Sugar)
	}
	return resp, response.HandleAPIErrorResponse(resp, c.Sugar)
}

// send issues a single HTTP request carrying the client's default headers, any
// caller headers, and the CSRF header when a token is supplied.
func (c *Client) send(ctx context.Context, method, endpoint string, custom map[string]string, bodyBytes []byte, csrfValue string) (*http.Response, error) {
	var bodyReader io.Reader
	if len(bodyBytes) > 0 {
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+endpoint, bodyReader)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	h := headers.NewHeaderHandler(req, c.Sugar)
	h.SetDefaultHeaders(version.GetUserAgentHeader(), requestID)
	h.SetCallerHeaders(custom)
	if csrfValue != "" {
		h.SetCSRFToken(csrfValue)
	}
	h.LogHeaders(c.config.HideSensitiveData)

	startTime := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.Sugar.Errorw("Failed to send request",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Sugar.Debugw("Request sent",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.String("request_id", requestID),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", time.Since(startTime)),
	)

	if setCookies := cookiejar.CookiesFromHeader(resp.Header); len(setCookies) > 0 {
		c.Sugar.Debugw("Response set cookies",
			zap.Any("cookies", cookiejar.RedactSensitiveCookies(setCookies)),
		)
	}

	return resp, nil
}

// refreshSession calls the refresh endpoint and reports its status code. The
// renewed session cookie, when granted, lands in the cookie jar automatically.
func (c *Client) refreshSession(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+RefreshEndpoint, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.GetUserAgentHeader())

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

// marshalRequestBody serializes the request payload. Strings and byte slices pass
// through untouched so callers may supply pre-serialized bodies.
func marshalRequestBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		return data, nil
	}
}
