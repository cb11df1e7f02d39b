// cookiejar/cookiejar.go

/* The cookiejar package manages the cookie side of HomeKeeper's session transport.
The backend issues httpOnly access and refresh cookies plus a readable CSRF
double-submit cookie; the client never touches their values directly and instead
relies on the cookie jar travelling with every request, the Go equivalent of a
browser fetch with credentials "include". The package also redacts session cookie
values before they reach the logs. */

package cookiejar

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"go.uber.org/zap"
)

const (
	// AccessTokenCookie is the httpOnly cookie carrying the short-lived session token.
	AccessTokenCookie = "accessToken"

	// RefreshTokenCookie is the httpOnly cookie exchanged at the refresh endpoint.
	RefreshTokenCookie = "refreshToken"

	// CSRFCookie is the readable double-submit cookie. Its value is mirrored into a
	// request header, so it is deliberately not treated as sensitive.
	CSRFCookie = "csrfToken"
)

// SetupCookieJar attaches a fresh cookie jar to the HTTP client. Session handling
// does not work without one, so failure here is fatal to client construction.
func SetupCookieJar(client *http.Client, sugar *zap.SugaredLogger) error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		sugar.Errorw("Failed to create cookie jar", zap.Error(err))
		return fmt.Errorf("setupCookieJar failed: %w", err)
	}
	client.Jar = jar
	return nil
}

// RedactSensitiveCookies redacts session cookie values so they can be logged.
// It takes a slice of *http.Cookie and returns the same slice with sensitive
// values replaced.
func RedactSensitiveCookies(cookies []*http.Cookie) []*http.Cookie {
	sensitiveCookieNames := map[string]bool{
		AccessTokenCookie:  true,
		RefreshTokenCookie: true,
	}

	for _, cookie := range cookies {
		if sensitiveCookieNames[cookie.Name] {
			cookie.Value = "REDACTED"
		}
	}

	return cookies
}

// CookiesFromHeader converts Set-Cookie headers into []*http.Cookie. Useful when
// inspecting cookies delivered on a response.
func CookiesFromHeader(header http.Header) []*http.Cookie {
	cookies := []*http.Cookie{}
	for _, cookieHeader := range header["Set-Cookie"] {
		if cookie := ParseCookieHeader(cookieHeader); cookie != nil {
			cookies = append(cookies, cookie)
		}
	}
	return cookies
}

// ParseCookieHeader parses a single Set-Cookie header and returns an *http.Cookie.
func ParseCookieHeader(header string) *http.Cookie {
	headerParts := strings.Split(header, ";")
	if len(headerParts) > 0 {
		cookieParts := strings.SplitN(headerParts[0], "=", 2)
		if len(cookieParts) == 2 {
			return &http.Cookie{Name: cookieParts[0], Value: cookieParts[1]}
		}
	}
	return nil
}
