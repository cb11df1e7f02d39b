// status.go
// This package provides utility functions for classifying HTTP methods and status
// codes as they relate to the HomeKeeper backend's session and CSRF contract.
package status

import (
	"net/http"
)

// csrfProtectedMethods is the set of state-mutating HTTP methods the HomeKeeper
// backend enforces the CSRF double-submit check on.
var csrfProtectedMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
	http.MethodPatch:  true,
}

// IsCSRFProtectedMethod checks if the provided HTTP method requires a CSRF token.
// The method is expected to be uppercase, matching net/http's method constants.
func IsCSRFProtectedMethod(method string) bool {
	return csrfProtectedMethods[method]
}

// IsSuccessStatusCode checks if the provided HTTP status code signals success (2xx).
func IsSuccessStatusCode(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// IsSessionExpiredStatusCode checks for the sentinel status the refresh endpoint
// returns when the refresh token itself is invalid and a re-login is required.
func IsSessionExpiredStatusCode(statusCode int) bool {
	return statusCode == http.StatusResetContent
}

// IsRedirectStatusCode checks if the provided HTTP status code is one of the redirect codes.
// Redirect status codes instruct the client to make a new request to a different URI,
// as defined in the response's Location header.
func IsRedirectStatusCode(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}

// IsPermanentRedirect checks if the provided HTTP status code is one of the permanent redirect codes.
func IsPermanentRedirect(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}
