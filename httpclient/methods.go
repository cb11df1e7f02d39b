// httpclient/methods.go
package httpclient

import "net/http"

// Get performs a GET request against the backend and unmarshals the envelope into out.
func (c *Client) Get(endpoint string, out any) (*http.Response, error) {
	return c.DoRequest(http.MethodGet, endpoint, nil, out)
}

// Post performs a POST request, carrying the CSRF header on non-auth endpoints.
func (c *Client) Post(endpoint string, body, out any) (*http.Response, error) {
	return c.DoRequest(http.MethodPost, endpoint, body, out)
}

// Put performs a PUT request, carrying the CSRF header on non-auth endpoints.
func (c *Client) Put(endpoint string, body, out any) (*http.Response, error) {
	return c.DoRequest(http.MethodPut, endpoint, body, out)
}

// Patch performs a PATCH request, carrying the CSRF header on non-auth endpoints.
func (c *Client) Patch(endpoint string, body, out any) (*http.Response, error) {
	return c.DoRequest(http.MethodPatch, endpoint, body, out)
}

// Delete performs a DELETE request, carrying the CSRF header on non-auth endpoints.
func (c *Client) Delete(endpoint string, out any) (*http.Response, error) {
	return c.DoRequest(http.MethodDelete, endpoint, nil, out)
}
