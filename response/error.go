// response/error.go
// This package provides utility functions and structures for handling HomeKeeper
// backend responses: the success envelope convention and error responses.
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/antchfx/xmlquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// APIError represents an HTTP-level failure from the HomeKeeper backend.
type APIError struct {
	StatusCode int    `json:"status_code"` // HTTP status code
	Message    string `json:"message"`     // Summary of the error
}

// Error returns a string representation of the APIError, making it compatible with the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		e.Message = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("homekeeper api error: status=%d message=%s", e.StatusCode, e.Message)
}

// SessionExpiredMessage is the message carried by the 205 sentinel error returned
// when the refresh endpoint reports the refresh token itself is no longer valid.
const SessionExpiredMessage = "Session expired, please log in again"

// NewSessionExpiredError builds the sentinel error for an exhausted session.
func NewSessionExpiredError() *APIError {
	return &APIError{
		StatusCode: http.StatusResetContent,
		Message:    SessionExpiredMessage,
	}
}

// errorEnvelope mirrors the backend's error body convention: {"error": "..."}.
type errorEnvelope struct {
	Error string `json:"error"`
}

// HandleAPIErrorResponse builds an APIError from a non-2xx HTTP response and logs it.
// The error message is extracted from the body based on its content type: the JSON
// error envelope, visible text from an HTML error page (Express emits these from its
// default error handler), XML text nodes, or the plain-text body. Anything else
// falls back to a generic phrase.
func HandleAPIErrorResponse(resp *http.Response, sugar *zap.SugaredLogger) *APIError {
	apiError := &APIError{
		StatusCode: resp.StatusCode,
		Message:    genericErrorMessage(resp.StatusCode),
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		sugar.Errorw("Failed to read error response body", zap.Error(err))
		return apiError
	}
	resp.Body.Close()

	mimeType, _ := parseHeader(resp.Header.Get("Content-Type"))
	switch mimeType {
	case "application/json":
		parseJSONErrorResponse(bodyBytes, apiError)
	case "text/html":
		parseHTMLErrorResponse(bodyBytes, apiError)
	case "application/xml", "text/xml":
		parseXMLErrorResponse(bodyBytes, apiError)
	case "text/plain":
		parseTextErrorResponse(bodyBytes, apiError)
	}

	sugar.Debugw("API error response",
		zap.Int("status_code", apiError.StatusCode),
		zap.String("message", apiError.Message),
	)

	return apiError
}

// genericErrorMessage is used whenever the body carries no usable error detail.
func genericErrorMessage(statusCode int) string {
	return fmt.Sprintf("request failed with status %d", statusCode)
}

// parseJSONErrorResponse extracts the message from the backend's {"error": "..."} envelope.
func parseJSONErrorResponse(bodyBytes []byte, apiError *APIError) {
	var envelope errorEnvelope
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		return
	}
	if envelope.Error != "" {
		apiError.Message = envelope.Error
	}
}

// parseHTMLErrorResponse extracts meaningful information from an HTML error page,
// concatenating the text found within <p> and <pre> tags.
func parseHTMLErrorResponse(bodyBytes []byte, apiError *APIError) {
	doc, err := html.Parse(bytes.NewReader(bodyBytes))
	if err != nil {
		return
	}

	var messages []string
	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "p" || n.Data == "pre") {
			var content strings.Builder
			var collect func(*html.Node)
			collect = func(c *html.Node) {
				if c.Type == html.TextNode {
					content.WriteString(strings.TrimSpace(c.Data) + " ")
				}
				for child := c.FirstChild; child != nil; child = child.NextSibling {
					collect(child)
				}
			}
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				collect(child)
			}
			if text := strings.TrimSpace(content.String()); text != "" {
				messages = append(messages, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)

	if len(messages) > 0 {
		apiError.Message = strings.Join(messages, "; ")
	}
}

// parseXMLErrorResponse accumulates text nodes from an XML error body.
func parseXMLErrorResponse(bodyBytes []byte, apiError *APIError) {
	doc, err := xmlquery.Parse(bytes.NewReader(bodyBytes))
	if err != nil {
		return
	}

	var messages []string
	var traverse func(*xmlquery.Node)
	traverse = func(n *xmlquery.Node) {
		if n.Type == xmlquery.TextNode && strings.TrimSpace(n.Data) != "" {
			messages = append(messages, strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}

	traverse(doc)

	if len(messages) > 0 {
		apiError.Message = strings.Join(messages, "; ")
	}
}

// parseTextErrorResponse uses the plain text body as the error message.
func parseTextErrorResponse(bodyBytes []byte, apiError *APIError) {
	if text := strings.TrimSpace(string(bodyBytes)); text != "" {
		apiError.Message = text
	}
}
