// Package utils provides common utility functions.
package utils

import (
	"net/http"
	"net/url"
)

// Microsoft's support pages answer bot user agents with a consent
// interstitial, so requests go out with a desktop browser identity.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// HTTPHelper provides HTTP utility functions.
type HTTPHelper struct{}

// NewHTTPHelper creates a new HTTP helper.
func NewHTTPHelper() *HTTPHelper {
	return &HTTPHelper{}
}

// IsValidURL reports whether s parses as an absolute http(s) URL.
func (h *HTTPHelper) IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// BuildHeaders creates HTTP headers with browser-like defaults.
func (h *HTTPHelper) BuildHeaders(customHeaders map[string]string) http.Header {
	headers := http.Header{}

	headers.Set("User-Agent", defaultUserAgent)
	headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	headers.Set("Accept-Language", "en-US,en;q=0.9")

	for key, value := range customHeaders {
		headers.Set(key, value)
	}

	return headers
}

// ResolveURL resolves a possibly relative href against the page it was
// found on. Unresolvable hrefs fall back to the base URL.
func (h *HTTPHelper) ResolveURL(base, href string) string {
	if href == "" {
		return base
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return base
	}

	ref, err := url.Parse(href)
	if err != nil {
		return base
	}

	return baseURL.ResolveReference(ref).String()
}
