package httputil

import (
	"fmt"
	"net/url"
)

// ValidateURL checks that a URL is well-formed, absolute and uses HTTP(S).
// Embedded players are frequently served over plain HTTP, so both schemes
// are accepted; anything else (javascript:, data:, ftp:) is rejected.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("malformed URL: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("only HTTP(S) URLs are allowed, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}
