// Utilities for pulling credentials out of cURL commands copied from browser dev tools.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	curlHeaderRe = regexp.MustCompile(`(?:-H|--header)\s+(?:'([^']+)'|"([^"]+)")`)
	curlURLRe    = regexp.MustCompile(`(?:'|")?(https?://[^\s'"]+)(?:'|")?`)
)

// CurlRequest is the subset of a cURL invocation needed to reuse an API session.
type CurlRequest struct {
	URL     string
	Headers map[string]string
}

// ParseCurlFile reads a file containing a cURL command and extracts its request.
func ParseCurlFile(path string) (*CurlRequest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}
	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string and extracts the URL and headers.
//
// Header names are canonicalized to lower case.
func ParseCurlCommand(data []byte) (*CurlRequest, error) {
	cmd := strings.ReplaceAll(string(data), "\\\n", " ")
	cmd = strings.ReplaceAll(cmd, "\\\r\n", " ")

	req := &CurlRequest{Headers: make(map[string]string)}
	for _, m := range curlHeaderRe.FindAllStringSubmatch(cmd, -1) {
		line := m[1]
		if line == "" {
			line = m[2]
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		req.Headers[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}

	if m := curlURLRe.FindStringSubmatch(cmd); m != nil {
		req.URL = m[1]
	}

	if len(req.Headers) == 0 && req.URL == "" {
		return nil, fmt.Errorf("%w: no headers or URL found in curl command", ErrInvalidInput)
	}
	return req, nil
}

// BearerToken returns the token from the Authorization header.
func (c *CurlRequest) BearerToken() (string, error) {
	auth, ok := c.Headers["authorization"]
	if !ok {
		return "", fmt.Errorf("%w: no authorization header in curl command", ErrInvalidInput)
	}

	scheme, token, ok := strings.Cut(auth, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("%w: authorization header is not a bearer token", ErrInvalidInput)
	}
	return strings.TrimSpace(token), nil
}
