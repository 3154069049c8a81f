package util

import (
	"fmt"
	"net/url"
	"strings"
)

// DomainFromURL derives the bare domain from an article URL, stripping a
// leading "www.". Returns an error when the URL does not parse to a host.
func DomainFromURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	host := parsed.Hostname()
	if host == "" {
		return "", fmt.Errorf("no host in URL: %q", rawURL)
	}
	return strings.TrimPrefix(host, "www."), nil
}
