package utils

import (
	"net/url"
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`https?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\\(\\),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`)

// GetOrigin returns the scheme://host part of a URL.
func GetOrigin(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}

// FixURLsInText repairs links where an absolute URL ended up glued onto
// the page origin during extraction, collapsing the duplicated
// origin+scheme prefix back to the origin.
func FixURLsInText(text, baseURL string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	malformed := baseURL + "https"

	for _, u := range urlPattern.FindAllString(text, -1) {
		if strings.Contains(u, malformed) {
			fixed := strings.Replace(u, malformed, baseURL, 1)
			text = strings.ReplaceAll(text, u, fixed)
		}
	}
	return text
}
