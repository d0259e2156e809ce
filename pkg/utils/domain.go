package utils

import "regexp"

// Scheme and userinfo are optional; the host ends at ':', '/' or '?'.
var domainPattern = regexp.MustCompile(`^(?:https?://)?(?:[^@\n]+@)?([^:/\n?]+)`)

// ExtractDomain returns the host component of url, or "" when none
// can be found.
func ExtractDomain(url string) string {
	match := domainPattern.FindStringSubmatch(url)
	if match == nil {
		return ""
	}
	return match[1]
}
