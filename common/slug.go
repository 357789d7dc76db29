package common

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses every run of other characters into a
// single hyphen. The result is cut to at most max bytes; max <= 0 means no limit.
func Slugify(s string, max int) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	slug := strings.Trim(nonSlugChars.ReplaceAllString(lower, "-"), "-")
	if max > 0 && len(slug) > max {
		slug = strings.TrimRight(slug[:max], "-")
	}
	return slug
}
