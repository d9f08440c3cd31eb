package domain

import (
	"regexp"
	"strings"
)

const handleMarker = "@"

var profileURLPattern = regexp.MustCompile(`(?i)tiktok\.com/@([^/?#\s]+)`)

// NormalizeHandle strips surrounding whitespace and every leading "@" and
// lower-cases the rest. A pasted profile URL is reduced to its handle.
// The result is empty when no handle is left.
func NormalizeHandle(raw string) string {
	s := strings.TrimSpace(raw)
	if m := profileURLPattern.FindStringSubmatch(s); len(m) > 1 {
		s = m[1]
	}

	for {
		s = strings.TrimSpace(s)
		if !strings.HasPrefix(s, handleMarker) {
			break
		}
		s = s[len(handleMarker):]
	}

	return strings.ToLower(s)
}
