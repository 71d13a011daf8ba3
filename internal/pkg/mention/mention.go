// Package mention extracts @-mention tokens from free text.
package mention

import "regexp"

var mentionRe = regexp.MustCompile(`@(\w+)`)

// Extract returns the names mentioned as "@name" tokens, with the leading "@"
// stripped. Tokens are returned in order of appearance and are not
// deduplicated; resolving them against known users is the caller's job.
func Extract(text string) []string {
	matches := mentionRe.FindAllStringSubmatch(text, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}
