// Package mention extracts @username candidates from free text. It is pure
// text scanning: resolving candidates against real users and filtering
// self-mentions is the fan-out engine's job.
package mention

import (
	"regexp"
)

var pattern = regexp.MustCompile(`@(\w+)`)

// Scan returns the distinct usernames mentioned in text, in order of first
// appearance. Repeated mentions of the same name collapse to one entry.
func Scan(text string) []string {
	matches := pattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := m[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
