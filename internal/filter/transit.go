package filter

import (
	"regexp"
	"strings"
)

// Transit summaries follow "<LINES> at <station>" with lines slash-joined
// ("A/C/E at 14th St-8th Av; L at 6th Av"); bus summaries follow
// "<routes> at <stop>" with routes comma-joined ("M14, M23 at 1st Ave").
// Segments are separated by semicolons. Anything that does not fit the
// pattern parses to nothing, which an active transit filter treats as
// no-match.

var atPatternRe = regexp.MustCompile(`(?i)^\s*(.+?)\s+at\s+`)

// SubwayLines extracts the set of subway line tokens from a clinic's transit
// summary. Tokens are uppercased single lines ("A", "C", "7").
func SubwayLines(transit string) []string {
	return parseRouteSets(transit, "/")
}

// BusRoutes extracts the set of bus route tokens ("M14", "BX12") from a
// clinic's bus summary.
func BusRoutes(bus string) []string {
	return parseRouteSets(bus, ",")
}

func parseRouteSets(text, sep string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, segment := range strings.Split(text, ";") {
		m := atPatternRe.FindStringSubmatch(segment)
		if m == nil {
			continue
		}
		for _, token := range strings.Split(m[1], sep) {
			token = strings.ToUpper(strings.TrimSpace(token))
			if token == "" {
				continue
			}
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			out = append(out, token)
		}
	}
	return out
}
