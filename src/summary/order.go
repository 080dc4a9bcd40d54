package summary

import (
	"regexp"
	"strconv"
)

var sourceLinkRe = regexp.MustCompile(`\]\(<?https://(?:\w+\.)?discord(?:app)?\.com/channels/[^/\s)]+/\d+/(\d+)>?\)`)

// SourceIDs extracts message ids from markdown source links, in order of appearance.
func SourceIDs(summary string) []string {
	matches := sourceLinkRe.FindAllStringSubmatch(summary, -1)
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m[1])
	}
	return ids
}

// NewestFirst reports whether the cited message ids never increase. Snowflakes grow with time,
// so this checks the bullets run newest to oldest. Unparseable ids are skipped.
func NewestFirst(ids []string) bool {
	var prev uint64
	seen := false
	for _, id := range ids {
		n, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			continue
		}
		if seen && n > prev {
			return false
		}
		prev, seen = n, true
	}
	return true
}
