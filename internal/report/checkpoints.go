package report

import (
	"strconv"
	"strings"
)

// ParseCheckpoints parses the configured checkpoint list: comma-separated,
// optionally signed integers, tolerating whitespace around each token.
// Malformed tokens are dropped rather than failing the run, so a typo in
// the configuration degrades to a skipped entry. Order is preserved and
// duplicates are kept.
func ParseCheckpoints(raw string) []int {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var checkpoints []int
	for _, token := range strings.Split(raw, ",") {
		value, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			continue
		}
		checkpoints = append(checkpoints, value)
	}
	return checkpoints
}
