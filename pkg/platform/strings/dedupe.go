// Package strings holds small string helpers shared by configuration code.
package strings

import (
	"slices"
	"strings"
)

// DedupeAndTrim trims every element and drops blanks and repeats, keeping the
// first occurrence order.
func DedupeAndTrim(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// SplitList parses a comma-separated setting such as KAFKA_BROKERS.
// A blank input yields nil.
func SplitList(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	return DedupeAndTrim(strings.Split(csv, ","))
}
