package util

import (
	"strconv"
	"strings"
)

// SplitCommaSeparated splits a comma-separated string and trims whitespace from each element.
// Empty input returns nil.
func SplitCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// IntsToCSV renders ids as a comma-separated list, e.g. [1 2 3] -> "1,2,3".
func IntsToCSV(ids []int) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// CSVToInts parses a comma-separated list of integers. Elements that do not
// parse are skipped.
func CSVToInts(s string) []int {
	var out []int
	for _, p := range SplitCommaSeparated(s) {
		if n, err := strconv.Atoi(p); err == nil {
			out = append(out, n)
		}
	}
	return out
}
