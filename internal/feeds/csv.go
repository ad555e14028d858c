package feeds

import "strings"

// splitFeedLine splits one feed line on commas or tabs, honoring double
// quotes so commas inside quoted fields survive. encoding/csv is not used
// here: affiliate feeds mix delimiters and quote styles freely, and a strict
// reader would abort the batch instead of skipping the bad row.
func splitFeedLine(line string) []string {
	var out []string
	var cur strings.Builder
	inQuotes := false
	for _, c := range line {
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case !inQuotes && (c == ',' || c == '\t'):
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(c)
		}
	}
	out = append(out, strings.TrimSpace(cur.String()))
	return out
}

// findColumn resolves a column index by candidate header names. Matching is
// case- and whitespace-insensitive and checks containment in both directions;
// the first candidate that matches any header wins.
func findColumn(headers []string, names ...string) int {
	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ReplaceAll(strings.ToLower(h), " ", "")
	}
	for _, name := range names {
		n := strings.ReplaceAll(strings.ToLower(name), " ", "")
		for i, h := range lower {
			if h == n || strings.Contains(h, n) || strings.Contains(n, h) {
				return i
			}
		}
	}
	return -1
}

// cell returns a row value by index, tolerating short rows.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
