package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/matsen/bibscope/internal/index"
	"github.com/segmentio/encoding/json"
)

const (
	DefaultSearchLimit = 50 // Default limit for search/list commands
	SearchTitleMaxLen  = 70 // Title truncation in search result summaries
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// printRows prints report rows as aligned "label  value" lines.
func printRows(rows []index.Row) {
	width := 0
	for _, r := range rows {
		if !r.IsSeparator() && len(r.Label) > width {
			width = len(r.Label)
		}
	}
	for _, r := range rows {
		if r.IsSeparator() {
			fmt.Println()
			continue
		}
		fmt.Printf("%-*s  %s\n", width, r.Label, r.Value)
	}
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// parseYearRange parses a year specification into from/to values.
// Supported formats: "2024", "2020:2024", "2020:", ":2024"
func parseYearRange(spec string) (from, to int, err error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, 0, nil
	}

	if strings.Contains(spec, ":") {
		parts := strings.SplitN(spec, ":", 2)
		if parts[0] != "" {
			from, err = strconv.Atoi(parts[0])
			if err != nil {
				return 0, 0, fmt.Errorf("invalid start year %q", parts[0])
			}
		}
		if parts[1] != "" {
			to, err = strconv.Atoi(parts[1])
			if err != nil {
				return 0, 0, fmt.Errorf("invalid end year %q", parts[1])
			}
		}
		return from, to, nil
	}

	year, err := strconv.Atoi(spec)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q", spec)
	}
	return year, year, nil
}

// parseDocumentList parses "0,3,5-7" into row numbers.
func parseDocumentList(spec string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		a, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid document %q", part)
		}
		if !isRange {
			out = append(out, a)
			continue
		}
		b, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil || b < a {
			return nil, fmt.Errorf("invalid document range %q", part)
		}
		for i := a; i <= b; i++ {
			out = append(out, i)
		}
	}
	return out, nil
}
