package report

import (
	"fmt"
	"io"
)

// Format is a lint output format.
type Format string

const (
	// FormatIssues prints issues only, golangci-lint style.
	FormatIssues Format = "issues"
	// FormatSummary prints statistics only.
	FormatSummary Format = "summary"
	// FormatFull prints issues and statistics.
	FormatFull Format = "full"
	// FormatJSON exports everything as JSON.
	FormatJSON Format = "json"
)

// ParseFormat maps the output-format flag to a Format. Quiet runs use the
// issues format, whose output the caller discards. An empty flag selects
// the issues format.
func ParseFormat(flag string, quiet bool) (Format, error) {
	if quiet {
		return FormatIssues, nil
	}
	switch Format(flag) {
	case "", FormatIssues:
		return FormatIssues, nil
	case FormatSummary, FormatFull, FormatJSON:
		return Format(flag), nil
	}
	return "", fmt.Errorf("unknown output format %q (want issues, summary, full or json)", flag)
}

// Write renders result to w in format.
func Write(w io.Writer, result *Result, format Format, opts Options) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, result)

	case FormatSummary:
		v := NewVerboseReporter(w, shouldUseColors(opts.Color))
		writeStatistics(v, result)

	case FormatFull:
		r := NewReporter(w, opts)
		r.PrintIssues(result.Issues)
		r.PrintSummary(result)
		writeStatistics(NewVerboseReporter(w, r.UseColors()), result)

	default:
		r := NewReporter(w, opts)
		r.PrintIssues(result.Issues)
		r.PrintSummary(result)
	}
	return nil
}

func writeStatistics(v *VerboseReporter, result *Result) {
	v.PrintStatistics(result)
	v.PrintValidity(result)
	v.PrintTopClasses(result)
	v.PrintWarnings(result)
}
