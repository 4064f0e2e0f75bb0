package report

import (
	"fmt"
	"io"
	"strings"
)

// VerboseReporter prints statistics about a lint run.
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter returns a statistics reporter writing to w.
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{w: w, useColors: useColors}
}

// PrintStatistics prints scan counters.
func (r *VerboseReporter) PrintStatistics(result *Result) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Lint Statistics", r.useColors))
	fmt.Fprintln(r.w, "---------------")

	fmt.Fprintf(r.w, "Files Scanned:    %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "Class Tokens:     %d\n", result.TokensFound)
	fmt.Fprintf(r.w, "Invalid Tokens:   %d\n", result.InvalidTokens)
	fmt.Fprintf(r.w, "Distinct Classes: %d\n", result.UniqueClasses)
	fmt.Fprintf(r.w, "Aliases Checked:  %d\n", result.AliasesChecked)
}

// PrintValidity prints the share of valid tokens as a bar.
func (r *VerboseReporter) PrintValidity(result *Result) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Valid Tokens", r.useColors))
	fmt.Fprintln(r.w, "------------")
	fmt.Fprintln(r.w, progressBar(result.ValidPercentage()))
}

// PrintTopClasses lists the most used classes.
func (r *VerboseReporter) PrintTopClasses(result *Result) {
	if len(result.TopClasses) == 0 {
		return
	}

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, RenderStyle(StyleGreen, "Most Used Classes", r.useColors))
	fmt.Fprintln(r.w, "-----------------")
	for i, c := range result.TopClasses {
		fmt.Fprintf(r.w, "%d. %s - %d occurrences\n", i+1, c.Class, c.Occurrences)
	}
}

// PrintWarnings lists run-level warnings.
func (r *VerboseReporter) PrintWarnings(result *Result) {
	if len(result.Warnings) == 0 {
		return
	}

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "--------")
	for _, warning := range result.Warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}

func progressBar(percentage float64) string {
	const width = 20
	filled := int(percentage / 100 * width)

	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < width; i++ {
		if i < filled {
			b.WriteString("█")
		} else {
			b.WriteString("░")
		}
	}
	fmt.Fprintf(&b, "] %.1f%%", percentage)
	return b.String()
}
