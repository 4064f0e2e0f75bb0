package atomcss

import (
	"io"

	"github.com/yacobolo/atomcss/internal/report"
)

// OutputFormat is a lint output format.
type OutputFormat = report.Format

// Output formats.
const (
	OutputIssues  = report.FormatIssues
	OutputSummary = report.FormatSummary
	OutputFull    = report.FormatFull
	OutputJSON    = report.FormatJSON
)

// DetermineOutputFormat maps the output-format flag to a format. Quiet runs
// always use the issues format.
func DetermineOutputFormat(formatFlag string, quiet bool) (OutputFormat, error) {
	return report.ParseFormat(formatFlag, quiet)
}

// WriteOutput renders result in format.
func WriteOutput(w io.Writer, result *LintResult, format OutputFormat, opts report.Options) error {
	return report.Write(w, result, format, opts)
}
