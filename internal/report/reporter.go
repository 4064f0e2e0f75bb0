package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Options configures the reporters.
type Options struct {
	Color           string // auto, always or never
	PrintLines      bool   // source line with a caret under each issue
	PrintLinterName bool   // "(atomcss)" suffix
}

// Reporter prints issues in golangci-lint format.
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

// NewReporter returns a reporter writing to w.
func NewReporter(w io.Writer, opts Options) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       shouldUseColors(opts.Color),
		printLines:      opts.PrintLines,
		printLinterName: opts.PrintLinterName,
	}
}

func shouldUseColors(mode string) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" || os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	if fi, err := os.Stdout.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		return true
	}
	return false
}

// UseColors reports whether colors are enabled.
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintIssues sorts and prints issues.
func (r *Reporter) PrintIssues(issues []Issue) {
	Sort(issues)
	for _, issue := range issues {
		r.printIssue(issue)
	}
}

// printIssue writes "file:line:col: message (linter)" and the source line.
func (r *Reporter) printIssue(issue Issue) {
	location := issue.Pos.Filename + ":"
	if issue.Pos.Line > 0 {
		location = fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)
	}

	suffix := ""
	if r.printLinterName {
		suffix = fmt.Sprintf(" (%s)", issue.FromLinter)
	}

	text := issue.Text
	if issue.Severity == SeverityWarning {
		text = RenderStyle(StyleYellow, "warning: ", r.useColors) + text
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		text,
		RenderStyle(StyleGray, suffix, r.useColors))

	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}
		caret := buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator returns a "^" under column of sourceLine, copying
// tabs from the prefix so the caret lines up.
func buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}
	prefixLen := min(column-1, len(sourceLine))

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}
	return padding.String() + "^"
}

// PrintSummary prints issue counts by severity and by linter.
func (r *Reporter) PrintSummary(result *Result) {
	total := len(result.Issues)
	errors, warnings := result.Counts()

	fmt.Fprintln(r.w)

	var head string
	switch {
	case errors > 0 && warnings > 0:
		head = fmt.Sprintf("%s (%s, %s",
			pluralizeCount(total, "issue", "issues"),
			pluralizeCount(errors, "error", "errors"),
			pluralizeCount(warnings, "warning", "warnings"))
		if result.TruncatedCount > 0 {
			head += fmt.Sprintf("; %s truncated", pluralizeCount(result.TruncatedCount, "issue", "issues"))
		}
		head += "):"
	case result.TruncatedCount > 0:
		head = fmt.Sprintf("%s (%s truncated):",
			pluralizeCount(total, "issue", "issues"),
			pluralizeCount(result.TruncatedCount, "issue", "issues"))
	default:
		head = pluralizeCount(total, "issue", "issues") + ":"
	}
	if errors > 0 {
		head = RenderStyle(StyleRed, head, r.useColors)
	} else if total == 0 {
		head = RenderStyle(StyleGreen, head, r.useColors)
	}
	fmt.Fprintln(r.w, head)

	linterCounts := make(map[string]int)
	for _, issue := range result.Issues {
		linterCounts[issue.FromLinter]++
	}
	linters := make([]string, 0, len(linterCounts))
	for name := range linterCounts {
		linters = append(linters, name)
	}
	sort.Strings(linters)
	for _, name := range linters {
		fmt.Fprintf(r.w, "* %s: %d\n", name, linterCounts[name])
	}

	if total > 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: Run with --output-format full to see statistics", r.useColors))
	}
}

func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
