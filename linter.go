package atomcss

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"github.com/yacobolo/atomcss/internal/class"
	"github.com/yacobolo/atomcss/internal/extension/markup"
	"github.com/yacobolo/atomcss/internal/report"
)

// maxTopClasses bounds LintResult.TopClasses.
const maxTopClasses = 10

// LintOptions configures Lint.
type LintOptions struct {
	Setup

	// Root is the directory Paths are relative to. Defaults to ".".
	Root string
	// Paths lists source patterns. Defaults to DefaultInclude.
	Paths []string
	// IncludeGenerated also scans templ generated Go files.
	IncludeGenerated bool
	Limits           report.Limits
}

// LintResult holds the issues and statistics of a lint run.
type LintResult = report.Result

// Lint checks every class token found in sources and every alias member
// against the resolved configuration.
func Lint(opts LintOptions) (*LintResult, error) {
	ss, err := open(opts.Setup)
	if err != nil {
		return nil, err
	}
	log := ss.log.Named("lint")

	root := opts.Root
	if root == "" {
		root = "."
	}
	paths := opts.Paths
	if len(paths) == 0 {
		paths = DefaultInclude
	}

	files, stats, err := walkFiles(root, paths)
	if err != nil {
		return nil, fmt.Errorf("failed to scan files: %w", err)
	}

	result := &LintResult{}
	for _, p := range stats.EmptyPatterns {
		result.Warnings = append(result.Warnings, fmt.Sprintf("pattern %q matched no files", p))
	}

	ix := ss.runner.Index()
	scanner := ss.markup.Scanner()
	usage := make(map[string]int)

	for _, file := range files {
		if !opts.IncludeGenerated && markup.IsTemplGenerated(file) {
			continue
		}
		data, err := readFile(file)
		if err != nil {
			return nil, err
		}
		tokens, err := scanner.Scan(data)
		if err != nil {
			log.Warn("skipping unreadable file", zap.String("file", file), zap.Error(err))
			continue
		}
		result.FilesScanned++

		for _, tok := range tokens {
			result.TokensFound++
			if class.FromString(ix, tok.Value).Valid() {
				usage[tok.Value]++
				continue
			}
			result.InvalidTokens++
			result.Issues = append(result.Issues, report.Issue{
				FromLinter:  report.Linter,
				Text:        fmt.Sprintf(IssueInvalidClass, tok.Value),
				Severity:    report.SeverityError,
				SourceLines: []string{tok.Text},
				Pos:         report.Pos{Filename: file, Line: tok.Line, Column: tok.Column},
			})
		}
	}

	configName := opts.ConfigPath
	if configName == "" {
		configName = "config"
	}
	for _, a := range ss.runner.Config().Aliases {
		result.AliasesChecked++
		for _, member := range a.Classes {
			if class.FromString(ix, member).Valid() {
				continue
			}
			result.Issues = append(result.Issues, report.Issue{
				FromLinter: report.Linter,
				Text:       fmt.Sprintf(IssueInvalidAliasMember, a.Name, member),
				Severity:   report.SeverityWarning,
				Pos:        report.Pos{Filename: configName},
			})
		}
	}

	result.UniqueClasses = len(usage)
	result.TopClasses = topClasses(usage, maxTopClasses)

	report.Sort(result.Issues)
	result.Issues, result.TruncatedCount = report.Limit(result.Issues, opts.Limits)

	log.Debug("lint finished",
		zap.Int("files", result.FilesScanned),
		zap.Int("tokens", result.TokensFound),
		zap.Int("issues", len(result.Issues)),
	)
	return result, nil
}

// topClasses returns the n most used classes, ties in natural order.
func topClasses(usage map[string]int, n int) []report.ClassCount {
	out := make([]report.ClassCount, 0, len(usage))
	for c, count := range usage {
		out = append(out, report.ClassCount{Class: c, Occurrences: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Occurrences != out[j].Occurrences {
			return out[i].Occurrences > out[j].Occurrences
		}
		return natural.Less(out[i].Class, out[j].Class)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
