// Package report formats lint results: golangci-lint style issue lines,
// statistics and a JSON export.
package report

import "sort"

// Linter is the FromLinter value of every issue atomcss reports.
const Linter = "atomcss"

// Severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Issue is a single lint finding.
type Issue struct {
	FromLinter  string   `json:"FromLinter"`
	Text        string   `json:"Text"`
	Severity    string   `json:"Severity"`
	SourceLines []string `json:"SourceLines"`
	Pos         Pos      `json:"Pos"`
}

// Pos locates an issue. Line and Column are 1-based; a zero Line means the
// issue concerns the file as a whole.
type Pos struct {
	Filename string `json:"Filename"`
	Line     int    `json:"Line"`
	Column   int    `json:"Column"`
}

// ClassCount is a class token with the number of times it was used.
type ClassCount struct {
	Class       string
	Occurrences int
}

// Result is everything a lint run produced.
type Result struct {
	Issues         []Issue
	TruncatedCount int // issues removed by Limits

	FilesScanned   int
	TokensFound    int // class tokens found in sources
	InvalidTokens  int
	UniqueClasses  int // distinct valid tokens
	AliasesChecked int
	TopClasses     []ClassCount

	Warnings []string
}

// Counts returns the number of errors and warnings in r.Issues.
func (r *Result) Counts() (errors, warnings int) {
	for _, issue := range r.Issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}

// ValidPercentage is the share of found tokens that are valid classes.
func (r *Result) ValidPercentage() float64 {
	if r.TokensFound == 0 {
		return 100
	}
	return float64(r.TokensFound-r.InvalidTokens) / float64(r.TokensFound) * 100
}

// Sort orders issues by file, line, then column.
func Sort(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i].Pos, issues[j].Pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

// Limits caps reported issues. Zero means unlimited.
type Limits struct {
	MaxIssuesPerLinter int
	MaxSameIssues      int
}

// Limit applies l to issues and returns the kept issues with the number
// removed.
func Limit(issues []Issue, l Limits) ([]Issue, int) {
	original := len(issues)

	if l.MaxSameIssues > 0 {
		seen := make(map[string]int)
		kept := make([]Issue, 0, len(issues))
		for _, issue := range issues {
			if seen[issue.Text] < l.MaxSameIssues {
				kept = append(kept, issue)
				seen[issue.Text]++
			}
		}
		issues = kept
	}

	if l.MaxIssuesPerLinter > 0 {
		perLinter := make(map[string]int)
		kept := make([]Issue, 0, len(issues))
		for _, issue := range issues {
			if perLinter[issue.FromLinter] < l.MaxIssuesPerLinter {
				kept = append(kept, issue)
				perLinter[issue.FromLinter]++
			}
		}
		issues = kept
	}

	return issues, original - len(issues)
}
