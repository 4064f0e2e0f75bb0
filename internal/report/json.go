package report

import (
	"io"
	"time"

	"github.com/goccy/go-json"
)

// JSONOutput is the schema of the json format.
type JSONOutput struct {
	Version    string      `json:"version"`
	Timestamp  string      `json:"timestamp"`
	Summary    JSONSummary `json:"summary"`
	Stats      JSONStats   `json:"stats"`
	Issues     []JSONIssue `json:"issues"`
	TopClasses []JSONClass `json:"top_classes"`
}

// JSONSummary holds issue counts.
type JSONSummary struct {
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	Truncated    int `json:"truncated"`
	FilesScanned int `json:"files_scanned"`
}

// JSONStats holds scan counters.
type JSONStats struct {
	TokensFound     int     `json:"tokens_found"`
	InvalidTokens   int     `json:"invalid_tokens"`
	UniqueClasses   int     `json:"unique_classes"`
	AliasesChecked  int     `json:"aliases_checked"`
	ValidPercentage float64 `json:"valid_percentage"`
}

// JSONIssue is one issue.
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"`
}

// JSONClass is a class token with its use count.
type JSONClass struct {
	Class       string `json:"class"`
	Occurrences int    `json:"occurrences"`
}

// WriteJSON writes result as indented JSON.
func WriteJSON(w io.Writer, result *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildJSONOutput(result, time.Now()))
}

func buildJSONOutput(result *Result, now time.Time) JSONOutput {
	errors, warnings := result.Counts()

	issues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		issues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		}
	}

	top := make([]JSONClass, len(result.TopClasses))
	for i, c := range result.TopClasses {
		top[i] = JSONClass{Class: c.Class, Occurrences: c.Occurrences}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: now.Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			Errors:       errors,
			Warnings:     warnings,
			Truncated:    result.TruncatedCount,
			FilesScanned: result.FilesScanned,
		},
		Stats: JSONStats{
			TokensFound:     result.TokensFound,
			InvalidTokens:   result.InvalidTokens,
			UniqueClasses:   result.UniqueClasses,
			AliasesChecked:  result.AliasesChecked,
			ValidPercentage: result.ValidPercentage(),
		},
		Issues:     issues,
		TopClasses: top,
	}
}
