package atomcss

import "github.com/yacobolo/atomcss/internal/report"

// Issue is a single lint finding in golangci-lint format.
type Issue = report.Issue

// IssuePos locates an issue.
type IssuePos = report.Pos

// Issue severities.
const (
	SeverityError   = report.SeverityError
	SeverityWarning = report.SeverityWarning
)

// Issue messages.
const (
	IssueInvalidClass       = "invalid class token %q"
	IssueInvalidAliasMember = "alias %q member %q is not a valid class token"
)
