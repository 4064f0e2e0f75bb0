package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCaretIndicator(t *testing.T) {
	tests := []struct {
		name       string
		sourceLine string
		column     int
		want       string
	}{
		{
			name:       "spaces only",
			sourceLine: "  <div class=\"p:$4\">",
			column:     15,
			want:       "              ^",
		},
		{
			name:       "tabs and spaces",
			sourceLine: "\t\t<button class=\"bg:$white\">",
			column:     17,
			want:       "\t\t              ^",
		},
		{name: "start of line", sourceLine: "class=\"x\"", column: 1, want: "^"},
		{name: "column 0 fallback", sourceLine: "some line", column: 0, want: "^"},
		{name: "column beyond line length", sourceLine: "short", column: 100, want: "     ^"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, buildCaretIndicator(tt.sourceLine, tt.column))
		})
	}
}

func sampleResult() *Result {
	return &Result{
		Issues: []Issue{
			{
				FromLinter:  Linter,
				Text:        `invalid class token "pt:$99"`,
				Severity:    SeverityError,
				SourceLines: []string{`<div class="pt:$99">`},
				Pos:         Pos{Filename: "b.html", Line: 3, Column: 13},
			},
			{
				FromLinter: Linter,
				Text:       `alias "stack" member "gap:$x" is not a valid class token`,
				Severity:   SeverityWarning,
				Pos:        Pos{Filename: "atomcss.config.yaml"},
			},
		},
		FilesScanned:   2,
		TokensFound:    4,
		InvalidTokens:  1,
		UniqueClasses:  2,
		AliasesChecked: 1,
		TopClasses:     []ClassCount{{Class: "pt:$4", Occurrences: 2}},
		Warnings:       []string{"pattern \"x/*.html\" matched no files"},
	}
}

func TestPrintIssues(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, Options{Color: ColorNever, PrintLines: true, PrintLinterName: true})
	result := sampleResult()
	r.PrintIssues(result.Issues)

	want := "atomcss.config.yaml: warning: alias \"stack\" member \"gap:$x\" is not a valid class token (atomcss)\n" +
		"b.html:3:13: invalid class token \"pt:$99\" (atomcss)\n" +
		"\t<div class=\"pt:$99\">\n" +
		"\t            ^\n"
	assert.Equal(t, want, buf.String())
	assert.False(t, r.UseColors())
}

func TestPrintSummary(t *testing.T) {
	tests := []struct {
		name   string
		result *Result
		want   []string
	}{
		{
			name:   "errors and warnings",
			result: sampleResult(),
			want:   []string{"2 issues (1 error, 1 warning):", "* atomcss: 2", "Hint:"},
		},
		{
			name:   "truncated",
			result: &Result{Issues: sampleResult().Issues[:1], TruncatedCount: 3},
			want:   []string{"1 issue (3 issues truncated):"},
		},
		{
			name:   "clean",
			result: &Result{},
			want:   []string{"0 issues:"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewReporter(&buf, Options{Color: ColorNever}).PrintSummary(tt.result)
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestColorModes(t *testing.T) {
	assert.True(t, shouldUseColors(ColorAlways))
	assert.False(t, shouldUseColors(ColorNever))

	t.Setenv("NO_COLOR", "1")
	t.Setenv("FORCE_COLOR", "1")
	assert.False(t, shouldUseColors(ColorAuto))
}

func TestLimit(t *testing.T) {
	issue := func(text string) Issue { return Issue{FromLinter: Linter, Text: text} }
	issues := []Issue{issue("a"), issue("a"), issue("a"), issue("b"), issue("c")}

	tests := []struct {
		name      string
		limits    Limits
		wantTexts []string
		wantCut   int
	}{
		{name: "unlimited", wantTexts: []string{"a", "a", "a", "b", "c"}},
		{name: "same", limits: Limits{MaxSameIssues: 1}, wantTexts: []string{"a", "b", "c"}, wantCut: 2},
		{name: "per linter", limits: Limits{MaxIssuesPerLinter: 2}, wantTexts: []string{"a", "a"}, wantCut: 3},
		{name: "both", limits: Limits{MaxSameIssues: 1, MaxIssuesPerLinter: 2}, wantTexts: []string{"a", "b"}, wantCut: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept, cut := Limit(append([]Issue(nil), issues...), tt.limits)
			var texts []string
			for _, i := range kept {
				texts = append(texts, i.Text)
			}
			assert.Equal(t, tt.wantTexts, texts)
			assert.Equal(t, tt.wantCut, cut)
		})
	}
}

func TestSort(t *testing.T) {
	issues := []Issue{
		{Pos: Pos{Filename: "b", Line: 1, Column: 1}},
		{Pos: Pos{Filename: "a", Line: 2, Column: 5}},
		{Pos: Pos{Filename: "a", Line: 2, Column: 1}},
		{Pos: Pos{Filename: "a", Line: 1, Column: 9}},
	}
	Sort(issues)
	assert.Equal(t, []Pos{
		{Filename: "a", Line: 1, Column: 9},
		{Filename: "a", Line: 2, Column: 1},
		{Filename: "a", Line: 2, Column: 5},
		{Filename: "b", Line: 1, Column: 1},
	}, []Pos{issues[0].Pos, issues[1].Pos, issues[2].Pos, issues[3].Pos})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		flag    string
		quiet   bool
		want    Format
		wantErr bool
	}{
		{flag: "", want: FormatIssues},
		{flag: "issues", want: FormatIssues},
		{flag: "summary", want: FormatSummary},
		{flag: "full", want: FormatFull},
		{flag: "json", want: FormatJSON},
		{flag: "full", quiet: true, want: FormatIssues},
		{flag: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got, err := ParseFormat(tt.flag, tt.quiet)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteAllFormats(t *testing.T) {
	tests := []struct {
		format Format
		want   []string
		absent []string
	}{
		{format: FormatIssues, want: []string{"b.html:3:13:", "2 issues"}, absent: []string{"Lint Statistics"}},
		{format: FormatSummary, want: []string{"Lint Statistics", "Class Tokens:     4", "75.0%", "1. pt:$4 - 2 occurrences", "• pattern"}, absent: []string{"b.html:3:13:"}},
		{format: FormatFull, want: []string{"b.html:3:13:", "Lint Statistics", "Most Used Classes"}},
		{format: FormatJSON, want: []string{`"version"`, `"summary"`, `"stats"`, `"issues"`, `"top_classes"`}},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, sampleResult(), tt.format, Options{Color: ColorNever}))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, buf.String(), a)
			}
		})
	}
}

func TestJSONOutputSchema(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	out := buildJSONOutput(sampleResult(), now)

	assert.Equal(t, "2024-05-01T12:00:00Z", out.Timestamp)
	assert.Equal(t, JSONSummary{TotalIssues: 2, Errors: 1, Warnings: 1, FilesScanned: 2}, out.Summary)
	assert.InDelta(t, 75.0, out.Stats.ValidPercentage, 0.001)
	assert.Equal(t, `<div class="pt:$99">`, out.Issues[0].Source)
	assert.Empty(t, out.Issues[1].Source)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "top_classes")
	assert.NotContains(t, buf.String(), `"source": ""`)
}
