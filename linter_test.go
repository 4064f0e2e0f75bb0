package atomcss

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/atomcss/internal/report"
)

func TestLint(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"atomcss.config.yaml": userConfig,
		"css/card.css":        `.card { border-radius: 4px; }`,
		"web/page.templ": "<div class=\"p:$4 card\">\n" +
			"\t<span class=\"p:$99 bg:$brand\"></span>\n" +
			"\t// <i class=\"commented:out\">\n" +
			"</div>",
		"web/page_templ.go": `templ.Classes("zzz")`,
	})
	cfgPath := filepath.Join(dir, "atomcss.config.yaml")

	result, err := Lint(LintOptions{
		Setup: Setup{ConfigPath: cfgPath},
		Root:  dir,
		Paths: []string{"web/**/*", "missing/*.html"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.FilesScanned)
	assert.Equal(t, 4, result.TokensFound)
	assert.Equal(t, 1, result.InvalidTokens)
	assert.Equal(t, 3, result.UniqueClasses)
	assert.Equal(t, 4, result.AliasesChecked)
	assert.Equal(t, []string{`pattern "missing/*.html" matched no files`}, result.Warnings)

	require.Len(t, result.Issues, 2)
	assert.Equal(t, Issue{
		FromLinter: report.Linter,
		Text:       `alias "broken" member "nope:$1" is not a valid class token`,
		Severity:   SeverityWarning,
		Pos:        IssuePos{Filename: cfgPath},
	}, result.Issues[0])
	assert.Equal(t, Issue{
		FromLinter:  report.Linter,
		Text:        `invalid class token "p:$99"`,
		Severity:    SeverityError,
		SourceLines: []string{"\t<span class=\"p:$99 bg:$brand\"></span>"},
		Pos:         IssuePos{Filename: filepath.Join(dir, "web", "page.templ"), Line: 2, Column: 15},
	}, result.Issues[1])

	errors, warnings := result.Counts()
	assert.Equal(t, 1, errors)
	assert.Equal(t, 1, warnings)

	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, result, OutputIssues, report.Options{Color: report.ColorNever, PrintLines: true}))
	assert.Contains(t, buf.String(), "page.templ:2:15: invalid class token \"p:$99\"\n\t\t<span class=\"p:$99 bg:$brand\"></span>\n\t\t             ^\n")
}

func TestLintGeneratedAndLimits(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.html":     `<a class="x:1 x:1 y:1 p:$4">`,
		"b_templ.go": `templ.Classes("x:1")`,
	})

	result, err := Lint(LintOptions{Root: dir, IncludeGenerated: true})
	require.NoError(t, err)
	assert.Equal(t, 2, result.FilesScanned)
	assert.Equal(t, 4, result.InvalidTokens)
	assert.Len(t, result.Issues, 4)

	result, err = Lint(LintOptions{Root: dir, Limits: report.Limits{MaxSameIssues: 1}})
	require.NoError(t, err)
	assert.Len(t, result.Issues, 2)
	assert.Equal(t, 1, result.TruncatedCount)
	assert.Equal(t, []report.ClassCount{{Class: "p:$4", Occurrences: 1}}, result.TopClasses)
}

func TestTopClasses(t *testing.T) {
	usage := map[string]int{"p:$10": 1, "p:$2": 1, "p:$4": 3, "m:$1": 2}

	assert.Equal(t, []report.ClassCount{
		{Class: "p:$4", Occurrences: 3},
		{Class: "m:$1", Occurrences: 2},
		{Class: "p:$2", Occurrences: 1},
		{Class: "p:$10", Occurrences: 1},
	}, topClasses(usage, 10))
	assert.Len(t, topClasses(usage, 2), 2)
}

func TestDetermineOutputFormat(t *testing.T) {
	f, err := DetermineOutputFormat("", false)
	require.NoError(t, err)
	assert.Equal(t, OutputIssues, f)

	f, err = DetermineOutputFormat("json", true)
	require.NoError(t, err)
	assert.Equal(t, OutputIssues, f)

	_, err = DetermineOutputFormat("markdown", false)
	assert.Error(t, err)
}
