// Package markup finds class tokens in HTML, templ, JSX and Go sources.
package markup

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yacobolo/atomcss/internal/class"
	"github.com/yacobolo/atomcss/internal/engine"
	"github.com/yacobolo/atomcss/internal/extension"
)

// ID is the extension ID and the key of its options in the style config.
const ID = "markup"

// Token is one whitespace separated class token found in a source file.
type Token struct {
	Value  string
	Line   int
	Column int    // 1-based
	Text   string // source line, Column indexes into it
}

type pattern struct {
	name  string
	regex *regexp.Regexp
}

var (
	// Ordered from most specific to least specific. Every regex captures the
	// class list in group 1.
	defaultPatterns = []pattern{
		{name: "class attribute", regex: regexp.MustCompile(`\bclass(?:Name)?="([^"]*)"`)},
		{name: "single quoted class attribute", regex: regexp.MustCompile(`\bclass(?:Name)?='([^']*)'`)},
		{name: "class expression with string literal", regex: regexp.MustCompile(`\bclass(?:Name)?=\{\s*["` + "`" + `]([^"` + "`" + `]*)["` + "`" + `]`)},
	}

	templClasses = regexp.MustCompile(`templ\.Classes\(([^)]*)\)`)
	templKV      = regexp.MustCompile(`templ\.KV\(([^)]*)\)`)

	commentPattern = regexp.MustCompile(`^\s*//`)
)

// IsTemplGenerated reports whether path is a templ generated Go file.
func IsTemplGenerated(path string) bool {
	return strings.HasSuffix(path, "_templ.go") || strings.HasSuffix(path, ".templ.go")
}

// Scanner extracts class tokens line by line.
type Scanner struct {
	patterns []pattern
}

// NewScanner returns a scanner with the built-in patterns plus extra
// regular expressions, each of which must have exactly one capture group.
func NewScanner(extra ...string) (*Scanner, error) {
	s := &Scanner{patterns: append([]pattern(nil), defaultPatterns...)}
	for _, expr := range extra {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", expr, err)
		}
		if re.NumSubexp() != 1 {
			return nil, fmt.Errorf("pattern %q: must have exactly one capture group, has %d", expr, re.NumSubexp())
		}
		s.patterns = append(s.patterns, pattern{name: expr, regex: re})
	}
	return s, nil
}

// Scan returns every class token in data in source order.
func (s *Scanner) Scan(data []byte) ([]Token, error) {
	var tokens []Token
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		tokens = append(tokens, s.scanLine(sc.Text(), lineNum)...)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

func (s *Scanner) scanLine(line string, lineNum int) []Token {
	if commentPattern.MatchString(line) {
		return nil
	}
	// templ helpers are handled on their own so that string literals inside
	// them are not matched twice.
	hasClasses := strings.Contains(line, "templ.Classes(")
	hasKV := strings.Contains(line, "templ.KV(")
	if hasClasses || hasKV {
		var out []Token
		for _, m := range templClasses.FindAllStringSubmatchIndex(line, -1) {
			out = append(out, literalTokens(line, m[2], m[3], false, lineNum)...)
		}
		for _, m := range templKV.FindAllStringSubmatchIndex(line, -1) {
			out = append(out, literalTokens(line, m[2], m[3], true, lineNum)...)
		}
		return out
	}

	var out []Token
	for _, p := range s.patterns {
		for _, m := range p.regex.FindAllStringSubmatchIndex(line, -1) {
			if len(m) < 4 || m[2] < 0 {
				continue
			}
			out = append(out, fields(line, m[2], m[3], lineNum)...)
		}
	}
	return out
}

// literalTokens splits the arguments of a templ call between start and end
// and tokenizes every double quoted literal. With firstOnly only the first
// argument is considered, as in templ.KV("a b", cond).
func literalTokens(line string, start, end int, firstOnly bool, lineNum int) []Token {
	var out []Token
	for _, arg := range splitArgs(line, start, end) {
		lo, hi := arg[0], arg[1]
		for lo < hi && line[lo] == ' ' {
			lo++
		}
		for hi > lo && line[hi-1] == ' ' {
			hi--
		}
		if hi-lo >= 2 && line[lo] == '"' && line[hi-1] == '"' {
			out = append(out, fields(line, lo+1, hi-1, lineNum)...)
		}
		if firstOnly {
			break
		}
	}
	return out
}

// splitArgs returns the byte ranges of the comma separated arguments in
// line[start:end], ignoring commas nested in parentheses or strings.
func splitArgs(line string, start, end int) [][2]int {
	var parts [][2]int
	depth := 0
	inString := false
	from := start
	for i := start; i < end; i++ {
		switch c := line[i]; {
		case c == '"':
			inString = !inString
		case inString:
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == ',' && depth == 0:
			parts = append(parts, [2]int{from, i})
			from = i + 1
		}
	}
	if from < end {
		parts = append(parts, [2]int{from, end})
	}
	return parts
}

// fields splits line[start:end] on whitespace, keeping exact columns.
func fields(line string, start, end, lineNum int) []Token {
	var out []Token
	i := start
	for i < end {
		for i < end && isSpace(line[i]) {
			i++
		}
		j := i
		for j < end && !isSpace(line[j]) {
			j++
		}
		if j > i {
			out = append(out, Token{Value: line[i:j], Line: lineNum, Column: i + 1, Text: line})
		}
		i = j
	}
	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// Markup is the scan_code extension. Options:
//
//	patterns: ['cx\("([^"]*)"\)']  # extra regular expressions with one capture group
//	include_generated: true        # also scan templ generated Go files
type Markup struct {
	extension.Base
	scanner          *Scanner
	includeGenerated bool
}

// New returns the extension with the built-in patterns.
func New() *Markup {
	s, _ := NewScanner()
	return &Markup{scanner: s}
}

func (m *Markup) ID() string { return ID }

// ReadOptions compiles extra patterns.
func (m *Markup) ReadOptions(opts map[string]any) error {
	var extra []string
	m.includeGenerated = false
	for key, raw := range opts {
		switch key {
		case "patterns":
			list, ok := raw.([]any)
			if !ok {
				return fmt.Errorf("patterns must be a list of regular expressions, got %T", raw)
			}
			for _, item := range list {
				expr, ok := item.(string)
				if !ok {
					return fmt.Errorf("pattern must be a string, got %T", item)
				}
				extra = append(extra, expr)
			}
		case "include_generated":
			b, ok := raw.(bool)
			if !ok {
				return fmt.Errorf("include_generated must be a boolean, got %T", raw)
			}
			m.includeGenerated = b
		default:
			return fmt.Errorf("unknown option %q", key)
		}
	}
	s, err := NewScanner(extra...)
	if err != nil {
		return err
	}
	m.scanner = s
	return nil
}

// Scanner returns the configured scanner.
func (m *Markup) Scanner() *Scanner { return m.scanner }

// ScanCode returns the classes of every token that tokenizes. Invalid tokens
// are dropped.
func (m *Markup) ScanCode(rn *engine.Runner, path string, data []byte) ([]class.Class, error) {
	if IsTemplGenerated(path) && !m.includeGenerated {
		return nil, nil
	}
	tokens, err := m.scanner.Scan(data)
	if err != nil {
		return nil, err
	}
	var out []class.Class
	for _, tok := range tokens {
		out = append(out, class.FromString(rn.Index(), tok.Value).IntoClasses()...)
	}
	return out, nil
}
