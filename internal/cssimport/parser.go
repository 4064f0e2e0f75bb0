package cssimport

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"github.com/yacobolo/atomcss/internal/config"
)

// Rule is a class rule whose selector list consists of plain class
// selectors only, such as ".card" or ".a, .b".
type Rule struct {
	Name   string
	Layer  string
	Styles *config.Ordered[string]
}

type token struct {
	tt   css.TokenType
	text string
}

type layerFrame struct {
	name  string
	depth int
}

// parserState maintains context while lexing one stylesheet.
type parserState struct {
	lexer         *css.Lexer
	filename      string
	inferredLayer string
	depth         int
	layers        []layerFrame
	rules         []Rule
	byName        map[string]int
	log           *zap.Logger
}

// ParseCSS returns the plain class rules of content in source order. Rules
// inside @layer blocks take the innermost layer name, otherwise the inferred
// layer. Other at-rule blocks and rules with complex selectors are skipped.
// Repeated classes merge their declarations into the first rule.
func ParseCSS(content, filename, inferredLayer string, log *zap.Logger) ([]Rule, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &parserState{
		lexer:         css.NewLexer(parse.NewInputString(content)),
		filename:      filename,
		inferredLayer: inferredLayer,
		byName:        make(map[string]int),
		log:           log,
	}

	for {
		tt, text := s.lexer.Next()
		switch tt {
		case css.ErrorToken:
			if err := s.lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%s: %w", filename, err)
			}
			if s.depth != 0 {
				return nil, fmt.Errorf("%s: unbalanced braces", filename)
			}
			return s.rules, nil
		case css.WhitespaceToken, css.CommentToken, css.CDOToken, css.CDCToken, css.SemicolonToken:
		case css.AtKeywordToken:
			s.handleAtRule(string(text))
		case css.RightBraceToken:
			if n := len(s.layers); n > 0 && s.layers[n-1].depth == s.depth {
				s.layers = s.layers[:n-1]
			}
			s.depth--
			if s.depth < 0 {
				return nil, fmt.Errorf("%s: unbalanced braces", filename)
			}
		default:
			s.handleQualifiedRule(token{tt, string(text)})
		}
	}
}

// handleAtRule enters @layer blocks and skips every other at-rule.
func (s *parserState) handleAtRule(keyword string) {
	var name strings.Builder
	for {
		tt, text := s.lexer.Next()
		switch tt {
		case css.ErrorToken, css.SemicolonToken:
			return
		case css.IdentToken, css.DelimToken:
			if keyword == "@layer" {
				name.Write(text)
			}
		case css.LeftBraceToken:
			if keyword == "@layer" {
				s.depth++
				s.layers = append(s.layers, layerFrame{name: name.String(), depth: s.depth})
				return
			}
			s.log.Debug("skipping at-rule block", zap.String("file", s.filename), zap.String("at-rule", keyword))
			s.skipBlock()
			return
		}
	}
}

// skipBlock consumes tokens up to the brace closing the block just opened.
func (s *parserState) skipBlock() {
	depth := 1
	for depth > 0 {
		tt, _ := s.lexer.Next()
		switch tt {
		case css.ErrorToken:
			return
		case css.LeftBraceToken:
			depth++
		case css.RightBraceToken:
			depth--
		}
	}
}

func (s *parserState) layer() string {
	if n := len(s.layers); n > 0 && s.layers[n-1].name != "" {
		return s.layers[n-1].name
	}
	return s.inferredLayer
}

// handleQualifiedRule collects the selector up to "{" and reads the
// declaration block.
func (s *parserState) handleQualifiedRule(first token) {
	selector := []token{first}
	for {
		tt, text := s.lexer.Next()
		if tt == css.ErrorToken {
			return
		}
		if tt == css.LeftBraceToken {
			break
		}
		selector = append(selector, token{tt, string(text)})
	}

	names, ok := classNames(selector)
	if !ok {
		s.log.Debug("skipping complex selector",
			zap.String("file", s.filename),
			zap.String("selector", selectorText(selector)),
		)
		s.skipBlock()
		return
	}

	styles := s.extractDeclarations()
	for _, name := range names {
		if i, seen := s.byName[name]; seen {
			s.rules[i].Styles.Extend(styles)
			continue
		}
		s.byName[name] = len(s.rules)
		s.rules = append(s.rules, Rule{Name: name, Layer: s.layer(), Styles: styles.Clone()})
	}
}

// classNames returns the class of every comma separated selector, or false
// when any of them is more than one plain class selector.
func classNames(selector []token) ([]string, bool) {
	var names []string
	var part []token
	flush := func() bool {
		if len(part) != 2 || part[0].tt != css.DelimToken || part[0].text != "." || part[1].tt != css.IdentToken {
			return false
		}
		if strings.ContainsRune(part[1].text, '\\') {
			return false
		}
		names = append(names, part[1].text)
		part = part[:0]
		return true
	}
	for _, t := range selector {
		switch t.tt {
		case css.WhitespaceToken, css.CommentToken:
		case css.CommaToken:
			if !flush() {
				return nil, false
			}
		default:
			part = append(part, t)
		}
	}
	if !flush() {
		return nil, false
	}
	return names, true
}

func selectorText(selector []token) string {
	var b strings.Builder
	for _, t := range selector {
		b.WriteString(t.text)
	}
	return strings.TrimSpace(b.String())
}

// extractDeclarations reads property: value pairs until the closing brace.
// Nested blocks are skipped.
func (s *parserState) extractDeclarations() *config.Ordered[string] {
	props := config.NewOrdered[string]()

	var currentProp string
	var currentVal []string
	seenColon := false
	save := func() {
		if currentProp != "" && seenColon {
			if v := strings.TrimSpace(strings.Join(currentVal, "")); v != "" {
				props.Set(currentProp, v)
			}
		}
		currentProp, currentVal, seenColon = "", nil, false
	}

	for {
		tt, text := s.lexer.Next()
		switch {
		case tt == css.ErrorToken || tt == css.RightBraceToken:
			save()
			return props
		case tt == css.LeftBraceToken:
			s.skipBlock()
			currentProp, currentVal, seenColon = "", nil, false
		case tt == css.SemicolonToken:
			save()
		case currentProp == "" && (tt == css.IdentToken || tt == css.CustomPropertyNameToken):
			currentProp = string(text)
		case currentProp != "" && !seenColon && tt == css.ColonToken:
			seenColon = true
		case seenColon:
			currentVal = append(currentVal, string(text))
		}
	}
}

// ValidateChunk checks that css lexes cleanly with balanced braces.
func ValidateChunk(content string) error {
	lexer := css.NewLexer(parse.NewInputString(content))
	depth := 0
	for {
		tt, _ := lexer.Next()
		switch tt {
		case css.ErrorToken:
			if err := lexer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			if depth != 0 {
				return errors.New("unbalanced braces")
			}
			return nil
		case css.BadStringToken, css.BadURLToken:
			return errors.New("malformed string or url")
		case css.LeftBraceToken:
			depth++
		case css.RightBraceToken:
			depth--
			if depth < 0 {
				return errors.New("unbalanced braces")
			}
		}
	}
}

// inferLayerFromPath maps layers/{layer}/**/*.css and layers/{layer}.css to
// the layer name. Other paths have no layer.
func inferLayerFromPath(filePath, baseDir string) string {
	path := strings.ReplaceAll(filePath, "\\", "/")
	base := strings.TrimSuffix(strings.ReplaceAll(baseDir, "\\", "/"), "/")

	rel := strings.TrimPrefix(strings.TrimPrefix(path, base), "/")
	parts := strings.Split(rel, "/")
	if len(parts) >= 2 && parts[0] == "layers" {
		return strings.TrimSuffix(parts[1], ".css")
	}
	return ""
}
