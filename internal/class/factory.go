package class

import (
	"slices"
	"strings"

	"github.com/yacobolo/atomcss/internal/index"
)

// Separator splits a class-name string into tokens.
const Separator = ":"

// maxAliasDepth bounds alias expansion through nested aliases.
const maxAliasDepth = 8

// Factory accumulates one class-name string into a Class. Once a token fails
// to classify the factory is locked and yields no class.
type Factory struct {
	ix      *index.Index
	c       Class
	invalid bool
}

// FromString tokenizes s against the index.
func FromString(ix *index.Index, s string) *Factory {
	return FromTokens(ix, Split(s))
}

// FromTokens classifies pre-split tokens. The raw class name is the tokens
// joined with ":".
func FromTokens(ix *index.Index, tokens []string) *Factory {
	f := &Factory{ix: ix}
	f.c.raw = strings.Join(tokens, Separator)
	if len(tokens) == 0 || f.c.raw == "" {
		f.invalid = true
		return f
	}
	for _, tok := range tokens {
		if f.invalid {
			break
		}
		f.push(tok)
	}
	if !f.invalid {
		f.invalid = !f.complete()
	}
	return f
}

// Split cuts s on ":" outside of [...] arguments.
func Split(s string) []string {
	if s == "" {
		return nil
	}
	var tokens []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 {
				tokens = append(tokens, s[start:i])
				start = i + 1
			}
		}
	}
	return append(tokens, s[start:])
}

// Valid reports whether the string resolved to a class.
func (f *Factory) Valid() bool {
	return !f.invalid
}

// IntoClass returns the descriptor. Non-combined aliases come back as their
// own descriptor; use IntoClasses to expand them.
func (f *Factory) IntoClass() (Class, bool) {
	if f.invalid {
		return Class{}, false
	}
	return f.c, true
}

// IntoClasses expands non-combined aliases into the classes of their members.
// Each member is tokenized on its own; tokens written before the alias do not
// carry over. Everything else yields at most one class.
func (f *Factory) IntoClasses() []Class {
	return f.expand(0)
}

func (f *Factory) expand(depth int) []Class {
	c, ok := f.IntoClass()
	if !ok {
		return nil
	}
	if c.alias == "" {
		return []Class{c}
	}
	info, _ := f.ix.Alias(c.alias)
	if info.Combined {
		return []Class{c}
	}
	if depth >= maxAliasDepth {
		return nil
	}
	var out []Class
	for _, member := range info.Classes {
		out = append(out, FromString(f.ix, member).expand(depth+1)...)
	}
	return out
}

func (f *Factory) fail() {
	f.invalid = true
}

func (f *Factory) push(tok string) {
	switch {
	case tok == "":
		f.fail()
	case strings.HasPrefix(tok, "[") && strings.HasSuffix(tok, "]") && len(tok) >= 2:
		f.pushArgument(tok[1 : len(tok)-1])
	case strings.HasPrefix(tok, "$"):
		f.pushValue(tok[1:])
	default:
		f.pushName(tok)
	}
}

func (f *Factory) pushArgument(body string) {
	if f.c.argument != nil || body == "" {
		f.fail()
		return
	}
	key, value, isKV := strings.Cut(body, "=")
	if isKV {
		if key == "" || value == "" || f.c.atom != "" || f.c.namedClass != "" {
			f.fail()
			return
		}
		f.c.argument = &Argument{Key: key, Value: value}
	} else {
		if f.c.atom == "" || f.c.value != "" {
			f.fail()
			return
		}
		f.c.argument = &Argument{Value: body}
	}
	f.c.score.Argument = f.c.argument.String()
}

func (f *Factory) pushValue(name string) {
	if f.c.atom == "" || f.c.value != "" || f.c.argument != nil {
		f.fail()
		return
	}
	rank, ok := f.ix.ValueRank(f.c.atom, name)
	if !ok {
		f.fail()
		return
	}
	f.c.value = name
	f.c.score.Value = rank + 1
}

func (f *Factory) pushName(tok string) {
	if f.c.atom != "" {
		if _, ok := f.ix.ValueRank(f.c.atom, tok); ok {
			f.pushValue(tok)
			return
		}
	}
	if rank, ok := f.ix.Rank(index.Layer, tok); ok {
		f.setSingle(&f.c.layer, &f.c.score.Layer, tok, rank)
		return
	}
	if rank, ok := f.ix.Rank(index.MediaQuery, tok); ok {
		f.insert(&f.c.mediaQueries, &f.c.score.MediaQueries, tok, rank)
		return
	}
	if rank, ok := f.ix.Rank(index.Modifier, tok); ok {
		f.insert(&f.c.modifiers, &f.c.score.Modifiers, tok, rank)
		return
	}
	if rank, ok := f.ix.Rank(index.Atom, tok); ok {
		f.setSingle(&f.c.atom, &f.c.score.Atom, tok, rank)
		f.c.keyframe = f.ix.AtomIsKeyframe(tok)
		return
	}
	if rank, ok := f.ix.Rank(index.NamedClass, tok); ok {
		f.setSingle(&f.c.namedClass, &f.c.score.NamedClass, tok, rank)
		return
	}
	if rank, ok := f.ix.Rank(index.Alias, tok); ok {
		f.setSingle(&f.c.alias, &f.c.score.Alias, tok, rank)
		return
	}
	if rank, ok := f.ix.Rank(index.Chunk, tok); ok {
		f.setSingle(&f.c.chunk, &f.c.score.Chunk, tok, rank)
		return
	}
	f.fail()
}

func (f *Factory) setSingle(slot *string, score *int, name string, rank int) {
	if *slot != "" {
		f.fail()
		return
	}
	*slot = name
	*score = rank + 1
}

func (f *Factory) insert(names *[]string, ranks *[]int, name string, rank int) {
	if slices.Contains(*names, name) {
		f.fail()
		return
	}
	*names = append(*names, name)
	*ranks = append(*ranks, rank)
}

// complete checks that the tokens name exactly one thing to style.
func (f *Factory) complete() bool {
	c := &f.c
	kinds := 0
	for _, set := range []bool{c.atom != "", c.namedClass != "", c.alias != "", c.chunk != "", c.argument != nil && c.argument.IsKeyValue()} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return false
	}

	switch {
	case c.atom != "":
		if c.value == "" && c.argument == nil && (c.keyframe || len(f.ix.Values(c.atom)) > 0) {
			return false
		}
		if c.keyframe && c.value == "" {
			return false
		}
	case c.alias != "":
		return c.argument == nil
	case c.chunk != "":
		return len(c.modifiers) == 0 && c.argument == nil
	}
	return true
}
