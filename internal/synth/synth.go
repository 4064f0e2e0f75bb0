// Package synth writes the stylesheet of a set of classes.
//
// Output order is fixed: the @charset rule, the @layer ordering statement,
// one @keyframes rule per referenced keyframe, one @property rule (plus
// overrides) per referenced CSS variable, then one @layer block per
// non-empty layer. Inside a layer, classes without media queries come first,
// followed by one nested @media block per distinct set of media queries.
package synth

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/yacobolo/atomcss/internal/class"
	"github.com/yacobolo/atomcss/internal/color"
	"github.com/yacobolo/atomcss/internal/config"
	"github.com/yacobolo/atomcss/internal/engine"
	"github.com/yacobolo/atomcss/internal/index"
	"github.com/yacobolo/atomcss/internal/placeholder"
)

// Synthesizer renders classes against one run's configuration.
type Synthesizer struct {
	rn  *engine.Runner
	log *zap.Logger
}

// New creates a Synthesizer. A nil logger disables logging.
func New(rn *engine.Runner, log *zap.Logger) *Synthesizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Synthesizer{rn: rn, log: log.Named("synth")}
}

// ToCSS renders classes with a silent Synthesizer.
func ToCSS(rn *engine.Runner, classes *class.Classes) (string, error) {
	return New(rn, nil).ToCSS(classes)
}

type decl struct {
	prop, value string
}

type rule struct {
	layer string
	mqs   []string
	ranks []int
	text  string
}

// refs collects keyframe and variable names in first-seen order.
type refs struct {
	keyframes []string
	vars      []string
	seen      map[string]bool
}

func (r *refs) addKeyframe(name string) {
	if r.seen == nil {
		r.seen = make(map[string]bool)
	}
	if !r.seen["k:"+name] {
		r.seen["k:"+name] = true
		r.keyframes = append(r.keyframes, name)
	}
}

func (r *refs) addText(text string) {
	if r.seen == nil {
		r.seen = make(map[string]bool)
	}
	vars, _ := placeholder.References(text)
	for _, name := range vars {
		if !r.seen["v:"+name] {
			r.seen["v:"+name] = true
			r.vars = append(r.vars, name)
		}
	}
}

// ToCSS renders the stylesheet.
func (s *Synthesizer) ToCSS(classes *class.Classes) (string, error) {
	cfg := s.rn.Config()

	var rf refs
	var rules []rule
	for _, c := range classes.All() {
		r, err := s.classRule(c, &rf)
		if err != nil {
			return "", err
		}
		if r.text != "" {
			rules = append(rules, r)
		}
	}

	var out strings.Builder
	out.WriteString("@charset " + strconv.Quote(cfg.Options.EffectiveCharset()) + ";\n")

	layerNames := make([]string, 0, len(cfg.Layers))
	for _, l := range cfg.Layers {
		layerNames = append(layerNames, l.Name)
	}
	out.WriteString("@layer " + strings.Join(layerNames, ",") + ";\n")

	for _, name := range rf.keyframes {
		if err := s.writeKeyframe(&out, name, &rf); err != nil {
			return "", err
		}
	}
	// writeVariable may discover further references
	for i := 0; i < len(rf.vars); i++ {
		if err := s.writeVariable(&out, rf.vars[i], &rf); err != nil {
			return "", err
		}
	}

	for _, layer := range layerNames {
		s.writeLayer(&out, layer, rules)
	}

	s.log.Debug("stylesheet synthesized",
		zap.Int("classes", classes.Len()),
		zap.Int("rules", len(rules)),
		zap.Int("keyframes", len(rf.keyframes)),
		zap.Int("variables", len(rf.vars)),
	)
	return out.String(), nil
}

func (s *Synthesizer) classRule(c class.Class, rf *refs) (rule, error) {
	r := rule{layer: c.Layer()}

	var decls []decl
	var raw string
	switch {
	case c.Atom() != "":
		d, err := s.atomDecls(c, rf)
		if err != nil {
			return rule{}, err
		}
		decls = d
	case c.NamedClass() != "":
		nc, ok := s.rn.NamedClass(c.NamedClass())
		if !ok {
			return rule{}, &Error{Kind: KindMissingNamedClass, Name: c.NamedClass()}
		}
		if r.layer == "" {
			r.layer = nc.Layer
		}
		decls = s.styleDecls(nc.Styles, rf)
	case c.Alias() != "":
		a, ok := s.rn.Alias(c.Alias())
		if !ok {
			return rule{}, &Error{Kind: KindMissingAlias, Name: c.Alias()}
		}
		if a.Combined {
			decls = s.styleDecls(a.Styles, rf)
		}
	case c.Chunk() != "":
		ch, ok := s.rn.Chunk(c.Chunk())
		if !ok {
			return rule{}, &Error{Kind: KindMissingChunk, Name: c.Chunk()}
		}
		rf.addText(ch.CSS)
		raw = strings.TrimSpace(s.rn.Normalize(ch.CSS))
	default:
		if arg, ok := c.Argument(); ok && arg.IsKeyValue() {
			rf.addText(arg.Value)
			decls = []decl{{prop: arg.Key, value: s.rn.Normalize(arg.Value)}}
		}
	}

	if r.layer == "" {
		r.layer = s.rn.DefaultLayer()
	}
	if _, ok := s.rn.Layer(r.layer); !ok {
		return rule{}, &Error{Kind: KindMissingLayer, Name: r.layer}
	}

	mqs, ranks, err := s.mediaQueries(c)
	if err != nil {
		return rule{}, err
	}
	r.mqs, r.ranks = mqs, ranks

	if raw != "" {
		r.text = raw
		return r, nil
	}
	if len(decls) == 0 {
		return r, nil
	}
	sels, err := s.selectors(c)
	if err != nil {
		return rule{}, err
	}
	r.text = strings.Join(sels, ",") + "{" + formatDecls(decls) + "}"
	return r, nil
}

func (s *Synthesizer) atomDecls(c class.Class, rf *refs) ([]decl, error) {
	a, ok := s.rn.Atom(c.Atom())
	if !ok {
		return nil, &Error{Kind: KindMissingAtom, Name: c.Atom()}
	}

	if c.IsKeyframe() {
		if _, ok := s.rn.Keyframe(c.Value()); !ok {
			return nil, &Error{Kind: KindMissingKeyframe, Name: c.Value()}
		}
		rf.addKeyframe(c.Value())
	}

	var entry config.ValueEntry
	hasEntry := false
	if c.Value() != "" {
		entry, ok = s.rn.AtomValue(c.Atom(), c.Value())
		if !ok {
			return nil, &Error{Kind: KindMissingValue, Name: c.Atom() + ":" + c.Value()}
		}
		hasEntry = true
	} else if arg, ok := c.Argument(); ok {
		entry, hasEntry = config.Lit(arg.Value), true
	}

	var decls []decl
	for _, st := range a.Styles.Pairs() {
		value := entry.Literal
		if entry.IsObject() {
			v, found := entry.Properties.Get(st.Key)
			if !found && st.Value == nil {
				continue
			}
			value = v
		}

		if st.Value == nil {
			if !hasEntry {
				continue
			}
			rf.addText(value)
			decls = append(decls, decl{prop: st.Key, value: s.rn.Normalize(value)})
			continue
		}
		rf.addText(*st.Value)
		rf.addText(value)
		decls = append(decls, decl{prop: st.Key, value: s.rn.NormalizeWithValue(*st.Value, value)})
	}
	return decls, nil
}

func (s *Synthesizer) styleDecls(styles *config.Ordered[string], rf *refs) []decl {
	decls := make([]decl, 0, styles.Len())
	for _, p := range styles.Pairs() {
		rf.addText(p.Value)
		decls = append(decls, decl{prop: p.Key, value: s.rn.Normalize(p.Value)})
	}
	return decls
}

// mediaQueries returns the class's media queries in rank order.
func (s *Synthesizer) mediaQueries(c class.Class) ([]string, []int, error) {
	names := c.MediaQueries()
	ranks := make([]int, 0, len(names))
	for _, name := range names {
		rank, ok := s.rn.Index().Rank(index.MediaQuery, name)
		if !ok {
			return nil, nil, &Error{Kind: KindMissingMediaQuery, Name: name}
		}
		ranks = append(ranks, rank)
	}
	slices.SortFunc(names, func(a, b string) int {
		ra, _ := s.rn.Index().Rank(index.MediaQuery, a)
		rb, _ := s.rn.Index().Rank(index.MediaQuery, b)
		return ra - rb
	})
	slices.Sort(ranks)
	return names, ranks, nil
}

// selectors applies the class modifiers in token order. "&" in a modifier
// selector stands for the selector built so far; a selector without "&" is
// appended. Modifiers with several selectors multiply the list.
func (s *Synthesizer) selectors(c class.Class) ([]string, error) {
	sels := []string{c.Selector()}
	for _, name := range c.Modifiers() {
		m, ok := s.rn.Modifier(name)
		if !ok {
			return nil, &Error{Kind: KindMissingModifier, Name: name}
		}
		next := make([]string, 0, len(sels)*len(m.Selectors))
		for _, base := range sels {
			for _, ms := range m.Selectors {
				ms = s.rn.Normalize(ms)
				if strings.Contains(ms, "&") {
					next = append(next, strings.ReplaceAll(ms, "&", base))
				} else {
					next = append(next, base+ms)
				}
			}
		}
		sels = next
	}
	return sels, nil
}

func (s *Synthesizer) writeKeyframe(out *strings.Builder, name string, rf *refs) error {
	k, ok := s.rn.Keyframe(name)
	if !ok {
		return &Error{Kind: KindMissingKeyframe, Name: name}
	}
	out.WriteString("@keyframes " + name + "{")
	for _, frame := range k.Frames.Pairs() {
		decls := s.styleDecls(frame.Value, rf)
		out.WriteString(frame.Key + "{" + formatDecls(decls) + "}")
	}
	out.WriteString("}\n")
	return nil
}

func (s *Synthesizer) writeVariable(out *strings.Builder, name string, rf *refs) error {
	v, ok := s.rn.CSSVariable(name)
	if !ok {
		return &Error{Kind: KindMissingVariable, Name: name}
	}
	rf.addText(v.Value)
	for _, o := range v.Overrides.Pairs() {
		for _, sv := range o.Value.Pairs() {
			rf.addText(sv.Value)
		}
	}

	inherits := strconv.FormatBool(v.Inherited())
	components := s.rn.Config().Options.ComponentsEnabled()
	switch {
	case v.IsColor():
		c, err := s.parseColor(name, v.Value)
		if err != nil {
			return err
		}
		h, sat, l, a := c.Components()
		if components {
			writeProperty(out, v.Variable+"-h", "<number>", inherits, h)
			writeProperty(out, v.Variable+"-s", "<percentage>", inherits, sat)
			writeProperty(out, v.Variable+"-l", "<percentage>", inherits, l)
			writeProperty(out, v.Variable+"-a", "<number>", inherits, a)
			fmt.Fprintf(out, ":root{%[1]s:hsl(var(%[1]s-h) var(%[1]s-s) var(%[1]s-l) / var(%[1]s-a));}\n", v.Variable)
		} else {
			writeProperty(out, v.Variable, string(config.SyntaxColor), inherits, c.String())
			writeProperty(out, v.Variable+"-a", "<number>", inherits, a)
		}
	case v.EffectiveSyntax() == config.SyntaxAny:
		out.WriteString("@property " + v.Variable + "{syntax:'*';inherits:" + inherits + ";}\n")
		out.WriteString(":root{" + v.Variable + ":" + s.rn.Normalize(v.Value) + ";}\n")
	default:
		writeProperty(out, v.Variable, string(v.Syntax), inherits, s.rn.Normalize(v.Value))
	}

	for _, o := range v.Overrides.Pairs() {
		var body strings.Builder
		for _, sv := range o.Value.Pairs() {
			decls, err := s.overrideDecls(v, sv.Value, components)
			if err != nil {
				return err
			}
			body.WriteString(sv.Key + "{" + formatDecls(decls) + "}")
		}
		if o.Key == config.DefaultOverride {
			out.WriteString(body.String() + "\n")
			continue
		}
		mq, ok := s.rn.MediaQuery(o.Key)
		if !ok {
			return &Error{Kind: KindMissingMediaQuery, Name: o.Key}
		}
		out.WriteString("@media " + strings.Join(mq.Queries, ", ") + "{" + body.String() + "}\n")
	}
	return nil
}

// overrideDecls sets a variable to value. Colors also set the alpha
// companion, or every component when components are enabled.
func (s *Synthesizer) overrideDecls(v config.CSSVariable, value string, components bool) ([]decl, error) {
	if !v.IsColor() {
		return []decl{{prop: v.Variable, value: s.rn.Normalize(value)}}, nil
	}
	c, err := s.parseColor(v.Name, value)
	if err != nil {
		return nil, err
	}
	h, sat, l, a := c.Components()
	if components {
		return []decl{
			{prop: v.Variable + "-h", value: h},
			{prop: v.Variable + "-s", value: sat},
			{prop: v.Variable + "-l", value: l},
			{prop: v.Variable + "-a", value: a},
		}, nil
	}
	return []decl{
		{prop: v.Variable, value: c.String()},
		{prop: v.Variable + "-a", value: a},
	}, nil
}

func (s *Synthesizer) parseColor(name, value string) (color.Color, error) {
	c, err := color.Parse(s.rn.Normalize(value))
	if err != nil {
		return color.Color{}, &Error{Kind: KindInvalidColor, Name: name, Err: err}
	}
	return c, nil
}

func (s *Synthesizer) writeLayer(out *strings.Builder, layer string, rules []rule) {
	type group struct {
		mqs   []string
		ranks []int
		lines []string
	}
	var plain []string
	var groups []*group
	byKey := make(map[string]*group)

	for _, r := range rules {
		if r.layer != layer {
			continue
		}
		if len(r.mqs) == 0 {
			plain = append(plain, r.text)
			continue
		}
		key := strings.Join(r.mqs, "\x00")
		g, ok := byKey[key]
		if !ok {
			g = &group{mqs: r.mqs, ranks: r.ranks}
			byKey[key] = g
			groups = append(groups, g)
		}
		g.lines = append(g.lines, r.text)
	}
	if len(plain) == 0 && len(groups) == 0 {
		return
	}
	slices.SortStableFunc(groups, func(a, b *group) int {
		return slices.Compare(a.ranks, b.ranks)
	})

	out.WriteString("@layer " + layer + "{\n")
	for _, line := range plain {
		out.WriteString(line + "\n")
	}
	for _, g := range groups {
		for _, name := range g.mqs {
			mq, _ := s.rn.MediaQuery(name)
			out.WriteString("@media " + strings.Join(mq.Queries, ", ") + "{\n")
		}
		for _, line := range g.lines {
			out.WriteString(line + "\n")
		}
		out.WriteString(strings.Repeat("}\n", len(g.mqs)))
	}
	out.WriteString("}\n")
}

func writeProperty(out *strings.Builder, name, syntax, inherits, initial string) {
	out.WriteString("@property " + name + "{syntax:'" + syntax + "';inherits:" + inherits + ";initial-value:" + initial + ";}\n")
}

func formatDecls(decls []decl) string {
	var sb strings.Builder
	for _, d := range decls {
		sb.WriteString(d.prop + ":" + d.value + ";")
	}
	return sb.String()
}
