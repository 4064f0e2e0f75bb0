// Package preset contributes a default design system: layers, breakpoints,
// state modifiers, spacing and sizing scales, a small palette, keyframes and
// the common layout helpers.
package preset

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/maruel/natural"

	"github.com/yacobolo/atomcss/internal/config"
	"github.com/yacobolo/atomcss/internal/extension"
)

// ID is the extension ID and the key of its options in the style config.
const ID = "preset"

// Priority places the preset before user extensions so that they can
// override its entries.
const Priority = 100

// Options tune the preset.
//
//	breakpoints: {tablet: 600px, desktop: 1200px}  # replaces the default breakpoints
//	palette: false                                 # omit the palette
type Options struct {
	Breakpoints map[string]string
	NoPalette   bool
}

// Preset is the built-in default configuration.
type Preset struct {
	extension.Base
	opts Options
}

// New returns the preset with default options.
func New() *Preset { return &Preset{} }

func (p *Preset) ID() string    { return ID }
func (p *Preset) Priority() int { return Priority }

// ReadOptions parses the options map.
func (p *Preset) ReadOptions(opts map[string]any) error {
	p.opts = Options{}
	for key, raw := range opts {
		switch key {
		case "breakpoints":
			m, ok := raw.(map[string]any)
			if !ok {
				return fmt.Errorf("breakpoints must be a map of name to width, got %T", raw)
			}
			p.opts.Breakpoints = make(map[string]string, len(m))
			for name, w := range m {
				switch v := w.(type) {
				case string:
					p.opts.Breakpoints[name] = v
				case int:
					p.opts.Breakpoints[name] = strconv.Itoa(v) + "px"
				default:
					return fmt.Errorf("breakpoint %q: width must be a string or an integer, got %T", name, w)
				}
			}
		case "palette":
			b, ok := raw.(bool)
			if !ok {
				return fmt.Errorf("palette must be a boolean, got %T", raw)
			}
			p.opts.NoPalette = !b
		default:
			return fmt.Errorf("unknown option %q", key)
		}
	}
	return nil
}

// MutateConfig returns a fresh copy of the preset configuration.
func (p *Preset) MutateConfig(*config.Config, map[string]any) (*config.Config, error) {
	cfg := Config()
	if len(p.opts.Breakpoints) > 0 {
		cfg.MediaQueries[0].Members = breakpoints(p.opts.Breakpoints)
	}
	if p.opts.NoPalette {
		cfg.Palette = nil
	}
	return cfg, nil
}

// breakpoints orders custom breakpoints by width in natural order, so that
// "600px" sorts before "1200px". Equal widths sort by name.
func breakpoints(widths map[string]string) []config.MediaQuery {
	names := make([]string, 0, len(widths))
	for name := range widths {
		names = append(names, name)
	}
	sort.Strings(names)
	sort.SliceStable(names, func(i, j int) bool {
		return natural.Less(widths[names[i]], widths[names[j]])
	})

	members := make([]config.MediaQuery, 0, len(names))
	for i, name := range names {
		members = append(members, config.MediaQuery{
			Meta:    config.Meta{Name: name, Priority: config.Prio(i)},
			Queries: []string{"(min-width: " + widths[name] + ")"},
		})
	}
	return members
}
