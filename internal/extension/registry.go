package extension

import (
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/yacobolo/atomcss/internal/class"
	"github.com/yacobolo/atomcss/internal/config"
	"github.com/yacobolo/atomcss/internal/engine"
)

// Registry holds the extensions of one build ordered by ascending priority,
// ties broken by registration order.
type Registry struct {
	exts []Extension
	ids  map[string]bool
	log  *zap.Logger
}

// NewRegistry returns an empty registry. A nil logger disables logging.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		ids: make(map[string]bool),
		log: log.Named("extension"),
	}
}

// Register adds ext to the registry.
func (r *Registry) Register(ext Extension) error {
	if ext == nil {
		return errors.New("extension is nil")
	}
	id := ext.ID()
	if id == "" {
		return errors.New("extension has an empty ID")
	}
	if r.ids[id] {
		return ErrDuplicateID{ID: id}
	}
	r.ids[id] = true
	r.exts = append(r.exts, ext)
	sort.SliceStable(r.exts, func(i, j int) bool {
		return r.exts[i].Priority() < r.exts[j].Priority()
	})
	r.log.Debug("registered", zap.String("id", id), zap.Int("priority", ext.Priority()))
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(exts ...Extension) {
	for _, ext := range exts {
		if err := r.Register(ext); err != nil {
			panic(err)
		}
	}
}

// Extensions returns the registered extensions in invocation order.
func (r *Registry) Extensions() []Extension {
	return append([]Extension(nil), r.exts...)
}

// IDs returns the registered IDs in invocation order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.exts))
	for _, ext := range r.exts {
		ids = append(ids, ext.ID())
	}
	return ids
}

// ReadOptions hands every extension its options. opts is keyed by extension
// ID; options for unregistered IDs are ignored with a warning.
func (r *Registry) ReadOptions(opts map[string]map[string]any) error {
	for id := range opts {
		if !r.ids[id] {
			r.log.Warn("options given for unknown extension", zap.String("id", id))
		}
	}
	for _, ext := range r.exts {
		if err := ext.ReadOptions(opts[ext.ID()]); err != nil {
			return &Error{ID: ext.ID(), Phase: PhaseReadOptions, Err: err}
		}
	}
	return nil
}

// MutateConfig collects the partial configurations contributed by the
// extensions in invocation order. Each extension sees base combined with the
// contributions made before it.
func (r *Registry) MutateConfig(base *config.Config) ([]*config.Config, error) {
	var out []*config.Config
	view := base
	for _, ext := range r.exts {
		partial, err := ext.MutateConfig(view, base.Extensions[ext.ID()])
		if err != nil {
			return nil, &Error{ID: ext.ID(), Phase: PhaseMutateConfig, Err: err}
		}
		if partial != nil {
			out = append(out, partial)
			view = config.Combine(base, out)
		}
	}
	r.log.Debug("configuration contributed", zap.Int("partials", len(out)))
	return out, nil
}

// Runner reads the options stored in base, collects contributions and merges
// them with base into a Runner.
func (r *Registry) Runner(base *config.Config) (*engine.Runner, error) {
	if err := r.ReadOptions(base.Extensions); err != nil {
		return nil, err
	}
	partials, err := r.MutateConfig(base)
	if err != nil {
		return nil, err
	}
	return engine.FromPartials(base, partials)
}

// GenerateCode concatenates the files generated by every extension.
func (r *Registry) GenerateCode(rn *engine.Runner) ([]File, error) {
	var files []File
	for _, ext := range r.exts {
		fs, err := ext.GenerateCode(rn)
		if err != nil {
			return nil, &Error{ID: ext.ID(), Phase: PhaseGenerateCode, Err: err}
		}
		files = append(files, fs...)
	}
	return files, nil
}

// ScanCode runs every scanner over one file and inserts the classes found.
func (r *Registry) ScanCode(rn *engine.Runner, path string, data []byte, into *class.Classes) error {
	for _, ext := range r.exts {
		found, err := ext.ScanCode(rn, path, data)
		if err != nil {
			return &Error{ID: ext.ID(), Phase: PhaseScanCode, Err: err}
		}
		into.Extend(found...)
	}
	return nil
}
