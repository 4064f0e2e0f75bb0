package extension

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/atomcss/internal/class"
	"github.com/yacobolo/atomcss/internal/config"
	"github.com/yacobolo/atomcss/internal/config/configtest"
	"github.com/yacobolo/atomcss/internal/engine"
)

type fakeExt struct {
	Base
	id       string
	priority int
	partial  *config.Config
	files    []File
	scan     []string
	failIn   Phase
	gotOpts  map[string]any
	mutated  []map[string]any
	seen     []*config.Config
}

func (f *fakeExt) ID() string    { return f.id }
func (f *fakeExt) Priority() int { return f.priority }

func (f *fakeExt) ReadOptions(opts map[string]any) error {
	if f.failIn == PhaseReadOptions {
		return errors.New("bad options")
	}
	f.gotOpts = opts
	return nil
}

func (f *fakeExt) MutateConfig(base *config.Config, opts map[string]any) (*config.Config, error) {
	if f.failIn == PhaseMutateConfig {
		return nil, errors.New("cannot mutate")
	}
	f.seen = append(f.seen, base)
	f.mutated = append(f.mutated, opts)
	return f.partial, nil
}

func (f *fakeExt) GenerateCode(*engine.Runner) ([]File, error) {
	if f.failIn == PhaseGenerateCode {
		return nil, errors.New("cannot generate")
	}
	return f.files, nil
}

func (f *fakeExt) ScanCode(rn *engine.Runner, _ string, _ []byte) ([]class.Class, error) {
	if f.failIn == PhaseScanCode {
		return nil, errors.New("cannot scan")
	}
	var out []class.Class
	for _, s := range f.scan {
		out = append(out, class.FromString(rn.Index(), s).IntoClasses()...)
	}
	return out, nil
}

func TestRegisterOrder(t *testing.T) {
	r := NewRegistry(nil)
	r.MustRegister(
		&fakeExt{id: "c", priority: 500},
		&fakeExt{id: "a", priority: 100},
		&fakeExt{id: "d", priority: 500},
		&fakeExt{id: "b", priority: 100},
	)
	assert.Equal(t, []string{"a", "b", "c", "d"}, r.IDs())
	assert.Len(t, r.Extensions(), 4)
}

func TestRegisterErrors(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(&fakeExt{id: "a"}))

	err := r.Register(&fakeExt{id: "a"})
	var dup ErrDuplicateID
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "a", dup.ID)

	assert.Error(t, r.Register(nil))
	assert.Error(t, r.Register(&fakeExt{}))
	assert.Panics(t, func() { r.MustRegister(&fakeExt{id: "a"}) })
}

func TestRunnerMergesContributions(t *testing.T) {
	early := &fakeExt{id: "early", priority: 1, partial: &config.Config{
		Layers: []config.Layer{{Meta: config.Meta{Name: "vendor", Priority: config.Prio(0)}}},
	}}
	late := &fakeExt{id: "late", priority: 900}
	r := NewRegistry(nil)
	r.MustRegister(late, early)

	base := configtest.Partial()
	base.Extensions = map[string]map[string]any{
		"early":   {"mode": "strict"},
		"missing": {"x": 1},
	}

	rn, err := r.Runner(base)
	require.NoError(t, err)
	assert.Equal(t, "vendor", rn.Config().Layers[0].Name)
	assert.Equal(t, map[string]any{"mode": "strict"}, early.gotOpts)
	assert.Nil(t, late.gotOpts)
	assert.Equal(t, []map[string]any{{"mode": "strict"}}, early.mutated)
}

func TestMutateConfigSeesEarlierContributions(t *testing.T) {
	first := &fakeExt{id: "first", priority: 1, partial: &config.Config{
		Layers:       []config.Layer{{Meta: config.Meta{Name: "vendor"}}},
		NamedClasses: []config.NamedClass{{Meta: config.Meta{Name: "from-first"}}},
	}}
	second := &fakeExt{id: "second", priority: 2, partial: &config.Config{
		Layers: []config.Layer{{Meta: config.Meta{Name: "extra"}}},
	}}
	third := &fakeExt{id: "third", priority: 3}
	r := NewRegistry(nil)
	r.MustRegister(third, second, first)

	base := &config.Config{
		DefaultLayer: "app",
		Layers:       []config.Layer{{Meta: config.Meta{Name: "app"}}},
		Imports:      []string{"css/*.css"},
	}
	partials, err := r.MutateConfig(base)
	require.NoError(t, err)
	assert.Len(t, partials, 2)

	layerNames := func(cfg *config.Config) []string {
		var out []string
		for _, l := range cfg.Layers {
			out = append(out, l.Name)
		}
		return out
	}
	require.Len(t, first.seen, 1)
	assert.Same(t, base, first.seen[0])
	assert.Equal(t, []string{"vendor", "app"}, layerNames(second.seen[0]))
	assert.Equal(t, []string{"vendor", "extra", "app"}, layerNames(third.seen[0]))
	assert.Equal(t, "app", third.seen[0].DefaultLayer)
	assert.Equal(t, []string{"css/*.css"}, third.seen[0].Imports)
	assert.Equal(t, "from-first", third.seen[0].NamedClasses[0].Name)

	assert.Equal(t, []string{"app"}, layerNames(base))
}

func TestPhaseErrors(t *testing.T) {
	rn := engine.New(configtest.Canonical())

	tests := []struct {
		phase Phase
		run   func(r *Registry) error
	}{
		{PhaseReadOptions, func(r *Registry) error { return r.ReadOptions(nil) }},
		{PhaseMutateConfig, func(r *Registry) error { _, err := r.MutateConfig(&config.Config{}); return err }},
		{PhaseGenerateCode, func(r *Registry) error { _, err := r.GenerateCode(rn); return err }},
		{PhaseScanCode, func(r *Registry) error { return r.ScanCode(rn, "x.html", nil, &class.Classes{}) }},
	}

	for _, tt := range tests {
		t.Run(string(tt.phase), func(t *testing.T) {
			r := NewRegistry(nil)
			r.MustRegister(&fakeExt{id: "ok"}, &fakeExt{id: "broken", failIn: tt.phase})

			err := tt.run(r)
			var extErr *Error
			require.True(t, errors.As(err, &extErr))
			assert.Equal(t, "broken", extErr.ID)
			assert.Equal(t, tt.phase, extErr.Phase)
			assert.Contains(t, err.Error(), "extension 'broken' failed in "+string(tt.phase))
			assert.NotNil(t, errors.Unwrap(err))
		})
	}
}

func TestGenerateAndScan(t *testing.T) {
	rn := engine.New(configtest.Canonical())
	r := NewRegistry(nil)
	r.MustRegister(
		&fakeExt{id: "one", files: []File{{Path: "a.json"}}, scan: []string{"pt:$4", "card"}},
		&fakeExt{id: "two", files: []File{{Path: "b.json"}}, scan: []string{"pt:$4", "bogus"}},
	)

	files, err := r.GenerateCode(rn)
	require.NoError(t, err)
	assert.Equal(t, []File{{Path: "a.json"}, {Path: "b.json"}}, files)

	var classes class.Classes
	require.NoError(t, r.ScanCode(rn, "index.html", nil, &classes))
	var raws []string
	for _, c := range classes.All() {
		raws = append(raws, c.Raw())
	}
	assert.ElementsMatch(t, []string{"pt:$4", "pb:$4", "bg:$white"}, raws)
}

func TestBaseIsNoop(t *testing.T) {
	var b Base
	assert.Equal(t, DefaultPriority, b.Priority())
	assert.NoError(t, b.ReadOptions(map[string]any{"x": 1}))
	cfg, err := b.MutateConfig(&config.Config{}, nil)
	assert.NoError(t, err)
	assert.Nil(t, cfg)
	files, err := b.GenerateCode(nil)
	assert.NoError(t, err)
	assert.Nil(t, files)
	found, err := b.ScanCode(nil, "", nil)
	assert.NoError(t, err)
	assert.Nil(t, found)
}
