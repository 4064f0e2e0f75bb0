package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/atomcss/internal/config/configtest"
	"github.com/yacobolo/atomcss/internal/engine"
)

func values(tokens []Token) []string {
	var out []string
	for _, tok := range tokens {
		out = append(out, tok.Value)
	}
	return out
}

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{name: "html", src: `<div class="pt:$4 md:hover:bg:$fg">`, want: []string{"pt:$4", "md:hover:bg:$fg"}},
		{name: "single quotes", src: `<div class='card  chip'>`, want: []string{"card", "chip"}},
		{name: "jsx", src: `<div className="w:[3px] gap">`, want: []string{"w:[3px]", "gap"}},
		{name: "jsx expression", src: "<div className={`px:$10`}>", want: []string{"px:$10"}},
		{name: "templ expression", src: `<div class={ "container" }>`, want: []string{"container"}},
		{name: "templ.Classes", src: `<div class={ templ.Classes("pt:$0 pb:$4", ui.Foo, "btn") }>`, want: []string{"pt:$0", "pb:$4", "btn"}},
		{name: "templ.KV", src: `<div class={ templ.KV("chip card", active) }>`, want: []string{"chip", "card"}},
		{name: "comment", src: `  // <div class="pt:$4">`, want: nil},
		{name: "empty attribute", src: `<div class="">`, want: nil},
		{name: "several attributes", src: `<a class="pt:$0"></a><b class="pb:$0"></b>`, want: []string{"pt:$0", "pb:$0"}},
		{name: "multiline", src: "<p>\n<i class=\"gap\">\n</p>", want: []string{"gap"}},
	}

	s, err := NewScanner()
	require.NoError(t, err)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := s.Scan([]byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, values(tokens))
		})
	}
}

func TestScanPositions(t *testing.T) {
	s, err := NewScanner()
	require.NoError(t, err)

	tokens, err := s.Scan([]byte("<html>\n  <div class=\"btn  pt:$4\">"))
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	assert.Equal(t, Token{Value: "btn", Line: 2, Column: 15, Text: `  <div class="btn  pt:$4">`}, tokens[0])
	assert.Equal(t, 20, tokens[1].Column)
	assert.Equal(t, 2, tokens[1].Line)
}

func TestExtraPatterns(t *testing.T) {
	s, err := NewScanner(`cx\("([^"]*)"\)`)
	require.NoError(t, err)
	tokens, err := s.Scan([]byte(`x := cx("pt:$4 gap")`))
	require.NoError(t, err)
	assert.Equal(t, []string{"pt:$4", "gap"}, values(tokens))

	_, err = NewScanner(`(`)
	assert.Error(t, err)
	_, err = NewScanner(`no-groups`)
	assert.ErrorContains(t, err, "exactly one capture group")
}

func TestIsTemplGenerated(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "internal/web/sidebar_templ.go", want: true},
		{path: "internal/web/sidebar.templ.go", want: true},
		{path: "internal/web/sidebar.templ", want: false},
		{path: "internal/api/handlers.go", want: false},
		{path: "templates/index.html", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTemplGenerated(tt.path))
		})
	}
}

func TestScanCode(t *testing.T) {
	rn := engine.New(configtest.Canonical())
	src := []byte(`<div class="pt:$4 bogus card md:pt:$4">`)

	m := New()
	require.NoError(t, m.ReadOptions(nil))
	classes, err := m.ScanCode(rn, "index.html", src)
	require.NoError(t, err)

	var raws []string
	for _, c := range classes {
		raws = append(raws, c.Raw())
	}
	assert.Equal(t, []string{"pt:$4", "pt:$4", "pb:$4", "bg:$white", "md:pt:$4"}, raws)

	classes, err = m.ScanCode(rn, "page_templ.go", src)
	require.NoError(t, err)
	assert.Empty(t, classes)

	require.NoError(t, m.ReadOptions(map[string]any{"include_generated": true}))
	classes, err = m.ScanCode(rn, "page_templ.go", src)
	require.NoError(t, err)
	assert.Len(t, classes, 5)
}

func TestReadOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    map[string]any
		wantErr string
	}{
		{name: "patterns", opts: map[string]any{"patterns": []any{`cx\("([^"]*)"\)`}}},
		{name: "not a list", opts: map[string]any{"patterns": "x"}, wantErr: "patterns must be a list"},
		{name: "not a string", opts: map[string]any{"patterns": []any{1}}, wantErr: "pattern must be a string"},
		{name: "bad regex", opts: map[string]any{"patterns": []any{`(`}}, wantErr: "pattern"},
		{name: "bad flag", opts: map[string]any{"include_generated": "yes"}, wantErr: "include_generated must be a boolean"},
		{name: "unknown", opts: map[string]any{"other": 1}, wantErr: `unknown option "other"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New().ReadOptions(tt.opts)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
