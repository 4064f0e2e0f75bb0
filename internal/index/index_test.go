package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/atomcss/internal/config"
	"github.com/yacobolo/atomcss/internal/config/configtest"
)

func TestBuild(t *testing.T) {
	ix := Build(configtest.Canonical())

	tests := []struct {
		category Category
		want     []string
	}{
		{Layer, []string{"reset", "components", "utilities"}},
		{Chunk, []string{"base-reset"}},
		{MediaQuery, []string{"sm", "md", "lg", "dark", "print"}},
		{Modifier, []string{"hover", "focus", "first", "group-hover"}},
		{Atom, []string{"pt", "pb", "px", "mt", "w", "bg", "ring", "animate", "gap", "box"}},
		{NamedClass, []string{"container", "btn"}},
		{Alias, []string{"card", "panel", "chip"}},
	}

	for _, tt := range tests {
		t.Run(tt.category.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ix.Names(tt.category))
			for i, name := range tt.want {
				rank, ok := ix.Rank(tt.category, name)
				require.True(t, ok)
				assert.Equal(t, i, rank)
			}
			_, ok := ix.Rank(tt.category, "missing")
			assert.False(t, ok)
		})
	}
}

func TestAtomValues(t *testing.T) {
	ix := Build(configtest.Canonical())

	assert.Equal(t, []string{"0", "4", "10"}, ix.Values("pt"))
	assert.Equal(t, []string{"0", "4", "10", "-4"}, ix.Values("mt"))
	assert.Equal(t, []string{"fg", "red", "white"}, ix.Values("bg"))
	assert.Equal(t, []string{"spin", "pulse"}, ix.Values("animate"))
	assert.Empty(t, ix.Values("gap"))
	assert.Empty(t, ix.Values("missing"))

	rank, ok := ix.ValueRank("mt", "-4")
	require.True(t, ok)
	assert.Equal(t, 3, rank)
	_, ok = ix.ValueRank("pt", "-4")
	assert.False(t, ok)

	assert.True(t, ix.AtomIsKeyframe("animate"))
	assert.False(t, ix.AtomIsKeyframe("pt"))
}

func TestFlattenFollowsGroupPriority(t *testing.T) {
	cfg := configtest.Partial()
	cfg.MediaQueries[1].Priority = config.Prio(10)
	merged, err := config.Merge(cfg, nil)
	require.NoError(t, err)

	ix := Build(merged)
	assert.Equal(t, []string{"dark", "print", "sm", "md", "lg"}, ix.Names(MediaQuery))
}

func TestDuplicatesKeepFirst(t *testing.T) {
	cfg := &config.Config{
		Layers: []config.Layer{{Meta: config.Meta{Name: "a"}}},
		MediaQueries: []config.MediaQueryGroup{
			{Meta: config.Meta{Name: "one"}, Members: []config.MediaQuery{{Meta: config.Meta{Name: "x"}}}},
			{Meta: config.Meta{Name: "two"}, Members: []config.MediaQuery{{Meta: config.Meta{Name: "y"}}, {Meta: config.Meta{Name: "x"}}}},
		},
	}
	ix := Build(cfg)
	assert.Equal(t, []string{"x", "y"}, ix.Names(MediaQuery))
}

func TestAlias(t *testing.T) {
	ix := Build(configtest.Canonical())

	card, ok := ix.Alias("card")
	require.True(t, ok)
	assert.False(t, card.Combined)
	assert.Equal(t, []string{"pt:$4", "pb:$4", "bg:$white", "nope"}, card.Classes)

	chip, ok := ix.Alias("chip")
	require.True(t, ok)
	assert.True(t, chip.Combined)

	_, ok = ix.Alias("missing")
	assert.False(t, ok)
}

func TestUnknownCategory(t *testing.T) {
	ix := Build(&config.Config{})
	_, ok := ix.Rank(Category(99), "x")
	assert.False(t, ok)
	assert.Nil(t, ix.Names(Category(-1)))
	assert.Equal(t, "unknown", Category(99).String())
}
