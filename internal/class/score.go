package class

import (
	"cmp"
	"slices"
)

// Score is the ordering key of a Class. Single slots hold rank+1 so that an
// absent slot (0) sorts before any present one. MediaQueries and Modifiers
// hold the ranks in the order the tokens appeared.
type Score struct {
	Layer        int
	Chunk        int
	MediaQueries []int
	Modifiers    []int
	Atom         int
	Value        int
	NamedClass   int
	Alias        int
	Argument     string
}

// Compare orders scores lexicographically, slot by slot. A vector that is a
// proper prefix of another sorts first.
func (s Score) Compare(o Score) int {
	if n := cmp.Compare(s.Layer, o.Layer); n != 0 {
		return n
	}
	if n := cmp.Compare(s.Chunk, o.Chunk); n != 0 {
		return n
	}
	if n := slices.Compare(s.MediaQueries, o.MediaQueries); n != 0 {
		return n
	}
	if n := slices.Compare(s.Modifiers, o.Modifiers); n != 0 {
		return n
	}
	if n := cmp.Compare(s.Atom, o.Atom); n != 0 {
		return n
	}
	if n := cmp.Compare(s.Value, o.Value); n != 0 {
		return n
	}
	if n := cmp.Compare(s.NamedClass, o.NamedClass); n != 0 {
		return n
	}
	if n := cmp.Compare(s.Alias, o.Alias); n != 0 {
		return n
	}
	return cmp.Compare(s.Argument, o.Argument)
}
