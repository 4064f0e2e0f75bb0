package class

import "sort"

// Classes is a set of classes keyed by selector and kept sorted by Compare.
// The zero value is ready to use.
type Classes struct {
	items     []Class
	selectors map[string]struct{}
}

// NewClasses builds a collection from classes.
func NewClasses(classes ...Class) *Classes {
	cs := &Classes{}
	cs.Extend(classes...)
	return cs
}

// Insert adds c unless a class with the same selector is present. It reports
// whether c was added.
func (cs *Classes) Insert(c Class) bool {
	sel := c.Selector()
	if cs.selectors == nil {
		cs.selectors = make(map[string]struct{})
	}
	if _, ok := cs.selectors[sel]; ok {
		return false
	}
	cs.selectors[sel] = struct{}{}

	i := sort.Search(len(cs.items), func(i int) bool {
		return Compare(cs.items[i], c) > 0
	})
	cs.items = append(cs.items, Class{})
	copy(cs.items[i+1:], cs.items[i:])
	cs.items[i] = c
	return true
}

// Extend inserts every class.
func (cs *Classes) Extend(classes ...Class) {
	for _, c := range classes {
		cs.Insert(c)
	}
}

// Merge inserts every class of other.
func (cs *Classes) Merge(other *Classes) {
	if other == nil {
		return
	}
	cs.Extend(other.items...)
}

// Contains reports whether a class with c's selector is present.
func (cs *Classes) Contains(c Class) bool {
	_, ok := cs.selectors[c.Selector()]
	return ok
}

// Len returns the number of classes.
func (cs *Classes) Len() int {
	if cs == nil {
		return 0
	}
	return len(cs.items)
}

// All returns the classes in order.
func (cs *Classes) All() []Class {
	if cs == nil {
		return nil
	}
	return append([]Class(nil), cs.items...)
}
