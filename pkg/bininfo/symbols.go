package bininfo

import (
	"encoding/json"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Symbols is a set of symbol names.
type Symbols map[string]struct{}

func NewSymbols(names ...string) Symbols {
	s := make(Symbols, len(names))
	for _, name := range names {
		s[name] = struct{}{}
	}
	return s
}

func (s Symbols) Add(names ...string) {
	for _, name := range names {
		s[name] = struct{}{}
	}
}

func (s Symbols) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Update adds all symbols of other to s.
func (s Symbols) Update(other Symbols) {
	for name := range other {
		s[name] = struct{}{}
	}
}

// Discard removes all symbols of other from s.
func (s Symbols) Discard(other Symbols) {
	// Iterate over the smaller set, the preloaded or provided sets
	// are usually much bigger than the unresolved one.
	if len(other) > len(s) {
		for name := range s {
			if other.Has(name) {
				delete(s, name)
			}
		}
		return
	}
	for name := range other {
		delete(s, name)
	}
}

// Difference returns a new set with the symbols of s which are not in
// other.
func (s Symbols) Difference(other Symbols) Symbols {
	res := make(Symbols, len(s))
	for name := range s {
		if !other.Has(name) {
			res[name] = struct{}{}
		}
	}
	return res
}

func (s Symbols) Clone() Symbols {
	res := make(Symbols, len(s))
	res.Update(s)
	return res
}

// Sorted returns the symbols in lexical order.
func (s Symbols) Sorted() []string {
	names := maps.Keys(s)
	slices.Sort(names)
	return names
}

func (s Symbols) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}
