package bincheck

import (
	"regexp"

	"code-intelligence.com/bincheck/pkg/bininfo"
)

// Entry holds the findings for one visited library.
type Entry struct {
	// Library is the name the library was requested by
	Library string `json:"library"`
	// File is the real path of the library if it differs from the
	// requested name
	File    string             `json:"file,omitempty"`
	Info    []bininfo.InfoLine `json:"info,omitempty"`
	Missing bool               `json:"missing,omitempty"`
	// Unresolved holds the sorted symbols none of the dependencies
	// provide
	Unresolved []string `json:"unresolved,omitempty"`
}

// Failed returns true if the library is missing or has unresolved
// symbols.
func (e *Entry) Failed() bool {
	return e.Missing || len(e.Unresolved) > 0
}

// UnresolvedGroups returns the unresolved symbols grouped by their
// first letter after any leading underscores.
func (e *Entry) UnresolvedGroups() [][]string {
	return GroupSymbols(e.Unresolved)
}

// Result is the verdict of checking one binary.
type Result struct {
	Binary string `json:"binary"`
	// Errors is the number of libraries which are missing or have
	// unresolved symbols
	Errors  int      `json:"errors"`
	Entries []*Entry `json:"entries"`
}

func (r *Result) OK() bool {
	return r.Errors == 0
}

// Diagnostics returns the entries of the libraries which failed.
func (r *Result) Diagnostics() []*Entry {
	var failed []*Entry
	for _, e := range r.Entries {
		if e.Failed() {
			failed = append(failed, e)
		}
	}
	return failed
}

var groupKeyRegex = regexp.MustCompile(`^_*.?`)

// GroupSymbols splits the sorted symbols into runs which share the same
// first letter, ignoring leading underscores.
func GroupSymbols(sorted []string) [][]string {
	var groups [][]string
	var key string
	for i, sym := range sorted {
		k := groupKeyRegex.FindString(sym)
		if i == 0 || k != key {
			groups = append(groups, nil)
			key = k
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], sym)
	}
	return groups
}
