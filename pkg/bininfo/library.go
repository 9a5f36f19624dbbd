// Package bininfo extracts the dynamic linking metadata of ELF and
// Mach-O binaries (and of the text-based stubs which stand in for
// Mach-O libraries absent from disk) into one normalized Library
// descriptor.
package bininfo

// Platform selects the binary format family whose linking semantics
// apply to a check.
type Platform string

const (
	ELF   Platform = "elf"
	MachO Platform = "macho"
)

// Format tells which extractor produced a descriptor.
type Format string

const (
	FormatELF   Format = "elf"
	FormatMachO Format = "macho"
	FormatStub  Format = "tbd"
)

// Library is the normalized view of one binary or library.
type Library struct {
	Format Format `json:"format"`
	// SONAME is the library's self-declared name, empty if it
	// doesn't declare one.
	SONAME  string `json:"soname,omitempty"`
	RPath   string `json:"rpath,omitempty"`
	RunPath string `json:"runpath,omitempty"`
	// Needed lists the direct dependencies in declaration order,
	// duplicates included.
	Needed []string `json:"needed,omitempty"`
	// Upneeded lists upward dependencies, which are allowed to depend
	// on this library in turn.
	Upneeded []string `json:"upneeded,omitempty"`
	// Reexport lists the libraries whose exported symbols are exported
	// by this library as well.
	Reexport []string `json:"reexport,omitempty"`

	// Provides holds the defined, exported symbols.
	Provides Symbols `json:"provides"`
	// Unresolved holds the undefined symbols which are required to be
	// provided by some dependency. Weak references are not included.
	Unresolved Symbols `json:"unresolved"`
}

func NewLibrary(format Format) *Library {
	return &Library{
		Format:     format,
		Provides:   NewSymbols(),
		Unresolved: NewSymbols(),
	}
}

// IsStub returns true if the descriptor was parsed from a text stub
// instead of a real binary.
func (l *Library) IsStub() bool {
	return l.Format == FormatStub
}

// InfoLine is one audit line describing a library, like
// "NEEDED : libc.so.6".
type InfoLine struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Info returns the audit lines of the library in the order SONAME,
// RPATH, RUNPATH, NEEDED, UPNEEDED, REEXPORT.
func (l *Library) Info() []InfoLine {
	var lines []InfoLine
	if l.SONAME != "" {
		lines = append(lines, InfoLine{"SONAME", l.SONAME})
	}
	if l.RPath != "" {
		lines = append(lines, InfoLine{"RPATH", l.RPath})
	}
	if l.RunPath != "" {
		lines = append(lines, InfoLine{"RUNPATH", l.RunPath})
	}
	for _, need := range l.Needed {
		lines = append(lines, InfoLine{"NEEDED", need})
	}
	for _, need := range l.Upneeded {
		lines = append(lines, InfoLine{"UPNEEDED", need})
	}
	for _, export := range l.Reexport {
		lines = append(lines, InfoLine{"REEXPORT", export})
	}
	return lines
}
