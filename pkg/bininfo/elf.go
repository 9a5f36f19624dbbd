package bininfo

import (
	"io"
	"strings"

	"code-intelligence.com/bincheck/pkg/log"
)

const (
	dynamicSectionPrefix = "Dynamic section "
	dynsymTablePrefix    = "Symbol table '.dynsym'"
)

// ParseELF parses the output of
//
//	readelf --dyn-syms --dynamic --wide <binary>
//
// which looks like this (abbreviated):
//
//	Dynamic section at offset 0x4b7b60 contains 33 entries:
//	  Tag        Type                         Name/Value
//	 0x0000000000000001 (NEEDED)             Shared library: [libfreetype.so.6]
//	 0x000000000000000e (SONAME)             Library soname: [libwrap-mupdf.so]
//	 0x000000000000000f (RPATH)              Library rpath: [$ORIGIN:$ORIGIN/libs]
//	 0x000000000000000c (INIT)               0x4b000
//
//	Symbol table '.dynsym' contains 282 entries:
//	   Num:    Value          Size Type    Bind   Vis      Ndx Name
//	     0: 0000000000000000     0 NOTYPE  LOCAL  DEFAULT  UND
//	     1: 0000000000000000     0 FUNC    GLOBAL DEFAULT  UND log10@GLIBC_2.2.5 (2)
//	     4: 0000000000000000     0 FUNC    GLOBAL DEFAULT  UND FT_Set_Transform
//	     9: 00000000000a3b10   112 FUNC    GLOBAL DEFAULT   12 fz_open_file
func ParseELF(r io.Reader) (*Library, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	lib := NewLibrary(FormatELF)

	// Statically linked binaries don't have a dynamic section
	if start := indexPrefix(lines, dynamicSectionPrefix); start != -1 {
		err = parseDynamicSection(lib, lines, start)
		if err != nil {
			return nil, err
		}
	}

	if start := indexPrefix(lines, dynsymTablePrefix); start != -1 {
		err = parseDynamicSymbols(lib, lines, start)
		if err != nil {
			return nil, err
		}
	}

	expandDefaultVersions(lib)
	lib.Unresolved.Discard(lib.Provides)
	return lib, nil
}

func parseDynamicSection(lib *Library, lines []string, start int) error {
	// Skip the title and the column headers
	if start+1 >= len(lines) {
		return malformed(FormatELF, start+1, "dynamic section without column headers")
	}

	for i := start + 2; i < len(lines) && strings.TrimSpace(lines[i]) != ""; i++ {
		fields := splitFields(lines[i], 3)
		if len(fields) != 3 {
			return malformed(FormatELF, i+1, "expected 3 fields in dynamic entry, got %d: %q", len(fields), lines[i])
		}
		if !strings.HasPrefix(fields[1], "(") || !strings.HasSuffix(fields[1], ")") {
			continue
		}
		kind := strings.ToLower(fields[1][1 : len(fields[1])-1])
		switch kind {
		case "needed", "soname", "rpath", "runpath":
		default:
			continue
		}

		value, err := bracketedValue(fields[2], i+1)
		if err != nil {
			return err
		}

		var scalar *string
		switch kind {
		case "needed":
			lib.Needed = append(lib.Needed, value)
			continue
		case "soname":
			scalar = &lib.SONAME
		case "rpath":
			scalar = &lib.RPath
		case "runpath":
			scalar = &lib.RunPath
		}
		if *scalar != "" {
			log.Debugf("Ignoring duplicate %s entry %q", strings.ToUpper(kind), value)
			continue
		}
		*scalar = value
	}
	return nil
}

// bracketedValue extracts "libc.so.6" from "Shared library: [libc.so.6]"
func bracketedValue(field string, line int) (string, error) {
	parts := strings.SplitN(field, ": [", 2)
	if len(parts) != 2 || !strings.HasSuffix(parts[1], "]") {
		return "", malformed(FormatELF, line, "unexpected dynamic entry value %q", field)
	}
	return strings.TrimSuffix(parts[1], "]"), nil
}

func parseDynamicSymbols(lib *Library, lines []string, start int) error {
	if start+1 >= len(lines) {
		return malformed(FormatELF, start+1, "symbol table without column headers")
	}

	for i := start + 2; i < len(lines) && strings.TrimSpace(lines[i]) != ""; i++ {
		fields := strings.Fields(lines[i])
		if len(fields) < 7 || len(fields) > 9 {
			return malformed(FormatELF, i+1, "expected 7 to 9 fields in symbol entry, got %d: %q", len(fields), lines[i])
		}
		// Symbols without a name, like the null symbol
		if len(fields) == 7 {
			continue
		}
		bind, ndx, name := fields[4], fields[6], fields[7]
		if bind == "LOCAL" {
			continue
		}
		if ndx == "UND" {
			// Weak references don't have to be resolved at load time
			if bind == "WEAK" {
				continue
			}
			lib.Unresolved.Add(name)
		} else {
			lib.Provides.Add(name)
		}
	}
	return nil
}

// expandDefaultVersions makes a symbol exported with a default version,
// like "malloc@@GLIBC_2.2.5", resolvable by both "malloc" and
// "malloc@GLIBC_2.2.5", since either spelling can be referenced by
// other binaries.
func expandDefaultVersions(lib *Library) {
	var expanded []string
	for sym := range lib.Provides {
		name, version, found := strings.Cut(sym, "@@")
		if !found {
			continue
		}
		expanded = append(expanded, name, name+"@"+version)
	}
	lib.Provides.Add(expanded...)
}
