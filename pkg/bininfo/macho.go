package bininfo

import (
	"io"
	"regexp"
	"strings"

	"code-intelligence.com/bincheck/util/stringutil"
)

// The load command kinds which are relevant for dynamic linking
var loadCommandFields = map[string]string{
	"LC_ID_DYLIB":        "soname",
	"LC_RPATH":           "rpath",
	"LC_LOAD_DYLIB":      "needed",
	"LC_LOAD_WEAK_DYLIB": "needed",
	// Yes, it's a thing, dependency cycles…
	"LC_LOAD_UPWARD_DYLIB": "upneeded",
	// Export symbols from this lib too.
	"LC_REEXPORT_DYLIB": "reexport",
}

var offsetSuffixRegex = regexp.MustCompile(`\s*\(offset \d+\)$`)

type loadCommand struct {
	line   int
	values map[string]string
}

// ParseMachO parses the output of `otool -lX <binary>` and
// `nm -P <binary>`.
//
// The load commands look like this (abbreviated):
//
//	Load command 4
//	          cmd LC_ID_DYLIB
//	      cmdsize 48
//	         name @rpath/libwrap-mupdf.so (offset 24)
//	   time stamp 1 Thu Jan  1 01:00:01 1970
//	Load command 11
//	          cmd LC_LOAD_DYLIB
//	      cmdsize 56
//	         name @rpath/libfreetype.6.dylib (offset 24)
//
// The symbol table has one "<name> <kind> [<value> <size>]" line per
// symbol.
func ParseMachO(loadCommands io.Reader, symbols io.Reader) (*Library, error) {
	lib := NewLibrary(FormatMachO)

	commands, err := parseLoadCommands(loadCommands)
	if err != nil {
		return nil, err
	}
	for _, cmd := range commands {
		field, ok := loadCommandFields[cmd.values["cmd"]]
		if !ok {
			continue
		}
		key := "name"
		if field == "rpath" {
			key = "path"
		}
		value, ok := cmd.values[key]
		if !ok {
			return nil, malformed(FormatMachO, cmd.line, "%s load command without %s", cmd.values["cmd"], key)
		}
		value = offsetSuffixRegex.ReplaceAllString(value, "")

		switch field {
		case "soname":
			if lib.SONAME != "" {
				return nil, malformed(FormatMachO, cmd.line, "second LC_ID_DYLIB %q after %q", value, lib.SONAME)
			}
			lib.SONAME = value
		case "rpath":
			lib.RPath = stringutil.JoinNonEmpty([]string{lib.RPath, value}, ":")
		case "needed":
			lib.Needed = append(lib.Needed, value)
		case "upneeded":
			lib.Upneeded = append(lib.Upneeded, value)
		case "reexport":
			lib.Reexport = append(lib.Reexport, value)
		}
	}

	err = parseSymbolTable(lib, symbols)
	if err != nil {
		return nil, err
	}
	return lib, nil
}

func parseLoadCommands(r io.Reader) ([]*loadCommand, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	var commands []*loadCommand
	var current *loadCommand
	for i, line := range lines {
		if strings.HasPrefix(line, "Load command") {
			current = &loadCommand{line: i + 1, values: map[string]string{}}
			commands = append(commands, current)
			continue
		}
		// The Mach header and the sections of a segment aren't load
		// commands themselves
		if strings.HasPrefix(line, "Mach") || strings.HasPrefix(line, "Section") {
			current = nil
			continue
		}
		if current == nil || strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitFields(line, 2)
		if len(fields) != 2 {
			return nil, malformed(FormatMachO, i+1, "expected key and value in load command, got %q", line)
		}
		current.values[fields[0]] = fields[1]
	}
	return commands, nil
}

func parseSymbolTable(lib *Library, r io.Reader) error {
	lines, err := readLines(r)
	if err != nil {
		return err
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return malformed(FormatMachO, i+1, "expected symbol name and type, got %q", line)
		}
		sym, kind := fields[0], fields[1]
		switch {
		case kind == "U":
			lib.Unresolved.Add(sym)
		case len(kind) == 1 && strings.Contains("ABCDIST", kind):
			// Upper case kinds are external symbols
			lib.Provides.Add(sym)
		}
	}
	return nil
}
