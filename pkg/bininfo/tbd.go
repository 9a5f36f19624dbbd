package bininfo

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// tbdDocument is one document of a text-based stub (.tbd) file as
// shipped with the macOS SDK, in place of the libraries which only
// exist in the dyld shared cache.
type tbdDocument struct {
	InstallName string       `yaml:"install-name"`
	Exports     []tbdSection `yaml:"exports"`
	Reexports   []tbdSection `yaml:"reexports"`
}

type tbdSection struct {
	Symbols     []string `yaml:"symbols"`
	WeakSymbols []string `yaml:"weak-symbols"`
	ObjCClasses []string `yaml:"objc-classes"`
	ObjCEHTypes []string `yaml:"objc-eh-types"`
}

// ParseTBD parses a text-based stub. The first document describes the
// library itself, the following ones the libraries it re-exports.
// The symbols of all documents are provided by the library.
func ParseTBD(r io.Reader) (*Library, error) {
	lib := NewLibrary(FormatStub)

	// TODO: honor the targets of a document and its sections, all
	// architectures are merged for now.
	decoder := yaml.NewDecoder(r)
	for n := 0; ; n++ {
		var node yaml.Node
		err := decoder.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.WithStack(&MalformedError{Format: FormatStub, Reason: err.Error()})
		}
		if len(node.Content) == 0 {
			continue
		}

		root := node.Content[0]
		if root.Kind != yaml.MappingNode {
			return nil, malformed(FormatStub, root.Line, "document %d is not a mapping", n)
		}
		// Documents are tagged with "!tapi-tbd", which is just a
		// mapping for our purposes
		root.Tag = ""

		var doc tbdDocument
		err = root.Decode(&doc)
		if err != nil {
			return nil, errors.WithStack(&MalformedError{Format: FormatStub, Line: root.Line, Reason: err.Error()})
		}

		if doc.InstallName != "" {
			if n == 0 {
				lib.SONAME = doc.InstallName
			} else {
				lib.Reexport = append(lib.Reexport, doc.InstallName)
			}
		}
		for _, section := range append(doc.Exports, doc.Reexports...) {
			section.addSymbols(lib.Provides)
		}
	}
	return lib, nil
}

func (s *tbdSection) addSymbols(provides Symbols) {
	provides.Add(s.WeakSymbols...)
	provides.Add(s.Symbols...)
	for _, ehType := range s.ObjCEHTypes {
		provides.Add("_OBJC_EHTYPE_$_" + ehType)
	}
	for _, class := range s.ObjCClasses {
		provides.Add("_OBJC_CLASS_$_"+class, "_OBJC_METACLASS_$_"+class)
	}
}

// ReadTBDFile parses the text-based stub at the given path.
func ReadTBDFile(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	lib, err := ParseTBD(f)
	return lib, withPath(err, path)
}
