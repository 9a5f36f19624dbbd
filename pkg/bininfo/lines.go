package bininfo

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Symbol names of C++ templates can get really long
const maxLineLength = 16 * 1024 * 1024

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineLength)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return lines, nil
}

// indexPrefix returns the index of the first line starting with prefix
// or -1.
func indexPrefix(lines []string, prefix string) int {
	for i, line := range lines {
		if strings.HasPrefix(line, prefix) {
			return i
		}
	}
	return -1
}

// splitFields splits s around runs of whitespace into at most n fields,
// the last field holding the rest of the line.
func splitFields(s string, n int) []string {
	var fields []string
	s = strings.TrimSpace(s)
	for s != "" {
		if len(fields) == n-1 {
			fields = append(fields, s)
			break
		}
		i := strings.IndexAny(s, " \t")
		if i == -1 {
			fields = append(fields, s)
			break
		}
		fields = append(fields, s[:i])
		s = strings.TrimLeft(s[i:], " \t")
	}
	return fields
}
