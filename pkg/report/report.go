// Package report renders check results and library descriptors as the
// human-readable trace or as JSON.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"github.com/pkg/errors"

	"code-intelligence.com/bincheck/pkg/bincheck"
	"code-intelligence.com/bincheck/pkg/bininfo"
	"code-intelligence.com/bincheck/util/stringutil"
)

const (
	symbolsWidth  = 60
	symbolsIndent = 4
)

type Reporter struct {
	out     io.Writer
	palette *Palette
	// Print the trace of passing binaries as well
	verbose bool
}

func NewReporter(out io.Writer, palette *Palette, verbose bool) *Reporter {
	return &Reporter{out: out, palette: palette, verbose: verbose}
}

// Result prints the verdict of the check, followed by the trace of all
// visited libraries if the check failed.
func (r *Reporter) Result(res *bincheck.Result) error {
	err := r.Verdict(res)
	if err != nil {
		return err
	}
	if res.OK() && !r.verbose {
		return nil
	}
	return r.Trace(res.Entries)
}

// Verdict prints "binary: OK" or "binary: KO".
func (r *Reporter) Verdict(res *bincheck.Result) error {
	verdict := r.palette.OK("OK")
	if !res.OK() {
		verdict = r.palette.KO("KO")
	}
	_, err := fmt.Fprintf(r.out, "%s: %s\n", r.palette.Header(res.Binary), verdict)
	return errors.WithStack(err)
}

// Trace prints the findings for each library in the order they were
// recorded.
func (r *Reporter) Trace(entries []*bincheck.Entry) error {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(r.palette.Notice(e.Library) + "\n")
		if e.Missing {
			b.WriteString(r.palette.Error("  MISSING") + "\n")
			continue
		}
		if e.File != "" {
			b.WriteString(infoLine("FILE", e.File))
		}
		for _, line := range e.Info {
			b.WriteString(infoLine(line.Key, line.Value))
		}
		if len(e.Unresolved) > 0 {
			b.WriteString(r.palette.Error("  UNRESOLVED") + ":\n")
			for _, group := range e.UnresolvedGroups() {
				b.WriteString(WrapSymbols(group) + "\n")
			}
		}
	}
	_, err := io.WriteString(r.out, b.String())
	return errors.WithStack(err)
}

// Info prints the audit lines of a library descriptor.
func (r *Reporter) Info(binary string, lib *bininfo.Library) error {
	var b strings.Builder
	b.WriteString(r.palette.Header(binary) + ":\n")
	for _, line := range lib.Info() {
		b.WriteString(infoLine(line.Key, line.Value))
	}
	_, err := io.WriteString(r.out, b.String())
	return errors.WithStack(err)
}

// JSON prints the value as indented JSON, colored if the palette is
// enabled.
func (r *Reporter) JSON(v any) error {
	s, err := stringutil.ToJSONString(v, r.palette != nil && r.palette.Enabled)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.out, s)
	return errors.WithStack(err)
}

func infoLine(key, value string) string {
	return fmt.Sprintf("  %-10s: %s\n", key, value)
}

// WrapSymbols joins the symbols with two spaces and wraps them into
// indented lines. Symbols are never split.
func WrapSymbols(symbols []string) string {
	wrapped := wordwrap.WrapString(strings.Join(symbols, "  "), symbolsWidth-symbolsIndent)
	indent := strings.Repeat(" ", symbolsIndent)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = indent + strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
