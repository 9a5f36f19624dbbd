package report

import (
	"fmt"

	"github.com/gookit/color"
)

var (
	errorStyle  = color.Style{color.FgRed, color.OpBold}
	headerStyle = color.Style{color.FgGreen, color.OpBold}
	koStyle     = color.Style{color.FgRed}
	noticeStyle = color.Style{color.FgBlue, color.OpBold}
	okStyle     = color.Style{color.FgGreen}
)

// Palette renders the parts of the report in color if enabled. Whether
// colors are enabled is decided by the caller, the palette never looks
// at the terminal.
type Palette struct {
	Enabled bool
}

func (p *Palette) render(style color.Style, s string) string {
	if p == nil || !p.Enabled {
		return s
	}
	return fmt.Sprintf(color.FullColorTpl, style.Code(), s)
}

func (p *Palette) Error(s string) string  { return p.render(errorStyle, s) }
func (p *Palette) Header(s string) string { return p.render(headerStyle, s) }
func (p *Palette) KO(s string) string     { return p.render(koStyle, s) }
func (p *Palette) Notice(s string) string { return p.render(noticeStyle, s) }
func (p *Palette) OK(s string) string     { return p.render(okStyle, s) }
