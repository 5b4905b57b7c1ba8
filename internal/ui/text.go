// Package ui provides semantic text formatting for terminal output.
//
// Formatters colorize through fatih/color. When NO_COLOR is set, or the
// terminal cannot show colors, some formatters fall back to plain text
// decorations instead:
//
//	ui.Code.Sprint("unlock")      // `unlock`
//	ui.Highlight.Sprint("down")   // 'down'
//	ui.Muted.Sprint("3 entries")  // (3 entries)
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter applies semantic formatting to text.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

func (f Formatter) Sprint(a ...any) string {
	return f.render(fmt.Sprint(a...))
}

func (f Formatter) Sprintf(format string, a ...any) string {
	return f.render(fmt.Sprintf(format, a...))
}

func (f Formatter) render(text string) string {
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

func noColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	return color.NoColor
}

var (
	// Code formats commands the user can type.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path formats file paths.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	Success = Formatter{color.New(color.FgGreen), "", ""}
	Error   = Formatter{color.New(color.FgRed), "", ""}
	Warning = Formatter{color.New(color.FgYellow), "", ""}
	Info    = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight formats user values such as entry ids and moods.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}

	// Muted formats secondary text such as timestamps.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)
