package ui

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// StartSpinner shows message with a spinner on w while a long operation
// runs, and returns the func that clears it. Nothing is drawn when w is not
// a terminal.
func StartSpinner(w io.Writer, message string) (stop func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Writer = w
	s.Suffix = " " + message
	_ = s.Color("cyan")
	s.Start()
	return s.Stop
}
