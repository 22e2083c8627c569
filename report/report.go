// Package report renders the progress of an attack against the ground truth and
// exports its results. Everything in this package is observational: it reads the
// secret coefficients of the victim for display and scoring only.
package report

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"golang.org/x/term"
)

const (
	colorGrey  = "\033[0;90m"
	colorRed   = "\033[0;31m"
	colorGreen = "\033[0;32m"
	colorReset = "\033[0m"

	clearScreen = "\033[2J\033[1;1H"

	separator = "=================================================================================================================================\n"

	// NewlineEvery is the number of coefficients per line of the grids.
	NewlineEvery = 32
)

// Terminal returns a writer on the standard output that understands ANSI escape
// sequences, and whether the standard output is a terminal.
func Terminal() (w io.Writer, isTerminal bool) {
	return colorable.NewColorable(os.Stdout), term.IsTerminal(int(os.Stdout.Fd()))
}
