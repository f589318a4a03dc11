package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
)

// startSpinner shows a spinner with text while a backend call is running and
// returns a function that removes it. Nothing is drawn unless out is the
// terminal's stdout.
func startSpinner(out io.Writer, text string) func() {
	if f, ok := out.(*os.File); !ok || f != os.Stdout {
		return func() {}
	}
	sp, err := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start(text)
	if err != nil {
		return func() {}
	}
	return func() { _ = sp.Stop() }
}

// notLoggedIn prints the hint shown when no session is stored.
func notLoggedIn(out io.Writer) {
	fmt.Fprintln(out, "🔒 You're not logged in yet!")
	fmt.Fprintln(out, "   Run 'organizer login' to get started.")
}
