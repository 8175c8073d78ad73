package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders markdown for the terminal. When rendering fails
// (no TTY capabilities, odd TERM) the raw markdown is still printed.
func printMarkdown(doc string) {
	out, err := glamour.Render(doc, "auto")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot render markdown: %v\n", err)
		fmt.Println(doc)
		return
	}
	fmt.Print(out)
}
