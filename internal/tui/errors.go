package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/Jrakru/spec-kit/internal/core"
)

// PrintError shows a failure panel. Fetch errors get the full treatment
// with hints and the asset list; anything else renders as a single line.
func PrintError(w io.Writer, err error) {
	if fe, ok := core.IsFetchError(err); ok {
		printFetchError(w, fe)
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, errorPanelStyle.Render(errorStyle.Render("Error")+"\n\n"+err.Error()))
}

func printFetchError(w io.Writer, fe *core.FetchError) {
	var b strings.Builder
	b.WriteString(errorStyle.Render("Template fetch failed") + "\n\n")
	b.WriteString(fe.Error())

	if fe.StatusCode != 0 {
		b.WriteString("\n" + mutedStyle.Render(fmt.Sprintf("HTTP status: %d", fe.StatusCode)))
	}
	if fe.URL != "" {
		b.WriteString("\n" + mutedStyle.Render("URL: "+fe.URL))
	}

	if len(fe.Assets) > 0 {
		b.WriteString("\n\n" + brightStyle.Render("Release assets:"))
		for _, name := range fe.Assets {
			b.WriteString("\n  - " + mutedStyle.Render(name))
		}
	}

	if len(fe.Hints) > 0 {
		b.WriteString("\n\n" + warningStyle.Render("Hints:"))
		for _, hint := range fe.Hints {
			b.WriteString("\n  • " + hint)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, errorPanelStyle.Render(b.String()))
}
