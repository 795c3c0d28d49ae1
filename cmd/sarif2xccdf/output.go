package main

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dkoosis/sarif2xccdf/pkg/render"
)

// renderer picks the report renderer for w from the resolved format and theme.
func (a *app) renderer(w io.Writer) render.Renderer {
	switch resolveFormat(a.cfg.Format, w) {
	case "json":
		return render.NewJSON()
	case "llm":
		return render.NewLLM()
	default:
		return render.NewTerminal(render.ThemeByName(a.cfg.Theme), termWidth(w))
	}
}

// resolveFormat maps "auto" to terminal for a TTY and llm otherwise.
func resolveFormat(format string, w io.Writer) string {
	if format != "auto" {
		return format
	}
	if isTTYWriter(w) {
		return "terminal"
	}
	return "llm"
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termWidth returns the terminal width for w, defaulting to 80.
func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return 80
}
