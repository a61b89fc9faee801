package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the pushdown ASCII art banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	// A stack of cool tones, lightest on top
	lines := []struct {
		text  string
		color string
	}{
		{"                 _         _", "#7dd3fc"},
		{"  _ __ _  _ _ __| |_  __| |_____ __ ___ _", "#38bdf8"},
		{" | '_ \\ || (_-< ' \\/ _` / _ \\ V  V / ' \\", "#0ea5e9"},
		{" | .__/\\_,_/__/_||_\\__,_\\___/\\_/\\_/|_||_|", "#0284c7"},
		{" |_|", "#0369a1"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
