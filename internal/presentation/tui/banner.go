package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ml4ir gate banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	// Using a subtle gradient-like color scheme (Indigo/Violet)
	lines := []struct {
		text  string
		color string
	}{
		{"            _ _ _", "#818cf8"},
		{"  _ __ ___ | | | |  (_)_ __", "#a78bfa"},
		{" | '_ ` _ \\| | | |_ | | '__|", "#c084fc"},
		{" | | | | | | |__   _|| | |", "#e879f9"},
		{" |_| |_| |_|_|  |_|  |_|_|   gate", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, out.String("  version "+version).Faint())
	fmt.Fprintln(w)
}
