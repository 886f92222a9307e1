package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the typeb banner, shaded per line.
func PrintBanner(w io.Writer, version string) {
	p := termenv.EnvColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _                    _     ", "#c084fc"},
		{"| |_ _   _ _ __   ___| |__  ", "#a855f7"},
		{"| __| | | | '_ \\ / _ \\ '_ \\ ", "#9333ea"},
		{"| |_| |_| | |_) |  __/ |_) |", "#7e22ce"},
		{" \\__|\\__, | .__/ \\___|_.__/ ", "#6b21a8"},
		{"     |___/|_|               ", "#581c87"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  stepping-switch cipher  v"+version).Faint())
	fmt.Fprintln(w)
}

// Class colors a letter by its switch class: sixes violet, twenties default.
func Class(letter byte, sixes bool) string {
	if !sixes {
		return string(letter)
	}
	p := termenv.EnvColorProfile()
	return termenv.String(string(letter)).Foreground(p.Color("#a855f7")).Bold().String()
}
