package tui

import (
	"fmt"
	"io"
)

// PrintBanner writes the QuickTrace ASCII art banner to w.
func PrintBanner(w io.Writer) {
	p := ProfileFor(w)
	lines := []struct {
		text  string
		color string
	}{
		{"   ___       _      _   _____", "#818cf8"},
		{"  / _ \\ _  _(_)__ _| |_|_   _| _ __ _ __ ___", "#a78bfa"},
		{" | (_) | || | / _| / / | || '_/ _` / _/ -_)", "#c084fc"},
		{"  \\__\\_\\\\_,_|_\\__|_\\_\\ |_||_| \\__,_\\__\\___|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
