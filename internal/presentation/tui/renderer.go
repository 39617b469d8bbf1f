package tui

import (
	"github.com/charmbracelet/glamour"
)

// Style selects the glamour theme used for markdown panels.
type Style string

const (
	StyleAuto  Style = "auto"
	StylePlain Style = "notty"
)

// NewRenderer returns a function that renders markdown using glamour.
// StyleAuto detects a light or dark background; anything else is passed
// to glamour as a standard style name.
func NewRenderer(style Style) (func(string) (string, error), error) {
	opt := glamour.WithAutoStyle()
	if style != StyleAuto && style != "" {
		opt = glamour.WithStandardStyle(string(style))
	}

	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(80))
	if err != nil {
		return nil, err
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}
