package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/quicktrace/pkg/domain"
)

// DefaultMaxLength is the largest list accepted for visualization.
const DefaultMaxLength = 20

// Parser parses textual lists with a configurable size bound.
type Parser struct {
	// MaxLength is the maximum number of entries. Zero means DefaultMaxLength.
	MaxLength int
}

// Parse parses text with the default bound.
func Parse(text string) ([]int, error) {
	return Parser{}.Parse(text)
}

// Parse splits text on commas and parses every trimmed entry as a base-10
// integer. Any failure rejects the whole input.
func (p Parser) Parse(text string) ([]int, error) {
	limit := p.MaxLength
	if limit <= 0 {
		limit = DefaultMaxLength
	}

	text, err := Sanitize(text)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyInput
	}

	entries := strings.Split(text, ",")
	if len(entries) > limit {
		return nil, fmt.Errorf("%w: %d entries, at most %d allowed", domain.ErrOversizeInput, len(entries), limit)
	}

	values := make([]int, 0, len(entries))
	for i, entry := range entries {
		v, err := strconv.Atoi(strings.TrimSpace(entry))
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d (%q)", domain.ErrMalformedEntry, i+1, strings.TrimSpace(entry))
		}
		values = append(values, v)
	}

	return values, nil
}

// Format renders values the way Parse reads them.
func Format(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

// Kind names the rejection class of err for logs and metrics.
// It returns an empty string for errors that are not input rejections.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrMalformedEntry):
		return "malformed"
	case errors.Is(err, domain.ErrOversizeInput):
		return "oversize"
	case errors.Is(err, domain.ErrEmptyInput):
		return "empty"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	default:
		return ""
	}
}
