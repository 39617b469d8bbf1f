package input

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/quicktrace/pkg/domain"
)

var (
	// DefaultMaxTextSize bounds the raw text handed to the parser (bytes).
	DefaultMaxTextSize = 1024
	// EnvMaxTextSize is the environment variable to override the default
	EnvMaxTextSize = "QUICKTRACE_MAX_INPUT_SIZE"
)

var (
	ErrTextTooLarge = fmt.Errorf("%w: input text exceeds maximum allowed size", domain.ErrOversizeInput)
	ErrInvalidUTF8  = fmt.Errorf("%w: input contains invalid UTF-8 sequences", domain.ErrMalformedEntry)
)

// Sanitize enforces the raw text size limit, validates UTF-8 and replaces
// control characters with spaces. Replacing rather than removing keeps
// "1\x002" from silently becoming 12.
func Sanitize(text string) (string, error) {
	limit := maxTextSize()
	if len(text) > limit {
		// Reject rather than truncate: a cut list would sort different numbers.
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrTextTooLarge, len(text), limit)
	}

	if !utf8.ValidString(text) {
		return "", ErrInvalidUTF8
	}

	// Fast path: if no control chars, return as is.
	if strings.IndexFunc(text, unsafeControl) < 0 {
		return text, nil
	}

	return strings.Map(func(r rune) rune {
		if unsafeControl(r) {
			return ' '
		}
		return r
	}, text), nil
}

func unsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}

func maxTextSize() int {
	if val := os.Getenv(EnvMaxTextSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxTextSize
}
