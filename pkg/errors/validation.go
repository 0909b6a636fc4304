package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxSourceSize is the largest keymap source accepted by the pipeline (1 MiB).
// Real keymaps are a few kilobytes; anything larger is almost certainly the wrong file.
const MaxSourceSize = 1 << 20

// ValidateSource validates keymap source text before it reaches the parser.
//
// Validation rules:
//   - Source cannot be empty or whitespace only
//   - Maximum size of MaxSourceSize bytes
//   - Must be valid UTF-8
//   - No null bytes
func ValidateSource(src string) error {
	if strings.TrimSpace(src) == "" {
		return New(ErrCodeInvalidInput, "keymap source cannot be empty")
	}

	if len(src) > MaxSourceSize {
		return New(ErrCodeInvalidInput, "keymap source too large (max %d bytes)", MaxSourceSize)
	}

	if !utf8.ValidString(src) {
		return New(ErrCodeInvalidInput, "keymap source is not valid UTF-8")
	}

	if strings.ContainsRune(src, '\x00') {
		return New(ErrCodeInvalidInput, "keymap source contains null bytes")
	}

	return nil
}

// ValidatePath validates an output path given on the command line or in a config file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
