// Package validation checks user-supplied paths and document contents
// before they reach the parsers.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Limits on document input.
const (
	// MaxDocumentSize is the largest message document accepted (1 MiB).
	MaxDocumentSize = 1 << 20
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// Common validation errors.
var (
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrTooLarge         = errors.New("document too large")
	ErrBinary           = errors.New("document is not text")
)

// ValidatePath rejects empty or overlong paths and paths containing
// NUL or control characters.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}
	return nil
}

// ValidateDocument checks that data is small enough and looks like UTF-8
// text. Empty input is accepted; the decoder reports it.
func ValidateDocument(data []byte) error {
	if len(data) > MaxDocumentSize {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrTooLarge, len(data), MaxDocumentSize)
	}
	if len(data) > 0 && !isLikelyText(data) {
		return ErrBinary
	}
	return nil
}

// isLikelyText samples the first 512 bytes: no NUL bytes, valid UTF-8
// and almost no control bytes.
func isLikelyText(buf []byte) bool {
	if len(buf) > 512 {
		buf = buf[:512]
		// drop a rune cut at the sample edge
		for i := len(buf) - 1; i >= 0 && i >= len(buf)-utf8.UTFMax; i-- {
			if utf8.RuneStart(buf[i]) {
				if !utf8.FullRune(buf[i:]) {
					buf = buf[:i]
				}
				break
			}
		}
	}
	if bytes.IndexByte(buf, 0) != -1 || !utf8.Valid(buf) {
		return false
	}

	printable, control := 0, 0
	for _, b := range buf {
		switch {
		case b == '\t' || b == '\n' || b == '\r':
			printable++
		case b < 0x20 || b == 0x7f:
			control++
		default:
			printable++
		}
	}
	return float64(printable)/float64(printable+control) > 0.95
}
