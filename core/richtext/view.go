package richtext

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// view.go - read-only queries forwarded to the plain text.
// Entities are ignored by everything in this file.

// CharAt returns the character starting at byte index i, or "" when i is
// out of range.
func (t *Text) CharAt(i int) string {
	if i < 0 || i >= t.Len() {
		return ""
	}
	_, size := utf8.DecodeRune(t.buf[i:])
	return string(t.buf[i : i+size])
}

// ByteAt returns the byte at index i.
func (t *Text) ByteAt(i int) (byte, bool) {
	if i < 0 || i >= t.Len() {
		return 0, false
	}
	return t.buf[i], true
}

// CodePointAt decodes the rune starting at byte index i.
func (t *Text) CodePointAt(i int) (rune, bool) {
	if i < 0 || i >= t.Len() {
		return 0, false
	}
	r, _ := utf8.DecodeRune(t.buf[i:])
	return r, true
}

// Index returns the byte index of the first instance of substr, or -1.
func (t *Text) Index(substr string) int {
	return strings.Index(t.String(), substr)
}

// IndexRune returns the byte index of the first instance of r, or -1.
func (t *Text) IndexRune(r rune) int {
	return strings.IndexRune(t.String(), r)
}

// LastIndex returns the byte index of the last instance of substr, or -1.
func (t *Text) LastIndex(substr string) int {
	return strings.LastIndex(t.String(), substr)
}

// Contains reports whether substr is within the text.
func (t *Text) Contains(substr string) bool {
	return strings.Contains(t.String(), substr)
}

// HasPrefix reports whether the text begins with prefix.
func (t *Text) HasPrefix(prefix string) bool {
	return strings.HasPrefix(t.String(), prefix)
}

// HasSuffix reports whether the text ends with suffix.
func (t *Text) HasSuffix(suffix string) bool {
	return strings.HasSuffix(t.String(), suffix)
}

// Compare compares the text with other lexicographically by bytes.
func (t *Text) Compare(other string) int {
	return strings.Compare(t.String(), other)
}

// EqualFold reports whether the text equals other under Unicode case folding.
func (t *Text) EqualFold(other string) bool {
	return strings.EqualFold(t.String(), other)
}

// LocaleCompare compares the text with other using the collation rules
// of tag.
func (t *Text) LocaleCompare(other string, tag language.Tag) int {
	return collate.New(tag).CompareString(t.String(), other)
}

// Match returns the leftmost match of re and its submatches.
func (t *Text) Match(re *regexp.Regexp) []string {
	return re.FindStringSubmatch(t.String())
}

// MatchAll returns every match of re with its submatches.
func (t *Text) MatchAll(re *regexp.Regexp) [][]string {
	return re.FindAllStringSubmatch(t.String(), -1)
}

// Search returns the byte index of the first match of re, or -1.
func (t *Text) Search(re *regexp.Regexp) int {
	loc := re.FindStringIndex(t.String())
	if loc == nil {
		return -1
	}
	return loc[0]
}

// Normalize returns the text in the given normalization form.
func (t *Text) Normalize(form norm.Form) string {
	return form.String(t.String())
}

// IsNormalized reports whether the text is already in the given form.
func (t *Text) IsNormalized(form norm.Form) bool {
	return form.IsNormalString(t.String())
}

// IsWellFormed reports whether the text is valid UTF-8.
func (t *Text) IsWellFormed() bool {
	return utf8.ValidString(t.String())
}

// ToWellFormed returns the text with invalid UTF-8 sequences replaced by
// U+FFFD.
func (t *Text) ToWellFormed() string {
	return strings.ToValidUTF8(t.String(), string(utf8.RuneError))
}
