package richtext

import "unicode/utf16"

// UTF16Offset converts a byte offset in s to a UTF-16 code unit offset,
// as used by messaging APIs such as Telegram's. Offsets past the end of s
// are clamped; an offset inside a multi-byte sequence counts the whole rune.
func UTF16Offset(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	units := 0
	for i, r := range s {
		if i >= byteOffset {
			break
		}
		units += utf16.RuneLen(r)
	}
	return units
}

// UTF16Entities returns a copy of the entities with offsets and lengths
// measured in UTF-16 code units instead of bytes.
func (t *Text) UTF16Entities() []Entity {
	s := t.String()
	out := t.Entities()
	for i, e := range out {
		start := UTF16Offset(s, e.Offset)
		out[i].Offset = start
		out[i].Length = UTF16Offset(s, e.End()) - start
	}
	return out
}
