package richtext

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToUpper returns a copy of t with the text upper-cased.
func (t *Text) ToUpper() *Text {
	return t.mapCase(strings.ToUpper)
}

// ToLower returns a copy of t with the text lower-cased.
func (t *Text) ToLower() *Text {
	return t.mapCase(strings.ToLower)
}

// ToUpperLocale upper-cases using the rules of tag (e.g. Turkish dotted i).
func (t *Text) ToUpperLocale(tag language.Tag) *Text {
	c := cases.Upper(tag)
	return t.mapCase(c.String)
}

// ToLowerLocale lower-cases using the rules of tag.
func (t *Text) ToLowerLocale(tag language.Tag) *Text {
	c := cases.Lower(tag)
	return t.mapCase(c.String)
}

// mapCase applies fn to the whole text, so context-sensitive mappings
// (Greek final sigma, Lithuanian dot above) see every character, and moves
// each entity boundary p to len(fn(text[:p])). A mapping that changes byte
// length (ß -> SS) therefore keeps entities on the same characters.
func (t *Text) mapCase(fn func(string) string) *Text {
	if t == nil {
		return &Text{}
	}
	src := t.String()
	n := len(src)
	folded := fn(src)
	result := &Text{buf: []byte(folded)}

	pos := make(map[int]int)
	remap := func(p int) int {
		switch {
		case len(folded) == n || p <= 0:
			return p
		case p >= n:
			return p + len(folded) - n
		}
		q, ok := pos[p]
		if !ok {
			q = min(len(fn(src[:p])), len(folded))
			pos[p] = q
		}
		return q
	}
	for _, e := range t.entities {
		c := e.Clone()
		c.Offset = remap(e.Offset)
		c.Length = remap(e.End()) - c.Offset
		result.entities = append(result.entities, c)
	}
	return result
}
