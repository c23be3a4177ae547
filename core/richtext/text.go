package richtext

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Annotated is implemented by values that carry text plus entities.
// Append merges such values instead of stringifying them.
type Annotated interface {
	AnnotatedText() (string, []Entity)
}

// Seq is an explicit sequence of appendable values. Append flattens it.
type Seq []any

// Text is a string paired with an ordered list of entities.
// The zero value is an empty text ready for use. A nil *Text reads as
// empty, and methods that return a new Text treat it as empty; only
// Append needs a non-nil receiver.
type Text struct {
	buf      []byte
	entities []Entity
}

// New creates a Text from the given values using the rules of Append.
func New(values ...any) *Text {
	t := &Text{}
	return t.Append(values...)
}

// Join concatenates values, inserting sep between consecutive elements.
func Join(values []any, sep any) *Text {
	t := &Text{}
	for i, v := range values {
		if i > 0 {
			t.Append(sep)
		}
		t.Append(v)
	}
	return t
}

// AnnotatedText implements Annotated.
func (t *Text) AnnotatedText() (string, []Entity) {
	if t == nil {
		return "", nil
	}
	return t.String(), t.entities
}

// String returns the plain text.
func (t *Text) String() string {
	if t == nil {
		return ""
	}
	return string(t.buf)
}

// Len returns the length of the text in bytes.
func (t *Text) Len() int {
	if t == nil {
		return 0
	}
	return len(t.buf)
}

// Entities returns a copy of the entities in insertion order.
func (t *Text) Entities() []Entity {
	if t == nil {
		return []Entity{}
	}
	return cloneEntities(t.entities)
}

// SortedEntities returns a copy of the entities ordered by offset.
// Entities starting at the same offset keep their insertion order.
func (t *Text) SortedEntities() []Entity {
	out := t.Entities()
	SortEntities(out)
	return out
}

// Append adds each value to the end of t and returns t.
//
// Sequences are flattened recursively. Annotated values contribute their
// text and a rebased copy of each entity. Anything else is converted with
// fmt.Sprint and contributes no entities.
func (t *Text) Append(values ...any) *Text {
	for _, v := range values {
		t.appendValue(v)
	}
	return t
}

func (t *Text) appendValue(v any) {
	switch val := v.(type) {
	case string:
		t.buf = append(t.buf, val...)
	case []byte:
		t.buf = append(t.buf, val...)
	case Seq:
		t.Append(val...)
	case []any:
		t.Append(val...)
	case []string:
		for _, s := range val {
			t.buf = append(t.buf, s...)
		}
	case []*Text:
		for _, other := range val {
			t.merge(other)
		}
	case Annotated:
		t.merge(val)
	default:
		if items, ok := sequenceItems(v); ok {
			t.Append(items...)
			return
		}
		t.buf = append(t.buf, fmt.Sprint(v)...)
	}
}

// merge appends the text of other and rebased copies of its entities.
func (t *Text) merge(other Annotated) {
	if p, ok := other.(*Text); ok && p == nil {
		return
	}
	text, entities := other.AnnotatedText()
	base := len(t.buf)
	t.buf = append(t.buf, text...)
	for _, e := range entities {
		c := e.Clone()
		c.Offset += base
		t.entities = append(t.entities, c)
	}
}

// Clone returns an independent copy of t.
func (t *Text) Clone() *Text {
	return New(t)
}

// Concat returns a new Text holding t followed by values.
// t is left unchanged.
func (t *Text) Concat(values ...any) *Text {
	return t.Clone().Append(values...)
}

// Substring returns the range [start, end) of t.
//
// Both bounds are clamped to [0, Len()], negative values count as 0, and
// the bounds are swapped when start > end. Entities overlapping the range
// are clipped to it; the others are dropped.
func (t *Text) Substring(start, end int) *Text {
	if t == nil {
		return &Text{}
	}
	n := t.Len()
	start = clamp(start, n)
	end = clamp(end, n)
	if start > end {
		start, end = end, start
	}

	result := &Text{buf: append([]byte(nil), t.buf[start:end]...)}
	size := end - start
	for _, e := range t.entities {
		rel := e.Offset - start
		if rel >= size || rel+e.Length <= 0 {
			continue
		}
		c := e.Clone()
		c.Offset = max(rel, 0)
		c.Length = min(rel+e.Length, size) - c.Offset
		result.entities = append(result.entities, c)
	}
	return result
}

// SubstringFrom returns the range [start, Len()) of t.
func (t *Text) SubstringFrom(start int) *Text {
	return t.Substring(start, t.Len())
}

// Slice returns the range [start, end) of t, where negative indices count
// back from the end. Unlike Substring it never swaps its bounds: an empty
// or inverted range yields an empty Text.
func (t *Text) Slice(start, end int) *Text {
	n := t.Len()
	start = resolveIndex(start, n)
	end = resolveIndex(end, n)
	if start < end {
		return t.Substring(start, end)
	}
	return &Text{}
}

// SliceFrom returns the range [start, Len()) of t, with start resolved
// as in Slice.
func (t *Text) SliceFrom(start int) *Text {
	return t.Slice(start, t.Len())
}

// ToObject renders the wire record with the given field names.
func (t *Text) ToObject(textKey, entitiesKey string) map[string]any {
	return map[string]any{
		textKey:     t.String(),
		entitiesKey: t.Entities(),
	}
}

// MarshalJSON encodes t as {"text": ..., "entities": [...]}.
func (t *Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ToObject("text", "entities"))
}

// UnmarshalJSON decodes the shape produced by MarshalJSON.
func (t *Text) UnmarshalJSON(data []byte) error {
	var wire struct {
		Text     string   `json:"text"`
		Entities []Entity `json:"entities"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	t.buf = []byte(wire.Text)
	t.entities = wire.Entities
	return nil
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	return min(i, n)
}

func resolveIndex(i, n int) int {
	if i < 0 {
		i += n
	}
	return max(0, min(i, n))
}

// sequenceItems reports whether v is a slice or array that Append should
// flatten, returning its elements.
func sequenceItems(v any) ([]any, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}
