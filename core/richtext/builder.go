package richtext

import (
	"fmt"
	"math"
	"reflect"
)

// Fmt builds a Text from literal chunks interleaved with expressions:
//
//	chunks[0] exprs[0] chunks[1] exprs[1] ... chunks[n]
//
// A plain expression is appended as-is. A sequence expression is a tagged
// segment: its leading elements are the content (the first element, plus
// every following Annotated value or sequence), and the remaining elements
// describe entities spanning that content:
//
//	Fmt([]string{"First name: ", ", last: ", ""},
//		Seq{firstName, TypeBold}, lastName)
//
// Tags may be a type name, an Entity, *Entity or map[string]any. Falsy tags
// (nil, false, "", zero numbers, NaN) are skipped. Chunks beyond len(exprs)+1 are appended as
// literal text; missing chunks are treated as empty.
func Fmt(chunks []string, exprs ...any) *Text {
	b := &Text{}
	if len(chunks) > 0 {
		b.buf = append(b.buf, chunks[0]...)
	}
	for i, expr := range exprs {
		if seg, ok := segmentItems(expr); ok {
			b.appendSegment(seg)
		} else {
			b.Append(expr)
		}
		if i+1 < len(chunks) {
			b.buf = append(b.buf, chunks[i+1]...)
		}
	}
	for i := len(exprs) + 1; i < len(chunks); i++ {
		b.buf = append(b.buf, chunks[i]...)
	}
	return b
}

// appendSegment appends the content of a tagged segment and attaches one
// entity per tag over the bytes it contributed.
func (t *Text) appendSegment(seg []any) {
	offset := len(t.buf)
	if len(seg) == 0 {
		return
	}

	j := 0
	t.appendValue(seg[j])
	for j++; j < len(seg) && isContent(seg[j]); j++ {
		t.appendValue(seg[j])
	}

	length := len(t.buf) - offset
	if length == 0 {
		return
	}
	for _, tag := range seg[j:] {
		e, ok := tagEntity(tag)
		if !ok {
			continue
		}
		e.Offset = offset
		e.Length = length
		t.entities = append(t.entities, e)
	}
}

// segmentItems reports whether expr is a tagged segment.
func segmentItems(expr any) ([]any, bool) {
	switch v := expr.(type) {
	case Seq:
		return v, true
	case []any:
		return v, true
	case string, []byte:
		return nil, false
	}
	return sequenceItems(expr)
}

// isContent reports whether a segment element continues the content
// portion rather than starting the tag list.
func isContent(v any) bool {
	if _, ok := v.(Annotated); ok {
		return true
	}
	_, ok := segmentItems(v)
	return ok
}

// tagEntity converts a tag-list element into a fresh entity. Caller-owned
// entities and maps are copied, never modified.
func tagEntity(tag any) (Entity, bool) {
	switch v := tag.(type) {
	case nil:
		return Entity{}, false
	case bool:
		if !v {
			return Entity{}, false
		}
		return NewEntity(fmt.Sprint(v)), true
	case string:
		if v == "" {
			return Entity{}, false
		}
		return NewEntity(v), true
	case Entity:
		return v.Clone(), true
	case *Entity:
		if v == nil {
			return Entity{}, false
		}
		return v.Clone(), true
	case map[string]any:
		if v == nil {
			return Entity{}, false
		}
		return FromMap(v), true
	}
	if falsy(reflect.ValueOf(tag)) {
		return Entity{}, false
	}
	return NewEntity(fmt.Sprint(tag)), true
}

// falsy reports nil pointers, zero numbers and NaN, which do not name a tag.
func falsy(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer:
		return rv.IsNil()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.IsZero()
	case reflect.Float32, reflect.Float64:
		return rv.IsZero() || math.IsNaN(rv.Float())
	}
	return false
}
