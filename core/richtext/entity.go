package richtext

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Well-known entity types. Consumers are free to use any other type name.
const (
	TypeBold          = "bold"
	TypeItalic        = "italic"
	TypeUnderline     = "underline"
	TypeStrikethrough = "strikethrough"
	TypeSpoiler       = "spoiler"
	TypeCode          = "code"
	TypePre           = "pre"
	TypeTextLink      = "text_link"
	TypeBlockquote    = "blockquote"
	TypeMention       = "mention"
	TypeHashtag       = "hashtag"
)

// Entity is a typed annotation over a range of a Text.
// Offset and Length are byte positions in the owning text.
type Entity struct {
	// Type names the formatting kind (e.g., "bold", "text_link").
	Type string

	// Offset is the start of the range.
	Offset int

	// Length is the size of the range.
	Length int

	// Extra carries any additional fields (e.g., "url") verbatim.
	Extra map[string]any
}

// reserved keys cannot be overridden through Extra.
var reserved = map[string]bool{
	"type":   true,
	"offset": true,
	"length": true,
}

// NewEntity creates an entity of the given type with no range.
func NewEntity(typ string) Entity {
	return Entity{Type: typ}
}

// Link creates a text_link entity pointing at url.
func Link(url string) Entity {
	e := NewEntity(TypeTextLink)
	e.SetAttribute("url", url)
	return e
}

// End returns Offset+Length.
func (e Entity) End() int {
	return e.Offset + e.Length
}

// Clone returns a copy that shares nothing with e.
func (e Entity) Clone() Entity {
	out := e
	if e.Extra != nil {
		out.Extra = make(map[string]any, len(e.Extra))
		for k, v := range e.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// SetAttribute sets an extra field on the entity.
func (e *Entity) SetAttribute(key string, value any) {
	if e.Extra == nil {
		e.Extra = make(map[string]any)
	}
	e.Extra[key] = value
}

// GetAttribute retrieves an extra field from the entity.
func (e Entity) GetAttribute(key string) (any, bool) {
	if e.Extra == nil {
		return nil, false
	}
	v, ok := e.Extra[key]
	return v, ok
}

// MarshalJSON flattens Extra next to type/offset/length.
func (e Entity) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(e.Extra)+3)
	for k, v := range e.Extra {
		if reserved[k] {
			continue
		}
		m[k] = v
	}
	m["type"] = e.Type
	m["offset"] = e.Offset
	m["length"] = e.Length
	return json.Marshal(m)
}

// UnmarshalJSON reads type/offset/length and keeps every other key in Extra.
func (e *Entity) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out Entity
	for k, v := range raw {
		var err error
		switch k {
		case "type":
			err = json.Unmarshal(v, &out.Type)
		case "offset":
			err = json.Unmarshal(v, &out.Offset)
		case "length":
			err = json.Unmarshal(v, &out.Length)
		default:
			var val any
			if err = json.Unmarshal(v, &val); err == nil {
				out.SetAttribute(k, val)
			}
		}
		if err != nil {
			return fmt.Errorf("entity field %q: %w", k, err)
		}
	}
	*e = out
	return nil
}

// FromMap builds an entity from a generic record such as one decoded
// from YAML. Unknown keys become extra fields; a missing or non-numeric
// offset/length is left at zero.
func FromMap(m map[string]any) Entity {
	var e Entity
	for k, v := range m {
		switch k {
		case "type":
			e.Type = fmt.Sprint(v)
		case "offset":
			e.Offset = toInt(v)
		case "length":
			e.Length = toInt(v)
		default:
			e.SetAttribute(k, v)
		}
	}
	return e
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		i, _ := n.Int64()
		return int(i)
	}
	return 0
}

func cloneEntities(entities []Entity) []Entity {
	if len(entities) == 0 {
		return []Entity{}
	}
	out := make([]Entity, len(entities))
	for i, e := range entities {
		out[i] = e.Clone()
	}
	return out
}

// SortEntities orders entities by offset in place. Entities starting at
// the same offset keep their relative order.
func SortEntities(entities []Entity) {
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Offset < entities[j].Offset
	})
}
