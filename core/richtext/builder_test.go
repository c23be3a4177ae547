package richtext

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFmtPlain(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		exprs  []any
		want   string
	}{
		{"literal only", []string{"Hello world"}, nil, "Hello world"},
		{"substitution", []string{"First: ", ", last: ", ""}, []any{"A", "B"}, "First: A, last: B"},
		{"number", []string{"n=", ""}, []any{42}, "n=42"},
		{"no chunks", nil, nil, ""},
		{"missing trailing chunk", []string{"a"}, []any{"b"}, "ab"},
		{"extra chunks", []string{"a", "b", "c"}, []any{1}, "a1bc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fmt(tt.chunks, tt.exprs...)
			if got.String() != tt.want {
				t.Errorf("Fmt() = %q, want %q", got.String(), tt.want)
			}
			if len(got.Entities()) != 0 {
				t.Errorf("Entities() = %v, want none", got.Entities())
			}
		})
	}
}

func TestFmtTaggedSegment(t *testing.T) {
	got := Fmt([]string{"", ""}, Seq{"ipsum", TypeItalic})
	want := []Entity{ent(TypeItalic, 0, 5)}
	if got.String() != "ipsum" {
		t.Errorf("String() = %q, want %q", got.String(), "ipsum")
	}
	if diff := cmp.Diff(want, got.Entities(), equateEmpty); diff != "" {
		t.Errorf("entities mismatch (-want +got):\n%s", diff)
	}
}

func TestFmtTagForms(t *testing.T) {
	link := Link("https://example.com/")

	tests := []struct {
		name string
		seg  any
		want []Entity
	}{
		{"type name", Seq{"ipsum", TypeBold}, []Entity{ent(TypeBold, 6, 5)}},
		{"plain slice", []any{"ipsum", TypeBold}, []Entity{ent(TypeBold, 6, 5)}},
		{"string slice", []string{"ipsum", TypeBold}, []Entity{ent(TypeBold, 6, 5)}},
		{"entity value", Seq{"ipsum", Entity{Type: TypeItalic}}, []Entity{ent(TypeItalic, 6, 5)}},
		{"entity pointer", Seq{"ipsum", &Entity{Type: TypeCode, Offset: 99, Length: 99}}, []Entity{ent(TypeCode, 6, 5)}},
		{"map", Seq{"ipsum", map[string]any{"type": TypePre, "language": "go"}},
			[]Entity{{Type: TypePre, Offset: 6, Length: 5, Extra: map[string]any{"language": "go"}}}},
		{"link", Seq{"ipsum", link},
			[]Entity{{Type: TypeTextLink, Offset: 6, Length: 5, Extra: map[string]any{"url": "https://example.com/"}}}},
		{"several tags", Seq{"ipsum", TypeBold, TypeItalic}, []Entity{ent(TypeBold, 6, 5), ent(TypeItalic, 6, 5)}},
		{"falsy tags skipped", Seq{"ipsum", nil, "", false, (*Entity)(nil), TypeBold}, []Entity{ent(TypeBold, 6, 5)}},
		{"zero numbers skipped", Seq{"ipsum", 0, 0.0, uint8(0), math.NaN(), TypeCode}, []Entity{ent(TypeCode, 6, 5)}},
		{"non-zero number names type", Seq{"ipsum", 7}, []Entity{ent("7", 6, 5)}},
		{"no tags", Seq{"ipsum"}, nil},
		{"zero length content", Seq{"", TypeBold}, nil},
		{"empty segment", Seq{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fmt([]string{"Lorem ", "."}, tt.seg)
			if diff := cmp.Diff(tt.want, got.Entities(), equateEmpty); diff != "" {
				t.Errorf("entities mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFmtMultiContentSharesEntity(t *testing.T) {
	got := Fmt([]string{"", ""}, Seq{"A", New(" B"), TypeBold})
	if got.String() != "A B" {
		t.Errorf("String() = %q, want %q", got.String(), "A B")
	}
	want := []Entity{ent(TypeBold, 0, 3)}
	if diff := cmp.Diff(want, got.Entities(), equateEmpty); diff != "" {
		t.Errorf("entities mismatch (-want +got):\n%s", diff)
	}
}

func TestFmtNestedContentEntitiesFirst(t *testing.T) {
	name := Fmt([]string{"", " ", ""}, Seq{"A", TypeBold}, "B")
	got := Fmt([]string{"> ", ""}, Seq{name, Link("https://google.com/")})

	link := Link("https://google.com/")
	link.Offset, link.Length = 2, 3
	want := []Entity{ent(TypeBold, 2, 1), link}
	if diff := cmp.Diff(want, got.Entities(), equateEmpty); diff != "" {
		t.Errorf("entities mismatch (-want +got):\n%s", diff)
	}
}

func TestFmtDoesNotMutateTags(t *testing.T) {
	link := Link("https://example.com/")
	tag := &link
	first := Fmt([]string{"", " ", ""}, Seq{"one", tag}, Seq{"three", tag})

	if link.Offset != 0 || link.Length != 0 {
		t.Errorf("caller entity mutated: offset=%d length=%d", link.Offset, link.Length)
	}
	ents := first.Entities()
	if len(ents) != 2 {
		t.Fatalf("len(entities) = %d, want 2", len(ents))
	}
	if ents[0].Offset != 0 || ents[0].Length != 3 || ents[1].Offset != 4 || ents[1].Length != 5 {
		t.Errorf("entities = %v", ents)
	}

	m := map[string]any{"type": TypeBold}
	Fmt([]string{"", ""}, Seq{"x", m})
	if _, ok := m["offset"]; ok {
		t.Error("caller map mutated")
	}
}

func TestFmtParticipants(t *testing.T) {
	type user struct{ first, last, website string }
	users := []user{{"A", "B", "https://google.com/"}, {"C", "D", ""}}

	var lines []any
	for _, u := range users {
		name := Fmt([]string{"", " ", ""}, Seq{u.first, TypeBold}, u.last)
		var tag any
		if u.website != "" {
			tag = Link(u.website)
		}
		lines = append(lines, Fmt([]string{"", ""}, Seq{name, tag}))
	}
	got := Fmt([]string{"Участники:\n\n", ""}, Join(lines, "\n"))

	if got.String() != "Участники:\n\nA B\nC D" {
		t.Errorf("String() = %q", got.String())
	}
	base := len("Участники:\n\n")
	link := Link("https://google.com/")
	link.Offset, link.Length = base, 3
	want := []Entity{ent(TypeBold, base, 1), link, ent(TypeBold, base+4, 1)}
	if diff := cmp.Diff(want, got.Entities(), equateEmpty); diff != "" {
		t.Errorf("entities mismatch (-want +got):\n%s", diff)
	}
}

func TestFmtSubstringOfTagged(t *testing.T) {
	got := Fmt([]string{"Te", ""}, Seq{"st", TypeBold}).Substring(1, 2)
	if got.String() != "e" {
		t.Errorf("String() = %q, want %q", got.String(), "e")
	}
	if len(got.Entities()) != 0 {
		t.Errorf("Entities() = %v, want none", got.Entities())
	}
}

func TestFmtConcat(t *testing.T) {
	got := Fmt([]string{"Lorem ", ""}, Seq{"ipsum", Entity{Type: TypeItalic}}).Concat(Fmt([]string{"test"}))
	if got.String() != "Lorem ipsumtest" {
		t.Errorf("String() = %q, want %q", got.String(), "Lorem ipsumtest")
	}
	if diff := cmp.Diff([]Entity{ent(TypeItalic, 6, 5)}, got.Entities(), equateEmpty); diff != "" {
		t.Errorf("entities mismatch (-want +got):\n%s", diff)
	}
}
