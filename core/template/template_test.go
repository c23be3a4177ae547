package template

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	rterrors "github.com/FocuswithJustin/richtext/core/errors"
	"github.com/FocuswithJustin/richtext/core/richtext"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		chunks  []string
		indices []int
		arity   int
	}{
		{"empty", "", []string{""}, nil, 0},
		{"literal", "Hello world", []string{"Hello world"}, nil, 0},
		{"positional", "First: {}, last: {}", []string{"First: ", ", last: ", ""}, []int{0, 1}, 2},
		{"explicit", "{1} then {0} and {1}", []string{"", " then ", " and ", ""}, []int{1, 0, 1}, 2},
		{"mixed", "{} {5} {}", []string{"", " ", " ", ""}, []int{0, 5, 1}, 6},
		{"escaped braces", "{{literal}} {}", []string{"{literal} ", ""}, []int{0}, 1},
		{"escaped index", "{{0}}", []string{"{0}"}, nil, 0},
		{"digits are literal", "2024: {} items", []string{"2024: ", " items"}, []int{0}, 1},
		{"unicode", "Участники: {}", []string{"Участники: ", ""}, []int{0}, 1},
		{"adjacent", "{}{}", []string{"", "", ""}, []int{0, 1}, 2},
		{"placeholder then escaped close", "{}}}", []string{"", "}"}, []int{0}, 1},
		{"indexed then escaped close", "a{0}}}b", []string{"a", "}b"}, []int{0}, 1},
		{"escaped open then placeholder", "{{{}", []string{"{", ""}, []int{0}, 1},
		{"escaped both sides", "{{{1}}}", []string{"{", "}"}, []int{1}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.chunks, tmpl.Chunks()); diff != "" {
				t.Errorf("chunks mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.indices, tmpl.Indices(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("indices mismatch (-want +got):\n%s", diff)
			}
			if tmpl.Arity() != tt.arity {
				t.Errorf("Arity() = %d, want %d", tmpl.Arity(), tt.arity)
			}
			if tmpl.String() != tt.input {
				t.Errorf("String() = %q, want %q", tmpl.String(), tt.input)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unclosed", "Hello {"},
		{"stray close", "Hello } world"},
		{"name placeholder", "Hello {name}"},
		{"space in placeholder", "{ 1 }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) should fail", tt.input)
			}
			var pe *rterrors.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error type = %T, want *errors.ParseError", err)
			}
			if pe.Format != "template" {
				t.Errorf("Format = %q, want template", pe.Format)
			}
			if pe.Err == nil {
				t.Error("ParseError should carry its cause")
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid input")
		}
	}()
	MustParse("{")
}

func TestBind(t *testing.T) {
	tmpl := MustParse("{1}-{0}-{1}")

	chunks, exprs, err := tmpl.Bind("a", "b", "ignored")
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	if diff := cmp.Diff([]string{"", "-", "-", ""}, chunks); diff != "" {
		t.Errorf("chunks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"b", "a", "b"}, exprs); diff != "" {
		t.Errorf("exprs mismatch (-want +got):\n%s", diff)
	}

	_, _, err = tmpl.Bind("only one")
	var ve *rterrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Bind error = %v, want ValidationError", err)
	}
}

func TestTemplateText(t *testing.T) {
	got, err := Format("Lorem {}, {}!", richtext.Seq{"ipsum", richtext.TypeBold}, "dolor")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if got.String() != "Lorem ipsum, dolor!" {
		t.Errorf("String() = %q", got.String())
	}
	want := []richtext.Entity{{Type: richtext.TypeBold, Offset: 6, Length: 5}}
	if diff := cmp.Diff(want, got.Entities(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("entities mismatch (-want +got):\n%s", diff)
	}

	if _, err := Format("{} {}", "one"); err == nil {
		t.Error("Format with too few arguments should fail")
	}
	if _, err := Format("{oops}"); err == nil {
		t.Error("Format with a bad template should fail")
	}
}

func TestTemplateReusedTag(t *testing.T) {
	link := richtext.Link("https://example.com/")
	got, err := Format("{0} and {0}", richtext.Seq{"here", &link})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	ents := got.Entities()
	if len(ents) != 2 || ents[0].Offset != 0 || ents[1].Offset != 9 {
		t.Errorf("entities = %v", ents)
	}
	if link.Offset != 0 || link.Length != 0 {
		t.Error("shared tag entity was mutated")
	}
}

func TestFormatHTML(t *testing.T) {
	got, err := FormatHTML("HTML test & hack <b>{}</b>", "hack & <i>hack</i></b> hack")
	if err != nil {
		t.Fatalf("FormatHTML failed: %v", err)
	}
	want := "HTML test & hack <b>hack &amp; &lt;i&gt;hack&lt;/i&gt;&lt;/b&gt; hack</b>"
	if got != want {
		t.Errorf("FormatHTML() = %q, want %q", got, want)
	}
	if _, err := FormatHTML("<b>{}</b>"); err == nil {
		t.Error("FormatHTML with missing argument should fail")
	}
}

func TestLookupCaches(t *testing.T) {
	a, err := Lookup("cached {}")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	b, _ := Lookup("cached {}")
	if a != b {
		t.Error("Lookup should return the cached template")
	}
	if _, err := Lookup("{"); err == nil {
		t.Error("Lookup should surface parse errors")
	}
}
