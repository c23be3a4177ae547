// Package template splits interpolation templates such as
//
//	"First name: {}, last: {}"
//
// into the literal chunks and argument slots consumed by richtext.Fmt and
// encoding.HTML. "{}" takes the next positional argument, "{N}" names an
// argument by index, and "{{" / "}}" produce literal braces.
package template

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/richtext/core/cache"
	"github.com/FocuswithJustin/richtext/core/encoding"
	rterrors "github.com/FocuswithJustin/richtext/core/errors"
	"github.com/FocuswithJustin/richtext/core/richtext"
)

// templateGrammar is the participle grammar for interpolation templates.
//
//nolint:govet // participle grammar tags are not standard struct tags
type templateGrammar struct {
	Parts []*templatePart `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type templatePart struct {
	Placeholder *placeholder `  @@`
	Literal     *string      `| @(Text | Escaped)`
}

//nolint:govet // participle grammar tags are not standard struct tags
type placeholder struct {
	Open  string `@Open`
	Index *int   `@Int? Close`
}

// templateLexer tokenizes templates. "{" enters a placeholder, where only
// an index and the closing "}" are valid, so "{}}}" is a placeholder
// followed by an escaped brace. Outside placeholders digits are literal.
var templateLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Escaped", Pattern: `\{\{|\}\}`},
		{Name: "Open", Pattern: `\{`, Action: lexer.Push("Placeholder")},
		{Name: "Text", Pattern: `[^{}]+`},
	},
	"Placeholder": {
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "Close", Pattern: `\}`, Action: lexer.Pop()},
	},
})

var templateParser = participle.MustBuild[templateGrammar](
	participle.Lexer(templateLexer),
)

// Template is a parsed interpolation template. It is immutable and safe
// for concurrent use.
type Template struct {
	source  string
	chunks  []string
	indices []int
	arity   int
}

// Parse parses an interpolation template.
func Parse(s string) (*Template, error) {
	parsed, err := templateParser.ParseString("", s)
	if err != nil {
		perr := rterrors.NewParse("template", "", err.Error())
		perr.Err = err
		var pe participle.Error
		if errors.As(err, &pe) {
			perr.Offset = pe.Position().Offset
			perr.Message = pe.Message()
		}
		return nil, perr
	}

	t := &Template{source: s}
	var chunk strings.Builder
	next := 0
	for _, part := range parsed.Parts {
		if part.Literal != nil {
			chunk.WriteString(unescape(*part.Literal))
			continue
		}
		idx := next
		if part.Placeholder.Index != nil {
			idx = *part.Placeholder.Index
		} else {
			next++
		}
		t.chunks = append(t.chunks, chunk.String())
		chunk.Reset()
		t.indices = append(t.indices, idx)
		t.arity = max(t.arity, idx+1)
	}
	t.chunks = append(t.chunks, chunk.String())
	return t, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) *Template {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func unescape(lit string) string {
	switch lit {
	case "{{":
		return "{"
	case "}}":
		return "}"
	}
	return lit
}

// String returns the source template.
func (t *Template) String() string {
	return t.source
}

// Chunks returns the literal chunks; there is always one more chunk than
// there are placeholders.
func (t *Template) Chunks() []string {
	return append([]string(nil), t.chunks...)
}

// Indices returns the argument index of each placeholder in order.
func (t *Template) Indices() []int {
	return append([]int(nil), t.indices...)
}

// Arity returns the number of arguments the template needs.
func (t *Template) Arity() int {
	return t.arity
}

// Bind resolves the placeholders against args, returning chunks and
// expressions aligned for richtext.Fmt. Extra arguments are ignored.
func (t *Template) Bind(args ...any) ([]string, []any, error) {
	if len(args) < t.arity {
		return nil, nil, rterrors.NewValidation("args",
			fmt.Sprintf("template %q needs %d arguments, got %d", t.source, t.arity, len(args)))
	}
	exprs := make([]any, len(t.indices))
	for i, idx := range t.indices {
		exprs[i] = args[idx]
	}
	return t.Chunks(), exprs, nil
}

// Text builds annotated text from the template and args.
func (t *Template) Text(args ...any) (*richtext.Text, error) {
	chunks, exprs, err := t.Bind(args...)
	if err != nil {
		return nil, err
	}
	return richtext.Fmt(chunks, exprs...), nil
}

// HTML renders the template with every argument HTML-escaped.
func (t *Template) HTML(args ...any) (string, error) {
	chunks, exprs, err := t.Bind(args...)
	if err != nil {
		return "", err
	}
	return encoding.HTML(chunks, exprs...), nil
}

// parsed caches templates used through Format and FormatHTML.
var parsed = cache.NewLRUCache[string, *Template](cache.DefaultConfig())

// Lookup returns the parsed template for s, parsing it on first use.
func Lookup(s string) (*Template, error) {
	return parsed.GetOrLoad(s, func() (*Template, error) {
		return Parse(s)
	})
}

// Format parses (or reuses) tmpl and builds annotated text from args.
func Format(tmpl string, args ...any) (*richtext.Text, error) {
	t, err := Lookup(tmpl)
	if err != nil {
		return nil, err
	}
	return t.Text(args...)
}

// FormatHTML parses (or reuses) tmpl and renders it with escaped args.
func FormatHTML(tmpl string, args ...any) (string, error) {
	t, err := Lookup(tmpl)
	if err != nil {
		return "", err
	}
	return t.HTML(args...)
}
