// Package document loads declarative message descriptions (YAML or JSON)
// and builds annotated text from them.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	rterrors "github.com/FocuswithJustin/richtext/core/errors"
	"github.com/FocuswithJustin/richtext/core/richtext"
	"github.com/FocuswithJustin/richtext/core/template"
	"github.com/FocuswithJustin/richtext/internal/validation"
)

// Document describes one message.
//
//	template: "Participants:\n\n{}"
//	args:
//	  - items:
//	      - parts: [{value: A, tags: [bold]}, {value: " B"}]
//	        entities: [{type: text_link, url: "https://example.com/"}]
//	      - value: C D
//	    separator: "\n"
type Document struct {
	// Template is an interpolation template; empty means the args are
	// concatenated.
	Template string `yaml:"template"`

	// Args fill the template placeholders.
	Args []Arg `yaml:"args"`

	// TextKey and EntitiesKey rename the output fields (optional).
	TextKey     string `yaml:"text_key"`
	EntitiesKey string `yaml:"entities_key"`
}

// Arg is one interpolated value. Without tags or entities it is plain
// content; otherwise its content becomes a tagged segment.
type Arg struct {
	// Value is a scalar (string, number, bool).
	Value any `yaml:"value"`

	// Parts are nested args appended after Value.
	Parts []Arg `yaml:"parts"`

	// Items are nested args joined with Separator, appended after Parts.
	Items     []Arg `yaml:"items"`
	Separator any   `yaml:"separator"`

	// Tags are entity type names spanning the whole content.
	Tags []string `yaml:"tags"`

	// Entities are full entity records spanning the whole content.
	Entities []map[string]any `yaml:"entities"`
}

// Load reads a document from a .yaml, .yml or .json file.
func Load(path string) (*Document, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
	default:
		return nil, rterrors.NewUnsupported("document format", ext)
	}

	if err := validation.ValidatePath(path); err != nil {
		return nil, rterrors.Wrap(err, "invalid document path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rterrors.NewIO("read", path, err)
	}
	if err := validation.ValidateDocument(data); err != nil {
		return nil, rterrors.Wrap(err, path)
	}
	doc, err := Decode(bytes.NewReader(data))
	if err != nil {
		var pe *rterrors.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Decode reads a document from r. JSON input is accepted as YAML.
// Unknown fields are rejected.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, rterrors.NewParse("document", "", "empty document")
		}
		perr := rterrors.NewParse("document", "", err.Error())
		perr.Err = err
		return nil, perr
	}
	return &doc, nil
}

// Keys returns the output field names, defaulting to "text" and "entities".
func (d *Document) Keys() (textKey, entitiesKey string) {
	textKey, entitiesKey = d.TextKey, d.EntitiesKey
	if textKey == "" {
		textKey = "text"
	}
	if entitiesKey == "" {
		entitiesKey = "entities"
	}
	return textKey, entitiesKey
}

// Build renders the document into annotated text.
func (d *Document) Build() (*richtext.Text, error) {
	tmpl := d.Template
	if tmpl == "" {
		tmpl = strings.Repeat("{}", len(d.Args))
	}
	t, err := template.Lookup(tmpl)
	if err != nil {
		return nil, err
	}

	exprs := make([]any, len(d.Args))
	for i, arg := range d.Args {
		exprs[i] = arg.expr()
	}
	text, err := t.Text(exprs...)
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	return text, nil
}

// expr converts the arg into a value for richtext.Fmt.
func (a Arg) expr() any {
	tagged := len(a.Tags) > 0 || len(a.Entities) > 0
	if !tagged && len(a.Parts) == 0 && len(a.Items) == 0 {
		return a.scalar()
	}

	content := richtext.New()
	if a.Value != nil {
		content.Append(a.scalar())
	}
	for _, p := range a.Parts {
		content.Append(p.text())
	}
	if len(a.Items) > 0 {
		items := make([]any, len(a.Items))
		for i, item := range a.Items {
			items[i] = item.text()
		}
		sep := any("")
		if a.Separator != nil {
			sep = a.Separator
		}
		content.Append(richtext.Join(items, sep))
	}
	if !tagged {
		return content
	}

	seg := richtext.Seq{content}
	for _, tag := range a.Tags {
		seg = append(seg, tag)
	}
	for _, e := range a.Entities {
		seg = append(seg, e)
	}
	return seg
}

// text renders the arg on its own.
func (a Arg) text() *richtext.Text {
	return richtext.Fmt([]string{"", ""}, a.expr())
}

func (a Arg) scalar() any {
	if a.Value == nil {
		return ""
	}
	return a.Value
}
