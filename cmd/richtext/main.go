// Command richtext builds annotated text (plain text plus entity ranges)
// from interpolation templates and message documents, and prints the wire
// object as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"golang.org/x/text/language"

	"github.com/FocuswithJustin/richtext/core/encoding"
	rterrors "github.com/FocuswithJustin/richtext/core/errors"
	"github.com/FocuswithJustin/richtext/core/richtext"
	"github.com/FocuswithJustin/richtext/core/template"
	"github.com/FocuswithJustin/richtext/internal/config"
	"github.com/FocuswithJustin/richtext/internal/document"
	"github.com/FocuswithJustin/richtext/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for richtext.
type CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"warn" enum:"debug,info,warn,error"`
	LogFormat string `name:"log-format" help:"Log format (json, text)" default:"json" enum:"json,text"`

	Build   BuildCmd   `cmd:"" help:"Build annotated text and print it as JSON"`
	Cut     CutCmd     `cmd:"" help:"Build annotated text and print a substring or slice of it"`
	Case    CaseCmd    `cmd:"" help:"Build annotated text and change its case"`
	Escape  EscapeCmd  `cmd:"" help:"HTML-escape text or template arguments"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// env is bound into every command's Run.
type env struct {
	ctx context.Context
	out io.Writer
}

// Source selects where the annotated text comes from.
type Source struct {
	Template string   `short:"t" help:"Interpolation template ({} and {N} placeholders)" xor:"source"`
	File     string   `short:"f" help:"Message document (.yaml, .yml or .json)" type:"path" xor:"source"`
	Tag      []string `help:"Tag argument N with an entity type, as N=TYPE" placeholder:"N=TYPE" sep:"none"`
	Link     []string `help:"Link argument N to a URL, as N=URL" placeholder:"N=URL" sep:"none"`
	Args     []string `arg:"" optional:"" help:"Template arguments"`
}

// load builds the text. The document is returned when one was loaded.
func (s *Source) load(ctx context.Context) (*richtext.Text, *document.Document, error) {
	if s.File != "" {
		doc, err := document.Load(s.File)
		if err != nil {
			return nil, nil, err
		}
		logging.DocumentLoaded(ctx, s.File, len(doc.Args))
		text, err := doc.Build()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build %s: %w", s.File, err)
		}
		return text, doc, nil
	}
	if s.Template == "" {
		return nil, nil, rterrors.NewValidation("source", "one of --template or --file is required")
	}

	exprs, err := s.exprs()
	if err != nil {
		return nil, nil, err
	}
	text, err := template.Format(s.Template, exprs...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build template: %w", err)
	}
	return text, nil, nil
}

// exprs turns the positional arguments into builder expressions, wrapping
// tagged ones into segments.
func (s *Source) exprs() ([]any, error) {
	tags := make(map[int][]any)
	for _, pair := range s.Tag {
		i, typ, err := indexed("tag", pair, len(s.Args))
		if err != nil {
			return nil, err
		}
		tags[i] = append(tags[i], typ)
	}
	for _, pair := range s.Link {
		i, url, err := indexed("link", pair, len(s.Args))
		if err != nil {
			return nil, err
		}
		tags[i] = append(tags[i], richtext.Link(url))
	}

	exprs := make([]any, len(s.Args))
	for i, arg := range s.Args {
		if len(tags[i]) == 0 {
			exprs[i] = arg
			continue
		}
		exprs[i] = append(richtext.Seq{arg}, tags[i]...)
	}
	return exprs, nil
}

// indexed splits an N=VALUE flag.
func indexed(flag, pair string, nargs int) (int, string, error) {
	n, value, ok := strings.Cut(pair, "=")
	if !ok || value == "" {
		return 0, "", rterrors.NewValidation(flag, fmt.Sprintf("expected N=VALUE, got %q", pair))
	}
	i, err := strconv.Atoi(n)
	if err != nil || i < 0 || i >= nargs {
		return 0, "", rterrors.NewValidation(flag, fmt.Sprintf("argument index %q out of range", n))
	}
	return i, value, nil
}

// Output controls how annotated text is printed.
type Output struct {
	TextKey     string `name:"text-key" help:"Name of the text field (default text)"`
	EntitiesKey string `name:"entities-key" help:"Name of the entities field (default entities)"`
	UTF16       bool   `name:"utf16" help:"Report offsets in UTF-16 code units"`
	Sorted      bool   `name:"sorted" help:"Sort entities by offset"`
	Digest      bool   `name:"digest" help:"Include a BLAKE3 digest of the text and entities"`
}

func (o *Output) write(w io.Writer, text *richtext.Text, doc *document.Document) error {
	textKey, entitiesKey := "text", "entities"
	if doc != nil {
		textKey, entitiesKey = doc.Keys()
	}
	if o.TextKey != "" {
		textKey = o.TextKey
	}
	if o.EntitiesKey != "" {
		entitiesKey = o.EntitiesKey
	}
	if textKey == entitiesKey {
		return rterrors.NewValidation("entities-key", "must differ from the text key")
	}

	obj := text.ToObject(textKey, entitiesKey)
	if o.UTF16 || o.Sorted {
		ents := text.Entities()
		if o.UTF16 {
			ents = text.UTF16Entities()
		}
		if o.Sorted {
			richtext.SortEntities(ents)
		}
		obj[entitiesKey] = ents
	}
	if o.Digest {
		obj["digest"] = text.Digest()
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(obj)
}

// BuildCmd builds annotated text.
type BuildCmd struct {
	Source `embed:""`
	Output `embed:""`
}

func (c *BuildCmd) Run(e *env) error {
	text, doc, err := c.load(e.ctx)
	if err != nil {
		return err
	}
	logging.TextBuilt(e.ctx, c.origin(), text.Len(), len(text.Entities()))
	for _, err := range text.Validate() {
		logging.EntityOutOfRange(e.ctx, err)
	}
	return c.write(e.out, text, doc)
}

func (s *Source) origin() string {
	if s.File != "" {
		return s.File
	}
	return "template"
}

// CutCmd extracts part of the built text.
type CutCmd struct {
	Source `embed:""`
	Output `embed:""`

	Start int    `help:"Start byte index" required:""`
	End   int    `help:"End byte index; indices past the end are clamped" default:"2147483647"`
	Mode  string `help:"substring swaps inverted bounds; slice counts negative indices from the end" default:"substring" enum:"substring,slice"`
}

func (c *CutCmd) Run(e *env) error {
	text, doc, err := c.load(e.ctx)
	if err != nil {
		return err
	}

	end := min(c.End, text.Len())
	var cut *richtext.Text
	if c.Mode == "slice" {
		cut = text.Slice(c.Start, end)
	} else {
		cut = text.Substring(c.Start, end)
	}
	logging.DebugContext(e.ctx, "text_cut", "mode", c.Mode, "start", c.Start, "end", end, "len", cut.Len())
	return c.write(e.out, cut, doc)
}

// CaseCmd changes the case of the built text, keeping entities on the same
// characters.
type CaseCmd struct {
	Source `embed:""`
	Output `embed:""`

	Upper bool   `help:"Convert to upper case" xor:"case"`
	Lower bool   `help:"Convert to lower case" xor:"case"`
	Lang  string `help:"BCP 47 language tag for language-specific rules (e.g. tr)"`
}

func (c *CaseCmd) Run(e *env) error {
	if !c.Upper && !c.Lower {
		return rterrors.NewValidation("case", "one of --upper or --lower is required")
	}
	text, doc, err := c.load(e.ctx)
	if err != nil {
		return err
	}

	var folded *richtext.Text
	if c.Lang != "" {
		tag, err := language.Parse(c.Lang)
		if err != nil {
			return rterrors.Wrap(rterrors.NewValidation("lang", err.Error()), "invalid language tag")
		}
		if c.Upper {
			folded = text.ToUpperLocale(tag)
		} else {
			folded = text.ToLowerLocale(tag)
		}
	} else if c.Upper {
		folded = text.ToUpper()
	} else {
		folded = text.ToLower()
	}
	return c.write(e.out, folded, doc)
}

// EscapeCmd HTML-escapes its input.
type EscapeCmd struct {
	Template string   `short:"t" help:"Template whose arguments are escaped; literal chunks are kept as-is"`
	Args     []string `arg:"" optional:"" help:"Text to escape, or template arguments"`
}

func (c *EscapeCmd) Run(e *env) error {
	if c.Template == "" {
		_, err := fmt.Fprintln(e.out, encoding.EscapeHTMLText(strings.Join(c.Args, " ")))
		return err
	}
	args := make([]any, len(c.Args))
	for i, a := range c.Args {
		args[i] = a
	}
	html, err := template.FormatHTML(c.Template, args...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.out, html)
	return err
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(e *env) error {
	_, err := fmt.Fprintf(e.out, "richtext version %s\n", version)
	return err
}

// setup configures logging and returns the run context.
func (c *CLI) setup() (context.Context, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(c.LogFormat)
	if err != nil {
		return nil, err
	}
	logging.InitLogger(level, format, os.Stderr)
	return logging.WithRunID(context.Background(), logging.NewRunID()), nil
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("richtext"),
		kong.Description("Annotated text builder - text plus entity ranges from templates"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Configuration(config.YAML, config.Paths()...),
	)
	ctx, err := cli.setup()
	kctx.FatalIfErrorf(err)

	err = kctx.Run(&env{ctx: ctx, out: os.Stdout})
	if err != nil {
		logging.CommandFailed(ctx, kctx.Command(), err)
	}
	kctx.FatalIfErrorf(err)
}
