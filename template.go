package codegen

import (
	"bytes"
	"fmt"
	"text/template"
)

// Missing-key modes accepted by WithMissingKey.
const (
	MissingKeyError   = "error"
	MissingKeyZero    = "zero"
	MissingKeyDefault = "default"
	MissingKeyInvalid = "invalid"
)

// TextGenerator renders a text/template compiled once at construction.
// Fields are not mutated after New returns, so Generate is goroutine-safe.
type TextGenerator struct {
	name string
	tpl  *template.Template
}

var _ Generator = (*TextGenerator)(nil)

// New compiles source into a TextGenerator named name.
// Returns ErrInvalidName for a bad name and ErrTemplateCompile (as *GeneratorError)
// when source fails to parse.
func New(name, source string, opts ...Option) (*TextGenerator, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	o := &textOptions{missingKey: MissingKeyError, funcs: defaultFuncMap()}
	for _, opt := range opts {
		opt(o)
	}
	switch o.missingKey {
	case MissingKeyError, MissingKeyZero, MissingKeyDefault, MissingKeyInvalid:
	default:
		return nil, NewCompileError(name, fmt.Errorf("unknown missing key mode %q", o.missingKey))
	}
	tpl, err := parse(name, source, o)
	if err != nil {
		return nil, NewCompileError(name, err)
	}
	return &TextGenerator{name: name, tpl: tpl}, nil
}

// parse turns the panics text/template raises for bad function maps into errors.
func parse(name, source string, o *textOptions) (tpl *template.Template, err error) {
	defer func() {
		if r := recover(); r != nil {
			tpl, err = nil, fmt.Errorf("invalid template function: %v", r)
		}
	}()
	return template.New(name).
		Delims(o.leftDelim, o.rightDelim).
		Option("missingkey=" + o.missingKey).
		Funcs(o.funcs).
		Parse(source)
}

// Name implements Generator.
func (g *TextGenerator) Name() string { return g.name }

// Generate implements Generator. params is reachable as .params in the template.
func (g *TextGenerator) Generate(params any) (string, error) {
	var buf bytes.Buffer
	if err := g.tpl.Execute(&buf, wrapParams(params)); err != nil {
		return "", NewRenderError(g.name, err)
	}
	return buf.String(), nil
}
