package jinja

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/skosovsky/codegen"
)

// ErrIncludeUnsupported is returned (wrapped in codegen.ErrTemplateCompile) for
// templates that include, import or extend other templates.
var ErrIncludeUnsupported = errors.New("jinja: templates cannot load other templates")

// Ensures Generator implements codegen.Generator.
var _ codegen.Generator = (*Generator)(nil)

// Generator renders a pongo2 template compiled once by New. Each Generator
// owns its template set, so options never leak between generators.
type Generator struct {
	name         string
	trimBlocks   bool
	lstripBlocks bool
	tpl          *pongo2.Template
}

// Option configures a Generator.
type Option func(*Generator)

// WithTrimBlocks removes the first newline after a block tag. Default true.
func WithTrimBlocks(on bool) Option {
	return func(g *Generator) { g.trimBlocks = on }
}

// WithLStripBlocks strips spaces and tabs before a block tag. Default true.
func WithLStripBlocks(on bool) Option {
	return func(g *Generator) { g.lstripBlocks = on }
}

// New compiles source. Syntax errors fail with codegen.ErrTemplateCompile.
func New(name, source string, opts ...Option) (*Generator, error) {
	if err := codegen.ValidateName(name); err != nil {
		return nil, err
	}
	g := &Generator{name: name, trimBlocks: true, lstripBlocks: true}
	for _, opt := range opts {
		opt(g)
	}
	set := pongo2.NewSet("codegen:"+name, rejectLoader{})
	set.Options.TrimBlocks = g.trimBlocks
	set.Options.LStripBlocks = g.lstripBlocks
	// The opening tag sits on its own line so trim and lstrip treat the first
	// source line as they would at the start of a file. The empty expression
	// keeps lstrip from eating trailing spaces before the closing tag.
	tpl, err := set.FromString(autoescapeOpen + source + autoescapeClose)
	if err != nil {
		return nil, codegen.NewCompileError(name, err)
	}
	g.tpl = tpl
	return g, nil
}

// Name implements codegen.Generator.
func (g *Generator) Name() string { return g.name }

// Generate implements codegen.Generator. params is reachable as params in the template.
func (g *Generator) Generate(params any) (string, error) {
	out, err := g.tpl.Execute(pongo2.Context{codegen.ParamsKey: params})
	if err != nil {
		return "", codegen.NewRenderError(g.name, err)
	}
	if !g.trimBlocks {
		// without trim_blocks the newline after the opening tag is output
		out = strings.TrimPrefix(out, "\n")
	}
	return out, nil
}

const (
	autoescapeOpen  = "{% autoescape off %}\n"
	autoescapeClose = `{{ "" }}{% endautoescape %}`
)

// rejectLoader fails every template lookup.
type rejectLoader struct{}

func (rejectLoader) Abs(_, name string) string { return name }

func (rejectLoader) Get(path string) (io.Reader, error) {
	return nil, fmt.Errorf("%w: %q", ErrIncludeUnsupported, path)
}
