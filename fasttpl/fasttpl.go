package fasttpl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/skosovsky/codegen"
	"github.com/skosovsky/codegen/internal/lookup"
)

// Ensures Generator implements codegen.Generator.
var _ codegen.Generator = (*Generator)(nil)

// Generator substitutes tags in a template compiled once by New.
// fasttemplate.Template is safe for concurrent execution, so Generate is too.
type Generator struct {
	name     string
	startTag string
	endTag   string
	tpl      *fasttemplate.Template
}

// Option configures a Generator.
type Option func(*Generator)

// WithTags sets the start and end tag. Default is "{{" and "}}".
func WithTags(start, end string) Option {
	return func(g *Generator) {
		g.startTag = start
		g.endTag = end
	}
}

// New compiles source. An unterminated tag fails with codegen.ErrTemplateCompile.
func New(name, source string, opts ...Option) (*Generator, error) {
	if err := codegen.ValidateName(name); err != nil {
		return nil, err
	}
	g := &Generator{name: name, startTag: "{{", endTag: "}}"}
	for _, opt := range opts {
		opt(g)
	}
	if g.startTag == "" || g.endTag == "" {
		return nil, codegen.NewCompileError(name, errors.New("start and end tags must not be empty"))
	}
	tpl, err := fasttemplate.NewTemplate(source, g.startTag, g.endTag)
	if err != nil {
		return nil, codegen.NewCompileError(name, err)
	}
	g.tpl = tpl
	return g, nil
}

// Name implements codegen.Generator.
func (g *Generator) Name() string { return g.name }

// Generate implements codegen.Generator.
func (g *Generator) Generate(params any) (string, error) {
	root := map[string]any{codegen.ParamsKey: params}
	out, err := g.tpl.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
		path := strings.TrimSpace(tag)
		v, ok := lookup.Path(root, path)
		if !ok {
			return 0, fmt.Errorf("unresolved tag %q", path)
		}
		return io.WriteString(w, lookup.Format(v))
	})
	if err != nil {
		return "", codegen.NewRenderError(g.name, err)
	}
	return out, nil
}
