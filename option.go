package codegen

import (
	"maps"
	"text/template"

	"github.com/rs/zerolog"
)

// Option configures a TextGenerator (functional options pattern).
type Option func(*textOptions)

// textOptions holds construction-time settings; only the parsed template outlives New.
type textOptions struct {
	leftDelim  string
	rightDelim string
	missingKey string
	funcs      template.FuncMap
}

// WithDelims sets the action delimiters, e.g. "<%=" and "%>".
// Empty values keep the text/template defaults.
func WithDelims(left, right string) Option {
	return func(o *textOptions) {
		o.leftDelim = left
		o.rightDelim = right
	}
}

// WithFuncs adds template functions. They override sprig and built-in functions of the same name.
// An invalid function name or signature fails construction with ErrTemplateCompile.
func WithFuncs(funcs template.FuncMap) Option {
	return func(o *textOptions) {
		maps.Copy(o.funcs, funcs)
	}
}

// WithMissingKey sets how a missing map key is rendered: "error" (default),
// "zero", "default" or "invalid". Any other value fails construction.
func WithMissingKey(mode string) Option {
	return func(o *textOptions) {
		o.missingKey = mode
	}
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for render failures and registry wiring.
// Default is zerolog.Nop().
func WithLogger(logger zerolog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithConcurrency bounds the number of generators GenerateAll renders at once.
// n <= 0 means one goroutine per generator.
func WithConcurrency(n int) RegistryOption {
	return func(r *Registry) {
		r.concurrency = n
	}
}
