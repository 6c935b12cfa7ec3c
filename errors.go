package codegen

import (
	"errors"
	"fmt"
)

// Sentinel errors for generator and registry operations.
// All use prefix "codegen:" for identification. Callers should use errors.Is/errors.As.
var (
	ErrTemplateCompile    = errors.New("codegen: template compilation failed")
	ErrTemplateRender     = errors.New("codegen: template rendering failed")
	ErrInvalidName        = errors.New("codegen: invalid generator name")
	ErrGeneratorNotFound  = errors.New("codegen: generator not found in registry")
	ErrDuplicateGenerator = errors.New("codegen: generator already registered")
	ErrInvalidManifest    = errors.New("codegen: manifest file is malformed")
)

// GeneratorError ties a failure kind (ErrTemplateCompile or ErrTemplateRender)
// to the generator that produced it and the engine's own error.
// Use errors.Is(err, ErrTemplateRender) and errors.As(err, &genErr) to inspect.
type GeneratorError struct {
	Generator string
	Kind      error
	Err       error
}

// Error implements error.
func (e *GeneratorError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: generator %q", e.Kind, e.Generator)
	}
	return fmt.Sprintf("%v: generator %q: %v", e.Kind, e.Generator, e.Err)
}

// Unwrap returns the kind and the cause for errors.Is/errors.As.
func (e *GeneratorError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Compile-time check that GeneratorError implements error.
var _ error = (*GeneratorError)(nil)

// NewCompileError reports a malformed template source for the named generator.
// Engine packages use it so all variants fail the same way.
func NewCompileError(name string, err error) error {
	return &GeneratorError{Generator: name, Kind: ErrTemplateCompile, Err: err}
}

// NewRenderError reports a failed render for the named generator.
func NewRenderError(name string, err error) error {
	return &GeneratorError{Generator: name, Kind: ErrTemplateRender, Err: err}
}
