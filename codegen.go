package codegen

// ParamsKey is the top-level key every engine exposes the caller's params under,
// so templates always read them as .params.<field> (or params.<field>).
const ParamsKey = "params"

// Generator renders one pre-compiled template. Implementations are immutable
// after construction and safe for concurrent use.
type Generator interface {
	// Name is the human-readable label, unique within a Registry.
	Name() string
	// Generate renders params into a fresh string. Either the whole output is
	// returned or an error wrapping ErrTemplateRender; never partial text.
	Generate(params any) (string, error)
}

// Must returns g or panics with err. Intended for package-level generators
// built from static sources, so a broken template stops the process at start.
func Must[G Generator](g G, err error) G {
	if err != nil {
		panic(err)
	}
	return g
}

// wrapParams builds the data root passed to templates.
func wrapParams(params any) map[string]any {
	return map[string]any{ParamsKey: params}
}
