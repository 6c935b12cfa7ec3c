package builtin

import (
	_ "embed"

	"github.com/skosovsky/codegen"
)

var (
	//go:embed templates/js.tmpl
	jsTemplate string
	//go:embed templates/json.tmpl
	jsonTemplate string
	//go:embed templates/python.tmpl
	pythonTemplate string
)

// Stock generators. Package-level values; never reassign.
var (
	NodeJS = codegen.Must(codegen.New("NodeJS Example", jsTemplate))
	JSON   = codegen.Must(codegen.New("JSON", jsonTemplate))
	Python = codegen.Must(codegen.New("Python Example", pythonTemplate))
)

// Generators returns the stock generators in menu order.
func Generators() []codegen.Generator {
	return []codegen.Generator{NodeJS, JSON, Python}
}

// Registry returns a new registry holding the stock generators.
func Registry(opts ...codegen.RegistryOption) *codegen.Registry {
	reg, err := codegen.NewRegistry(Generators(), opts...)
	if err != nil {
		// names are distinct constants
		panic(err)
	}
	return reg
}
