package codegen_test

import (
	"context"
	"fmt"

	"github.com/skosovsky/codegen"
)

func ExampleNew() {
	g, err := codegen.New("Hello", "Hello {{ .params.name }}")
	if err != nil {
		panic(err)
	}
	out, err := g.Generate(map[string]any{"name": "World"})
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output: Hello World
}

func ExampleWithDelims() {
	g := codegen.Must(codegen.New("Hello", "Hello <%= .params.name %>", codegen.WithDelims("<%=", "%>")))
	out, _ := g.Generate(map[string]any{"name": "World"})
	fmt.Println(out)
	// Output: Hello World
}

func ExampleRegistry_GenerateAll() {
	reg, err := codegen.NewRegistry([]codegen.Generator{
		codegen.Must(codegen.New("JSON", "{{ to_json .params }}")),
		codegen.Must(codegen.New("Python Example", "params = {{ to_python .params }}")),
	})
	if err != nil {
		panic(err)
	}
	out, err := reg.GenerateAll(context.Background(), map[string]any{"retry": true})
	if err != nil {
		panic(err)
	}
	for _, name := range reg.Names() {
		fmt.Println(out[name])
	}
	// Output:
	// {
	//   "retry": true
	// }
	// params = {
	//     "retry": True
	// }
}
