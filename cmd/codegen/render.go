package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/skosovsky/codegen"
	"github.com/skosovsky/codegen/cache"
)

var (
	errNoGenerator   = errors.New("render: generator name or --all required")
	errAmbiguousArgs = errors.New("render: pass a generator name or --all, not both")
)

func newRenderCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [generator]",
		Short: "Render params with one generator or all of them",
		Long: `Render one or more params files (YAML or JSON) with a generator.

Params are read from each --params file in order, or from stdin when none is
given. Output of every render is concatenated. With --all each output is
preceded by a "==> name <==" header. Nothing is written unless every render
succeeds.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.render,
	}

	cmd.Flags().StringArrayP("params", "p", nil, "Params file, - for stdin (repeatable)")
	cmd.Flags().Bool("all", false, "Render with every generator")
	cmd.Flags().StringP("out", "o", "", "Write output to file instead of stdout")
	cmd.Flags().Bool("no-cache", false, "Render identical params files again instead of reusing output")

	return cmd
}

func (a *app) render(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	switch {
	case all && len(args) > 0:
		return errAmbiguousArgs
	case !all && len(args) == 0:
		return errNoGenerator
	}

	paths, _ := cmd.Flags().GetStringArray("params")
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	noCache, _ := cmd.Flags().GetBool("no-cache")

	registry := a.registry
	if !noCache {
		var err error
		if registry, err = a.cachedRegistry(); err != nil {
			return err
		}
	}

	var out bytes.Buffer

	for _, path := range paths {
		params, err := readParams(cmd.InOrStdin(), path)
		if err != nil {
			return err
		}

		if all {
			err = renderAll(cmd.Context(), registry, params, &out)
		} else {
			var text string
			if text, err = registry.Generate(args[0], params); err == nil {
				out.WriteString(text)
			}
		}
		if err != nil {
			return err
		}

		a.logger.Debug().Str("params", path).Msg("params rendered")
	}

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		_, err := cmd.OutOrStdout().Write(out.Bytes())

		return err
	}

	return os.WriteFile(outPath, out.Bytes(), 0o644)
}

// cachedRegistry wraps every generator so repeated params files render once.
func (a *app) cachedRegistry() (*codegen.Registry, error) {
	names := a.registry.Names()
	generators := make([]codegen.Generator, 0, len(names))

	for _, name := range names {
		g, err := a.registry.Get(name)
		if err != nil {
			return nil, err
		}

		generators = append(generators, cache.New(g,
			cache.WithTTL(a.cfg.Cache.TTL),
			cache.WithCapacity(a.cfg.Cache.Capacity),
		))
	}

	return codegen.NewRegistry(generators, registryOptions(a.cfg, a.logger)...)
}

func renderAll(ctx context.Context, registry *codegen.Registry, params any, w *bytes.Buffer) error {
	outputs, err := registry.GenerateAll(ctx, params)
	if err != nil {
		return err
	}

	for _, name := range registry.Names() {
		text := outputs[name]

		fmt.Fprintf(w, "==> %s <==\n%s", name, text)

		if text != "" && !strings.HasSuffix(text, "\n") {
			w.WriteByte('\n')
		}
	}

	return nil
}

// readParams decodes a YAML or JSON document. An empty document yields nil params.
func readParams(stdin io.Reader, path string) (any, error) {
	var (
		data []byte
		err  error
	)

	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("params %s: %w", path, err)
	}

	var params any
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("params %s: %w", path, err)
	}

	return params, nil
}
