package codegen

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Registry maps generator names to generators. It is built once and never
// mutated; With returns an extended copy. No mutex.
type Registry struct {
	generators  map[string]Generator
	names       []string
	logger      zerolog.Logger
	concurrency int
}

// NewRegistry registers generators in order. Returns ErrInvalidName for a bad
// name and ErrDuplicateGenerator when two generators share a name.
func NewRegistry(generators []Generator, opts ...RegistryOption) (*Registry, error) {
	r := &Registry{
		generators: make(map[string]Generator, len(generators)),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.add(generators); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) add(generators []Generator) error {
	for i, g := range generators {
		if g == nil {
			return fmt.Errorf("%w: generator %d is nil", ErrInvalidName, i)
		}
		name := g.Name()
		if err := ValidateName(name); err != nil {
			return err
		}
		if _, ok := r.generators[name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateGenerator, name)
		}
		r.generators[name] = g
		r.names = append(r.names, name)
		r.logger.Debug().Str("generator", name).Msg("generator registered")
	}
	return nil
}

// With returns a new Registry holding r's generators followed by generators.
// r itself is unchanged.
func (r *Registry) With(generators ...Generator) (*Registry, error) {
	out := &Registry{
		generators:  make(map[string]Generator, len(r.generators)+len(generators)),
		names:       slices.Clone(r.names),
		logger:      r.logger,
		concurrency: r.concurrency,
	}
	for name, g := range r.generators {
		out.generators[name] = g
	}
	if err := out.add(generators); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the generator registered under name.
func (r *Registry) Get(name string) (Generator, error) {
	g, ok := r.generators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrGeneratorNotFound, name)
	}
	return g, nil
}

// Names returns generator names in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Generate renders params with the named generator. Errors are returned unmodified.
func (r *Registry) Generate(name string, params any) (string, error) {
	g, err := r.Get(name)
	if err != nil {
		return "", err
	}
	out, err := g.Generate(params)
	if err != nil {
		r.logger.Debug().Err(err).Str("generator", name).Msg("render failed")
		return "", err
	}
	return out, nil
}

// GenerateAll renders params with every generator concurrently and returns
// outputs keyed by name. The first failure cancels the rest and no partial
// map is returned.
func (r *Registry) GenerateAll(ctx context.Context, params any) (map[string]string, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	var (
		mu  sync.Mutex
		out = make(map[string]string, len(r.names))
	)
	eg, egCtx := errgroup.WithContext(ctx)
	if r.concurrency > 0 {
		eg.SetLimit(r.concurrency)
	}
	for _, name := range r.names {
		g := r.generators[name]
		eg.Go(func() error {
			if egCtx.Err() != nil {
				return egCtx.Err()
			}
			text, err := g.Generate(params)
			if err != nil {
				r.logger.Debug().Err(err).Str("generator", name).Msg("render failed")
				return err
			}
			mu.Lock()
			out[name] = text
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
