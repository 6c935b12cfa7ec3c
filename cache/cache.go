package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"

	"github.com/skosovsky/codegen"
)

const (
	defaultTTL      = 5 * time.Minute
	defaultCapacity = 1024
)

// Ensures Generator implements codegen.Generator.
var _ codegen.Generator = (*Generator)(nil)

// Generator wraps another generator with a TTL cache. Safe for concurrent use.
type Generator struct {
	next     codegen.Generator
	ttl      time.Duration
	capacity uint64
	items    *ttlcache.Cache[string, string]
	sf       singleflight.Group
}

// Option configures a Generator (functional options pattern).
type Option func(*Generator)

// WithTTL sets how long an output stays cached. Default is 5 minutes.
// TTL <= 0 means entries never expire.
func WithTTL(d time.Duration) Option {
	return func(g *Generator) { g.ttl = d }
}

// WithCapacity bounds the number of cached outputs; the least recently used
// entry is evicted first. Default 1024; 0 means unbounded.
func WithCapacity(n uint64) Option {
	return func(g *Generator) { g.capacity = n }
}

// New wraps next. Panics if next is nil.
func New(next codegen.Generator, opts ...Option) *Generator {
	if next == nil {
		panic("cache: Generator must not be nil")
	}
	g := &Generator{next: next, ttl: defaultTTL, capacity: defaultCapacity}
	for _, opt := range opts {
		opt(g)
	}
	ttl := g.ttl
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	cacheOpts := []ttlcache.Option[string, string]{ttlcache.WithTTL[string, string](ttl)}
	if g.capacity > 0 {
		cacheOpts = append(cacheOpts, ttlcache.WithCapacity[string, string](g.capacity))
	}
	// No Start(): expired items are skipped by Get and evicted by capacity,
	// so no cleaner goroutine is needed.
	g.items = ttlcache.New(cacheOpts...)
	return g
}

// Name implements codegen.Generator.
func (g *Generator) Name() string { return g.next.Name() }

// Generate implements codegen.Generator. Render errors are returned and never cached.
// Only params built from map[string]any, []any, strings, bools, numbers and nil
// are cached; anything else (structs, typed maps, byte slices) bypasses the cache.
func (g *Generator) Generate(params any) (string, error) {
	key, ok := cacheKey(params)
	if !ok {
		return g.next.Generate(params)
	}
	if item := g.items.Get(key); item != nil {
		return item.Value(), nil
	}
	v, err, _ := g.sf.Do(key, func() (any, error) {
		if item := g.items.Get(key); item != nil {
			return item.Value(), nil
		}
		out, err := g.next.Generate(params)
		if err != nil {
			return nil, err
		}
		g.items.Set(key, out, ttlcache.DefaultTTL)
		return out, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Len reports the number of cached outputs, including expired ones not yet evicted.
func (g *Generator) Len() int {
	return g.items.Len()
}

// Purge drops every cached output.
func (g *Generator) Purge() {
	g.items.DeleteAll()
}

// cacheKey hashes a type-tagged encoding of params. Two params share a key only
// when they are equal values of the same Go types, so the wrapped template
// cannot tell them apart.
func cacheKey(params any) (string, bool) {
	h := sha256.New()
	if !writeKey(h, params) {
		return "", false
	}
	return hex.EncodeToString(h.Sum(nil)), true
}

// writeKey reports false for values whose rendering may depend on more than
// their encoding (methods, hidden fields, pointers).
func writeKey(w io.Writer, v any) bool {
	switch x := v.(type) {
	case nil:
		io.WriteString(w, "n;")
	case string:
		fmt.Fprintf(w, "s%d:%s;", len(x), x)
	case bool:
		fmt.Fprintf(w, "b%t;", x)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		fmt.Fprintf(w, "%T:%v;", x, x)
	case []any:
		fmt.Fprintf(w, "a%d[", len(x))
		for _, e := range x {
			if !writeKey(w, e) {
				return false
			}
		}
		io.WriteString(w, "]")
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		fmt.Fprintf(w, "m%d{", len(x))
		for _, k := range keys {
			fmt.Fprintf(w, "%d:%s=", len(k), k)
			if !writeKey(w, x[k]) {
				return false
			}
		}
		io.WriteString(w, "}")
	default:
		return false
	}
	return true
}
