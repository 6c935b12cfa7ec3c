package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/skosovsky/codegen"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// countingGenerator renders "<title>" and counts calls; block, when set, holds every render.
type countingGenerator struct {
	calls atomic.Int32
	block chan struct{}
	err   error
}

func (c *countingGenerator) Name() string { return "counting" }

func (c *countingGenerator) Generate(params any) (string, error) {
	c.calls.Add(1)
	if c.block != nil {
		<-c.block
	}
	if c.err != nil {
		return "", c.err
	}
	m, _ := params.(map[string]any)
	title, _ := m["title"].(string)
	return "<" + title + ">", nil
}

func TestGenerate_CachesByParams(t *testing.T) {
	t.Parallel()
	next := &countingGenerator{}
	g := New(next)
	assert.Equal(t, "counting", g.Name())

	for range 3 {
		got, err := g.Generate(map[string]any{"title": "a"})
		require.NoError(t, err)
		assert.Equal(t, "<a>", got)
	}
	got, err := g.Generate(map[string]any{"title": "b"})
	require.NoError(t, err)
	assert.Equal(t, "<b>", got)

	assert.Equal(t, int32(2), next.calls.Load())
	assert.Equal(t, 2, g.Len())
}

func TestGenerate_KeyIgnoresMapOrderButNotType(t *testing.T) {
	t.Parallel()
	next := &countingGenerator{}
	g := New(next)
	_, err := g.Generate(map[string]any{"title": "a", "code": 1})
	require.NoError(t, err)
	_, err = g.Generate(map[string]any{"code": 1, "title": "a"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), next.calls.Load())

	_, err = g.Generate(map[string]any{"code": 1.0, "title": "a"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), next.calls.Load())
	assert.Equal(t, 2, g.Len())
}

func TestGenerate_ErrorsNotCached(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	next := &countingGenerator{err: boom}
	g := New(next)
	for range 2 {
		_, err := g.Generate(map[string]any{"title": "a"})
		require.ErrorIs(t, err, boom)
	}
	assert.Equal(t, int32(2), next.calls.Load())
	assert.Zero(t, g.Len())
}

func TestGenerate_NonGenericParamsBypass(t *testing.T) {
	t.Parallel()
	next := &countingGenerator{}
	g := New(next)
	params := map[string]any{"title": "a", "fn": func() {}}
	for range 2 {
		got, err := g.Generate(params)
		require.NoError(t, err)
		assert.Equal(t, "<a>", got)
	}
	assert.Equal(t, int32(2), next.calls.Load())
	assert.Zero(t, g.Len())
}

type account struct {
	Name  string
	Token string `json:"-"`
}

type masked string

func (masked) MarshalJSON() ([]byte, error) { return []byte(`"***"`), nil }

func TestGenerate_DistinctParamsNeverShareOutput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		source      string
		first       any
		second      any
		wantFirst   string
		wantSecond  string
		wantEntries int
	}{
		{
			name:        "field hidden from json",
			source:      "{{ .params.Name }}:{{ .params.Token }}",
			first:       account{Name: "a", Token: "one"},
			second:      account{Name: "a", Token: "two"},
			wantFirst:   "a:one",
			wantSecond:  "a:two",
			wantEntries: 0,
		},
		{
			name:        "bytes and their base64 text",
			source:      `{{ printf "%s" .params.v }}`,
			first:       map[string]any{"v": []byte("hi")},
			second:      map[string]any{"v": "aGk="},
			wantFirst:   "hi",
			wantSecond:  "aGk=",
			wantEntries: 1,
		},
		{
			name:        "custom json marshaler",
			source:      "{{ .params.v }}",
			first:       map[string]any{"v": masked("x")},
			second:      map[string]any{"v": masked("y")},
			wantFirst:   "x",
			wantSecond:  "y",
			wantEntries: 0,
		},
		{
			name:        "typed nil and nil",
			source:      `{{ printf "%T" .params.v }}`,
			first:       map[string]any{"v": (*int)(nil)},
			second:      map[string]any{"v": nil},
			wantFirst:   "*int",
			wantSecond:  "<nil>",
			wantEntries: 1,
		},
		{
			name:        "int and float",
			source:      `{{ printf "%T" .params.v }}`,
			first:       map[string]any{"v": 1},
			second:      map[string]any{"v": 1.0},
			wantFirst:   "int",
			wantSecond:  "float64",
			wantEntries: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := New(codegen.Must(codegen.New("Distinct", tt.source)))
			for range 2 {
				got, err := g.Generate(tt.first)
				require.NoError(t, err)
				assert.Equal(t, tt.wantFirst, got)
				got, err = g.Generate(tt.second)
				require.NoError(t, err)
				assert.Equal(t, tt.wantSecond, got)
			}
			assert.Equal(t, tt.wantEntries, g.Len())
		})
	}
}

func TestGenerate_TTLExpiry(t *testing.T) {
	t.Parallel()
	next := &countingGenerator{}
	g := New(next, WithTTL(10*time.Millisecond))
	_, err := g.Generate(map[string]any{"title": "a"})
	require.NoError(t, err)
	time.Sleep(30 * time.Millisecond)
	_, err = g.Generate(map[string]any{"title": "a"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), next.calls.Load())
}

func TestGenerate_Capacity(t *testing.T) {
	t.Parallel()
	next := &countingGenerator{}
	g := New(next, WithCapacity(1), WithTTL(0))
	_, _ = g.Generate(map[string]any{"title": "a"})
	_, _ = g.Generate(map[string]any{"title": "b"})
	assert.Equal(t, 1, g.Len())
	_, _ = g.Generate(map[string]any{"title": "a"})
	assert.Equal(t, int32(3), next.calls.Load())
}

func TestPurge(t *testing.T) {
	t.Parallel()
	next := &countingGenerator{}
	g := New(next)
	_, _ = g.Generate(map[string]any{"title": "a"})
	g.Purge()
	assert.Zero(t, g.Len())
	_, _ = g.Generate(map[string]any{"title": "a"})
	assert.Equal(t, int32(2), next.calls.Load())
}

func TestGenerate_ConcurrentMissesRenderOnce(t *testing.T) {
	t.Parallel()
	next := &countingGenerator{block: make(chan struct{})}
	g := New(next)

	const n = 16
	var wg sync.WaitGroup
	results := make([]string, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = g.Generate(map[string]any{"title": "a"})
		}()
	}
	require.Eventually(t, func() bool { return next.calls.Load() == 1 }, time.Second, time.Millisecond)
	close(next.block)
	wg.Wait()

	assert.Equal(t, int32(1), next.calls.Load())
	for _, r := range results {
		assert.Equal(t, "<a>", r)
	}
}

func TestGenerate_WrapsRealGenerator(t *testing.T) {
	t.Parallel()
	g := New(codegen.Must(codegen.New("Hello", "Hello {{ .params.name }}")))
	got, err := g.Generate(map[string]any{"name": "World"})
	require.NoError(t, err)
	assert.Equal(t, "Hello World", got)

	_, err = g.Generate(map[string]any{})
	require.ErrorIs(t, err, codegen.ErrTemplateRender)
}

func TestNew_NilPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { New(nil) })
}
