package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/skosovsky/codegen"
	"github.com/skosovsky/codegen/fasttpl"
	"github.com/skosovsky/codegen/jinja"
)

// Engine names accepted in the engine field.
const (
	EngineText  = "text"
	EngineFast  = "fast"
	EngineJinja = "jinja"
)

// fileManifest is the YAML manifest shape.
type fileManifest struct {
	Generators []fileGenerator `yaml:"generators" validate:"required,min=1,dive"`
}

type fileGenerator struct {
	Name         string   `yaml:"name"          validate:"required"`
	Engine       string   `yaml:"engine"        validate:"omitempty,oneof=text fast jinja"`
	Source       string   `yaml:"source"        validate:"required_without=File,excluded_with=File"`
	File         string   `yaml:"file"          validate:"required_without=Source"`
	Delims       []string `yaml:"delims"        validate:"omitempty,len=2,dive,required"`
	MissingKey   string   `yaml:"missing_key"`
	TrimBlocks   *bool    `yaml:"trim_blocks"`
	LStripBlocks *bool    `yaml:"lstrip_blocks"`
}

// ParseBytes parses a manifest and compiles its generators in order.
// Template files are read from fsys; fsys may be nil when every entry is inline.
func ParseBytes(data []byte, fsys fs.FS) ([]codegen.Generator, error) {
	var m fileManifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", codegen.ErrInvalidManifest, err)
	}
	if err := validateManifest(&m); err != nil {
		return nil, err
	}
	out := make([]codegen.Generator, 0, len(m.Generators))
	for i := range m.Generators {
		g, err := build(&m.Generators[i], fsys)
		if err != nil {
			return nil, fmt.Errorf("generator %d: %w", i, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// ParseFile reads a manifest file. Template files resolve relative to its directory.
func ParseFile(name string) ([]codegen.Generator, error) {
	data, err := os.ReadFile(name) // #nosec G304 -- path is chosen by the caller
	if err != nil {
		return nil, fmt.Errorf("manifest: read file: %w", err)
	}
	return ParseBytes(data, os.DirFS(filepath.Dir(name)))
}

// ParseFS reads a manifest from fs.FS (e.g. embed.FS). Template files resolve
// relative to the manifest's directory within fsys.
func ParseFS(fsys fs.FS, name string) ([]codegen.Generator, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("manifest: read fs: %w", err)
	}
	sub, err := fs.Sub(fsys, path.Dir(name))
	if err != nil {
		return nil, fmt.Errorf("manifest: read fs: %w", err)
	}
	return ParseBytes(data, sub)
}

func build(fg *fileGenerator, fsys fs.FS) (codegen.Generator, error) {
	source, err := readSource(fg, fsys)
	if err != nil {
		return nil, err
	}
	engine := fg.Engine
	if engine == "" {
		engine = EngineText
	}
	if engine != EngineText && fg.MissingKey != "" {
		return nil, fmt.Errorf("%w: %q: missing_key applies to the text engine only", codegen.ErrInvalidManifest, fg.Name)
	}
	if engine != EngineJinja && (fg.TrimBlocks != nil || fg.LStripBlocks != nil) {
		return nil, fmt.Errorf("%w: %q: trim_blocks and lstrip_blocks apply to the jinja engine only", codegen.ErrInvalidManifest, fg.Name)
	}
	switch engine {
	case EngineText:
		var opts []codegen.Option
		if len(fg.Delims) == 2 {
			opts = append(opts, codegen.WithDelims(fg.Delims[0], fg.Delims[1]))
		}
		if fg.MissingKey != "" {
			opts = append(opts, codegen.WithMissingKey(fg.MissingKey))
		}
		return generator(codegen.New(fg.Name, source, opts...))
	case EngineFast:
		var opts []fasttpl.Option
		if len(fg.Delims) == 2 {
			opts = append(opts, fasttpl.WithTags(fg.Delims[0], fg.Delims[1]))
		}
		return generator(fasttpl.New(fg.Name, source, opts...))
	case EngineJinja:
		if len(fg.Delims) != 0 {
			return nil, fmt.Errorf("%w: %q: the jinja engine has fixed delimiters", codegen.ErrInvalidManifest, fg.Name)
		}
		var opts []jinja.Option
		if fg.TrimBlocks != nil {
			opts = append(opts, jinja.WithTrimBlocks(*fg.TrimBlocks))
		}
		if fg.LStripBlocks != nil {
			opts = append(opts, jinja.WithLStripBlocks(*fg.LStripBlocks))
		}
		return generator(jinja.New(fg.Name, source, opts...))
	default:
		return nil, fmt.Errorf("%w: %q: unknown engine %q", codegen.ErrInvalidManifest, fg.Name, fg.Engine)
	}
}

// generator drops the concrete type so a failed constructor yields a nil interface.
func generator[G codegen.Generator](g G, err error) (codegen.Generator, error) {
	if err != nil {
		return nil, err
	}
	return g, nil
}

func readSource(fg *fileGenerator, fsys fs.FS) (string, error) {
	if fg.File == "" {
		return fg.Source, nil
	}
	if fsys == nil {
		return "", fmt.Errorf("%w: %q: file %q given without a filesystem", codegen.ErrInvalidManifest, fg.Name, fg.File)
	}
	data, err := fs.ReadFile(fsys, fg.File)
	if err != nil {
		return "", fmt.Errorf("manifest: %q: read template: %w", fg.Name, err)
	}
	return string(data), nil
}
