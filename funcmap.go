package codegen

import (
	"bytes"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/goccy/go-json"
)

// defaultFuncMap returns sprig's text functions without environment access,
// plus the literal encoders used by code templates.
func defaultFuncMap() template.FuncMap {
	funcMap := sprig.TxtFuncMap()
	delete(funcMap, "env")
	delete(funcMap, "expandenv")
	funcMap["to_json"] = jsonStyle.encode
	funcMap["to_js"] = jsStyle.encode
	funcMap["to_python"] = pythonStyle.encode
	return funcMap
}

var jsIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// literalStyle describes how a JSON-shaped value is spelled in a target language.
type literalStyle struct {
	name     string
	indent   string
	trueLit  string
	falseLit string
	nullLit  string
	bareKeys bool // emit identifier-safe object keys unquoted
}

var (
	jsonStyle   = literalStyle{name: "to_json", indent: "  ", trueLit: "true", falseLit: "false", nullLit: "null"}
	jsStyle     = literalStyle{name: "to_js", indent: "  ", trueLit: "true", falseLit: "false", nullLit: "null", bareKeys: true}
	pythonStyle = literalStyle{name: "to_python", indent: "    ", trueLit: "True", falseLit: "False", nullLit: "None"}
)

// encode renders v as an indented literal. Object keys are sorted so output is deterministic.
func (s literalStyle) encode(v any) (string, error) {
	norm, err := normalize(v)
	if err != nil {
		return "", fmt.Errorf("%s: %w", s.name, err)
	}
	var sb strings.Builder
	if err := s.write(&sb, norm, 0); err != nil {
		return "", fmt.Errorf("%s: %w", s.name, err)
	}
	return sb.String(), nil
}

func (s literalStyle) write(sb *strings.Builder, v any, depth int) error {
	switch x := v.(type) {
	case nil:
		sb.WriteString(s.nullLit)
	case bool:
		if x {
			sb.WriteString(s.trueLit)
		} else {
			sb.WriteString(s.falseLit)
		}
	case json.Number:
		sb.WriteString(x.String())
	case string:
		q, err := quote(x)
		if err != nil {
			return err
		}
		sb.WriteString(q)
	case []any:
		if len(x) == 0 {
			sb.WriteString("[]")
			return nil
		}
		sb.WriteString("[\n")
		for i, e := range x {
			s.writeIndent(sb, depth+1)
			if err := s.write(sb, e, depth+1); err != nil {
				return err
			}
			if i < len(x)-1 {
				sb.WriteByte(',')
			}
			sb.WriteByte('\n')
		}
		s.writeIndent(sb, depth)
		sb.WriteByte(']')
	case map[string]any:
		if len(x) == 0 {
			sb.WriteString("{}")
			return nil
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		sb.WriteString("{\n")
		for i, k := range keys {
			s.writeIndent(sb, depth+1)
			if s.bareKeys && jsIdentifier.MatchString(k) {
				sb.WriteString(k)
			} else {
				q, err := quote(k)
				if err != nil {
					return err
				}
				sb.WriteString(q)
			}
			sb.WriteString(": ")
			if err := s.write(sb, x[k], depth+1); err != nil {
				return err
			}
			if i < len(keys)-1 {
				sb.WriteByte(',')
			}
			sb.WriteByte('\n')
		}
		s.writeIndent(sb, depth)
		sb.WriteByte('}')
	default:
		return fmt.Errorf("unsupported value of type %T", v)
	}
	return nil
}

func (s literalStyle) writeIndent(sb *strings.Builder, depth int) {
	for range depth {
		sb.WriteString(s.indent)
	}
}

// normalize round-trips v through JSON so structs, typed maps and numbers all
// reduce to map[string]any, []any, string, bool, json.Number or nil.
func normalize(v any) (any, error) {
	b, err := json.MarshalWithOption(v, json.DisableHTMLEscape())
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// quote returns a double-quoted string literal valid in JSON, JavaScript and Python.
func quote(s string) (string, error) {
	b, err := json.MarshalWithOption(s, json.DisableHTMLEscape())
	if err != nil {
		return "", err
	}
	return string(b), nil
}
