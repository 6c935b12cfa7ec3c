// Package jinja provides a codegen.Generator backed by flosch/pongo2, a
// Django/Jinja-syntax engine. Output is never HTML-escaped, includes and
// extends are rejected at construction, and undefined variables render as
// the empty string, as they do in Jinja.
package jinja
