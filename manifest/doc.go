// Package manifest reads YAML catalogs of extra generators. Each entry names
// an engine (text, fast or jinja), an inline source or a template file, and
// engine options; every template is compiled while the catalog is parsed.
package manifest
