// Package codegen renders parameter objects into pre-authored code templates.
// Each Generator compiles its template once at construction and renders it on
// demand; Registry groups generators by name for "export as code" menus.
package codegen
