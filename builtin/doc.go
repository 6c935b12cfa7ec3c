// Package builtin holds the editor's stock export generators. They are built
// from embedded templates when the package is initialized; a broken template
// panics at start-up instead of failing on first use.
package builtin
