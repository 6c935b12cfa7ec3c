// Package cache memoizes a codegen.Generator. Rendering is a pure function of
// params, so outputs of generic params (maps, slices and scalars as decoded from
// JSON or YAML) are cached under a hash of their values and types, and
// concurrent renders of equal params share one call.
package cache
