// Package fasttpl provides a codegen.Generator backed by valyala/fasttemplate.
// Tags hold a dotted path rooted at "params" (e.g. <%= params.name %> with
// WithTags("<%=", "%>")); there is no logic, only substitution. Paths walk
// maps, slices (by index) and structs (by exported field name). A tag that does
// not resolve fails the render with codegen.ErrTemplateRender.
package fasttpl
