// Package part defines the linear Part sequence a template compiles to and
// the rules that produce it.
//
// Literal markup becomes raw parts. Brace expressions become interpolations
// (html, comment) or, when they start with a non-identifier character,
// directives resolved by a DirectiveResolver. Tag attributes are rendered by
// RenderAttrKeyValue, which owns the escaping and splitting rules for
// attribute values.
package part
