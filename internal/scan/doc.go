// Package scan lexes template source into top-level units: text runs,
// comments (including doctypes) and tags.
//
// The scanner is a cursor over the source. Each call to ConsumeTopLevel
// advances past exactly one unit. Tags are parsed into a TagDef with
// insertion-ordered attributes; everything else is returned verbatim.
//
// Comments end at the first '>' after "<!", even inside "<!-- -->".
package scan
