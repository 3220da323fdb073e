package scan

import "html-template-compiler/internal/common"

// TokenKind identifies what ConsumeTopLevel consumed.
type TokenKind int

const (
	// TokenEnd marks the end of the source.
	TokenEnd TokenKind = iota
	TokenText
	TokenComment
	TokenTag
)

// String returns a human-readable token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenEnd:
		return "end"
	case TokenText:
		return "text"
	case TokenComment:
		return "comment"
	case TokenTag:
		return "tag"
	default:
		return common.UnknownStr
	}
}

// Token is one top-level unit of the source.
type Token struct {
	Kind TokenKind
	// Offset is the byte offset where the unit starts.
	Offset int
	// Text holds the raw source of text and comment units.
	Text string
	// Tag is set for TokenTag.
	Tag *TagDef
}
