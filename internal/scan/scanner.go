package scan

import (
	"strings"

	"html-template-compiler/internal/diagnostic"
)

// Scanner walks template source one top-level unit at a time.
type Scanner struct {
	src string
	pos int
}

// New creates a Scanner positioned at the start of src.
func New(src string) *Scanner {
	return &Scanner{src: src}
}

// Pos returns the current byte offset.
func (s *Scanner) Pos() int {
	return s.pos
}

// ConsumeTopLevel consumes a text run, a comment or doctype, or a tag.
// It returns a TokenEnd token once the source is exhausted.
func (s *Scanner) ConsumeTopLevel() (Token, error) {
	if s.pos >= len(s.src) {
		return Token{Kind: TokenEnd, Offset: len(s.src)}, nil
	}

	start := s.pos

	next := s.nextInteresting(s.pos)
	if next < 0 {
		s.pos = len(s.src)
		return Token{Kind: TokenText, Offset: start, Text: s.src[start:]}, nil
	}

	if next > s.pos {
		s.pos = next
		return Token{Kind: TokenText, Offset: start, Text: s.src[start:next]}, nil
	}

	if s.src[s.pos+1] == '!' {
		return s.consumeComment(), nil
	}

	tag, err := s.consumeTag()
	if err != nil {
		return Token{}, err
	}

	return Token{Kind: TokenTag, Offset: start, Tag: tag}, nil
}

// Tokens drives the scanner to exhaustion. The trailing TokenEnd is not
// included.
func (s *Scanner) Tokens() ([]Token, error) {
	var out []Token

	for {
		tok, err := s.ConsumeTopLevel()
		if err != nil {
			return nil, err
		}

		if tok.Kind == TokenEnd {
			return out, nil
		}

		out = append(out, tok)
	}
}

// nextInteresting finds the next '<' followed by '/', '!' or a word byte.
func (s *Scanner) nextInteresting(from int) int {
	for i := from; i+1 < len(s.src); i++ {
		if s.src[i] != '<' {
			continue
		}

		c := s.src[i+1]
		if c == '/' || c == '!' || isWordByte(c) {
			return i
		}
	}

	return -1
}

func (s *Scanner) consumeComment() Token {
	start := s.pos

	end := strings.IndexByte(s.src[start:], '>')
	if end < 0 {
		s.pos = len(s.src)
	} else {
		s.pos = start + end + 1
	}

	return Token{Kind: TokenComment, Offset: start, Text: s.src[start:s.pos]}
}

func (s *Scanner) consumeTag() (*TagDef, error) {
	tag := &TagDef{Offset: s.pos}

	tag.Close = s.src[s.pos+1] == '/'
	if tag.Close {
		s.pos += 2
	} else {
		s.pos++
	}

	nameEnd := s.pos
	for nameEnd < len(s.src) && !isSpace(s.src[nameEnd]) && s.src[nameEnd] != '>' {
		nameEnd++
	}

	tag.Name = s.src[s.pos:nameEnd]

	// "<tag/>" has no room for attributes
	if strings.HasSuffix(tag.Name, "/") && nameEnd < len(s.src) && s.src[nameEnd] == '>' {
		tag.Name = strings.TrimSuffix(tag.Name, "/")
		tag.SelfClosing = true
		s.pos = nameEnd + 1

		return tag, nil
	}

	s.pos = nameEnd

	for {
		p := s.skipSpace(s.pos)

		keyStart := p
		for p < len(s.src) && !isSpace(s.src[p]) && !isKeyStop(s.src[p]) {
			p++
		}

		key := s.src[keyStart:p]

		hasValue := p < len(s.src) && s.src[p] == '='
		if hasValue {
			p++
		}

		if p == s.pos {
			break
		}

		s.pos = p

		if !hasValue {
			if key != "" {
				tag.SetFlag(key)
			}

			continue
		}

		tag.Set(key, s.eatAttributeValue())
	}

	p := s.skipSpace(s.pos)
	if p < len(s.src) && s.src[p] == '/' {
		tag.SelfClosing = true
		p++
	}

	if p >= len(s.src) || s.src[p] != '>' {
		return nil, diagnostic.Errorf(diagnostic.Lexical, diagnostic.CodeTagTerminator, tag.Name,
			"malformed terminator for tag %q", tag.Name).At(p)
	}

	s.pos = p + 1

	return tag, nil
}

// eatAttributeValue consumes the value after "=". Unmatched brace or quoted
// forms yield "" and leave the cursor in place.
func (s *Scanner) eatAttributeValue() string {
	if s.pos >= len(s.src) {
		return ""
	}

	rest := s.src[s.pos:]

	switch {
	case strings.HasPrefix(rest, "{{"):
		end := indexOnLine(rest, 2, "}}")
		if end < 0 {
			return ""
		}

		s.pos += end + 2

		return rest[:end+2]

	case rest[0] == '"' || rest[0] == '\'':
		end := indexOnLine(rest, 1, rest[:1])
		if end < 0 {
			return ""
		}

		s.pos += end + 1

		return rest[1:end]

	default:
		n := 0
		for n < len(rest) && !isSpace(rest[n]) && rest[n] != '/' && rest[n] != '>' {
			n++
		}

		s.pos += n

		return rest[:n]
	}
}

func (s *Scanner) skipSpace(p int) int {
	for p < len(s.src) && isSpace(s.src[p]) {
		p++
	}

	return p
}

// indexOnLine returns the index of sub in s at or after from, provided no
// newline comes first.
func indexOnLine(s string, from int, sub string) int {
	i := strings.Index(s[from:], sub)
	if i < 0 {
		return -1
	}

	if strings.IndexByte(s[from:from+i], '\n') >= 0 {
		return -1
	}

	return from + i
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}

	return false
}

func isKeyStop(c byte) bool {
	return c == '/' || c == '>' || c == '='
}
