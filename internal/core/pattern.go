package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// tokenRegexp recognises escaped characters, named parameters with an
// optional constraint and modifier, unnamed groups and bare wildcards.
var tokenRegexp = regexp.MustCompile(`(\\.)|([\/.])?(?:(?:\:(\w+)(?:\(((?:\\.|[^\\()])+)\))?|\(((?:\\.|[^\\()])+)\))([+*?])?|(\*))`)

// Token is a dynamic segment of a route pattern.
type Token struct {
	Name      string
	Prefix    string
	Delimiter string
	Pattern   string
	Optional  bool
	Repeat    bool
	Partial   bool
	Asterisk  bool

	matcher *regexp.Regexp
}

type patternPart struct {
	literal string
	token   *Token
}

// RoutePattern is a parsed RouteSpec.
type RoutePattern struct {
	Source string
	parts  []patternPart
}

func ParsePattern(source string) (*RoutePattern, error) {
	p := &RoutePattern{Source: source}

	key := 0
	index := 0
	var literal strings.Builder

	for _, m := range tokenRegexp.FindAllStringSubmatchIndex(source, -1) {
		group := func(i int) string {
			if m[2*i] < 0 {
				return ""
			}
			return source[m[2*i]:m[2*i+1]]
		}

		literal.WriteString(source[index:m[0]])
		index = m[1]

		if escaped := group(1); escaped != "" {
			literal.WriteString(escaped[1:])
			continue
		}

		next := ""
		if index < len(source) {
			next = source[index : index+1]
		}

		prefix := group(2)
		name := group(3)
		capture := group(4)
		unnamed := group(5)
		modifier := group(6)
		asterisk := group(7)

		if literal.Len() > 0 {
			p.parts = append(p.parts, patternPart{literal: literal.String()})
			literal.Reset()
		}

		if name == "" {
			name = strconv.Itoa(key)
			key++
		}

		delimiter := prefix
		if delimiter == "" {
			delimiter = "/"
		}

		pattern := capture
		if pattern == "" {
			pattern = unnamed
		}
		switch {
		case pattern != "":
		case asterisk != "":
			pattern = ".*"
		default:
			pattern = "[^" + regexp.QuoteMeta(delimiter) + "]+?"
		}

		matcher, err := regexp.Compile("^(?:" + pattern + ")$")
		if err != nil {
			return nil, fmt.Errorf("invalid constraint for parameter %q: %w", name, err)
		}

		p.parts = append(p.parts, patternPart{token: &Token{
			Name:      name,
			Prefix:    prefix,
			Delimiter: delimiter,
			Pattern:   pattern,
			Optional:  modifier == "?" || modifier == "*",
			Repeat:    modifier == "+" || modifier == "*",
			Partial:   prefix != "" && next != "" && next != prefix,
			Asterisk:  asterisk != "",
			matcher:   matcher,
		}})
	}

	literal.WriteString(source[index:])
	if literal.Len() > 0 {
		p.parts = append(p.parts, patternPart{literal: literal.String()})
	}

	return p, nil
}

func (p *RoutePattern) IsDynamic() bool {
	for _, part := range p.parts {
		if part.token != nil {
			return true
		}
	}
	return false
}

func (p *RoutePattern) Tokens() []Token {
	var tokens []Token
	for _, part := range p.parts {
		if part.token != nil {
			tokens = append(tokens, *part.token)
		}
	}
	return tokens
}

// WithOptionalTail returns a copy whose last dynamic token is optional, so a
// parameter object may omit it and still produce the parent path.
func (p *RoutePattern) WithOptionalTail() *RoutePattern {
	out := &RoutePattern{Source: p.Source, parts: make([]patternPart, len(p.parts))}
	copy(out.parts, p.parts)

	for i := len(out.parts) - 1; i >= 0; i-- {
		if out.parts[i].token == nil {
			continue
		}
		tok := *out.parts[i].token
		tok.Optional = true
		out.parts[i].token = &tok
		break
	}
	return out
}

// Compile substitutes params into the pattern. Values are percent-encoded;
// wildcard values keep their slashes.
func (p *RoutePattern) Compile(params Params) (string, error) {
	var b strings.Builder

	for _, part := range p.parts {
		if part.token == nil {
			b.WriteString(part.literal)
			continue
		}

		tok := part.token
		value, ok := params[tok.Name]
		if !ok || value == "" {
			if tok.Optional {
				if tok.Partial {
					b.WriteString(tok.Prefix)
				}
				continue
			}
			return "", fmt.Errorf("expected %q to be defined", tok.Name)
		}

		if tok.Repeat {
			segments := strings.Split(value, tok.Delimiter)
			for i, segment := range segments {
				encoded := encodeSegment(segment, false)
				if !tok.matcher.MatchString(encoded) {
					return "", fmt.Errorf("expected all %q to match %q, got %q", tok.Name, tok.Pattern, encoded)
				}
				if i == 0 {
					b.WriteString(tok.Prefix)
				} else {
					b.WriteString(tok.Delimiter)
				}
				b.WriteString(encoded)
			}
			continue
		}

		encoded := encodeSegment(value, tok.Asterisk)
		if !tok.matcher.MatchString(encoded) {
			return "", fmt.Errorf("expected %q to match %q, got %q", tok.Name, tok.Pattern, encoded)
		}
		b.WriteString(tok.Prefix)
		b.WriteString(encoded)
	}

	return b.String(), nil
}

const upperHex = "0123456789ABCDEF"

// encodeSegment percent-encodes everything outside the URI unreserved and
// sub-delimiter sets. Slashes survive only for wildcards.
func encodeSegment(s string, keepSlash bool) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldKeep(c) || (keepSlash && c == '/') {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&15])
	}
	return b.String()
}

func shouldKeep(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte(";,:@&=+$-_.!~*'()", c) >= 0
}
