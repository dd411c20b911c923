package preset

import (
	"fmt"
	"strings"

	"karasync/internal/catalog"
)

// token is one segment of a compiled template: either literal text or a
// metadata field reference.
type token struct {
	literal string
	field   string
}

// compileTemplate splits a template into tokens, rejecting unknown or
// unterminated field references.
func compileTemplate(template string) ([]token, error) {
	var out []token
	rest := template
	for rest != "" {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			out = append(out, token{literal: rest})
			break
		}
		if open > 0 {
			out = append(out, token{literal: rest[:open]})
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			return nil, &ValidationError{
				Token:  rest[open:],
				Reason: "unterminated template token",
			}
		}
		name := rest[open+1 : open+closing]
		if !validField(name) {
			return nil, &ValidationError{
				Token:  fmt.Sprintf("{%s}", name),
				Reason: "unknown template token",
			}
		}
		out = append(out, token{field: name})
		rest = rest[open+closing+1:]
	}
	return out, nil
}

// expandTokens renders a compiled token sequence against a record.
func expandTokens(tokens []token, rec catalog.Record) string {
	var b strings.Builder
	for _, tok := range tokens {
		if tok.field == "" {
			b.WriteString(tok.literal)
			continue
		}
		value, _ := rec.Field(tok.field)
		b.WriteString(value)
	}
	return b.String()
}
