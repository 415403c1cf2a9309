package program

import (
	"fmt"
	"strings"
	"unicode"
)

// sanitize consumes leading whitespace, line comments ("// ..."), and block
// comments ("/* ... */") from the input. Every sub-parser calls it before
// reading a token.
func sanitize(s string) string {
	for {
		trimmed := strings.TrimLeftFunc(s, unicode.IsSpace)
		switch {
		case strings.HasPrefix(trimmed, "//"):
			if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
				s = trimmed[idx+1:]
			} else {
				s = ""
			}
		case strings.HasPrefix(trimmed, "/*"):
			if idx := strings.Index(trimmed, "*/"); idx >= 0 {
				s = trimmed[idx+2:]
			} else {
				// Unterminated block comment; leave it for the caller to fail on.
				return trimmed
			}
		default:
			return trimmed
		}
	}
}

// nextToken sanitizes the input and reads one token: a maximal run of
// characters up to whitespace, a semicolon, a quote, or a colon.
func nextToken(s string) (token, rest string) {
	s = sanitize(s)
	end := len(s)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ';' || c == '"' || c == ':' || unicode.IsSpace(rune(c)) {
			end = i
			break
		}
	}
	return s[:end], s[end:]
}

// expectToken consumes the given token or fails.
func expectToken(s, want string) (rest string, err error) {
	token, rest := nextToken(s)
	if token != want {
		return s, fmt.Errorf("expected %q, found %q", want, token)
	}
	return rest, nil
}

// expectByte sanitizes the input and consumes the given byte or fails.
func expectByte(s string, want byte) (rest string, err error) {
	s = sanitize(s)
	if len(s) == 0 || s[0] != want {
		return s, fmt.Errorf("expected %q in %q", string(want), truncate(s))
	}
	return s[1:], nil
}

// ensureConsumed verifies that a full-string parse left no remainder.
func ensureConsumed(remainder, typeName string) error {
	if sanitize(remainder) != "" {
		return fmt.Errorf("failed to parse %s: found invalid character in %q", typeName, truncate(remainder))
	}
	return nil
}

func truncate(s string) string {
	if len(s) > 32 {
		return s[:32] + "..."
	}
	return s
}
