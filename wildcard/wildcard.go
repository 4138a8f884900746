// Package wildcard implements a hex-with-wildcard byte pattern matcher.
//
// A pattern is a sequence of whitespace-separated or concatenated two-character
// tokens, case-insensitive. Each token is either two hex digits (a literal byte)
// or the two characters "??" (a single-byte wildcard). Matching locates the
// pattern as a contiguous subsequence of the candidate data.
package wildcard

import "strings"

// token is one parsed pattern element: a literal byte, or a wildcard (any
// single byte) when wild is true.
type token struct {
	b    byte
	wild bool
}

// parse tokenises a pattern string into literal/wildcard tokens. It reports
// ok=false for malformed patterns: an odd number of non-whitespace hex
// characters, or a two-character token that is neither valid hex nor "??".
func parse(pattern string) (tokens []token, ok bool) {
	normalized := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, pattern)
	normalized = strings.ToLower(normalized)

	if len(normalized)%2 != 0 {
		return nil, false
	}

	tokens = make([]token, 0, len(normalized)/2)
	for i := 0; i < len(normalized); i += 2 {
		pair := normalized[i : i+2]
		if pair == "??" {
			tokens = append(tokens, token{wild: true})
			continue
		}
		b, ok := parseHexByte(pair)
		if !ok {
			return nil, false
		}
		tokens = append(tokens, token{b: b})
	}
	return tokens, true
}

func parseHexByte(pair string) (byte, bool) {
	hi, ok := hexNibble(pair[0])
	if !ok {
		return 0, false
	}
	lo, ok := hexNibble(pair[1])
	if !ok {
		return 0, false
	}
	return hi<<4 | lo, true
}

func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	default:
		return 0, false
	}
}

// Validate reports whether pattern is well-formed (parses to a token
// sequence), without matching it against any data. Used by rule-set
// validation tooling to flag a malformed pattern before it ever reaches the
// rule store.
func Validate(pattern string) bool {
	_, ok := parse(pattern)
	return ok
}

// Matches reports whether pattern occurs as a contiguous subsequence of data,
// where "??" tokens match any single byte. An empty pattern matches only
// empty data. A malformed pattern never matches.
func Matches(pattern string, data []byte) bool {
	tokens, ok := parse(pattern)
	if !ok {
		return false
	}
	if len(tokens) == 0 {
		return len(data) == 0
	}
	if len(data) < len(tokens) {
		return false
	}
	for start := 0; start <= len(data)-len(tokens); start++ {
		if matchAt(tokens, data, start) {
			return true
		}
	}
	return false
}

// Find returns the offset and token length of the leftmost match of pattern
// in data. ok is false if there is no match or the pattern is malformed.
func Find(pattern string, data []byte) (offset int, length int, ok bool) {
	tokens, valid := parse(pattern)
	if !valid {
		return 0, 0, false
	}
	if len(tokens) == 0 {
		if len(data) == 0 {
			return 0, 0, true
		}
		return 0, 0, false
	}
	if len(data) < len(tokens) {
		return 0, 0, false
	}
	for start := 0; start <= len(data)-len(tokens); start++ {
		if matchAt(tokens, data, start) {
			return start, len(tokens), true
		}
	}
	return 0, 0, false
}

func matchAt(tokens []token, data []byte, start int) bool {
	for i, tok := range tokens {
		if tok.wild {
			continue
		}
		if data[start+i] != tok.b {
			return false
		}
	}
	return true
}
