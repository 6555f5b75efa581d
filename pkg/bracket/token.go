package bracket

import "unicode"

// TokenKind identifies the three token classes of the notation.
type TokenKind int

const (
	// TokenOpen is a literal '['.
	TokenOpen TokenKind = iota
	// TokenClose is a literal ']'.
	TokenClose
	// TokenText is a maximal run of non-whitespace, non-bracket characters.
	TokenText
)

// Token is one lexical unit. Offset is the byte offset of the token's first
// character in the input, kept for diagnostics.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int
}

// Tokenize scans the input left to right, emitting '[' and ']' as atomic
// tokens and any other maximal non-whitespace run as a text token.
// Whitespace (including newlines and tabs inside the input) is a separator
// and produces no token. Every input tokenizes; malformed structure is the
// parser's concern.
func Tokenize(input string) []Token {
	var toks []Token
	start := -1 // byte offset of the current text run, -1 when none

	flush := func(end int) {
		if start >= 0 {
			toks = append(toks, Token{Kind: TokenText, Text: input[start:end], Offset: start})
			start = -1
		}
	}

	for i, r := range input {
		switch {
		case r == '[':
			flush(i)
			toks = append(toks, Token{Kind: TokenOpen, Text: "[", Offset: i})
		case r == ']':
			flush(i)
			toks = append(toks, Token{Kind: TokenClose, Text: "]", Offset: i})
		case unicode.IsSpace(r):
			flush(i)
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(input))
	return toks
}
