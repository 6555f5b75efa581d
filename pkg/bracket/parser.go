package bracket

import "fmt"

// ParseTree is the ephemeral result of parsing one bracket expression.
// It has no identity and no relation to forest node or edge ids; Rebuild
// turns it into store nodes.
//
// Children and leaf tokens may interleave in the source but are collected
// into two separate ordered lists; their relative interleaving order is not
// preserved. Children is nil (not an empty slice) when the expression has
// no child expressions, and LeafText is nil when it has no bare tokens —
// the distinction matters for serializer round-trips.
type ParseTree struct {
	Label    string
	Children []*ParseTree
	LeafText []string
}

// SyntaxError reports malformed bracket notation. Pos is the index of the
// offending token in the token sequence (not a byte offset); for premature
// end of input it equals the token count.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string { return e.Msg }

func syntaxErrorf(pos int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// parser holds the token sequence and an explicit cursor, advanced by each
// parse step.
type parser struct {
	toks []Token
	pos  int
}

func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.toks) {
		return Token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) next() (Token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

// Parse tokenizes the input and parses exactly one top-level bracket
// expression. Any tokens remaining after it are a hard error. On failure
// the returned error is a [*SyntaxError] carrying the offending token
// index.
func Parse(input string) (*ParseTree, error) {
	p := &parser{toks: Tokenize(input)}
	tree, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, ok := p.peek(); ok {
		return nil, syntaxErrorf(p.pos, "unexpected tokens after root expression at position %d", p.pos)
	}
	return tree, nil
}

// parseExpr parses '[' label (expr | token)* ']'.
func (p *parser) parseExpr() (*ParseTree, error) {
	at := p.pos
	tok, ok := p.next()
	if !ok || tok.Kind != TokenOpen {
		return nil, syntaxErrorf(at, "expected '[' at position %d", at)
	}

	at = p.pos
	label, ok := p.next()
	if !ok {
		return nil, syntaxErrorf(at, "unexpected end of input: expected label")
	}
	if label.Kind != TokenText {
		return nil, syntaxErrorf(at, "expected label at position %d", at)
	}

	tree := &ParseTree{Label: label.Text}
	for {
		tok, ok := p.peek()
		if !ok {
			return nil, syntaxErrorf(p.pos, "expected ']' at position %d", p.pos)
		}
		switch tok.Kind {
		case TokenClose:
			p.pos++
			return tree, nil
		case TokenOpen:
			child, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			tree.Children = append(tree.Children, child)
		default:
			p.pos++
			tree.LeafText = append(tree.LeafText, tok.Text)
		}
	}
}
