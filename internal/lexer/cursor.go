package lexer

import "github.com/rgeorge/ramseyc/internal/token"

// Cursor is the sequential, read-only view over a lexed token sequence
// that the parser drives. It is deliberately minimal: current(),
// advance(), eof().
type Cursor struct {
	tokens []token.Token
	pos    int
}

// NewCursor wraps an already-lexed token sequence (which must be
// terminated by an EOF token, as Tokenize produces).
func NewCursor(tokens []token.Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// Current returns the token at the cursor without consuming it.
func (c *Cursor) Current() token.Token {
	if c.pos >= len(c.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return c.tokens[c.pos]
}

// Advance returns the current token and moves the cursor forward by one,
// unless already at EOF.
func (c *Cursor) Advance() token.Token {
	t := c.Current()
	if c.pos < len(c.tokens) {
		c.pos++
	}
	return t
}

// Eof reports whether the cursor has reached the terminating EOF token.
func (c *Cursor) Eof() bool {
	return c.Current().Kind == token.EOF
}
