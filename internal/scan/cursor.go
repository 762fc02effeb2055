package scan

import "strings"

// Cursor walks an immutable token slice with read-ahead. Rest exposes the
// tokens after the current position as a subslice of the backing array, so
// peeking never copies.
type Cursor struct {
	tokens []string
	pos    int
}

func NewCursor(tokens []string) *Cursor {
	return &Cursor{tokens: tokens, pos: -1}
}

// Next advances the cursor and reports whether a token is available.
func (c *Cursor) Next() bool {
	if c.pos+1 >= len(c.tokens) {
		c.pos = len(c.tokens)
		return false
	}
	c.pos++
	return true
}

func (c *Cursor) Index() int {
	return c.pos
}

func (c *Cursor) Token() string {
	return c.tokens[c.pos]
}

// Rest returns the tokens after the current one.
func (c *Cursor) Rest() []string {
	if c.pos+1 >= len(c.tokens) {
		return nil
	}
	return c.tokens[c.pos+1:]
}

// Prev returns the token before the current position, or "" at the start.
// Newline tokens are skipped so statements broken across lines behave the
// same as single-line ones.
func (c *Cursor) Prev() string {
	return c.PrevN(1)
}

// PrevN returns the nth token before the current position, counting backwards
// and skipping newlines. It returns "" when fewer than n tokens precede the
// cursor.
func (c *Cursor) PrevN(n int) string {
	seen := 0
	for i := c.pos - 1; i >= 0; i-- {
		if c.tokens[i] == "\n" {
			continue
		}
		seen++
		if seen == n {
			return c.tokens[i]
		}
	}
	return ""
}

// MaxDebugTokens bounds the lookahead echoed into diagnostics on a grammar
// miss.
const MaxDebugTokens = 10

// Statement joins the current token with up to limit following tokens, for
// diagnostics.
func (c *Cursor) Statement(limit int) string {
	parts := []string{c.Token()}
	rest := c.Rest()
	if len(rest) > limit {
		rest = rest[:limit]
	}
	parts = append(parts, rest...)
	return strings.Join(parts, " ")
}
