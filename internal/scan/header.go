package scan

import (
	"errors"
	"regexp"
)

// HeaderGrammar describes how a declaration header looks right after an
// entity keyword. It stands in for what the per-language parsers would
// otherwise hand-roll: a name token, an optional inline inheritance clause,
// and an optional terminator that must show up before the statement can be
// accepted.
type HeaderGrammar struct {
	// NamePattern must match the whole name token.
	NamePattern *regexp.Regexp

	// InheritKeyword, when set, allows "<keyword> <name>" directly after the
	// entity name and captures the inherited name.
	InheritKeyword string

	// Terminator, when set, must appear among the following tokens (bounded
	// by the remaining input) for the header to count as matched. Brace
	// languages use "{" here.
	Terminator string
}

// Header is the result of a successful header match.
type Header struct {
	Keyword   string
	Name      string
	Inherited string
}

var errHeaderMismatch = errors.New("header grammar mismatch")

// Match applies the grammar to the tokens following an entity keyword.
// Newline tokens are transparent, matching the whitespace-insensitive
// behavior of statement reconstruction.
func (g *HeaderGrammar) Match(keyword string, rest []string) (Header, error) {
	i := skipNewlines(rest, 0)
	if i >= len(rest) || !g.NamePattern.MatchString(rest[i]) {
		return Header{}, errHeaderMismatch
	}

	h := Header{Keyword: keyword, Name: rest[i]}
	i = skipNewlines(rest, i+1)

	if g.InheritKeyword != "" && i < len(rest) && rest[i] == g.InheritKeyword {
		i = skipNewlines(rest, i+1)
		if i < len(rest) && g.NamePattern.MatchString(rest[i]) {
			h.Inherited = rest[i]
			i++
		}
	}

	if g.Terminator != "" {
		found := false
		for ; i < len(rest); i++ {
			if rest[i] == g.Terminator {
				found = true
				break
			}
		}
		if !found {
			return Header{}, errHeaderMismatch
		}
	}

	return h, nil
}

func skipNewlines(tokens []string, i int) int {
	for i < len(tokens) && tokens[i] == "\n" {
		i++
	}
	return i
}
