package scan

import (
	"errors"
	"regexp"
	"strings"
)

// DirectiveGrammar pulls the referenced name out of an import-like statement.
// The statement is everything from the marker keyword up to the first
// terminator token (or end of input when Terminators lists "\n" and the line
// ends first).
type DirectiveGrammar struct {
	// NamePattern must match the reassembled name.
	NamePattern *regexp.Regexp

	// Terminators end the statement; typically ";", "\n" or "%".
	Terminators []string

	// StopKeywords abort directive scanning for the whole file once seen.
	// C-family profiles stop at the first declaration keyword because
	// imports only appear above it.
	StopKeywords []string

	// TrimQuotes removes single/double quotes and url(...) wrapping from the
	// captured name.
	TrimQuotes bool
}

var errDirectiveMismatch = errors.New("directive grammar mismatch")

// ExtractDirective reconstructs the statement that follows a directive marker
// and extracts the referenced name. Dotted names split apart by token padding
// ("A . B") are reassembled. A name the pattern rejects is a mismatch, not a
// partial result.
func ExtractDirective(g *DirectiveGrammar, rest []string) (string, error) {
	parts := make([]string, 0, 8)

collect:
	for _, tok := range rest {
		for _, term := range g.Terminators {
			if tok == term {
				break collect
			}
		}
		if tok == "\n" {
			continue
		}
		if tok == `"` || tok == "'" {
			continue
		}
		parts = append(parts, tok)
	}

	if len(parts) == 0 {
		return "", errDirectiveMismatch
	}

	name := strings.Join(parts, " ")
	name = strings.ReplaceAll(name, " . ", ".")
	name = strings.TrimSpace(name)
	if g.TrimQuotes {
		name = trimQuoting(name)
	}

	if !g.NamePattern.MatchString(name) {
		return "", errDirectiveMismatch
	}
	return name, nil
}

func trimQuoting(name string) string {
	name = strings.Trim(name, `"'`)
	if strings.HasPrefix(name, "url(") && strings.HasSuffix(name, ")") {
		name = strings.Trim(name[4:len(name)-1], `"'`)
	}
	return name
}

// StopsScan reports whether the token is one of the grammar's stop keywords.
func (g *DirectiveGrammar) StopsScan(token string) bool {
	for _, kw := range g.StopKeywords {
		if token == kw {
			return true
		}
	}
	return false
}

// ScanNamespace finds the first namespace-style declaration and returns the
// dotted module name. Collection runs from the keyword to the stop token;
// running off the end of the input before the stop token leaves the module
// name unset (empty), a recoverable condition.
func ScanNamespace(tokens []string, keyword, stop string) string {
	for i, tok := range tokens {
		if tok != keyword {
			continue
		}

		parts := []string{}
		for j := i + 1; j < len(tokens); j++ {
			if tokens[j] == stop {
				return strings.Join(parts, ".")
			}
			if tokens[j] == "\n" || tokens[j] == "." {
				continue
			}
			parts = append(parts, tokens[j])
		}
		return ""
	}
	return ""
}

// FirstAfterMarker returns the token following the first occurrence of
// marker, skipping newlines. Inheritance attachment uses it to pick the sole
// parent name out of an entity's token span.
func FirstAfterMarker(span []string, marker string) (string, bool) {
	for i, tok := range span {
		if tok != marker {
			continue
		}
		j := skipNewlines(span, i+1)
		if j < len(span) {
			return span[j], true
		}
		return "", false
	}
	return "", false
}
