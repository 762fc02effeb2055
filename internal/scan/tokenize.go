package scan

import (
	"regexp"
	"strings"
)

// Mapping rewrites one literal substring during normalization. Mappings are
// applied in slice order, so profiles must list overlapping patterns
// longest-first.
type Mapping struct {
	From string
	To   string
}

// CommentMarkers holds the comment syntax of a language. Empty markers
// disable the corresponding check.
type CommentMarkers struct {
	Line       string
	BlockStart string
	BlockStop  string
}

var tokenPattern = regexp.MustCompile(`\S+|\n`)

// Tokenize splits source on whitespace. Newlines survive as their own token
// because comment stripping and several directive grammars need line
// boundaries.
func Tokenize(source string) []string {
	return tokenPattern.FindAllString(source, -1)
}

// Normalize applies the profile's token map as literal replacements and then
// tokenizes the result. Token maps pad punctuation with spaces so a later
// split yields each mark as an atomic token. Running Normalize on already
// normalized text is a no-op.
func Normalize(source string, mappings []Mapping) []string {
	for _, m := range mappings {
		source = strings.ReplaceAll(source, m.From, m.To)
	}
	return Tokenize(source)
}

// StripComments drops comment lines from a token stream and returns the
// surviving text. A line whose trimmed content starts with the line marker is
// dropped; a line starting with the block start marker opens a comment region
// that swallows every line up to and including the one starting with the
// block stop marker. Markers occurring mid-line are not detected; this is a
// line-prefix heuristic.
func StripComments(tokens []string, markers CommentMarkers) string {
	source := strings.Join(tokens, " ")
	if markers.Line == "" && markers.BlockStart == "" {
		return source
	}

	lines := strings.Split(source, "\n")
	kept := make([]string, 0, len(lines))
	inBlock := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case inBlock:
			if markers.BlockStop != "" && strings.HasPrefix(trimmed, markers.BlockStop) {
				inBlock = false
			}
		case markers.BlockStart != "" && strings.HasPrefix(trimmed, markers.BlockStart):
			inBlock = true
		case markers.Line != "" && strings.HasPrefix(trimmed, markers.Line):
		default:
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, "\n")
}
