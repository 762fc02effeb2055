package scan

import "log/slog"

// ScopeStyle selects how a language delimits declaration bodies.
type ScopeStyle int

const (
	// ScopeBraces pairs an open token with a close token ("{" / "}").
	ScopeBraces ScopeStyle = iota
	// ScopeKeywords pairs scope-introducing keywords with a closing keyword
	// ("Class ... End Class") or with fused closers ("block ... endblock").
	ScopeKeywords
)

// ScopeRules configures depth tracking for one language.
type ScopeRules struct {
	Style ScopeStyle

	// Brace style.
	Open  string
	Close string

	// Keyword style. Openers increment depth. A Closer token followed by a
	// token from CloserKinds decrements; alternatively FusedClosers maps an
	// opener onto its single-token closer.
	Openers      []string
	Closer       string
	CloserKinds  []string
	FusedClosers map[string]string
}

// Extractor isolates the token span of each named declaration in a file.
// Everything language-specific arrives as configuration; the matching loop is
// shared by all profiles.
type Extractor struct {
	Keywords []string
	Grammar  HeaderGrammar
	Rules    ScopeRules
	Comments CommentMarkers
	Ignore   []string
}

// Candidate is one provisional entity record: the captured header name, an
// optional immediately-inherited name, and a copy of the body's token span
// (header tokens included, so span-level scans can still see the inheritance
// clause).
type Candidate struct {
	Name      string
	Inherited string
	Tokens    []string
}

// Extract runs the scope state machine over a file's token sequence and
// returns the candidates in source order. Duplicate names yield independent
// candidates; uniqueness is the registry's concern. Header mismatches and
// unbalanced scopes are counted as misses and never abort the scan.
func (e *Extractor) Extract(tokens []string, stats *Stats) []Candidate {
	prepared := Tokenize(StripComments(tokens, e.Comments))

	var found []Candidate
	cursor := NewCursor(prepared)
	for cursor.Next() {
		tok := cursor.Token()
		if !e.isEntityKeyword(tok) {
			continue
		}
		if e.trailsScopeCloser(cursor) {
			continue
		}

		header, err := e.Grammar.Match(tok, cursor.Rest())
		if err != nil {
			stats.Miss()
			slog.Debug("header grammar miss",
				"keyword", tok,
				"lookahead", cursor.Statement(MaxDebugTokens))
			continue
		}
		stats.Hit()

		span, ok := e.captureSpan(prepared[cursor.Index():])
		if !ok {
			stats.Miss()
			slog.Debug("unbalanced scope", "entity", header.Name)
			continue
		}

		if e.ignored(header.Name) {
			continue
		}
		found = append(found, Candidate{
			Name:      header.Name,
			Inherited: header.Inherited,
			Tokens:    span,
		})
	}

	return found
}

// captureSpan copies the tokens from the entity keyword through the matching
// scope close. The token count of the remaining input is the natural bound:
// when the input runs out before depth returns to zero the span is rejected.
func (e *Extractor) captureSpan(tokens []string) ([]string, bool) {
	switch e.Rules.Style {
	case ScopeKeywords:
		return e.captureKeywordSpan(tokens)
	default:
		return e.captureBraceSpan(tokens)
	}
}

func (e *Extractor) captureBraceSpan(tokens []string) ([]string, bool) {
	depth := 0
	opened := false
	span := make([]string, 0, len(tokens))

	for _, tok := range tokens {
		span = append(span, tok)
		switch tok {
		case e.Rules.Open:
			depth++
			opened = true
		case e.Rules.Close:
			depth--
		}
		if opened && depth == 0 {
			return span, true
		}
		if depth < 0 {
			return nil, false
		}
	}
	return nil, false
}

func (e *Extractor) captureKeywordSpan(tokens []string) ([]string, bool) {
	depth := 0
	span := make([]string, 0, len(tokens))

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if closer, ok := e.Rules.FusedClosers[tok]; ok && closer != "" {
			// Opener with a fused closer, e.g. "block".
			depth++
			span = append(span, tok)
			continue
		}
		if e.isFusedCloser(tok) {
			depth--
			span = append(span, tok)
			if depth == 0 {
				return span, true
			}
			if depth < 0 {
				return nil, false
			}
			continue
		}

		if tok == e.Rules.Closer && e.closesKind(nextToken(tokens, i)) {
			depth--
			span = append(span, tok, nextToken(tokens, i))
			if depth == 0 {
				return span, true
			}
			if depth < 0 {
				return nil, false
			}
			i++
			continue
		}

		if e.isOpener(tok) {
			depth++
		}
		span = append(span, tok)
	}
	return nil, false
}

func nextToken(tokens []string, i int) string {
	j := skipNewlines(tokens, i+1)
	if j < len(tokens) {
		return tokens[j]
	}
	return ""
}

func (e *Extractor) isEntityKeyword(tok string) bool {
	for _, kw := range e.Keywords {
		if tok == kw {
			return true
		}
	}
	return false
}

func (e *Extractor) isOpener(tok string) bool {
	for _, kw := range e.Rules.Openers {
		if tok == kw {
			return true
		}
	}
	return false
}

func (e *Extractor) isFusedCloser(tok string) bool {
	for _, closer := range e.Rules.FusedClosers {
		if tok == closer {
			return true
		}
	}
	return false
}

func (e *Extractor) closesKind(tok string) bool {
	kinds := e.Rules.CloserKinds
	if len(kinds) == 0 {
		kinds = e.Rules.Openers
	}
	for _, kind := range kinds {
		if tok == kind {
			return true
		}
	}
	return false
}

func (e *Extractor) closerToken() string {
	if e.Rules.Style == ScopeKeywords {
		return e.Rules.Closer
	}
	return e.Rules.Close
}

func (e *Extractor) ignored(name string) bool {
	for _, kw := range e.Ignore {
		if name == kw {
			return true
		}
	}
	return false
}

// trailsScopeCloser reports whether the keyword under the cursor directly
// follows a scope closer, the classic false positive for keywords quoted in
// text after a closing brace. A closer that shut an immediately-empty body
// is exempt, so a declaration following an empty one still gets scanned.
func (e *Extractor) trailsScopeCloser(cursor *Cursor) bool {
	closer := e.closerToken()
	if closer == "" || cursor.Prev() != closer {
		return false
	}
	if e.Rules.Style == ScopeBraces && cursor.PrevN(2) == e.Rules.Open {
		return false
	}
	return true
}
