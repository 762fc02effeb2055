// Package profile bundles the per-language configuration consumed by the
// scan engine: token maps, keyword sets, header and directive grammars,
// comment markers and naming rules. A profile carries no matching logic of
// its own.
package profile

import (
	"fmt"

	"codescope/internal/scan"
)

// UniqueNameScheme selects how entity unique names are formed.
type UniqueNameScheme int

const (
	// UniqueVerbatim uses the captured entity name directly; suited to
	// languages whose names already embed full qualification.
	UniqueVerbatim UniqueNameScheme = iota
	// UniquePathScoped prefixes the owning file path, for languages where
	// bare names collide across files.
	UniquePathScoped
)

// DirectiveRule pairs a marker keyword with the grammar that parses the
// statement behind it.
type DirectiveRule struct {
	Keyword string
	Grammar scan.DirectiveGrammar
}

// NamespaceRule locates the module/package declaration of a file.
type NamespaceRule struct {
	Keyword string
	Stop    string
}

// EntityRules configures declaration matching for one language.
type EntityRules struct {
	Keywords []string
	Grammar  scan.HeaderGrammar
	Scope    scan.ScopeRules
	Ignore   []string
}

// Profile is the complete engine input for one language.
type Profile struct {
	Name       string
	Extensions []string

	TokenMap []scan.Mapping
	Comments scan.CommentMarkers

	Entity      EntityRules
	Directives  []DirectiveRule
	Namespace   *NamespaceRule
	Inheritance string // marker token scanned inside the entity span; "" disables

	UniqueNames UniqueNameScheme

	// PrepareSource runs before tokenization (e.g. BOM removal).
	PrepareSource func(string) string
	// FilterTokens runs after tokenization (e.g. region directive removal).
	FilterTokens func([]string) []string
}

// Validate reports missing configuration. A broken profile is fatal at
// analysis start, never a per-file condition.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile has no name")
	}
	if len(p.Extensions) == 0 {
		return fmt.Errorf("profile %s: no file extensions", p.Name)
	}
	if len(p.Entity.Keywords) > 0 {
		if p.Entity.Grammar.NamePattern == nil {
			return fmt.Errorf("profile %s: entity keywords without a name pattern", p.Name)
		}
		switch p.Entity.Scope.Style {
		case scan.ScopeBraces:
			if p.Entity.Scope.Open == "" || p.Entity.Scope.Close == "" {
				return fmt.Errorf("profile %s: brace scoping without open/close tokens", p.Name)
			}
		case scan.ScopeKeywords:
			if p.Entity.Scope.Closer == "" && len(p.Entity.Scope.FusedClosers) == 0 {
				return fmt.Errorf("profile %s: keyword scoping without closers", p.Name)
			}
		}
	}
	for _, d := range p.Directives {
		if d.Keyword == "" || d.Grammar.NamePattern == nil {
			return fmt.Errorf("profile %s: incomplete directive rule", p.Name)
		}
	}
	return nil
}

// Extractor assembles the engine extractor for this profile.
func (p *Profile) Extractor() *scan.Extractor {
	return &scan.Extractor{
		Keywords: p.Entity.Keywords,
		Grammar:  p.Entity.Grammar,
		Rules:    p.Entity.Scope,
		Comments: p.Comments,
		Ignore:   p.Entity.Ignore,
	}
}
