package profile

import (
	"regexp"

	"codescope/internal/scan"
)

var twigName = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Twig: template blocks are keyword-paired scopes with fused closers
// ("block ... endblock"); include statements are the import-like directives.
// Block names repeat across templates, so unique names are path-scoped.
func Twig() *Profile {
	return &Profile{
		Name:       "twig",
		Extensions: []string{".twig", ".html.twig"},
		TokenMap: []scan.Mapping{
			{From: "{", To: " { "},
			{From: "}", To: " } "},
			{From: "(", To: " ( "},
			{From: ")", To: " ) "},
			{From: ",", To: " , "},
			{From: "'", To: " ' "},
			{From: `"`, To: ` " `},
		},
		// {# ... #} delimiters are split apart by the brace padding above,
		// so the line-prefix heuristic cannot see them; comments stay in.
		Comments: scan.CommentMarkers{},
		Entity: EntityRules{
			Keywords: []string{"block"},
			Grammar: scan.HeaderGrammar{
				NamePattern: twigName,
			},
			Scope: scan.ScopeRules{
				Style: scan.ScopeKeywords,
				FusedClosers: map[string]string{
					"block": "endblock",
					"if":    "endif",
					"for":   "endfor",
				},
			},
		},
		Directives: []DirectiveRule{
			{
				Keyword: "include",
				Grammar: scan.DirectiveGrammar{
					NamePattern: twigName,
					Terminators: []string{"%", "\n"},
					TrimQuotes:  true,
				},
			},
			{
				Keyword: "extends",
				Grammar: scan.DirectiveGrammar{
					NamePattern: twigName,
					Terminators: []string{"%", "\n"},
					TrimQuotes:  true,
				},
			},
		},
		UniqueNames: UniquePathScoped,
	}
}
