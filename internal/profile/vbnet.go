package profile

import (
	"regexp"
	"strings"

	"codescope/internal/scan"
)

var vbName = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

var vbScopeKinds = []string{
	"Namespace", "Class", "Structure", "Interface", "Enum",
	"Function", "Sub", "If",
}

// VBNet: keyword-paired scoping ("Class ... End Class"), file-level Imports,
// Inherits inheritance. Bare names collide across files, so unique names are
// path-scoped.
func VBNet() *Profile {
	return &Profile{
		Name:       "vbnet",
		Extensions: []string{".vb"},
		TokenMap: []scan.Mapping{
			{From: ":", To: " : "},
			{From: ";", To: " ; "},
			{From: "(", To: " ( "},
			{From: ")", To: " ) "},
			{From: "{", To: " { "},
			{From: "}", To: " } "},
			{From: "[", To: " [ "},
			{From: "]", To: " ] "},
			{From: "?", To: " ? "},
			{From: "!", To: " ! "},
			{From: ",", To: " , "},
			{From: "<", To: " < "},
			{From: ">", To: " > "},
			{From: `"`, To: ` " `},
		},
		Comments: scan.CommentMarkers{
			Line:       "'",
			BlockStart: "''",
			BlockStop:  "''",
		},
		Entity: EntityRules{
			Keywords: []string{"Class", "Structure", "Interface", "Enum"},
			Grammar: scan.HeaderGrammar{
				NamePattern: vbName,
			},
			Scope: scan.ScopeRules{
				Style:       scan.ScopeKeywords,
				Openers:     vbScopeKinds,
				Closer:      "End",
				CloserKinds: vbScopeKinds,
			},
			Ignore: []string{
				"Class", "Structure", "Interface", "Enum", "Namespace",
				"Imports", "Public", "Private", "Protected", "Friend",
				"Static", "ReadOnly", "Overridable", "MustOverride",
				"NotOverridable", "Shadows", "New", "Me", "MyBase", "Event",
				"Delegate", "Operator", "Implicit", "Explicit",
			},
		},
		Directives: []DirectiveRule{
			{
				Keyword: "Imports",
				Grammar: scan.DirectiveGrammar{
					NamePattern: vbName,
					Terminators: []string{"\n"},
				},
			},
		},
		Namespace:     &NamespaceRule{Keyword: "Namespace", Stop: "\n"},
		Inheritance:   "Inherits",
		UniqueNames:   UniquePathScoped,
		PrepareSource: stripBOM,
		FilterTokens:  stripRegions,
	}
}

func stripBOM(source string) string {
	return strings.TrimPrefix(source, "\uFEFF")
}

// stripRegions removes #Region "name" and #End Region lines; they nest
// freely and would throw off keyword depth tracking.
func stripRegions(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok == "#Region" {
			i = skipToLineEnd(tokens, i)
			continue
		}
		if tok == "#End" && i+1 < len(tokens) && tokens[i+1] == "Region" {
			i = skipToLineEnd(tokens, i)
			continue
		}
		out = append(out, tok)
	}
	return out
}

// skipToLineEnd returns the index just before the line's newline token, so
// the newline itself survives the filter and line structure stays intact.
func skipToLineEnd(tokens []string, i int) int {
	for ; i < len(tokens); i++ {
		if tokens[i] == "\n" {
			return i - 1
		}
	}
	return i - 1
}
