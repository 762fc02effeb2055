package profile

import (
	"regexp"

	"codescope/internal/scan"
)

var csharpName = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

// CSharp: brace-scoped entities, file-level using directives, namespace
// declarations. Entity names already carry qualification in source, so
// unique names are used verbatim.
func CSharp() *Profile {
	return &Profile{
		Name:       "csharp",
		Extensions: []string{".cs"},
		TokenMap: []scan.Mapping{
			{From: ":", To: " : "},
			{From: ";", To: " ; "},
			{From: "{", To: " { "},
			{From: "}", To: " } "},
			{From: "(", To: " ( "},
			{From: ")", To: " ) "},
			{From: "[", To: " [ "},
			{From: "]", To: " ] "},
			{From: "?", To: " ? "},
			{From: "!", To: " ! "},
			{From: ",", To: " , "},
			{From: "<", To: " < "},
			{From: ">", To: " > "},
			{From: `"`, To: ` " `},
			{From: ".", To: " . "},
		},
		Comments: scan.CommentMarkers{
			Line:       "//",
			BlockStart: "/*",
			BlockStop:  "*/",
		},
		Entity: EntityRules{
			Keywords: []string{"class", "struct", "interface", "enum"},
			Grammar: scan.HeaderGrammar{
				NamePattern: csharpName,
				Terminator:  "{",
			},
			Scope: scan.ScopeRules{
				Style: scan.ScopeBraces,
				Open:  "{",
				Close: "}",
			},
			// Modifiers the header grammar occasionally captures as names.
			Ignore: []string{
				"class", "struct", "interface", "enum", "namespace", "using",
				"public", "private", "protected", "internal", "static",
				"readonly", "virtual", "override", "abstract", "new", "this",
				"base", "event", "delegate", "operator", "implicit", "explicit",
			},
		},
		Directives: []DirectiveRule{
			{
				Keyword: "using",
				Grammar: scan.DirectiveGrammar{
					NamePattern:  csharpName,
					Terminators:  []string{";"},
					// Namespace blocks can hold usings of their own, so
					// only type declarations stop the scan.
					StopKeywords: []string{"class", "struct", "interface", "enum"},
				},
			},
		},
		Namespace:   &NamespaceRule{Keyword: "namespace", Stop: "{"},
		Inheritance: ":",
		UniqueNames: UniqueVerbatim,
	}
}
