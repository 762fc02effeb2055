package profile

import (
	"regexp"

	"codescope/internal/scan"
)

var (
	stylesheetName  = regexp.MustCompile(`^[A-Za-z0-9_./-]+$`)
	stylesheetIdent = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// CSS: file-level @import dependencies only. Plain selectors carry no
// keyword the engine could anchor on, so no entities are extracted.
func CSS() *Profile {
	return &Profile{
		Name:       "css",
		Extensions: []string{".css"},
		TokenMap: []scan.Mapping{
			{From: "{", To: " { "},
			{From: "}", To: " } "},
			{From: ":", To: " : "},
			{From: ";", To: " ; "},
			{From: "/*", To: " /* "},
			{From: "*/", To: " */ "},
			{From: ",", To: " , "},
		},
		// A one-line /* ... */ would read as an unterminated block under the
		// line-prefix heuristic and swallow the rest of the file, so block
		// comments stay in the token stream.
		Comments: scan.CommentMarkers{},
		Directives: []DirectiveRule{
			{
				Keyword: "@import",
				Grammar: scan.DirectiveGrammar{
					NamePattern: stylesheetName,
					Terminators: []string{";", "\n"},
					TrimQuotes:  true,
				},
			},
		},
	}
}

// SCSS adds mixin entities and @extend inheritance on top of the CSS rules.
func SCSS() *Profile {
	p := CSS()
	p.Name = "scss"
	p.Extensions = []string{".scss"}
	p.TokenMap = []scan.Mapping{
		{From: "{", To: " { "},
		{From: "}", To: " } "},
		{From: "(", To: " ( "},
		{From: ")", To: " ) "},
		{From: ":", To: " : "},
		{From: ";", To: " ; "},
		{From: "/*", To: " /* "},
		{From: "*/", To: " */ "},
		{From: ",", To: " , "},
		{From: `"`, To: ` " `},
	}
	p.Comments = scan.CommentMarkers{
		Line: "//",
	}
	p.Entity = EntityRules{
		Keywords: []string{"@mixin"},
		Grammar: scan.HeaderGrammar{
			NamePattern: stylesheetIdent,
			Terminator:  "{",
		},
		Scope: scan.ScopeRules{
			Style: scan.ScopeBraces,
			Open:  "{",
			Close: "}",
		},
	}
	p.Directives = append(p.Directives, DirectiveRule{
		Keyword: "@include",
		Grammar: scan.DirectiveGrammar{
			NamePattern: stylesheetName,
			Terminators: []string{";", "(", "{", "\n"},
			TrimQuotes:  true,
		},
	})
	p.Inheritance = "@extend"
	return p
}
