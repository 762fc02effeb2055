package profile

import (
	"testing"

	"codescope/internal/scan"
)

// runProfile pushes source through the same pipeline the analyzer uses and
// returns the stripped tokens plus entity candidates.
func runProfile(t *testing.T, p *Profile, source string) ([]string, []scan.Candidate) {
	t.Helper()
	if err := p.Validate(); err != nil {
		t.Fatalf("profile %s invalid: %v", p.Name, err)
	}

	if p.PrepareSource != nil {
		source = p.PrepareSource(source)
	}
	tokens := scan.Normalize(source, p.TokenMap)
	if p.FilterTokens != nil {
		tokens = p.FilterTokens(tokens)
	}
	stripped := scan.Tokenize(scan.StripComments(tokens, p.Comments))
	candidates := p.Extractor().Extract(tokens, &scan.Stats{})
	return stripped, candidates
}

func scanImports(p *Profile, tokens []string) []string {
	var imports []string
	cursor := scan.NewCursor(tokens)
scanning:
	for cursor.Next() {
		tok := cursor.Token()
		for i := range p.Directives {
			rule := &p.Directives[i]
			if rule.Grammar.StopsScan(tok) {
				break scanning
			}
			if tok != rule.Keyword {
				continue
			}
			if name, err := scan.ExtractDirective(&rule.Grammar, cursor.Rest()); err == nil {
				imports = append(imports, name)
			}
		}
	}
	return imports
}

func TestDefaultsValidate(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("built-in profiles must validate: %v", err)
	}
}

func TestValidateRejectsIncompleteProfile(t *testing.T) {
	p := &Profile{Name: "broken", Extensions: []string{".x"}}
	p.Entity.Keywords = []string{"class"}
	if err := p.Validate(); err == nil {
		t.Error("keywords without a name pattern must fail validation")
	}
}

func TestRestrictUnknownLanguage(t *testing.T) {
	if err := Defaults().Restrict([]string{"cobol"}); err == nil {
		t.Error("unknown language must error")
	}
}

func TestRestrictKeepsSelection(t *testing.T) {
	reg := Defaults()
	if err := reg.Restrict([]string{"csharp"}); err != nil {
		t.Fatalf("restrict: %v", err)
	}
	if len(reg.Profiles()) != 1 || reg.Profiles()[0].Name != "csharp" {
		t.Errorf("profiles = %v", reg.Profiles())
	}
	if _, ok := reg.ForPath("x.vb"); ok {
		t.Error("restricted registry must not claim .vb files")
	}
}

func TestForPathLongestSuffix(t *testing.T) {
	reg := Defaults()

	p, ok := reg.ForPath("templates/base.html.twig")
	if !ok || p.Name != "twig" {
		t.Fatalf("twig lookup failed: %v %v", p, ok)
	}
	p, ok = reg.ForPath("styles/main.scss")
	if !ok || p.Name != "scss" {
		t.Fatalf("scss lookup failed: %v %v", p, ok)
	}
	if _, ok := reg.ForPath("README.md"); ok {
		t.Error("unclaimed extension must miss")
	}
}

func TestCSharpProfile(t *testing.T) {
	source := `using System;
using Alpha.Beta;

namespace App.Core {
    // using Commented.Out;
    public class Service : BaseService {
        private int count;
    }
}
`
	p := CSharp()
	stripped, candidates := runProfile(t, p, source)

	if got := scan.ScanNamespace(stripped, "namespace", "{"); got != "App.Core" {
		t.Errorf("namespace = %q, want App.Core", got)
	}

	imports := scanImports(p, stripped)
	if len(imports) != 2 || imports[0] != "System" || imports[1] != "Alpha.Beta" {
		t.Errorf("imports = %v", imports)
	}

	if len(candidates) != 1 || candidates[0].Name != "Service" {
		t.Fatalf("candidates = %v", candidates)
	}
	parent, ok := scan.FirstAfterMarker(candidates[0].Tokens, ":")
	if !ok || parent != "BaseService" {
		t.Errorf("parent = %q, %v", parent, ok)
	}
}

func TestCSharpImportScanStopsAtFirstDeclaration(t *testing.T) {
	source := `using Before;
class C {
    void M() { using ( var x = y ) { } }
}
`
	p := CSharp()
	stripped, _ := runProfile(t, p, source)
	imports := scanImports(p, stripped)
	if len(imports) != 1 || imports[0] != "Before" {
		t.Errorf("imports = %v, want only Before", imports)
	}
}

func TestCSharpNamespaceScopedUsings(t *testing.T) {
	source := `using Top.Level;
namespace App.Core {
    using Nested.Dep;
    class Service { }
}
`
	p := CSharp()
	stripped, _ := runProfile(t, p, source)
	imports := scanImports(p, stripped)
	if len(imports) != 2 || imports[0] != "Top.Level" || imports[1] != "Nested.Dep" {
		t.Errorf("imports = %v, want [Top.Level Nested.Dep]", imports)
	}
}

func TestVBNetProfile(t *testing.T) {
	source := "\uFEFFImports System.Text\n" +
		"' a comment line\n" +
		"Namespace App.Core\n" +
		"#Region \"plumbing\"\n" +
		"Public Class Widget\n" +
		"Inherits Control\n" +
		"End Class\n" +
		"#End Region\n" +
		"End Namespace\n"

	p := VBNet()
	stripped, candidates := runProfile(t, p, source)

	if got := scan.ScanNamespace(stripped, "Namespace", "\n"); got != "App.Core" {
		t.Errorf("namespace = %q, want App.Core", got)
	}

	imports := scanImports(p, stripped)
	if len(imports) != 1 || imports[0] != "System.Text" {
		t.Errorf("imports = %v", imports)
	}

	if len(candidates) != 1 || candidates[0].Name != "Widget" {
		t.Fatalf("candidates = %v", candidates)
	}
	parent, ok := scan.FirstAfterMarker(candidates[0].Tokens, "Inherits")
	if !ok || parent != "Control" {
		t.Errorf("parent = %q, %v", parent, ok)
	}
}

func TestCSSProfile(t *testing.T) {
	source := `/* base sheet */
@import "reset.css";
@import url("theme/colors.css");

.button { color: red; }
`
	p := CSS()
	stripped, candidates := runProfile(t, p, source)

	imports := scanImports(p, stripped)
	if len(imports) != 2 || imports[0] != "reset.css" || imports[1] != "theme/colors.css" {
		t.Errorf("imports = %v", imports)
	}
	if len(candidates) != 0 {
		t.Errorf("css must not yield entities: %v", candidates)
	}
}

func TestSCSSProfile(t *testing.T) {
	source := `// helpers
@import "variables";

@mixin button($color) {
    color: $color;
    @extend %base;
}
`
	p := SCSS()
	stripped, candidates := runProfile(t, p, source)

	imports := scanImports(p, stripped)
	if len(imports) != 1 || imports[0] != "variables" {
		t.Errorf("imports = %v", imports)
	}

	if len(candidates) != 1 || candidates[0].Name != "button" {
		t.Fatalf("candidates = %v", candidates)
	}
	parent, ok := scan.FirstAfterMarker(candidates[0].Tokens, "@extend")
	if !ok || parent != "%base" {
		t.Errorf("parent = %q, %v", parent, ok)
	}
}

func TestTwigProfile(t *testing.T) {
	source := `{% extends 'layouts/app.html.twig' %}
{% block content %}
  {% include 'partials/nav.html.twig' %}
  {% if user %}
    hi
  {% endif %}
{% endblock %}
`
	p := Twig()
	stripped, candidates := runProfile(t, p, source)

	imports := scanImports(p, stripped)
	if len(imports) != 2 {
		t.Fatalf("imports = %v", imports)
	}
	if imports[0] != "layouts/app.html.twig" || imports[1] != "partials/nav.html.twig" {
		t.Errorf("imports = %v", imports)
	}

	if len(candidates) != 1 || candidates[0].Name != "content" {
		t.Fatalf("candidates = %v", candidates)
	}
}
