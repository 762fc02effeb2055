package scan

import (
	"regexp"
	"testing"
)

var dottedPattern = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)
var pathPattern = regexp.MustCompile(`^[A-Za-z0-9_./-]+$`)

func TestExtractDirectiveDottedName(t *testing.T) {
	g := &DirectiveGrammar{
		NamePattern: dottedPattern,
		Terminators: []string{";"},
	}

	// Padded token maps split "A.B" into "A . B"; the full name must come
	// back out.
	name, err := ExtractDirective(g, []string{"A", ".", "B", ";", "class", "C"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "A.B" {
		t.Errorf("name = %q, want A.B", name)
	}
}

func TestExtractDirectiveSimpleName(t *testing.T) {
	g := &DirectiveGrammar{NamePattern: dottedPattern, Terminators: []string{"\n"}}
	name, err := ExtractDirective(g, []string{"System.Text", "\n", "Class", "Foo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "System.Text" {
		t.Errorf("name = %q, want System.Text", name)
	}
}

func TestExtractDirectiveRejectsGarbage(t *testing.T) {
	g := &DirectiveGrammar{NamePattern: dottedPattern, Terminators: []string{";"}}
	if _, err := ExtractDirective(g, []string{"(", "x", ")", ";"}); err == nil {
		t.Error("expected mismatch for non-name tokens")
	}
}

func TestExtractDirectiveEmptyStatement(t *testing.T) {
	g := &DirectiveGrammar{NamePattern: dottedPattern, Terminators: []string{";"}}
	if _, err := ExtractDirective(g, []string{";"}); err == nil {
		t.Error("expected mismatch for empty statement")
	}
}

func TestExtractDirectiveQuoteTrimming(t *testing.T) {
	g := &DirectiveGrammar{
		NamePattern: pathPattern,
		Terminators: []string{";", "\n"},
		TrimQuotes:  true,
	}

	cases := map[string]string{
		`"partials/nav.css"`:    "partials/nav.css",
		`'partials/nav.css'`:    "partials/nav.css",
		`url("theme/base.css")`: "theme/base.css",
	}
	for input, want := range cases {
		name, err := ExtractDirective(g, []string{input, ";"})
		if err != nil {
			t.Errorf("%q: unexpected error %v", input, err)
			continue
		}
		if name != want {
			t.Errorf("%q: name = %q, want %q", input, name, want)
		}
	}
}

func TestExtractDirectiveSkipsQuoteTokens(t *testing.T) {
	g := &DirectiveGrammar{
		NamePattern: pathPattern,
		Terminators: []string{"%", "\n"},
		TrimQuotes:  true,
	}

	name, err := ExtractDirective(g, []string{"'", "partials/nav.html.twig", "'", "%", "}"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "partials/nav.html.twig" {
		t.Errorf("name = %q", name)
	}
}

func TestStopsScan(t *testing.T) {
	g := &DirectiveGrammar{
		NamePattern:  dottedPattern,
		Terminators:  []string{";"},
		StopKeywords: []string{"namespace", "class"},
	}
	if !g.StopsScan("class") {
		t.Error("class must stop the scan")
	}
	if g.StopsScan("using") {
		t.Error("using must not stop the scan")
	}
}

func TestScanNamespaceDotted(t *testing.T) {
	tokens := Tokenize("namespace Alpha . Beta { class C { } }")
	if got := ScanNamespace(tokens, "namespace", "{"); got != "Alpha.Beta" {
		t.Errorf("namespace = %q, want Alpha.Beta", got)
	}
}

func TestScanNamespaceFirstWins(t *testing.T) {
	tokens := Tokenize("namespace First { } namespace Second { }")
	if got := ScanNamespace(tokens, "namespace", "{"); got != "First" {
		t.Errorf("namespace = %q, want First", got)
	}
}

func TestScanNamespaceRunOff(t *testing.T) {
	tokens := Tokenize("namespace Dangling")
	if got := ScanNamespace(tokens, "namespace", "{"); got != "" {
		t.Errorf("namespace = %q, want empty on run-off", got)
	}
}

func TestScanNamespaceNewlineStop(t *testing.T) {
	tokens := Tokenize("Namespace Alpha . Beta\nClass C\nEnd Class\n")
	if got := ScanNamespace(tokens, "Namespace", "\n"); got != "Alpha.Beta" {
		t.Errorf("namespace = %q, want Alpha.Beta", got)
	}
}

func TestFirstAfterMarker(t *testing.T) {
	span := Tokenize("Class Foo\nInherits Bar\nEnd Class")
	parent, ok := FirstAfterMarker(span, "Inherits")
	if !ok || parent != "Bar" {
		t.Errorf("parent = %q, %v", parent, ok)
	}

	if _, ok := FirstAfterMarker(span, "@extend"); ok {
		t.Error("missing marker must report not found")
	}
}

func TestFirstAfterMarkerAtEnd(t *testing.T) {
	if _, ok := FirstAfterMarker([]string{"Class", "Foo", "Inherits"}, "Inherits"); ok {
		t.Error("marker at end of span must report not found")
	}
}
