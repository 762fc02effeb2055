package scan

import (
	"reflect"
	"testing"
)

func TestTokenizeKeepsNewlines(t *testing.T) {
	tokens := Tokenize("class Foo\n{\n}\n")
	want := []string{"class", "Foo", "\n", "{", "\n", "}", "\n"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("got %v, want %v", tokens, want)
	}
}

func TestNormalizePadsPunctuation(t *testing.T) {
	mappings := []Mapping{
		{From: ":", To: " : "},
		{From: "{", To: " { "},
		{From: "}", To: " } "},
		{From: ";", To: " ; "},
	}

	tokens := Normalize("class Foo:Bar{int x;}", mappings)
	want := []string{"class", "Foo", ":", "Bar", "{", "int", "x", ";", "}"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("got %v, want %v", tokens, want)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	mappings := []Mapping{
		{From: "{", To: " { "},
		{From: "}", To: " } "},
	}

	once := Normalize("a{b}", mappings)
	twice := Normalize(joinTokens(once), mappings)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("normalization not idempotent: %v vs %v", once, twice)
	}
}

func joinTokens(tokens []string) string {
	out := ""
	for i, tok := range tokens {
		if i > 0 {
			out += " "
		}
		out += tok
	}
	return out
}

func TestStripCommentsLineMarker(t *testing.T) {
	markers := CommentMarkers{Line: "//", BlockStart: "/*", BlockStop: "*/"}
	tokens := Tokenize("// drop me\nclass Foo\n")

	got := Tokenize(StripComments(tokens, markers))
	want := []string{"class", "Foo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestStripCommentsBlock(t *testing.T) {
	markers := CommentMarkers{Line: "//", BlockStart: "/*", BlockStop: "*/"}
	tokens := Tokenize("/* first\nsecond\n*/ tail\nclass Foo\n")

	got := Tokenize(StripComments(tokens, markers))
	want := []string{"class", "Foo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestStripCommentsSameStartStopMarker(t *testing.T) {
	markers := CommentMarkers{Line: "'", BlockStart: "''", BlockStop: "''"}
	tokens := Tokenize("'' open\nhidden\n'' close\nClass Foo\n")

	got := Tokenize(StripComments(tokens, markers))
	want := []string{"Class", "Foo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestStripCommentsMidLineMarkerSurvives(t *testing.T) {
	markers := CommentMarkers{Line: "//"}
	tokens := Tokenize("class Foo // trailing\n")

	got := StripComments(tokens, markers)
	if got == "" {
		t.Error("mid-line marker must not drop the whole line")
	}
}

func TestStripCommentsNoMarkers(t *testing.T) {
	tokens := Tokenize("{# twig comment #}\nblock body\n")
	got := Tokenize(StripComments(tokens, CommentMarkers{}))
	if len(got) != len(tokens) {
		t.Errorf("empty markers must keep everything: got %v", got)
	}
}
