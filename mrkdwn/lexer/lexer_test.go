package lexer

import (
	"testing"

	"github.com/insomnimus/slackfmt/mrkdwn/token"
)

func TestNext(t *testing.T) {
	tk := func(k token.Kind, s string) token.Token {
		return token.Token{Kind: k, Text: s}
	}

	doc := "hi *bold* and _it_ and ~s~ and `code`"
	tests := []token.Token{
		tk(token.Text, "hi "),
		tk(token.BoldMarker, "*"),
		tk(token.Text, "bold"),
		tk(token.BoldMarker, "*"),
		tk(token.Text, " and "),
		tk(token.ItalicMarker, "_"),
		tk(token.Text, "it"),
		tk(token.ItalicMarker, "_"),
		tk(token.Text, " and "),
		tk(token.StrikeMarker, "~"),
		tk(token.Text, "s"),
		tk(token.StrikeMarker, "~"),
		tk(token.Text, " and "),
		token.Token{Kind: token.InlineCode, Text: "code"},
		tk(token.EOF, ""),
	}

	l := New(doc)
	for i, want := range tests {
		got := l.Next()
		if got.Kind != want.Kind {
			t.Fatalf("token %d: kind mismatch: want %s, got %s (%q)", i, want.Kind, got.Kind, got.Text)
		}
		if got.Text != want.Text {
			t.Errorf("token %d: text mismatch: want %q, got %q", i, want.Text, got.Text)
		}
	}
}

// TestNextBoldClosesAtEndOfInput exercises the exact bug this lexer used
// to have: a closing marker glued to the preceding word, with nothing
// ahead of it, must still lex as a marker rather than literal text.
func TestNextBoldClosesAtEndOfInput(t *testing.T) {
	l := New("*bold*")
	kinds := []token.Kind{token.BoldMarker, token.Text, token.BoldMarker, token.EOF}
	for i, want := range kinds {
		got := l.Next()
		if got.Kind != want {
			t.Fatalf("token %d: want %s, got %s (%q)", i, want, got.Kind, got.Text)
		}
	}
}

// TestNextSnakeCaseStaysLiteral checks that an underscore glued to
// alphanumerics on both sides (mid-word) never lexes as ItalicMarker;
// the lexer may still split the run across several Text tokens, but
// none of them may be a marker kind.
func TestNextSnakeCaseStaysLiteral(t *testing.T) {
	l := New("foo_bar_baz")
	var got string
	for {
		tok := l.Next()
		if tok.Kind == token.EOF {
			break
		}
		if tok.Kind != token.Text {
			t.Fatalf("want only Text tokens, got %s (%q)", tok.Kind, tok.Text)
		}
		got += tok.Text
	}
	if got != "foo_bar_baz" {
		t.Errorf("want literal %q, got %q", "foo_bar_baz", got)
	}
}

func TestNextFenceOpen(t *testing.T) {
	l := New("```\nx\n```")
	if tok := l.Next(); tok.Kind != token.FenceOpen {
		t.Fatalf("want FenceOpen, got %s", tok.Kind)
	}
}
