package richtext_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/insomnimus/slackfmt/ast"
	"github.com/insomnimus/slackfmt/richtext"
)

func TestParseStyledTextNesting(t *testing.T) {
	input := `{"type":"rich_text","elements":[
		{"type":"rich_text_section","elements":[
			{"type":"text","text":"hi","style":{"bold":true,"italic":true}}
		]}
	]}`
	doc, err := richtext.Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)

	para := doc.Blocks[0].(*ast.Paragraph)
	require.Len(t, para.Inlines, 1)

	// Outermost-first: Strikethrough ⊃ Italic ⊃ Bold ⊃ Code ⊃ Text.
	italic, ok := para.Inlines[0].(*ast.Italic)
	require.True(t, ok, "expected outer Italic wrapper, got %T", para.Inlines[0])
	bold, ok := italic.Inlines[0].(*ast.Bold)
	require.True(t, ok, "expected inner Bold wrapper, got %T", italic.Inlines[0])
	text, ok := bold.Inlines[0].(*ast.Text)
	require.True(t, ok)
	require.Equal(t, "hi", text.Text)
}

func TestParseRejectsUnknownElement(t *testing.T) {
	_, err := richtext.Parse([]byte(`{"type":"rich_text","elements":[{"type":"rich_text_bogus"}]}`))
	require.Error(t, err)
	var perr *richtext.ParseError
	require.ErrorAs(t, err, &perr)
}

// TestRoundTripMentionsAndStyles checks that decoding and re-encoding
// an RT document containing mentions and nested styles reproduces the
// same structure modulo JSON key order.
func TestRoundTripMentionsAndStyles(t *testing.T) {
	input := `{"type":"rich_text","elements":[
		{"type":"rich_text_section","elements":[
			{"type":"text","text":"hello "},
			{"type":"user","user_id":"U1"},
			{"type":"text","text":" and ","style":{"bold":true}}
		]}
	]}`

	doc, err := richtext.Parse([]byte(input))
	require.NoError(t, err)

	out, err := richtext.Render(doc)
	require.NoError(t, err)

	doc2, err := richtext.Parse(out)
	require.NoError(t, err)

	diff := cmp.Diff(doc, doc2)
	require.Empty(t, diff, "round-tripped AST differs:\n%s", diff)
}

func TestRenderProducesRichTextEnvelope(t *testing.T) {
	doc := &ast.Document{
		Blocks: []ast.Block{
			&ast.Paragraph{Inlines: []ast.Inline{&ast.Text{Text: "hi"}}},
		},
	}
	out, err := richtext.Render(doc)
	require.NoError(t, err)

	parsed := gjson.ParseBytes(out)
	require.Equal(t, "rich_text", parsed.Get("type").String())
	require.True(t, parsed.Get("elements").IsArray())
	require.Equal(t, "rich_text_section", parsed.Get("elements.0.type").String())
}

func TestRenderCodeBlockTrimsOneTrailingNewline(t *testing.T) {
	doc := &ast.Document{
		Blocks: []ast.Block{
			&ast.CodeBlock{Content: "line1\nline2\n"},
		},
	}
	out, err := richtext.Render(doc)
	require.NoError(t, err)
	parsed := gjson.ParseBytes(out)
	require.Equal(t, "line1\nline2", parsed.Get("elements.0.elements.0.text").String())
}

func TestRenderRejectsEmptyLinkURL(t *testing.T) {
	doc := &ast.Document{
		Blocks: []ast.Block{
			&ast.Paragraph{Inlines: []ast.Inline{&ast.Link{URL: ""}}},
		},
	}
	_, err := richtext.Render(doc)
	require.Error(t, err)
	var rerr *richtext.RenderError
	require.ErrorAs(t, err, &rerr)
}
