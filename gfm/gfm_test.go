package gfm_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/insomnimus/slackfmt/ast"
	"github.com/insomnimus/slackfmt/gfm"
)

func TestParseBasicBlocks(t *testing.T) {
	input := "# Hello\n\nSome **bold** text.\n\n- item one\n- item two\n\n> quoted\n"
	doc, err := gfm.Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 4)

	h, ok := doc.Blocks[0].(*ast.Heading)
	require.True(t, ok, "expected Heading, got %T", doc.Blocks[0])
	require.Equal(t, 1, h.Level)

	para, ok := doc.Blocks[1].(*ast.Paragraph)
	require.True(t, ok, "expected Paragraph, got %T", doc.Blocks[1])
	var sawBold bool
	for _, in := range para.Inlines {
		if _, ok := in.(*ast.Bold); ok {
			sawBold = true
		}
	}
	require.True(t, sawBold, "expected a Bold inline in the paragraph")

	list, ok := doc.Blocks[2].(*ast.List)
	require.True(t, ok, "expected List, got %T", doc.Blocks[2])
	require.False(t, list.Ordered)
	require.Len(t, list.Items, 2)

	quote, ok := doc.Blocks[3].(*ast.Quote)
	require.True(t, ok, "expected Quote, got %T", doc.Blocks[3])
	require.Len(t, quote.Blocks, 1)
}

func TestParseRecognizesUserMentionDeepLink(t *testing.T) {
	doc, err := gfm.Parse([]byte("hi [@john](slack://user?id=U1&name=john) there"))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)

	para := doc.Blocks[0].(*ast.Paragraph)
	var mention *ast.UserMention
	for _, in := range para.Inlines {
		if m, ok := in.(*ast.UserMention); ok {
			mention = m
		}
	}
	require.NotNil(t, mention, "expected a UserMention among the paragraph's inlines")
	require.Equal(t, "U1", mention.UserID)
	require.Equal(t, "john", mention.Username)
}

func TestRenderHeadingAndList(t *testing.T) {
	doc := &ast.Document{
		Blocks: []ast.Block{
			&ast.Heading{Level: 2, Inlines: []ast.Inline{&ast.Text{Text: "Title"}}},
			&ast.List{
				Ordered: true,
				Start:   1,
				Items: []ast.ListItem{
					{Children: []ast.Node{&ast.Text{Text: "one"}}},
					{Children: []ast.Node{&ast.Text{Text: "two"}}},
				},
			},
		},
	}
	out, err := gfm.Render(doc, gfm.RenderOptions{RaiseOnError: true})
	require.NoError(t, err)
	require.Equal(t, "## Title\n\n1. one\n2. two", out)
}

func TestRenderCodeBlockAddsExactlyOneTrailingNewline(t *testing.T) {
	doc := &ast.Document{
		Blocks: []ast.Block{&ast.CodeBlock{Content: "line1\nline2", Language: "go"}},
	}
	out, err := gfm.Render(doc, gfm.RenderOptions{RaiseOnError: true})
	require.NoError(t, err)
	require.Equal(t, "```go\nline1\nline2\n```", out)

	doc2 := &ast.Document{
		Blocks: []ast.Block{&ast.CodeBlock{Content: "already terminated\n"}},
	}
	out2, err := gfm.Render(doc2, gfm.RenderOptions{RaiseOnError: true})
	require.NoError(t, err)
	require.Equal(t, "```\nalready terminated\n```", out2)
}

func TestRenderUserMentionBuildsDeepLink(t *testing.T) {
	doc := &ast.Document{
		Blocks: []ast.Block{
			&ast.Paragraph{Inlines: []ast.Inline{
				&ast.UserMention{UserID: "U1", Username: "john"},
			}},
		},
	}
	out, err := gfm.Render(doc, gfm.RenderOptions{TeamID: "T1", RaiseOnError: true})
	require.NoError(t, err)
	require.Equal(t, "[@john](slack://user?team=T1&id=U1&name=john)", out)
}

func TestRenderStrictModePropagatesError(t *testing.T) {
	doc := &ast.Document{
		Blocks: []ast.Block{
			&ast.Paragraph{Inlines: []ast.Inline{&ast.Link{URL: ""}}},
		},
	}
	_, err := gfm.Render(doc, gfm.RenderOptions{RaiseOnError: true})
	require.Error(t, err)
	var rerr *gfm.RenderError
	require.ErrorAs(t, err, &rerr)
}

// TestRenderBestEffortDegradesUnrenderableBlock exercises the fallback
// path: a block that fails to render is replaced with its printed form
// instead of failing the whole document.
func TestRenderBestEffortDegradesUnrenderableBlock(t *testing.T) {
	doc := &ast.Document{
		Blocks: []ast.Block{
			&ast.Paragraph{Inlines: []ast.Inline{&ast.Text{Text: "before"}}},
			&ast.Paragraph{Inlines: []ast.Inline{&ast.Link{URL: ""}}},
		},
	}
	out, err := gfm.Render(doc, gfm.RenderOptions{RaiseOnError: false})
	require.NoError(t, err)
	require.True(t, strings.Contains(out, "before"))
	require.True(t, strings.Contains(out, "Link"), "expected the degraded block's printed form in the output:\n%s", out)
}
