package transform_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/insomnimus/slackfmt/ast"
	"github.com/insomnimus/slackfmt/transform"
)

func TestMapIDsRewritesKnownMentions(t *testing.T) {
	doc := &ast.Document{
		Blocks: []ast.Block{
			&ast.Paragraph{Inlines: []ast.Inline{
				&ast.UserMention{UserID: "U1"},
				&ast.ChannelMention{ChannelID: "C1"},
				&ast.UserMention{UserID: "U2"},
			}},
		},
	}

	out, err := transform.MapIDs(doc, transform.IDMaps{
		Users:    map[string]string{"U1": "alice"},
		Channels: map[string]string{"C1": "general"},
	})
	require.NoError(t, err)

	para := out.Blocks[0].(*ast.Paragraph)
	u1 := para.Inlines[0].(*ast.UserMention)
	require.Equal(t, "alice", u1.Username)
	c1 := para.Inlines[1].(*ast.ChannelMention)
	require.Equal(t, "general", c1.ChannelName)

	// U2 has no entry in the map, so it passes through unchanged.
	u2 := para.Inlines[2].(*ast.UserMention)
	require.Equal(t, "", u2.Username)
}

func TestMapCallbacksRewritesText(t *testing.T) {
	doc := &ast.Document{
		Blocks: []ast.Block{
			&ast.Paragraph{Inlines: []ast.Inline{&ast.Text{Text: "hi"}}},
		},
	}

	out, err := transform.MapCallbacks(doc, transform.Callbacks{
		Text: func(n *ast.Text) (ast.Inline, error) {
			return &ast.Text{Text: n.Text + "!"}, nil
		},
	})
	require.NoError(t, err)

	para := out.Blocks[0].(*ast.Paragraph)
	text := para.Inlines[0].(*ast.Text)
	require.Equal(t, "hi!", text.Text)
}

func TestMapCallbacksPropagatesErrorAsTransformError(t *testing.T) {
	doc := &ast.Document{
		Blocks: []ast.Block{
			&ast.Paragraph{Inlines: []ast.Inline{&ast.Text{Text: "hi"}}},
		},
	}

	wantErr := errors.New("boom")
	_, err := transform.MapCallbacks(doc, transform.Callbacks{
		Text: func(n *ast.Text) (ast.Inline, error) {
			return nil, wantErr
		},
	})
	require.Error(t, err)
	var terr *transform.TransformError
	require.ErrorAs(t, err, &terr)
	require.Contains(t, terr.Error(), "boom")
}

func TestPrintProducesIndentedTree(t *testing.T) {
	doc := &ast.Document{
		Blocks: []ast.Block{
			&ast.Paragraph{Inlines: []ast.Inline{
				&ast.Bold{Inlines: []ast.Inline{&ast.Text{Text: "hi"}}},
			}},
		},
	}
	out := transform.Print(doc)
	require.True(t, strings.HasPrefix(out, "Document\n"))
	require.Contains(t, out, "Paragraph")
	require.Contains(t, out, "Bold")
	require.Contains(t, out, `Text "hi"`)
}

func TestPrintDoesNotMutateInput(t *testing.T) {
	doc := &ast.Document{
		Blocks: []ast.Block{
			&ast.Paragraph{Inlines: []ast.Inline{&ast.Text{Text: "hi"}}},
		},
	}
	_ = transform.Print(doc)
	para := doc.Blocks[0].(*ast.Paragraph)
	text := para.Inlines[0].(*ast.Text)
	require.Equal(t, "hi", text.Text)
}
