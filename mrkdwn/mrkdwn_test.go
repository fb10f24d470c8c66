package mrkdwn_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/insomnimus/slackfmt/ast"
	"github.com/insomnimus/slackfmt/mrkdwn"
)

func TestParseBoldItalicCombined(t *testing.T) {
	doc, err := mrkdwn.Parse("*_bold italic_*")
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)

	para := doc.Blocks[0].(*ast.Paragraph)
	require.Len(t, para.Inlines, 1)

	bold, ok := para.Inlines[0].(*ast.Bold)
	require.True(t, ok, "expected outer Bold, got %T", para.Inlines[0])
	italic, ok := bold.Inlines[0].(*ast.Italic)
	require.True(t, ok, "expected inner Italic, got %T", bold.Inlines[0])
	text, ok := italic.Inlines[0].(*ast.Text)
	require.True(t, ok)
	require.Equal(t, "bold italic", text.Text)
}

func TestParseUserMention(t *testing.T) {
	doc, err := mrkdwn.Parse("hi <@U1234|alice>!")
	require.NoError(t, err)
	para := doc.Blocks[0].(*ast.Paragraph)
	require.Len(t, para.Inlines, 3)
	mention, ok := para.Inlines[1].(*ast.UserMention)
	require.True(t, ok, "expected UserMention, got %T", para.Inlines[1])
	require.Equal(t, "U1234", mention.UserID)
	require.Equal(t, "alice", mention.Username)
}

func TestParseBroadcastChannel(t *testing.T) {
	doc, err := mrkdwn.Parse("<!channel> please look")
	require.NoError(t, err)
	para := doc.Blocks[0].(*ast.Paragraph)
	b, ok := para.Inlines[0].(*ast.Broadcast)
	require.True(t, ok, "expected Broadcast, got %T", para.Inlines[0])
	require.Equal(t, ast.BroadcastChannel, b.Range)
}

// TestCodeFenceStripsAngleURL exercises the INSIDE_FENCE rule that
// strips the angle brackets around a recognized URL scheme while
// leaving everything else verbatim.
func TestCodeFenceStripsAngleURL(t *testing.T) {
	doc, err := mrkdwn.Parse("```\nsee <https://example.com> for docs\n```")
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	cb, ok := doc.Blocks[0].(*ast.CodeBlock)
	require.True(t, ok, "expected CodeBlock, got %T", doc.Blocks[0])
	require.Equal(t, "see https://example.com for docs", cb.Content)
}

func TestParseQuoteJoinsConsecutiveLines(t *testing.T) {
	doc, err := mrkdwn.Parse("> line one\n> line two")
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	q, ok := doc.Blocks[0].(*ast.Quote)
	require.True(t, ok, "expected Quote, got %T", doc.Blocks[0])
	require.Len(t, q.Blocks, 1)
	para := q.Blocks[0].(*ast.Paragraph)
	var text string
	for _, in := range para.Inlines {
		text += in.(*ast.Text).Text
	}
	require.Equal(t, "line one line two", text)
}

func TestParseUnmatchedMarkerDegradesToLiteral(t *testing.T) {
	doc, err := mrkdwn.Parse("this * has an unmatched star")
	require.NoError(t, err)
	para := doc.Blocks[0].(*ast.Paragraph)
	var text string
	for _, in := range para.Inlines {
		tx, ok := in.(*ast.Text)
		require.True(t, ok, "expected only Text inlines, got %T", in)
		text += tx.Text
	}
	require.Equal(t, "this * has an unmatched star", text)
}

func TestParseBulletList(t *testing.T) {
	doc, err := mrkdwn.Parse("* one\n* two")
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	l, ok := doc.Blocks[0].(*ast.List)
	require.True(t, ok, "expected List, got %T", doc.Blocks[0])
	require.False(t, l.Ordered)
	require.Len(t, l.Items, 2)
}
