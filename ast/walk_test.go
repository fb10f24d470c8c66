package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insomnimus/slackfmt/ast"
)

// upperVisitor uppercases every Text node and leaves everything else
// alone, to exercise bottom-up substitution through nested wrappers.
type upperVisitor struct{ calls int }

func (v *upperVisitor) VisitBlock(b ast.Block) (ast.Block, error) { return b, nil }

func (v *upperVisitor) VisitInline(in ast.Inline) (ast.Inline, error) {
	v.calls++
	if t, ok := in.(*ast.Text); ok {
		return &ast.Text{Text: strUpper(t.Text)}, nil
	}
	return in, nil
}

func strUpper(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r >= 'a' && r <= 'z' {
			out[i] = r - ('a' - 'A')
		}
	}
	return string(out)
}

func TestWalkRewritesNestedText(t *testing.T) {
	doc := &ast.Document{
		Blocks: []ast.Block{
			&ast.Paragraph{
				Inlines: []ast.Inline{
					&ast.Bold{Inlines: []ast.Inline{&ast.Text{Text: "hi"}}},
				},
			},
		},
	}

	v := &upperVisitor{}
	out, err := ast.Walk(doc, v)
	require.NoError(t, err)

	para := out.Blocks[0].(*ast.Paragraph)
	bold := para.Inlines[0].(*ast.Bold)
	text := bold.Inlines[0].(*ast.Text)
	assert.Equal(t, "HI", text.Text)
	assert.Greater(t, v.calls, 0)
}

func TestWalkReturnsSameDocWhenUnchanged(t *testing.T) {
	doc := &ast.Document{
		Blocks: []ast.Block{
			&ast.Paragraph{Inlines: []ast.Inline{&ast.Text{Text: "plain"}}},
		},
	}
	v := &passthroughVisitor{}
	out, err := ast.Walk(doc, v)
	require.NoError(t, err)
	assert.Same(t, doc, out, "walk should not reallocate when nothing changed")
}

type passthroughVisitor struct{}

func (passthroughVisitor) VisitBlock(b ast.Block) (ast.Block, error)    { return b, nil }
func (passthroughVisitor) VisitInline(in ast.Inline) (ast.Inline, error) { return in, nil }

func TestBroadcastRangeValid(t *testing.T) {
	assert.True(t, ast.BroadcastRange("here").Valid())
	assert.True(t, ast.BroadcastRange("channel").Valid())
	assert.True(t, ast.BroadcastRange("everyone").Valid())
	assert.False(t, ast.BroadcastRange("nope").Valid())
}
