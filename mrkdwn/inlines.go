package mrkdwn

import (
	"strings"

	"github.com/insomnimus/slackfmt/ast"
	"github.com/insomnimus/slackfmt/mrkdwn/token"
)

// styleFrame is an open Bold/Italic/Strikethrough wrapper awaiting its
// closing marker.
type styleFrame struct {
	kind     token.Kind
	children []ast.Inline
}

// parseInlines consumes tokens into inline content until a token whose
// kind satisfies stop is reached (not consumed) or EOF. A style marker
// opens a new frame unless one of the same kind is already open, in
// which case it closes the innermost one; any frame still open when
// its paragraph ends degrades back to its literal marker rune rather
// than erroring on asymmetric markup.
func (p *parser) parseInlines(stop func(token.Kind) bool) []ast.Inline {
	var root []ast.Inline
	var stack []*styleFrame
	var buf strings.Builder

	appendChild := func(n ast.Inline) {
		if len(stack) == 0 {
			root = append(root, n)
			return
		}
		top := stack[len(stack)-1]
		top.children = append(top.children, n)
	}
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		text := buf.String()
		buf.Reset()
		appendChild(&ast.Text{Text: text})
	}

	for {
		t := p.peek()
		if stop(t.Kind) {
			break
		}
		p.next()
		switch t.Kind {
		case token.Text:
			buf.WriteString(t.Text)
		case token.Newline:
			// A single newline inside a paragraph becomes a space,
			// since GFM treats a bare line break as insignificant
			// whitespace.
			buf.WriteString(" ")
		case token.InlineCode:
			flush()
			appendChild(&ast.Code{Content: t.Text})
		case token.Link:
			flush()
			var inlines []ast.Inline
			if t.Name != "" {
				inlines = []ast.Inline{&ast.Text{Text: t.Name}}
			}
			appendChild(&ast.Link{URL: t.URL, Inlines: inlines})
		case token.UserMention:
			flush()
			appendChild(&ast.UserMention{UserID: t.Text, Username: t.Name})
		case token.ChannelMention:
			flush()
			appendChild(&ast.ChannelMention{ChannelID: t.Text, ChannelName: t.Name})
		case token.UsergroupMention:
			flush()
			appendChild(&ast.UsergroupMention{UsergroupID: t.Text, UsergroupName: t.Name})
		case token.Broadcast:
			flush()
			appendChild(&ast.Broadcast{Range: ast.BroadcastRange(t.Range)})
		case token.Emoji:
			flush()
			appendChild(&ast.Emoji{Name: t.Text})
		case token.DateToken:
			flush()
			appendChild(&ast.DateTimestamp{
				EpochSeconds: t.EpochSeconds,
				Format:       t.Format,
				Fallback:     t.Fallback,
			})
		case token.BoldMarker, token.ItalicMarker, token.StrikeMarker:
			flush()
			stack = toggleFrame(stack, t.Kind, &root)
		default:
			// Structural tokens (QuoteMarker, ListMarker, FenceOpen,
			// BlankLine) reached here only when the caller's stop
			// predicate didn't claim them; fold to nothing rather
			// than loop or panic.
		}
	}
	flush()
	unwindFrames(stack, &root)
	return root
}

// toggleFrame opens a new frame for kind, or — if one is already open
// — closes the innermost frame of that kind, degrading any frames
// opened after it (the crossing-delimiter case) to literal text first.
func toggleFrame(stack []*styleFrame, kind token.Kind, root *[]ast.Inline) []*styleFrame {
	idx := -1
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].kind == kind {
			idx = i
			break
		}
	}
	if idx == -1 {
		return append(stack, &styleFrame{kind: kind})
	}
	for len(stack)-1 > idx {
		degradeTop(&stack, root)
	}
	f := stack[idx]
	stack = stack[:idx]
	wrapped := wrapFrame(f)
	if len(stack) == 0 {
		*root = append(*root, wrapped)
	} else {
		top := stack[len(stack)-1]
		top.children = append(top.children, wrapped)
	}
	return stack
}

// degradeTop pops the innermost frame and splices its marker literal
// plus its children directly into whatever is now on top: unmatched
// markers degrade to literal text instead of erroring.
func degradeTop(stack *[]*styleFrame, root *[]ast.Inline) {
	s := *stack
	f := s[len(s)-1]
	s = s[:len(s)-1]
	*stack = s
	degraded := append([]ast.Inline{&ast.Text{Text: markerLiteral(f.kind)}}, f.children...)
	if len(s) == 0 {
		*root = append(*root, degraded...)
		return
	}
	top := s[len(s)-1]
	top.children = append(top.children, degraded...)
}

func unwindFrames(stack []*styleFrame, root *[]ast.Inline) {
	for len(stack) > 0 {
		degradeTop(&stack, root)
	}
}

func wrapFrame(f *styleFrame) ast.Inline {
	switch f.kind {
	case token.BoldMarker:
		return &ast.Bold{Inlines: f.children}
	case token.ItalicMarker:
		return &ast.Italic{Inlines: f.children}
	case token.StrikeMarker:
		return &ast.Strikethrough{Inlines: f.children}
	default:
		return &ast.Text{Text: ""}
	}
}

func markerLiteral(k token.Kind) string {
	switch k {
	case token.BoldMarker:
		return "*"
	case token.ItalicMarker:
		return "_"
	case token.StrikeMarker:
		return "~"
	default:
		return ""
	}
}
