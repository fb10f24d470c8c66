package transform

import "github.com/insomnimus/slackfmt/ast"

// Callbacks holds one optional rewrite function per AST variant. A nil
// field leaves that variant unchanged; a non-nil one is called with the
// node after its own children have already been visited, and its
// return value (which may be a different variant entirely) becomes the
// node's final form for this pass, the same bottom-up contract a
// visitor follows.
type Callbacks struct {
	Paragraph      func(*ast.Paragraph) (ast.Block, error)
	Heading        func(*ast.Heading) (ast.Block, error)
	CodeBlock      func(*ast.CodeBlock) (ast.Block, error)
	Quote          func(*ast.Quote) (ast.Block, error)
	List           func(*ast.List) (ast.Block, error)
	HorizontalRule func(*ast.HorizontalRule) (ast.Block, error)

	Text             func(*ast.Text) (ast.Inline, error)
	Bold             func(*ast.Bold) (ast.Inline, error)
	Italic           func(*ast.Italic) (ast.Inline, error)
	Strikethrough    func(*ast.Strikethrough) (ast.Inline, error)
	Code             func(*ast.Code) (ast.Inline, error)
	Link             func(*ast.Link) (ast.Inline, error)
	UserMention      func(*ast.UserMention) (ast.Inline, error)
	ChannelMention   func(*ast.ChannelMention) (ast.Inline, error)
	UsergroupMention func(*ast.UsergroupMention) (ast.Inline, error)
	Broadcast        func(*ast.Broadcast) (ast.Inline, error)
	Emoji            func(*ast.Emoji) (ast.Inline, error)
	DateTimestamp    func(*ast.DateTimestamp) (ast.Inline, error)
}

// MapCallbacks walks doc, applying the matching non-nil field of cb to
// each node. Errors returned by a callback propagate as TransformError.
func MapCallbacks(doc *ast.Document, cb Callbacks) (*ast.Document, error) {
	return ast.Walk(doc, &callbackVisitor{cb: cb})
}

type callbackVisitor struct {
	cb Callbacks
}

func (v *callbackVisitor) VisitBlock(b ast.Block) (ast.Block, error) {
	var (
		out ast.Block
		err error
	)
	switch n := b.(type) {
	case *ast.Paragraph:
		if v.cb.Paragraph != nil {
			out, err = v.cb.Paragraph(n)
		}
	case *ast.Heading:
		if v.cb.Heading != nil {
			out, err = v.cb.Heading(n)
		}
	case *ast.CodeBlock:
		if v.cb.CodeBlock != nil {
			out, err = v.cb.CodeBlock(n)
		}
	case *ast.Quote:
		if v.cb.Quote != nil {
			out, err = v.cb.Quote(n)
		}
	case *ast.List:
		if v.cb.List != nil {
			out, err = v.cb.List(n)
		}
	case *ast.HorizontalRule:
		if v.cb.HorizontalRule != nil {
			out, err = v.cb.HorizontalRule(n)
		}
	}
	if err != nil {
		return nil, &TransformError{Message: err.Error()}
	}
	if out == nil {
		return b, nil
	}
	return out, nil
}

func (v *callbackVisitor) VisitInline(in ast.Inline) (ast.Inline, error) {
	var (
		out ast.Inline
		err error
	)
	switch n := in.(type) {
	case *ast.Text:
		if v.cb.Text != nil {
			out, err = v.cb.Text(n)
		}
	case *ast.Bold:
		if v.cb.Bold != nil {
			out, err = v.cb.Bold(n)
		}
	case *ast.Italic:
		if v.cb.Italic != nil {
			out, err = v.cb.Italic(n)
		}
	case *ast.Strikethrough:
		if v.cb.Strikethrough != nil {
			out, err = v.cb.Strikethrough(n)
		}
	case *ast.Code:
		if v.cb.Code != nil {
			out, err = v.cb.Code(n)
		}
	case *ast.Link:
		if v.cb.Link != nil {
			out, err = v.cb.Link(n)
		}
	case *ast.UserMention:
		if v.cb.UserMention != nil {
			out, err = v.cb.UserMention(n)
		}
	case *ast.ChannelMention:
		if v.cb.ChannelMention != nil {
			out, err = v.cb.ChannelMention(n)
		}
	case *ast.UsergroupMention:
		if v.cb.UsergroupMention != nil {
			out, err = v.cb.UsergroupMention(n)
		}
	case *ast.Broadcast:
		if v.cb.Broadcast != nil {
			out, err = v.cb.Broadcast(n)
		}
	case *ast.Emoji:
		if v.cb.Emoji != nil {
			out, err = v.cb.Emoji(n)
		}
	case *ast.DateTimestamp:
		if v.cb.DateTimestamp != nil {
			out, err = v.cb.DateTimestamp(n)
		}
	}
	if err != nil {
		return nil, &TransformError{Message: err.Error()}
	}
	if out == nil {
		return in, nil
	}
	return out, nil
}
