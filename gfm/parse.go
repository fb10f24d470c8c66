package gfm

import (
	"strings"

	gfmast "github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"

	"github.com/insomnimus/slackfmt/ast"
)

func extensions() parser.Extensions {
	return parser.CommonExtensions | parser.Strikethrough
}

// Parse turns GFM text into the common AST, delegating block and
// inline tokenization to gomarkdown/markdown as an external
// collaborator.
func Parse(data []byte) (*ast.Document, error) {
	p := parser.NewWithExtensions(extensions())
	root := p.Parse(data)
	doc, ok := root.(*gfmast.Document)
	if !ok {
		return nil, &ParseError{Message: "gfm parser did not return a document root"}
	}
	blocks, err := convertBlocks(doc.Children)
	if err != nil {
		return nil, err
	}
	return &ast.Document{Blocks: blocks}, nil
}

func convertBlocks(nodes []gfmast.Node) ([]ast.Block, error) {
	var out []ast.Block
	for _, n := range nodes {
		b, err := convertBlock(n)
		if err != nil {
			return nil, err
		}
		if b != nil {
			out = append(out, b)
		}
	}
	return out, nil
}

func convertBlock(n gfmast.Node) (ast.Block, error) {
	switch t := n.(type) {
	case *gfmast.Paragraph:
		inlines, err := convertInlines(t.Children)
		if err != nil {
			return nil, err
		}
		return &ast.Paragraph{Inlines: inlines}, nil
	case *gfmast.Heading:
		inlines, err := convertInlines(t.Children)
		if err != nil {
			return nil, err
		}
		level := t.Level
		if level < 1 {
			level = 1
		} else if level > 6 {
			level = 6
		}
		return &ast.Heading{Level: level, Inlines: inlines}, nil
	case *gfmast.CodeBlock:
		return &ast.CodeBlock{
			Content:  string(t.Literal),
			Language: string(t.Info),
		}, nil
	case *gfmast.BlockQuote:
		blocks, err := convertBlocks(t.Children)
		if err != nil {
			return nil, err
		}
		return &ast.Quote{Blocks: blocks}, nil
	case *gfmast.List:
		return convertList(t)
	case *gfmast.HorizontalRule:
		return &ast.HorizontalRule{}, nil
	case *gfmast.HTMLBlock:
		text := strings.TrimRight(string(t.Literal), "\n")
		if text == "" {
			return nil, nil
		}
		return &ast.Paragraph{Inlines: []ast.Inline{&ast.Text{Text: text}}}, nil
	default:
		// Other block constructs are dropped rather than erroring. The
		// configured extensions do parse some of them, such as tables
		// and math blocks, so their content does not reach the AST.
		return nil, nil
	}
}

func convertList(l *gfmast.List) (*ast.List, error) {
	ordered := l.ListFlags&gfmast.ListTypeOrdered != 0
	start := l.Start
	if start == 0 {
		start = 1
	}
	var items []ast.ListItem
	for _, child := range l.Children {
		li, ok := child.(*gfmast.ListItem)
		if !ok {
			continue
		}
		item, err := convertListItem(li)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return &ast.List{Ordered: ordered, Start: start, Items: items}, nil
}

// convertListItem flattens an item's paragraph wrapper (gomarkdown
// always wraps item content in a Paragraph, even for tight lists) into
// direct inline children, and recurses into nested lists/quotes as
// block children — mirroring the mrkdwn and richtext parsers' own
// ListItem convention (ast.ListItem docs, ast/types.go).
func convertListItem(li *gfmast.ListItem) (ast.ListItem, error) {
	var children []ast.Node
	for _, child := range li.Children {
		switch c := child.(type) {
		case *gfmast.Paragraph:
			inlines, err := convertInlines(c.Children)
			if err != nil {
				return ast.ListItem{}, err
			}
			for _, in := range inlines {
				children = append(children, in.(ast.Node))
			}
		default:
			b, err := convertBlock(child)
			if err != nil {
				return ast.ListItem{}, err
			}
			if b != nil {
				children = append(children, b.(ast.Node))
			}
		}
	}
	return ast.ListItem{Children: children}, nil
}

func convertInlines(nodes []gfmast.Node) ([]ast.Inline, error) {
	var out []ast.Inline
	for _, n := range nodes {
		in, err := convertInline(n)
		if err != nil {
			return nil, err
		}
		if in != nil {
			out = append(out, in)
		}
	}
	return out, nil
}

func convertInline(n gfmast.Node) (ast.Inline, error) {
	switch t := n.(type) {
	case *gfmast.Text:
		if len(t.Literal) == 0 {
			return nil, nil
		}
		return &ast.Text{Text: string(t.Literal)}, nil
	case *gfmast.Code:
		return &ast.Code{Content: string(t.Literal)}, nil
	case *gfmast.Strong:
		inlines, err := convertInlines(t.Children)
		if err != nil {
			return nil, err
		}
		return &ast.Bold{Inlines: inlines}, nil
	case *gfmast.Emph:
		inlines, err := convertInlines(t.Children)
		if err != nil {
			return nil, err
		}
		return &ast.Italic{Inlines: inlines}, nil
	case *gfmast.Del:
		inlines, err := convertInlines(t.Children)
		if err != nil {
			return nil, err
		}
		return &ast.Strikethrough{Inlines: inlines}, nil
	case *gfmast.Link:
		inlines, err := convertInlines(t.Children)
		if err != nil {
			return nil, err
		}
		url := string(t.Destination)
		if mention, ok := parseDeepLink(url, flattenGFM(inlines)); ok {
			return mention, nil
		}
		return &ast.Link{URL: url, Inlines: inlines}, nil
	case *gfmast.Softbreak:
		return &ast.Text{Text: " "}, nil
	case *gfmast.Hardbreak:
		return &ast.Text{Text: "\n"}, nil
	case *gfmast.HTMLSpan:
		return &ast.Text{Text: string(t.Literal)}, nil
	default:
		return nil, nil
	}
}

// flattenGFM collapses inline content to plain text for use as a
// mention's fallback display name. Unlike richtext's flatten
// (richtext/flatten.go) it covers only Text, Code and the style
// wrappers; any other inline contributes nothing.
func flattenGFM(inlines []ast.Inline) string {
	var b strings.Builder
	for _, in := range inlines {
		switch n := in.(type) {
		case *ast.Text:
			b.WriteString(n.Text)
		case *ast.Code:
			b.WriteString(n.Content)
		case *ast.Bold:
			b.WriteString(flattenGFM(n.Inlines))
		case *ast.Italic:
			b.WriteString(flattenGFM(n.Inlines))
		case *ast.Strikethrough:
			b.WriteString(flattenGFM(n.Inlines))
		}
	}
	return b.String()
}
