package mrkdwn

import (
	"strings"

	"github.com/insomnimus/slackfmt/ast"
	"github.com/insomnimus/slackfmt/mrkdwn/token"
)

func (p *parser) parseBlocks() ([]ast.Block, error) {
	var blocks []ast.Block
	for {
		p.skipBlank()
		switch p.peek().Kind {
		case token.EOF:
			return blocks, nil
		case token.FenceOpen:
			b, err := p.parseCodeBlock()
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, b)
		case token.QuoteMarker:
			blocks = append(blocks, p.parseQuote())
		case token.ListMarker:
			blocks = append(blocks, p.parseList())
		default:
			if b := p.parseParagraph(); b != nil {
				blocks = append(blocks, b)
			}
		}
	}
}

// stopsParagraph reports the tokens that end a paragraph without being
// consumed by it: a blank line, EOF, or the start of another block.
func stopsParagraph(k token.Kind) bool {
	switch k {
	case token.BlankLine, token.EOF, token.QuoteMarker, token.ListMarker, token.FenceOpen:
		return true
	default:
		return false
	}
}

func (p *parser) parseParagraph() ast.Block {
	inlines := p.parseInlines(stopsParagraph)
	if len(inlines) == 0 {
		return nil
	}
	return &ast.Paragraph{Inlines: inlines}
}

// parseCodeBlock consumes FenceOpen … FenceClose, concatenating the
// enclosed Text tokens verbatim (they already carry embedded newlines,
// since INSIDE_FENCE emits raw bytes as Text) and trimming one leading
// newline after the fence and one trailing newline before the close
// fence.
func (p *parser) parseCodeBlock() (ast.Block, error) {
	p.next() // FenceOpen
	var b strings.Builder
	for {
		t := p.next()
		switch t.Kind {
		case token.FenceClose:
			content := b.String()
			content = strings.TrimPrefix(content, "\n")
			content = strings.TrimSuffix(content, "\n")
			return &ast.CodeBlock{Content: content}, nil
		case token.EOF:
			return nil, &ParseError{Message: "unterminated code fence"}
		case token.Text:
			b.WriteString(t.Text)
		default:
			// Style/marker tokens never arise inside a fence at the
			// lexer level; defensively fold anything else to nothing.
		}
	}
}

// parseQuote joins consecutive QuoteMarker-prefixed lines into one
// Quote wrapping a single Paragraph; a non-quoted non-blank line closes
// it.
func (p *parser) parseQuote() ast.Block {
	var inlines []ast.Inline
	for p.peek().Kind == token.QuoteMarker {
		p.next()
		line := p.parseInlines(func(k token.Kind) bool {
			return k == token.Newline || k == token.BlankLine || k == token.EOF
		})
		if len(inlines) > 0 && len(line) > 0 {
			inlines = append(inlines, &ast.Text{Text: " "})
		}
		inlines = append(inlines, line...)
		if p.peek().Kind == token.Newline {
			p.next()
			if p.peek().Kind != token.QuoteMarker {
				break
			}
		} else {
			break
		}
	}
	return &ast.Quote{Blocks: []ast.Block{&ast.Paragraph{Inlines: inlines}}}
}

// parseList groups consecutive ListMarker items of the same kind
// (ordered vs. bullet) into one List; a line with no marker is a
// continuation of the preceding item.
func (p *parser) parseList() ast.Block {
	first := p.peek()
	ordered := first.Ordered
	start := 1
	if ordered {
		start = first.Number
	}
	var items []ast.ListItem
	for {
		t := p.peek()
		if t.Kind != token.ListMarker || t.Ordered != ordered {
			break
		}
		p.next()
		content := p.parseListItemContent()
		children := make([]ast.Node, len(content))
		for i, in := range content {
			children[i] = in.(ast.Node)
		}
		items = append(items, ast.ListItem{Children: children})
	}
	return &ast.List{Ordered: ordered, Start: start, Items: items}
}

// parseListItemContent consumes inline content for one item, including
// unmarked continuation lines, stopping at the next marker of either
// kind, a blank line, or EOF.
func (p *parser) parseListItemContent() []ast.Inline {
	return p.parseInlines(func(k token.Kind) bool {
		return k == token.ListMarker || k == token.BlankLine || k == token.EOF
	})
}
