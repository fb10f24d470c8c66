// Package mrkdwn implements the context-aware tokenizer and parser for
// the platform's legacy inline text format. Parse is the only exported
// entry point; everything else is an implementation detail of turning a
// token stream into the common AST.
package mrkdwn

import (
	"fmt"

	"github.com/insomnimus/slackfmt/ast"
	"github.com/insomnimus/slackfmt/mrkdwn/lexer"
	"github.com/insomnimus/slackfmt/mrkdwn/token"
)

// ParseError reports mrkdwn text that the parser cannot make sense of:
// an unterminated code fence. Unlike the RT and GFM codecs, other
// malformed mrkdwn degrades silently to literal text (unmatched style
// markers, unterminated angle brackets, and angle content such as a
// broadcast with an unrecognized range all fall back this way) rather
// than erroring; ParseError is reserved for the case where no degraded
// reading exists.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mrkdwn parse error: %s", e.Message)
}

// Parse tokenizes s with the lexer package and builds the common AST.
func Parse(s string) (*ast.Document, error) {
	toks := lexer.New(s).Tokens()
	p := &parser{toks: toks}
	blocks, err := p.parseBlocks()
	if err != nil {
		return nil, err
	}
	return &ast.Document{Blocks: blocks}, nil
}

type parser struct {
	toks []token.Token
	pos  int
}

func (p *parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *parser) next() token.Token {
	t := p.toks[p.pos]
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

func (p *parser) skipBlank() {
	for p.peek().Kind == token.BlankLine {
		p.next()
	}
}
