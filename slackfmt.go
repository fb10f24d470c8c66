// Package slackfmt converts short-form formatted text between Rich
// Text JSON, Mrkdwn, and GitHub-Flavored Markdown. It is a thin
// wrapper over parse → transform → render: RTToGFM and GFMToRT round
// trip losslessly for every representable construct, MKToGFM is a
// one-way migration (there is no Mrkdwn encoder, per the platform
// having deprecated it as an input-only legacy format).
package slackfmt

import (
	"github.com/insomnimus/slackfmt/ast"
	"github.com/insomnimus/slackfmt/gfm"
	"github.com/insomnimus/slackfmt/mrkdwn"
	"github.com/insomnimus/slackfmt/richtext"
)

// Options configures every convenience entry point. TeamID is used
// only by renderers that emit mention deep links (GFM); it is ignored
// by RT rendering, which never needs one. RaiseOnError selects strict
// mode: the zero value is best-effort, which degrades an unrenderable
// GFM subtree to its printed form rather than failing the whole
// conversion.
type Options struct {
	TeamID       string
	RaiseOnError bool
}

// RTToGFM parses Rich Text JSON and renders it as GFM text.
func RTToGFM(data []byte, opts Options) (string, error) {
	doc, err := richtext.Parse(data)
	if err != nil {
		return "", err
	}
	return gfm.Render(doc, gfm.RenderOptions{TeamID: opts.TeamID, RaiseOnError: opts.RaiseOnError})
}

// GFMToRT parses GFM text and renders it as Rich Text JSON.
func GFMToRT(text string, opts Options) ([]byte, error) {
	doc, err := gfm.Parse([]byte(text))
	if err != nil {
		return nil, err
	}
	return richtext.Render(doc)
}

// MKToGFM parses legacy Mrkdwn text and renders it as GFM text. This
// is a one-way migration path: there is no Mrkdwn encoder.
func MKToGFM(text string, opts Options) (string, error) {
	doc, err := mrkdwn.Parse(text)
	if err != nil {
		return "", err
	}
	return gfm.Render(doc, gfm.RenderOptions{TeamID: opts.TeamID, RaiseOnError: opts.RaiseOnError})
}

// ParseRT, ParseGFM and ParseMK expose the AST directly for callers
// who want to run transformers (ID→name mapping, callbacks) between
// parse and render instead of going through one of the combined
// entry points above.
func ParseRT(data []byte) (*ast.Document, error)  { return richtext.Parse(data) }
func ParseGFM(data []byte) (*ast.Document, error) { return gfm.Parse(data) }
func ParseMK(text string) (*ast.Document, error)  { return mrkdwn.Parse(text) }

// RenderRT and RenderGFM encode an already-built (and possibly
// transformed) AST back into Rich Text JSON or GFM text.
func RenderRT(doc *ast.Document) ([]byte, error) { return richtext.Render(doc) }

func RenderGFM(doc *ast.Document, opts Options) (string, error) {
	return gfm.Render(doc, gfm.RenderOptions{TeamID: opts.TeamID, RaiseOnError: opts.RaiseOnError})
}
