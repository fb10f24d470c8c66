package gfm

import (
	"strconv"
	"strings"

	"github.com/insomnimus/slackfmt/ast"
	"github.com/insomnimus/slackfmt/transform"
)

// RenderOptions configures Render. TeamID, when non-empty, is included
// in every mention's deep link. RaiseOnError selects strict mode: false
// (the default) falls back to the offending subtree's printed form
// (transform.Print) instead of failing the whole document.
type RenderOptions struct {
	TeamID       string
	RaiseOnError bool
}

// Render walks doc and produces GFM text.
func Render(doc *ast.Document, opts RenderOptions) (string, error) {
	parts := make([]string, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		s, err := renderBlock(b, opts)
		if err != nil {
			if opts.RaiseOnError {
				return "", err
			}
			s = transform.Print(&ast.Document{Blocks: []ast.Block{b}})
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n\n"), nil
}

func renderBlock(b ast.Block, opts RenderOptions) (string, error) {
	switch n := b.(type) {
	case *ast.Paragraph:
		return renderInlines(n.Inlines, opts)
	case *ast.Heading:
		body, err := renderInlines(n.Inlines, opts)
		if err != nil {
			return "", err
		}
		return strings.Repeat("#", n.Level) + " " + body, nil
	case *ast.CodeBlock:
		return renderCodeBlock(n), nil
	case *ast.Quote:
		return renderQuote(n, opts)
	case *ast.List:
		return renderList(n, opts)
	case *ast.HorizontalRule:
		return "---", nil
	default:
		return "", &RenderError{Message: "unrenderable block node"}
	}
}

func renderCodeBlock(n *ast.CodeBlock) string {
	var b strings.Builder
	b.WriteString("```")
	b.WriteString(n.Language)
	b.WriteString("\n")
	if n.Content != "" {
		b.WriteString(n.Content)
		if !strings.HasSuffix(n.Content, "\n") {
			b.WriteString("\n")
		}
	}
	b.WriteString("```")
	return b.String()
}

func renderQuote(n *ast.Quote, opts RenderOptions) (string, error) {
	parts := make([]string, 0, len(n.Blocks))
	for _, child := range n.Blocks {
		s, err := renderBlock(child, opts)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	body := strings.Join(parts, "\n\n")
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n"), nil
}

func renderList(n *ast.List, opts RenderOptions) (string, error) {
	lines := make([]string, 0, len(n.Items))
	for i, item := range n.Items {
		var prefix string
		if n.Ordered {
			prefix = strconv.Itoa(n.Start+i) + ". "
		} else {
			prefix = "- "
		}
		body, err := renderListItem(item, opts)
		if err != nil {
			return "", err
		}
		indent := strings.Repeat(" ", len(prefix))
		body = strings.ReplaceAll(body, "\n", "\n"+indent)
		lines = append(lines, prefix+body)
	}
	return strings.Join(lines, "\n"), nil
}

func renderListItem(item ast.ListItem, opts RenderOptions) (string, error) {
	var inlines []ast.Inline
	var blockParts []string
	for _, child := range item.Children {
		switch c := child.(type) {
		case ast.Inline:
			inlines = append(inlines, c)
		case ast.Block:
			s, err := renderBlock(c, opts)
			if err != nil {
				return "", err
			}
			blockParts = append(blockParts, s)
		}
	}
	head, err := renderInlines(inlines, opts)
	if err != nil {
		return "", err
	}
	parts := append([]string{head}, blockParts...)
	return strings.Join(parts, "\n\n"), nil
}

func renderInlines(inlines []ast.Inline, opts RenderOptions) (string, error) {
	var b strings.Builder
	for _, in := range inlines {
		s, err := renderInline(in, opts)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func renderInline(in ast.Inline, opts RenderOptions) (string, error) {
	switch n := in.(type) {
	case *ast.Text:
		return n.Text, nil
	case *ast.Bold:
		s, err := renderInlines(n.Inlines, opts)
		if err != nil {
			return "", err
		}
		return "**" + s + "**", nil
	case *ast.Italic:
		s, err := renderInlines(n.Inlines, opts)
		if err != nil {
			return "", err
		}
		return "*" + s + "*", nil
	case *ast.Strikethrough:
		s, err := renderInlines(n.Inlines, opts)
		if err != nil {
			return "", err
		}
		return "~~" + s + "~~", nil
	case *ast.Code:
		return "`" + n.Content + "`", nil
	case *ast.Link:
		if n.URL == "" {
			return "", &RenderError{Message: "link with empty url"}
		}
		label, err := renderInlines(n.Inlines, opts)
		if err != nil {
			return "", err
		}
		if label == "" {
			label = n.URL
		}
		return "[" + label + "](" + n.URL + ")", nil
	case *ast.UserMention:
		label := n.UserID
		if n.Username != "" {
			label = "@" + n.Username
		}
		url := buildDeepLink("user", n.UserID, opts.TeamID, n.Username)
		return "[" + label + "](" + url + ")", nil
	case *ast.ChannelMention:
		label := n.ChannelID
		if n.ChannelName != "" {
			label = "#" + n.ChannelName
		}
		url := buildDeepLink("channel", n.ChannelID, opts.TeamID, n.ChannelName)
		return "[" + label + "](" + url + ")", nil
	case *ast.UsergroupMention:
		label := n.UsergroupID
		if n.UsergroupName != "" {
			label = "@" + n.UsergroupName
		}
		url := buildDeepLink("usergroup", n.UsergroupID, opts.TeamID, n.UsergroupName)
		return "[" + label + "](" + url + ")", nil
	case *ast.Broadcast:
		if !n.Range.Valid() {
			return "", &RenderError{Message: "broadcast with invalid range"}
		}
		url := buildBroadcastLink(n.Range)
		return "[@" + string(n.Range) + "](" + url + ")", nil
	case *ast.Emoji:
		return ":" + n.Name + ":", nil
	case *ast.DateTimestamp:
		if n.Fallback != "" {
			return n.Fallback, nil
		}
		return strconv.FormatInt(n.EpochSeconds, 10), nil
	default:
		return "", &RenderError{Message: "unrenderable inline node"}
	}
}
