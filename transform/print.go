package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/insomnimus/slackfmt/ast"
)

// Print renders doc as an indented textual tree for debugging. It
// never errors and never mutates doc.
func Print(doc *ast.Document) string {
	var b strings.Builder
	b.WriteString("Document\n")
	printBlocks(&b, doc.Blocks, 1)
	return strings.TrimRight(b.String(), "\n")
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func printBlocks(b *strings.Builder, blocks []ast.Block, depth int) {
	for _, blk := range blocks {
		printBlock(b, blk, depth)
	}
}

func printBlock(b *strings.Builder, blk ast.Block, depth int) {
	indent(b, depth)
	switch n := blk.(type) {
	case *ast.Paragraph:
		b.WriteString("Paragraph\n")
		printInlines(b, n.Inlines, depth+1)
	case *ast.Heading:
		fmt.Fprintf(b, "Heading level=%d\n", n.Level)
		printInlines(b, n.Inlines, depth+1)
	case *ast.CodeBlock:
		fmt.Fprintf(b, "CodeBlock language=%q content=%q\n", n.Language, n.Content)
	case *ast.Quote:
		b.WriteString("Quote\n")
		printBlocks(b, n.Blocks, depth+1)
	case *ast.List:
		fmt.Fprintf(b, "List ordered=%t start=%d\n", n.Ordered, n.Start)
		for _, item := range n.Items {
			indent(b, depth+1)
			b.WriteString("ListItem\n")
			printNodes(b, item.Children, depth+2)
		}
	case *ast.HorizontalRule:
		b.WriteString("HorizontalRule\n")
	default:
		b.WriteString("<unknown block>\n")
	}
}

func printNodes(b *strings.Builder, nodes []ast.Node, depth int) {
	for _, n := range nodes {
		switch x := n.(type) {
		case ast.Block:
			printBlock(b, x, depth)
		case ast.Inline:
			printInline(b, x, depth)
		default:
			indent(b, depth)
			b.WriteString("<unknown node>\n")
		}
	}
}

func printInlines(b *strings.Builder, inlines []ast.Inline, depth int) {
	for _, in := range inlines {
		printInline(b, in, depth)
	}
}

func printInline(b *strings.Builder, in ast.Inline, depth int) {
	indent(b, depth)
	switch n := in.(type) {
	case *ast.Text:
		fmt.Fprintf(b, "Text %q\n", n.Text)
	case *ast.Bold:
		b.WriteString("Bold\n")
		printInlines(b, n.Inlines, depth+1)
	case *ast.Italic:
		b.WriteString("Italic\n")
		printInlines(b, n.Inlines, depth+1)
	case *ast.Strikethrough:
		b.WriteString("Strikethrough\n")
		printInlines(b, n.Inlines, depth+1)
	case *ast.Code:
		fmt.Fprintf(b, "Code %q\n", n.Content)
	case *ast.Link:
		fmt.Fprintf(b, "Link url=%q\n", n.URL)
		printInlines(b, n.Inlines, depth+1)
	case *ast.UserMention:
		fmt.Fprintf(b, "UserMention id=%q username=%q\n", n.UserID, n.Username)
	case *ast.ChannelMention:
		fmt.Fprintf(b, "ChannelMention id=%q name=%q\n", n.ChannelID, n.ChannelName)
	case *ast.UsergroupMention:
		fmt.Fprintf(b, "UsergroupMention id=%q name=%q\n", n.UsergroupID, n.UsergroupName)
	case *ast.Broadcast:
		fmt.Fprintf(b, "Broadcast range=%s\n", n.Range)
	case *ast.Emoji:
		fmt.Fprintf(b, "Emoji name=%q unicode=%q\n", n.Name, n.Unicode)
	case *ast.DateTimestamp:
		fmt.Fprintf(b, "DateTimestamp epoch=%s format=%q fallback=%q\n",
			strconv.FormatInt(n.EpochSeconds, 10), n.Format, n.Fallback)
	default:
		b.WriteString("<unknown inline>\n")
	}
}
