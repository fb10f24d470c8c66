package richtext

import (
	"strconv"
	"strings"

	"github.com/insomnimus/slackfmt/ast"
)

// flatten collapses inline content to plain text: links emit their
// label or URL, mentions emit their canonical ID, and any angle
// brackets that would otherwise surround a URL are never introduced.
// Used both for rich_text_preformatted content and for collapsing a
// Link's inline label when rendering its "text" field.
func flatten(inlines []ast.Inline) string {
	var b strings.Builder
	for _, in := range inlines {
		b.WriteString(flattenOne(in))
	}
	return b.String()
}

func flattenOne(in ast.Inline) string {
	switch n := in.(type) {
	case *ast.Text:
		return n.Text
	case *ast.Code:
		return n.Content
	case *ast.Bold:
		return flatten(n.Inlines)
	case *ast.Italic:
		return flatten(n.Inlines)
	case *ast.Strikethrough:
		return flatten(n.Inlines)
	case *ast.Link:
		if len(n.Inlines) == 0 {
			return n.URL
		}
		return flatten(n.Inlines)
	case *ast.UserMention:
		return n.UserID
	case *ast.ChannelMention:
		return n.ChannelID
	case *ast.UsergroupMention:
		return n.UsergroupID
	case *ast.Broadcast:
		return "@" + string(n.Range)
	case *ast.Emoji:
		return ":" + n.Name + ":"
	case *ast.DateTimestamp:
		if n.Fallback != "" {
			return n.Fallback
		}
		return strconv.FormatInt(n.EpochSeconds, 10)
	default:
		return ""
	}
}
