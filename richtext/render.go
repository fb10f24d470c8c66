package richtext

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/sjson"

	"github.com/insomnimus/slackfmt/ast"
)

// Render encodes doc back into RT JSON as a `{"type":"rich_text",
// "elements":[...]}` object, the inverse of Parse.
func Render(doc *ast.Document) ([]byte, error) {
	out := `{"type":"rich_text","elements":[]}`
	for _, b := range doc.Blocks {
		raw, err := renderBlock(b)
		if err != nil {
			return nil, err
		}
		var setErr error
		out, setErr = sjson.SetRaw(out, "elements.-1", raw)
		if setErr != nil {
			return nil, &RenderError{Message: setErr.Error()}
		}
	}
	return []byte(out), nil
}

func renderBlock(b ast.Block) (string, error) {
	switch n := b.(type) {
	case *ast.Paragraph:
		return renderSection("rich_text_section", n.Inlines)
	case *ast.Heading:
		// RT has no heading element; fall back to a plain section so
		// the text survives, losing only the level.
		return renderSection("rich_text_section", n.Inlines)
	case *ast.CodeBlock:
		content := strings.TrimSuffix(n.Content, "\n")
		return fmt.Sprintf(`{"type":"rich_text_preformatted","elements":[{"type":"text","text":%s}]}`,
			jsonString(content)), nil
	case *ast.Quote:
		inlines := quoteInlines(n)
		return renderSection("rich_text_quote", inlines)
	case *ast.List:
		return renderList(n)
	case *ast.HorizontalRule:
		return `{"type":"rich_text_section","elements":[{"type":"text","text":"---"}]}`, nil
	default:
		return "", &RenderError{Message: fmt.Sprintf("unrenderable block %T", b)}
	}
}

// quoteInlines concatenates the inline content of every Paragraph in a
// Quote; non-Paragraph blocks are flattened to plain text, since RT
// quotes hold a single flat run of inlines.
func quoteInlines(q *ast.Quote) []ast.Inline {
	var out []ast.Inline
	for i, b := range q.Blocks {
		if i > 0 {
			out = append(out, &ast.Text{Text: "\n"})
		}
		switch blk := b.(type) {
		case *ast.Paragraph:
			out = append(out, blk.Inlines...)
		default:
			out = append(out, &ast.Text{Text: flattenBlock(blk)})
		}
	}
	return out
}

func flattenBlock(b ast.Block) string {
	switch n := b.(type) {
	case *ast.CodeBlock:
		return n.Content
	case *ast.Paragraph:
		return flatten(n.Inlines)
	default:
		return ""
	}
}

func renderSection(typ string, inlines []ast.Inline) (string, error) {
	elems, err := renderInlines(inlines)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`{"type":%s,"elements":[%s]}`, jsonString(typ), strings.Join(elems, ",")), nil
}

func renderList(l *ast.List) (string, error) {
	style := "bullet"
	if l.Ordered {
		style = "ordered"
	}
	out := fmt.Sprintf(`{"type":"rich_text_list","style":%s}`, jsonString(style))
	if l.Ordered && l.Start != 1 {
		var err error
		out, err = sjson.Set(out, "offset", l.Start-1)
		if err != nil {
			return "", &RenderError{Message: err.Error()}
		}
	}
	for _, item := range l.Items {
		raw, err := renderListItem(item)
		if err != nil {
			return "", err
		}
		out, err = sjson.SetRaw(out, "elements.-1", raw)
		if err != nil {
			return "", &RenderError{Message: err.Error()}
		}
	}
	return out, nil
}

func renderListItem(item ast.ListItem) (string, error) {
	var inlines []ast.Inline
	for _, child := range item.Children {
		switch c := child.(type) {
		case ast.Block:
			return renderBlock(c)
		case ast.Inline:
			inlines = append(inlines, c)
		}
	}
	return renderSection("rich_text_section", inlines)
}

type styleFlags struct {
	bold, italic, strike bool
}

func (s styleFlags) any() bool { return s.bold || s.italic || s.strike }

// renderInlines collapses style-wrapper chains into per-text style
// flags: a wrapper contributes a flag while its descendants are
// walked; a leaf (Text or Code) emits one JSON text element carrying
// whatever flags are active on entry.
func renderInlines(inlines []ast.Inline) ([]string, error) {
	return renderInlineSeq(inlines, styleFlags{})
}

func renderInlineSeq(inlines []ast.Inline, active styleFlags) ([]string, error) {
	var out []string
	for _, in := range inlines {
		elems, err := renderOneInline(in, active)
		if err != nil {
			return nil, err
		}
		out = append(out, elems...)
	}
	return out, nil
}

func renderOneInline(in ast.Inline, active styleFlags) ([]string, error) {
	switch n := in.(type) {
	case *ast.Text:
		return []string{renderTextElement(n.Text, active, false)}, nil
	case *ast.Code:
		return []string{renderTextElement(n.Content, active, true)}, nil
	case *ast.Bold:
		a := active
		a.bold = true
		return renderInlineSeq(n.Inlines, a)
	case *ast.Italic:
		a := active
		a.italic = true
		return renderInlineSeq(n.Inlines, a)
	case *ast.Strikethrough:
		a := active
		a.strike = true
		return renderInlineSeq(n.Inlines, a)
	case *ast.Link:
		if n.URL == "" {
			return nil, &RenderError{Message: "link with empty url"}
		}
		label := flatten(n.Inlines)
		if label == "" {
			return []string{fmt.Sprintf(`{"type":"link","url":%s}`, jsonString(n.URL))}, nil
		}
		return []string{fmt.Sprintf(`{"type":"link","url":%s,"text":%s}`, jsonString(n.URL), jsonString(label))}, nil
	case *ast.UserMention:
		return []string{fmt.Sprintf(`{"type":"user","user_id":%s}`, jsonString(n.UserID))}, nil
	case *ast.ChannelMention:
		return []string{fmt.Sprintf(`{"type":"channel","channel_id":%s}`, jsonString(n.ChannelID))}, nil
	case *ast.UsergroupMention:
		return []string{fmt.Sprintf(`{"type":"usergroup","usergroup_id":%s}`, jsonString(n.UsergroupID))}, nil
	case *ast.Broadcast:
		return []string{fmt.Sprintf(`{"type":"broadcast","range":%s}`, jsonString(string(n.Range)))}, nil
	case *ast.Emoji:
		obj := fmt.Sprintf(`{"type":"emoji","name":%s}`, jsonString(n.Name))
		if n.Unicode != "" {
			var err error
			obj, err = sjson.Set(obj, "unicode", n.Unicode)
			if err != nil {
				return nil, &RenderError{Message: err.Error()}
			}
		}
		return []string{obj}, nil
	case *ast.DateTimestamp:
		obj := fmt.Sprintf(`{"type":"date","timestamp":%s}`, strconv.FormatInt(n.EpochSeconds, 10))
		var err error
		if n.Format != "" {
			obj, err = sjson.Set(obj, "format", n.Format)
			if err != nil {
				return nil, &RenderError{Message: err.Error()}
			}
		}
		if n.Fallback != "" {
			obj, err = sjson.Set(obj, "fallback", n.Fallback)
			if err != nil {
				return nil, &RenderError{Message: err.Error()}
			}
		}
		return []string{obj}, nil
	default:
		return nil, &RenderError{Message: fmt.Sprintf("unrenderable inline %T", in)}
	}
}

func renderTextElement(text string, active styleFlags, code bool) string {
	obj := fmt.Sprintf(`{"type":"text","text":%s}`, jsonString(text))
	if !active.any() && !code {
		return obj
	}
	style := map[string]bool{}
	if active.bold {
		style["bold"] = true
	}
	if active.italic {
		style["italic"] = true
	}
	if active.strike {
		style["strike"] = true
	}
	if code {
		style["code"] = true
	}
	raw, err := json.Marshal(style)
	if err != nil {
		return obj
	}
	out, err := sjson.SetRaw(obj, "style", string(raw))
	if err != nil {
		return obj
	}
	return out
}

func jsonString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}
