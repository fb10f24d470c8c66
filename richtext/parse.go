package richtext

import (
	"github.com/tidwall/gjson"

	"github.com/insomnimus/slackfmt/ast"
)

// Parse decodes RT JSON into a Document. data may hold either an
// object with `"type":"rich_text"` and an `"elements"` array, or a
// bare elements array.
func Parse(data []byte) (*ast.Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Message: "input is not valid JSON"}
	}
	root := gjson.ParseBytes(data)
	elements, err := topLevelElements(root)
	if err != nil {
		return nil, err
	}
	blocks, err := parseBlocks(elements, "document")
	if err != nil {
		return nil, err
	}
	return &ast.Document{Blocks: blocks}, nil
}

func topLevelElements(root gjson.Result) (gjson.Result, error) {
	if root.IsArray() {
		return root, nil
	}
	if root.IsObject() {
		els := root.Get("elements")
		if els.Exists() {
			return els, nil
		}
	}
	return gjson.Result{}, &ParseError{
		Message: `expected an object with "elements" or a bare elements array`,
	}
}

func parseBlocks(elements gjson.Result, parentType string) ([]ast.Block, error) {
	var blocks []ast.Block
	var outerErr error
	elements.ForEach(func(_, el gjson.Result) bool {
		b, err := parseBlockElement(el, parentType)
		if err != nil {
			outerErr = err
			return false
		}
		blocks = append(blocks, b)
		return true
	})
	if outerErr != nil {
		return nil, outerErr
	}
	return blocks, nil
}

func parseBlockElement(el gjson.Result, parentType string) (ast.Block, error) {
	typ := el.Get("type").String()
	switch typ {
	case "rich_text_section":
		inlines, err := parseInlines(el.Get("elements"), typ)
		if err != nil {
			return nil, err
		}
		return &ast.Paragraph{Inlines: inlines}, nil
	case "rich_text_preformatted":
		inlines, err := parseInlines(el.Get("elements"), typ)
		if err != nil {
			return nil, err
		}
		return &ast.CodeBlock{Content: flatten(inlines)}, nil
	case "rich_text_quote":
		inlines, err := parseInlines(el.Get("elements"), typ)
		if err != nil {
			return nil, err
		}
		return &ast.Quote{Blocks: []ast.Block{&ast.Paragraph{Inlines: inlines}}}, nil
	case "rich_text_list":
		return parseList(el)
	default:
		return nil, &ParseError{
			Message:    "unknown rich text block element",
			Element:    typ,
			Position:   int(el.Index),
			ParentType: parentType,
		}
	}
}

func parseList(el gjson.Result) (*ast.List, error) {
	style := el.Get("style").String()
	ordered := style == "ordered"
	start := 1
	if el.Get("indent").Exists() {
		// indent is positional metadata only, not an ordinal start;
		// the canonical start comes from Slack's (rare) "offset" field
		// when present.
	}
	if off := el.Get("offset"); off.Exists() {
		start = int(off.Int()) + 1
	}
	var items []ast.ListItem
	var outerErr error
	el.Get("elements").ForEach(func(_, itemEl gjson.Result) bool {
		item, err := parseListItem(itemEl)
		if err != nil {
			outerErr = err
			return false
		}
		items = append(items, item)
		return true
	})
	if outerErr != nil {
		return nil, outerErr
	}
	return &ast.List{Ordered: ordered, Start: start, Items: items}, nil
}

// parseListItem accepts either a rich_text_section-shaped item (the
// common, Slack-native case: plain inline content for one list item)
// or a nested rich_text_list/rich_text_quote (this codec's own
// extension, produced by our renderer for lists built from GFM/MK
// sources, so that round-tripping our own output stays lossless).
func parseListItem(itemEl gjson.Result) (ast.ListItem, error) {
	typ := itemEl.Get("type").String()
	switch typ {
	case "", "rich_text_section":
		inlines, err := parseInlines(itemEl.Get("elements"), "rich_text_list")
		if err != nil {
			return ast.ListItem{}, err
		}
		children := make([]ast.Node, len(inlines))
		for i, in := range inlines {
			children[i] = in.(ast.Node)
		}
		return ast.ListItem{Children: children}, nil
	case "rich_text_list":
		nested, err := parseList(itemEl)
		if err != nil {
			return ast.ListItem{}, err
		}
		return ast.ListItem{Children: []ast.Node{nested}}, nil
	case "rich_text_quote":
		inlines, err := parseInlines(itemEl.Get("elements"), "rich_text_quote")
		if err != nil {
			return ast.ListItem{}, err
		}
		q := &ast.Quote{Blocks: []ast.Block{&ast.Paragraph{Inlines: inlines}}}
		return ast.ListItem{Children: []ast.Node{q}}, nil
	default:
		return ast.ListItem{}, &ParseError{
			Message:    "unknown rich text list item element",
			Element:    typ,
			ParentType: "rich_text_list",
		}
	}
}

func parseInlines(elements gjson.Result, parentType string) ([]ast.Inline, error) {
	var inlines []ast.Inline
	var outerErr error
	elements.ForEach(func(_, el gjson.Result) bool {
		in, err := parseInlineElement(el, parentType)
		if err != nil {
			outerErr = err
			return false
		}
		inlines = append(inlines, in)
		return true
	})
	if outerErr != nil {
		return nil, outerErr
	}
	return inlines, nil
}

func parseInlineElement(el gjson.Result, parentType string) (ast.Inline, error) {
	typ := el.Get("type").String()
	switch typ {
	case "text":
		return parseStyledText(el), nil
	case "link":
		var inlines []ast.Inline
		if t := el.Get("text"); t.Exists() {
			inlines = []ast.Inline{&ast.Text{Text: t.String()}}
		}
		url := el.Get("url").String()
		if url == "" {
			return nil, &ParseError{Message: "link element missing url", Element: typ, ParentType: parentType}
		}
		return &ast.Link{URL: url, Inlines: inlines}, nil
	case "user":
		return &ast.UserMention{UserID: el.Get("user_id").String()}, nil
	case "channel":
		return &ast.ChannelMention{ChannelID: el.Get("channel_id").String()}, nil
	case "usergroup":
		return &ast.UsergroupMention{UsergroupID: el.Get("usergroup_id").String()}, nil
	case "broadcast":
		r := ast.BroadcastRange(el.Get("range").String())
		if !r.Valid() {
			return nil, &ParseError{
				Message:    "broadcast with unrecognized range",
				Element:    typ,
				ParentType: parentType,
			}
		}
		return &ast.Broadcast{Range: r}, nil
	case "emoji":
		return &ast.Emoji{Name: el.Get("name").String(), Unicode: el.Get("unicode").String()}, nil
	case "date":
		return &ast.DateTimestamp{
			EpochSeconds: el.Get("timestamp").Int(),
			Format:       el.Get("format").String(),
			Fallback:     el.Get("fallback").String(),
		}, nil
	default:
		return nil, &ParseError{
			Message:    "unknown rich text inline element",
			Element:    typ,
			Position:   int(el.Index),
			ParentType: parentType,
		}
	}
}

// parseStyledText wraps a text run in Strikethrough/Italic/Bold/Code
// per the style object's flags, outermost first.
func parseStyledText(el gjson.Result) ast.Inline {
	text := el.Get("text").String()
	style := el.Get("style")
	var leaf ast.Inline
	if style.Get("code").Bool() {
		leaf = &ast.Code{Content: text}
	} else {
		leaf = &ast.Text{Text: text}
	}
	if style.Get("bold").Bool() {
		leaf = &ast.Bold{Inlines: []ast.Inline{leaf}}
	}
	if style.Get("italic").Bool() {
		leaf = &ast.Italic{Inlines: []ast.Inline{leaf}}
	}
	if style.Get("strike").Bool() {
		leaf = &ast.Strikethrough{Inlines: []ast.Inline{leaf}}
	}
	return leaf
}
