package ast

// Visitor is the dispatch contract every rewrite (ID→name mapping,
// callback mapping, the debug printer, feature extractors, …)
// implements. VisitBlock and VisitInline each receive a node with its
// children already substituted by the default traversal and return
// either the same node, a structurally replaced node of the same
// variant, or a node of a different variant entirely. Implementations
// are expected to type-switch exhaustively over the closed Block/Inline
// sets rather than rely on reflection.
type Visitor interface {
	VisitBlock(b Block) (Block, error)
	VisitInline(in Inline) (Inline, error)
}

// Walk performs the default depth-first, left-to-right traversal of doc,
// substituting each child's visited result into a freshly built parent
// before calling the visitor on the parent itself. The walker never
// re-enters a node's replacement: once VisitBlock/VisitInline returns,
// that value is final for this pass. It returns a new Document only if
// the visitor produced any change; otherwise doc is returned unmodified.
func Walk(doc *Document, v Visitor) (*Document, error) {
	blocks, changed, err := walkBlocks(doc.Blocks, v)
	if err != nil {
		return nil, err
	}
	if !changed {
		return doc, nil
	}
	return &Document{Blocks: blocks}, nil
}

func walkBlocks(blocks []Block, v Visitor) ([]Block, bool, error) {
	out := make([]Block, len(blocks))
	changed := false
	for i, b := range blocks {
		nb, err := walkBlock(b, v)
		if err != nil {
			return nil, false, err
		}
		if nb != b {
			changed = true
		}
		out[i] = nb
	}
	if !changed {
		return blocks, false, nil
	}
	return out, true, nil
}

func walkInlines(inlines []Inline, v Visitor) ([]Inline, bool, error) {
	out := make([]Inline, len(inlines))
	changed := false
	for i, in := range inlines {
		ni, err := walkInline(in, v)
		if err != nil {
			return nil, false, err
		}
		if ni != in {
			changed = true
		}
		out[i] = ni
	}
	if !changed {
		return inlines, false, nil
	}
	return out, true, nil
}

func walkBlock(b Block, v Visitor) (Block, error) {
	var rebuilt Block = b
	switch n := b.(type) {
	case *Paragraph:
		inlines, changed, err := walkInlines(n.Inlines, v)
		if err != nil {
			return nil, err
		}
		if changed {
			rebuilt = &Paragraph{Inlines: inlines}
		}
	case *Heading:
		inlines, changed, err := walkInlines(n.Inlines, v)
		if err != nil {
			return nil, err
		}
		if changed {
			rebuilt = &Heading{Level: n.Level, Inlines: inlines}
		}
	case *CodeBlock:
		// no children to walk.
	case *Quote:
		blocks, changed, err := walkBlocks(n.Blocks, v)
		if err != nil {
			return nil, err
		}
		if changed {
			rebuilt = &Quote{Blocks: blocks}
		}
	case *List:
		items, changed, err := walkListItems(n.Items, v)
		if err != nil {
			return nil, err
		}
		if changed {
			rebuilt = &List{Ordered: n.Ordered, Start: n.Start, Items: items}
		}
	case *HorizontalRule:
		// no children.
	default:
		// unreachable for the closed Block set.
	}
	return v.VisitBlock(rebuilt)
}

func walkListItems(items []ListItem, v Visitor) ([]ListItem, bool, error) {
	out := make([]ListItem, len(items))
	changed := false
	for i, item := range items {
		children := make([]Node, len(item.Children))
		itemChanged := false
		for j, child := range item.Children {
			nc, err := walkNode(child, v)
			if err != nil {
				return nil, false, err
			}
			if nc != child {
				itemChanged = true
			}
			children[j] = nc
		}
		if itemChanged {
			out[i] = ListItem{Children: children}
			changed = true
		} else {
			out[i] = item
		}
	}
	if !changed {
		return items, false, nil
	}
	return out, true, nil
}

// walkNode dispatches a ListItem child, which may be either a Block or
// an Inline, to the matching walker.
func walkNode(n Node, v Visitor) (Node, error) {
	switch x := n.(type) {
	case Block:
		nb, err := walkBlock(x, v)
		if err != nil {
			return nil, err
		}
		return nb.(Node), nil
	case Inline:
		ni, err := walkInline(x, v)
		if err != nil {
			return nil, err
		}
		return ni.(Node), nil
	default:
		return n, nil
	}
}

func walkInline(in Inline, v Visitor) (Inline, error) {
	var rebuilt Inline = in
	switch n := in.(type) {
	case *Text:
		// no children.
	case *Bold:
		inlines, changed, err := walkInlines(n.Inlines, v)
		if err != nil {
			return nil, err
		}
		if changed {
			rebuilt = &Bold{Inlines: inlines}
		}
	case *Italic:
		inlines, changed, err := walkInlines(n.Inlines, v)
		if err != nil {
			return nil, err
		}
		if changed {
			rebuilt = &Italic{Inlines: inlines}
		}
	case *Strikethrough:
		inlines, changed, err := walkInlines(n.Inlines, v)
		if err != nil {
			return nil, err
		}
		if changed {
			rebuilt = &Strikethrough{Inlines: inlines}
		}
	case *Code:
		// no children to walk.
	case *Link:
		inlines, changed, err := walkInlines(n.Inlines, v)
		if err != nil {
			return nil, err
		}
		if changed {
			rebuilt = &Link{URL: n.URL, Inlines: inlines}
		}
	case *UserMention, *ChannelMention, *UsergroupMention, *Broadcast, *Emoji, *DateTimestamp:
		// leaves: no children.
	default:
		// unreachable for the closed Inline set.
	}
	return v.VisitInline(rebuilt)
}
