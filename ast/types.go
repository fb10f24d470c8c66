// Package ast defines the common abstract syntax tree shared by the
// Rich Text, Mrkdwn, and GFM codecs. A tree is rooted at a single
// Document and is built from two closed sets of tagged variants, Block
// and Inline. Trees are conceptually immutable: nothing in this package
// mutates a node in place, and transformers (see the transform package)
// produce new trees by structural copy.
package ast

// Block is implemented by every node that may appear as a direct child
// of a Document, a Quote, or a ListItem.
type Block interface {
	blockNode()
}

// Inline is implemented by every node that may appear as a child of a
// paragraph, heading, list item, style wrapper, or link label.
type Inline interface {
	inlineNode()
}

// Document is the root of every tree. Blocks are in source order;
// adjacent paragraphs are never merged.
type Document struct {
	Blocks []Block
}

// Paragraph is a run of inline content terminated by a blank line (MK)
// or a block boundary (RT, GFM).
type Paragraph struct {
	Inlines []Inline
}

// Heading is a titled block, Level in 1..6.
type Heading struct {
	Level   int
	Inlines []Inline
}

// CodeBlock carries its content as final, verbatim text: it has no
// child inlines. Language is "" when unknown.
type CodeBlock struct {
	Content  string
	Language string
}

// Quote is a block quote; Blocks nest arbitrarily deep like Document's.
type Quote struct {
	Blocks []Block
}

// List is a bullet or ordered list. Start is the first item's ordinal
// and is only meaningful when Ordered is true; it defaults to 1.
type List struct {
	Ordered bool
	Start   int
	Items   []ListItem
}

// ListItem holds a mix of blocks and inlines: a bare line of text
// parses to inlines directly, a nested list or quote to a block.
type ListItem struct {
	Children []Node
}

// HorizontalRule is a thematic break with no content.
type HorizontalRule struct{}

// Node is satisfied by anything that can live inside a ListItem: every
// Block implementation except Document, and every Inline
// implementation, also implements Node.
type Node interface {
	node()
}

// Text is literal, unformatted content.
type Text struct {
	Text string
}

// Bold, Italic and Strikethrough are style wrappers: their Inlines are
// the marked-up content. They nest and compose freely; the RT codec
// flattens a chain of wrappers around a single run into per-text style
// flags, outermost-first: Strikethrough ⊃ Italic ⊃ Bold ⊃ Code ⊃ Text.
type Bold struct{ Inlines []Inline }
type Italic struct{ Inlines []Inline }
type Strikethrough struct{ Inlines []Inline }

// Code is an inline code span; like CodeBlock it carries no children.
type Code struct {
	Content string
}

// Link points at URL (never empty); an empty Inlines means "render the
// URL as the label".
type Link struct {
	URL     string
	Inlines []Inline
}

// UserMention, ChannelMention and UsergroupMention carry the canonical
// platform ID; the *Name fields are advisory display names, filled in
// by the ID→name transformer or left empty when unknown.
type UserMention struct {
	UserID   string
	Username string
}

type ChannelMention struct {
	ChannelID   string
	ChannelName string
}

type UsergroupMention struct {
	UsergroupID   string
	UsergroupName string
}

// BroadcastRange is the closed set of values Broadcast.Range accepts.
type BroadcastRange string

const (
	BroadcastHere     BroadcastRange = "here"
	BroadcastChannel  BroadcastRange = "channel"
	BroadcastEveryone BroadcastRange = "everyone"
)

// Valid reports whether r is one of the three recognized ranges.
func (r BroadcastRange) Valid() bool {
	switch r {
	case BroadcastHere, BroadcastChannel, BroadcastEveryone:
		return true
	default:
		return false
	}
}

type Broadcast struct {
	Range BroadcastRange
}

// Emoji is a `:name:` shortcode; Unicode is the resolved glyph when
// known, otherwise "".
type Emoji struct {
	Name    string
	Unicode string
}

// DateTimestamp is a platform-formatted instant. Format and Fallback
// are "" when absent.
type DateTimestamp struct {
	EpochSeconds int64
	Format       string
	Fallback     string
}

func (*Document) blockNode()       {}
func (*Paragraph) blockNode()      {}
func (*Heading) blockNode()        {}
func (*CodeBlock) blockNode()      {}
func (*Quote) blockNode()          {}
func (*List) blockNode()           {}
func (*HorizontalRule) blockNode() {}

func (*Text) inlineNode()             {}
func (*Bold) inlineNode()             {}
func (*Italic) inlineNode()           {}
func (*Strikethrough) inlineNode()    {}
func (*Code) inlineNode()             {}
func (*Link) inlineNode()             {}
func (*UserMention) inlineNode()      {}
func (*ChannelMention) inlineNode()   {}
func (*UsergroupMention) inlineNode() {}
func (*Broadcast) inlineNode()        {}
func (*Emoji) inlineNode()            {}
func (*DateTimestamp) inlineNode()    {}

func (*Paragraph) node()      {}
func (*Heading) node()        {}
func (*CodeBlock) node()      {}
func (*Quote) node()          {}
func (*List) node()           {}
func (*HorizontalRule) node() {}

func (*Text) node()             {}
func (*Bold) node()             {}
func (*Italic) node()           {}
func (*Strikethrough) node()    {}
func (*Code) node()             {}
func (*Link) node()             {}
func (*UserMention) node()      {}
func (*ChannelMention) node()   {}
func (*UsergroupMention) node() {}
func (*Broadcast) node()        {}
func (*Emoji) node()            {}
func (*DateTimestamp) node()    {}
