// Package lexer implements the two-state mrkdwn tokenizer: a small
// state machine that toggles OUTSIDE/INSIDE_FENCE rules on a literal
// ``` run and, while OUTSIDE, tries a fixed, ordered list of rules at
// each position, reading the input one rune at a time via a read/peek
// cursor.
package lexer

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/insomnimus/slackfmt/mrkdwn/token"
)

type state int

const (
	outside state = iota
	insideFence
)

type Lexer struct {
	doc          []rune
	ch           rune
	pos, readpos int
	line, col    int
	state        state
	warnings     []string
}

func New(s string) *Lexer {
	s = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(s)
	l := &Lexer{doc: []rune(s), line: 1}
	l.read()
	return l
}

func (l *Lexer) Warnings() []string { return l.warnings }

// Tokens drains the lexer into a slice, for callers (the parser, and
// tests) that would rather not drive Next() themselves.
func (l *Lexer) Tokens() []token.Token {
	var out []token.Token
	for {
		t := l.Next()
		out = append(out, t)
		if t.Kind == token.EOF {
			return out
		}
	}
}

// Next produces the next token, dispatching to the fence rules while
// INSIDE_FENCE and to the ordered OUTSIDE rules otherwise.
func (l *Lexer) Next() token.Token {
	if l.ch == 0 {
		return l.tok(token.EOF, "")
	}
	if l.state == insideFence {
		return l.nextInsideFence()
	}
	return l.nextOutside()
}

func (l *Lexer) nextOutside() token.Token {
	ln, col := l.line, l.col

	// Rule 1: fence open.
	if l.ch == '`' && l.peek() == '`' && l.peekN(2) == '`' {
		l.read()
		l.read()
		l.read()
		l.state = insideFence
		return token.Token{Kind: token.FenceOpen, Text: "```", Line: ln, Col: col}
	}

	// Rule 2: angle-bracketed content.
	if l.ch == '<' {
		if t, ok := l.lexAngle(ln, col); ok {
			return t
		}
	}

	// Rule 3: inline code span.
	if l.ch == '`' {
		return l.lexInlineCode(ln, col)
	}

	// Rules 4-6: bold/italic/strike markers. A marker is only ever
	// literal (not a candidate open or close) when it's glued to an
	// alphanumeric on both sides at once, e.g. the underscores in
	// "foo_bar_baz" — a closing marker is normally glued to its
	// preceding word ("*bold*") so gluing on one side alone must stay
	// eligible. The parser's frame stack (toggleFrame) decides whether
	// a given occurrence opens or closes; a marker that never finds a
	// partner degrades back to its literal rune when the paragraph ends
	// (unwindFrames), so no forward lookahead is needed here. A '*'
	// followed by a space at the start of a line is left to rule 7,
	// which lexes it as a bullet marker.
	if l.ch == '*' && !(l.peek() == ' ' && l.startOfLine()) && isWordBoundaryDelim(l.doc, l.pos) {
		l.read()
		return token.Token{Kind: token.BoldMarker, Text: "*", Line: ln, Col: col}
	}
	if l.ch == '_' && isWordBoundaryDelim(l.doc, l.pos) {
		l.read()
		return token.Token{Kind: token.ItalicMarker, Text: "_", Line: ln, Col: col}
	}
	if l.ch == '~' && isWordBoundaryDelim(l.doc, l.pos) {
		l.read()
		return token.Token{Kind: token.StrikeMarker, Text: "~", Line: ln, Col: col}
	}

	// Rule 7: line-start markers.
	if l.startOfLine() {
		if t, ok := l.lexLineMarker(ln, col); ok {
			return t
		}
	}

	// Newlines and blank lines.
	if l.ch == '\n' {
		if l.peek() == '\n' {
			l.read()
			for l.ch == '\n' {
				l.read()
			}
			return token.Token{Kind: token.BlankLine, Line: ln, Col: col}
		}
		l.read()
		return token.Token{Kind: token.Newline, Text: "\n", Line: ln, Col: col}
	}

	// Rule 8: backslash escapes.
	if l.ch == '\\' && isEscapable(l.peek()) {
		esc := l.peek()
		l.read()
		l.read()
		return token.Token{Kind: token.Text, Text: string(esc), Line: ln, Col: col}
	}

	// Rule 9a: `:shortcode:` emoji, an opportunistic match up to the
	// next ':' tried before the catch-all so that Emoji tokens are still
	// recognized from ordinary prose.
	if l.ch == ':' {
		if t, ok := l.lexEmoji(ln, col); ok {
			return t
		}
	}

	// Rule 9: fallback text run, stopping before the next special rune.
	return l.lexText(ln, col)
}

func (l *Lexer) nextInsideFence() token.Token {
	ln, col := l.line, l.col
	if l.ch == '`' && l.peek() == '`' && l.peekN(2) == '`' {
		l.read()
		l.read()
		l.read()
		l.state = outside
		return token.Token{Kind: token.FenceClose, Text: "```", Line: ln, Col: col}
	}
	if l.ch == '<' {
		if url, end, ok := fenceAngleURL(l.doc, l.pos); ok {
			l.setPos(end)
			return token.Token{Kind: token.Text, Text: url, Line: ln, Col: col}
		}
	}
	var b strings.Builder
	for l.ch != 0 {
		if l.ch == '`' && l.peek() == '`' && l.peekN(2) == '`' {
			break
		}
		if l.ch == '<' {
			if _, _, ok := fenceAngleURL(l.doc, l.pos); ok {
				break
			}
		}
		b.WriteRune(l.ch)
		l.read()
	}
	return token.Token{Kind: token.Text, Text: b.String(), Line: ln, Col: col}
}

// fenceAngleURL recognizes <X> where X starts with a URL scheme whose
// angle brackets are stripped inside a fence (the INSIDE_FENCE rules).
func fenceAngleURL(doc []rune, pos int) (url string, end int, ok bool) {
	if doc[pos] != '<' {
		return "", 0, false
	}
	for i := pos + 1; i < len(doc); i++ {
		if doc[i] == '\n' {
			return "", 0, false
		}
		if doc[i] == '>' {
			content := string(doc[pos+1 : i])
			if hasURLScheme(content) {
				return content, i + 1, true
			}
			return "", 0, false
		}
	}
	return "", 0, false
}

func hasURLScheme(s string) bool {
	for _, scheme := range []string{"http://", "https://", "mailto:"} {
		if strings.HasPrefix(s, scheme) {
			return true
		}
	}
	return false
}

func (l *Lexer) lexInlineCode(ln, col int) token.Token {
	backup := l.pos
	l.read() // consume opening backtick
	var b strings.Builder
	for {
		switch l.ch {
		case '`':
			l.read()
			return token.Token{Kind: token.InlineCode, Text: b.String(), Line: ln, Col: col}
		case 0, '\n':
			l.warn("unterminated inline code span")
			l.setPos(backup)
			l.read()
			return token.Token{Kind: token.Text, Text: "`", Line: ln, Col: col}
		default:
			b.WriteRune(l.ch)
			l.read()
		}
	}
}

// lexEmoji matches a ':'-delimited run of one or more letters, digits,
// '_', '+' or '-' (Unicode letters and digits included) starting at the
// current ':'.
func (l *Lexer) lexEmoji(ln, col int) (token.Token, bool) {
	end := -1
	for i := l.pos + 1; i < len(l.doc); i++ {
		c := l.doc[i]
		if c == ':' {
			end = i
			break
		}
		if !(unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '+' || c == '-') {
			return token.Token{}, false
		}
	}
	if end <= l.pos+1 {
		return token.Token{}, false
	}
	name := string(l.doc[l.pos+1 : end])
	l.setPos(end + 1)
	return token.Token{Kind: token.Emoji, Text: name, Line: ln, Col: col}, true
}

func (l *Lexer) lexText(ln, col int) token.Token {
	var b strings.Builder
	for {
		switch l.ch {
		case 0, '\n', '`', '<', '*', '_', '~', '\\', ':':
			if b.Len() == 0 {
				b.WriteRune(l.ch)
				l.read()
			}
			return token.Token{Kind: token.Text, Text: b.String(), Line: ln, Col: col}
		default:
			b.WriteRune(l.ch)
			l.read()
		}
	}
}

// lexLineMarker implements rule 7: quote markers, bullet markers, and
// ordered-list markers recognized only at (indentation-tolerant) start
// of line.
func (l *Lexer) lexLineMarker(ln, col int) (token.Token, bool) {
	if l.ch == '&' && l.aheadIs("&gt;") {
		l.read()
		l.read()
		l.read()
		l.read()
		if l.ch == ' ' {
			l.read()
		}
		return token.Token{Kind: token.QuoteMarker, Line: ln, Col: col}, true
	}
	if l.ch == '>' && l.peek() == ' ' {
		l.read()
		l.read()
		return token.Token{Kind: token.QuoteMarker, Line: ln, Col: col}, true
	}
	if (l.ch == '•' || l.ch == '*') && l.peek() == ' ' {
		l.read()
		l.read()
		return token.Token{Kind: token.ListMarker, Ordered: false, Line: ln, Col: col}, true
	}
	if unicode.IsDigit(l.ch) {
		start := l.pos
		i := l.pos
		for i < len(l.doc) && unicode.IsDigit(l.doc[i]) {
			i++
		}
		if i+1 < len(l.doc) && l.doc[i] == '.' && l.doc[i+1] == ' ' {
			n, _ := strconv.Atoi(string(l.doc[start:i]))
			l.setPos(i + 1)
			l.read()
			return token.Token{Kind: token.ListMarker, Ordered: true, Number: n, Line: ln, Col: col}, true
		}
	}
	return token.Token{}, false
}

func (l *Lexer) lexAngle(ln, col int) (token.Token, bool) {
	end := -1
	for i := l.pos + 1; i < len(l.doc); i++ {
		if l.doc[i] == '>' {
			end = i
			break
		}
		if l.doc[i] == '\n' {
			break
		}
	}
	if end < 0 {
		return token.Token{}, false
	}
	content := string(l.doc[l.pos+1 : end])
	t, ok := classifyAngle(content)
	if !ok {
		l.setPos(end + 1)
		return token.Token{Kind: token.Text, Text: "<" + content + ">", Line: ln, Col: col}, true
	}
	t.Line, t.Col = ln, col
	l.setPos(end + 1)
	return t, true
}

// classifyAngle dispatches the content of an angle-bracketed span to
// its matching token kind: mentions, broadcasts, dates, and links.
func classifyAngle(content string) (token.Token, bool) {
	switch {
	case strings.HasPrefix(content, "@U"):
		id, name := splitPipe(content[1:])
		return token.Token{Kind: token.UserMention, Text: id, Name: name}, true
	case strings.HasPrefix(content, "#C"):
		id, name := splitPipe(content[1:])
		return token.Token{Kind: token.ChannelMention, Text: id, Name: name}, true
	case strings.HasPrefix(content, "!subteam^S"):
		id, name := splitPipe(content[len("!subteam^"):])
		return token.Token{Kind: token.UsergroupMention, Text: id, Name: name}, true
	case strings.HasPrefix(content, "!here"), strings.HasPrefix(content, "!channel"), strings.HasPrefix(content, "!everyone"):
		rng, name := splitPipe(content[1:])
		if rng != "here" && rng != "channel" && rng != "everyone" {
			return token.Token{}, false
		}
		return token.Token{Kind: token.Broadcast, Range: rng, Name: name}, true
	case strings.HasPrefix(content, "!date^"):
		return classifyDate(content)
	default:
		body, label := splitPipe(content)
		if hasURLScheme(body) {
			return token.Token{Kind: token.Link, URL: body, Name: label}, true
		}
		return token.Token{}, false
	}
}

// classifyDate parses !date^<unix>^<format>|<fallback>.
func classifyDate(content string) (token.Token, bool) {
	body := content[len("!date^"):]
	fallback := ""
	if i := strings.IndexByte(body, '|'); i >= 0 {
		fallback = body[i+1:]
		body = body[:i]
	}
	parts := strings.SplitN(body, "^", 2)
	epoch, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return token.Token{}, false
	}
	format := ""
	if len(parts) > 1 {
		format = parts[1]
	}
	return token.Token{
		Kind:         token.DateToken,
		EpochSeconds: epoch,
		Format:       format,
		Fallback:     fallback,
	}, true
}

func splitPipe(s string) (body, label string) {
	if i := strings.IndexByte(s, '|'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

func isEscapable(r rune) bool {
	switch r {
	case '<', '>', '*', '_', '~', '`':
		return true
	default:
		return false
	}
}

func precededByAlnum(doc []rune, pos int) bool {
	if pos == 0 {
		return false
	}
	r := doc[pos-1]
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func followedByAlnum(doc []rune, pos int) bool {
	if pos+1 >= len(doc) {
		return false
	}
	r := doc[pos+1]
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isWordBoundaryDelim reports whether the delimiter at pos is usable as
// a style marker: it must not be glued to an alphanumeric on both sides
// at once (that pattern is a literal mid-word rune, e.g. the
// underscores in "foo_bar_baz"). Gluing on exactly one side is normal —
// an opening marker is glued right ("*bold"), a closing one glued left
// ("bold*") — so either alone stays eligible.
func isWordBoundaryDelim(doc []rune, pos int) bool {
	return !(precededByAlnum(doc, pos) && followedByAlnum(doc, pos))
}

func (l *Lexer) read() {
	if l.readpos >= len(l.doc) {
		l.ch = 0
	} else {
		l.ch = l.doc[l.readpos]
	}
	l.col++
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	l.pos = l.readpos
	l.readpos++
}

func (l *Lexer) peek() rune { return l.peekN(1) }

func (l *Lexer) peekN(n int) rune {
	i := l.pos + n
	if i < 0 || i >= len(l.doc) {
		return 0
	}
	return l.doc[i]
}

func (l *Lexer) aheadIs(s string) bool {
	r := []rune(s)
	if l.pos+len(r) > len(l.doc) {
		return false
	}
	for i, c := range r {
		if l.doc[l.pos+i] != c {
			return false
		}
	}
	return true
}

func (l *Lexer) setPos(pos int) {
	if pos >= len(l.doc) {
		l.pos = len(l.doc)
		l.readpos = l.pos + 1
		l.ch = 0
		return
	}
	l.pos = pos
	l.readpos = pos + 1
	l.ch = l.doc[pos]
}

func (l *Lexer) startOfLine() bool {
	if l.pos == 0 {
		return true
	}
	for i := l.pos - 1; i >= 0; i-- {
		if l.doc[i] == '\n' {
			return true
		}
		if !unicode.IsSpace(l.doc[i]) {
			return false
		}
	}
	return true
}

func (l *Lexer) tok(k token.Kind, s string) token.Token {
	return token.Token{Kind: k, Text: s, Line: l.line, Col: l.col}
}

func (l *Lexer) warn(format string) {
	l.warnings = append(l.warnings, format)
}
