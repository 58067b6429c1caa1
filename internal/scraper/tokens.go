package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pfrederiksen/plaintext-sports/internal/sports"
)

// TokenKind classifies a piece of front-page text.
type TokenKind int

const (
	TokenOther TokenKind = iota
	TokenDayHeader
	TokenGameBox
)

func (k TokenKind) String() string {
	switch k {
	case TokenDayHeader:
		return "day"
	case TokenGameBox:
		return "box"
	default:
		return "other"
	}
}

// Token is one visible text run of the page, in document order.
type Token struct {
	Kind TokenKind
	Text string // collapsed text; raw multi-line text for game boxes
	Day  string // day label for TokenDayHeader
}

// blockTags end the current text run.
var blockTags = map[atom.Atom]bool{
	atom.Article: true, atom.Body: true, atom.Br: true, atom.Div: true,
	atom.Footer: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true, atom.Header: true,
	atom.Hr: true, atom.Li: true, atom.Main: true, atom.Ol: true,
	atom.P: true, atom.Pre: true, atom.Section: true, atom.Table: true,
	atom.Td: true, atom.Th: true, atom.Tr: true, atom.Ul: true,
}

// Tokenize flattens doc into text tokens. Each anchor becomes exactly one
// token carrying its full text, so a box split across inline markup still
// arrives whole. Text outside anchors is split at block boundaries.
func Tokenize(doc *goquery.Document) []Token {
	t := &tokenizer{}
	for _, n := range doc.Nodes {
		t.walk(n)
	}
	t.flush()
	return t.tokens
}

type tokenizer struct {
	tokens []Token
	buf    strings.Builder
}

func (t *tokenizer) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		t.buf.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Template:
			return
		case atom.A:
			t.flush()
			t.emitAnchor(nodeText(n))
			return
		}
	}

	block := n.Type == html.ElementNode && blockTags[n.DataAtom]
	if block {
		t.flush()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		t.walk(c)
	}
	if block {
		t.flush()
	}
}

func (t *tokenizer) flush() {
	text := collapse(t.buf.String())
	t.buf.Reset()
	if text == "" {
		return
	}
	if day, ok := dayLabel(text); ok {
		t.tokens = append(t.tokens, Token{Kind: TokenDayHeader, Text: text, Day: day})
		return
	}
	t.tokens = append(t.tokens, Token{Kind: TokenOther, Text: text})
}

func (t *tokenizer) emitAnchor(raw string) {
	if strings.Contains(raw, BoxMarker) {
		t.tokens = append(t.tokens, Token{Kind: TokenGameBox, Text: raw})
		return
	}
	if text := collapse(raw); text != "" {
		t.tokens = append(t.tokens, Token{Kind: TokenOther, Text: text})
	}
}

// dayLabel matches "Today" or "Sunday, January 12" style headings. The word
// before any comma must be a day label exactly.
func dayLabel(text string) (string, bool) {
	head := text
	if i := strings.IndexByte(text, ','); i >= 0 {
		head = text[:i]
	}
	head = strings.TrimSpace(head)
	if sports.IsDayLabel(head) {
		return head, true
	}
	return "", false
}

// nodeText concatenates descendant text, keeping line breaks from <br>.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			b.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
