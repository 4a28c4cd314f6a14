// Package format turns HTML fragments into plain text suitable for an email body.
package format

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var blockElements = map[string]bool{
	"address": true, "blockquote": true, "div": true, "dl": true, "dt": true, "dd": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"hr": true, "li": true, "ol": true, "p": true, "pre": true, "section": true,
	"table": true, "tr": true, "ul": true,
}

var skippedElements = map[string]bool{
	"head": true, "script": true, "style": true, "title": true,
}

// PlainText flattens an HTML fragment, such as a Gmail signature, into
// trimmed lines of text. Layout tables become one line per row; tables with
// headers or several columns keep their cells separated by " | ".
func PlainText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return strings.TrimSpace(fragment)
	}

	w := &textWriter{}
	for _, n := range nodes {
		w.walk(n)
	}

	return w.String()
}

type textWriter struct {
	lines []string
	cur   strings.Builder
	space bool
}

func (w *textWriter) String() string {
	w.newline()
	return strings.Join(w.lines, "\n")
}

func (w *textWriter) newline() {
	if line := strings.TrimSpace(w.cur.String()); line != "" {
		w.lines = append(w.lines, line)
	}
	w.cur.Reset()
	w.space = false
}

func (w *textWriter) text(s string) {
	words := strings.Fields(s)
	if len(words) == 0 {
		if s != "" {
			w.space = true
		}
		return
	}

	if first, _ := utf8.DecodeRuneInString(s); unicode.IsSpace(first) {
		w.space = true
	}
	if w.space && w.cur.Len() > 0 {
		w.cur.WriteByte(' ')
	}
	w.cur.WriteString(strings.Join(words, " "))

	last, _ := utf8.DecodeLastRuneInString(s)
	w.space = unicode.IsSpace(last)
}

func (w *textWriter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data)
		return
	case html.ElementNode:
	default:
		w.walkChildren(n)
		return
	}

	switch {
	case skippedElements[n.Data]:
		return
	case n.Data == "br":
		w.newline()
		return
	case n.Data == "table" && isDataTable(n):
		w.newline()
		w.dataTable(n)
		w.newline()
		return
	case blockElements[n.Data]:
		w.newline()
		w.walkChildren(n)
		w.newline()
		return
	}

	w.walkChildren(n)
	if n.Data == "td" || n.Data == "th" {
		w.space = true
	}
}

func (w *textWriter) walkChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *textWriter) dataTable(table *html.Node) {
	forEachElement(table, "tr", func(row *html.Node) {
		var cells []string
		for c := row.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
				continue
			}

			cw := &textWriter{}
			cw.walkChildren(c)
			if text := strings.ReplaceAll(cw.String(), "\n", " "); text != "" {
				cells = append(cells, text)
			}
		}

		if len(cells) > 0 {
			w.lines = append(w.lines, strings.Join(cells, " | "))
		}
	})
}

func isDataTable(table *html.Node) bool {
	return hasTableHeaders(table) || countTableColumns(table) > 1
}

func hasTableHeaders(table *html.Node) bool {
	found := false
	forEachElement(table, "th", func(*html.Node) { found = true })
	forEachElement(table, "thead", func(*html.Node) { found = true })
	return found
}

func countTableColumns(table *html.Node) int {
	maxCols := 0
	forEachElement(table, "tr", func(row *html.Node) {
		cols := 0
		for c := row.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
				cols++
			}
		}
		maxCols = max(maxCols, cols)
	})
	return maxCols
}

// forEachElement calls fn for every descendant element named tag, without
// descending into nested tables.
func forEachElement(root *html.Node, tag string, fn func(*html.Node)) {
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if c.Data == tag {
				fn(c)
			}
			if c.Data != "table" {
				visit(c)
			}
		}
	}
	visit(root)
}
