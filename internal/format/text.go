// Package format provides body normalization: HTML to plain text
// conversion and quoted-reply extraction.
package format

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

var tagPattern = regexp.MustCompile(`(?i)<[a-z][\s\S]*>`)

// sanitizer drops scripts, styles and event handlers before the text walk.
var sanitizer = bluemonday.UGCPolicy()

// LooksLikeHTML reports whether s appears to contain HTML markup.
func LooksLikeHTML(s string) bool {
	return tagPattern.MatchString(s)
}

// ToText converts HTML content to plain text, inserting line breaks at
// block-level boundaries. Input that fails to parse is returned stripped of
// anything the sanitizer rejects.
func ToText(htmlContent string) string {
	clean := sanitizer.Sanitize(htmlContent)

	doc, err := html.Parse(strings.NewReader(clean))
	if err != nil {
		return strings.TrimSpace(clean)
	}

	var buf bytes.Buffer
	writeText(&buf, doc)

	return collapseBlankLines(buf.String())
}

func writeText(buf *bytes.Buffer, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text != "" {
			if buf.Len() > 0 && !endsWithBreak(buf) {
				buf.WriteByte(' ')
			}
			buf.WriteString(text)
		}
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" || n.Data == "head" {
			return
		}
		if n.Data == "br" {
			buf.WriteByte('\n')
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(buf, c)
	}

	if n.Type == html.ElementNode && isBlockElement(n.Data) && buf.Len() > 0 && !endsWithBreak(buf) {
		buf.WriteByte('\n')
	}
}

func isBlockElement(tag string) bool {
	switch tag {
	case "p", "div", "li", "ul", "ol", "table", "tr", "h1", "h2", "h3",
		"h4", "h5", "h6", "blockquote", "pre", "section", "article":
		return true
	}
	return false
}

func endsWithBreak(buf *bytes.Buffer) bool {
	b := buf.Bytes()
	return len(b) > 0 && b[len(b)-1] == '\n'
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
