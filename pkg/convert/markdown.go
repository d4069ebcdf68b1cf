package convert

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// skippedTags are subtrees excluded from traversal entirely. Their text
// never reaches the output, no matter how deeply they are nested.
var skippedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
}

// walker carries per-conversion state through the recursive descent.
type walker struct {
	config   *Config
	stats    *Stats
	maxDepth int
	tooDeep  bool
}

// formatChildren aggregates a node's direct children in document order:
// text children are whitespace-collapsed, trimmed, and followed by a single
// space; element children are dispatched through formatElement and appended
// verbatim.
func (w *walker) formatChildren(sb *strings.Builder, sel *goquery.Selection, depth int) {
	if depth > w.maxDepth {
		w.tooDeep = true
		return
	}

	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		if w.tooDeep {
			return
		}

		node := s.Nodes[0]
		switch node.Type {
		case html.TextNode:
			text := strings.Join(strings.Fields(node.Data), " ")
			if text != "" {
				sb.WriteString(text)
				sb.WriteString(" ")
			}

		case html.ElementNode:
			w.formatElement(sb, s, goquery.NodeName(s), depth)
		}
	})
}

// formatElement maps a tag name to its formatting rule. Dispatch is on tag
// name alone; unknown tags are transparent containers.
func (w *walker) formatElement(sb *strings.Builder, s *goquery.Selection, tag string, depth int) {
	if skippedTags[tag] {
		w.stats.RecordSkip(tag)
		return
	}

	w.stats.RecordTag(tag)

	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		// Headings carry flattened text only, never child markup.
		level := int(tag[1] - '0')
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("#", level))
		sb.WriteString(" ")
		sb.WriteString(w.flattenText(s, depth))
		sb.WriteString("\n\n")

	case "p":
		var body strings.Builder
		w.formatChildren(&body, s, depth+1)
		if text := strings.TrimSpace(body.String()); text != "" {
			sb.WriteString(text)
			sb.WriteString("\n\n")
		}

	case "div", "section", "article", "main":
		w.formatChildren(sb, s, depth+1)

	case "ul":
		w.formatList(sb, s, false, depth)

	case "ol":
		w.formatList(sb, s, true, depth)

	case "li":
		// Only meaningful inside list traversal. A stray li (outside a
		// list, or a non-li sibling's child) produces nothing.

	case "a":
		text := w.flattenText(s, depth)
		href, _ := s.Attr("href")
		if w.config.PreserveLinks && href != "" && text != "" {
			fmt.Fprintf(sb, "[%s](%s)", text, href)
		} else {
			sb.WriteString(text)
		}
		w.stats.Links++

	case "img":
		if w.config.PreserveImages {
			if src, _ := s.Attr("src"); src != "" {
				alt, _ := s.Attr("alt")
				fmt.Fprintf(sb, "![%s](%s)", alt, src)
				w.stats.Images++
			}
		}

	case "strong", "b":
		sb.WriteString("**")
		sb.WriteString(w.flattenText(s, depth))
		sb.WriteString("**")

	case "em", "i":
		sb.WriteString("*")
		sb.WriteString(w.flattenText(s, depth))
		sb.WriteString("*")

	case "code":
		sb.WriteString("`")
		sb.WriteString(w.flattenText(s, depth))
		sb.WriteString("`")

	case "pre":
		// Code blocks keep their whitespace verbatim; collapsing would
		// corrupt indentation-sensitive source.
		sb.WriteString("\n```\n")
		sb.WriteString(w.verbatimText(s, depth))
		sb.WriteString("\n```\n\n")

	case "blockquote":
		w.formatBlockquote(sb, s, depth)

	case "br":
		sb.WriteString("\n")

	case "hr":
		sb.WriteString("\n---\n\n")

	case "table":
		w.formatTable(sb, s, depth)

	default:
		// Transparent: span, em-like unknowns, custom elements, etc.
		w.formatChildren(sb, s, depth+1)
	}
}

// formatBlockquote prefixes every line of the aggregated child content with
// a quote marker. Blank interior lines get a bare ">". Leading indentation
// stays intact so a pre block inside a quote keeps its whitespace.
func (w *walker) formatBlockquote(sb *strings.Builder, s *goquery.Selection, depth int) {
	var body strings.Builder
	w.formatChildren(&body, s, depth+1)

	lines := strings.Split(strings.TrimSpace(body.String()), "\n")
	sb.WriteString("\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			sb.WriteString(">")
		} else {
			sb.WriteString("> ")
			sb.WriteString(line)
		}
		if i < len(lines)-1 {
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n\n")
}

// formatList flattens a list element. Only direct li children count: an li
// nested inside a sub-element surfaces when its own list is processed.
func (w *walker) formatList(sb *strings.Builder, list *goquery.Selection, ordered bool, depth int) {
	sb.WriteString("\n")
	n := 0
	list.Children().Each(func(_ int, li *goquery.Selection) {
		if w.tooDeep || goquery.NodeName(li) != "li" {
			return
		}
		n++

		var body strings.Builder
		w.formatChildren(&body, li, depth+1)
		item := strings.TrimSpace(body.String())

		if ordered {
			fmt.Fprintf(sb, "%d. %s\n", n, item)
		} else {
			fmt.Fprintf(sb, "- %s\n", item)
		}
	})
	sb.WriteString("\n")
	w.stats.Lists++
}

// formatTable flattens a table into pipe-delimited rows. A separator line is
// emitted after the first row only when that row contains at least one th
// cell; a td-only header row gets none.
func (w *walker) formatTable(sb *strings.Builder, table *goquery.Selection, depth int) {
	// Direct rows only: a table nested inside a td is flattened into that
	// cell's text and must not surface its rows here again.
	rows := table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").IsSelection(table)
	})
	if rows.Length() == 0 {
		return
	}

	sb.WriteString("\n\n")
	rows.Each(func(i int, tr *goquery.Selection) {
		if w.tooDeep {
			return
		}

		cells := tr.ChildrenFiltered("td, th")
		texts := make([]string, 0, cells.Length())
		cells.Each(func(_ int, cell *goquery.Selection) {
			text := w.flattenText(cell, depth)
			texts = append(texts, strings.ReplaceAll(text, "|", `\|`))
		})

		sb.WriteString("| ")
		sb.WriteString(strings.Join(texts, " | "))
		sb.WriteString(" |\n")

		if i == 0 && tr.ChildrenFiltered("th").Length() > 0 {
			seps := make([]string, len(texts))
			for j := range seps {
				seps[j] = "---"
			}
			sb.WriteString("| ")
			sb.WriteString(strings.Join(seps, " | "))
			sb.WriteString(" |\n")
		}
	})
	sb.WriteString("\n")
	w.stats.Tables++
}

// flattenText concatenates all descendant text, ignoring element structure,
// with whitespace runs collapsed to single spaces and the ends trimmed.
func (w *walker) flattenText(sel *goquery.Selection, depth int) string {
	var sb strings.Builder
	for _, n := range sel.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			w.collectText(&sb, c, depth+1)
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// verbatimText concatenates all descendant text with original whitespace
// preserved. Used for pre blocks.
func (w *walker) verbatimText(sel *goquery.Selection, depth int) string {
	var sb strings.Builder
	for _, n := range sel.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			w.collectText(&sb, c, depth+1)
		}
	}
	return sb.String()
}

// collectText gathers text nodes, still excluding skipped subtrees and still
// bounded by the depth limit.
func (w *walker) collectText(sb *strings.Builder, n *html.Node, depth int) {
	if depth > w.maxDepth {
		w.tooDeep = true
		return
	}

	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
	case html.ElementNode:
		if skippedTags[n.Data] {
			w.stats.RecordSkip(n.Data)
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.collectText(sb, c, depth+1)
	}
}
