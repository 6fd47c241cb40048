package title

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

/*
Best-effort title extraction from captured content. Capture tools produce
either Markdown or raw HTML; both shapes are probed. Absence of a title is
not an error: the caller falls back to the source URL for display.
*/

const maxTitleLength = 200

// Extract derives a display title from captured text. It returns the empty
// string when nothing usable is found.
func Extract(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ""
	}

	var extracted string
	if strings.HasPrefix(trimmed, "<") {
		extracted = htmlTitle(trimmed)
	} else {
		extracted = markdownTitle(trimmed)
	}

	extracted = strings.Join(strings.Fields(extracted), " ")
	if len(extracted) > maxTitleLength {
		extracted = extracted[:maxTitleLength]
	}
	return extracted
}

// htmlTitle prefers the <title> element and falls back to the first h1.
func htmlTitle(content string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}

	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// markdownTitle returns the text of the first heading in the document.
func markdownTitle(content string) string {
	p := parser.New()
	root := p.Parse([]byte(content))

	var found string
	ast.WalkFunc(root, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		if heading, ok := node.(*ast.Heading); ok {
			if text := headingText(heading); text != "" {
				found = text
				return ast.Terminate
			}
		}
		return ast.GoToNext
	})
	return found
}

// headingText concatenates the literal text of a heading's leaf nodes.
func headingText(heading *ast.Heading) string {
	var sb strings.Builder
	ast.WalkFunc(heading, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch leaf := node.(type) {
		case *ast.Text:
			sb.Write(leaf.Literal)
		case *ast.Code:
			sb.Write(leaf.Literal)
		}
		return ast.GoToNext
	})
	return strings.TrimSpace(sb.String())
}
