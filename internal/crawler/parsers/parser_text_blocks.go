package parsers

import (
	"strings"

	"golang.org/x/net/html"

	"wureport/internal/models"
)

// Elements that end a text block when flattening the page.
var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "tr": true, "td": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "ul": true, "ol": true, "table": true,
	"br": true, "header": true, "footer": true, "nav": true,
}

// TextBlocksStrategy is the resilient fallback: it flattens the page into
// visible-text blocks and keeps every block that mentions a KB number. It
// survives any layout change that keeps the text readable, at the cost of
// per-entry links (entries point back at the source page).
type TextBlocksStrategy struct{}

// NewTextBlocksStrategy creates the fallback strategy.
func NewTextBlocksStrategy() *TextBlocksStrategy {
	return &TextBlocksStrategy{}
}

// Name returns the strategy name.
func (s *TextBlocksStrategy) Name() string {
	return StrategyTextBlocks
}

// Extract returns one entry per KB-bearing text block.
func (s *TextBlocksStrategy) Extract(family, content, sourceURL string) []models.RawEntry {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil
	}

	var entries []models.RawEntry

	for _, block := range textBlocks(doc) {
		kbs := findKBs(block)
		if len(kbs) == 0 {
			continue
		}

		title := cleanTitle(headline(stringHelper.FirstLine(block)))
		if title == "" {
			continue
		}

		entries = append(entries, models.RawEntry{
			Family:    family,
			Title:     title,
			Date:      findDate(block),
			URL:       sourceURL,
			SourceURL: sourceURL,
			KBs:       kbs,
		})
	}

	return entries
}

// textBlocks flattens the document into groups of visible text, splitting
// at block-level element boundaries.
func textBlocks(doc *html.Node) []string {
	var blocks []string

	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			blocks = append(blocks, current.String())
			current.Reset()
		}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return
		}

		isBlock := n.Type == html.ElementNode && blockElements[n.Data]
		if isBlock {
			flush()
		}

		if n.Type == html.TextNode {
			trimmed := strings.TrimSpace(n.Data)
			if trimmed != "" {
				if current.Len() > 0 {
					current.WriteByte('\n')
				}

				current.WriteString(trimmed)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if isBlock {
			flush()
		}
	}
	walk(doc)

	flush()

	return blocks
}
