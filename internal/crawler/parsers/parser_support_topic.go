package parsers

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"wureport/internal/models"
	"wureport/pkg/utils"
)

// Selectors for support.microsoft.com topic pages. The update list is a
// column of anchors whose text carries the release date and KB number,
// e.g. "November 6, 2025 - KB5034123 (OS Builds 22621.3007)".
var (
	topicContentSel = cascadia.MustCompile("main, article, div#supArticleContent, div.ocpArticleContent")
	topicAnchorSel  = cascadia.MustCompile("a[href]")
)

// SupportTopicStrategy extracts update links from Microsoft support topic
// pages by CSS-selector matching.
type SupportTopicStrategy struct {
	httpHelper *utils.HTTPHelper
}

// NewSupportTopicStrategy creates the DOM-based strategy.
func NewSupportTopicStrategy() *SupportTopicStrategy {
	return &SupportTopicStrategy{
		httpHelper: utils.NewHTTPHelper(),
	}
}

// Name returns the strategy name.
func (s *SupportTopicStrategy) Name() string {
	return StrategySupportTopic
}

// Extract returns one entry per KB-bearing anchor in the page's content
// region. A page that fails to parse, or has no such anchors, yields nil.
func (s *SupportTopicStrategy) Extract(family, content, sourceURL string) []models.RawEntry {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil
	}

	scope := topicContentSel.MatchFirst(doc)
	if scope == nil {
		// No recognizable content region; scan the whole document.
		scope = doc
	}

	var entries []models.RawEntry

	seen := make(map[string]bool)

	for _, anchor := range topicAnchorSel.MatchAll(scope) {
		text := nodeText(anchor)

		kbs := findKBs(text)
		if len(kbs) == 0 {
			continue
		}

		title := cleanTitle(text)
		if title == "" {
			continue
		}

		// The same update is often linked from both the nav column and
		// the article body.
		key := title + "|" + strings.Join(kbs, ",")
		if seen[key] {
			continue
		}

		seen[key] = true

		entries = append(entries, models.RawEntry{
			Family:    family,
			Title:     title,
			Date:      findDate(text),
			URL:       s.httpHelper.ResolveURL(sourceURL, attrValue(anchor, "href")),
			SourceURL: sourceURL,
			KBs:       kbs,
		})
	}

	return entries
}
