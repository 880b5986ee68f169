// Package parsers provides per-source extraction strategies for update-history pages.
//
// Microsoft reshuffles these pages without notice, so every strategy is
// best-effort: a selector miss yields zero entries, never an error. Each
// source names its strategy in the config; layout changes only require
// touching the one strategy that broke.
package parsers

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"wureport/internal/models"
	"wureport/pkg/utils"
)

// Strategy names.
const (
	StrategySupportTopic = "support-topic"
	StrategyTextBlocks   = "text-blocks"
)

// ErrUnknownStrategy indicates a config referenced a strategy that is not registered.
var ErrUnknownStrategy = errors.New("unknown extraction strategy")

// Strategy extracts update entries from one fetched page. Implementations
// return an empty slice when the expected structure is absent.
type Strategy interface {
	Name() string
	Extract(family, content, sourceURL string) []models.RawEntry
}

// Registry holds the known extraction strategies.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry creates a registry with all built-in strategies.
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[string]Strategy)}
	r.Register(NewSupportTopicStrategy())
	r.Register(NewTextBlocksStrategy())

	return r
}

// Register adds a strategy under its name.
func (r *Registry) Register(s Strategy) {
	r.strategies[s.Name()] = s
}

// ForName returns the strategy for the given name. An empty name selects
// the support-topic strategy.
func (r *Registry) ForName(name string) (Strategy, error) {
	if name == "" {
		name = StrategySupportTopic
	}

	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}

	return s, nil
}

// Names returns the registered strategy names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Patterns shared by all strategies.
var (
	// kbPattern matches knowledge-base article numbers like KB5034123.
	kbPattern = regexp.MustCompile(`\bKB\d{6,8}\b`)
	// datePattern matches English month-name dates like "November 6, 2025"
	// or "Nov 06, 2025", the formats seen on support pages.
	datePattern = regexp.MustCompile(`\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec|January|February|March|April|June|July|August|September|October|November|December)\.?\s+\d{1,2},\s+\d{4}\b`)
	// headlinePattern captures the phrase before the first dash or colon.
	headlinePattern = regexp.MustCompile(`^\s*(.*?)\s*(?:–|—|-|:)\s+`)
)

// maxTitleLength bounds titles copied into the report.
const maxTitleLength = 200

var (
	stripPolicy  = bluemonday.StrictPolicy()
	stringHelper = utils.NewStringHelper()
)

// cleanTitle strips any markup fragments from an extracted title and
// normalizes its whitespace.
func cleanTitle(s string) string {
	s = stripPolicy.Sanitize(s)
	s = html.UnescapeString(s)
	s = stringHelper.NormalizeWhitespace(s)

	return stringHelper.TruncateString(s, maxTitleLength)
}

// headline returns the phrase before the first dash or colon, or the whole
// line when there is none.
func headline(line string) string {
	if m := headlinePattern.FindStringSubmatch(line); m != nil && m[1] != "" {
		return m[1]
	}

	return line
}

// findKBs returns the unique KB numbers in text, uppercased and sorted.
func findKBs(text string) []string {
	seen := make(map[string]bool)

	var kbs []string

	for _, kb := range kbPattern.FindAllString(text, -1) {
		kb = strings.ToUpper(kb)
		if !seen[kb] {
			seen[kb] = true

			kbs = append(kbs, kb)
		}
	}

	sort.Strings(kbs)

	return kbs
}

// findDate returns the first month-name date in text, or "".
func findDate(text string) string {
	return datePattern.FindString(text)
}

// skippedElements are subtrees that never contribute visible text.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// nodeText collects the visible text under n, with single spaces between
// text nodes.
func nodeText(n *html.Node) string {
	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return
		}

		if n.Type == html.TextNode {
			trimmed := strings.TrimSpace(n.Data)
			if trimmed != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}

				b.WriteString(trimmed)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return b.String()
}

// attrValue returns the value of the named attribute on n, or "".
func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}

	return ""
}
