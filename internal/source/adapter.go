// Package source contains the per-site adapters that turn the external
// hadith sites' rendered HTML into normalized records. Each site's markup
// conventions live entirely inside its adapter; a site redesign is absorbed
// by replacing one adapter.
package source

import (
	"context"
	"strings"

	"golang.org/x/net/html"

	"github.com/rashidk/tahqiq/internal/cache"
	"github.com/rashidk/tahqiq/internal/fetch"
	"github.com/rashidk/tahqiq/internal/model"
)

// Adapter is the capability every external hadith source provides
type Adapter interface {
	// ID returns the source identifier
	ID() model.SourceID

	// Search queries the source for hadiths matching text. page defaults
	// to 1 when zero or negative. An empty text yields ErrEmptyQuery; a
	// page with no result blocks is a valid zero-match result, not an
	// error.
	Search(ctx context.Context, text string, page int) (*model.QueryResult, error)
}

// RelatedFetcher is the optional capability of sources that expose
// cross-linked narrations for a known hadith
type RelatedFetcher interface {
	// Similar returns narrations with related wording
	Similar(ctx context.Context, hadithID string) (*model.QueryResult, error)

	// Alternate returns the authentic alternate narration, or ErrNotFound
	// when the page carries none
	Alternate(ctx context.Context, hadithID string) (*model.Record, error)

	// Foundational returns the primary references (usul) the hadith's
	// wording derives from
	Foundational(ctx context.Context, hadithID string) (*model.FoundationalResult, error)
}

// baseAdapter bundles the fetch and cache plumbing shared by the concrete
// adapters, plus node-walk helpers for x/net/html document trees
type baseAdapter struct {
	fetcher *fetch.Fetcher
	cache   cache.Cache
}

// document fetches rawURL and parses it into a node tree
func (b *baseAdapter) document(ctx context.Context, rawURL string) (*html.Node, error) {
	body, err := b.fetcher.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return html.Parse(strings.NewReader(body))
}

// cached looks up a previously computed result for rawURL
func (b *baseAdapter) cached(rawURL string) (any, bool) {
	return b.cache.Get(cache.Key(rawURL))
}

// store memoizes a computed result under rawURL
func (b *baseAdapter) store(rawURL string, value any) {
	b.cache.Set(cache.Key(rawURL), value)
}

// extractText extracts the trimmed text content of a node subtree
func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}

	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		buf.WriteString(extractText(c))
		buf.WriteString(" ")
	}
	return strings.TrimSpace(buf.String())
}

// hasClass checks if a node carries a specific CSS class
func hasClass(n *html.Node, className string) bool {
	if n.Type != html.ElementNode {
		return false
	}

	for _, class := range strings.Fields(attr(n, "class")) {
		if class == className {
			return true
		}
	}
	return false
}

// attr gets an attribute value from a node, empty when absent
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// findAll finds all nodes matching a predicate, in document order
func findAll(n *html.Node, predicate func(*html.Node) bool) []*html.Node {
	var results []*html.Node

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if predicate(node) {
			results = append(results, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return results
}

// findFirst finds the first node matching a predicate, in document order
func findFirst(n *html.Node, predicate func(*html.Node) bool) *html.Node {
	var result *html.Node

	var walk func(*html.Node) bool
	walk = func(node *html.Node) bool {
		if predicate(node) {
			result = node
			return true
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}

	walk(n)
	return result
}

// element reports whether a node is an element with the given tag name
func element(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}
