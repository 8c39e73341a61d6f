package source

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/rashidk/tahqiq/internal/cache"
	"github.com/rashidk/tahqiq/internal/fetch"
	"github.com/rashidk/tahqiq/internal/grade"
	"github.com/rashidk/tahqiq/internal/model"
)

// DorarAdapter extracts graded narrations from dorar.net search and hadith
// pages. Dorar is the only source that carries per-record grading metadata,
// and the only one exposing similar/alternate/usul cross-links.
type DorarAdapter struct {
	baseAdapter
	baseURL string
}

// NewDorar creates a Dorar adapter
func NewDorar(fetcher *fetch.Fetcher, c cache.Cache, baseURL string) *DorarAdapter {
	return &DorarAdapter{
		baseAdapter: baseAdapter{fetcher: fetcher, cache: c},
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

// ID returns the source identifier
func (a *DorarAdapter) ID() model.SourceID {
	return model.SourceDorar
}

// Search queries dorar.net for hadiths matching text
func (a *DorarAdapter) Search(ctx context.Context, text string, page int) (*model.QueryResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, model.ErrEmptyQuery
	}
	if page <= 0 {
		page = 1
	}

	searchURL := fmt.Sprintf("%s/hadith/search?q=%s&page=%d", a.baseURL, url.QueryEscape(text), page)

	if v, ok := a.cached(searchURL); ok {
		if result, ok := v.(*model.QueryResult); ok {
			return result, nil
		}
	}

	doc, err := a.document(ctx, searchURL)
	if err != nil {
		return nil, model.NewSourceError(model.SourceDorar, "search", err)
	}

	records := a.parseBlocks(doc)

	result := &model.QueryResult{
		Records:      records,
		TotalResults: len(records),
		SourceID:     model.SourceDorar,
		Page:         page,
	}

	a.store(searchURL, result)
	return result, nil
}

// Similar returns the narrations dorar.net lists as related in wording to
// the given hadith
func (a *DorarAdapter) Similar(ctx context.Context, hadithID string) (*model.QueryResult, error) {
	pageURL := fmt.Sprintf("%s/hadith/similar/%s", a.baseURL, url.PathEscape(hadithID))

	if v, ok := a.cached(pageURL); ok {
		if result, ok := v.(*model.QueryResult); ok {
			return result, nil
		}
	}

	doc, err := a.document(ctx, pageURL)
	if err != nil {
		return nil, model.NewSourceError(model.SourceDorar, "similar", err)
	}

	records := a.parseBlocks(doc)

	result := &model.QueryResult{
		Records:      records,
		TotalResults: len(records),
		SourceID:     model.SourceDorar,
		Page:         1,
	}

	a.store(pageURL, result)
	return result, nil
}

// Alternate returns the authentic alternate narration of the given hadith.
// The alternate page lists the original hadith first and the alternate
// second; fewer than two blocks means no alternate exists.
func (a *DorarAdapter) Alternate(ctx context.Context, hadithID string) (*model.Record, error) {
	pageURL := fmt.Sprintf("%s/hadith/alternate/%s", a.baseURL, url.PathEscape(hadithID))

	if v, ok := a.cached(pageURL); ok {
		if record, ok := v.(*model.Record); ok {
			return record, nil
		}
	}

	doc, err := a.document(ctx, pageURL)
	if err != nil {
		return nil, model.NewSourceError(model.SourceDorar, "alternate", err)
	}

	records := a.parseBlocks(doc)
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: no alternate narration for hadith %s", model.ErrNotFound, hadithID)
	}

	record := &records[1]
	a.store(pageURL, record)
	return record, nil
}

// Foundational returns the primary references (usul) from which the
// hadith's wording derives. The first article on the page is the hadith
// itself and is skipped.
func (a *DorarAdapter) Foundational(ctx context.Context, hadithID string) (*model.FoundationalResult, error) {
	pageURL := fmt.Sprintf("%s/hadith/usul/%s", a.baseURL, url.PathEscape(hadithID))

	if v, ok := a.cached(pageURL); ok {
		if result, ok := v.(*model.FoundationalResult); ok {
			return result, nil
		}
	}

	doc, err := a.document(ctx, pageURL)
	if err != nil {
		return nil, model.NewSourceError(model.SourceDorar, "usul", err)
	}

	articles := findAll(doc, func(n *html.Node) bool {
		return element(n, "article")
	})

	var sources []model.FoundationalSource
	for i, article := range articles {
		if i == 0 {
			continue
		}
		if src, ok := a.parseFoundational(article); ok {
			sources = append(sources, src)
		}
	}

	result := &model.FoundationalResult{
		Sources: sources,
		Count:   len(sources),
	}

	a.store(pageURL, result)
	return result, nil
}

// parseBlocks extracts one record per result block, preserving document
// order. Result blocks are the div.border-bottom siblings whose first
// element child holds the hadith text and whose second holds the labeled
// metadata panel.
func (a *DorarAdapter) parseBlocks(doc *html.Node) []model.Record {
	blocks := findAll(doc, func(n *html.Node) bool {
		return element(n, "div") && hasClass(n, "border-bottom")
	})

	records := make([]model.Record, 0, len(blocks))
	for _, block := range blocks {
		if rec, ok := a.parseBlock(block); ok {
			records = append(records, rec)
		}
	}
	return records
}

func (a *DorarAdapter) parseBlock(block *html.Node) (model.Record, bool) {
	textNode, metaNode := firstTwoElementChildren(block)
	if textNode == nil {
		return model.Record{}, false
	}

	rec := model.Record{
		Text:            stripOrdinal(extractText(textNode)),
		GradeConfidence: model.ConfidenceLow,
		SourceID:        model.SourceDorar,
	}
	if rec.Text == "" {
		return model.Record{}, false
	}

	var rawGrade, rawExplanation, takhrij string
	if metaNode != nil {
		for _, pair := range labeledValues(metaNode) {
			switch canonicalLabel(pair.label) {
			case "الراوي":
				rec.NarratorChain = model.Opt(pair.value)
			case "المحدث":
				rec.GradingScholar = model.Opt(pair.value)
			case "المصدر":
				rec.SourceBook = model.Opt(pair.value)
			case "الصفحة أو الرقم":
				rec.Locator = model.Opt(pair.value)
			case "درجة الحديث":
				rawGrade = pair.value
			case "خلاصة حكم المحدث":
				rawExplanation = pair.value
			case "التخريج":
				takhrij = pair.value
			}
		}
	}

	// Takhrij backfills the attribution when the explicit source fields
	// are missing, e.g. "أخرجه البخاري (5063)"
	if takhrij != "" && rec.SourceBook == nil {
		book, locator := splitTakhrij(takhrij)
		rec.SourceBook = model.Opt(book)
		if rec.Locator == nil {
			rec.Locator = model.Opt(locator)
		}
	}

	g, confidence := grade.Normalize(rawGrade, rawExplanation)
	rec.Grade = model.Opt(g)
	rec.GradeExplanation = model.Opt(rawExplanation)
	rec.GradeConfidence = confidence

	rec.ExternalIDs = extractExternalIDs(block)
	rec.Flags = extractRelationFlags(block)

	return rec, true
}

// parseFoundational extracts one usul entry from an article node. The
// heading carries two styled spans (source name, narrator chain); the
// heading's remaining text is the transmitted wording.
func (a *DorarAdapter) parseFoundational(article *html.Node) (model.FoundationalSource, bool) {
	heading := findFirst(article, func(n *html.Node) bool {
		return element(n, "h4") || element(n, "h5")
	})
	if heading == nil {
		return model.FoundationalSource{}, false
	}

	sourceSpan := findFirst(heading, func(n *html.Node) bool {
		return element(n, "span") && hasClass(n, "primary-text-color")
	})
	chainSpan := findFirst(heading, func(n *html.Node) bool {
		return element(n, "span") && hasClass(n, "text-muted")
	})

	src := model.FoundationalSource{}
	if sourceSpan != nil {
		src.SourceName = extractText(sourceSpan)
	}
	if chainSpan != nil {
		src.NarratorChain = extractText(chainSpan)
	}

	var buf strings.Builder
	for c := heading.FirstChild; c != nil; c = c.NextSibling {
		if c == sourceSpan || c == chainSpan {
			continue
		}
		buf.WriteString(extractText(c))
		buf.WriteString(" ")
	}
	src.HadithText = stripOrdinal(strings.TrimSpace(buf.String()))

	if src.SourceName == "" && src.HadithText == "" {
		return model.FoundationalSource{}, false
	}
	return src, true
}

// firstTwoElementChildren returns the first two element children of a node
func firstTwoElementChildren(n *html.Node) (*html.Node, *html.Node) {
	var first, second *html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if first == nil {
			first = c
			continue
		}
		second = c
		break
	}
	return first, second
}

// labeledValue is one label/value pair scanned from a metadata panel
type labeledValue struct {
	label string
	value string
}

// labeledValues scans the metadata panel for bolded label elements and
// pairs each with the text that follows it inside the same parent
func labeledValues(panel *html.Node) []labeledValue {
	labels := findAll(panel, isLabelNode)

	pairs := make([]labeledValue, 0, len(labels))
	for _, label := range labels {
		name := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(extractText(label)), ":"))

		var buf strings.Builder
		for sib := label.NextSibling; sib != nil; sib = sib.NextSibling {
			if isLabelNode(sib) {
				break
			}
			buf.WriteString(extractText(sib))
			buf.WriteString(" ")
		}

		value := strings.TrimSpace(buf.String())
		value = strings.TrimSpace(strings.TrimPrefix(value, ":"))
		if name != "" && value != "" {
			pairs = append(pairs, labeledValue{label: name, value: value})
		}
	}

	return pairs
}

func isLabelNode(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if n.Data == "b" || n.Data == "strong" {
		return true
	}
	return n.Data == "span" && hasClass(n, "info-subtitle")
}

// labelSynonyms folds the label variants the site has used over time onto
// one canonical name per field
var labelSynonyms = map[string]string{
	"الراوي":           "الراوي",
	"المحدث":           "المحدث",
	"المصدر":           "المصدر",
	"الصفحة أو الرقم":  "الصفحة أو الرقم",
	"الرقم":            "الصفحة أو الرقم",
	"درجة الحديث":      "درجة الحديث",
	"الدرجة":           "درجة الحديث",
	"خلاصة حكم المحدث": "خلاصة حكم المحدث",
	"خلاصة الحكم":      "خلاصة حكم المحدث",
	"التخريج":          "التخريج",
}

func canonicalLabel(label string) string {
	return labelSynonyms[strings.TrimSpace(label)]
}

var (
	ordinalRe = regexp.MustCompile(`^\s*\d+\s*[-–—:.]\s*`)
	takhrijRe = regexp.MustCompile(`^(?:أخرجه\s+)?(.+?)\s*\(([^)]+)\)\s*$`)
	digitsRe  = regexp.MustCompile(`\d+`)
)

// stripOrdinal removes the leading result number and its separator, e.g.
// "12 - الحديث" becomes "الحديث"
func stripOrdinal(text string) string {
	return strings.TrimSpace(ordinalRe.ReplaceAllString(text, ""))
}

// splitTakhrij splits an attribution such as "أخرجه البخاري (5063)" into
// the book name and locator
func splitTakhrij(takhrij string) (string, string) {
	m := takhrijRe.FindStringSubmatch(strings.TrimSpace(takhrij))
	if m == nil {
		return strings.TrimSpace(takhrij), ""
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

// extractExternalIDs pulls follow-up lookup ids from card-reference anchor
// attributes. The attribute value carries a kind prefix and a numeric id,
// e.g. view-card="mhd-13456".
func extractExternalIDs(block *html.Node) model.ExternalIDs {
	ids := model.ExternalIDs{}

	anchors := findAll(block, func(n *html.Node) bool {
		return element(n, "a") && attr(n, "view-card") != ""
	})

	for _, anchor := range anchors {
		card := attr(anchor, "view-card")
		num := digitsRe.FindString(card)
		if num == "" {
			continue
		}

		switch {
		case strings.Contains(card, "mhd"):
			ids.ScholarID = num
		case strings.Contains(card, "book"):
			ids.BookID = num
		case strings.Contains(card, "sharh"):
			ids.ExplanationID = num
		}
	}

	return ids
}

// extractRelationFlags sets the cross-link flags from the mere presence of
// relation anchors on the block
func extractRelationFlags(block *html.Node) model.RelationFlags {
	flags := model.RelationFlags{}

	anchors := findAll(block, func(n *html.Node) bool {
		return element(n, "a") && attr(n, "href") != ""
	})

	for _, anchor := range anchors {
		href := attr(anchor, "href")
		switch {
		case strings.Contains(href, "similar"):
			flags.HasSimilar = true
		case strings.Contains(href, "alternate"):
			flags.HasAlternate = true
		case strings.Contains(href, "usul"):
			flags.HasFoundational = true
		}
	}

	return flags
}
