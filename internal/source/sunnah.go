package source

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rashidk/tahqiq/internal/cache"
	"github.com/rashidk/tahqiq/internal/fetch"
	"github.com/rashidk/tahqiq/internal/model"
)

// SunnahAdapter extracts bibliographic narrations from sunnah.com search
// pages. Sunnah carries no per-record grading metadata; its records
// contribute collection names to a verdict, never grades. The page's
// results-count banner is parsed separately from the list itself.
type SunnahAdapter struct {
	fetcher *fetch.Fetcher
	cache   cache.Cache
	baseURL string
}

// NewSunnah creates a Sunnah adapter
func NewSunnah(fetcher *fetch.Fetcher, c cache.Cache, baseURL string) *SunnahAdapter {
	return &SunnahAdapter{
		fetcher: fetcher,
		cache:   c,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// ID returns the source identifier
func (a *SunnahAdapter) ID() model.SourceID {
	return model.SourceSunnah
}

// Search queries sunnah.com for hadiths matching text
func (a *SunnahAdapter) Search(ctx context.Context, text string, page int) (*model.QueryResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, model.ErrEmptyQuery
	}
	if page <= 0 {
		page = 1
	}

	searchURL := fmt.Sprintf("%s/search?q=%s&page=%d", a.baseURL, url.QueryEscape(text), page)

	key := cache.Key(searchURL)
	if v, ok := a.cache.Get(key); ok {
		if result, ok := v.(*model.QueryResult); ok {
			return result, nil
		}
	}

	body, err := a.fetcher.Get(ctx, searchURL)
	if err != nil {
		return nil, model.NewSourceError(model.SourceSunnah, "search", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, model.NewSourceError(model.SourceSunnah, "search", err)
	}

	records := a.parseContainers(doc)

	total := parseResultsBanner(doc)
	if total < len(records) {
		total = len(records)
	}

	result := &model.QueryResult{
		Records:      records,
		TotalResults: total,
		SourceID:     model.SourceSunnah,
		Page:         page,
	}

	a.cache.Set(key, result)
	return result, nil
}

// parseContainers extracts one record per hadith container, in page order
func (a *SunnahAdapter) parseContainers(doc *goquery.Document) []model.Record {
	var records []model.Record

	doc.Find("div.actualHadithContainer").Each(func(_ int, s *goquery.Selection) {
		if rec, ok := a.parseContainer(s); ok {
			records = append(records, rec)
		}
	})

	return records
}

func (a *SunnahAdapter) parseContainer(s *goquery.Selection) (model.Record, bool) {
	arabic := cleanText(s.Find(".arabic_hadith_full .arabic_text_details").First().Text())
	english := cleanText(s.Find(".english_hadith_full .text_details").First().Text())

	text := arabic
	if text == "" {
		text = english
	} else if english != "" {
		text = arabic + "\n" + english
	}
	if text == "" {
		return model.Record{}, false
	}

	rec := model.Record{
		Text:            text,
		GradeConfidence: model.ConfidenceLow,
		SourceID:        model.SourceSunnah,
	}

	if narrated := cleanText(s.Find(".hadith_narrated").First().Text()); narrated != "" {
		rec.NarratorChain = model.Opt(narrated)
	}
	if collection := cleanText(s.Find(".collection_name").First().Text()); collection != "" {
		rec.SourceBook = model.Opt(collection)
	}
	if reference := cleanText(s.Find(".hadith_reference").Find("td").Last().Text()); reference != "" {
		rec.Locator = model.Opt(strings.TrimSpace(strings.TrimPrefix(reference, ":")))
	}

	return rec, true
}

var bannerCountRe = regexp.MustCompile(`\d+`)

// parseResultsBanner reads the total match count banner, 0 when absent.
// The banner reflects all pages, not just the rendered one.
func parseResultsBanner(doc *goquery.Document) int {
	banner := cleanText(doc.Find(".searchResultsHeader").First().Text())
	if banner == "" {
		return 0
	}

	m := bannerCountRe.FindString(banner)
	if m == "" {
		return 0
	}

	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// cleanText collapses runs of whitespace left over from pretty-printed markup
func cleanText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
