// Package verify aggregates the per-source search results into a single
// confidence-qualified verdict. Sources are queried concurrently and settle
// independently: one source failing never fails the verification call.
package verify

import (
	"context"
	"strings"
	"sync"

	"github.com/rashidk/tahqiq/internal/model"
	"github.com/rashidk/tahqiq/internal/source"
)

// Commentator produces optional plain-language commentary for a derived
// verdict. Commentary never affects the verdict itself.
type Commentator interface {
	Comment(ctx context.Context, verdict *model.Verdict) (*model.Commentary, error)
}

// Engine is the cross-source verification aggregator
type Engine struct {
	dorar       source.Adapter
	sunnah      source.Adapter
	commentator Commentator // nil when disabled
}

// NewEngine creates a verification engine over the two source adapters
func NewEngine(dorar, sunnah source.Adapter, commentator Commentator) *Engine {
	return &Engine{
		dorar:       dorar,
		sunnah:      sunnah,
		commentator: commentator,
	}
}

// Verify searches both sources for the given text concurrently and derives
// a consolidated verdict. Per-source failures are recorded in the verdict's
// SourceErrors; the call itself fails only on empty input.
func (e *Engine) Verify(ctx context.Context, text string) (*model.Verdict, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, model.ErrEmptyQuery
	}

	var (
		wg        sync.WaitGroup
		dorarRes  *model.QueryResult
		sunnahRes *model.QueryResult
		dorarErr  error
		sunnahErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		dorarRes, dorarErr = e.dorar.Search(ctx, text, 1)
	}()
	go func() {
		defer wg.Done()
		sunnahRes, sunnahErr = e.sunnah.Search(ctx, text, 1)
	}()
	wg.Wait()

	verdict := e.settle(dorarRes, dorarErr, sunnahRes, sunnahErr)

	if e.commentator != nil {
		if commentary, err := e.commentator.Comment(ctx, verdict); err == nil {
			verdict.Commentary = commentary
		}
	}

	return verdict, nil
}

// settle merges the two per-source outcomes into one verdict
func (e *Engine) settle(dorarRes *model.QueryResult, dorarErr error, sunnahRes *model.QueryResult, sunnahErr error) *model.Verdict {
	verdict := &model.Verdict{
		FoundIn:      map[model.SourceID]bool{},
		SourceErrors: map[model.SourceID]string{},
		Grades:       []model.GradeSighting{},
	}

	if dorarErr != nil {
		verdict.SourceErrors[model.SourceDorar] = dorarErr.Error()
	}
	if sunnahErr != nil {
		verdict.SourceErrors[model.SourceSunnah] = sunnahErr.Error()
	}

	verdict.FoundIn[model.SourceDorar] = dorarErr == nil && dorarRes != nil && len(dorarRes.Records) > 0
	verdict.FoundIn[model.SourceSunnah] = sunnahErr == nil && sunnahRes != nil && len(sunnahRes.Records) > 0

	var dorarRecords, sunnahRecords []model.Record
	if dorarErr == nil && dorarRes != nil {
		dorarRecords = dorarRes.Records
	}
	if sunnahErr == nil && sunnahRes != nil {
		sunnahRecords = sunnahRes.Records
	}

	verdict.TotalMatches = len(dorarRecords) + len(sunnahRecords)

	// Grades come from Dorar alone; Sunnah records only ever contribute
	// their collection to the attributed sources.
	for _, rec := range dorarRecords {
		g := model.Deref(rec.Grade)
		if g == "" {
			continue
		}

		attributed := model.Deref(rec.SourceBook)
		if attributed == "" {
			attributed = "درر"
		}

		verdict.Grades = append(verdict.Grades, model.GradeSighting{
			Grade:            g,
			Confidence:       rec.GradeConfidence,
			AttributedSource: attributed,
		})
	}

	verdict.AttributedSources = collectAttributedSources(dorarRecords, sunnahRecords)
	verdict.PrimaryGrade, verdict.PrimaryGradeConfidence = selectPrimaryGrade(verdict.Grades)
	verdict.Status = deriveStatus(verdict)

	var firstDorar *model.Record
	if len(dorarRecords) > 0 {
		firstDorar = &dorarRecords[0]
	}
	verdict.Narrative = buildNarrative(verdict.Status, verdict.PrimaryGrade, firstDorar, verdict.AttributedSources)

	return verdict
}

// collectAttributedSources dedups the book and collection names across both
// sources, keeping first-seen order
func collectAttributedSources(dorarRecords, sunnahRecords []model.Record) []string {
	seen := make(map[string]bool)
	var sources []string

	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			sources = append(sources, name)
		}
	}

	for _, rec := range dorarRecords {
		add(model.Deref(rec.SourceBook))
	}
	for _, rec := range sunnahRecords {
		add(model.Deref(rec.SourceBook))
	}

	return sources
}

// selectPrimaryGrade picks the authoritative grade: the first sighting with
// high confidence, else the first with medium, else the first at all. No
// extractor currently emits medium, so that branch only matters for future
// confidence tiers; it is kept deliberately.
func selectPrimaryGrade(sightings []model.GradeSighting) (string, model.Confidence) {
	for _, s := range sightings {
		if s.Confidence == model.ConfidenceHigh {
			return s.Grade, model.ConfidenceHigh
		}
	}
	for _, s := range sightings {
		if s.Confidence == model.ConfidenceMedium {
			return s.Grade, model.ConfidenceMedium
		}
	}
	if len(sightings) > 0 {
		return sightings[0].Grade, model.ConfidenceLow
	}
	return "", model.ConfidenceLow
}

// deriveStatus applies the status rules in order; first match wins
func deriveStatus(v *model.Verdict) model.Status {
	switch {
	case v.TotalMatches == 0:
		return model.StatusNotFound
	case v.PrimaryGrade != "":
		return model.StatusGraded
	case v.FoundIn[model.SourceDorar] && v.FoundIn[model.SourceSunnah]:
		return model.StatusVerified
	default:
		return model.StatusPartial
	}
}
