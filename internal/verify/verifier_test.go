package verify

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rashidk/tahqiq/internal/model"
)

// fakeAdapter is a canned source adapter for engine tests
type fakeAdapter struct {
	id     model.SourceID
	result *model.QueryResult
	err    error
	delay  time.Duration
	calls  atomic.Int32
}

func (f *fakeAdapter) ID() model.SourceID {
	return f.id
}

func (f *fakeAdapter) Search(ctx context.Context, text string, page int) (*model.QueryResult, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.result, f.err
}

func dorarRecord(text, grade, book string) model.Record {
	rec := model.Record{
		Text:            text,
		SourceID:        model.SourceDorar,
		GradeConfidence: model.ConfidenceLow,
	}
	if grade != "" {
		rec.Grade = model.Opt(grade)
		rec.GradeConfidence = model.ConfidenceHigh
	}
	rec.SourceBook = model.Opt(book)
	return rec
}

func sunnahRecord(text, collection string) model.Record {
	return model.Record{
		Text:            text,
		SourceID:        model.SourceSunnah,
		SourceBook:      model.Opt(collection),
		GradeConfidence: model.ConfidenceLow,
	}
}

func queryResult(id model.SourceID, records ...model.Record) *model.QueryResult {
	return &model.QueryResult{
		Records:      records,
		TotalResults: len(records),
		SourceID:     id,
		Page:         1,
	}
}

func TestVerify_EmptyText(t *testing.T) {
	engine := NewEngine(&fakeAdapter{id: model.SourceDorar}, &fakeAdapter{id: model.SourceSunnah}, nil)
	_, err := engine.Verify(context.Background(), "  ")
	if !errors.Is(err, model.ErrEmptyQuery) {
		t.Errorf("Expected ErrEmptyQuery, got %v", err)
	}
}

func TestVerify_StatusDerivation(t *testing.T) {
	tests := []struct {
		name       string
		dorar      *model.QueryResult
		sunnah     *model.QueryResult
		wantStatus model.Status
		wantTotal  int
		wantGrade  string
	}{
		{
			name:       "no matches anywhere",
			dorar:      queryResult(model.SourceDorar),
			sunnah:     queryResult(model.SourceSunnah),
			wantStatus: model.StatusNotFound,
		},
		{
			name: "graded beats verified",
			dorar: queryResult(model.SourceDorar,
				dorarRecord("الحديث", "حسن", "سنن الترمذي"),
				dorarRecord("الحديث بلفظ آخر", "", "مسند أحمد"),
			),
			sunnah:     queryResult(model.SourceSunnah, sunnahRecord("wording", "Jami` at-Tirmidhi")),
			wantStatus: model.StatusGraded,
			wantTotal:  3,
			wantGrade:  "حسن",
		},
		{
			name:       "found in both without grade",
			dorar:      queryResult(model.SourceDorar, dorarRecord("الحديث", "", "مسند أحمد")),
			sunnah:     queryResult(model.SourceSunnah, sunnahRecord("wording", "Sunan Abi Dawud")),
			wantStatus: model.StatusVerified,
			wantTotal:  2,
		},
		{
			name:       "found in one source only",
			dorar:      queryResult(model.SourceDorar),
			sunnah:     queryResult(model.SourceSunnah, sunnahRecord("wording", "Sunan Abi Dawud")),
			wantStatus: model.StatusPartial,
			wantTotal:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(
				&fakeAdapter{id: model.SourceDorar, result: tt.dorar},
				&fakeAdapter{id: model.SourceSunnah, result: tt.sunnah},
				nil,
			)

			verdict, err := engine.Verify(context.Background(), "الحديث")
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			if verdict.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", verdict.Status, tt.wantStatus)
			}
			if verdict.TotalMatches != tt.wantTotal {
				t.Errorf("TotalMatches = %d, want %d", verdict.TotalMatches, tt.wantTotal)
			}
			if verdict.PrimaryGrade != tt.wantGrade {
				t.Errorf("PrimaryGrade = %q, want %q", verdict.PrimaryGrade, tt.wantGrade)
			}
		})
	}
}

func TestVerify_PartialFailureIsolation(t *testing.T) {
	dorar := &fakeAdapter{
		id:  model.SourceDorar,
		err: model.NewSourceError(model.SourceDorar, "search", fmt.Errorf("unexpected status: 502")),
	}
	sunnah := &fakeAdapter{
		id: model.SourceSunnah,
		result: queryResult(model.SourceSunnah,
			sunnahRecord("first wording", "Sahih Muslim"),
			sunnahRecord("second wording", "Sunan an-Nasa'i"),
		),
	}

	engine := NewEngine(dorar, sunnah, nil)
	verdict, err := engine.Verify(context.Background(), "الحديث")
	if err != nil {
		t.Fatalf("Expected verification to succeed despite source failure, got %v", err)
	}

	if verdict.SourceErrors[model.SourceDorar] == "" {
		t.Error("Expected dorar error to be recorded")
	}
	if _, ok := verdict.SourceErrors[model.SourceSunnah]; ok {
		t.Error("Did not expect sunnah error")
	}
	if verdict.FoundIn[model.SourceDorar] {
		t.Error("Expected FoundIn[dorar] = false")
	}
	if !verdict.FoundIn[model.SourceSunnah] {
		t.Error("Expected FoundIn[sunnah] = true")
	}
	if verdict.TotalMatches != 2 {
		t.Errorf("TotalMatches = %d, want 2", verdict.TotalMatches)
	}
	if verdict.PrimaryGrade != "" {
		t.Errorf("Expected no grade from sunnah-only results, got %q", verdict.PrimaryGrade)
	}
	if verdict.Status != model.StatusPartial {
		t.Errorf("Status = %s, want %s", verdict.Status, model.StatusPartial)
	}

	// Narrative still derives from the bibliographic sources
	if verdict.Narrative.Message == "" {
		t.Error("Expected a narrative despite the failed source")
	}
	want := []string{"Sahih Muslim", "Sunan an-Nasa'i"}
	if !reflect.DeepEqual(verdict.AttributedSources, want) {
		t.Errorf("AttributedSources = %v, want %v", verdict.AttributedSources, want)
	}
}

func TestVerify_BothSourcesFail(t *testing.T) {
	engine := NewEngine(
		&fakeAdapter{id: model.SourceDorar, err: fmt.Errorf("boom")},
		&fakeAdapter{id: model.SourceSunnah, err: fmt.Errorf("boom")},
		nil,
	)

	verdict, err := engine.Verify(context.Background(), "الحديث")
	if err != nil {
		t.Fatalf("Expected settle-all to succeed, got %v", err)
	}
	if len(verdict.SourceErrors) != 2 {
		t.Errorf("Expected 2 source errors, got %d", len(verdict.SourceErrors))
	}
	if verdict.Status != model.StatusNotFound {
		t.Errorf("Status = %s, want %s", verdict.Status, model.StatusNotFound)
	}
}

func TestVerify_SourcesQueriedConcurrently(t *testing.T) {
	const delay = 150 * time.Millisecond
	dorar := &fakeAdapter{id: model.SourceDorar, result: queryResult(model.SourceDorar), delay: delay}
	sunnah := &fakeAdapter{id: model.SourceSunnah, result: queryResult(model.SourceSunnah), delay: delay}

	engine := NewEngine(dorar, sunnah, nil)

	start := time.Now()
	if _, err := engine.Verify(context.Background(), "الحديث"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	elapsed := time.Since(start)

	if dorar.calls.Load() != 1 || sunnah.calls.Load() != 1 {
		t.Errorf("Expected each source queried once, got %d/%d", dorar.calls.Load(), sunnah.calls.Load())
	}
	// Sequential calls would take at least 2x the delay
	if elapsed >= 2*delay {
		t.Errorf("Expected concurrent source calls, took %v", elapsed)
	}
}

func TestVerify_GradesComeFromDorarOnly(t *testing.T) {
	engine := NewEngine(
		&fakeAdapter{id: model.SourceDorar, result: queryResult(model.SourceDorar,
			dorarRecord("الحديث", "صحيح", "صحيح البخاري"),
			dorarRecord("لفظ آخر", "حسن", ""),
		)},
		&fakeAdapter{id: model.SourceSunnah, result: queryResult(model.SourceSunnah,
			sunnahRecord("wording", "Sahih al-Bukhari"),
		)},
		nil,
	)

	verdict, err := engine.Verify(context.Background(), "الحديث")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(verdict.Grades) != 2 {
		t.Fatalf("Expected 2 grade sightings, got %d", len(verdict.Grades))
	}
	if verdict.Grades[0].AttributedSource != "صحيح البخاري" {
		t.Errorf("Unexpected attribution: %q", verdict.Grades[0].AttributedSource)
	}
	// A record without a source book attributes to the site itself
	if verdict.Grades[1].AttributedSource != "درر" {
		t.Errorf("Expected fallback attribution درر, got %q", verdict.Grades[1].AttributedSource)
	}

	want := []string{"صحيح البخاري", "Sahih al-Bukhari"}
	if !reflect.DeepEqual(verdict.AttributedSources, want) {
		t.Errorf("AttributedSources = %v, want %v", verdict.AttributedSources, want)
	}
}

func TestSelectPrimaryGrade(t *testing.T) {
	high := func(g string) model.GradeSighting {
		return model.GradeSighting{Grade: g, Confidence: model.ConfidenceHigh}
	}
	medium := func(g string) model.GradeSighting {
		return model.GradeSighting{Grade: g, Confidence: model.ConfidenceMedium}
	}
	low := func(g string) model.GradeSighting {
		return model.GradeSighting{Grade: g, Confidence: model.ConfidenceLow}
	}

	tests := []struct {
		name           string
		sightings      []model.GradeSighting
		wantGrade      string
		wantConfidence model.Confidence
	}{
		{"empty", nil, "", model.ConfidenceLow},
		{"first high wins", []model.GradeSighting{low("ضعيف"), high("صحيح"), high("حسن")}, "صحيح", model.ConfidenceHigh},
		{"medium beats low", []model.GradeSighting{low("ضعيف"), medium("حسن")}, "حسن", model.ConfidenceMedium},
		{"all low takes first", []model.GradeSighting{low("ضعيف"), low("حسن")}, "ضعيف", model.ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grade, confidence := selectPrimaryGrade(tt.sightings)
			if grade != tt.wantGrade || confidence != tt.wantConfidence {
				t.Errorf("selectPrimaryGrade() = (%q, %s), want (%q, %s)",
					grade, confidence, tt.wantGrade, tt.wantConfidence)
			}
		})
	}
}

// stubCommentator records whether it ran and returns a canned commentary
type stubCommentator struct {
	called atomic.Bool
}

func (s *stubCommentator) Comment(ctx context.Context, verdict *model.Verdict) (*model.Commentary, error) {
	s.called.Store(true)
	return &model.Commentary{Provider: "stub", Model: "stub-1", Text: "summary"}, nil
}

func TestVerify_CommentaryAttachedAfterSettling(t *testing.T) {
	commentator := &stubCommentator{}
	engine := NewEngine(
		&fakeAdapter{id: model.SourceDorar, result: queryResult(model.SourceDorar, dorarRecord("الحديث", "صحيح", "صحيح البخاري"))},
		&fakeAdapter{id: model.SourceSunnah, result: queryResult(model.SourceSunnah)},
		commentator,
	)

	verdict, err := engine.Verify(context.Background(), "الحديث")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !commentator.called.Load() {
		t.Error("Expected commentator to run")
	}
	if verdict.Commentary == nil || verdict.Commentary.Text != "summary" {
		t.Errorf("Unexpected commentary: %+v", verdict.Commentary)
	}
	// Commentary never alters the derived verdict
	if verdict.Status != model.StatusGraded || verdict.PrimaryGrade != "صحيح" {
		t.Errorf("Verdict changed by commentary: %s/%q", verdict.Status, verdict.PrimaryGrade)
	}
}
