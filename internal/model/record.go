package model

// SourceID identifies one of the external hadith sources
type SourceID string

const (
	SourceDorar  SourceID = "dorar"
	SourceSunnah SourceID = "sunnah"
)

// Confidence qualifies how strongly a grade is supported by the source page.
// Extraction assigns only low or high; medium is reserved for aggregate-level
// decisions (see verify.selectPrimaryGrade).
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ExternalIDs holds opaque identifiers scraped from anchor attributes,
// usable for follow-up lookups on the same source
type ExternalIDs struct {
	ScholarID     string `json:"scholar_id,omitempty"`
	BookID        string `json:"book_id,omitempty"`
	ExplanationID string `json:"explanation_id,omitempty"`
}

// RelationFlags records which cross-link anchors were present on the result
// block, independent of whether the linked records were fetched
type RelationFlags struct {
	HasSimilar      bool `json:"has_similar"`
	HasAlternate    bool `json:"has_alternate"`
	HasFoundational bool `json:"has_foundational"`
}

// Record is one normalized hadith extracted from a source result page.
// Optional metadata fields are pointers so that "not present on the page"
// stays distinguishable from "present and empty".
type Record struct {
	Text             string        `json:"text"`
	NarratorChain    *string       `json:"narrator_chain,omitempty"`
	GradingScholar   *string       `json:"grading_scholar,omitempty"`
	SourceBook       *string       `json:"source_book,omitempty"`
	Locator          *string       `json:"locator,omitempty"` // page/number within the book
	Grade            *string       `json:"grade,omitempty"`
	GradeExplanation *string       `json:"grade_explanation,omitempty"`
	GradeConfidence  Confidence    `json:"grade_confidence"`
	ExternalIDs      ExternalIDs   `json:"external_ids"`
	Flags            RelationFlags `json:"flags"`
	SourceID         SourceID      `json:"source_id"`
}

// QueryResult is the outcome of one adapter invocation
type QueryResult struct {
	Records      []Record `json:"records"`
	TotalResults int      `json:"total_results"`
	SourceID     SourceID `json:"source_id"`
	Page         int      `json:"page"`
}

// FoundationalSource is one primary reference from which a hadith's wording
// is said to derive (usul lookup)
type FoundationalSource struct {
	SourceName    string `json:"source_name"`
	NarratorChain string `json:"narrator_chain"`
	HadithText    string `json:"hadith_text"`
}

// FoundationalResult is the outcome of a usul lookup
type FoundationalResult struct {
	Sources []FoundationalSource `json:"sources"`
	Count   int                  `json:"count"`
}

// Opt returns a pointer to s, or nil when s is empty. Used when populating
// optional Record fields from scraped values.
func Opt(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the value behind an optional field, empty when absent
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
