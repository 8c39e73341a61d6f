package model

// Status classifies the overall outcome of a verification call
type Status string

const (
	StatusNotFound Status = "not_found" // no records in any source
	StatusGraded   Status = "graded"    // a primary grade was determined
	StatusVerified Status = "verified"  // found in both sources, grade undetermined
	StatusPartial  Status = "partial"   // found in one source, grade undetermined
)

// GradeSighting is one graded observation collected from a Dorar record
type GradeSighting struct {
	Grade            string     `json:"grade"`
	Confidence       Confidence `json:"confidence"`
	AttributedSource string     `json:"attributed_source"`
}

// Narrative is the templated human-readable reading of a verdict
type Narrative struct {
	Status         Status `json:"status"`
	Message        string `json:"message"`
	Explanation    string `json:"explanation"`
	SeverityColor  string `json:"severity_color"`
	Icon           string `json:"icon"`
	Scholar        string `json:"scholar,omitempty"`
	SourceBook     string `json:"source_book,omitempty"`
	WeaknessReason string `json:"weakness_reason,omitempty"`
}

// Verdict is the consolidated answer of a cross-source verification.
// Per-source failures are recorded in SourceErrors rather than failing the
// whole call; grades come from Dorar only, Sunnah contributes bibliographic
// sources.
type Verdict struct {
	TotalMatches int                 `json:"total_matches"`
	FoundIn      map[SourceID]bool   `json:"found_in"`
	SourceErrors map[SourceID]string `json:"source_errors,omitempty"`

	Grades                 []GradeSighting `json:"grades"`
	PrimaryGrade           string          `json:"primary_grade,omitempty"`
	PrimaryGradeConfidence Confidence      `json:"primary_grade_confidence"`

	AttributedSources []string  `json:"attributed_sources"`
	Status            Status    `json:"status"`
	Narrative         Narrative `json:"narrative"`

	// Commentary is an optional LLM-generated reading of the verdict.
	// It is produced after the verdict is derived and never affects it.
	Commentary *Commentary `json:"commentary,omitempty"`
}

// Commentary is an optional LLM summary attached to a verdict
type Commentary struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Text     string `json:"text"`
}
