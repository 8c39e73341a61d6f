package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for the engine's failure taxonomy
var (
	// ErrEmptyQuery means the search text was empty after trimming
	ErrEmptyQuery = errors.New("search text is empty")

	// ErrNotFound means a specifically requested record is absent, e.g. no
	// alternate narration exists. Distinct from a zero-match search result.
	ErrNotFound = errors.New("record not found")
)

// SourceError is a fetch or parse failure scoped to one external source.
// Message carries the localized text surfaced to end users.
type SourceError struct {
	Source  SourceID
	Op      string // "search", "similar", "alternate", "usul"
	Message string
	Err     error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Source, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Source, e.Op, e.Message)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError builds a SourceError with the standard localized message
// for the given source
func NewSourceError(source SourceID, op string, err error) *SourceError {
	return &SourceError{
		Source:  source,
		Op:      op,
		Message: fmt.Sprintf("حدث خطأ أثناء البحث في %s", sourceArabicName(source)),
		Err:     err,
	}
}

func sourceArabicName(source SourceID) string {
	switch source {
	case SourceDorar:
		return "الدرر السنية"
	case SourceSunnah:
		return "موقع السنة"
	default:
		return string(source)
	}
}
