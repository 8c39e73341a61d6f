// Package grade maps the free-text grading vocabulary used by hadith
// scholars onto a closed set of grade labels with a confidence tier.
package grade

import (
	"strings"

	"github.com/rashidk/tahqiq/internal/model"
)

// vocabularyRule is one (pattern set, canonical grade) pair. Rules are
// evaluated top to bottom and the first matching rule wins, so order is
// part of the contract: an explanation containing both "صحيح" and "ضعيف"
// grades as sahih.
type vocabularyRule struct {
	patterns []string
	grade    string
}

// Vocabulary is the ordered grading rule table. Exported so the narrative
// builder branches over the same canonical labels.
var Vocabulary = []vocabularyRule{
	{patterns: []string{"صحيح"}, grade: GradeSahih},
	{patterns: []string{"حسن"}, grade: GradeHasan},
	{patterns: []string{"ضعيف"}, grade: GradeDaif},
	{patterns: []string{"موضوع", "مكذوب"}, grade: GradeFabricated},
	{patterns: []string{"واهي", "واه"}, grade: GradeFeeble},
	{patterns: []string{"قوي"}, grade: GradeStrong},
}

// Canonical grade labels
const (
	GradeSahih      = "صحيح"
	GradeHasan      = "حسن"
	GradeDaif       = "ضعيف"
	GradeFabricated = "موضوع"
	GradeFeeble     = "واه"
	GradeStrong     = "قوي"
)

// Normalize resolves a record's grade and confidence from the labeled grade
// field and the scholar's explanation text.
//
// A non-empty labeled grade is used verbatim. Otherwise the explanation is
// scanned against the ordered vocabulary and the first match is taken as an
// inferred grade. Confidence is binary at this level: high whenever any
// grade was determined (labeled or inferred), low otherwise. Medium never
// appears here; the aggregator reserves it for its own tie-break tier.
func Normalize(rawGrade, rawExplanation string) (string, model.Confidence) {
	g := strings.TrimSpace(rawGrade)
	if g == "" {
		g = Infer(rawExplanation)
	}

	if g != "" {
		return g, model.ConfidenceHigh
	}
	return "", model.ConfidenceLow
}

// Infer scans explanation text against the ordered vocabulary and returns
// the first matching canonical grade, or empty when nothing matches
func Infer(explanation string) string {
	text := strings.ToLower(strings.TrimSpace(explanation))
	if text == "" {
		return ""
	}

	for _, rule := range Vocabulary {
		for _, pattern := range rule.patterns {
			if strings.Contains(text, pattern) {
				return rule.grade
			}
		}
	}
	return ""
}
