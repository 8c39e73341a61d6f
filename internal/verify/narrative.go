package verify

import (
	"fmt"

	"github.com/rashidk/tahqiq/internal/grade"
	"github.com/rashidk/tahqiq/internal/model"
)

// trustedCollections are collections whose mere attribution carries weight
// even when no explicit grade was extracted. Sunnah reports its collection
// names in English, so both forms are listed.
var trustedCollections = []string{
	"صحيح البخاري",
	"صحيح مسلم",
	"Sahih al-Bukhari",
	"Sahih Muslim",
}

// narrativeTemplate is the canned rendering for one canonical grade
type narrativeTemplate struct {
	gradeWord          string
	severityColor      string
	icon               string
	defaultExplanation string
	weakness           bool // populate WeaknessReason from the scholar's explanation
}

var narrativeTemplates = map[string]narrativeTemplate{
	grade.GradeSahih: {
		gradeWord:          "صحيح",
		severityColor:      "green",
		icon:               "check-circle",
		defaultExplanation: "هذا الحديث صحيح ثابت عن النبي صلى الله عليه وسلم ويعمل به",
	},
	grade.GradeHasan: {
		gradeWord:          "حسن",
		severityColor:      "green",
		icon:               "check-circle",
		defaultExplanation: "هذا الحديث حسن وهو مقبول عند أهل العلم",
	},
	grade.GradeDaif: {
		gradeWord:          "ضعيف",
		severityColor:      "orange",
		icon:               "alert-triangle",
		defaultExplanation: "هذا الحديث ضعيف لا يحتج به منفردا",
		weakness:           true,
	},
	grade.GradeFabricated: {
		gradeWord:          "موضوع",
		severityColor:      "red",
		icon:               "x-circle",
		defaultExplanation: "هذا الحديث موضوع لا تصح نسبته إلى النبي صلى الله عليه وسلم",
	},
	grade.GradeFeeble: {
		gradeWord:          "واه",
		severityColor:      "red",
		icon:               "x-circle",
		defaultExplanation: "هذا الحديث واهي الإسناد شديد الضعف",
		weakness:           true,
	},
	grade.GradeStrong: {
		gradeWord:          "قوي",
		severityColor:      "green",
		icon:               "check-circle",
		defaultExplanation: "إسناد هذا الحديث قوي",
	},
}

// buildNarrative produces the templated human-readable reading of the
// verdict. first is the first Dorar record, nil when Dorar returned
// nothing; it supplies the scholar, book, and explanation the narrative
// quotes.
func buildNarrative(status model.Status, primaryGrade string, first *model.Record, attributed []string) model.Narrative {
	if status == model.StatusNotFound {
		return model.Narrative{
			Status:        status,
			Message:       "لم يتم العثور على الحديث في المصادر المتاحة",
			Explanation:   "لا يعني عدم العثور على الحديث الحكم عليه، فقد يكون بلفظ مختلف",
			SeverityColor: "gray",
			Icon:          "help-circle",
		}
	}

	scholar, book, explanation := "", "", ""
	if first != nil {
		scholar = model.Deref(first.GradingScholar)
		book = model.Deref(first.SourceBook)
		explanation = model.Deref(first.GradeExplanation)
	}

	if primaryGrade == "" {
		return ungradedNarrative(status, attributed)
	}

	n := model.Narrative{
		Status:     status,
		Scholar:    scholar,
		SourceBook: book,
	}

	// The grade text is free-form scholarly wording; canonicalize it over
	// the same ordered vocabulary used for inference so the first matching
	// keyword picks the template.
	tmpl, ok := narrativeTemplates[grade.Infer(primaryGrade)]
	if !ok {
		n.Message = fmt.Sprintf("درجة الحديث: %s", primaryGrade)
		n.Explanation = explanation
		n.SeverityColor = "gray"
		n.Icon = "info"
		return n
	}

	bookName := book
	if bookName == "" {
		bookName = "الدرر السنية"
	}

	if scholar != "" {
		n.Message = fmt.Sprintf("%s قال أنه %s في %s", scholar, tmpl.gradeWord, bookName)
	} else {
		n.Message = fmt.Sprintf("درجة الحديث: %s", tmpl.gradeWord)
	}

	n.Explanation = explanation
	if n.Explanation == "" {
		n.Explanation = tmpl.defaultExplanation
	}
	n.SeverityColor = tmpl.severityColor
	n.Icon = tmpl.icon

	if tmpl.weakness {
		n.WeaknessReason = grade.WeaknessReason(explanation)
	}

	return n
}

// ungradedNarrative handles matches without a determinable grade. An
// attribution to one of the canonical collections still warrants a
// trusted-by-collection reading instead of "undetermined".
func ungradedNarrative(status model.Status, attributed []string) model.Narrative {
	for _, src := range attributed {
		for _, trusted := range trustedCollections {
			if src == trusted {
				return model.Narrative{
					Status:        status,
					Message:       fmt.Sprintf("ورد الحديث في %s", src),
					Explanation:   "ورود الحديث في هذا المصدر مما يقوي ثبوته",
					SeverityColor: "green",
					Icon:          "shield",
					SourceBook:    src,
				}
			}
		}
	}

	return model.Narrative{
		Status:        status,
		Message:       "تم العثور على الحديث دون تحديد درجته",
		Explanation:   "لم يرد حكم صريح من المحدثين على هذا اللفظ",
		SeverityColor: "gray",
		Icon:          "help-circle",
	}
}
