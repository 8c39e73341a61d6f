package verify

import (
	"strings"
	"testing"

	"github.com/rashidk/tahqiq/internal/model"
)

func TestBuildNarrative_NotFound(t *testing.T) {
	n := buildNarrative(model.StatusNotFound, "", nil, nil)

	if n.Status != model.StatusNotFound {
		t.Errorf("Unexpected status: %s", n.Status)
	}
	if !strings.Contains(n.Message, "لم يتم العثور") {
		t.Errorf("Unexpected message: %q", n.Message)
	}
	if n.SeverityColor != "gray" {
		t.Errorf("Unexpected color: %s", n.SeverityColor)
	}
}

func TestBuildNarrative_SahihWithScholar(t *testing.T) {
	explanation := "إسناده على شرط الشيخين"
	first := &model.Record{
		GradingScholar:   model.Opt("البخاري"),
		SourceBook:       model.Opt("صحيح البخاري"),
		GradeExplanation: model.Opt(explanation),
	}

	n := buildNarrative(model.StatusGraded, "صحيح", first, []string{"صحيح البخاري"})

	if n.Message != "البخاري قال أنه صحيح في صحيح البخاري" {
		t.Errorf("Unexpected message: %q", n.Message)
	}
	if n.Explanation != explanation {
		t.Errorf("Expected the scholar's explanation, got %q", n.Explanation)
	}
	if n.SeverityColor != "green" || n.Icon != "check-circle" {
		t.Errorf("Unexpected styling: %s/%s", n.SeverityColor, n.Icon)
	}
	if n.WeaknessReason != "" {
		t.Errorf("Did not expect weakness reason, got %q", n.WeaknessReason)
	}
}

func TestBuildNarrative_FreeFormGradeCanonicalized(t *testing.T) {
	first := &model.Record{GradingScholar: model.Opt("الألباني")}

	// The free-form wording contains a vocabulary keyword
	n := buildNarrative(model.StatusGraded, "إسناده صحيح على شرط مسلم", first, nil)
	if !strings.Contains(n.Message, "صحيح") {
		t.Errorf("Expected canonicalized grade in message, got %q", n.Message)
	}
	if n.SeverityColor != "green" {
		t.Errorf("Unexpected color: %s", n.SeverityColor)
	}
}

func TestBuildNarrative_DaifPopulatesWeaknessReason(t *testing.T) {
	explanation := "فيه راوي مجهول الحال"
	first := &model.Record{
		GradingScholar:   model.Opt("الألباني"),
		SourceBook:       model.Opt("السلسلة الضعيفة"),
		GradeExplanation: model.Opt(explanation),
	}

	n := buildNarrative(model.StatusGraded, "ضعيف", first, nil)

	if n.SeverityColor != "orange" || n.Icon != "alert-triangle" {
		t.Errorf("Unexpected styling: %s/%s", n.SeverityColor, n.Icon)
	}
	if n.WeaknessReason != "سبب التضعيف: فيه راوي مجهول الحال" {
		t.Errorf("Unexpected weakness reason: %q", n.WeaknessReason)
	}
}

func TestBuildNarrative_FeeblePopulatesWeaknessReason(t *testing.T) {
	first := &model.Record{
		GradeExplanation: model.Opt("إسناده واه بمرة"),
	}

	n := buildNarrative(model.StatusGraded, "واه", first, nil)

	if n.WeaknessReason == "" {
		t.Error("Expected weakness reason for feeble grade")
	}
	if n.SeverityColor != "red" {
		t.Errorf("Unexpected color: %s", n.SeverityColor)
	}
}

func TestBuildNarrative_DefaultExplanationWhenScholarSilent(t *testing.T) {
	n := buildNarrative(model.StatusGraded, "حسن", &model.Record{}, nil)

	if n.Explanation == "" {
		t.Error("Expected the canned explanation when the scholar gave none")
	}
	if !strings.Contains(n.Message, "درجة الحديث") {
		t.Errorf("Expected generic message without a scholar, got %q", n.Message)
	}
}

func TestBuildNarrative_UnrecognizedGradeFallsBack(t *testing.T) {
	n := buildNarrative(model.StatusGraded, "اختلف فيه", &model.Record{}, nil)

	if !strings.Contains(n.Message, "اختلف فيه") {
		t.Errorf("Expected raw grade echoed, got %q", n.Message)
	}
	if n.SeverityColor != "gray" || n.Icon != "info" {
		t.Errorf("Unexpected styling: %s/%s", n.SeverityColor, n.Icon)
	}
}

func TestBuildNarrative_TrustedCollection(t *testing.T) {
	tests := []struct {
		name       string
		attributed []string
	}{
		{"arabic collection name", []string{"مسند أحمد", "صحيح البخاري"}},
		{"english collection name", []string{"Sahih Muslim"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := buildNarrative(model.StatusVerified, "", nil, tt.attributed)

			if !strings.Contains(n.Message, "ورد الحديث في") {
				t.Errorf("Expected trusted-by-collection message, got %q", n.Message)
			}
			if n.SeverityColor != "green" || n.Icon != "shield" {
				t.Errorf("Unexpected styling: %s/%s", n.SeverityColor, n.Icon)
			}
		})
	}
}

func TestBuildNarrative_UndeterminedWithoutTrustedCollection(t *testing.T) {
	n := buildNarrative(model.StatusPartial, "", nil, []string{"مسند البزار"})

	if !strings.Contains(n.Message, "دون تحديد درجته") {
		t.Errorf("Unexpected message: %q", n.Message)
	}
	if n.SeverityColor != "gray" || n.Icon != "help-circle" {
		t.Errorf("Unexpected styling: %s/%s", n.SeverityColor, n.Icon)
	}
}
