package grade

import "testing"

func TestWeaknessReason(t *testing.T) {
	tests := []struct {
		name        string
		explanation string
		want        string
	}{
		{
			"indicator mid-sentence",
			"فيه راوي مجهول الحال",
			"سبب التضعيف: فيه راوي مجهول الحال",
		},
		{
			"indicator at start",
			"متروك الحديث عند النسائي",
			"سبب التضعيف: متروك الحديث عند النسائي",
		},
		{
			"no indicator still returns full text",
			"تفرد به فلان عن شيخه",
			"سبب التضعيف: تفرد به فلان عن شيخه",
		},
		{
			"surrounding whitespace trimmed",
			"  إسناده ضعيف  ",
			"سبب التضعيف: إسناده ضعيف",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeaknessReason(tt.explanation)
			if got != tt.want {
				t.Errorf("WeaknessReason(%q) = %q, want %q", tt.explanation, got, tt.want)
			}
		})
	}
}

func TestWeaknessReason_Empty(t *testing.T) {
	if got := WeaknessReason(""); got != "" {
		t.Errorf("Expected empty reason for empty explanation, got %q", got)
	}
	if got := WeaknessReason("   "); got != "" {
		t.Errorf("Expected empty reason for blank explanation, got %q", got)
	}
}
