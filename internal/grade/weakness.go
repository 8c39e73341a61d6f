package grade

import "strings"

// weaknessLabel prefixes every extracted weakness reason
const weaknessLabel = "سبب التضعيف: "

// weaknessIndicators are phrases scholars use when pointing at a defect in
// the chain or the narrator. The list is scanned for diagnostics, but the
// returned reason is always the full explanation: truncating to the matched
// phrase loses the surrounding context the scholar gave, and callers render
// the whole sentence either way.
var weaknessIndicators = []string{
	"سند ضعيف",
	"إسناده ضعيف",
	"متروك",
	"كذاب",
	"مجهول الحال",
	"مجهول",
	"منقطع",
	"مرسل",
	"لا يصح",
	"لم يصح",
}

// WeaknessReason formats the scholar's explanation as a weakness rationale.
// Returns empty when there is no explanation; otherwise the full text with
// the standard label prepended, regardless of which indicator (if any)
// matched.
func WeaknessReason(explanation string) string {
	text := strings.TrimSpace(explanation)
	if text == "" {
		return ""
	}

	matched := ""
	for _, indicator := range weaknessIndicators {
		if strings.Contains(text, indicator) {
			matched = indicator
			break
		}
	}
	// The matched phrase is intentionally not returned on its own
	_ = matched

	return weaknessLabel + text
}
