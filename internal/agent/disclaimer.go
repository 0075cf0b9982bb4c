package agent

import (
	"strings"

	"inmoportal/internal/textutil"
)

// EnsureDisclaimer appends the disclaimer to text unless it is already
// present. Presence is checked on normalized forms, so a reply the model
// already closed with the disclaimer (in any casing or accenting) is left
// untouched. Idempotent: applying it twice equals applying it once.
func EnsureDisclaimer(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Disclaimer
	}

	if strings.Contains(textutil.Normalize(trimmed), textutil.Normalize(Disclaimer)) {
		return text
	}

	return trimmed + "\n\n" + Disclaimer
}
