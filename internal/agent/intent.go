package agent

import (
	"strings"

	"inmoportal/internal/textutil"
)

// contactKeywords are phrases that signal the user wants a human. Matching is
// by normalized substring, so negations ("no quiero cotizar") still match;
// for a lead funnel, routing to a human is the safe direction.
var contactKeywords = []string{
	"hablar con un asesor",
	"hablar con asesor",
	"hablar con un ejecutivo",
	"hablar con alguien",
	"contactar",
	"contactenme",
	"whatsapp",
	"cotizar",
	"cotizacion",
	"agendar visita",
	"agendar una visita",
	"visitar el proyecto",
	"numero de telefono",
	"llamenme",
}

// HasContactIntent reports whether the message asks for a human hand-off.
// When it does, the pipeline skips the catalog and the model entirely.
func HasContactIntent(message string) bool {
	normalized := textutil.Normalize(message)
	for _, kw := range contactKeywords {
		if strings.Contains(normalized, textutil.Normalize(kw)) {
			return true
		}
	}
	return false
}
