package agent

import (
	"strings"
	"testing"
)

func TestEnsureDisclaimer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty text returns disclaimer alone",
			input: "",
			want:  Disclaimer,
		},
		{
			name:  "whitespace only returns disclaimer alone",
			input: "   \n ",
			want:  Disclaimer,
		},
		{
			name:  "plain reply gets disclaimer appended",
			input: "Tenemos dos proyectos en Ñuñoa.",
			want:  "Tenemos dos proyectos en Ñuñoa.\n\n" + Disclaimer,
		},
		{
			name:  "reply already containing disclaimer is untouched",
			input: "Tenemos opciones.\n\n" + Disclaimer,
			want:  "Tenemos opciones.\n\n" + Disclaimer,
		},
		{
			name:  "accent-free restatement still counts as present",
			input: "Resumen. " + strings.ToUpper(Disclaimer),
			want:  "Resumen. " + strings.ToUpper(Disclaimer),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnsureDisclaimer(tt.input); got != tt.want {
				t.Errorf("EnsureDisclaimer() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnsureDisclaimer_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Hola",
		"Tenemos proyectos en La Florida desde UF 1.800.",
		Disclaimer,
		"texto\n\n" + Disclaimer,
	}

	for _, in := range inputs {
		once := EnsureDisclaimer(in)
		twice := EnsureDisclaimer(once)
		if once != twice {
			t.Errorf("EnsureDisclaimer not idempotent for %q:\nonce:  %q\ntwice: %q", in, once, twice)
		}
		if !strings.Contains(twice, Disclaimer) {
			t.Errorf("EnsureDisclaimer(%q) missing disclaimer", in)
		}
	}
}
