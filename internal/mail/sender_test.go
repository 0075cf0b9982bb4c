package mail

import (
	"strings"
	"testing"

	"inmoportal/internal/storage"
)

func TestLeadBody(t *testing.T) {
	tests := []struct {
		name         string
		lead         storage.Lead
		wantContains []string
		wantOmits    []string
	}{
		{
			name: "full lead",
			lead: storage.Lead{
				Name:        "María Pérez",
				Email:       "maria@example.com",
				Phone:       "+56 9 1234 5678",
				Message:     "Quiero agendar una visita",
				ProjectSlug: "parque-nunoa",
			},
			wantContains: []string{
				"Nombre: María Pérez",
				"Email: maria@example.com",
				"Teléfono: +56 9 1234 5678",
				"Proyecto: parque-nunoa",
				"Quiero agendar una visita",
			},
		},
		{
			name: "optional fields omitted",
			lead: storage.Lead{
				Name:  "Juan",
				Email: "juan@example.com",
			},
			wantContains: []string{"Nombre: Juan", "Email: juan@example.com"},
			wantOmits:    []string{"Teléfono", "Proyecto", "Mensaje"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := leadBody(tt.lead)
			for _, want := range tt.wantContains {
				if !strings.Contains(body, want) {
					t.Errorf("leadBody() missing %q:\n%s", want, body)
				}
			}
			for _, omit := range tt.wantOmits {
				if strings.Contains(body, omit) {
					t.Errorf("leadBody() should omit %q:\n%s", omit, body)
				}
			}
		})
	}
}
