package ui

import (
	"testing"

	"github.com/fazendaapp/fazenda-backend/pkg/enums"
)

func TestSupplyUrgencyColor(t *testing.T) {
	if got := SupplyUrgencyColor(enums.SupplyUrgencyUrgent); got != ColorRed {
		t.Fatalf("urgent color = %s, want %s", got, ColorRed)
	}
	if got := SupplyUrgencyColor(enums.SupplyUrgencyNormal); got != ColorGreen {
		t.Fatalf("normal color = %s, want %s", got, ColorGreen)
	}
}

func TestAnimalStatusColor(t *testing.T) {
	for _, status := range []string{"Saudável", "Ativo", "Prenha"} {
		if got := AnimalStatusColor(status); got != ColorGreen {
			t.Fatalf("%s color = %s, want %s", status, got, ColorGreen)
		}
	}
	for _, status := range []string{"Doente", "Problema"} {
		if got := AnimalStatusColor(status); got != ColorRed {
			t.Fatalf("%s color = %s, want %s", status, got, ColorRed)
		}
	}
	if got := AnimalStatusColor("Em tratamento"); got != ColorYellow {
		t.Fatalf("free-text status color = %s, want %s", got, ColorYellow)
	}
}

func TestUnknownValuesFallBackToGray(t *testing.T) {
	if got := IncidentStatusColor(enums.IncidentStatus("archived")); got != ColorGray {
		t.Fatalf("unknown incident status color = %s, want %s", got, ColorGray)
	}
	if got := WorkerStatusColor(enums.WorkerStatus("retired")); got != ColorGray {
		t.Fatalf("unknown worker status color = %s, want %s", got, ColorGray)
	}
}
