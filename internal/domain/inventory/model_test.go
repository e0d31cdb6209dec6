package inventory

import (
	"testing"
	"time"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		min      int
		want     StockStatus
	}{
		{"zero quantity is out", 0, 5, StockOut},
		{"zero quantity, zero min", 0, 0, StockOut},
		{"below min is low", 3, 5, StockLow},
		{"equal to min is low", 5, 5, StockLow},
		{"above min is available", 10, 5, StockAvailable},
		{"one above zero min is available", 1, 0, StockAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(tt.quantity, tt.min); got != tt.want {
				t.Fatalf("DeriveStatus(%d, %d) = %s, want %s", tt.quantity, tt.min, got, tt.want)
			}
		})
	}
}

func TestExpiresWithin(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	in20 := now.AddDate(0, 0, 20)
	in40 := now.AddDate(0, 0, 40)

	item := InventoryItem{ExpirationDate: &in20}
	if !item.ExpiresWithin(now, 30) {
		t.Fatalf("expected item expiring in 20 days to match a 30 day window")
	}

	item.ExpirationDate = &in40
	if item.ExpiresWithin(now, 30) {
		t.Fatalf("expected item expiring in 40 days not to match a 30 day window")
	}

	item.ExpirationDate = nil
	if item.ExpiresWithin(now, 30) {
		t.Fatalf("expected item without expiration not to match")
	}
}

func TestNormalizeCategory_SpanishSynonyms(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"medicamento", CategoryMedication},
		{"MEDICATION", CategoryMedication},
		{"vacuna", CategoryVaccine},
		{"insumo", CategorySupply},
		{"alimento", CategoryFood},
		{"equipo", CategoryEquipment},
		{"otra cosa", CategoryOther},
	}

	for _, tt := range tests {
		if got := NormalizeCategory(tt.in); got != tt.want {
			t.Fatalf("NormalizeCategory(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
