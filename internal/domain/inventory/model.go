package inventory

import (
	"strings"
	"time"
)

// Category define las categorías del inventario.
type Category string

const (
	CategoryMedication Category = "MEDICATION"
	CategoryVaccine    Category = "VACCINE"
	CategorySupply     Category = "SUPPLY"
	CategoryFood       Category = "FOOD"
	CategoryEquipment  Category = "EQUIPMENT"
	CategoryOther      Category = "OTHER"
)

// StockStatus es función pura de quantity vs minQuantity.
type StockStatus string

const (
	StockAvailable StockStatus = "available"
	StockLow       StockStatus = "low"
	StockOut       StockStatus = "out"
)

// InventoryItem representa un ítem del inventario de la clínica.
type InventoryItem struct {
	ID string

	Name        string
	Category    Category
	Description string

	Quantity    int
	MinQuantity int

	UnitPrice float64
	Supplier  string

	ExpirationDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Status deriva el estado de stock:
// out si q==0; low si 0<q<=min; available si q>min.
func (i InventoryItem) Status() StockStatus {
	return DeriveStatus(i.Quantity, i.MinQuantity)
}

func DeriveStatus(quantity, minQuantity int) StockStatus {
	switch {
	case quantity <= 0:
		return StockOut
	case quantity <= minQuantity:
		return StockLow
	default:
		return StockAvailable
	}
}

// ExpiresWithin reporta si el ítem vence dentro de los próximos días.
func (i InventoryItem) ExpiresWithin(now time.Time, days int) bool {
	if i.ExpirationDate == nil {
		return false
	}
	limit := now.AddDate(0, 0, days)
	return !i.ExpirationDate.After(limit)
}

// NormalizeCategory acepta el enum en inglés y los sinónimos en español que
// dejó la migración de datos (medicamento, vacuna, insumo...). El enum en
// inglés es el autoritativo.
func NormalizeCategory(s string) Category {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MEDICATION", "MEDICAMENTO", "MEDICINA":
		return CategoryMedication
	case "VACCINE", "VACUNA":
		return CategoryVaccine
	case "SUPPLY", "INSUMO", "SUMINISTRO":
		return CategorySupply
	case "FOOD", "ALIMENTO", "COMIDA":
		return CategoryFood
	case "EQUIPMENT", "EQUIPO":
		return CategoryEquipment
	default:
		return CategoryOther
	}
}
