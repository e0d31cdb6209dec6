// Package console arma la salida de terminal de vetctl: estilos por
// estado, tablas y el calendario mensual.
package console

import "strings"

// Color es un código ANSI listo para envolver texto.
type Color string

const (
	ColorBlue   Color = "\033[34m"
	ColorCyan   Color = "\033[36m"
	ColorYellow Color = "\033[33m"
	ColorGreen  Color = "\033[32m"
	ColorRed    Color = "\033[31m"
	ColorGray   Color = "\033[90m"
	colorReset  Color = "\033[0m"
)

// Style es la presentación de un estado: etiqueta en español y color.
type Style struct {
	Label string
	Color Color
}

// Paint envuelve s con el color del estilo.
func (st Style) Paint(s string) string {
	return string(st.Color) + s + string(colorReset)
}

var appointmentStyles = map[string]Style{
	"SCHEDULED":   {Label: "Programada", Color: ColorBlue},
	"CONFIRMED":   {Label: "Confirmada", Color: ColorCyan},
	"IN_PROGRESS": {Label: "En curso", Color: ColorYellow},
	"COMPLETED":   {Label: "Completada", Color: ColorGreen},
	"CANCELLED":   {Label: "Cancelada", Color: ColorGray},
}

// AppointmentStyle devuelve la presentación de un estado de cita. Un
// estado desconocido usa la presentación de SCHEDULED.
func AppointmentStyle(status string) Style {
	if st, ok := appointmentStyles[strings.ToUpper(strings.TrimSpace(status))]; ok {
		return st
	}
	return appointmentStyles["SCHEDULED"]
}

// Las claves son los valores del enum de inventario tal como viajan en
// el JSON (available/low/out), normalizados a mayúsculas.
var stockStyles = map[string]Style{
	"AVAILABLE": {Label: "Disponible", Color: ColorGreen},
	"LOW":       {Label: "Stock bajo", Color: ColorYellow},
	"OUT":       {Label: "Agotado", Color: ColorRed},
}

// StockStyle devuelve la presentación de un estado de inventario.
func StockStyle(status string) Style {
	if st, ok := stockStyles[strings.ToUpper(strings.TrimSpace(status))]; ok {
		return st
	}
	return Style{Label: status, Color: ColorGray}
}

var consentStyles = map[string]Style{
	"PENDING": {Label: "Pendiente de firma", Color: ColorYellow},
	"SIGNED":  {Label: "Firmado", Color: ColorGreen},
}

// ConsentStyle devuelve la presentación de un estado de consentimiento.
func ConsentStyle(status string) Style {
	if st, ok := consentStyles[strings.ToUpper(strings.TrimSpace(status))]; ok {
		return st
	}
	return Style{Label: status, Color: ColorGray}
}
