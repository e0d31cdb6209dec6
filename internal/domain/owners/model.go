package owners

import "time"

// DocumentType define los tipos de documento de identidad soportados.
type DocumentType string

const (
	DocumentCC       DocumentType = "CC" // cédula de ciudadanía
	DocumentCE       DocumentType = "CE" // cédula de extranjería
	DocumentPassport DocumentType = "PASSPORT"
	DocumentNIT      DocumentType = "NIT"
)

// Owner representa al cliente de la clínica dueño de una o más mascotas.
type Owner struct {
	ID string

	DocumentType   DocumentType
	DocumentNumber string

	FirstName string
	LastName  string

	Email   string
	Phone   string
	Address string
	City    string

	Notes string

	// UserID enlaza con la cuenta del portal de propietarios (opcional).
	UserID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName arma el nombre completo para listados y reportes.
func (o Owner) FullName() string {
	if o.FirstName == "" {
		return o.LastName
	}
	if o.LastName == "" {
		return o.FirstName
	}
	return o.FirstName + " " + o.LastName
}
