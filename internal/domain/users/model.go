package users

import (
	"strings"
	"time"
)

// Roles del sistema. El backend puede enviarlos con o sin el prefijo
// ROLE_; internamente se guardan sin prefijo.
const (
	RoleOwner        = "OWNER"
	RoleAdmin        = "ADMIN"
	RoleVeterinarian = "VETERINARIAN"
	RoleReceptionist = "RECEPTIONIST"
)

// rolePrecedence ordena los roles de mayor a menor autoridad para
// decidir el rol primario de un usuario con varios roles.
var rolePrecedence = []string{RoleOwner, RoleAdmin, RoleVeterinarian, RoleReceptionist}

// NormalizeRole quita el prefijo ROLE_ y normaliza a mayúsculas.
func NormalizeRole(raw string) string {
	r := strings.ToUpper(strings.TrimSpace(raw))
	return strings.TrimPrefix(r, "ROLE_")
}

// PrimaryRole elige el rol de mayor precedencia de la lista. Una lista
// vacía o sin roles conocidos cae en RECEPTIONIST.
func PrimaryRole(roles []string) string {
	normalized := make(map[string]bool, len(roles))
	for _, r := range roles {
		normalized[NormalizeRole(r)] = true
	}
	for _, r := range rolePrecedence {
		if normalized[r] {
			return r
		}
	}
	return RoleReceptionist
}

// User es una cuenta del sistema: personal de la clínica o un
// propietario con acceso al portal.
type User struct {
	ID string

	Username  string
	Email     string
	FirstName string
	LastName  string

	PasswordHash string

	Roles  []string
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HasRole tolera el prefijo ROLE_ en ambos lados de la comparación.
func (u User) HasRole(role string) bool {
	want := NormalizeRole(role)
	for _, r := range u.Roles {
		if NormalizeRole(r) == want {
			return true
		}
	}
	return false
}

// Permission describe una capacidad del sistema; el catálogo es
// estático y se consulta para armar los menús del cliente.
type Permission struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RoleInfo expone un rol junto con sus permisos.
type RoleInfo struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Permissions []Permission `json:"permissions"`
}

var permissionCatalog = map[string]Permission{
	"MANAGE_USERS":        {Name: "MANAGE_USERS", Description: "Crear, editar y desactivar usuarios"},
	"MANAGE_PATIENTS":     {Name: "MANAGE_PATIENTS", Description: "Administrar pacientes y propietarios"},
	"MANAGE_APPOINTMENTS": {Name: "MANAGE_APPOINTMENTS", Description: "Agendar y gestionar citas"},
	"MANAGE_INVENTORY":    {Name: "MANAGE_INVENTORY", Description: "Administrar el inventario"},
	"MANAGE_SERVICES":     {Name: "MANAGE_SERVICES", Description: "Administrar el catálogo de servicios"},
	"WRITE_RECORDS":       {Name: "WRITE_RECORDS", Description: "Registrar historias clínicas y prescripciones"},
	"VIEW_REPORTS":        {Name: "VIEW_REPORTS", Description: "Generar y descargar reportes"},
	"VIEW_OWN_PETS":       {Name: "VIEW_OWN_PETS", Description: "Consultar sus propias mascotas y citas"},
	"SIGN_CONSENTS":       {Name: "SIGN_CONSENTS", Description: "Firmar consentimientos informados"},
}

var roleCatalog = []RoleInfo{
	{
		Name:        RoleAdmin,
		Description: "Administrador de la clínica",
		Permissions: permissions("MANAGE_USERS", "MANAGE_PATIENTS", "MANAGE_APPOINTMENTS", "MANAGE_INVENTORY", "MANAGE_SERVICES", "VIEW_REPORTS"),
	},
	{
		Name:        RoleVeterinarian,
		Description: "Médico veterinario",
		Permissions: permissions("MANAGE_PATIENTS", "MANAGE_APPOINTMENTS", "WRITE_RECORDS", "VIEW_REPORTS"),
	},
	{
		Name:        RoleReceptionist,
		Description: "Recepcionista",
		Permissions: permissions("MANAGE_PATIENTS", "MANAGE_APPOINTMENTS"),
	},
	{
		Name:        RoleOwner,
		Description: "Propietario con acceso al portal",
		Permissions: permissions("VIEW_OWN_PETS", "SIGN_CONSENTS"),
	},
}

func permissions(names ...string) []Permission {
	out := make([]Permission, 0, len(names))
	for _, n := range names {
		out = append(out, permissionCatalog[n])
	}
	return out
}

// Roles devuelve el catálogo estático de roles.
func Roles() []RoleInfo {
	return roleCatalog
}

// Permissions devuelve el catálogo estático de permisos.
func Permissions() []Permission {
	out := make([]Permission, 0, len(permissionCatalog))
	for _, n := range []string{
		"MANAGE_USERS", "MANAGE_PATIENTS", "MANAGE_APPOINTMENTS", "MANAGE_INVENTORY",
		"MANAGE_SERVICES", "WRITE_RECORDS", "VIEW_REPORTS", "VIEW_OWN_PETS", "SIGN_CONSENTS",
	} {
		out = append(out, permissionCatalog[n])
	}
	return out
}
