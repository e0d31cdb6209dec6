package patients

import "time"

// Species define las especies atendidas por la clínica.
type Species string

const (
	SpeciesDog     Species = "DOG"
	SpeciesCat     Species = "CAT"
	SpeciesBird    Species = "BIRD"
	SpeciesRabbit  Species = "RABBIT"
	SpeciesReptile Species = "REPTILE"
	SpeciesOther   Species = "OTHER"
)

// Gender define el sexo del paciente.
type Gender string

const (
	GenderMale    Gender = "MALE"
	GenderFemale  Gender = "FEMALE"
	GenderUnknown Gender = "UNKNOWN"
)

// Patient representa un animal bajo cuidado clínico.
type Patient struct {
	ID string

	Name    string
	Species Species
	Breed   string
	Gender  Gender

	BirthDate *time.Time
	WeightKg  float64
	Microchip string

	OwnerID string

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AgeYears calcula la edad en años cumplidos a la fecha dada.
func (p Patient) AgeYears(now time.Time) int {
	if p.BirthDate == nil {
		return 0
	}
	years := now.Year() - p.BirthDate.Year()
	anniversary := p.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
