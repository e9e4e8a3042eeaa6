package domain

import "github.com/google/uuid"

// Gender of a client.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Valid reports whether g is one of the known client genders.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Client is a person ads are shown to. Clients are created and replaced
// through upsert-by-id; there is no partial update.
type Client struct {
	ID       uuid.UUID
	Login    string
	Age      int
	Location string
	Gender   Gender
}
