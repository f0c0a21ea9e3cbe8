package models

import "time"

// Resident is one paying household, keyed by the auth provider's user ID.
type Resident struct {
	ID            string `json:"id"`
	HouseholdName string `json:"householdName"`
	HouseBlock    string `json:"houseBlock"`
	Email         string `json:"email"`
	IsAdmin       bool   `json:"isAdmin"`
}

// Account is a locally managed login, used when no external identity provider is configured.
type Account struct {
	Email        string    `json:"email"`
	UID          string    `json:"uid"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`

	// Sign-up profile, used to recreate the resident row.
	HouseholdName string `json:"householdName"`
	HouseBlock    string `json:"houseBlock"`
}

// Identity is the authenticated caller as reported by the identity provider.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}
