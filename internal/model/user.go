package model

import (
	"time"
)

type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Profile is the account view returned to the owner: the user plus their files and settings.
type Profile struct {
	*User
	Files    []*File       `json:"files"`
	Settings *UserSettings `json:"settings"`
}
