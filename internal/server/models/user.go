package models

import "time"

// User is a registered guest account. PasswordHash holds the bcrypt digest
// and must never leave the server.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileUpdate carries the mutable profile fields. Empty fields are left
// unchanged.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Phone     string
}

// IsEmpty reports whether the update would change nothing.
func (p ProfileUpdate) IsEmpty() bool {
	return p.FirstName == "" && p.LastName == "" && p.Phone == ""
}

// PublicUser is the client-facing view of a User.
type PublicUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	}
}
