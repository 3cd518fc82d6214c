package models

import "time"

// User is keyed by the HMAC hash of its email, so lookups by email are a
// deterministic primary-key read.
type User struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"unique;not null" json:"email"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Address        string    `json:"address"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FullName is used as the recipient name on order confirmations.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
