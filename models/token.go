package models

import "time"

// Token is an opaque 20 character credential minted at login. It authorizes
// only its own email and only while Expires is in the future.
type Token struct {
	ID      string    `gorm:"primaryKey" json:"id"`
	Email   string    `gorm:"index;not null" json:"email"`
	Expires time.Time `json:"expires"`
}

// Expired reports whether the token is past its expiration.
func (t *Token) Expired(now time.Time) bool {
	return !t.Expires.After(now)
}
