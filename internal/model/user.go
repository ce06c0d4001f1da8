package model

import "time"

// User is a registered account. PasswordHash holds a bcrypt hash — the raw
// password never touches storage.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
