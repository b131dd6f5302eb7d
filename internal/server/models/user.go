// Package models defines database row types shared by repositories and
// services on the server side.
package models

import "time"

// User is a row in the users table. PasswordHash holds the bcrypt hash;
// the plaintext password never appears outside the login request.
//
// StatusID and StatusName come from the LEFT JOIN against statuses and are
// nil when the user has no status reference set.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FullName     string
	Email        string
	StatusID     *int64
	StatusName   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
