package api

import "time"

// User mirrors the user object returned by the server. Timestamp fields are
// empty on responses that omit them (login, status updates).
type User struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	CurrentStatus string    `json:"currentStatus"`
	StatusID      *int64    `json:"statusId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Status is one entry of the status directory.
type Status struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	User  User
	Token string
}

// UpdateResult carries the server's confirmation of a status change.
type UpdateResult struct {
	Message string
	User    User
}
