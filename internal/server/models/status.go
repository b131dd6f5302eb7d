package models

import "time"

// Status is a row in the statuses table. Reference data: rows are seeded by
// migrations and never created through the API.
type Status struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
