package domain

import "time"

// Session identifies one client install. It is created on first use and never changes.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
