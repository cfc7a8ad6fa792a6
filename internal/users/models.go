package users

import "time"

type User struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Phone        string           `json:"phone,omitempty"`
	PasswordHash string           `json:"-"`
	Role         string           `json:"role"`
	Addresses    []map[string]any `json:"addresses"`
	JoinedAt     time.Time        `json:"joined_at"`
}
