// Package models contains the persistent domain types shared by the
// repositories and services.
package models

import "time"

// Role names known to the system. Roles live in their own table and are
// attached to users through user_roles.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID           string
	UserName     string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
}
