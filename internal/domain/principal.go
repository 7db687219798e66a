package domain

import "time"

// RoleAdmin is the only role the storefront issues.
const RoleAdmin = "admin"

// Principal is the administrative account that owns the back-office.
// The deployed system expects exactly one; uniqueness is enforced by the
// store-level constraint on username, not by this model.
type Principal struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
