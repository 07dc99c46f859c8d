package domain

import (
	"strings"
	"time"
)

// UserRole enumerates account roles within an agency.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleAgent   UserRole = "agent"
	RoleManager UserRole = "manager"
	RoleSales   UserRole = "sales"
)

// RoleChoices is the shared catalog for user roles.
var RoleChoices = []Choice{
	{Value: "admin", Label: "Admin"},
	{Value: "agent", Label: "Agent"},
	{Value: "manager", Label: "Manager"},
	{Value: "sales", Label: "Sales"},
}

// CustomUser is an agency member. Role gates elevated operations such
// as reopening closed tickets and deleting records.
type CustomUser struct {
	ID           string
	AgencyID     string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	Role         UserRole
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName returns "First Last", falling back to the username when
// both name parts are blank.
func (u *CustomUser) FullName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full == "" {
		return u.Username
	}
	return full
}

// IsAdmin reports whether the user holds the elevated role.
func (u *CustomUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}
