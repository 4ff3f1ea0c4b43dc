package model

import "time"

// Role is the closed set of member roles. The value is stored verbatim in
// the `members.role` column and carried as the "role" claim on issued
// tokens. Anything outside this set is rejected at token decode time.
type Role string

const (
	RoleCustomer Role = "CUSTOMER" // regular customer account
	RoleAdmin    Role = "ADMIN"    // administrator account
)

// ParseRole maps a raw string onto a Role. The second return value is
// false for any value outside the closed set, including the empty string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCustomer:
		return RoleCustomer, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// Member represents a row in the `members` table. Handlers define separate
// response types with JSON tags; this struct is used by the repository and
// service layers only.
//
// Fields:
//  ID           – primary key identifier of the member.
//  Name         – display name shown next to reservations.
//  Email        – unique email address, the login identifier.
//  PasswordHash – bcrypt hashed password.
//  Role         – member role (CUSTOMER or ADMIN).
//  CreatedAt    – timestamp of creation.
type Member struct {
	ID           uint64    // members.id
	Name         string    // members.name
	Email        string    // members.email
	PasswordHash string    // members.password_hash
	Role         Role      // members.role
	CreatedAt    time.Time // members.created_at
}
