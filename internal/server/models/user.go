// Package models holds the persistence-level entities of the blogging
// service.
package models

import "time"

// User is a registered account. Email is stored lowercase and is unique
// across live users.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is the authenticated user context attached to a request after
// token verification. It never carries the password hash.
type Identity struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// Identity returns the secret-free view of the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, FullName: u.FullName, Email: u.Email}
}

// UserPatch is a shallow field patch for a user record. Nil fields are left
// untouched. PasswordHash must already be hashed by the caller.
type UserPatch struct {
	FullName     *string
	Email        *string
	PasswordHash *string
}
