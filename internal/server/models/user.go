// Package models contains the persistent row types shared by repositories
// and services.
package models

import "database/sql"

// User is a durable account. PasswordHash is NULL for federation-only
// accounts: such accounts have no local credential and can never pass the
// password login path. Provider/ProviderID are set once a federated
// identity has been linked.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash sql.NullString
	Phone        string
	Bio          string
	RoleID       int64
	RoleName     string
	Provider     sql.NullString
	ProviderID   sql.NullString
}

// Federated reports whether the account has a linked external identity.
func (u *User) Federated() bool {
	return u.Provider.Valid && u.Provider.String != ""
}
