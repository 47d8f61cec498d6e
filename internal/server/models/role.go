package models

// Role names are stored without the ROLE_ authority prefix.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type Role struct {
	ID   int64
	Name string
}
