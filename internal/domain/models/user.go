package models

// Role distinguishes administrators from regular users.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// User is a credential record. Passwords are stored as bcrypt hashes; the
// hash never leaves the process through the JSON API.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
	Role         Role   `json:"role"`
}
