package entity

// Credential is a principal allowed to log in. Only the bcrypt hash is kept.
type Credential struct {
	Username     string
	PasswordHash string
}
