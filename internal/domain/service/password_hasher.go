// Package service declares the infrastructure capabilities the use cases depend on.
package service

// PasswordHasher hashes account passwords for login and signup.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Check reports whether password matches hash. A malformed hash never matches.
	Check(password, hash string) bool
}
