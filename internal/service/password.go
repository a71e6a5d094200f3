package service

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the fixed bcrypt work factor
const PasswordCost = 10

// HashPassword returns a salted bcrypt hash of pw
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), PasswordCost)
	return string(b), err
}

// CheckPassword reports whether pw matches hash, using bcrypt's constant-time comparison
func CheckPassword(pw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
