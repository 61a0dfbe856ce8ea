// Copyright (c) 2026 Techradar. All rights reserved.
// Author: mc-aweaver

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for account passwords.
const PasswordCost = bcrypt.DefaultCost

/*
HashPassword derives the value stored in users.account.passwordhash.

Callers validate the password first (presence, minimum length and
confirmation live in the auth service). The plaintext is never stored, so
this hash is the only trace of it. Passwords longer than 72 bytes are
rejected by bcrypt with [bcrypt.ErrPasswordTooLong].
*/
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("sec_hash_password_failed: %w", err)
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches a stored hash. Login
// and password changes use it; any mismatch or malformed hash is false.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
