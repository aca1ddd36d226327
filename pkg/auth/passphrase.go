// Package auth hashes optional profile passphrases. A profile with no
// passphrase is open by name; identity beyond that is out of scope.
package auth

import "golang.org/x/crypto/bcrypt"

// HashPassphrase returns a bcrypt hash of the passphrase. Empty input
// yields an empty hash, meaning "no passphrase set".
func HashPassphrase(passphrase string) (string, error) {
	if passphrase == "" {
		return "", nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassphrase validates a passphrase against a stored hash. An empty
// stored hash accepts any input, including none.
func CheckPassphrase(passphrase, stored string) bool {
	if stored == "" {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(passphrase)) == nil
}
