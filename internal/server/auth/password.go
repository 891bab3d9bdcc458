package auth

import (
	"errors"

	"github.com/dmitrijs2005/stackr/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword produces a salted bcrypt digest. Cost parameters are
// embedded in the digest, so verification needs no external state.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword recomputes and compares the digest. A mismatch returns
// (false, nil); a digest that cannot be parsed at all returns
// (false, common.ErrCorruptCredential) so the caller can log the fault
// while still treating it as a failed verification.
func VerifyPassword(plaintext, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, common.ErrCorruptCredential
}
