package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials covers both unknown accounts and wrong passwords so
// responses cannot be used to enumerate usernames.
var ErrBadCredentials = errors.New("invalid username or password")

// UserStore authenticates API accounts against bcrypt password hashes
// loaded from configuration.
type UserStore struct {
	hashes map[string]string
}

// NewUserStore builds the store from username to bcrypt-hash pairs.
func NewUserStore(hashes map[string]string) *UserStore {
	out := &UserStore{hashes: make(map[string]string, len(hashes))}
	for username, hash := range hashes {
		out.hashes[username] = hash
	}
	return out
}

// Authenticate verifies one username/password pair.
func (s *UserStore) Authenticate(username, password string) error {
	hash, ok := s.hashes[username]
	if !ok {
		// Compare against a dummy hash so unknown users take the same time.
		_ = bcrypt.CompareHashAndPassword(
			[]byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B0q3yN1QnZyV3mM9sC1yG8aDGJka"), []byte(password))
		return ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrBadCredentials
	}
	return nil
}

// Empty reports whether no accounts are configured.
func (s *UserStore) Empty() bool {
	return len(s.hashes) == 0
}
