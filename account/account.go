package account

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type (
	// User is an identity record. Users are append-only: once registered they
	// are never mutated nor removed for the lifetime of the process.
	User struct {
		ID           string
		Email        string
		PasswordHash []byte
	}

	// Store keeps every registered user in memory, indexed by email.
	// Email comparison is exact (case-sensitive).
	Store struct {
		mutex sync.RWMutex
		users map[string]User
	}
)

const hashCost = 10

func NewStore() *Store {
	return &Store{users: make(map[string]User)}
}

// Register derives a password hash and appends a new user. The whole
// check-then-insert sequence runs under the store lock, so two concurrent
// registrations with the same email cannot both succeed.
func (s *Store) Register(ctx context.Context, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, found := s.users[email]; found {
		return DuplicateEmail{Email: email}
	}
	s.users[email] = User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}
	return nil
}

// Verify looks the user up by email and compares the password against the
// stored hash.
func (s *Store) Verify(ctx context.Context, email, password string) (User, error) {
	s.mutex.RLock()
	user, found := s.users[email]
	s.mutex.RUnlock()
	if !found {
		return User{}, UserNotFound{Email: email}
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return User{}, InvalidPassword{}
	}
	return user, nil
}
