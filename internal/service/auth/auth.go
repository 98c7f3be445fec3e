// Package auth manages credential records and the current session, persisted
// alongside the inventory state in the device store.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/stationaryhq/stationary/internal/domain/models"
	"github.com/stationaryhq/stationary/internal/repository/localstore"
)

const (
	usersKey   = "stationaryAppUsers"
	sessionKey = "stationaryAppAuth"

	primaryAdminUsername = "admin"
	defaultAdminPassword = "123"
)

// ErrInvalidCredentials indicates the username/password pair did not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUsernameTaken indicates an account with that username already exists.
var ErrUsernameTaken = errors.New("username already exists")

// ErrProtectedUser indicates the primary admin account cannot be deleted.
var ErrProtectedUser = errors.New("the primary admin account cannot be deleted")

// Store holds the user list and current session under one mutex.
type Store struct {
	mu      sync.Mutex
	users   []models.User
	current *models.User
	store   localstore.Store
	logger  *zap.Logger
	newID   func() string
}

// NewStore loads persisted users and session state. The primary admin account
// always exists; a fresh install gets one with the default password.
func NewStore(store localstore.Store, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{store: store, logger: logger, newID: uuid.NewString}

	if ok, err := store.Get(usersKey, &s.users); err != nil {
		logger.Warn("discarding unreadable user list", zap.Error(err))
		s.users = nil
	} else if !ok {
		s.users = nil
	}

	if !s.hasUser(primaryAdminUsername) {
		hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash default admin password: %w", err)
		}
		s.users = append(s.users, models.User{
			ID:           "default-admin",
			Username:     primaryAdminUsername,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		})
		s.persistUsers()
	}

	var session models.User
	if ok, err := store.Get(sessionKey, &session); err != nil {
		logger.Warn("discarding unreadable session", zap.Error(err))
	} else if ok {
		if u, found := s.findByUsername(session.Username); found {
			s.current = &u
		}
	}

	return s, nil
}

// Login authenticates and opens a session. Username matching is
// case-insensitive.
func (s *Store) Login(username, password string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, found := s.findByUsername(username)
	if !found {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	s.current = &user
	if err := s.store.Set(sessionKey, user); err != nil {
		s.logger.Error("failed saving session", zap.Error(err))
	}
	return user, nil
}

// Logout closes the current session.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.store.Remove(sessionKey); err != nil {
		s.logger.Error("failed clearing session", zap.Error(err))
	}
}

// CurrentUser returns the logged-in user, if any.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return models.User{}, false
	}
	return *s.current, true
}

// Users returns a copy of all credential records.
func (s *Store) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

// AddUser registers a new account. Usernames are unique case-insensitively.
func (s *Store) AddUser(username, password string, role models.Role) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if username == "" || password == "" {
		return models.User{}, fmt.Errorf("username and password cannot be empty")
	}
	if _, found := s.findByUsername(username); found {
		return models.User{}, fmt.Errorf("%w: %s", ErrUsernameTaken, username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           s.newID(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	s.users = append(s.users, user)
	s.persistUsers()
	return user, nil
}

// DeleteUser removes the account with the given id. The primary admin is
// protected.
func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, user := range s.users {
		if user.ID != id {
			continue
		}
		if user.Username == primaryAdminUsername {
			return ErrProtectedUser
		}
		s.users = append(s.users[:i], s.users[i+1:]...)
		s.persistUsers()
		return nil
	}
	return nil
}

func (s *Store) hasUser(username string) bool {
	_, found := s.findByUsername(username)
	return found
}

func (s *Store) findByUsername(username string) (models.User, bool) {
	for _, user := range s.users {
		if strings.EqualFold(user.Username, username) {
			return user, true
		}
	}
	return models.User{}, false
}

func (s *Store) persistUsers() {
	if err := s.store.Set(usersKey, s.users); err != nil {
		s.logger.Error("failed saving users", zap.Error(err))
	}
}
