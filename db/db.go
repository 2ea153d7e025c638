package db

import (
	"fmt"
	"sync"

	"github.com/samber/mo"

	"github.com/nishantd01/grud/core"
	"github.com/nishantd01/grud/models"
)

// UserStore holds the in-memory users table mirrored from the users API.
// Rows keep the order they were loaded or added in.
type UserStore struct {
	mu    sync.RWMutex
	users []models.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: []models.User{}}
}

// Replace swaps the whole table, e.g. after the initial fetch
func (s *UserStore) Replace(users []models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]models.User{}, users...)
}

func (s *UserStore) List() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User{}, s.users...)
}

func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func (s *UserStore) Get(id int) mo.Option[models.User] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return mo.Some(s.users[i])
	}
	return mo.None[models.User]()
}

// Append stores user under a fresh local id and returns the stored row.
// The users API echoes the same id for every create, so its id is not trusted.
func (s *UserStore) Append(user models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.nextID()
	s.users = append(s.users, user)
	return user
}

// SetField edits one field of a row locally without touching the users API
func (s *UserStore) SetField(id int, key, value string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.User{}, fmt.Errorf("user %d: %w", id, core.ErrNotFound)
	}
	edited, err := s.users[i].WithField(key, value)
	if err != nil {
		return models.User{}, err
	}
	s.users[i] = edited
	return edited, nil
}

// ReplaceByID overwrites the row with id by user, keeping the local id
func (s *UserStore) ReplaceByID(id int, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.User{}, fmt.Errorf("user %d: %w", id, core.ErrNotFound)
	}
	user.ID = id
	s.users[i] = user
	return user, nil
}

// Remove drops the row with id; it reports whether a row was removed
func (s *UserStore) Remove(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.users = append(s.users[:i], s.users[i+1:]...)
	return true
}

func (s *UserStore) indexOf(id int) int {
	for i, u := range s.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (s *UserStore) nextID() int {
	maxID := 0
	for _, u := range s.users {
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	return maxID + 1
}
