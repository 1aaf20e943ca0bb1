package services

import (
	"context"
	"sync"

	"UserAuthAPI/internal/model"
	"UserAuthAPI/internal/repository"

	"github.com/google/uuid"
)

// memStore is an in-memory UserStore. It hands out copies, so mutations
// only stick after Save, like the real repository.
type memStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]*model.User)}
}

func (s *memStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) Create(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return nil, repository.ErrConflict
		}
	}
	u := &model.User{ID: uuid.NewString(), Name: name, Email: email, PasswordHash: passwordHash}
	s.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (s *memStore) Save(ctx context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// nullMailer swallows every message.
type nullMailer struct{}

func (nullMailer) Send(ctx context.Context, toEmail, subject, html string) error { return nil }
