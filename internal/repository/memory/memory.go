// Package memory is an in-process store used for local runs and tests.
// A single mutex serialises every operation, so purchase insertion and the
// entry counter increment are applied together.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"raffle-api/internal/domain/models"
	"raffle-api/internal/repository"

	"github.com/google/uuid"
)

type Storage struct {
	mu        sync.Mutex
	users     map[uuid.UUID]models.User
	purchases map[uuid.UUID]models.Purchase
	tokens    map[string]tokenRecord
}

type tokenRecord struct {
	userID    string
	expiresAt time.Time
}

func New() *Storage {
	return &Storage{
		users:     make(map[uuid.UUID]models.User),
		purchases: make(map[uuid.UUID]models.Purchase),
		tokens:    make(map[string]tokenRecord),
	}
}

func (s *Storage) SaveUser(_ context.Context, user models.User) error {
	const op = "storage.memory.SaveUser"

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == user.ID || strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("%s: %w", op, repository.ErrUserAlreadyExists)
		}
	}

	s.users[user.ID] = user
	return nil
}

func (s *Storage) GetUserByID(_ context.Context, userID uuid.UUID) (models.User, error) {
	const op = "storage.memory.GetUserByID"

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return models.User{}, fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
	}

	return user, nil
}

func (s *Storage) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	const op = "storage.memory.GetUserByEmail"

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}

	return models.User{}, fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
}

func (s *Storage) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].DateCreated.Before(users[j].DateCreated)
	})

	return users, nil
}

// UpdateUser stores the profile fields of user. EntryCount, Password when
// empty, DateCreated and LastLogin keep their stored values.
func (s *Storage) UpdateUser(_ context.Context, user models.User) error {
	const op = "storage.memory.UpdateUser"

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[user.ID]
	if !ok {
		return fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
	}

	for id, u := range s.users {
		if id != user.ID && strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("%s: %w", op, repository.ErrUserAlreadyExists)
		}
	}

	user.EntryCount = stored.EntryCount
	user.DateCreated = stored.DateCreated
	user.LastLogin = stored.LastLogin
	if len(user.Password) == 0 {
		user.Password = stored.Password
	}
	s.users[user.ID] = user

	return nil
}

func (s *Storage) TouchLastLogin(_ context.Context, userID uuid.UUID, at time.Time) error {
	const op = "storage.memory.TouchLastLogin"

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
	}
	user.LastLogin = at
	s.users[userID] = user

	return nil
}

// DeleteUser removes the user together with every purchase it owns.
func (s *Storage) DeleteUser(_ context.Context, userID uuid.UUID) error {
	const op = "storage.memory.DeleteUser"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
	}

	for id, p := range s.purchases {
		if p.UserID == userID {
			delete(s.purchases, id)
		}
	}
	delete(s.users, userID)

	return nil
}

func (s *Storage) ReconcileEntries(_ context.Context, userID uuid.UUID) (models.User, error) {
	const op = "storage.memory.ReconcileEntries"

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return models.User{}, fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
	}

	total := 0
	for _, p := range s.purchases {
		if p.UserID == userID {
			total += p.EntriesEarned
		}
	}
	user.EntryCount = total
	s.users[userID] = user

	return user, nil
}

func (s *Storage) CreatePurchase(_ context.Context, purchase models.Purchase) error {
	const op = "storage.memory.CreatePurchase"

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[purchase.UserID]
	if !ok {
		return fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
	}

	s.purchases[purchase.ID] = purchase
	user.EntryCount += purchase.EntriesEarned
	s.users[user.ID] = user

	return nil
}

func (s *Storage) GetPurchase(_ context.Context, purchaseID uuid.UUID) (models.Purchase, error) {
	const op = "storage.memory.GetPurchase"

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.purchases[purchaseID]
	if !ok || p.DeletedAt != nil {
		return models.Purchase{}, fmt.Errorf("%s: %w", op, repository.ErrPurchaseNotFound)
	}

	return p, nil
}

func (s *Storage) ListPurchases(_ context.Context, userID *uuid.UUID) ([]models.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	purchases := make([]models.Purchase, 0)
	for _, p := range s.purchases {
		if p.DeletedAt != nil {
			continue
		}
		if userID != nil && p.UserID != *userID {
			continue
		}
		purchases = append(purchases, p)
	}
	sort.Slice(purchases, func(i, j int) bool {
		return purchases[i].DateCreated.Before(purchases[j].DateCreated)
	})

	return purchases, nil
}

// DeletePurchase hides the purchase; the owner's entry count is left as is.
func (s *Storage) DeletePurchase(_ context.Context, purchaseID uuid.UUID) error {
	const op = "storage.memory.DeletePurchase"

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.purchases[purchaseID]
	if !ok || p.DeletedAt != nil {
		return fmt.Errorf("%s: %w", op, repository.ErrPurchaseNotFound)
	}
	now := time.Now()
	p.DeletedAt = &now
	s.purchases[purchaseID] = p

	return nil
}

func (s *Storage) StoreRefreshToken(_ context.Context, userID, refreshToken string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[refreshToken] = tokenRecord{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *Storage) ConsumeRefreshToken(_ context.Context, refreshToken string) (string, error) {
	const op = "storage.memory.ConsumeRefreshToken"

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.tokens[refreshToken]
	delete(s.tokens, refreshToken)
	if !ok || time.Now().After(rec.expiresAt) {
		return "", fmt.Errorf("%s: %w", op, repository.ErrTokenNotFound)
	}

	return rec.userID, nil
}

func (s *Storage) Close() error {
	return nil
}
