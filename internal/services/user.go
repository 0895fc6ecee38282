package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"raffle-api/internal/domain/dto"
	"raffle-api/internal/domain/models"
	"raffle-api/internal/lib/password"
	"raffle-api/internal/middlewares"

	"github.com/google/uuid"
)

type UserService struct {
	log            *slog.Logger
	userRepository UserRepository
	campaign       models.AcceptedTerms
	loc            *time.Location
}

type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) error
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) error
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	ReconcileEntries(ctx context.Context, userID uuid.UUID) (models.User, error)
}

func NewUserService(log *slog.Logger, userRepository UserRepository, campaign models.AcceptedTerms,
	loc *time.Location) *UserService {
	if loc == nil {
		loc = time.UTC
	}

	return &UserService{
		log:            log,
		userRepository: userRepository,
		campaign:       campaign,
		loc:            loc,
	}
}

func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (models.User, error) {
	const op = "services.UserService.CreateUser"

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", req.Email),
	)

	if err := middlewares.CheckRegister(req.FirstName, req.Email, req.Password); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	passHash, err := password.Hash(req.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().In(s.loc)
	user := models.User{
		ID:            uuid.New(),
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      req.LastName,
		Email:         req.Email,
		Password:      passHash,
		Gender:        req.Gender,
		MobileNumber:  req.MobileNumber,
		Birthday:      req.Birthday,
		Address:       models.Address{Street: req.Street, City: req.City},
		AcceptedTerms: s.campaign,
		DateCreated:   now,
		DateUpdated:   now,
		LastLogin:     now,
	}

	if err := s.userRepository.SaveUser(ctx, user); err != nil {
		log.Error("failed to save user", slog.String("error", err.Error()))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user created", slog.String("user_id", user.ID.String()))

	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (models.User, error) {
	const op = "services.UserService.GetUser"

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.localize(user), nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "services.UserService.ListUsers"

	users, err := s.userRepository.ListUsers(ctx)
	if err != nil {
		s.log.Error("failed to list users", slog.String("op", op), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := range users {
		users[i] = s.localize(users[i])
	}

	return users, nil
}

// UpdateUser applies the non-nil fields of req. The entry count is not
// writable through this path.
func (s *UserService) UpdateUser(ctx context.Context, userID uuid.UUID, req dto.UpdateUserRequest) (models.User, error) {
	const op = "services.UserService.UpdateUser"

	log := s.log.With(
		slog.String("op", op),
		slog.String("user_id", userID.String()),
	)

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if req.Email != nil && !middlewares.CorrectEmailChecker(*req.Email) {
		return models.User{}, fmt.Errorf("%s: %w", op, middlewares.ErrInvalidEmail)
	}

	applyString(&user.FirstName, req.FirstName)
	applyString(&user.LastName, req.LastName)
	applyString(&user.Email, req.Email)
	applyString(&user.Gender, req.Gender)
	applyString(&user.MobileNumber, req.MobileNumber)
	applyString(&user.Birthday, req.Birthday)
	applyString(&user.Address.Street, req.Street)
	applyString(&user.Address.City, req.City)
	user.FirstName = strings.TrimSpace(user.FirstName)
	if user.FirstName == "" {
		return models.User{}, fmt.Errorf("%s: %w", op, middlewares.ErrEmptyField)
	}

	// An empty Password leaves the stored hash in place.
	user.Password = nil
	if req.Password != nil {
		if err := middlewares.CheckPassword(*req.Password); err != nil {
			return models.User{}, fmt.Errorf("%s: %w", op, err)
		}
		user.Password, err = password.Hash(*req.Password)
		if err != nil {
			log.Error("failed to hash password", slog.String("error", err.Error()))
			return models.User{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	user.DateUpdated = time.Now().In(s.loc)

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		log.Error("failed to update user", slog.String("error", err.Error()))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user updated")

	return s.GetUser(ctx, userID)
}

// DeleteUser removes the user and every purchase it owns.
func (s *UserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	const op = "services.UserService.DeleteUser"

	log := s.log.With(
		slog.String("op", op),
		slog.String("user_id", userID.String()),
	)

	if err := s.userRepository.DeleteUser(ctx, userID); err != nil {
		log.Error("failed to delete user", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user and purchases deleted")

	return nil
}

// ReconcileEntries recomputes the user's entry count from its purchases.
// Running it again yields the same count.
func (s *UserService) ReconcileEntries(ctx context.Context, userID uuid.UUID) (models.User, error) {
	const op = "services.UserService.ReconcileEntries"

	log := s.log.With(
		slog.String("op", op),
		slog.String("user_id", userID.String()),
	)

	user, err := s.userRepository.ReconcileEntries(ctx, userID)
	if err != nil {
		log.Error("failed to reconcile entries", slog.String("error", err.Error()))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("entries reconciled", slog.Int("entry_count", user.EntryCount))

	return s.localize(user), nil
}

func (s *UserService) localize(user models.User) models.User {
	user.DateCreated = user.DateCreated.In(s.loc)
	user.DateUpdated = user.DateUpdated.In(s.loc)
	user.LastLogin = user.LastLogin.In(s.loc)
	return user
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
