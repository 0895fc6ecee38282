package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"raffle-api/internal/domain/dto"
	"raffle-api/internal/domain/models"
	"raffle-api/internal/lib/jwt"
	"raffle-api/internal/lib/password"
	"raffle-api/internal/middlewares"
	"raffle-api/internal/repository"

	"github.com/google/uuid"
)

type AuthService struct {
	log            *slog.Logger
	authRepository AuthRepository
	tokens         TokenStore
	jwtGen         *jwt.Generator
}

type AuthRepository interface {
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	TouchLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}

type TokenStore interface {
	StoreRefreshToken(ctx context.Context, userID, refreshToken string, ttl time.Duration) error
	ConsumeRefreshToken(ctx context.Context, refreshToken string) (string, error)
}

var (
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrInvalidRefreshToken       = errors.New("invalid refresh token")
	ErrFailedToGenerateTokens    = errors.New("failed to generate tokens")
	ErrFailedToStoreRefreshToken = errors.New("failed to store refresh token")
)

func NewAuthService(log *slog.Logger, authRepository AuthRepository, tokens TokenStore,
	jwtGen *jwt.Generator) *AuthService {
	return &AuthService{
		log:            log,
		authRepository: authRepository,
		tokens:         tokens,
		jwtGen:         jwtGen,
	}
}

func (s *AuthService) Login(ctx context.Context, email, pass string) (dto.AuthResponse, error) {
	const op = "services.AuthService.Login"

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	if err := middlewares.CheckInput(email, pass); err != nil {
		return dto.AuthResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.verify(ctx, email, pass)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			log.Info("invalid credentials")
		} else {
			log.Error("failed to verify credentials", slog.String("error", err.Error()))
		}
		return dto.AuthResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now()
	if err := s.authRepository.TouchLastLogin(ctx, user.ID, now); err != nil {
		log.Error("failed to update last login", slog.String("error", err.Error()))
		return dto.AuthResponse{}, fmt.Errorf("%s: %w", op, err)
	}
	user.LastLogin = now

	accessToken, refreshToken, err := s.issue(ctx, log, user.ID.String())
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))

	return dto.AuthResponse{
		User:         user,
		Token:        accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a stored refresh token for a new pair. The old refresh
// token is consumed even when the exchange fails afterwards.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	const op = "services.AuthService.Refresh"

	log := s.log.With(slog.String("op", op))

	subject, err := s.jwtGen.Parse(refreshToken, jwt.TypeRefresh)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, ErrInvalidRefreshToken)
	}

	owner, err := s.tokens.ConsumeRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return "", "", fmt.Errorf("%s: %w", op, ErrInvalidRefreshToken)
		}
		log.Error("failed to consume refresh token", slog.String("error", err.Error()))
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	if owner != subject {
		return "", "", fmt.Errorf("%s: %w", op, ErrInvalidRefreshToken)
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, ErrInvalidRefreshToken)
	}
	if _, err := s.authRepository.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", "", fmt.Errorf("%s: %w", op, ErrInvalidRefreshToken)
		}
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	accessToken, newRefresh, err := s.issue(ctx, log, subject)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	return accessToken, newRefresh, nil
}

// Authenticate checks an email and password pair for HTTP Basic auth.
func (s *AuthService) Authenticate(ctx context.Context, email, pass string) (uuid.UUID, error) {
	const op = "services.AuthService.Authenticate"

	user, err := s.verify(ctx, email, pass)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return user.ID, nil
}

// UserExists reports whether an access token subject still names a stored user.
func (s *AuthService) UserExists(ctx context.Context, userID string) (bool, error) {
	const op = "services.AuthService.UserExists"

	id, err := uuid.Parse(userID)
	if err != nil {
		return false, nil
	}

	if _, err := s.authRepository.GetUserByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, nil
		}
		s.log.Error("failed to look up token subject", slog.String("op", op), slog.String("error", err.Error()))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return true, nil
}

func (s *AuthService) verify(ctx context.Context, email, pass string) (models.User, error) {
	user, err := s.authRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := password.Compare(user.Password, pass); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	return user, nil
}

func (s *AuthService) issue(ctx context.Context, log *slog.Logger, userID string) (string, string, error) {
	accessToken, refreshToken, err := s.jwtGen.GeneratePair(userID)
	if err != nil {
		log.Error("failed to generate tokens", slog.String("error", err.Error()))
		return "", "", ErrFailedToGenerateTokens
	}

	if err := s.tokens.StoreRefreshToken(ctx, userID, refreshToken, s.jwtGen.RefreshTTL()); err != nil {
		log.Error("failed to store refresh token", slog.String("error", err.Error()))
		return "", "", ErrFailedToStoreRefreshToken
	}

	return accessToken, refreshToken, nil
}
