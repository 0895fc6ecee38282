package unit

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"raffle-api/internal/domain/models"
	"raffle-api/internal/lib/jwt"
	"raffle-api/internal/lib/password"
	"raffle-api/internal/middlewares"
	"raffle-api/internal/repository"
	"raffle-api/internal/services"
	"raffle-api/internal/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedUser(t *testing.T, email, pass string) models.User {
	t.Helper()

	hash, err := password.Hash(pass)
	require.NoError(t, err)

	return models.User{ID: uuid.New(), FirstName: "Juan", Email: email, Password: hash}
}

func TestAuthService_Login_IssuesTokensAndTouchesLastLogin(t *testing.T) {
	// Arrange
	ctx := context.Background()
	user := storedUser(t, "juan@example.com", "secret123")

	authRepo := new(mocks.AuthRepositoryMock)
	tokens := new(mocks.TokenStoreMock)
	jwtGen := jwt.NewGenerator("secret", time.Minute, time.Hour)
	service := services.NewAuthService(slog.Default(), authRepo, tokens, jwtGen)

	authRepo.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()
	authRepo.On("TouchLastLogin", ctx, user.ID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	tokens.On("StoreRefreshToken", ctx, user.ID.String(), mock.Anything, time.Hour).Return(nil).Once()

	// Act
	resp, err := service.Login(ctx, user.Email, "secret123")

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.False(t, resp.User.LastLogin.IsZero())
	authRepo.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	// Arrange
	ctx := context.Background()
	user := storedUser(t, "juan@example.com", "secret123")

	authRepo := new(mocks.AuthRepositoryMock)
	tokens := new(mocks.TokenStoreMock)
	service := services.NewAuthService(slog.Default(), authRepo, tokens, jwt.NewGenerator("secret", 0, 0))

	authRepo.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()

	// Act
	resp, err := service.Login(ctx, user.Email, "wrongPass")

	// Assert
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	assert.Empty(t, resp.Token)
	authRepo.AssertNotCalled(t, "TouchLastLogin", mock.Anything, mock.Anything, mock.Anything)
	tokens.AssertNotCalled(t, "StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	// Arrange
	ctx := context.Background()
	authRepo := new(mocks.AuthRepositoryMock)
	tokens := new(mocks.TokenStoreMock)
	service := services.NewAuthService(slog.Default(), authRepo, tokens, jwt.NewGenerator("secret", 0, 0))

	authRepo.On("GetUserByEmail", ctx, "ghost@example.com").
		Return(models.User{}, repository.ErrUserNotFound).Once()

	// Act
	_, err := service.Login(ctx, "ghost@example.com", "whatever1")

	// Assert
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	authRepo.AssertExpectations(t)
}

func TestAuthService_Login_PropagatesRepositoryErrors(t *testing.T) {
	// Arrange
	ctx := context.Background()
	authRepo := new(mocks.AuthRepositoryMock)
	tokens := new(mocks.TokenStoreMock)
	service := services.NewAuthService(slog.Default(), authRepo, tokens, jwt.NewGenerator("secret", 0, 0))

	authRepo.On("GetUserByEmail", ctx, "juan@example.com").
		Return(models.User{}, errors.New("db failure")).Once()

	// Act
	_, err := service.Login(ctx, "juan@example.com", "password123")

	// Assert
	assert.ErrorContains(t, err, "db failure")
	assert.NotErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_Login_RefreshTokenStorageFails(t *testing.T) {
	// Arrange
	ctx := context.Background()
	user := storedUser(t, "juan@example.com", "secret123")

	authRepo := new(mocks.AuthRepositoryMock)
	tokens := new(mocks.TokenStoreMock)
	service := services.NewAuthService(slog.Default(), authRepo, tokens, jwt.NewGenerator("secret", 0, 0))

	authRepo.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Once()
	authRepo.On("TouchLastLogin", ctx, user.ID, mock.Anything).Return(nil).Once()
	tokens.On("StoreRefreshToken", ctx, user.ID.String(), mock.Anything, mock.Anything).
		Return(errors.New("redis down")).Once()

	// Act
	resp, err := service.Login(ctx, user.Email, "secret123")

	// Assert
	assert.ErrorIs(t, err, services.ErrFailedToStoreRefreshToken)
	assert.Empty(t, resp.Token)
}

func TestAuthService_Login_InvalidInput(t *testing.T) {
	// Arrange
	authRepo := new(mocks.AuthRepositoryMock)
	tokens := new(mocks.TokenStoreMock)
	service := services.NewAuthService(slog.Default(), authRepo, tokens, jwt.NewGenerator("secret", 0, 0))

	// Act
	_, err := service.Login(context.Background(), "", "short")

	// Assert
	assert.ErrorIs(t, err, middlewares.ErrEmptyField)
	authRepo.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	// Arrange
	ctx := context.Background()
	userID := uuid.New()
	jwtGen := jwt.NewGenerator("secret", time.Minute, time.Hour)
	_, refresh, err := jwtGen.GeneratePair(userID.String())
	require.NoError(t, err)

	authRepo := new(mocks.AuthRepositoryMock)
	tokens := new(mocks.TokenStoreMock)
	service := services.NewAuthService(slog.Default(), authRepo, tokens, jwtGen)

	tokens.On("ConsumeRefreshToken", ctx, refresh).Return(userID.String(), nil).Once()
	authRepo.On("GetUserByID", ctx, userID).Return(models.User{ID: userID}, nil).Once()
	tokens.On("StoreRefreshToken", ctx, userID.String(), mock.Anything, time.Hour).Return(nil).Once()

	// Act
	access, newRefresh, err := service.Refresh(ctx, refresh)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEqual(t, refresh, newRefresh)
	tokens.AssertExpectations(t)
}

func TestAuthService_Refresh_RejectsUnknownToken(t *testing.T) {
	// Arrange
	ctx := context.Background()
	jwtGen := jwt.NewGenerator("secret", time.Minute, time.Hour)
	_, refresh, err := jwtGen.GeneratePair(uuid.NewString())
	require.NoError(t, err)

	authRepo := new(mocks.AuthRepositoryMock)
	tokens := new(mocks.TokenStoreMock)
	service := services.NewAuthService(slog.Default(), authRepo, tokens, jwtGen)

	tokens.On("ConsumeRefreshToken", ctx, refresh).Return("", repository.ErrTokenNotFound).Once()

	// Act
	_, _, err = service.Refresh(ctx, refresh)

	// Assert
	assert.ErrorIs(t, err, services.ErrInvalidRefreshToken)
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	// Arrange
	jwtGen := jwt.NewGenerator("secret", time.Minute, time.Hour)
	access, _, err := jwtGen.GeneratePair(uuid.NewString())
	require.NoError(t, err)

	tokens := new(mocks.TokenStoreMock)
	service := services.NewAuthService(slog.Default(), new(mocks.AuthRepositoryMock), tokens, jwtGen)

	// Act
	_, _, err = service.Refresh(context.Background(), access)

	// Assert
	assert.ErrorIs(t, err, services.ErrInvalidRefreshToken)
	tokens.AssertNotCalled(t, "ConsumeRefreshToken", mock.Anything, mock.Anything)
}

func TestAuthService_Authenticate(t *testing.T) {
	// Arrange
	ctx := context.Background()
	user := storedUser(t, "juan@example.com", "secret123")

	authRepo := new(mocks.AuthRepositoryMock)
	service := services.NewAuthService(slog.Default(), authRepo, new(mocks.TokenStoreMock), jwt.NewGenerator("secret", 0, 0))

	authRepo.On("GetUserByEmail", ctx, user.Email).Return(user, nil).Twice()

	// Act
	id, err := service.Authenticate(ctx, user.Email, "secret123")
	_, wrongErr := service.Authenticate(ctx, user.Email, "nope")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
	assert.ErrorIs(t, wrongErr, services.ErrInvalidCredentials)
}

func TestAuthService_UserExists(t *testing.T) {
	ctx := context.Background()
	live, gone := uuid.New(), uuid.New()

	authRepo := new(mocks.AuthRepositoryMock)
	service := services.NewAuthService(slog.Default(), authRepo, new(mocks.TokenStoreMock), jwt.NewGenerator("secret", 0, 0))

	authRepo.On("GetUserByID", ctx, live).Return(models.User{ID: live}, nil).Once()
	authRepo.On("GetUserByID", ctx, gone).Return(models.User{}, repository.ErrUserNotFound).Once()

	tests := []struct {
		name   string
		userID string
		want   bool
	}{
		{"stored user", live.String(), true},
		{"deleted user", gone.String(), false},
		{"malformed subject", "not-a-uuid", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			exists, err := service.UserExists(ctx, tt.userID)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.want, exists)
		})
	}
	authRepo.AssertExpectations(t)
}

func TestAuthService_UserExists_PropagatesRepositoryErrors(t *testing.T) {
	// Arrange
	ctx := context.Background()
	userID := uuid.New()

	authRepo := new(mocks.AuthRepositoryMock)
	service := services.NewAuthService(slog.Default(), authRepo, new(mocks.TokenStoreMock), jwt.NewGenerator("secret", 0, 0))
	authRepo.On("GetUserByID", ctx, userID).Return(models.User{}, errors.New("db down")).Once()

	// Act
	exists, err := service.UserExists(ctx, userID.String())

	// Assert
	assert.False(t, exists)
	assert.ErrorContains(t, err, "db down")
}
