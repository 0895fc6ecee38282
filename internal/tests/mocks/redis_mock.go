package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type TokenStoreMock struct {
	mock.Mock
}

func (m *TokenStoreMock) StoreRefreshToken(ctx context.Context, userID, refreshToken string, ttl time.Duration) error {
	args := m.Called(ctx, userID, refreshToken, ttl)
	return args.Error(0)
}

func (m *TokenStoreMock) ConsumeRefreshToken(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}
