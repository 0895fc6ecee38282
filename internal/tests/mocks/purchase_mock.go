package mocks

import (
	"context"

	"raffle-api/internal/domain/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type PurchaseRepositoryMock struct {
	mock.Mock
}

func (m *PurchaseRepositoryMock) CreatePurchase(ctx context.Context, purchase models.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *PurchaseRepositoryMock) GetPurchase(ctx context.Context, purchaseID uuid.UUID) (models.Purchase, error) {
	args := m.Called(ctx, purchaseID)
	return args.Get(0).(models.Purchase), args.Error(1)
}

func (m *PurchaseRepositoryMock) ListPurchases(ctx context.Context, userID *uuid.UUID) ([]models.Purchase, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Purchase), args.Error(1)
}

func (m *PurchaseRepositoryMock) DeletePurchase(ctx context.Context, purchaseID uuid.UUID) error {
	args := m.Called(ctx, purchaseID)
	return args.Error(0)
}
