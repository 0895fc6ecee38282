package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"raffle-api/internal/domain/dto"
	"raffle-api/internal/domain/models"
	"raffle-api/internal/lib/metrics"
	"raffle-api/internal/lib/raffle"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("amount must be a non-negative number below 10^12 with at most 2 decimal places")

// maxAmount is the exclusive upper bound of the NUMERIC(14, 2) amount column.
var maxAmount = decimal.New(1, 12)

type PurchaseService struct {
	log                *slog.Logger
	purchaseRepository PurchaseRepository
	policy             raffle.Policy
	campaign           models.Campaign
	loc                *time.Location
}

// PurchaseRepository.CreatePurchase must store the purchase and add its
// EntriesEarned to the owner's entry count atomically.
type PurchaseRepository interface {
	CreatePurchase(ctx context.Context, purchase models.Purchase) error
	GetPurchase(ctx context.Context, purchaseID uuid.UUID) (models.Purchase, error)
	ListPurchases(ctx context.Context, userID *uuid.UUID) ([]models.Purchase, error)
	DeletePurchase(ctx context.Context, purchaseID uuid.UUID) error
}

func NewPurchaseService(log *slog.Logger, purchaseRepository PurchaseRepository, policy raffle.Policy,
	campaign models.Campaign, loc *time.Location) *PurchaseService {
	if loc == nil {
		loc = time.UTC
	}

	return &PurchaseService{
		log:                log,
		purchaseRepository: purchaseRepository,
		policy:             policy,
		campaign:           campaign,
		loc:                loc,
	}
}

// CreatePurchase evaluates the accrual policy once, stores the result on the
// purchase and credits it to the owner.
func (s *PurchaseService) CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest) (models.Purchase, error) {
	const op = "services.PurchaseService.CreatePurchase"

	log := s.log.With(
		slog.String("op", op),
		slog.String("user_id", req.UserID.String()),
	)

	if err := validateAmount(req.Amount); err != nil {
		return models.Purchase{}, fmt.Errorf("%s: %w", op, err)
	}

	purchase := models.Purchase{
		ID:              uuid.New(),
		UserID:          req.UserID,
		Amount:          *req.Amount,
		StoreName:       req.StoreName,
		CardUsed:        req.CardUsed,
		TransactionDate: req.TransactionDate,
		TransactionType: req.TransactionType,
		Campaign:        s.campaign,
		EntriesEarned:   s.policy.Compute(*req.Amount, req.CardUsed),
		DateCreated:     time.Now().In(s.loc),
	}

	if err := s.purchaseRepository.CreatePurchase(ctx, purchase); err != nil {
		log.Error("failed to create purchase", slog.String("error", err.Error()))
		return models.Purchase{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.ObservePurchase(purchase.EntriesEarned)

	log.Info("purchase created",
		slog.String("purchase_id", purchase.ID.String()),
		slog.Int("entries_earned", purchase.EntriesEarned),
	)

	return purchase, nil
}

func (s *PurchaseService) GetPurchase(ctx context.Context, purchaseID uuid.UUID) (models.Purchase, error) {
	const op = "services.PurchaseService.GetPurchase"

	purchase, err := s.purchaseRepository.GetPurchase(ctx, purchaseID)
	if err != nil {
		return models.Purchase{}, fmt.Errorf("%s: %w", op, err)
	}

	purchase.DateCreated = purchase.DateCreated.In(s.loc)

	return purchase, nil
}

// ListPurchases returns every live purchase, or only userID's when it is set.
func (s *PurchaseService) ListPurchases(ctx context.Context, userID *uuid.UUID) ([]models.Purchase, error) {
	const op = "services.PurchaseService.ListPurchases"

	purchases, err := s.purchaseRepository.ListPurchases(ctx, userID)
	if err != nil {
		s.log.Error("failed to list purchases", slog.String("op", op), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := range purchases {
		purchases[i].DateCreated = purchases[i].DateCreated.In(s.loc)
	}

	return purchases, nil
}

// DeletePurchase does not take back entries the purchase already credited.
func (s *PurchaseService) DeletePurchase(ctx context.Context, purchaseID uuid.UUID) error {
	const op = "services.PurchaseService.DeletePurchase"

	log := s.log.With(
		slog.String("op", op),
		slog.String("purchase_id", purchaseID.String()),
	)

	if err := s.purchaseRepository.DeletePurchase(ctx, purchaseID); err != nil {
		log.Error("failed to delete purchase", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("purchase deleted")

	return nil
}

// validateAmount accepts only amounts the store keeps exactly, so the entries
// computed here match a recomputation from the stored amount.
func validateAmount(amount *decimal.Decimal) error {
	switch {
	case amount == nil,
		amount.IsNegative(),
		amount.GreaterThanOrEqual(maxAmount),
		!amount.Equal(amount.Truncate(2)):
		return ErrInvalidAmount
	}

	return nil
}
