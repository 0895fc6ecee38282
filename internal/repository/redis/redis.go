package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"raffle-api/internal/repository"

	"github.com/redis/go-redis/v9"
)

const refreshPrefix = "refresh:"

type Storage struct {
	db *redis.Client
}

func InitRedis(ctx context.Context, addr, password string, db int) (*Storage, error) {
	const op = "storage.redis.InitRedis"

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: client}, nil
}

func (s *Storage) StoreRefreshToken(ctx context.Context, userID, refreshToken string, ttl time.Duration) error {
	const op = "storage.redis.StoreRefreshToken"

	if err := s.db.Set(ctx, refreshPrefix+refreshToken, userID, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ConsumeRefreshToken returns the owner of refreshToken and removes it, so a
// refresh token can be exchanged only once.
func (s *Storage) ConsumeRefreshToken(ctx context.Context, refreshToken string) (string, error) {
	const op = "storage.redis.ConsumeRefreshToken"

	userID, err := s.db.GetDel(ctx, refreshPrefix+refreshToken).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("%s: %w", op, repository.ErrTokenNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return userID, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
