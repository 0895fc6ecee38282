package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")
)

type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

type Generator struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewGenerator(secret string, accessTTL, refreshTTL time.Duration) *Generator {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}

	return &Generator{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (g *Generator) RefreshTTL() time.Duration {
	return g.refreshTTL
}

func (g *Generator) GeneratePair(userID string) (accessToken string, refreshToken string, err error) {
	const op = "jwt.Generator.GeneratePair"

	accessToken, err = g.generate(userID, TypeAccess, g.accessTTL)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	refreshToken, err = g.generate(userID, TypeRefresh, g.refreshTTL)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	return accessToken, refreshToken, nil
}

// Parse validates the signature, expiry and token type and returns the subject.
func (g *Generator) Parse(token, tokenType string) (string, error) {
	const op = "jwt.Generator.Parse"

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	if claims.Type != tokenType {
		return "", fmt.Errorf("%s: %w", op, ErrWrongTokenType)
	}

	return claims.Subject, nil
}

func (g *Generator) generate(userID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
}
