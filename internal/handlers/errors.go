package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"raffle-api/internal/middlewares"
	"raffle-api/internal/repository"
	"raffle-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errInvalidID = errors.New("invalid id")

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, middlewares.ErrEmptyField),
		errors.Is(err, middlewares.ErrInvalidEmail),
		errors.Is(err, middlewares.ErrPasswordTooShort),
		errors.Is(err, errInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidRefreshToken):
		return http.StatusUnauthorized
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrPurchaseNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrUserAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped status. Unmapped errors are logged and
// reported as a generic server error.
func respondError(c *gin.Context, log *slog.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
		c.JSON(status, gin.H{"error": "Server error"})
		return
	}

	c.JSON(status, gin.H{"error": cause(err).Error()})
}

// cause strips the op prefixes added by each layer.
func cause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func paramID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errInvalidID
	}

	return id, nil
}
