package api

import (
	"context"

	"github.com/srkarthi1982/guess-the-emoji/internal/services"
)

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	UserID(token string) (string, error)
}

// ReadinessCheck is one dependency probed by /readyz.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type Server struct {
	PuzzleService   services.PuzzleService
	SessionService  services.SessionService
	AttemptService  services.AttemptService
	Auth            TokenVerifier
	ReadinessChecks []ReadinessCheck
}
