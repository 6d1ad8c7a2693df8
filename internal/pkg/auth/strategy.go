package auth

import (
	"errors"
	"time"

	"github.com/polkiloo/campusfood/internal/domain/model"
)

// ErrInvalidToken is returned for malformed, tampered or expired tokens.
var ErrInvalidToken = errors.New("invalid auth token")

// Strategy issues and verifies tokens that identify a principal.
type Strategy interface {
	IssueToken(principal model.Principal) (string, error)
	ParseToken(token string) (model.Principal, error)
	Name() string
}

type Options struct {
	TTL time.Duration
	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}
