// Package session stores the current calculator result for each browser
// session so the Empty/Populated state survives the redirect after a
// submission.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"go.uber.org/zap"
)

// ErrNotFound is returned by Load when a session holds no result.
var ErrNotFound = errors.New("session result not found")

// Store keeps one RepaymentResult per session id.
type Store interface {
	Load(ctx context.Context, id string) (mortgage.RepaymentResult, error)
	Save(ctx context.Context, id string, result mortgage.RepaymentResult) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// NewStore builds the store selected by cfg.Backend.
func NewStore(logger *zap.Logger, cfg config.SessionConfig) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ttl := cfg.TTLDuration()
	switch cfg.Backend {
	case constants.SessionBackendRedis:
		store, err := OpenRedisStore(cfg.Redis.Address, cfg.Redis.DB, ttl)
		if err != nil {
			return nil, fmt.Errorf("failed to open redis session store: %w", err)
		}
		logger.Info("using redis session store",
			zap.String("op", "session.NewStore"),
			zap.String("address", cfg.Redis.Address),
			zap.Int("db", cfg.Redis.DB),
			zap.Duration("ttl", ttl),
		)
		return store, nil
	default:
		logger.Info("using in-memory session store",
			zap.String("op", "session.NewStore"),
			zap.Duration("ttl", ttl),
		)
		return NewMemoryStore(ttl), nil
	}
}

func key(id string) string {
	return "mortgage:session:" + id
}

func defaultTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		d, _ := time.ParseDuration(constants.DefaultSessionTTL)
		return d
	}
	return ttl
}
