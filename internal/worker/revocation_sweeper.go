package worker

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-backend/internal/auth"
	"github.com/spec-kit/portfolio-backend/internal/observability"
)

// Pruner drops revocation entries whose token has expired.
type Pruner interface {
	Prune() int
}

var _ Pruner = (*auth.RevocationRegistry)(nil)

// StartRevocationSweeper prunes the registry on the given cron spec. Stop the
// returned scheduler on shutdown.
func StartRevocationSweeper(spec string, registry Pruner, metrics *observability.Metrics, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		SweepRevocations(registry, metrics, logger)
	}); err != nil {
		return nil, fmt.Errorf("schedule revocation sweep %q: %w", spec, err)
	}
	c.Start()
	logger.Info("revocation sweeper started", zap.String("spec", spec))
	return c, nil
}

// SweepRevocations runs one pruning pass.
func SweepRevocations(registry Pruner, metrics *observability.Metrics, logger *zap.Logger) int {
	pruned := registry.Prune()
	metrics.RecordAuth(observability.AuthRevokedPruned, pruned)
	if pruned > 0 {
		logger.Debug("pruned expired revocations", zap.Int("count", pruned))
	}
	return pruned
}
