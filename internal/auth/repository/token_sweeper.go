package repository

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iots1/contacts-api/internal/shared/utils"
)

// SweepExpiredTokens deletes expired refresh tokens every interval until
// ctx is cancelled. Rows past expires_at are already unusable, the sweep
// just keeps the table from growing without bound.
func SweepExpiredTokens(ctx context.Context, tokens RefreshTokenRepository, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := tokens.DeleteExpired(ctx)
			if err != nil {
				utils.Logger.Warn("Failed to sweep expired refresh tokens", zap.Error(err))
				continue
			}
			if removed > 0 {
				utils.Logger.Info("Swept expired refresh tokens", zap.Int64("removed", removed))
			}
		}
	}
}
