package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/LucraWealth/lucra-wallet/internal/common"
	"github.com/LucraWealth/lucra-wallet/internal/interfaces"
)

// overdueRefreshSpec runs shortly after midnight so bills due "today" flip
// to overdue at the start of the next day.
const overdueRefreshSpec = "5 0 * * *"

// scheduler wraps the cron runner for the daily overdue refresh.
type scheduler struct {
	cron   *cron.Cron
	logger *common.Logger
}

func startScheduler(ledger interfaces.LedgerService, logger *common.Logger) (*scheduler, error) {
	c := cron.New()

	_, err := c.AddFunc(overdueRefreshSpec, func() {
		changed := ledger.RefreshOverdue(context.Background(), time.Now())
		if changed > 0 {
			logger.Info().Int("bills", changed).Msg("Scheduled overdue refresh updated bills")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule overdue refresh: %w", err)
	}

	c.Start()
	logger.Info().Str("schedule", overdueRefreshSpec).Msg("Overdue refresh scheduler started")
	return &scheduler{cron: c, logger: logger}, nil
}

// stop halts the cron runner and waits for a running job to finish.
func (s *scheduler) stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("Overdue refresh scheduler stopped")
}
