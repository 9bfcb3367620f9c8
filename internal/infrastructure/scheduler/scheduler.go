package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/fieldserv-inc/fieldserv/internal/application/invoice/usecases"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
)

// Scheduler owns the background jobs. Currently a single job: periodically
// sweep approved invoices past their payment due date and mark them overdue.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    logger.Interface
}

func New(log logger.Interface) (*Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: s,
		logger:    log,
	}, nil
}

// RegisterOverdueScan schedules the overdue invoice sweep at the given
// interval. Each run marks at most one scan batch; concurrent runs are
// prevented by the singleton mode.
func (s *Scheduler) RegisterOverdueScan(uc *usecases.MarkOverdueInvoicesUseCase, interval time.Duration) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			result, err := uc.Execute(ctx, usecases.MarkOverdueInvoicesCommand{Now: time.Now().UTC()})
			if err != nil {
				s.logger.Errorw("overdue invoice scan failed", "error", err)
				return
			}

			if result.Marked > 0 || result.Skipped > 0 {
				s.logger.Infow("overdue invoice scan completed",
					"marked", result.Marked,
					"skipped", result.Skipped,
				)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName("invoice-overdue-scan"),
	)
	if err != nil {
		return fmt.Errorf("failed to register overdue scan job: %w", err)
	}

	return nil
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
	s.logger.Infow("scheduler started")
}

func (s *Scheduler) Stop() error {
	if err := s.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	s.logger.Infow("scheduler stopped")
	return nil
}
