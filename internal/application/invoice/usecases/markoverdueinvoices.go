package usecases

import (
	"context"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/invoice"
	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
)

type MarkOverdueInvoicesCommand struct {
	Now   time.Time
	Limit int
}

type MarkOverdueInvoicesResult struct {
	Marked  int    `json:"marked"`
	Skipped int    `json:"skipped"`
	RanAt   string `json:"ran_at"`
}

const defaultOverdueScanLimit = 200

// MarkOverdueInvoicesUseCase is the scheduler entry point that flags approved
// invoices past their payment due date. A concurrent payment winning the
// version race is skipped, not retried; the invoice is settled either way.
type MarkOverdueInvoicesUseCase struct {
	invoiceRepo     invoice.Repository
	eventDispatcher events.EventDispatcher
	logger          logger.Interface
}

func NewMarkOverdueInvoicesUseCase(
	invoiceRepo invoice.Repository,
	eventDispatcher events.EventDispatcher,
	logger logger.Interface,
) *MarkOverdueInvoicesUseCase {
	return &MarkOverdueInvoicesUseCase{
		invoiceRepo:     invoiceRepo,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *MarkOverdueInvoicesUseCase) Execute(ctx context.Context, cmd MarkOverdueInvoicesCommand) (*MarkOverdueInvoicesResult, error) {
	now := cmd.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	limit := cmd.Limit
	if limit <= 0 {
		limit = defaultOverdueScanLimit
	}

	uc.logger.Infow("executing mark overdue invoices use case", "cutoff", now, "limit", limit)

	candidates, err := uc.invoiceRepo.ListApprovedDueBefore(ctx, now, limit)
	if err != nil {
		uc.logger.Errorw("failed to list overdue candidates", "error", err)
		return nil, apperrors.NewInternalError("failed to list overdue candidates")
	}

	marked := 0
	skipped := 0
	for _, inv := range candidates {
		if err := inv.MarkOverdue(now); err != nil {
			uc.logger.Warnw("skipping overdue candidate", "error", err, "invoice_id", inv.ID())
			skipped++
			continue
		}

		if err := uc.invoiceRepo.Update(ctx, inv); err != nil {
			if apperrors.IsConcurrentModificationError(err) {
				uc.logger.Infow("invoice changed since scan, skipping", "invoice_id", inv.ID())
				skipped++
				continue
			}
			uc.logger.Errorw("failed to update overdue invoice", "error", err, "invoice_id", inv.ID())
			skipped++
			continue
		}

		for _, event := range inv.PendingEvents() {
			if err := uc.eventDispatcher.Publish(event); err != nil {
				uc.logger.Warnw("failed to dispatch event", "error", err, "event_type", event.GetEventType())
			}
		}
		inv.ClearEvents()
		marked++
	}

	uc.logger.Infow("overdue scan finished", "marked", marked, "skipped", skipped)

	return &MarkOverdueInvoicesResult{
		Marked:  marked,
		Skipped: skipped,
		RanAt:   now.Format(time.RFC3339),
	}, nil
}
