package usecases

import (
	"context"
	"log/slog"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/invoice"
	"github.com/fieldserv-inc/fieldserv/internal/domain/settlement"
	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
	"github.com/fieldserv-inc/fieldserv/internal/shared/services/markdown"
)

type mockBatchRepository struct {
	SaveFunc           func(ctx context.Context, batch *settlement.PaymentBatch) error
	GetByIDFunc        func(ctx context.Context, id uint) (*settlement.PaymentBatch, error)
	GetByReferenceFunc func(ctx context.Context, reference string) (*settlement.PaymentBatch, error)
	ListFunc           func(ctx context.Context, filter settlement.Filter) ([]*settlement.PaymentBatch, int64, error)
}

func (m *mockBatchRepository) Save(ctx context.Context, batch *settlement.PaymentBatch) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, batch)
	}
	return nil
}

func (m *mockBatchRepository) GetByID(ctx context.Context, id uint) (*settlement.PaymentBatch, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockBatchRepository) GetByReference(ctx context.Context, reference string) (*settlement.PaymentBatch, error) {
	if m.GetByReferenceFunc != nil {
		return m.GetByReferenceFunc(ctx, reference)
	}
	return nil, nil
}

func (m *mockBatchRepository) List(ctx context.Context, filter settlement.Filter) ([]*settlement.PaymentBatch, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockInvoiceRepository struct {
	SaveFunc                        func(ctx context.Context, inv *invoice.Invoice) error
	UpdateFunc                      func(ctx context.Context, inv *invoice.Invoice) error
	GetByIDFunc                     func(ctx context.Context, id uint) (*invoice.Invoice, error)
	GetActiveByTicketIDFunc         func(ctx context.Context, ticketID uint) (*invoice.Invoice, error)
	GetByIDsFunc                    func(ctx context.Context, ids []uint) ([]*invoice.Invoice, error)
	ExistsByContractorAndNumberFunc func(ctx context.Context, contractorID uint, number string) (bool, error)
	ListFunc                        func(ctx context.Context, filter invoice.Filter) ([]*invoice.Invoice, int64, error)
	ListApprovedDueBeforeFunc       func(ctx context.Context, cutoff time.Time, limit int) ([]*invoice.Invoice, error)
}

func (m *mockInvoiceRepository) Save(ctx context.Context, inv *invoice.Invoice) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, inv)
	}
	return nil
}

func (m *mockInvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, inv)
	}
	return nil
}

func (m *mockInvoiceRepository) GetByID(ctx context.Context, id uint) (*invoice.Invoice, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockInvoiceRepository) GetActiveByTicketID(ctx context.Context, ticketID uint) (*invoice.Invoice, error) {
	if m.GetActiveByTicketIDFunc != nil {
		return m.GetActiveByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockInvoiceRepository) GetByIDs(ctx context.Context, ids []uint) ([]*invoice.Invoice, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *mockInvoiceRepository) ExistsByContractorAndNumber(ctx context.Context, contractorID uint, number string) (bool, error) {
	if m.ExistsByContractorAndNumberFunc != nil {
		return m.ExistsByContractorAndNumberFunc(ctx, contractorID, number)
	}
	return false, nil
}

func (m *mockInvoiceRepository) List(ctx context.Context, filter invoice.Filter) ([]*invoice.Invoice, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockInvoiceRepository) ListApprovedDueBefore(ctx context.Context, cutoff time.Time, limit int) ([]*invoice.Invoice, error) {
	if m.ListApprovedDueBeforeFunc != nil {
		return m.ListApprovedDueBeforeFunc(ctx, cutoff, limit)
	}
	return nil, nil
}

type mockTransactionRunner struct {
	Err error
}

func (m *mockTransactionRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx)
}

type mockEventDispatcher struct {
	Published []events.DomainEvent
}

func (m *mockEventDispatcher) Publish(event events.DomainEvent) error {
	m.Published = append(m.Published, event)
	return nil
}

func (m *mockEventDispatcher) PublishAll(evts []events.DomainEvent) error {
	m.Published = append(m.Published, evts...)
	return nil
}

func (m *mockEventDispatcher) Subscribe(eventType string, handler events.EventHandler) error {
	return nil
}

func (m *mockEventDispatcher) Start() error { return nil }
func (m *mockEventDispatcher) Stop() error  { return nil }

func newTestLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler))
}

func newTestMarkdown() markdown.Service {
	return markdown.NewService()
}
