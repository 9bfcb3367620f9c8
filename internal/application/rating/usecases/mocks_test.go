package usecases

import (
	"context"
	"log/slog"

	"github.com/fieldserv-inc/fieldserv/internal/application/rating/dto"
	"github.com/fieldserv-inc/fieldserv/internal/domain/rating"
	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
	"github.com/fieldserv-inc/fieldserv/internal/shared/services/markdown"
)

type mockRatingRepository struct {
	SaveFunc               func(ctx context.Context, r *rating.Rating) error
	GetByIDFunc            func(ctx context.Context, id uint) (*rating.Rating, error)
	GetByTicketIDFunc      func(ctx context.Context, ticketID uint) (*rating.Rating, error)
	ExistsByTicketIDFunc   func(ctx context.Context, ticketID uint) (bool, error)
	ListByContractorIDFunc func(ctx context.Context, contractorID uint, page, pageSize int) ([]*rating.Rating, int64, error)
}

func (m *mockRatingRepository) Save(ctx context.Context, r *rating.Rating) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, r)
	}
	return nil
}

func (m *mockRatingRepository) GetByID(ctx context.Context, id uint) (*rating.Rating, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockRatingRepository) GetByTicketID(ctx context.Context, ticketID uint) (*rating.Rating, error) {
	if m.GetByTicketIDFunc != nil {
		return m.GetByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockRatingRepository) ExistsByTicketID(ctx context.Context, ticketID uint) (bool, error) {
	if m.ExistsByTicketIDFunc != nil {
		return m.ExistsByTicketIDFunc(ctx, ticketID)
	}
	return false, nil
}

func (m *mockRatingRepository) ListByContractorID(ctx context.Context, contractorID uint, page, pageSize int) ([]*rating.Rating, int64, error) {
	if m.ListByContractorIDFunc != nil {
		return m.ListByContractorIDFunc(ctx, contractorID, page, pageSize)
	}
	return nil, 0, nil
}

type mockReputationRepository struct {
	SaveFunc              func(ctx context.Context, rep *rating.ContractorReputation) error
	UpdateFunc            func(ctx context.Context, rep *rating.ContractorReputation) error
	GetByContractorIDFunc func(ctx context.Context, contractorID uint) (*rating.ContractorReputation, error)
}

func (m *mockReputationRepository) Save(ctx context.Context, rep *rating.ContractorReputation) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, rep)
	}
	return nil
}

func (m *mockReputationRepository) Update(ctx context.Context, rep *rating.ContractorReputation) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, rep)
	}
	return nil
}

func (m *mockReputationRepository) GetByContractorID(ctx context.Context, contractorID uint) (*rating.ContractorReputation, error) {
	if m.GetByContractorIDFunc != nil {
		return m.GetByContractorIDFunc(ctx, contractorID)
	}
	return nil, nil
}

type mockTicketReader struct {
	GetByIDFunc func(ctx context.Context, id uint) (*ticket.Ticket, error)
}

func (m *mockTicketReader) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
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

type mockReputationCache struct {
	GetFunc     func(ctx context.Context, contractorID uint) (*dto.ReputationDTO, error)
	SetFunc     func(ctx context.Context, rep *dto.ReputationDTO) error
	Invalidated []uint
}

func (m *mockReputationCache) Get(ctx context.Context, contractorID uint) (*dto.ReputationDTO, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, contractorID)
	}
	return nil, nil
}

func (m *mockReputationCache) Set(ctx context.Context, rep *dto.ReputationDTO) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, rep)
	}
	return nil
}

func (m *mockReputationCache) Invalidate(ctx context.Context, contractorID uint) error {
	m.Invalidated = append(m.Invalidated, contractorID)
	return nil
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
