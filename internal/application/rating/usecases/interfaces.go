package usecases

import (
	"context"

	"github.com/fieldserv-inc/fieldserv/internal/application/rating/dto"
	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
)

type SubmitRatingExecutor interface {
	Execute(ctx context.Context, cmd SubmitRatingCommand) (*SubmitRatingResult, error)
}

type GetTicketRatingExecutor interface {
	Execute(ctx context.Context, query GetTicketRatingQuery) (*dto.RatingDTO, error)
}

type ListContractorRatingsExecutor interface {
	Execute(ctx context.Context, query ListContractorRatingsQuery) (*ListContractorRatingsResult, error)
}

type GetContractorReputationExecutor interface {
	Execute(ctx context.Context, query GetContractorReputationQuery) (*dto.ReputationDTO, error)
}

// TicketReader is the narrow ticket read the rating side needs: a rating may
// only be submitted by the requester of a completed ticket.
type TicketReader interface {
	GetByID(ctx context.Context, id uint) (*ticket.Ticket, error)
}

// TransactionRunner runs a function inside one database transaction. Satisfied
// by db.TransactionManager.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReputationCache is the read-side cache for contractor reputation. A miss
// returns (nil, nil); cache failures are never fatal to the caller.
type ReputationCache interface {
	Get(ctx context.Context, contractorID uint) (*dto.ReputationDTO, error)
	Set(ctx context.Context, rep *dto.ReputationDTO) error
	Invalidate(ctx context.Context, contractorID uint) error
}
