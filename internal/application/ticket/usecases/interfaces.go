package usecases

import (
	"context"
	"errors"

	"github.com/fieldserv-inc/fieldserv/internal/application/ticket/dto"
	"github.com/fieldserv-inc/fieldserv/internal/domain/ticket"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*CreateTicketResult, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*UpdateTicketResult, error)
}

type AssignTicketExecutor interface {
	Execute(ctx context.Context, cmd AssignTicketCommand) (*AssignTicketResult, error)
}

type AcceptTicketExecutor interface {
	Execute(ctx context.Context, cmd AcceptTicketCommand) (*AcceptTicketResult, error)
}

type RejectAssignmentExecutor interface {
	Execute(ctx context.Context, cmd RejectAssignmentCommand) (*RejectAssignmentResult, error)
}

type ConfirmOnSiteExecutor interface {
	Execute(ctx context.Context, cmd ConfirmOnSiteCommand) (*ConfirmOnSiteResult, error)
}

type StartWorkExecutor interface {
	Execute(ctx context.Context, cmd StartWorkCommand) (*StartWorkResult, error)
}

type RequestWorkDescriptionExecutor interface {
	Execute(ctx context.Context, cmd RequestWorkDescriptionCommand) (*RequestWorkDescriptionResult, error)
}

type SubmitWorkDescriptionExecutor interface {
	Execute(ctx context.Context, cmd SubmitWorkDescriptionCommand) (*SubmitWorkDescriptionResult, error)
}

type ApproveWorkExecutor interface {
	Execute(ctx context.Context, cmd ApproveWorkCommand) (*ApproveWorkResult, error)
}

type RejectWorkExecutor interface {
	Execute(ctx context.Context, cmd RejectWorkCommand) (*RejectWorkResult, error)
}

type CloseTicketExecutor interface {
	Execute(ctx context.Context, cmd CloseTicketCommand) (*CloseTicketResult, error)
}

type CancelTicketExecutor interface {
	Execute(ctx context.Context, cmd CancelTicketCommand) (*CancelTicketResult, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

// RatingFinder is the narrow read the close operation needs from the rating
// side: closing a completed ticket requires a submitted rating.
type RatingFinder interface {
	ExistsByTicketID(ctx context.Context, ticketID uint) (bool, error)
}

// domainError maps an aggregate guard failure onto the typed taxonomy.
func domainError(err error) error {
	if errors.Is(err, ticket.ErrInvalidTransition) {
		return apperrors.NewInvalidTransitionError(err.Error())
	}
	return apperrors.NewValidationError(err.Error())
}
