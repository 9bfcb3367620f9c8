package usecases

import (
	"context"
	"time"

	"github.com/fieldserv-inc/fieldserv/internal/domain/rating"
	"github.com/fieldserv-inc/fieldserv/internal/domain/shared/events"
	apperrors "github.com/fieldserv-inc/fieldserv/internal/shared/errors"
	"github.com/fieldserv-inc/fieldserv/internal/shared/logger"
	"github.com/fieldserv-inc/fieldserv/internal/shared/services/markdown"
)

type SubmitRatingCommand struct {
	TicketID  uint
	RatedBy   uint
	Checklist rating.Checklist
	Comment   string
}

type SubmitRatingResult struct {
	RatingID     uint `json:"rating_id"`
	TicketID     uint `json:"ticket_id"`
	ContractorID uint `json:"contractor_id"`

	Punctuality     int `json:"punctuality"`
	PPE             int `json:"ppe"`
	CustomerService int `json:"customer_service"`
	Workmanship     int `json:"workmanship"`
	SiteProcedures  int `json:"site_procedures"`

	OverallPercentage int `json:"overall_percentage"`
	Stars             int `json:"stars"`

	CreatedAt string `json:"created_at"`
}

// SubmitRatingUseCase records the requester's evaluation of a completed
// ticket and folds it into the contractor's reputation in the same
// transaction. The reputation write is version-conditional; a losing race
// surfaces as a concurrent modification error for the caller to retry.
type SubmitRatingUseCase struct {
	ratingRepo      rating.Repository
	reputationRepo  rating.ReputationRepository
	tickets         TicketReader
	txRunner        TransactionRunner
	cache           ReputationCache
	md              markdown.Service
	eventDispatcher events.EventDispatcher
	logger          logger.Interface
}

func NewSubmitRatingUseCase(
	ratingRepo rating.Repository,
	reputationRepo rating.ReputationRepository,
	tickets TicketReader,
	txRunner TransactionRunner,
	cache ReputationCache,
	md markdown.Service,
	eventDispatcher events.EventDispatcher,
	logger logger.Interface,
) *SubmitRatingUseCase {
	return &SubmitRatingUseCase{
		ratingRepo:      ratingRepo,
		reputationRepo:  reputationRepo,
		tickets:         tickets,
		txRunner:        txRunner,
		cache:           cache,
		md:              md,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

func (uc *SubmitRatingUseCase) Execute(ctx context.Context, cmd SubmitRatingCommand) (*SubmitRatingResult, error) {
	uc.logger.Infow("executing submit rating use case",
		"ticket_id", cmd.TicketID,
		"rated_by", cmd.RatedBy)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid submit rating command", "error", err)
		return nil, err
	}

	t, err := uc.tickets.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to find ticket", "error", err, "ticket_id", cmd.TicketID)
		return nil, apperrors.NewNotFoundError("ticket not found")
	}
	if !t.Status().IsCompleted() {
		return nil, apperrors.NewInvalidTransitionError("ratings can only be submitted for completed tickets")
	}
	if t.RequesterID() != cmd.RatedBy {
		return nil, apperrors.NewInvalidTransitionError("only the ticket requester may submit a rating")
	}
	if t.AssigneeID() == nil {
		return nil, apperrors.NewInvalidTransitionError("ticket has no assigned contractor to rate")
	}
	contractorID := *t.AssigneeID()

	exists, err := uc.ratingRepo.ExistsByTicketID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to check for existing rating", "error", err)
		return nil, apperrors.NewInternalError("failed to check for existing rating")
	}
	if exists {
		return nil, apperrors.NewConflictError("ticket has already been rated")
	}

	comment := uc.md.StripToText(cmd.Comment)
	r, err := rating.NewRating(cmd.TicketID, contractorID, cmd.RatedBy, cmd.Checklist, comment)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	txErr := uc.txRunner.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ratingRepo.Save(txCtx, r); err != nil {
			return err
		}

		rep, err := uc.reputationRepo.GetByContractorID(txCtx, contractorID)
		if err != nil {
			if !apperrors.IsNotFoundError(err) {
				return err
			}
			rep, err = rating.NewContractorReputation(contractorID)
			if err != nil {
				return err
			}
			if err := rep.Fold(r); err != nil {
				return err
			}
			return uc.reputationRepo.Save(txCtx, rep)
		}

		if err := rep.Fold(r); err != nil {
			return err
		}
		return uc.reputationRepo.Update(txCtx, rep)
	})
	if txErr != nil {
		uc.logger.Errorw("failed to save rating", "error", txErr, "ticket_id", cmd.TicketID)
		if apperrors.IsAppError(txErr) {
			return nil, txErr
		}
		if apperrors.IsDuplicateError(txErr) {
			return nil, apperrors.NewConflictError("ticket has already been rated")
		}
		return nil, apperrors.NewInternalError("failed to save rating")
	}

	if err := uc.cache.Invalidate(ctx, contractorID); err != nil {
		uc.logger.Warnw("failed to invalidate reputation cache", "error", err, "contractor_id", contractorID)
	}

	r.RecordSubmitted()
	for _, event := range r.PendingEvents() {
		if err := uc.eventDispatcher.Publish(event); err != nil {
			uc.logger.Warnw("failed to dispatch event", "error", err, "event_type", event.GetEventType())
		}
	}
	r.ClearEvents()

	s := r.Scores()
	uc.logger.Infow("rating submitted",
		"rating_id", r.ID(),
		"ticket_id", r.TicketID(),
		"contractor_id", contractorID,
		"overall", s.OverallPercentage,
		"stars", s.Stars)

	return &SubmitRatingResult{
		RatingID:     r.ID(),
		TicketID:     r.TicketID(),
		ContractorID: contractorID,

		Punctuality:     s.Punctuality,
		PPE:             s.PPE,
		CustomerService: s.CustomerService,
		Workmanship:     s.Workmanship,
		SiteProcedures:  s.SiteProcedures,

		OverallPercentage: s.OverallPercentage,
		Stars:             s.Stars,

		CreatedAt: r.CreatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *SubmitRatingUseCase) validateCommand(cmd SubmitRatingCommand) error {
	if cmd.TicketID == 0 {
		return apperrors.NewValidationError("ticket ID is required")
	}
	if cmd.RatedBy == 0 {
		return apperrors.NewValidationError("rater ID is required")
	}
	return nil
}
