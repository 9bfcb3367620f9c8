package rating

import "context"

type Repository interface {
	Save(ctx context.Context, r *Rating) error
	GetByID(ctx context.Context, id uint) (*Rating, error)
	GetByTicketID(ctx context.Context, ticketID uint) (*Rating, error)
	ExistsByTicketID(ctx context.Context, ticketID uint) (bool, error)
	ListByContractorID(ctx context.Context, contractorID uint, page, pageSize int) ([]*Rating, int64, error)
}

// ReputationRepository persists the per-contractor aggregate. Update is a
// version-conditional write so concurrent rating submissions for the same
// contractor cannot lose increments.
type ReputationRepository interface {
	Save(ctx context.Context, rep *ContractorReputation) error
	Update(ctx context.Context, rep *ContractorReputation) error
	GetByContractorID(ctx context.Context, contractorID uint) (*ContractorReputation, error)
}
