package settlement

import "context"

type Repository interface {
	Save(ctx context.Context, batch *PaymentBatch) error
	GetByID(ctx context.Context, id uint) (*PaymentBatch, error)
	GetByReference(ctx context.Context, reference string) (*PaymentBatch, error)
	List(ctx context.Context, filter Filter) ([]*PaymentBatch, int64, error)
}

type Filter struct {
	CreatedBy *uint
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
