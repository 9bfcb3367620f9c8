package invoice

import (
	"context"
	"time"

	vo "github.com/fieldserv-inc/fieldserv/internal/domain/invoice/valueobjects"
)

// Repository persists invoices. Update is a version-conditional write.
type Repository interface {
	Save(ctx context.Context, inv *Invoice) error
	Update(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, id uint) (*Invoice, error)
	GetActiveByTicketID(ctx context.Context, ticketID uint) (*Invoice, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Invoice, error)
	ExistsByContractorAndNumber(ctx context.Context, contractorID uint, number string) (bool, error)
	List(ctx context.Context, filter Filter) ([]*Invoice, int64, error)
	// ListApprovedDueBefore returns approved invoices whose payment due date
	// has passed, for the overdue marker.
	ListApprovedDueBefore(ctx context.Context, cutoff time.Time, limit int) ([]*Invoice, error)
}

// Filter narrows List results.
type Filter struct {
	TicketID     *uint
	ContractorID *uint
	Status       *vo.InvoiceStatus
	ActiveOnly   bool
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}
