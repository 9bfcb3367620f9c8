package ticket

import (
	"context"

	vo "github.com/fieldserv-inc/fieldserv/internal/domain/ticket/valueobjects"
)

// Repository persists tickets. Update is a conditional write against the
// version loaded with the aggregate; implementations return a concurrent
// modification error when the row has moved on.
type Repository interface {
	Save(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	GetByNumber(ctx context.Context, number string) (*Ticket, error)
	List(ctx context.Context, filter Filter) ([]*Ticket, int64, error)
}

// Filter narrows List results.
type Filter struct {
	TenantID    *uint
	Status      *vo.TicketStatus
	Priority    *vo.Priority
	Category    *vo.Category
	RequesterID *uint
	AssigneeID  *uint
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}
