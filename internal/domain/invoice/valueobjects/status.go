package valueobjects

import "fmt"

type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "draft"
	StatusPending   InvoiceStatus = "pending"
	StatusApproved  InvoiceStatus = "approved"
	StatusPaid      InvoiceStatus = "paid"
	StatusOverdue   InvoiceStatus = "overdue"
	StatusCancelled InvoiceStatus = "cancelled"
	StatusRejected  InvoiceStatus = "rejected"
)

var validInvoiceStatuses = map[InvoiceStatus]bool{
	StatusDraft:     true,
	StatusPending:   true,
	StatusApproved:  true,
	StatusPaid:      true,
	StatusOverdue:   true,
	StatusCancelled: true,
	StatusRejected:  true,
}

var invoiceStatusTransitions = map[InvoiceStatus][]InvoiceStatus{
	StatusDraft: {
		StatusPending,
		StatusCancelled,
	},
	StatusPending: {
		StatusApproved,
		StatusRejected,
		StatusCancelled,
	},
	StatusApproved: {
		StatusPaid,
		StatusOverdue,
		StatusCancelled,
	},
	// Overdue is advisory: payment is never blocked by it.
	StatusOverdue: {
		StatusPaid,
		StatusCancelled,
	},
	StatusRejected: {
		StatusCancelled,
	},
}

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) IsValid() bool {
	return validInvoiceStatuses[s]
}

func (s InvoiceStatus) CanTransitionTo(newStatus InvoiceStatus) bool {
	allowed, ok := invoiceStatusTransitions[s]
	if !ok {
		return false
	}
	for _, a := range allowed {
		if a == newStatus {
			return true
		}
	}
	return false
}

func (s InvoiceStatus) IsPending() bool   { return s == StatusPending }
func (s InvoiceStatus) IsApproved() bool  { return s == StatusApproved }
func (s InvoiceStatus) IsPaid() bool      { return s == StatusPaid }
func (s InvoiceStatus) IsOverdue() bool   { return s == StatusOverdue }
func (s InvoiceStatus) IsRejected() bool  { return s == StatusRejected }
func (s InvoiceStatus) IsCancelled() bool { return s == StatusCancelled }

// IsPayable reports whether a direct or batch payment may be recorded.
func (s InvoiceStatus) IsPayable() bool {
	return s == StatusApproved || s == StatusOverdue
}

func NewInvoiceStatus(s string) (InvoiceStatus, error) {
	is := InvoiceStatus(s)
	if !is.IsValid() {
		return "", fmt.Errorf("invalid invoice status: %s", s)
	}
	return is, nil
}
