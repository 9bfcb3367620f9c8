package models

type InvoiceModel struct {
	ID           uint   `gorm:"primaryKey"`
	Number       string `gorm:"size:100;not null;uniqueIndex:idx_invoices_contractor_number"`
	TicketID     uint   `gorm:"not null;index"`
	ContractorID uint   `gorm:"not null;index;uniqueIndex:idx_invoices_contractor_number"`
	Status       string `gorm:"size:20;not null;index"`

	AmountCents     int64  `gorm:"not null"`
	PaidAmountCents int64  `gorm:"not null;default:0"`
	Currency        string `gorm:"size:3;not null"`

	HoursWorked     float64
	HourlyRateCents int64
	Description     string `gorm:"type:text"`

	RejectionReason       string `gorm:"type:text"`
	ClarificationRequest  string `gorm:"type:text"`
	ClarificationResponse string `gorm:"type:text"`
	CancelReason          string `gorm:"type:text"`

	RevisionNumber int   `gorm:"not null;default:1"`
	IsActive       bool  `gorm:"not null;default:true;index"`
	ParentID       *uint `gorm:"index"`

	FileRef  string `gorm:"size:500;not null"`
	PopRef   *string
	PaidDate *int64
	DueDate  *int64 `gorm:"index"`

	Version   int   `gorm:"not null;default:1"`
	CreatedAt int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (InvoiceModel) TableName() string {
	return "invoices"
}
