package models

import "gorm.io/datatypes"

type TicketModel struct {
	ID          uint   `gorm:"primaryKey"`
	Number      string `gorm:"uniqueIndex;size:50;not null"`
	TenantID    uint   `gorm:"not null;index"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text;not null"`
	Category    string `gorm:"size:50;not null;index"`
	AssetRef    *string
	Priority    string `gorm:"size:20;not null;index"`
	Status      string `gorm:"size:30;not null;index"`
	RequesterID uint   `gorm:"not null;index"`
	AssigneeID  *uint  `gorm:"index"`
	Location    string `gorm:"size:200"`

	JobPlan             datatypes.JSON
	WorkDescription     string `gorm:"type:text"`
	WorkRejectionReason string `gorm:"type:text"`
	CancelReason        string `gorm:"type:text"`
	AssignRejectReason  string `gorm:"type:text"`

	ResponseDue   *int64 `gorm:"index"`
	ResolutionDue *int64 `gorm:"index"`

	AssignedAt                 *int64
	ContractorAcceptedAt       *int64
	OnSiteAt                   *int64
	WorkStartedAt              *int64
	WorkDescriptionRequestedAt *int64
	WorkDescriptionSubmittedAt *int64
	WorkDescriptionApprovedAt  *int64
	CompletedAt                *int64
	ClosedAt                   *int64

	Version   int   `gorm:"not null;default:1"`
	CreatedAt int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64 `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}
