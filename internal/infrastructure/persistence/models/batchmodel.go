package models

import "gorm.io/datatypes"

type PaymentBatchModel struct {
	ID          uint   `gorm:"primaryKey"`
	Reference   string `gorm:"uniqueIndex;size:100;not null"`
	PopRef      string `gorm:"size:200;not null"`
	PaymentDate int64  `gorm:"not null"`
	Notes       string `gorm:"type:text"`

	// Members are captured as a JSON snapshot at settlement time; the invoice
	// rows stay the source of truth for current status.
	Members  datatypes.JSON `gorm:"not null"`
	Currency string         `gorm:"size:3;not null"`

	CreatedBy uint  `gorm:"not null;index"`
	CreatedAt int64 `gorm:"autoCreateTime:milli;not null"`
}

func (PaymentBatchModel) TableName() string {
	return "payment_batches"
}
