package models

import "gorm.io/datatypes"

type RatingModel struct {
	ID           uint `gorm:"primaryKey"`
	TicketID     uint `gorm:"uniqueIndex;not null"`
	ContractorID uint `gorm:"not null;index"`
	RatedBy      uint `gorm:"not null;index"`

	Checklist datatypes.JSON `gorm:"not null"`

	Punctuality     int `gorm:"not null"`
	PPE             int `gorm:"not null"`
	CustomerService int `gorm:"not null"`
	Workmanship     int `gorm:"not null"`
	SiteProcedures  int `gorm:"not null"`

	OverallPercentage int `gorm:"not null"`
	Stars             int `gorm:"not null"`

	Comment   string `gorm:"type:text"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
}

func (RatingModel) TableName() string {
	return "ratings"
}

type ContractorReputationModel struct {
	ContractorID uint  `gorm:"primaryKey"`
	TotalRatings int64 `gorm:"not null;default:0"`

	AvgPunctuality     float64 `gorm:"not null;default:0"`
	AvgCustomerService float64 `gorm:"not null;default:0"`
	AvgWorkmanship     float64 `gorm:"not null;default:0"`
	AvgOverall         float64 `gorm:"not null;default:0"`

	PPECompliantCount        int64 `gorm:"not null;default:0"`
	ProceduresCompliantCount int64 `gorm:"not null;default:0"`

	Version   int   `gorm:"not null;default:1"`
	UpdatedAt int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (ContractorReputationModel) TableName() string {
	return "contractor_reputations"
}
