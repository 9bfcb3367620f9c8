package rating

import (
	"fmt"
	"time"
)

// ContractorReputation is the per-contractor running aggregate over all
// submitted ratings. Updated incrementally inside the same transaction as
// the rating insert; never recomputed from scratch on the read path.
type ContractorReputation struct {
	contractorID uint

	totalRatings int64

	avgPunctuality     float64
	avgCustomerService float64
	avgWorkmanship     float64
	avgOverall         float64

	ppeCompliantCount        int64
	proceduresCompliantCount int64

	version   int
	updatedAt time.Time
}

func NewContractorReputation(contractorID uint) (*ContractorReputation, error) {
	if contractorID == 0 {
		return nil, fmt.Errorf("contractor ID is required")
	}
	return &ContractorReputation{
		contractorID: contractorID,
		version:      1,
		updatedAt:    time.Now().UTC(),
	}, nil
}

// ReputationState carries persisted fields for rehydration.
type ReputationState struct {
	ContractorID             uint
	TotalRatings             int64
	AvgPunctuality           float64
	AvgCustomerService       float64
	AvgWorkmanship           float64
	AvgOverall               float64
	PPECompliantCount        int64
	ProceduresCompliantCount int64
	Version                  int
	UpdatedAt                time.Time
}

func ReconstructReputation(s ReputationState) (*ContractorReputation, error) {
	if s.ContractorID == 0 {
		return nil, fmt.Errorf("contractor ID cannot be zero")
	}
	if s.TotalRatings < 0 {
		return nil, fmt.Errorf("negative rating count for contractor %d", s.ContractorID)
	}
	return &ContractorReputation{
		contractorID:             s.ContractorID,
		totalRatings:             s.TotalRatings,
		avgPunctuality:           s.AvgPunctuality,
		avgCustomerService:       s.AvgCustomerService,
		avgWorkmanship:           s.AvgWorkmanship,
		avgOverall:               s.AvgOverall,
		ppeCompliantCount:        s.PPECompliantCount,
		proceduresCompliantCount: s.ProceduresCompliantCount,
		version:                  s.Version,
		updatedAt:                s.UpdatedAt,
	}, nil
}

func (c *ContractorReputation) ContractorID() uint          { return c.contractorID }
func (c *ContractorReputation) TotalRatings() int64         { return c.totalRatings }
func (c *ContractorReputation) AvgPunctuality() float64     { return c.avgPunctuality }
func (c *ContractorReputation) AvgCustomerService() float64 { return c.avgCustomerService }
func (c *ContractorReputation) AvgWorkmanship() float64     { return c.avgWorkmanship }
func (c *ContractorReputation) AvgOverall() float64         { return c.avgOverall }
func (c *ContractorReputation) Version() int                { return c.version }
func (c *ContractorReputation) UpdatedAt() time.Time        { return c.updatedAt }

func (c *ContractorReputation) PPECompliantCount() int64 { return c.ppeCompliantCount }
func (c *ContractorReputation) ProceduresCompliantCount() int64 {
	return c.proceduresCompliantCount
}

// PPEComplianceRate is a percentage in [0,100].
func (c *ContractorReputation) PPEComplianceRate() float64 {
	return rate(c.ppeCompliantCount, c.totalRatings)
}

// ProceduresComplianceRate is a percentage in [0,100].
func (c *ContractorReputation) ProceduresComplianceRate() float64 {
	return rate(c.proceduresCompliantCount, c.totalRatings)
}

// Fold absorbs one new rating into the running averages and compliance
// counters. Call only for ratings of this contractor, once each.
func (c *ContractorReputation) Fold(r *Rating) error {
	if r == nil {
		return fmt.Errorf("rating is required")
	}
	if r.ContractorID() != c.contractorID {
		return fmt.Errorf("rating belongs to contractor %d, not %d", r.ContractorID(), c.contractorID)
	}

	s := r.Scores()
	oldCount := float64(c.totalRatings)
	newCount := oldCount + 1

	c.avgPunctuality = (c.avgPunctuality*oldCount + float64(s.Punctuality)) / newCount
	c.avgCustomerService = (c.avgCustomerService*oldCount + float64(s.CustomerService)) / newCount
	c.avgWorkmanship = (c.avgWorkmanship*oldCount + float64(s.Workmanship)) / newCount
	c.avgOverall = (c.avgOverall*oldCount + float64(s.OverallPercentage)) / newCount

	if r.PPECompliant() {
		c.ppeCompliantCount++
	}
	if r.ProceduresCompliant() {
		c.proceduresCompliantCount++
	}

	c.totalRatings++
	c.updatedAt = time.Now().UTC()
	return nil
}

func rate(compliant, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(compliant) / float64(total) * 100
}
