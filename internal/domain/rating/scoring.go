package rating

import "math"

// Category weights for the overall percentage.
const (
	WeightPunctuality     = 25
	WeightPPE             = 25
	WeightCustomerService = 20
	WeightWorkmanship     = 20
	WeightSiteProcedures  = 10
)

// Scores holds the derived per-category scores (each 0..5), the weighted
// overall percentage, and the star value. All fields are computed by Score;
// they are never hand-edited.
type Scores struct {
	Punctuality     int
	PPE             int
	CustomerService int
	Workmanship     int
	SiteProcedures  int

	OverallPercentage int
	Stars             int
}

// Score derives all category scores and the overall result from a checklist.
// Pure and deterministic.
func Score(c Checklist) Scores {
	s := Scores{
		Punctuality:     scorePunctuality(c.Punctuality),
		PPE:             scorePPE(c.PPE),
		CustomerService: scoreCustomerService(c.CustomerService),
		Workmanship:     scoreWorkmanship(c.Workmanship),
		SiteProcedures:  scoreSiteProcedures(c.SiteProcedures),
	}

	weighted := float64(s.Punctuality)/5*WeightPunctuality +
		float64(s.PPE)/5*WeightPPE +
		float64(s.CustomerService)/5*WeightCustomerService +
		float64(s.Workmanship)/5*WeightWorkmanship +
		float64(s.SiteProcedures)/5*WeightSiteProcedures

	s.OverallPercentage = int(math.Round(weighted))
	s.Stars = starsFromPercentage(s.OverallPercentage)
	return s
}

// scorePunctuality: 5 for on-time arrival, 3 for a late arrival announced in
// advance, 0 otherwise. Missing timestamps score 0.
func scorePunctuality(p PunctualityChecklist) int {
	if p.ScheduledArrival == nil || p.ActualArrival == nil {
		return 0
	}
	if !p.ActualArrival.After(*p.ScheduledArrival) {
		return 5
	}
	if p.NotifiedOfDelay {
		return 3
	}
	return 0
}

// scorePPE: 5 for overall compliance, 3 when all required items (hard hat,
// safety boots, reflective vest) are individually checked, else 0.
func scorePPE(p PPEChecklist) int {
	if p.OverallCompliant {
		return 5
	}
	if p.HardHat && p.SafetyBoots && p.ReflectiveVest {
		return 3
	}
	return 0
}

func scoreCustomerService(c CustomerServiceChecklist) int {
	score := 0
	if c.CommunicatedClearly {
		score += 2
	}
	if c.ProfessionalAttitude {
		score++
	}
	if c.RespectfulToStaff {
		score++
	}
	if c.PatientAndSolutionOriented {
		score++
	}
	return capScore(score)
}

func scoreWorkmanship(w WorkmanshipChecklist) int {
	score := 0
	if w.CompletedAsRequested {
		score += 2
	}
	if w.NoShortcuts {
		score++
	}
	if w.CleanWorkArea {
		score++
	}
	if w.NoReworkNeeded {
		score++
	}
	return capScore(score)
}

func scoreSiteProcedures(p SiteProceduresChecklist) int {
	if p.OverallCompliant {
		return 5
	}
	score := 0
	if p.PermitToWorkFilled {
		score += 2
	}
	if p.LoggedIntoJobCard {
		score++
	}
	if p.FollowedIsolation {
		score++
	}
	if p.FollowedWasteDisposal {
		score++
	}
	return capScore(score)
}

// starsFromPercentage rounds to the nearest star, clamps to [0,5], then
// floors a computed zero to one star. A submitted rating never records as
// zero stars.
func starsFromPercentage(percentage int) int {
	stars := int(math.Round(float64(percentage) / 100 * 5))
	if stars > 5 {
		stars = 5
	}
	if stars < 1 {
		stars = 1
	}
	return stars
}

func capScore(score int) int {
	if score > 5 {
		return 5
	}
	return score
}
