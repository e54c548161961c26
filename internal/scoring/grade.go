package scoring

// Point weights for the overall grade roll-up. This is a presentation
// heuristic, not a statistical model; the weights and ladder below are the
// single place to tune it.
const (
	gradePointsPerPiotroski = 4  // up to 36
	gradePointsRuleOf40Pass = 20 // full credit when the composite clears 40
	gradePointsRuleOf40Near = 10 // partial credit for a composite of at least 20
	gradePointsAltmanSafe   = 24
	gradePointsAltmanGray   = 12
)

// Grade ladder, applied to a 0-80 point total.
const (
	gradeFloorA     = 64
	gradeFloorBPlus = 56
	gradeFloorB     = 44
	gradeFloorC     = 32
	gradeFloorD     = 20
)

// CalculateOverallGrade rolls the three scores into a letter grade.
func CalculateOverallGrade(piotroski PiotroskiResult, ruleOf40 RuleOf40Result, altman AltmanZResult) string {
	points := piotroski.Score * gradePointsPerPiotroski

	switch {
	case ruleOf40.Passed:
		points += gradePointsRuleOf40Pass
	case ruleOf40.Score >= 20:
		points += gradePointsRuleOf40Near
	}

	switch altman.Zone {
	case ZoneSafe:
		points += gradePointsAltmanSafe
	case ZoneGray:
		points += gradePointsAltmanGray
	}

	switch {
	case points >= gradeFloorA:
		return "A"
	case points >= gradeFloorBPlus:
		return "B+"
	case points >= gradeFloorB:
		return "B"
	case points >= gradeFloorC:
		return "C"
	case points >= gradeFloorD:
		return "D"
	default:
		return "F"
	}
}
