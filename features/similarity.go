package features

import "github.com/goldjoker92/vigiApp-sub000/types"

// Hand-tuned score nudges. Everything starts at neutral 0.5 and is pushed by
// agreements and clashes, then clamped to [0,1].
const (
	simNeutral = 0.5

	weaponAgree    = 0.15
	weaponClash    = 0.10
	violenceAgree  = 0.10
	violencePull   = 0.05 // per level of distance beyond 1
	victimAgree    = 0.15
	victimClash    = 0.15
	countAgree     = 0.10
	countPull      = 0.05
	robberyAgree   = 0.10
	typeAgree      = 0.15
	exclusiveClash = 0.30

	dayPartAgree  = 0.20
	dayPartClash  = 0.10
	weekendAgree  = 0.10
	weekendClash  = 0.05
	flagAgree     = 0.05
	riskInfluence = 0.10
)

// FeaturesSimilarity scores how likely two descriptions talk about the same
// event, in [0,1]. Mutually exclusive incident types (a fire and a fistfight)
// are penalized hard.
func FeaturesSimilarity(a, b types.FeatureVector) float64 {
	score := simNeutral

	if a.HasWeapon == b.HasWeapon {
		if a.HasWeapon {
			score += weaponAgree
		}
	} else {
		score -= weaponClash
	}

	switch diff := absInt(a.Violence - b.Violence); {
	case diff == 0:
		score += violenceAgree
	case diff >= 2:
		score -= float64(diff-1) * violencePull
	}

	if a.Victim != "" && b.Victim != "" {
		if a.Victim == b.Victim {
			score += victimAgree
		} else if a.Victim != types.VictimGeneric && b.Victim != types.VictimGeneric {
			score -= victimClash
		}
	}

	if a.VictimCount > 0 && b.VictimCount > 0 {
		if a.VictimCount == b.VictimCount {
			score += countAgree
		} else if absInt(a.VictimCount-b.VictimCount) >= 2 {
			score -= countPull
		}
	}

	if a.IsRobbery && b.IsRobbery {
		score += robberyAgree
	}

	score += typeScore(a, b)

	return clamp01(score)
}

// typeScore rewards matching incident-type flags and strongly penalizes
// flags that cannot describe one event.
func typeScore(a, b types.FeatureVector) float64 {
	type pair struct{ a, b bool }
	typed := []pair{
		{a.IsFire, b.IsFire},
		{a.IsTrafficIncident, b.IsTrafficIncident},
		{a.IsDrowning, b.IsDrowning},
		{a.IsAggression, b.IsAggression},
	}

	s := 0.0
	for _, p := range typed {
		if p.a && p.b {
			s += typeAgree
		}
	}
	// a report flagged with one exclusive type vs. a report flagged with a
	// different one is the strongest "two different events" signal we have
	if exclusiveType(a) != "" && exclusiveType(b) != "" && exclusiveType(a) != exclusiveType(b) {
		s -= exclusiveClash
	}
	return s
}

func exclusiveType(f types.FeatureVector) string {
	switch {
	case f.IsFire:
		return "fire"
	case f.IsTrafficIncident:
		return "traffic"
	case f.IsDrowning:
		return "drowning"
	case f.IsAggression:
		return "aggression"
	default:
		return ""
	}
}

// ContextSimilarity scores the time/place context agreement of two reports.
func ContextSimilarity(a, b types.ContextVector) float64 {
	score := simNeutral

	if a.DayPart == b.DayPart {
		score += dayPartAgree
	} else {
		score -= dayPartClash
	}
	if a.IsWeekend == b.IsWeekend {
		score += weekendAgree
	} else {
		score -= weekendClash
	}

	flags := [][2]bool{
		{a.IsHoliday, b.IsHoliday},
		{a.IsSchoolVacation, b.IsSchoolVacation},
		{a.IsElectionPeriod, b.IsElectionPeriod},
		{a.IsSocialUnrest, b.IsSocialUnrest},
	}
	for _, f := range flags {
		if f[0] && f[1] {
			score += flagAgree
		}
	}

	riskGap := a.NeighborhoodRisk - b.NeighborhoodRisk
	if riskGap < 0 {
		riskGap = -riskGap
	}
	score += (0.5 - riskGap) * riskInfluence * 2

	return clamp01(score)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
