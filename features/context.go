package features

import (
	"time"

	"github.com/goldjoker92/vigiApp-sub000/types"
)

// ContextOverrides are the situational inputs the engine cannot derive
// itself: calendar facts and local risk come from the caller.
type ContextOverrides struct {
	IsHoliday        bool
	IsSchoolVacation bool
	IsElectionPeriod bool
	IsSocialUnrest   bool
	NeighborhoodRisk float64
}

// ExtractTimeContext buckets a timestamp into day part and weekend and folds
// in the caller-supplied overrides.
func ExtractTimeContext(t time.Time, o ContextOverrides) types.ContextVector {
	wd := t.Weekday()
	return types.ContextVector{
		DayPart:          dayPartOf(t.Hour()),
		IsWeekend:        wd == time.Saturday || wd == time.Sunday,
		IsHoliday:        o.IsHoliday,
		IsSchoolVacation: o.IsSchoolVacation,
		IsElectionPeriod: o.IsElectionPeriod,
		IsSocialUnrest:   o.IsSocialUnrest,
		NeighborhoodRisk: clamp01(o.NeighborhoodRisk),
	}
}

func dayPartOf(hour int) types.DayPart {
	switch {
	case hour < 6:
		return types.Night
	case hour < 12:
		return types.Morning
	case hour < 18:
		return types.Afternoon
	default:
		return types.Evening
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
