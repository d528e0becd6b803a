package types

// VictimCategory classifies who or what a report says was harmed.
type VictimCategory string

const (
	VictimBaby     VictimCategory = "baby"
	VictimChild    VictimCategory = "child"
	VictimWoman    VictimCategory = "woman"
	VictimElderly  VictimCategory = "elderly"
	VictimMan      VictimCategory = "man"
	VictimAnimal   VictimCategory = "animal"
	VictimProperty VictimCategory = "property"
	VictimShop     VictimCategory = "shop"
	VictimGeneric  VictimCategory = "generic"
)

// FeatureVector holds the structured signals extracted from a free-text
// description. Recomputed on demand, never persisted.
type FeatureVector struct {
	HasWeapon         bool
	IsBareHands       bool
	IsRobbery         bool
	Violence          int // 0..3
	Victim            VictimCategory
	HighFootfall      bool
	IsAggression      bool
	IsFire            bool
	IsTrafficIncident bool
	IsDrowning        bool
	IsFracture        bool
	VictimCount       int
}

// DayPart buckets the hour of day.
type DayPart string

const (
	Night     DayPart = "night"
	Morning   DayPart = "morning"
	Afternoon DayPart = "afternoon"
	Evening   DayPart = "evening"
)

// ContextVector describes when/where a report happened. The situational flags
// and risk scalar are caller overrides: the engine has no calendar or risk
// data source of its own.
type ContextVector struct {
	DayPart          DayPart
	IsWeekend        bool
	IsHoliday        bool
	IsSchoolVacation bool
	IsElectionPeriod bool
	IsSocialUnrest   bool
	NeighborhoodRisk float64 // 0..1
}
