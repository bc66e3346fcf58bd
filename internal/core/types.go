package core

// Stage identifies one filter in the screening funnel.
type Stage string

const (
	StageEarnings    Stage = "earnings"
	StageFundamental Stage = "fundamental"
	StageWeekly      Stage = "weekly"
	StageRelStrength Stage = "relative_strength"
	StageDaily       Stage = "daily"
)

// StageOrder returns the fixed funnel order. Later stages assume the
// universe was already narrowed by the earlier, cheaper ones, so this
// order must never be shuffled.
func StageOrder() []Stage {
	return []Stage{
		StageEarnings,
		StageFundamental,
		StageWeekly,
		StageRelStrength,
		StageDaily,
	}
}

// IsValid reports whether s names a known funnel stage.
func (s Stage) IsValid() bool {
	switch s {
	case StageEarnings, StageFundamental, StageWeekly, StageRelStrength, StageDaily:
		return true
	}
	return false
}

// CandidateType tags why a symbol qualified in the daily stage.
// Stored as a numeric column so downstream engines can replay it.
type CandidateType float64

const (
	// CandidateNone means the day produced no qualifying score.
	CandidateNone CandidateType = 0
	// CandidateBreakout means a multi-timeframe breakout qualified the day.
	CandidateBreakout CandidateType = 1
)
