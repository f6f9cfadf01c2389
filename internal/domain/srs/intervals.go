// Package srs implements the adaptive review scheduler: a pure state machine
// that converts an evaluation outcome plus review history into the next due
// time. All intervals are expressed in minutes.
package srs

// Difficulty intervals, applied when an attempt was not fully successful.
const (
	// ImmediateMinutes is used when the learner self-reported difficulty.
	ImmediateMinutes = 5

	// ShortMinutes is used for non-fluent answers or filler usage.
	ShortMinutes = 15

	// MediumMinutes is used when the word was not used meaningfully.
	MediumMinutes = 30
)

// Success-interval ladder, in minutes. Only an unbroken chain of fully
// successful attempts advances along it; the ladder saturates at its last
// value to avoid unbounded growth.
var (
	// InitialSuccessMinutes is the first success interval (3 days).
	InitialSuccessMinutes = 4320

	// SubsequentSuccessMinutes are the escalation steps (15 days, 60 days).
	SubsequentSuccessMinutes = []int{21600, 86400}
)

// successLadder returns the full ordered ladder: initial plus subsequent.
func successLadder() []int {
	ladder := make([]int, 0, 1+len(SubsequentSuccessMinutes))
	ladder = append(ladder, InitialSuccessMinutes)
	ladder = append(ladder, SubsequentSuccessMinutes...)
	return ladder
}

// DifficultyTable mirrors the difficulty interval constants for API clients.
type DifficultyTable struct {
	Immediate int `json:"IMMEDIATE"`
	Short     int `json:"SHORT"`
	Medium    int `json:"MEDIUM"`
}

// SuccessTable mirrors the success ladder for API clients.
type SuccessTable struct {
	Initial    []int `json:"INITIAL"`
	Subsequent []int `json:"SUBSEQUENT"`
}

// IntervalTable is the constant interval configuration, exposed in
// evaluation responses so clients can render scheduling choices.
type IntervalTable struct {
	Difficulty DifficultyTable `json:"DIFFICULTY"`
	Success    SuccessTable    `json:"SUCCESS"`
}

// Intervals returns the interval table in effect.
func Intervals() IntervalTable {
	return IntervalTable{
		Difficulty: DifficultyTable{
			Immediate: ImmediateMinutes,
			Short:     ShortMinutes,
			Medium:    MediumMinutes,
		},
		Success: SuccessTable{
			Initial:    []int{InitialSuccessMinutes},
			Subsequent: append([]int(nil), SubsequentSuccessMinutes...),
		},
	}
}
