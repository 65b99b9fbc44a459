package model

import "strconv"

// Phase is the in-game phase letter of a timing code.
type Phase byte

const (
	PhaseDay     Phase = 'J'
	PhaseNight   Phase = 'N'
	PhaseMeeting Phase = 'M'
	PhaseUnknown Phase = 'U'
)

// Timing is a decoded phase+number code such as "J1", "N2" or "M3".
// The number is 1-based and counts days (J/N) or meetings (M).
type Timing struct {
	Phase  Phase
	Number int
}

// ParseTiming decodes a phase+number code. It returns ok=false for empty or
// malformed codes; callers exclude the affected record from the metric
// rather than failing.
func ParseTiming(code string) (Timing, bool) {
	if len(code) < 2 {
		return Timing{}, false
	}
	p := Phase(code[0])
	switch p {
	case PhaseDay, PhaseNight, PhaseMeeting, PhaseUnknown:
	default:
		return Timing{}, false
	}
	n, err := strconv.Atoi(code[1:])
	if err != nil || n < 1 {
		return Timing{}, false
	}
	return Timing{Phase: p, Number: n}, true
}

// DayCount returns the number of days a game lasted, decoded from its
// end-timing code, or 0 when the code is missing or malformed.
func (g *GameLogEntry) DayCount() int {
	t, ok := ParseTiming(g.EndTiming)
	if !ok {
		return 0
	}
	return t.Number
}

// Harvest percentage bands used by the harvest-range filter.
var harvestBuckets = []string{"0-25", "26-50", "51-75", "76-99", "100"}

// HarvestBucket maps a completion percentage to its band, or "" for a
// negative (undefined) percentage.
func HarvestBucket(pct float64) string {
	switch {
	case pct < 0:
		return ""
	case pct <= 25:
		return harvestBuckets[0]
	case pct <= 50:
		return harvestBuckets[1]
	case pct <= 75:
		return harvestBuckets[2]
	case pct < 100:
		return harvestBuckets[3]
	default:
		return harvestBuckets[4]
	}
}
