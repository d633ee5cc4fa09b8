package scoring

import (
	"slices"

	"github.com/flashread/wordfall/internal/config"
)

// Rules turn a request into a new points/combo pair.
//
//	catch target: points += CatchPoints + ComboBonus*combo, combo++
//	catch filler: points -= FillerPenalty, combo = 0
//	miss target:  points -= MissPenalty, combo = 0
//	miss filler:  unchanged
//
// Points may go negative.
type Rules struct {
	CatchPoints   int
	ComboBonus    int
	FillerPenalty int
	MissPenalty   int
}

// DefaultRules matches the embedded configuration.
var DefaultRules = Rules{
	CatchPoints:   10,
	ComboBonus:    5,
	FillerPenalty: 15,
	MissPenalty:   5,
}

// RulesFrom reads rules from the scoring configuration.
func RulesFrom(cfg config.ScoringConfig) Rules {
	return Rules{
		CatchPoints:   cfg.CatchPoints,
		ComboBonus:    cfg.ComboBonus,
		FillerPenalty: cfg.FillerPenalty,
		MissPenalty:   cfg.MissPenalty,
	}
}

// Evaluate applies the rules. A word is a target when it appears in the
// request's word array; anything else is a filler.
func (r Rules) Evaluate(req Request) Response {
	target := slices.Contains(req.WordArray, req.CollectedWord)
	points, combo := req.CurrentPoints, req.CurrentCombo

	switch {
	case req.Collision && target:
		points += r.CatchPoints + r.ComboBonus*combo
		combo++
	case req.Collision:
		points -= r.FillerPenalty
		combo = 0
	case target:
		points -= r.MissPenalty
		combo = 0
	}

	return Response{Points: points, Combo: combo}
}
