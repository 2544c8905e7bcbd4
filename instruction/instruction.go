// Package instruction selects which visual and spoken instruction should
// be surfaced for the active route step, given the remaining distance to
// its end (spec section 4.4).
package instruction

import "github.com/asgard/wayfarer/navroute"

// SelectVisual picks the VisualInstruction whose
// TriggerDistanceBeforeManeuverM is the smallest value >= remainingM; if
// none qualify, the one with the largest trigger distance; nil if
// instructions is empty. Ties are broken by list order (the first
// smallest-qualifying or largest entry wins).
func SelectVisual(instructions []navroute.VisualInstruction, remainingM float64) *navroute.VisualInstruction {
	if len(instructions) == 0 {
		return nil
	}

	bestQualifyingIdx := -1
	largestIdx := 0

	for i, vi := range instructions {
		if vi.TriggerDistanceBeforeManeuverM > instructions[largestIdx].TriggerDistanceBeforeManeuverM {
			largestIdx = i
		}
		if vi.TriggerDistanceBeforeManeuverM >= remainingM {
			if bestQualifyingIdx == -1 || vi.TriggerDistanceBeforeManeuverM < instructions[bestQualifyingIdx].TriggerDistanceBeforeManeuverM {
				bestQualifyingIdx = i
			}
		}
	}

	if bestQualifyingIdx != -1 {
		return &instructions[bestQualifyingIdx]
	}
	return &instructions[largestIdx]
}

// SelectSpoken applies the same selection rule as SelectVisual over
// spoken_instructions.
func SelectSpoken(instructions []navroute.SpokenInstruction, remainingM float64) *navroute.SpokenInstruction {
	if len(instructions) == 0 {
		return nil
	}

	bestQualifyingIdx := -1
	largestIdx := 0

	for i, si := range instructions {
		if si.TriggerDistanceBeforeManeuverM > instructions[largestIdx].TriggerDistanceBeforeManeuverM {
			largestIdx = i
		}
		if si.TriggerDistanceBeforeManeuverM >= remainingM {
			if bestQualifyingIdx == -1 || si.TriggerDistanceBeforeManeuverM < instructions[bestQualifyingIdx].TriggerDistanceBeforeManeuverM {
				bestQualifyingIdx = i
			}
		}
	}

	if bestQualifyingIdx != -1 {
		return &instructions[bestQualifyingIdx]
	}
	return &instructions[largestIdx]
}
