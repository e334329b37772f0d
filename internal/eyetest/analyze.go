// Package eyetest scores the storefront's gamified acuity quiz and renders
// the downloadable screening report. The quiz is a staircase over a fixed
// table of optotype sizes: each correct answer steps down one level, the
// first miss (or running out of levels) ends the eye's run.
package eyetest

import (
	"fmt"
	"math"
)

// Mode distinguishes the near- and far-vision variants of the test. Far-sight
// deficits map to negative dioptric powers, near-sight to positive.
type Mode string

const (
	ModeNear Mode = "NEAR"
	ModeFar  Mode = "FAR"
)

// Level is one row of the acuity staircase.
type Level struct {
	SizeMm float64
	Score  string
	Power  float64
}

// Levels runs from largest optotype to 20/20.
var Levels = []Level{
	{SizeMm: 44.0, Score: "20/200", Power: 2.50},
	{SizeMm: 22.0, Score: "20/100", Power: 1.75},
	{SizeMm: 15.4, Score: "20/70", Power: 1.25},
	{SizeMm: 11.0, Score: "20/50", Power: 1.00},
	{SizeMm: 8.8, Score: "20/40", Power: 0.75},
	{SizeMm: 6.6, Score: "20/30", Power: 0.50},
	{SizeMm: 5.5, Score: "20/25", Power: 0.25},
	{SizeMm: 4.4, Score: "20/20", Power: 0.00},
}

// Attempt is one optotype response.
type Attempt struct {
	Level   int     `json:"level"`
	Correct bool    `json:"correct"`
	TimeMs  float64 `json:"timeMs"`
}

// Result is the per-eye outcome of a staircase run.
type Result struct {
	Acuity           string  `json:"acuity"`
	PowerRange       string  `json:"powerRange"`
	Confidence       string  `json:"confidence"`
	LevelsAttempted  int     `json:"levelsAttempted"`
	AccuracyRate     float64 `json:"accuracyRate"`
	AvgResponseTime  float64 `json:"avgResponseTime"`
	ConsistencyScore float64 `json:"consistencyScore"`
}

// Evaluate scores one eye's run. The reached level is the count of correct
// answers (the staircase only advances on a correct answer, and a miss ends
// the run); confidence combines the response-time consistency with the run
// length.
func Evaluate(mode Mode, attempts []Attempt) Result {
	reached := 0
	for _, a := range attempts {
		if a.Correct {
			reached++
		}
	}
	if reached > len(Levels)-1 {
		reached = len(Levels) - 1
	}

	lastPassed := Levels[maxInt(0, reached-1)]

	sign := 1.0
	if mode == ModeFar {
		sign = -1.0
	}
	basePower := lastPassed.Power * sign
	powerRange := fmt.Sprintf("%.2f to %.2f DS", basePower-0.25, basePower+0.25)
	if basePower == 0 {
		powerRange = "0.00 (Neutral)"
	}

	var correct int
	var totalTime float64
	for _, a := range attempts {
		if a.Correct {
			correct++
		}
		totalTime += a.TimeMs
	}

	var accuracy, avgTime float64
	if len(attempts) > 0 {
		accuracy = float64(correct) / float64(len(attempts)) * 100
		avgTime = totalTime / float64(len(attempts))
	}

	// Consistency from reaction-time deviation.
	var variance float64
	if len(attempts) > 0 {
		for _, a := range attempts {
			variance += (a.TimeMs - avgTime) * (a.TimeMs - avgTime)
		}
		variance /= float64(len(attempts))
	}
	stdDev := math.Sqrt(variance)
	denom := avgTime
	if denom == 0 {
		denom = 1
	}
	consistency := math.Max(0, 100-(stdDev/denom)*100)

	confidence := "Low"
	switch {
	case consistency > 75 && len(attempts) > 5:
		confidence = "High"
	case consistency > 40:
		confidence = "Medium"
	}

	return Result{
		Acuity:           lastPassed.Score,
		PowerRange:       powerRange,
		Confidence:       confidence,
		LevelsAttempted:  reached + 1,
		AccuracyRate:     accuracy,
		AvgResponseTime:  avgTime,
		ConsistencyScore: consistency,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
