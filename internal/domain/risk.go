package domain

import "fmt"

// highRiskFactors are the contributing factors called out to the user as
// elevated risk, independent of what the model predicts.
var highRiskFactors = map[string]struct{}{
	"driver inattention/distraction": {},
	"unsafe speed":                   {},
}

// RiskFactors returns human-readable notes about the conditions of the
// prediction. An empty slice means no notable risk factors; the presentation
// layer renders its own "none identified" message in that case.
func RiskFactors(tc TemporalContext, factor string) []string {
	var notes []string
	if tc.RushHour {
		notes = append(notes, "Accident occurs during rush hour")
	}
	if tc.NightTime {
		notes = append(notes, "Accident occurs during night time")
	}
	if _, ok := highRiskFactors[factor]; ok {
		notes = append(notes, fmt.Sprintf("High-risk contributing factor: %s", factor))
	}
	return notes
}
