package domain

import "time"

// TemporalContext holds the calendar and indicator features derived from an
// accident date and hour.
type TemporalContext struct {
	Month     int  `json:"month"`
	Day       int  `json:"day"`
	DayOfWeek int  `json:"day_of_week"` // Monday=0 .. Sunday=6
	Hour      int  `json:"hour"`
	RushHour  bool `json:"is_rush_hour"`
	Weekend   bool `json:"is_weekend"`
	NightTime bool `json:"is_night_time"`
}

// DeriveTemporal computes the temporal feature set for a date and an hour of
// day. It is pure: identical inputs always produce identical outputs.
func DeriveTemporal(date time.Time, hour int) TemporalContext {
	dow := mondayIndexedWeekday(date.Weekday())
	return TemporalContext{
		Month:     int(date.Month()),
		Day:       date.Day(),
		DayOfWeek: dow,
		Hour:      hour,
		RushHour:  isRushHour(hour),
		Weekend:   dow >= 5,
		NightTime: isNightTime(hour),
	}
}

// mondayIndexedWeekday converts Go's Sunday=0 weekday to the Monday=0
// convention the model was trained with.
func mondayIndexedWeekday(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func isRushHour(hour int) bool {
	return (hour >= 7 && hour <= 9) || (hour >= 16 && hour <= 19)
}

func isNightTime(hour int) bool {
	return hour >= 22 || hour <= 5
}
