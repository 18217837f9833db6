// Package week provides ISO-8601 week arithmetic on local calendar days.
//
// Weeks start on Monday; week 1 is the week containing the year's first
// Thursday. All functions treat their inputs as calendar days: time-of-day is
// stripped and no timezone conversion is performed.
package week

import "time"

// Range is the Monday..Sunday span of a single ISO week.
type Range struct {
	Monday time.Time
	Sunday time.Time
}

// Midnight truncates t to its own calendar day, keeping the location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// mondayOffset returns the number of days t lies after the Monday of its week.
func mondayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Number returns the ISO-8601 week number of the week containing t.
// The date is shifted to the Thursday of its own week; that Thursday's
// position within its year determines the week number.
func Number(t time.Time) int {
	thursday := Midnight(t).AddDate(0, 0, 3-mondayOffset(t))
	return (thursday.YearDay()-1)/7 + 1
}

// FromWeek returns the Monday..Sunday range of the given ISO week of year.
// The Monday of week 1 is the Monday on or before January 4.
func FromWeek(weekNumber, year int) Range {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.Local)
	firstMonday := jan4.AddDate(0, 0, -mondayOffset(jan4))
	monday := firstMonday.AddDate(0, 0, (weekNumber-1)*7)
	return Range{Monday: monday, Sunday: monday.AddDate(0, 0, 6)}
}

// FromDate returns the Monday..Sunday range of the week containing t.
func FromDate(t time.Time) Range {
	monday := Midnight(t).AddDate(0, 0, -mondayOffset(t))
	return Range{Monday: monday, Sunday: monday.AddDate(0, 0, 6)}
}
