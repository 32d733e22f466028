package calendar

import "time"

// Holiday is a fixed-date public holiday that recurs every year.
type Holiday struct {
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
	Name  string     `json:"name"`
}

// DefaultHolidays is the national holiday table shown on the calendar.
var DefaultHolidays = []Holiday{
	{Month: time.January, Day: 1, Name: "New Year's Day"},
	{Month: time.April, Day: 21, Name: "Tiradentes"},
	{Month: time.May, Day: 1, Name: "Labour Day"},
	{Month: time.September, Day: 7, Name: "Independence Day"},
	{Month: time.October, Day: 12, Name: "Our Lady of Aparecida"},
	{Month: time.November, Day: 2, Name: "All Souls' Day"},
	{Month: time.November, Day: 15, Name: "Republic Proclamation Day"},
	{Month: time.November, Day: 20, Name: "Black Consciousness Day"},
	{Month: time.December, Day: 25, Name: "Christmas"},
}

// Lookup returns the holiday falling on month/day, if any.
func Lookup(holidays []Holiday, month time.Month, day int) (Holiday, bool) {
	for _, h := range holidays {
		if h.Month == month && h.Day == day {
			return h, true
		}
	}
	return Holiday{}, false
}
