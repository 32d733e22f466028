package calendar

import (
	"errors"
	"fmt"
	"time"

	"comms_governance/internal/domain/communication"
)

var ErrInvalidMonth = errors.New("invalid calendar month")

// YearMonth identifies a calendar page.
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func (ym YearMonth) Valid() bool {
	return ym.Year >= 1 && ym.Month >= time.January && ym.Month <= time.December
}

func (ym YearMonth) Prev() YearMonth {
	if ym.Month == time.January {
		return YearMonth{Year: ym.Year - 1, Month: time.December}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}
}

func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

func (ym YearMonth) String() string { return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month)) }

// ParseYearMonth reads the "YYYY-MM" form.
func ParseYearMonth(raw string) (YearMonth, error) {
	t, err := time.Parse("2006-01", raw)
	if err != nil {
		return YearMonth{}, fmt.Errorf("%w: %q", ErrInvalidMonth, raw)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// Of returns the page containing t.
func Of(t time.Time) YearMonth { return YearMonth{Year: t.Year(), Month: t.Month()} }

// DaysIn returns the number of days in the month, leap years included.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the following month normalises to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DayBucket is one calendar cell.
type DayBucket struct {
	Day     int                   `json:"day"`
	Date    string                `json:"date"`
	Entries []communication.Entry `json:"entries"`
	Holiday *Holiday              `json:"holiday,omitempty"`
}

// Month is a bound calendar page.
type Month struct {
	YearMonth
	// LeadingBlanks is the weekday of day 1 with Sunday = 0, i.e. the number of empty
	// cells before it in a seven-column grid.
	LeadingBlanks int         `json:"leadingBlanks"`
	Days          []DayBucket `json:"days"`
	PrevPage      YearMonth   `json:"prev"`
	NextPage      YearMonth   `json:"next"`
}

// Bind maps entries and holidays onto the days of year/month. Entries attach to the
// day whose ISO date string equals their date exactly.
func Bind(entries []communication.Entry, holidays []Holiday, year int, month time.Month) (Month, error) {
	ym := YearMonth{Year: year, Month: month}
	if !ym.Valid() {
		return Month{}, fmt.Errorf("%w: %d-%d", ErrInvalidMonth, year, int(month))
	}

	byDate := make(map[string][]communication.Entry)
	for _, e := range entries {
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	n := DaysIn(year, month)
	days := make([]DayBucket, 0, n)
	for d := 1; d <= n; d++ {
		days = append(days, bucket(byDate, holidays, year, month, d))
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Month{
		YearMonth:     ym,
		LeadingBlanks: int(first.Weekday()),
		Days:          days,
		PrevPage:      ym.Prev(),
		NextPage:      ym.Next(),
	}, nil
}

// Day binds a single date, the way the daily agenda needs it.
func Day(entries []communication.Entry, holidays []Holiday, date time.Time) DayBucket {
	byDate := make(map[string][]communication.Entry)
	iso := date.Format(communication.DateLayout)
	for _, e := range entries {
		if e.Date == iso {
			byDate[iso] = append(byDate[iso], e)
		}
	}
	return bucket(byDate, holidays, date.Year(), date.Month(), date.Day())
}

func bucket(byDate map[string][]communication.Entry, holidays []Holiday, year int, month time.Month, day int) DayBucket {
	date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
	b := DayBucket{Day: day, Date: date, Entries: byDate[date]}
	if b.Entries == nil {
		b.Entries = []communication.Entry{}
	}
	if h, ok := Lookup(holidays, month, day); ok {
		b.Holiday = &h
	}
	return b
}
