package feature

import (
	"time"

	"github.com/fermata-energy/fermata/schema"
	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// HolidayCalendar answers whether a calendar date is a public holiday.
type HolidayCalendar interface {
	IsHoliday(t time.Time) bool
}

// USCalendar is the US federal holiday calendar, including observed dates.
type USCalendar struct {
	cal *cal.BusinessCalendar
}

var _ HolidayCalendar = &USCalendar{} // Compile-time check

// NewUSCalendar creates a calendar loaded with the US federal holidays.
func NewUSCalendar() *USCalendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(us.Holidays...)
	return &USCalendar{cal: c}
}

// IsHoliday reports whether the calendar date of t is a holiday or its observed day off.
func (c *USCalendar) IsHoliday(t time.Time) bool {
	actual, observed, _ := c.cal.IsHoliday(t)
	return actual || observed
}

// IsWeekday reports whether t falls on Monday through Friday.
func IsWeekday(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// ExtractCalendar fills the calendar features of each record from its timestamp.
func ExtractCalendar(records []schema.MergedRecord, holidays HolidayCalendar) {
	for i := range records {
		ts := records[i].Timestamp
		records[i].Hour = ts.Hour()
		records[i].Day = ts.Day()
		records[i].Month = int(ts.Month())
		records[i].Year = ts.Year()
		records[i].IsWeekday = IsWeekday(ts)
		records[i].IsHoliday = holidays != nil && holidays.IsHoliday(ts)
	}
}
