package pattern

import (
	"fmt"
	"time"
)

// Set marks the groups of values present in Fields.
type Set uint16

const (
	HasYear Set = 1 << iota
	HasMonth
	HasDay
	HasTime
	HasOffset
	HasZone
	HasWeekday

	HasDate = HasYear | HasMonth | HasDay
)

// Fields is the resolved form of a temporal value. Formatting reads it
// and parsing produces it.
type Fields struct {
	Set Set

	Year       int
	Month      int
	Day        int
	Weekday    time.Weekday
	Hour       int
	Minute     int
	Second     int
	Nanosecond int

	// Offset is in seconds east of UTC.
	Offset int

	// Zone is a region ID such as "Asia/Tokyo".
	Zone string
}

// Has reports whether every group in s is present.
func (f *Fields) Has(s Set) bool {
	return f.Set&s == s
}

// DefaultYear fills the year when it was not parsed.
func (f *Fields) DefaultYear(year int) {
	if f.Has(HasYear) {
		return
	}
	f.Year = year
	f.Set |= HasYear
}

// Validate checks the calendar consistency of a complete date.
func (f *Fields) Validate() error {
	if !f.Has(HasDate) {
		return nil
	}
	if f.Day > daysIn(time.Month(f.Month), f.Year) {
		return fmt.Errorf("invalid date '%s %d' for year %d", time.Month(f.Month), f.Day, f.Year)
	}
	if f.Has(HasWeekday) {
		actual := time.Date(f.Year, time.Month(f.Month), f.Day, 0, 0, 0, 0, time.UTC).Weekday()
		if actual != f.Weekday {
			return fmt.Errorf("conflict found: day-of-week %s differs from %s derived from the date", f.Weekday, actual)
		}
	}
	return nil
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Field identifies a value captured while parsing.
type Field int

const (
	FieldEra Field = iota
	FieldYear
	FieldYearOfEra
	FieldMonth
	FieldDayOfMonth
	FieldDayOfYear
	FieldDayOfWeek
	FieldAmPm
	FieldHourOfDay
	FieldHourOfAmPm
	FieldMinute
	FieldSecond
	FieldNano
	FieldOffset
	fieldCount
)

var fieldNames = [fieldCount]string{
	"Era",
	"Year",
	"YearOfEra",
	"MonthOfYear",
	"DayOfMonth",
	"DayOfYear",
	"DayOfWeek",
	"AmPmOfDay",
	"HourOfDay",
	"HourOfAmPm",
	"MinuteOfHour",
	"SecondOfMinute",
	"NanoOfSecond",
	"OffsetSeconds",
}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "Unknown"
	}
	return fieldNames[f]
}

// Parsed holds the raw values captured by a parse before resolution.
// It is a plain value so that optional sections can restore it.
type Parsed struct {
	values  [fieldCount]int64
	present uint32
	zone    string
}

func (p *Parsed) Get(f Field) (int64, bool) {
	if p.present&(1<<uint(f)) == 0 {
		return 0, false
	}
	return p.values[f], true
}

// Zone returns the parsed region ID.
func (p *Parsed) Zone() (string, bool) {
	return p.zone, p.zone != ""
}

func (p *Parsed) put(f Field, v int64) error {
	if prev, ok := p.Get(f); ok && prev != v {
		return fmt.Errorf("conflict found: %s %d differs from %s %d", f, prev, f, v)
	}
	p.values[f] = v
	p.present |= 1 << uint(f)
	return nil
}

func (p *Parsed) putZone(zone string) error {
	if p.zone != "" && p.zone != zone {
		return fmt.Errorf("conflict found: zone %s differs from %s", p.zone, zone)
	}
	p.zone = zone
	return nil
}

// Resolve merges the parsed values into Fields. Missing minutes, seconds
// and fractions default to zero once an hour is known.
func (p *Parsed) Resolve() (Fields, error) {
	var f Fields
	if v, ok := p.Get(FieldYear); ok {
		f.Year = int(v)
		f.Set |= HasYear
	} else if yoe, ok := p.Get(FieldYearOfEra); ok {
		era := int64(1)
		if e, ok := p.Get(FieldEra); ok {
			era = e
		}
		if era == 1 {
			f.Year = int(yoe)
		} else {
			f.Year = int(1 - yoe)
		}
		f.Set |= HasYear
	}
	if v, ok := p.Get(FieldMonth); ok {
		f.Month = int(v)
		f.Set |= HasMonth
	}
	if v, ok := p.Get(FieldDayOfMonth); ok {
		f.Day = int(v)
		f.Set |= HasDay
	}
	if doy, ok := p.Get(FieldDayOfYear); ok {
		if !f.Has(HasYear) {
			return f, fmt.Errorf("%s requires a year", FieldDayOfYear)
		}
		t := time.Date(f.Year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, int(doy)-1)
		if t.Year() != f.Year {
			return f, fmt.Errorf("invalid day-of-year %d for year %d", doy, f.Year)
		}
		if (f.Has(HasMonth) && f.Month != int(t.Month())) || (f.Has(HasDay) && f.Day != t.Day()) {
			return f, fmt.Errorf("conflict found: day-of-year %d differs from the month and day", doy)
		}
		f.Month, f.Day = int(t.Month()), t.Day()
		f.Set |= HasMonth | HasDay
	}
	if v, ok := p.Get(FieldDayOfWeek); ok {
		f.Weekday = time.Weekday(v)
		f.Set |= HasWeekday
	}

	hour, hasHour := p.Get(FieldHourOfDay)
	ampm, hasAmPm := p.Get(FieldAmPm)
	if hoa, ok := p.Get(FieldHourOfAmPm); ok {
		if !hasAmPm {
			return f, fmt.Errorf("%s requires %s", FieldHourOfAmPm, FieldAmPm)
		}
		h := ampm*12 + hoa
		if hasHour && hour != h {
			return f, fmt.Errorf("conflict found: %s %d differs from %s %d", FieldHourOfDay, hour, FieldHourOfDay, h)
		}
		hour, hasHour = h, true
	} else if hasHour && hasAmPm && hour/12 != ampm {
		return f, fmt.Errorf("conflict found: %s %d differs from %s %d", FieldHourOfDay, hour, FieldAmPm, ampm)
	}
	if hasHour {
		f.Hour = int(hour)
		if v, ok := p.Get(FieldMinute); ok {
			f.Minute = int(v)
		}
		if v, ok := p.Get(FieldSecond); ok {
			f.Second = int(v)
		}
		if v, ok := p.Get(FieldNano); ok {
			f.Nanosecond = int(v)
		}
		f.Set |= HasTime
	}

	if v, ok := p.Get(FieldOffset); ok {
		f.Offset = int(v)
		f.Set |= HasOffset
	}
	if zone, ok := p.Zone(); ok {
		f.Zone = zone
		f.Set |= HasZone
	}
	return f, nil
}
