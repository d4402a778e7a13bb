package types

import (
	"fmt"
	"strings"
	"time"
)

// Value is a temporal value produced by a converter.
// String returns the canonical ISO-8601 rendition of the value.
type Value interface {
	Category() Category
	String() string
}

type (
	// Instant is a point on the UTC time-line.
	Instant struct {
		Seconds int64
		Nanos   int
	}

	LocalDate struct {
		Year  int
		Month time.Month
		Day   int
	}

	LocalTime struct {
		Hour       int
		Minute     int
		Second     int
		Nanosecond int
	}

	LocalDateTime struct {
		Date LocalDate
		Time LocalTime
	}

	// OffsetTime is a wall clock time with a fixed offset from UTC in seconds.
	OffsetTime struct {
		Time   LocalTime
		Offset int
	}

	OffsetDateTime struct {
		DateTime LocalDateTime
		Offset   int
	}

	// ZonedDateTime is a date-time in a time-zone. Zone holds a region ID
	// such as "Asia/Tokyo" and is empty when the zone is a fixed offset.
	ZonedDateTime struct {
		DateTime LocalDateTime
		Offset   int
		Zone     string
	}

	Year int

	Month time.Month

	YearMonth struct {
		Year  int
		Month time.Month
	}
)

func InstantOf(t time.Time) Instant {
	return Instant{Seconds: t.Unix(), Nanos: t.Nanosecond()}
}

func (v Instant) Time() time.Time {
	return time.Unix(v.Seconds, int64(v.Nanos)).UTC()
}

func (v Instant) Category() Category { return CategoryInstant }

func (v Instant) String() string {
	t := v.Time()
	return formatDate(t.Year(), t.Month(), t.Day()) + "T" +
		fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second()) +
		formatNanoGroups(t.Nanosecond()) + "Z"
}

func LocalDateOf(t time.Time) LocalDate {
	y, m, d := t.Date()
	return LocalDate{Year: y, Month: m, Day: d}
}

func (v LocalDate) Weekday() time.Weekday {
	return time.Date(v.Year, v.Month, v.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

func (v LocalDate) YearDay() int {
	return time.Date(v.Year, v.Month, v.Day, 0, 0, 0, 0, time.UTC).YearDay()
}

func (v LocalDate) Category() Category { return CategoryLocalDate }

func (v LocalDate) String() string {
	return formatDate(v.Year, v.Month, v.Day)
}

func LocalTimeOf(t time.Time) LocalTime {
	return LocalTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), Nanosecond: t.Nanosecond()}
}

func (v LocalTime) Category() Category { return CategoryLocalTime }

// String omits the seconds when both the seconds and the fraction are zero.
func (v LocalTime) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%02d:%02d", v.Hour, v.Minute)
	if v.Second == 0 && v.Nanosecond == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, ":%02d", v.Second)
	b.WriteString(formatNanoGroups(v.Nanosecond))
	return b.String()
}

func LocalDateTimeOf(t time.Time) LocalDateTime {
	return LocalDateTime{Date: LocalDateOf(t), Time: LocalTimeOf(t)}
}

// In returns the time.Time of the wall clock in loc.
func (v LocalDateTime) In(loc *time.Location) time.Time {
	return time.Date(
		v.Date.Year, v.Date.Month, v.Date.Day,
		v.Time.Hour, v.Time.Minute, v.Time.Second, v.Time.Nanosecond,
		loc,
	)
}

func (v LocalDateTime) Category() Category { return CategoryLocalDateTime }

func (v LocalDateTime) String() string {
	return v.Date.String() + "T" + v.Time.String()
}

func (v OffsetTime) Category() Category { return CategoryOffsetTime }

func (v OffsetTime) String() string {
	return v.Time.String() + FormatOffsetID(v.Offset)
}

func OffsetDateTimeOf(t time.Time) OffsetDateTime {
	_, offset := t.Zone()
	return OffsetDateTime{DateTime: LocalDateTimeOf(t), Offset: offset}
}

func (v OffsetDateTime) Time() time.Time {
	return v.DateTime.In(time.FixedZone("", v.Offset))
}

func (v OffsetDateTime) Category() Category { return CategoryOffsetDateTime }

func (v OffsetDateTime) String() string {
	return v.DateTime.String() + FormatOffsetID(v.Offset)
}

// ZonedDateTimeOf captures t with its location. Locations that are not
// loadable by name, such as fixed zones, are kept as an offset only.
func ZonedDateTimeOf(t time.Time) ZonedDateTime {
	_, offset := t.Zone()
	zone := t.Location().String()
	if _, err := time.LoadLocation(zone); err != nil || zone == "Local" {
		zone = ""
	}
	return ZonedDateTime{DateTime: LocalDateTimeOf(t), Offset: offset, Zone: zone}
}

func (v ZonedDateTime) Time() time.Time {
	return v.DateTime.In(time.FixedZone("", v.Offset))
}

func (v ZonedDateTime) Category() Category { return CategoryZonedDateTime }

func (v ZonedDateTime) String() string {
	s := v.DateTime.String() + FormatOffsetID(v.Offset)
	if v.Zone != "" {
		s += "[" + v.Zone + "]"
	}
	return s
}

func (v Year) Category() Category { return CategoryYear }

func (v Year) String() string {
	return fmt.Sprint(int(v))
}

func (v Month) Category() Category { return CategoryMonth }

func (v Month) String() string {
	return time.Month(v).String()
}

func (v YearMonth) Category() Category { return CategoryYearMonth }

func (v YearMonth) String() string {
	return formatYear(v.Year) + fmt.Sprintf("-%02d", int(v.Month))
}

// FormatOffsetID renders an offset in seconds as "Z", "+09:00" or "+09:00:30".
func FormatOffsetID(offset int) string {
	if offset == 0 {
		return "Z"
	}
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	h, m, s := offset/3600, offset/60%60, offset%60
	if s != 0 {
		return fmt.Sprintf("%c%02d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%c%02d:%02d", sign, h, m)
}

func formatYear(year int) string {
	switch {
	case year > 9999:
		return fmt.Sprintf("+%d", year)
	case year < 0:
		return fmt.Sprintf("-%04d", -year)
	}
	return fmt.Sprintf("%04d", year)
}

func formatDate(year int, month time.Month, day int) string {
	return formatYear(year) + fmt.Sprintf("-%02d-%02d", int(month), day)
}

// formatNanoGroups renders a fraction in groups of three digits.
func formatNanoGroups(nano int) string {
	switch {
	case nano == 0:
		return ""
	case nano%1000000 == 0:
		return fmt.Sprintf(".%03d", nano/1000000)
	case nano%1000 == 0:
		return fmt.Sprintf(".%06d", nano/1000)
	}
	return fmt.Sprintf(".%09d", nano)
}
