package pattern

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
	"unicode"

	"github.com/goccy/temporalconv/types"
)

// offsetPatterns are the supported layouts of an offset ID. Lowercase
// letters are printed only when non-zero and are optional when parsing.
var offsetPatterns = []string{
	"+HH", "+HHmm", "+HH:mm", "+HHMM", "+HH:MM", "+HHMMss", "+HH:MM:ss", "+HHMMSS", "+HH:MM:SS",
}

const maxOffsetSeconds = 18 * 3600

func offsetPatternType(layout string) int {
	for i, p := range offsetPatterns {
		if p == layout {
			return i
		}
	}
	return -1
}

// offsetToken handles an offset such as "+09:00". A zero offset prints
// as noOffsetText.
func offsetToken(layout, noOffsetText string) *token {
	typ := offsetPatternType(layout)
	if typ < 0 {
		panic("pattern: unknown offset layout " + layout)
	}
	colon := typ > 0 && typ%2 == 0
	return &token{
		Parse: func(text []rune, p *Parsed) (int, error) {
			n, offset, err := parseOffset(text, typ, colon)
			if err != nil {
				if noOffsetText != "" && hasPrefixFold(text, noOffsetText) {
					if err := p.put(FieldOffset, 0); err != nil {
						return 0, failAt(0, "%s", err)
					}
					return len([]rune(noOffsetText)), nil
				}
				return 0, err
			}
			if err := p.put(FieldOffset, int64(offset)); err != nil {
				return 0, failAt(0, "%s", err)
			}
			return n, nil
		},
		Format: func(f *Fields) ([]rune, error) {
			if !f.Has(HasOffset) {
				return nil, &UnsupportedFieldError{Field: FieldOffset.String()}
			}
			if f.Offset == 0 {
				return []rune(noOffsetText), nil
			}
			sign, h, m, s := splitOffset(f.Offset)
			var b strings.Builder
			fmt.Fprintf(&b, "%c%02d", sign, h)
			sep := ""
			if colon {
				sep = ":"
			}
			if typ >= 3 || (typ >= 1 && (m > 0 || s > 0)) {
				fmt.Fprintf(&b, "%s%02d", sep, m)
				if typ >= 7 || (typ >= 5 && s > 0) {
					fmt.Fprintf(&b, "%s%02d", sep, s)
				}
			}
			return []rune(b.String()), nil
		},
	}
}

func parseOffset(text []rune, typ int, colon bool) (int, int, error) {
	if len(text) == 0 || (text[0] != '+' && text[0] != '-') {
		return 0, 0, failAt(0, "offset sign not found")
	}
	negative := text[0] == '-'
	pos := 1
	h, ok := twoDigits(text, pos)
	if !ok {
		return 0, 0, failAt(pos, "offset hour not found")
	}
	pos += 2
	var m, s int
	part := func(required bool) (int, bool, error) {
		start := pos
		if colon {
			if start >= len(text) || text[start] != ':' {
				if required {
					return 0, false, failAt(start, "offset ':' not found")
				}
				return 0, false, nil
			}
			start++
		}
		v, ok := twoDigits(text, start)
		if !ok {
			if required {
				return 0, false, failAt(start, "offset digits not found")
			}
			return 0, false, nil
		}
		pos = start + 2
		return v, true, nil
	}
	if typ >= 1 {
		v, found, err := part(typ >= 3)
		if err != nil {
			return 0, 0, err
		}
		m = v
		if found && typ >= 5 {
			v, _, err := part(typ >= 7)
			if err != nil {
				return 0, 0, err
			}
			s = v
		}
	}
	if h > 18 || m > 59 || s > 59 {
		return 0, 0, failAt(0, "offset out of range")
	}
	total := h*3600 + m*60 + s
	if total > maxOffsetSeconds {
		return 0, 0, failAt(0, "offset out of range")
	}
	if negative {
		total = -total
	}
	return pos, total, nil
}

func twoDigits(text []rune, pos int) (int, bool) {
	if pos+1 >= len(text) {
		return 0, false
	}
	a, b := text[pos], text[pos+1]
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

func splitOffset(offset int) (rune, int, int, int) {
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return sign, offset / 3600, offset / 60 % 60, offset % 60
}

// localizedOffsetToken handles "GMT", "GMT+9" and "GMT+09:00".
func localizedOffsetToken(full bool) *token {
	return &token{
		Parse: func(text []rune, p *Parsed) (int, error) {
			n, offset, err := parseLocalizedOffset(text)
			if err != nil {
				return 0, err
			}
			if err := p.put(FieldOffset, int64(offset)); err != nil {
				return 0, failAt(0, "%s", err)
			}
			return n, nil
		},
		Format: func(f *Fields) ([]rune, error) {
			if !f.Has(HasOffset) {
				return nil, &UnsupportedFieldError{Field: FieldOffset.String()}
			}
			return []rune(formatLocalizedOffset(f.Offset, full)), nil
		},
	}
}

func formatLocalizedOffset(offset int, full bool) string {
	if offset == 0 {
		return "GMT"
	}
	sign, h, m, s := splitOffset(offset)
	var b strings.Builder
	b.WriteString("GMT")
	if full {
		fmt.Fprintf(&b, "%c%02d:%02d", sign, h, m)
	} else {
		fmt.Fprintf(&b, "%c%d", sign, h)
		if m != 0 || s != 0 {
			fmt.Fprintf(&b, ":%02d", m)
		}
	}
	if s != 0 {
		fmt.Fprintf(&b, ":%02d", s)
	}
	return b.String()
}

func parseLocalizedOffset(text []rune) (int, int, error) {
	if !hasPrefixFold(text, "GMT") {
		return 0, 0, failAt(0, "[GMT] not found")
	}
	pos := 3
	if pos >= len(text) || (text[pos] != '+' && text[pos] != '-') {
		return pos, 0, nil
	}
	negative := text[pos] == '-'
	pos++
	readNumber := func(maxDigits int) (int, bool) {
		v, n := 0, 0
		for n < maxDigits && pos < len(text) && text[pos] >= '0' && text[pos] <= '9' {
			v = v*10 + int(text[pos]-'0')
			pos++
			n++
		}
		return v, n > 0
	}
	h, ok := readNumber(2)
	if !ok {
		return 0, 0, failAt(pos, "offset hour not found")
	}
	var m, s int
	if pos < len(text) && text[pos] == ':' {
		pos++
		if m, ok = twoDigits(text, pos); !ok {
			return 0, 0, failAt(pos, "offset minute not found")
		}
		pos += 2
		if pos < len(text) && text[pos] == ':' {
			if v, ok := twoDigits(text, pos+1); ok {
				s = v
				pos += 3
			}
		}
	}
	total := h*3600 + m*60 + s
	if h > 18 || m > 59 || s > 59 || total > maxOffsetSeconds {
		return 0, 0, failAt(0, "offset out of range")
	}
	if negative {
		total = -total
	}
	return pos, total, nil
}

// zoneIDToken handles a zone ID. When regionOnly is set a value without a
// region zone is reported as unsupported so that an enclosing optional
// section is skipped.
func zoneIDToken(regionOnly bool) *token {
	return &token{
		Parse: parseZoneID,
		Format: func(f *Fields) ([]rune, error) {
			switch {
			case f.Has(HasZone):
				return []rune(f.Zone), nil
			case f.Has(HasOffset) && !regionOnly:
				return []rune(types.FormatOffsetID(f.Offset)), nil
			}
			return nil, &UnsupportedFieldError{Field: "ZoneId"}
		},
	}
}

func parseZoneID(text []rune, p *Parsed) (int, error) {
	if len(text) > 0 && (text[0] == '+' || text[0] == '-') {
		n, offset, err := parseOffset(text, offsetPatternType("+HH:MM:ss"), true)
		if err != nil {
			return 0, err
		}
		if err := p.put(FieldOffset, int64(offset)); err != nil {
			return 0, failAt(0, "%s", err)
		}
		return n, nil
	}
	run := 0
	for run < len(text) && isZoneIDRune(text[run]) {
		run++
	}
	if run == 0 {
		return 0, failAt(0, "zone id not found")
	}
	if run == 1 && unicode.ToUpper(text[0]) == 'Z' {
		if err := p.put(FieldOffset, 0); err != nil {
			return 0, failAt(0, "%s", err)
		}
		return 1, nil
	}
	for n := run; n > 0; n-- {
		id, ok := loadRegion(string(text[:n]))
		if !ok {
			continue
		}
		if err := p.putZone(id); err != nil {
			return 0, failAt(0, "%s", err)
		}
		return n, nil
	}
	return 0, failAt(0, "unknown zone id [%s]", string(text[:run]))
}

func isZoneIDRune(r rune) bool {
	return r == '/' || r == '_' || r == '-' || r == '+' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}

// loadRegion resolves id to a loadable region ID, retrying with each
// word capitalized for input such as "asia/tokyo".
func loadRegion(id string) (string, bool) {
	if id == "" || strings.EqualFold(id, "Local") {
		return "", false
	}
	if _, err := time.LoadLocation(id); err == nil {
		return id, true
	}
	if strings.EqualFold(id, "utc") {
		return "UTC", true
	}
	title := []rune(strings.ToLower(id))
	upper := true
	for i, r := range title {
		if upper {
			title[i] = unicode.ToUpper(r)
		}
		upper = r == '/' || r == '_' || r == '-'
	}
	if candidate := string(title); candidate != id {
		if _, err := time.LoadLocation(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

type zoneName struct {
	short  string
	long   string
	region string
}

// zoneNames maps common zone names to a representative region.
var zoneNames = []zoneName{
	{short: "UTC", long: "Coordinated Universal Time", region: "UTC"},
	{short: "GMT", long: "Greenwich Mean Time", region: "GMT"},
	{short: "ET", long: "Eastern Time", region: "America/New_York"},
	{short: "EST", long: "Eastern Standard Time", region: "America/New_York"},
	{short: "EDT", long: "Eastern Daylight Time", region: "America/New_York"},
	{short: "CT", long: "Central Time", region: "America/Chicago"},
	{short: "CST", long: "Central Standard Time", region: "America/Chicago"},
	{short: "CDT", long: "Central Daylight Time", region: "America/Chicago"},
	{short: "MT", long: "Mountain Time", region: "America/Denver"},
	{short: "MST", long: "Mountain Standard Time", region: "America/Denver"},
	{short: "MDT", long: "Mountain Daylight Time", region: "America/Denver"},
	{short: "PT", long: "Pacific Time", region: "America/Los_Angeles"},
	{short: "PST", long: "Pacific Standard Time", region: "America/Los_Angeles"},
	{short: "PDT", long: "Pacific Daylight Time", region: "America/Los_Angeles"},
	{short: "AKST", long: "Alaska Standard Time", region: "America/Anchorage"},
	{short: "AKDT", long: "Alaska Daylight Time", region: "America/Anchorage"},
	{short: "HST", long: "Hawaii Standard Time", region: "Pacific/Honolulu"},
	{short: "JST", long: "Japan Standard Time", region: "Asia/Tokyo"},
	{short: "KST", long: "Korea Standard Time", region: "Asia/Seoul"},
	{short: "IST", long: "India Standard Time", region: "Asia/Kolkata"},
	{short: "BST", long: "British Summer Time", region: "Europe/London"},
	{short: "WET", long: "Western European Time", region: "Europe/Lisbon"},
	{short: "WEST", long: "Western European Summer Time", region: "Europe/Lisbon"},
	{short: "CET", long: "Central European Time", region: "Europe/Paris"},
	{short: "CEST", long: "Central European Summer Time", region: "Europe/Paris"},
	{short: "EET", long: "Eastern European Time", region: "Europe/Athens"},
	{short: "EEST", long: "Eastern European Summer Time", region: "Europe/Athens"},
	{short: "AEST", long: "Australian Eastern Standard Time", region: "Australia/Sydney"},
	{short: "AEDT", long: "Australian Eastern Daylight Time", region: "Australia/Sydney"},
}

func longZoneName(abbreviation string) string {
	for _, n := range zoneNames {
		if n.short == abbreviation {
			return n.long
		}
	}
	return abbreviation
}

// zoneNameToken handles zone names such as "JST" or, when full is set,
// "Japan Standard Time". Parsing also accepts zone IDs.
func zoneNameToken(full bool) *token {
	return &token{
		Parse: func(text []rune, p *Parsed) (int, error) {
			best, region := -1, ""
			for _, n := range zoneNames {
				for _, name := range []string{n.short, n.long} {
					if hasPrefixFold(text, name) && len([]rune(name)) > best {
						best, region = len([]rune(name)), n.region
					}
				}
			}
			if best > 0 {
				if err := p.putZone(region); err != nil {
					return 0, failAt(0, "%s", err)
				}
				return best, nil
			}
			return parseZoneID(text, p)
		},
		Format: func(f *Fields) ([]rune, error) {
			switch {
			case f.Has(HasZone) && f.Has(HasDate|HasTime):
				loc, err := time.LoadLocation(f.Zone)
				if err != nil {
					return nil, fmt.Errorf("unknown zone id [%s]: %w", f.Zone, err)
				}
				t := time.Date(f.Year, time.Month(f.Month), f.Day, f.Hour, f.Minute, f.Second, f.Nanosecond, loc)
				abbreviation, offset := t.Zone()
				if abbreviation == "" || abbreviation[0] == '+' || abbreviation[0] == '-' {
					return []rune(formatLocalizedOffset(offset, true)), nil
				}
				if full {
					return []rune(longZoneName(abbreviation)), nil
				}
				return []rune(abbreviation), nil
			case f.Has(HasZone):
				return []rune(f.Zone), nil
			case f.Has(HasOffset):
				return []rune(types.FormatOffsetID(f.Offset)), nil
			}
			return nil, &UnsupportedFieldError{Field: "ZoneId"}
		},
	}
}
