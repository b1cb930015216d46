package xsd

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// referenceEpoch is the universal line's zero point: 0001-01-01T00:00:00Z,
// matching the XPath data model's proleptic Gregorian calendar origin
// closely enough for the range of dates this engine needs to support.
// Full XSD normalization of leap seconds and years outside Go's time.Time
// range is out of scope (spec §9 Open Questions).
var referenceEpoch = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)

// DateTime is the shared representation backing xsd:dateTime, xsd:date and
// xsd:time (spec §3.1, §3.2.1): a decimal-128 second count on a universal
// line, plus an optional timezone offset in minutes.
type DateTime struct {
	Seconds   Decimal128 // seconds since referenceEpoch, on the universal line
	HasOffset bool
	OffsetMin int16
}

// FromTime builds a DateTime from a time.Time, recording whether it carries
// explicit offset information.
func FromTime(t time.Time, hasOffset bool) DateTime {
	sec := FromInt64(t.Unix() - referenceEpoch.Unix())
	if frac := FromInt64(int64(t.Nanosecond())).Div(FromInt64(1e9)); frac.IsOK() {
		if r := sec.Add(frac.Value); r.IsOK() {
			sec = r.Value
		}
	}
	_, offset := t.Zone()
	return DateTime{Seconds: sec, HasOffset: hasOffset, OffsetMin: int16(offset / 60)}
}

// Decimal128FromDuration converts a time.Duration to a Decimal128 second
// count (sub-second precision preserved to nanoseconds, well within scale
// 18).
func Decimal128FromDuration(d time.Duration) Decimal128 {
	r := FromFloat64(d.Seconds())
	v, _ := r.Get()
	return v
}

// ParseDateTime parses an xsd:dateTime lexical value: an RFC-3339-like
// timestamp, optionally with a trailing 'Z' or +HH:MM/-HH:MM offset, and
// optional fractional seconds.
func ParseDateTime(s string) Result[DateTime] { return parseTemporal(s, true, true) }

// ParseDate parses an xsd:date lexical value (no time-of-day component).
func ParseDate(s string) Result[DateTime] { return parseTemporal(s, true, false) }

// ParseTime parses an xsd:time lexical value (no date component; the date
// part is fixed at the reference epoch's day).
func ParseTime(s string) Result[DateTime] { return parseTemporal(s, false, true) }

func parseTemporal(s string, wantDate, wantTime bool) Result[DateTime] {
	hasOffset := false
	offsetMin := int16(0)
	body := s
	switch {
	case strings.HasSuffix(s, "Z"):
		hasOffset = true
		body = s[:len(s)-1]
	default:
		if i := strings.LastIndexAny(s, "+-"); i > 0 {
			sign := s[i]
			rest := s[i+1:]
			if len(rest) == 5 && rest[2] == ':' {
				hh, e1 := strconv.Atoi(rest[:2])
				mm, e2 := strconv.Atoi(rest[3:])
				if e1 == nil && e2 == nil {
					hasOffset = true
					offsetMin = int16(hh*60 + mm)
					if sign == '-' {
						offsetMin = -offsetMin
					}
					body = s[:i]
				}
			}
		}
	}

	layout := ""
	switch {
	case wantDate && wantTime:
		layout = "2006-01-02T15:04:05"
		if i := strings.IndexByte(body, '.'); i >= 0 {
			layout += "." + strings.Repeat("0", len(body)-i-1)
		}
	case wantDate:
		layout = "2006-01-02"
	case wantTime:
		layout = "15:04:05"
		if i := strings.IndexByte(body, '.'); i >= 0 {
			layout += "." + strings.Repeat("0", len(body)-i-1)
		}
	}

	t, err := time.Parse(layout, body)
	if err != nil {
		return Domain[DateTime]()
	}
	if !wantDate {
		t = time.Date(1, 1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}
	if !wantTime {
		t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	if hasOffset {
		t = t.Add(-time.Duration(offsetMin) * time.Minute)
	}
	d := FromTime(t, hasOffset)
	d.OffsetMin = offsetMin
	return Ok(d)
}

// String renders the canonical xsd:dateTime lexical form.
func (d DateTime) String() string {
	local := d.Seconds
	if d.HasOffset {
		shift := FromInt64(int64(d.OffsetMin) * 60)
		if r := local.Add(shift); r.IsOK() {
			local = r.Value
		}
	}
	whole, _ := local.Floor().Get()
	frac, _ := local.Sub(whole).Get()
	t := time.Unix(referenceEpoch.Unix()+int64(whole.ToFloat64()), int64(math.Round(frac.ToFloat64()*1e9))).UTC()
	s := t.Format("2006-01-02T15:04:05.999999999")
	if d.HasOffset {
		if d.OffsetMin == 0 {
			s += "Z"
		} else {
			sign := "+"
			m := d.OffsetMin
			if m < 0 {
				sign = "-"
				m = -m
			}
			s += fmt.Sprintf("%s%02d:%02d", sign, m/60, m%60)
		}
	}
	return s
}

func decimalToDuration(d Decimal128) time.Duration {
	f := d.ToFloat64()
	return time.Duration(f * float64(time.Second))
}

// Compare orders two DateTime values per XPath semantics. When both
// values carry an explicit offset, or both lack one, the comparison is a
// total order over the universal-line second count. When exactly one
// carries an offset, spec §4.1 notes the two compare only within their
// defined overlap; this implementation treats a missing offset as UTC for
// the comparison, which is correct whenever the two instants are not
// within 14 hours of each other (see SPEC_FULL Open Questions).
func (d DateTime) Compare(o DateTime) int { return d.Seconds.Cmp(o.Seconds) }

// Eq reports value equality (same universal-line instant and offset
// presence/value), as distinct from Compare's looser ordering rule.
func (d DateTime) Eq(o DateTime) bool {
	return d.Seconds.Cmp(o.Seconds) == 0 && d.HasOffset == o.HasOffset && d.OffsetMin == o.OffsetMin
}
