package xsd

import (
	"fmt"
	"strconv"
	"strings"
)

// Duration represents xsd:duration and its two restricted subtypes (spec
// §3.1): a pair of (months, seconds). HasMonths is set when the year/month
// components are non-zero and HasSeconds when the day/time components are
// non-zero, so a full xsd:duration such as P1Y carries only Months;
// xsd:yearMonthDuration never carries Seconds and xsd:dayTimeDuration
// never carries Months.
type Duration struct {
	HasMonths bool
	Months    int64
	HasSeconds bool
	Seconds   Decimal128
}

// ParseDuration parses the PnYnMnDTnHnMnS lexical grammar. yearMonthOnly
// and dayTimeOnly restrict which components are permitted: with neither
// set both are allowed, yearMonthOnly allows only Y/M, dayTimeOnly only
// D/H/M/S.
func ParseDuration(s string, yearMonthOnly, dayTimeOnly bool) Result[Duration] {
	neg := false
	i := 0
	if i < len(s) && s[i] == '-' {
		neg = true
		i++
	}
	if i >= len(s) || s[i] != 'P' {
		return Domain[Duration]()
	}
	i++
	rest := s[i:]
	datePart, timePart, hasTime := rest, "", false
	if idx := strings.IndexByte(rest, 'T'); idx >= 0 {
		datePart, timePart, hasTime = rest[:idx], rest[idx+1:], true
	}
	if datePart == "" && (!hasTime || timePart == "") {
		return Domain[Duration]()
	}

	var months int64
	var hasMonths bool
	years, datePart, err := takeComponent(datePart, 'Y')
	if err != nil {
		return Domain[Duration]()
	}
	if years != 0 {
		months += years * 12
		hasMonths = true
	}
	monthsComp, datePart, err := takeComponent(datePart, 'M')
	if err != nil {
		return Domain[Duration]()
	}
	if monthsComp != 0 {
		months += monthsComp
		hasMonths = true
	}
	days, datePart, err := takeComponent(datePart, 'D')
	if err != nil {
		return Domain[Duration]()
	}
	if datePart != "" {
		return Domain[Duration]()
	}
	if dayTimeOnly && hasMonths {
		return Domain[Duration]()
	}
	if yearMonthOnly && days != 0 {
		return Domain[Duration]()
	}

	seconds := Zero
	hasSeconds := days != 0
	if days != 0 {
		seconds = FromInt64(days * 86400)
	}
	if hasTime {
		if yearMonthOnly {
			return Domain[Duration]()
		}
		hours, timePart, err := takeComponent(timePart, 'H')
		if err != nil {
			return Domain[Duration]()
		}
		mins, timePart, err := takeComponent(timePart, 'M')
		if err != nil {
			return Domain[Duration]()
		}
		var secVal Decimal128
		if strings.HasSuffix(timePart, "S") {
			r := ParseDecimal(timePart[:len(timePart)-1])
			v, ok := r.Get()
			if !ok {
				return Domain[Duration]()
			}
			secVal = v
			timePart = ""
		}
		if timePart != "" {
			return Domain[Duration]()
		}
		total := hours*3600 + mins*60
		if total != 0 || !secVal.IsZero() {
			hasSeconds = true
		}
		sum := FromInt64(total)
		if r := sum.Add(secVal); r.IsOK() {
			sum = r.Value
		}
		if r := seconds.Add(sum); r.IsOK() {
			seconds = r.Value
		}
	}
	if yearMonthOnly && hasSeconds {
		return Domain[Duration]()
	}

	if neg {
		if hasMonths {
			months = -months
		}
		if hasSeconds {
			if r := seconds.Neg(); r.IsOK() {
				seconds = r.Value
			}
		}
	}

	return Ok(Duration{HasMonths: hasMonths, Months: months, HasSeconds: hasSeconds, Seconds: seconds})
}

// takeComponent consumes a leading run of digits followed by marker from s,
// returning the numeric value and the remainder. If marker is not present
// at all, it returns (0, s, nil) unchanged.
func takeComponent(s string, marker byte) (int64, string, error) {
	idx := strings.IndexByte(s, marker)
	if idx < 0 {
		return 0, s, nil
	}
	for _, c := range s[:idx] {
		if c < '0' || c > '9' {
			return 0, s, fmt.Errorf("bad duration component")
		}
	}
	v, err := strconv.ParseInt(s[:idx], 10, 64)
	if err != nil {
		return 0, s, err
	}
	return v, s[idx+1:], nil
}

// Add sums two durations of the same shape (both have Months iff the
// result should, same for Seconds); components of different shapes cannot
// be combined (spec §4.1: "defined only between commensurable sub-kinds").
func (d Duration) Add(o Duration) Result[Duration] {
	if d.HasMonths != o.HasMonths || d.HasSeconds != o.HasSeconds {
		return Domain[Duration]()
	}
	out := Duration{HasMonths: d.HasMonths, HasSeconds: d.HasSeconds}
	if d.HasMonths {
		r, ok := checkedAddInt64(d.Months, o.Months)
		if !ok {
			return Overflow[Duration]()
		}
		out.Months = r
	}
	if d.HasSeconds {
		r := d.Seconds.Add(o.Seconds)
		if !r.IsOK() {
			return Overflow[Duration]()
		}
		out.Seconds = r.Value
	}
	return Ok(out)
}

func checkedAddInt64(a, b int64) (int64, bool) {
	c := a + b
	if ((a ^ c) & (b ^ c)) < 0 {
		return 0, false
	}
	return c, true
}

// Compare orders two commensurable durations. A full xsd:duration (both
// parts present) compared against another follows the XPath partial order
// and may be indeterminate; Compare reports that as ok=false.
func (d Duration) Compare(o Duration) (cmp int, ok bool) {
	switch {
	case d.HasMonths && d.HasSeconds && o.HasMonths && o.HasSeconds:
		// Full duration vs full duration: only comparable when the
		// months components agree, collapsing to a seconds comparison;
		// otherwise the XPath order is indeterminate.
		if d.Months != o.Months {
			return 0, false
		}
		return d.Seconds.Cmp(o.Seconds), true
	case d.HasMonths && o.HasMonths && !d.HasSeconds && !o.HasSeconds:
		return cmpInt64(d.Months, o.Months), true
	case d.HasSeconds && o.HasSeconds && !d.HasMonths && !o.HasMonths:
		return d.Seconds.Cmp(o.Seconds), true
	default:
		return 0, false
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
