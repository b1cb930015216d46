package xsd

import (
	"math/big"
	"strings"

	"lukechampine.com/uint128"
)

// Decimal128 is xsd:decimal stored as a sign and a 128-bit unsigned
// magnitude representing value * 10^18 (spec §3.1, §3.2.1: "decimal-128
// with precision=38, scale=18"). The sign/magnitude split -- rather than a
// two's-complement int128 -- lets the storage representation reuse
// lukechampine.com/uint128's Uint128 directly for the magnitude (the same
// 128-bit-integer building block the pack's davidalexisnyt/schemastudio and
// DataDog/datadog-agent manifests carry for exactly this purpose), while
// checked arithmetic is computed exactly via math/big and re-validated
// against the int128 range on the way back out (see DESIGN.md: no pack
// library implements this spec's exact checked-decimal128 algorithm, so the
// arithmetic itself is hand-rolled on top of math/big).
type Decimal128 struct {
	Negative bool
	Mag      uint128.Uint128
}

// Scale is the number of fractional decimal digits represented, fixed by
// spec §3.1.
const Scale = 18

var (
	bigTen    = big.NewInt(10)
	bigScale  = new(big.Int).Exp(bigTen, big.NewInt(Scale), nil) // 10^18
	maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// Zero is the decimal value 0.
var Zero = Decimal128{}

// MaxDecimal128 is the largest representable Decimal128 value.
var MaxDecimal128 = Decimal128{Mag: uint128.FromBig(maxInt128)}

// MinDecimal128 is the smallest (most negative) representable Decimal128
// value.
var MinDecimal128 = Decimal128{Negative: true, Mag: uint128.FromBig(maxInt128).Add64(1)}

// Bytes encodes d as 16 big-endian bytes of its signed mantissa in two's
// complement, the fixed-width shape spec §3.2.1 stores in a decimal-128
// columnar field.
func (d Decimal128) Bytes() [16]byte {
	m := d.big()
	var out [16]byte
	v := m
	if m.Sign() < 0 {
		v = new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 128), m)
	}
	b := v.Bytes()
	copy(out[16-len(b):], b)
	return out
}

// DecimalFromBytes decodes the 16-byte two's-complement form written by
// Bytes back into a Decimal128.
func DecimalFromBytes(b [16]byte) Decimal128 {
	u := new(big.Int).SetBytes(b[:])
	if u.Bit(127) == 1 {
		u = new(big.Int).Sub(u, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	d, _ := fromBigMantissa(u)
	return d
}

// big returns the signed mantissa (value * 10^18) as a math/big.Int.
func (d Decimal128) big() *big.Int {
	v := d.Mag.Big()
	if d.Negative {
		v.Neg(v)
	}
	return v
}

func fromBigMantissa(m *big.Int) (Decimal128, bool) {
	if m.Cmp(maxInt128) > 0 || m.Cmp(minInt128) < 0 {
		return Decimal128{}, false
	}
	neg := m.Sign() < 0
	abs := new(big.Int).Abs(m)
	return Decimal128{Negative: neg && abs.Sign() != 0, Mag: uint128.FromBig(abs)}, true
}

// FromInt64 constructs an exact Decimal128 for an integer value.
func FromInt64(v int64) Decimal128 {
	d, ok := fromBigMantissa(new(big.Int).Mul(big.NewInt(v), bigScale))
	if !ok {
		// unreachable: any int64 * 10^18 fits in 128 bits.
		panic("xsd: int64 to decimal128 overflow")
	}
	return d
}

// ParseDecimal parses the XSD decimal lexical grammar
// (+|-)?([0-9]+(.[0-9]*)?|\.[0-9]+), rejecting empty input, a lone sign, or
// a lone dot (spec §4.1). Overflow and underflow as specified.
func ParseDecimal(s string) Result[Decimal128] {
	orig := s
	if s == "" {
		return Domain[Decimal128]()
	}
	neg := false
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		neg = true
		s = s[1:]
	}
	if s == "" || s == "." {
		return Domain[Decimal128]()
	}

	intPart, fracPart, hasDot := s, "", false
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart, hasDot = s[:i], s[i+1:], true
	}
	if intPart == "" && (!hasDot || fracPart == "") {
		return Domain[Decimal128]()
	}
	for _, r := range intPart + fracPart {
		if r < '0' || r > '9' {
			return Domain[Decimal128]()
		}
	}
	_ = orig

	significant := fracPart
	if len(significant) > Scale {
		tail := significant[Scale:]
		for _, r := range tail {
			if r != '0' {
				return Domain[Decimal128]() // underflow: >18 significant fractional digits
			}
		}
		significant = significant[:Scale]
	}
	for len(significant) < Scale {
		significant += "0"
	}

	intVal := new(big.Int)
	if intPart != "" {
		intVal.SetString(intPart, 10)
	}
	mantissa := new(big.Int).Mul(intVal, bigScale)
	if significant != "" {
		frac := new(big.Int)
		frac.SetString(significant, 10)
		mantissa.Add(mantissa, frac)
	}
	if neg {
		mantissa.Neg(mantissa)
	}
	d, ok := fromBigMantissa(mantissa)
	if !ok {
		return Overflow[Decimal128]()
	}
	return Ok(d)
}

// String renders the canonical form: trailing fractional zeros are
// omitted, the integer part is never padded, and zero prints as "0".
func (d Decimal128) String() string {
	m := d.Mag.Big()
	q, r := new(big.Int).QuoRem(m, bigScale, new(big.Int))
	intStr := q.String()
	fracStr := r.String()
	for len(fracStr) < Scale {
		fracStr = "0" + fracStr
	}
	fracStr = strings.TrimRight(fracStr, "0")

	var b strings.Builder
	if d.Negative && (q.Sign() != 0 || r.Sign() != 0) {
		b.WriteByte('-')
	}
	b.WriteString(intStr)
	if fracStr != "" {
		b.WriteByte('.')
		b.WriteString(fracStr)
	}
	return b.String()
}

// IsZero reports whether d is the value zero.
func (d Decimal128) IsZero() bool { return d.Mag.Cmp(uint128.Zero) == 0 }

// Sign returns -1, 0, or 1.
func (d Decimal128) Sign() int {
	if d.IsZero() {
		return 0
	}
	if d.Negative {
		return -1
	}
	return 1
}

// Cmp returns -1, 0, or 1 comparing d to o.
func (d Decimal128) Cmp(o Decimal128) int { return d.big().Cmp(o.big()) }

// Add returns d + o, checked per spec §4.1.
func (d Decimal128) Add(o Decimal128) Result[Decimal128] {
	v, ok := fromBigMantissa(new(big.Int).Add(d.big(), o.big()))
	if !ok {
		return Overflow[Decimal128]()
	}
	return Ok(v)
}

// Sub returns d - o, checked.
func (d Decimal128) Sub(o Decimal128) Result[Decimal128] {
	v, ok := fromBigMantissa(new(big.Int).Sub(d.big(), o.big()))
	if !ok {
		return Overflow[Decimal128]()
	}
	return Ok(v)
}

// Neg returns -d, checked (fails only for the one unrepresentable case of
// negating MinDecimal128).
func (d Decimal128) Neg() Result[Decimal128] {
	v, ok := fromBigMantissa(new(big.Int).Neg(d.big()))
	if !ok {
		return Overflow[Decimal128]()
	}
	return Ok(v)
}

// Mul returns d * o. The mathematical product is computed exactly via
// math/big then rescaled by 10^18 with half-away-from-zero rounding,
// matching the effect of stripping common trailing-zero factors of 10
// before multiplying that the original Rust implementation performs at the
// word level (spec §4.1) -- math/big gives the same exact result without
// needing the word-level trick.
func (d Decimal128) Mul(o Decimal128) Result[Decimal128] {
	raw := new(big.Int).Mul(d.big(), o.big())
	scaled := divRoundHalfAwayFromZero(raw, bigScale)
	v, ok := fromBigMantissa(scaled)
	if !ok {
		return Overflow[Decimal128]()
	}
	return Ok(v)
}

// Div returns d / o, failing with DivisionByZero when o is zero and
// Overflow when the rescaled quotient does not fit. The dividend is
// pre-scaled by 10^18 before the division so the quotient carries full
// precision, mirroring the left-shift-the-dividend strategy of spec §4.1.
func (d Decimal128) Div(o Decimal128) Result[Decimal128] {
	if o.IsZero() {
		return DivByZero[Decimal128]()
	}
	dividend := new(big.Int).Mul(d.big(), bigScale)
	q := divRoundHalfAwayFromZero(dividend, o.big())
	v, ok := fromBigMantissa(q)
	if !ok {
		return Overflow[Decimal128]()
	}
	return Ok(v)
}

// Abs returns the absolute value, checked (MinDecimal128 has no positive
// counterpart in range).
func (d Decimal128) Abs() Result[Decimal128] {
	if !d.Negative {
		return Ok(d)
	}
	return d.Neg()
}

// Round rounds to the nearest integer, half away from zero, returning a
// Decimal128 whose fractional part is zero.
func (d Decimal128) Round() Result[Decimal128] { return d.roundTo(roundHalfAwayFromZero) }

// Floor rounds toward negative infinity.
func (d Decimal128) Floor() Result[Decimal128] { return d.roundTo(roundFloor) }

// Ceil rounds toward positive infinity.
func (d Decimal128) Ceil() Result[Decimal128] { return d.roundTo(roundCeil) }

type roundMode int

const (
	roundHalfAwayFromZero roundMode = iota
	roundFloor
	roundCeil
)

func (d Decimal128) roundTo(mode roundMode) Result[Decimal128] {
	m := d.big()
	q, r := new(big.Int).QuoRem(m, bigScale, new(big.Int))
	if r.Sign() != 0 {
		switch mode {
		case roundHalfAwayFromZero:
			twice := new(big.Int).Abs(new(big.Int).Mul(r, big.NewInt(2)))
			if twice.Cmp(bigScale) >= 0 {
				if m.Sign() < 0 {
					q.Sub(q, big.NewInt(1))
				} else {
					q.Add(q, big.NewInt(1))
				}
			}
		case roundFloor:
			if m.Sign() < 0 {
				q.Sub(q, big.NewInt(1))
			}
		case roundCeil:
			if m.Sign() > 0 {
				q.Add(q, big.NewInt(1))
			}
		}
	}
	mantissa := new(big.Int).Mul(q, bigScale)
	v, ok := fromBigMantissa(mantissa)
	if !ok {
		return Overflow[Decimal128]()
	}
	return Ok(v)
}

func divRoundHalfAwayFromZero(num, den *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	if r.Sign() == 0 {
		return q
	}
	twice := new(big.Int).Abs(new(big.Int).Mul(r, big.NewInt(2)))
	absDen := new(big.Int).Abs(den)
	if twice.Cmp(absDen) >= 0 {
		if (num.Sign() < 0) != (den.Sign() < 0) {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
	return q
}

// ToFloat64 converts to a double by stripping trailing zero factors of 10
// from the mantissa before dividing, as spec §4.1 prescribes, to avoid
// losing precision to a premature large-integer-to-float conversion.
func (d Decimal128) ToFloat64() float64 {
	m := d.big()
	scale := Scale
	for scale > 0 {
		q, r := new(big.Int).QuoRem(m, bigTen, new(big.Int))
		if r.Sign() != 0 {
			break
		}
		m = q
		scale--
	}
	mf := new(big.Float).SetInt(m)
	div := new(big.Float).SetInt(new(big.Int).Exp(bigTen, big.NewInt(int64(scale)), nil))
	f, _ := new(big.Float).Quo(mf, div).Float64()
	return f
}

// FromFloat64 constructs a Decimal128 from a double by multiplying by
// 10^18 and casting; NaN, +-Inf, and magnitudes outside the int128 range
// fail (spec §4.1).
func FromFloat64(f float64) Result[Decimal128] {
	if f != f || f > 1e30 || f < -1e30 { // NaN or clearly out of range
		return Domain[Decimal128]()
	}
	bf := new(big.Float).SetFloat64(f)
	bf.Mul(bf, new(big.Float).SetInt(bigScale))
	mantissa, _ := bf.Int(nil) // truncating cast, consistent with xsd:double -> xsd:decimal
	v, ok := fromBigMantissa(mantissa)
	if !ok {
		return Overflow[Decimal128]()
	}
	return Ok(v)
}
