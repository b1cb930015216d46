package columnar

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/graphfusion/graphfusion-go/internal/term"
	"github.com/graphfusion/graphfusion-go/internal/xsd"
)

// Array is a finalized term array: a per-row (type id, child offset) pair
// plus one arrow.Array per FieldID, exactly the dense-union shape of spec
// §3.2. Array is read-only; building one more rows requires a fresh
// Builder.
type Array struct {
	mode    Mode
	typeIDs []int8
	offsets []int32

	namedNode   *array.String
	blankNode   *array.String
	stringValue *array.String
	stringLang  *array.String
	boolean     *array.Boolean
	intV        *array.Int32
	integer     *array.Int64
	float32V    *array.Float32
	float64V    *array.Float64
	decimal     *array.FixedSizeBinary
	dtSeconds   *array.FixedSizeBinary
	dtOffset    *array.Int16
	dateSeconds *array.FixedSizeBinary
	dateOffset  *array.Int16
	timeSeconds *array.FixedSizeBinary
	timeOffset  *array.Int16
	durMonths   *array.Int64
	durHasMonth *array.Boolean
	durSeconds  *array.FixedSizeBinary
	durHasSecs  *array.Boolean
	otherValue  *array.String
	otherDT     *array.String
}

// Finalize completes every child builder and returns the resulting Array.
// The Builder must not be reused afterward (matches arrow-go's builder
// contract: NewArray resets internal state).
func (b *Builder) Finalize() *Array {
	return &Array{
		mode:        b.mode,
		typeIDs:     b.typeIDs,
		offsets:     b.offsets,
		namedNode:   b.namedNode.NewStringArray(),
		blankNode:   b.blankNode.NewStringArray(),
		stringValue: b.stringValue.NewStringArray(),
		stringLang:  b.stringLang.NewStringArray(),
		boolean:     b.boolean.NewBooleanArray(),
		intV:        b.intV.NewInt32Array(),
		integer:     b.integer.NewInt64Array(),
		float32V:    b.float32V.NewFloat32Array(),
		float64V:    b.float64V.NewFloat64Array(),
		decimal:     b.decimal.NewFixedSizeBinaryArray(),
		dtSeconds:   b.dtSeconds.NewFixedSizeBinaryArray(),
		dtOffset:    b.dtOffset.NewInt16Array(),
		dateSeconds: b.dateSeconds.NewFixedSizeBinaryArray(),
		dateOffset:  b.dateOffset.NewInt16Array(),
		timeSeconds: b.timeSeconds.NewFixedSizeBinaryArray(),
		timeOffset:  b.timeOffset.NewInt16Array(),
		durMonths:   b.durMonths.NewInt64Array(),
		durHasMonth: b.durHasMonths.NewBooleanArray(),
		durSeconds:  b.durSeconds.NewFixedSizeBinaryArray(),
		durHasSecs:  b.durHasSecs.NewBooleanArray(),
		otherValue:  b.otherValue.NewStringArray(),
		otherDT:     b.otherDT.NewStringArray(),
	}
}

// Len reports the number of rows in the array.
func (a *Array) Len() int { return len(a.typeIDs) }

// Field reports the encoding field occupied by row i.
func (a *Array) Field(i int) FieldID { return FieldID(a.typeIDs[i]) }

// ExpectedError is returned by Decode-family helpers when a row's field
// does not match the variant the caller asked for; spec §4.2 treats this
// as ordinary dispatch control flow, not a user-facing error.
type ExpectedError struct {
	Want, Got FieldID
}

func (e *ExpectedError) Error() string {
	return fmt.Sprintf("columnar: row is %s, not %s", e.Got, e.Want)
}

func decimalBytesAt(a *array.FixedSizeBinary, off int32) xsd.Decimal128 {
	var buf [16]byte
	copy(buf[:], a.Value(int(off)))
	return xsd.DecimalFromBytes(buf)
}

func dtAt(secs *array.FixedSizeBinary, offsetCol *array.Int16, off int32) xsd.DateTime {
	d := xsd.DateTime{Seconds: decimalBytesAt(secs, off)}
	if offsetCol.IsValid(int(off)) {
		d.HasOffset = true
		d.OffsetMin = offsetCol.Value(int(off))
	}
	return d
}

// Decode reconstructs the RDF term at row i. Decode never fails: every
// type id the builder can produce has a corresponding reconstruction, per
// the round-trip contract of spec §4.2.
func (a *Array) Decode(i int) term.Term {
	f := a.Field(i)
	off := a.offsets[i]
	switch f {
	case FieldNull:
		return term.Term{}
	case FieldNamedNode:
		return term.Term{Kind: term.KindNamedNode, Named: term.NamedNode{IRI: a.namedNode.Value(int(off))}}
	case FieldBlankNode:
		return term.Term{Kind: term.KindBlankNode, Blank: term.BlankNode{ID: a.blankNode.Value(int(off))}}
	case FieldString:
		lit := term.Literal{Lexical: a.stringValue.Value(int(off)), Datatype: term.XSDString}
		if a.stringLang.IsValid(int(off)) {
			lang := a.stringLang.Value(int(off))
			if lang != "" {
				lit.Datatype = term.RDFLangString
				lit.Language = lang
			}
		}
		return term.Term{Kind: term.KindLiteral, Literal: lit}
	case FieldBoolean:
		return literalOf(xsd.FormatBoolean(a.boolean.Value(int(off))), xsdBoolean)
	case FieldInt:
		return literalOf(fmt.Sprintf("%d", a.intV.Value(int(off))), xsdInt)
	case FieldInteger:
		return literalOf(fmt.Sprintf("%d", a.integer.Value(int(off))), xsdInteger)
	case FieldFloat:
		return literalOf(xsd.FormatFloat(float64(a.float32V.Value(int(off))), 32), xsdFloat)
	case FieldDouble:
		return literalOf(xsd.FormatFloat(a.float64V.Value(int(off)), 64), xsdDouble)
	case FieldDecimal:
		return literalOf(decimalBytesAt(a.decimal, off).String(), xsdDecimal)
	case FieldDateTime:
		return literalOf(dtAt(a.dtSeconds, a.dtOffset, off).String(), xsdDateTime)
	case FieldDate:
		return literalOf(dtAt(a.dateSeconds, a.dateOffset, off).String(), xsdDate)
	case FieldTime:
		return literalOf(dtAt(a.timeSeconds, a.timeOffset, off).String(), xsdTime)
	case FieldDuration:
		return literalOf(durationStringAt(a, off), xsdDuration)
	case FieldOtherLiteral:
		return term.Term{Kind: term.KindLiteral, Literal: term.Literal{
			Lexical:  a.otherValue.Value(int(off)),
			Datatype: a.otherDT.Value(int(off)),
		}}
	default:
		return term.Term{}
	}
}

func literalOf(lexical, datatype string) term.Term {
	return term.Term{Kind: term.KindLiteral, Literal: term.Literal{Lexical: lexical, Datatype: datatype}}
}

func durationStringAt(a *Array, off int32) string {
	d := xsd.Duration{}
	if a.durHasMonth.Value(int(off)) {
		d.HasMonths = true
		d.Months = a.durMonths.Value(int(off))
	}
	if a.durHasSecs.Value(int(off)) {
		d.HasSeconds = true
		d.Seconds = decimalBytesAt(a.durSeconds, off)
	}
	return formatDuration(d)
}

func formatDuration(d xsd.Duration) string {
	sign := ""
	months, secs := d.Months, d.Seconds
	if (d.HasMonths && months < 0) || (d.HasSeconds && secs.Sign() < 0) {
		sign = "-"
		months = -months
		if neg := secs.Neg(); neg.IsOK() {
			secs = neg.Value
		}
	}
	out := sign + "P"
	if d.HasMonths {
		years, rem := months/12, months%12
		if years != 0 {
			out += fmt.Sprintf("%dY", years)
		}
		if rem != 0 || years == 0 {
			out += fmt.Sprintf("%dM", rem)
		}
	}
	if d.HasSeconds {
		out += fmt.Sprintf("T%sS", secs.String())
	} else if !d.HasMonths {
		out += "T0S"
	}
	return out
}
