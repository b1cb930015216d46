package columnar

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/graphfusion/graphfusion-go/internal/term"
	"github.com/graphfusion/graphfusion-go/internal/xsd"
)

// Mode selects how literals are classified while appending (spec §3.2.2):
// ModeValue parses recognized XSD datatypes into their typed field,
// ModePlain routes every non-string literal straight to OtherLiteral
// regardless of whether it would parse.
type Mode int

const (
	ModeValue Mode = iota
	ModePlain
)

// Builder accumulates term arrays one row at a time, mirroring spec
// §4.2's "append-by-term, append-by-null, finalize" builder contract. One
// Builder produces one dense union: a type-id per row plus one child
// array builder per FieldID, each backed by an arrow-go array.Builder so
// the finished columns are real host-engine arrow.Array values.
type Builder struct {
	mem  memory.Allocator
	mode Mode

	typeIDs []int8
	offsets []int32

	namedNode    *array.StringBuilder
	blankNode    *array.StringBuilder
	stringValue  *array.StringBuilder
	stringLang   *array.StringBuilder
	boolean      *array.BooleanBuilder
	intV         *array.Int32Builder
	integer      *array.Int64Builder
	float32V     *array.Float32Builder
	float64V     *array.Float64Builder
	decimal      *array.FixedSizeBinaryBuilder
	dtSeconds    *array.FixedSizeBinaryBuilder
	dtOffset     *array.Int16Builder
	dateSeconds  *array.FixedSizeBinaryBuilder
	dateOffset   *array.Int16Builder
	timeSeconds  *array.FixedSizeBinaryBuilder
	timeOffset   *array.Int16Builder
	durMonths    *array.Int64Builder
	durHasMonths *array.BooleanBuilder
	durSeconds   *array.FixedSizeBinaryBuilder
	durHasSecs   *array.BooleanBuilder
	otherValue   *array.StringBuilder
	otherDT      *array.StringBuilder

	rowCount int
}

var decimalType = &arrow.FixedSizeBinaryType{ByteWidth: 16}

// NewBuilder allocates a Builder using mem for every child array (pass
// memory.NewGoAllocator() outside of tests that need a pooled allocator).
func NewBuilder(mem memory.Allocator, mode Mode) *Builder {
	fsb := func() *array.FixedSizeBinaryBuilder {
		return array.NewFixedSizeBinaryBuilder(mem, decimalType)
	}
	return &Builder{
		mem:          mem,
		mode:         mode,
		namedNode:    array.NewStringBuilder(mem),
		blankNode:    array.NewStringBuilder(mem),
		stringValue:  array.NewStringBuilder(mem),
		stringLang:   array.NewStringBuilder(mem),
		boolean:      array.NewBooleanBuilder(mem),
		intV:         array.NewInt32Builder(mem),
		integer:      array.NewInt64Builder(mem),
		float32V:     array.NewFloat32Builder(mem),
		float64V:     array.NewFloat64Builder(mem),
		decimal:      fsb(),
		dtSeconds:    fsb(),
		dtOffset:     array.NewInt16Builder(mem),
		dateSeconds:  fsb(),
		dateOffset:   array.NewInt16Builder(mem),
		timeSeconds:  fsb(),
		timeOffset:   array.NewInt16Builder(mem),
		durMonths:    array.NewInt64Builder(mem),
		durHasMonths: array.NewBooleanBuilder(mem),
		durSeconds:   fsb(),
		durHasSecs:   array.NewBooleanBuilder(mem),
		otherValue:   array.NewStringBuilder(mem),
		otherDT:      array.NewStringBuilder(mem),
	}
}

// AppendNull appends a Null-field row (spec §3.2.1 Null field is empty).
func (b *Builder) AppendNull() {
	b.typeIDs = append(b.typeIDs, int8(FieldNull))
	b.offsets = append(b.offsets, 0)
	b.rowCount++
}

// AppendTerm classifies t and appends it to the matching child builder,
// per the field table of spec §3.2.1 (value encoding) or §3.2.2 (plain,
// when the Builder was constructed with ModePlain).
func (b *Builder) AppendTerm(t term.Term) {
	switch t.Kind {
	case term.KindNamedNode:
		b.appendRow(FieldNamedNode, int32(b.namedNode.Len()))
		b.namedNode.Append(t.Named.IRI)
	case term.KindBlankNode:
		b.appendRow(FieldBlankNode, int32(b.blankNode.Len()))
		b.blankNode.Append(t.Blank.ID)
	case term.KindLiteral:
		b.appendLiteral(t.Literal)
	default:
		b.AppendNull()
	}
}

func (b *Builder) appendRow(f FieldID, off int32) {
	b.typeIDs = append(b.typeIDs, int8(f))
	b.offsets = append(b.offsets, off)
	b.rowCount++
}

func (b *Builder) appendLiteral(lit term.Literal) {
	if lit.Datatype == rdfLangStr || lit.Datatype == xsdString || lit.Datatype == "" {
		b.appendRow(FieldString, int32(b.stringValue.Len()))
		b.stringValue.Append(lit.Lexical)
		if lit.Language != "" {
			b.stringLang.Append(lit.Language)
		} else {
			b.stringLang.AppendNull()
		}
		return
	}
	if b.mode == ModePlain {
		b.appendOther(lit)
		return
	}
	switch {
	case lit.Datatype == xsdBoolean:
		r := xsd.ParseBoolean(lit.Lexical)
		if !r.IsOK() {
			b.appendOther(lit)
			return
		}
		b.appendRow(FieldBoolean, int32(b.boolean.Len()))
		b.boolean.Append(r.Value)
	case lit.Datatype == xsdInt:
		v, ok := xsd.Integer{Kind: xsd.KindInt}, false
		r := xsd.ParseIntLexical(lit.Lexical, xsd.KindInt)
		if r.IsOK() {
			v, ok = r.Value, true
		}
		if !ok {
			b.appendOther(lit)
			return
		}
		b.appendRow(FieldInt, int32(b.intV.Len()))
		b.intV.Append(int32(v.Value))
	case integerSubtypes[lit.Datatype]:
		kind := xsd.IntegerKindFromIRI(lit.Datatype)
		r := xsd.ParseIntLexical(lit.Lexical, kind)
		if !r.IsOK() {
			b.appendOther(lit)
			return
		}
		b.appendRow(FieldInteger, int32(b.integer.Len()))
		b.integer.Append(r.Value.Value)
	case lit.Datatype == xsdFloat:
		f, ok := xsd.ParseFloat32(lit.Lexical).Get()
		if !ok {
			b.appendOther(lit)
			return
		}
		b.appendRow(FieldFloat, int32(b.float32V.Len()))
		b.float32V.Append(f)
	case lit.Datatype == xsdDouble:
		f, ok := xsd.ParseFloat64(lit.Lexical).Get()
		if !ok {
			b.appendOther(lit)
			return
		}
		b.appendRow(FieldDouble, int32(b.float64V.Len()))
		b.float64V.Append(f)
	case lit.Datatype == xsdDecimal:
		r := xsd.ParseDecimal(lit.Lexical)
		if !r.IsOK() {
			b.appendOther(lit)
			return
		}
		b.appendRow(FieldDecimal, int32(b.decimal.Len()))
		b.decimal.Append(decimalToBytes(r.Value))
	case lit.Datatype == xsdDateTime:
		r := xsd.ParseDateTime(lit.Lexical)
		if !r.IsOK() {
			b.appendOther(lit)
			return
		}
		b.appendRow(FieldDateTime, int32(b.dtSeconds.Len()))
		b.dtSeconds.Append(decimalToBytes(r.Value.Seconds))
		if r.Value.HasOffset {
			b.dtOffset.Append(r.Value.OffsetMin)
		} else {
			b.dtOffset.AppendNull()
		}
	case lit.Datatype == xsdDate:
		r := xsd.ParseDate(lit.Lexical)
		if !r.IsOK() {
			b.appendOther(lit)
			return
		}
		b.appendRow(FieldDate, int32(b.dateSeconds.Len()))
		b.dateSeconds.Append(decimalToBytes(r.Value.Seconds))
		if r.Value.HasOffset {
			b.dateOffset.Append(r.Value.OffsetMin)
		} else {
			b.dateOffset.AppendNull()
		}
	case lit.Datatype == xsdTime:
		r := xsd.ParseTime(lit.Lexical)
		if !r.IsOK() {
			b.appendOther(lit)
			return
		}
		b.appendRow(FieldTime, int32(b.timeSeconds.Len()))
		b.timeSeconds.Append(decimalToBytes(r.Value.Seconds))
		if r.Value.HasOffset {
			b.timeOffset.Append(r.Value.OffsetMin)
		} else {
			b.timeOffset.AppendNull()
		}
	case lit.Datatype == xsdDuration:
		r := xsd.ParseDuration(lit.Lexical, false, false)
		if !r.IsOK() {
			b.appendOther(lit)
			return
		}
		b.appendRow(FieldDuration, int32(b.durMonths.Len()))
		if r.Value.HasMonths {
			b.durMonths.Append(r.Value.Months)
			b.durHasMonths.Append(true)
		} else {
			b.durMonths.AppendNull()
			b.durHasMonths.Append(false)
		}
		if r.Value.HasSeconds {
			b.durSeconds.Append(decimalToBytes(r.Value.Seconds))
			b.durHasSecs.Append(true)
		} else {
			b.durSeconds.AppendNull()
			b.durHasSecs.Append(false)
		}
	default:
		b.appendOther(lit)
	}
}

func (b *Builder) appendOther(lit term.Literal) {
	b.appendRow(FieldOtherLiteral, int32(b.otherValue.Len()))
	b.otherValue.Append(lit.Lexical)
	b.otherDT.Append(lit.Datatype)
}

// Len reports the number of rows appended so far.
func (b *Builder) Len() int { return b.rowCount }

func decimalToBytes(d xsd.Decimal128) []byte {
	bs := d.Bytes()
	return bs[:]
}
