// Package columnar implements the three RDF term encodings of spec §3.2
// (value, plain-term, object-id) plus the sortable byte-key transform of
// §3.2.4, each a dense tagged union over github.com/apache/arrow-go/v18
// child arrays -- the host columnar engine the spec treats as an external
// collaborator. The package authors only the SPARQL-specific layer: which
// field holds which RDF term shape, and how rows cross between encodings.
package columnar

// FieldID names one child array ("encoding field") of the dense union
// described by spec §3.2.1. Field order here is the type-id assigned to
// each variant; it must not be renumbered once data has been written to a
// store, since Dense union type ids are persisted in row groups (C4).
type FieldID int8

const (
	FieldNull FieldID = iota
	FieldNamedNode
	FieldBlankNode
	FieldString // simple or language-tagged literal
	FieldBoolean
	FieldInt
	FieldInteger
	FieldFloat
	FieldDouble
	FieldDecimal
	FieldDateTime
	FieldDate
	FieldTime
	FieldDuration
	FieldOtherLiteral
	numFields
)

func (f FieldID) String() string {
	switch f {
	case FieldNull:
		return "Null"
	case FieldNamedNode:
		return "NamedNode"
	case FieldBlankNode:
		return "BlankNode"
	case FieldString:
		return "String"
	case FieldBoolean:
		return "Boolean"
	case FieldInt:
		return "Int"
	case FieldInteger:
		return "Integer"
	case FieldFloat:
		return "Float"
	case FieldDouble:
		return "Double"
	case FieldDecimal:
		return "Decimal"
	case FieldDateTime:
		return "DateTime"
	case FieldDate:
		return "Date"
	case FieldTime:
		return "Time"
	case FieldDuration:
		return "Duration"
	case FieldOtherLiteral:
		return "OtherLiteral"
	default:
		return "Unknown"
	}
}

// XSD datatype IRIs recognized by the value encoding's literal classifier.
// Subtypes of xsd:integer (byte, short, nonNegativeInteger, ...) all land
// in FieldInteger; the narrower xsd.IntegerKind is recovered from the
// literal's datatype IRI at decode time, not stored separately, matching
// spec §3.2.1's field table (one column per *type id*, not per subtype).
const (
	xsdString   = "http://www.w3.org/2001/XMLSchema#string"
	xsdBoolean  = "http://www.w3.org/2001/XMLSchema#boolean"
	xsdInt      = "http://www.w3.org/2001/XMLSchema#int"
	xsdInteger  = "http://www.w3.org/2001/XMLSchema#integer"
	xsdFloat    = "http://www.w3.org/2001/XMLSchema#float"
	xsdDouble   = "http://www.w3.org/2001/XMLSchema#double"
	xsdDecimal  = "http://www.w3.org/2001/XMLSchema#decimal"
	xsdDateTime = "http://www.w3.org/2001/XMLSchema#dateTime"
	xsdDate     = "http://www.w3.org/2001/XMLSchema#date"
	xsdTime     = "http://www.w3.org/2001/XMLSchema#time"
	xsdDuration = "http://www.w3.org/2001/XMLSchema#duration"
	rdfLangStr  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"
)

// integerSubtypes lists every xsd:integer restriction recognized by the
// classifier; anything else with a numeric-looking but unrecognized
// datatype IRI falls through to FieldOtherLiteral.
var integerSubtypes = map[string]bool{
	xsdInteger: true,
	"http://www.w3.org/2001/XMLSchema#nonNegativeInteger": true,
	"http://www.w3.org/2001/XMLSchema#nonPositiveInteger": true,
	"http://www.w3.org/2001/XMLSchema#negativeInteger":    true,
	"http://www.w3.org/2001/XMLSchema#positiveInteger":    true,
	"http://www.w3.org/2001/XMLSchema#long":                true,
	"http://www.w3.org/2001/XMLSchema#short":               true,
	"http://www.w3.org/2001/XMLSchema#byte":                true,
	"http://www.w3.org/2001/XMLSchema#unsignedLong":        true,
	"http://www.w3.org/2001/XMLSchema#unsignedInt":         true,
	"http://www.w3.org/2001/XMLSchema#unsignedShort":       true,
	"http://www.w3.org/2001/XMLSchema#unsignedByte":        true,
}
