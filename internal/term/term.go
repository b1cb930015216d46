// Package term is the engine-facing RDF term model (spec §3.1): the sum
// type closed over named nodes, blank nodes and literals, each carrying
// enough information to round-trip through every columnar encoding in
// internal/columnar. It is distinct from internal/rdfio.Term, which is the
// untyped wire-level tuple a parser produces -- Compile below is the
// boundary between the two.
package term

import (
	"fmt"

	"github.com/graphfusion/graphfusion-go/internal/rdfio"
	"github.com/graphfusion/graphfusion-go/internal/xsd"
)

// Kind discriminates the three closed RDF term variants (spec §3.1); C2's
// OtherLiteral field and the object-id encoding both dispatch on Kind
// before looking at the payload.
type Kind uint8

const (
	KindNamedNode Kind = iota
	KindBlankNode
	KindLiteral
)

// NamedNode is an IRI-identified resource. Validity (spec §3.1: "a
// non-empty string conforming to IRI syntax") is checked by NewNamedNode, not by
// the zero value, so a NamedNode obtained by decoding storage never needs
// re-validation.
type NamedNode struct{ IRI string }

// BlankNode is an opaque identifier; equality is identity of the label
// within one store (spec §3.1).
type BlankNode struct{ ID string }

// Literal is (lexical value, datatype IRI, optional language tag).
type Literal struct {
	Lexical  string
	Datatype string // IRI string; rdf:langString if Language != ""
	Language string // non-empty iff Datatype == rdf:langString
}

const (
	XSDString     = "http://www.w3.org/2001/XMLSchema#string"
	RDFLangString = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"
)

// Term is the closed sum of the three RDF term kinds.
type Term struct {
	Kind    Kind
	Named   NamedNode
	Blank   BlankNode
	Literal Literal
}

// NewNamedNode validates and constructs an IRI term.
func NewNamedNode(iri string) (Term, error) {
	if iri == "" {
		return Term{}, fmt.Errorf("term: IRI must not be empty")
	}
	for _, r := range iri {
		switch r {
		case ' ', '<', '>', '"', '{', '}', '|', '^', '\\', '`':
			return Term{}, fmt.Errorf("term: IRI %q contains an illegal character", iri)
		}
	}
	return Term{Kind: KindNamedNode, Named: NamedNode{IRI: iri}}, nil
}

// NewBlankNode constructs a blank node term with the given label.
func NewBlankNode(id string) Term {
	return Term{Kind: KindBlankNode, Blank: BlankNode{ID: id}}
}

// NewLangLiteral constructs a language-tagged literal. lang must be
// non-empty (spec §3.1 invariant: language tag non-empty iff datatype is
// rdf:langString).
func NewLangLiteral(lexical, lang string) Term {
	return Term{Kind: KindLiteral, Literal: Literal{Lexical: lexical, Datatype: RDFLangString, Language: lang}}
}

// NewTypedLiteral constructs a literal with an explicit datatype IRI and no
// language tag.
func NewTypedLiteral(lexical, datatype string) Term {
	if datatype == "" {
		datatype = XSDString
	}
	return Term{Kind: KindLiteral, Literal: Literal{Lexical: lexical, Datatype: datatype}}
}

// NewSimpleLiteral constructs an xsd:string literal.
func NewSimpleLiteral(lexical string) Term { return NewTypedLiteral(lexical, XSDString) }

// Eq is RDF term equality: same kind, same lexical representation (spec
// §8 invariant 1 relies on this, not typed-value equality).
func (t Term) Eq(o Term) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindNamedNode:
		return t.Named.IRI == o.Named.IRI
	case KindBlankNode:
		return t.Blank.ID == o.Blank.ID
	case KindLiteral:
		return t.Literal.Lexical == o.Literal.Lexical &&
			t.Literal.Datatype == o.Literal.Datatype &&
			t.Literal.Language == o.Literal.Language
	default:
		return false
	}
}

// String renders a SPARQL-ready textual form.
func (t Term) String() string {
	switch t.Kind {
	case KindNamedNode:
		return "<" + t.Named.IRI + ">"
	case KindBlankNode:
		return "_:" + t.Blank.ID
	case KindLiteral:
		if t.Literal.Language != "" {
			return fmt.Sprintf("%q@%s", t.Literal.Lexical, t.Literal.Language)
		}
		if t.Literal.Datatype != "" && t.Literal.Datatype != XSDString {
			return fmt.Sprintf("%q^^<%s>", t.Literal.Lexical, t.Literal.Datatype)
		}
		return fmt.Sprintf("%q", t.Literal.Lexical)
	default:
		return ""
	}
}

// FromWire converts an ingress-layer rdfio.Term into the engine's Term.
func FromWire(w rdfio.Term) Term {
	switch w.Kind {
	case rdfio.TermIRI:
		return Term{Kind: KindNamedNode, Named: NamedNode{IRI: w.Value}}
	case rdfio.TermBlank:
		return Term{Kind: KindBlankNode, Blank: BlankNode{ID: w.Value}}
	case rdfio.TermLiteral:
		return Term{Kind: KindLiteral, Literal: Literal{Lexical: w.Value, Datatype: w.Datatype, Language: w.Lang}}
	default:
		return Term{}
	}
}

// ToWire converts back to the ingress-layer representation, used by
// Store.DumpToWriter.
func (t Term) ToWire() rdfio.Term {
	switch t.Kind {
	case KindNamedNode:
		return rdfio.Term{Kind: rdfio.TermIRI, Value: t.Named.IRI}
	case KindBlankNode:
		return rdfio.Term{Kind: rdfio.TermBlank, Value: t.Blank.ID}
	case KindLiteral:
		return rdfio.Term{Kind: rdfio.TermLiteral, Value: t.Literal.Lexical, Lang: t.Literal.Language, Datatype: t.Literal.Datatype}
	default:
		return rdfio.Term{}
	}
}

// IsNumeric reports whether the literal's datatype is one xsd numeric
// function dispatch accepts (spec §4.3 isNumeric).
func (t Term) IsNumeric() bool {
	if t.Kind != KindLiteral {
		return false
	}
	_, ok := NumericPromotionRank[t.Literal.Datatype]
	return ok
}

// NumericPromotionRank implements the int -> integer -> decimal -> float
// -> double promotion lattice of spec §4.3: lower ranks are promoted to
// higher ones before a binary numeric operator is applied.
var NumericPromotionRank = map[string]int{
	"http://www.w3.org/2001/XMLSchema#byte":               0,
	"http://www.w3.org/2001/XMLSchema#short":               0,
	"http://www.w3.org/2001/XMLSchema#int":                 0,
	"http://www.w3.org/2001/XMLSchema#long":                 0,
	"http://www.w3.org/2001/XMLSchema#unsignedByte":         0,
	"http://www.w3.org/2001/XMLSchema#unsignedShort":        0,
	"http://www.w3.org/2001/XMLSchema#unsignedInt":          0,
	"http://www.w3.org/2001/XMLSchema#unsignedLong":         0,
	"http://www.w3.org/2001/XMLSchema#nonNegativeInteger":   0,
	"http://www.w3.org/2001/XMLSchema#positiveInteger":      0,
	"http://www.w3.org/2001/XMLSchema#nonPositiveInteger":   0,
	"http://www.w3.org/2001/XMLSchema#negativeInteger":      0,
	"http://www.w3.org/2001/XMLSchema#integer":              1,
	"http://www.w3.org/2001/XMLSchema#decimal":              2,
	"http://www.w3.org/2001/XMLSchema#float":                3,
	"http://www.w3.org/2001/XMLSchema#double":               4,
}

// TypedValue is the value-space interpretation of a Literal (spec §3.1);
// exactly one field is meaningful, selected by the literal's datatype.
type TypedValue struct {
	Integer  xsd.Integer
	Decimal  xsd.Decimal128
	Float32  float32
	Float64  float64
	Boolean  bool
	DateTime xsd.DateTime
	Duration xsd.Duration
	String   string
}
