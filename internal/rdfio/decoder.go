package rdfio

import (
	"fmt"
	"io"
	"runtime"
)

// Format identifies a supported serialization at the Store ingress/egress
// boundary (spec §6).
type Format int

const (
	FormatNT Format = iota
	FormatNQ
)

// TripleDecoder parses N-Triples. The root package's NTriplesCodec uses
// this concrete type; other formats reach the Store façade through its
// RDFParser interface instead.
type TripleDecoder struct {
	l         *lexer
	tokens    [3]token
	peekCount int
}

// NewTripleDecoder returns a TripleDecoder reading N-Triples from r.
func NewTripleDecoder(r io.Reader) *TripleDecoder {
	return &TripleDecoder{l: newLexer(r)}
}

func (d *TripleDecoder) next() token {
	if d.peekCount > 0 {
		d.peekCount--
	} else {
		d.tokens[0] = d.l.nextToken()
	}
	return d.tokens[d.peekCount]
}

func (d *TripleDecoder) peek() token {
	if d.peekCount > 0 {
		return d.tokens[d.peekCount-1]
	}
	d.peekCount = 1
	d.tokens[0] = d.l.nextToken()
	return d.tokens[0]
}

func (d *TripleDecoder) recover(errp *error) {
	e := recover()
	if e == nil {
		return
	}
	if _, ok := e.(runtime.Error); ok {
		panic(e)
	}
	*errp = e.(error)
}

func (d *TripleDecoder) errorf(format string, args ...interface{}) {
	panic(fmt.Errorf(format, args...))
}

func (d *TripleDecoder) expect1As(context string, expected tokenType) token {
	t := d.next()
	if t.typ != expected {
		d.unexpected(t, context)
	}
	return t
}

func (d *TripleDecoder) expectAs(context string, expected ...tokenType) token {
	t := d.next()
	for _, e := range expected {
		if t.typ == e {
			return t
		}
	}
	d.unexpected(t, context)
	return t
}

func (d *TripleDecoder) unexpected(t token, context string) {
	if t.typ == tokenError {
		d.errorf("%d:%d: syntax error: %s", t.line, t.col, t.text)
	}
	d.errorf("%d:%d: unexpected %v as %s", t.line, t.col, t.typ, context)
}

// Decode returns the next triple, or io.EOF when the stream is exhausted.
func (d *TripleDecoder) Decode() (t Triple, err error) {
	defer d.recover(&err)
	return d.parseTriple(d.expectSPO)
}

// DecodeAll decodes and returns every remaining triple.
func (d *TripleDecoder) DecodeAll() ([]Triple, error) {
	var ts []Triple
	for {
		t, err := d.Decode()
		if err == io.EOF {
			return ts, nil
		}
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
}

func (d *TripleDecoder) expectSPO() (Term, Term, Term, bool) {
	for d.peek().typ == tokenEOL {
		d.next()
	}
	if d.peek().typ == tokenEOF {
		return Term{}, Term{}, Term{}, false
	}
	s := d.parseSubjectOrObject("subject", false)
	p := d.parsePredicate()
	o := d.parseSubjectOrObject("object", true)
	return s, p, o, true
}

func (d *TripleDecoder) parseTriple(readSPO func() (Term, Term, Term, bool)) (Triple, error) {
	s, p, o, ok := readSPO()
	if !ok {
		return Triple{}, io.EOF
	}
	d.expect1As("dot (.)", tokenDot)
	d.drainEOL()
	return Triple{Subj: s, Pred: p, Obj: o}, nil
}

func (d *TripleDecoder) drainEOL() {
	d.expect1As("end of statement", tokenEOL)
	if d.peek().typ == tokenEOF {
		d.next()
	}
}

func (d *TripleDecoder) parsePredicate() Term {
	tok := d.expect1As("predicate", tokenIRIAbs)
	return Term{Kind: TermIRI, Value: tok.text}
}

func (d *TripleDecoder) parseSubjectOrObject(context string, allowLiteral bool) Term {
	var tok token
	if allowLiteral {
		tok = d.expectAs(context, tokenIRIAbs, tokenBNode, tokenLiteral)
	} else {
		tok = d.expectAs(context, tokenIRIAbs, tokenBNode)
	}
	switch tok.typ {
	case tokenIRIAbs:
		return Term{Kind: TermIRI, Value: tok.text}
	case tokenBNode:
		return Term{Kind: TermBlank, Value: tok.text}
	case tokenLiteral:
		return d.parseLiteral(tok.text)
	}
	return Term{}
}

func (d *TripleDecoder) parseLiteral(value string) Term {
	l := Term{Kind: TermLiteral, Value: value, Datatype: xsdString}
	switch d.peek().typ {
	case tokenLangMarker:
		d.next()
		tok := d.expect1As("literal language tag", tokenLang)
		l.Lang = tok.text
		l.Datatype = rdfLangString
	case tokenDataTypeMarker:
		d.next()
		tok := d.expect1As("literal datatype", tokenIRIAbs)
		l.Datatype = tok.text
	}
	return l
}

// QuadDecoder parses N-Quads.
type QuadDecoder struct {
	td *TripleDecoder
}

// NewQuadDecoder returns a QuadDecoder reading N-Quads from r.
func NewQuadDecoder(r io.Reader) *QuadDecoder {
	return &QuadDecoder{td: &TripleDecoder{l: newLexer(r)}}
}

// Decode returns the next quad, or io.EOF when the stream is exhausted.
func (d *QuadDecoder) Decode() (q Quad, err error) {
	defer d.td.recover(&err)
	for d.td.peek().typ == tokenEOL {
		d.td.next()
	}
	if d.td.peek().typ == tokenEOF {
		return Quad{}, io.EOF
	}
	s := d.td.parseSubjectOrObject("subject", false)
	p := d.td.parsePredicate()
	o := d.td.parseSubjectOrObject("object", true)

	var g Term
	tok := d.td.peek()
	if tok.typ == tokenIRIAbs || tok.typ == tokenBNode {
		d.td.next()
		if tok.typ == tokenIRIAbs {
			g = Term{Kind: TermIRI, Value: tok.text}
		} else {
			g = Term{Kind: TermBlank, Value: tok.text}
		}
	}
	d.td.expect1As("dot (.)", tokenDot)
	d.td.drainEOL()
	return Quad{Graph: g, Triple: Triple{Subj: s, Pred: p, Obj: o}}, nil
}

// DecodeAll decodes and returns every remaining quad.
func (d *QuadDecoder) DecodeAll() ([]Quad, error) {
	var qs []Quad
	for {
		q, err := d.Decode()
		if err == io.EOF {
			return qs, nil
		}
		if err != nil {
			return nil, err
		}
		qs = append(qs, q)
	}
}
