package functions

import (
	"bytes"
	"strings"

	"github.com/graphfusion/graphfusion-go/internal/columnar"
	"github.com/graphfusion/graphfusion-go/internal/term"
	"github.com/graphfusion/graphfusion-go/internal/xsd"
)

// Accumulator folds one group's worth of rows into a single SPARQL
// aggregate result (spec §4.3's aggregate list). Each constructor below
// returns a fresh Accumulator for one GROUP BY partition.
type Accumulator interface {
	Add(t term.Term, bound bool)
	Result() term.Term
}

// distinctFilter wraps an Accumulator so repeated values within a
// partition are only folded in once (COUNT(DISTINCT ...) and friends).
type distinctFilter struct {
	inner Accumulator
	seen  map[string]bool
}

func Distinct(inner Accumulator) Accumulator {
	return &distinctFilter{inner: inner, seen: make(map[string]bool)}
}

func (d *distinctFilter) Add(t term.Term, bound bool) {
	if !bound {
		return
	}
	key := t.String()
	if d.seen[key] {
		return
	}
	d.seen[key] = true
	d.inner.Add(t, bound)
}

func (d *distinctFilter) Result() term.Term { return d.inner.Result() }

// countAcc implements COUNT(?x) / COUNT(*).
type countAcc struct {
	star bool
	n    int64
}

func NewCount(star bool) Accumulator { return &countAcc{star: star} }

func (c *countAcc) Add(t term.Term, bound bool) {
	if c.star || bound {
		c.n++
	}
}

func (c *countAcc) Result() term.Term {
	return term.NewTypedLiteral(itoa64(c.n), "http://www.w3.org/2001/XMLSchema#integer")
}

// sumAcc implements SUM; non-numeric rows are skipped (treated as 0) per
// common SPARQL engine practice for malformed aggregate input.
type sumAcc struct {
	total    xsd.Decimal128
	datatype string
	any      bool
}

func NewSum() Accumulator { return &sumAcc{datatype: "http://www.w3.org/2001/XMLSchema#integer"} }

func (s *sumAcc) Add(t term.Term, bound bool) {
	if !bound || !t.IsNumeric() {
		return
	}
	d, ok := literalAsDecimal(t.Literal)
	if !ok {
		return
	}
	s.any = true
	if dt, ok := promotedDatatype(term.Literal{Datatype: s.datatype}, t.Literal); ok {
		s.datatype = dt
	}
	if r := s.total.Add(d); r.IsOK() {
		s.total = r.Value
	}
}

func (s *sumAcc) Result() term.Term { return decimalAsLiteral(s.total, s.datatype) }

// avgAcc implements AVG, returning a decimal accumulator result, or a
// float/double one when the inputs' numeric promotion reaches that type
// (spec §4.3).
type avgAcc struct {
	sum      xsd.Decimal128
	count    int64
	datatype string
}

func NewAvg() Accumulator { return &avgAcc{datatype: "http://www.w3.org/2001/XMLSchema#decimal"} }

func (a *avgAcc) Add(t term.Term, bound bool) {
	if !bound || !t.IsNumeric() {
		return
	}
	d, ok := literalAsDecimal(t.Literal)
	if !ok {
		return
	}
	a.count++
	if dt, ok := promotedDatatype(term.Literal{Datatype: a.datatype}, t.Literal); ok {
		a.datatype = dt
	}
	if r := a.sum.Add(d); r.IsOK() {
		a.sum = r.Value
	}
}

func (a *avgAcc) Result() term.Term {
	if a.count == 0 {
		return decimalAsLiteral(xsd.Zero, a.datatype)
	}
	r := a.sum.Div(xsd.FromInt64(a.count))
	if !r.IsOK() {
		return decimalAsLiteral(xsd.Zero, a.datatype)
	}
	return decimalAsLiteral(r.Value, a.datatype)
}

// minMaxAcc implements MIN and MAX using the sortable encoding's byte
// order, so the comparison agrees with ORDER BY (spec §4.3, §3.2.4).
type minMaxAcc struct {
	wantMax bool
	have    bool
	best    term.Term
}

func NewMin() Accumulator { return &minMaxAcc{} }
func NewMax() Accumulator { return &minMaxAcc{wantMax: true} }

func (m *minMaxAcc) Add(t term.Term, bound bool) {
	if !bound {
		return
	}
	if !m.have {
		m.best, m.have = t, true
		return
	}
	cmp := CompareSortKeys(t, m.best)
	if (m.wantMax && cmp > 0) || (!m.wantMax && cmp < 0) {
		m.best = t
	}
}

func (m *minMaxAcc) Result() term.Term { return m.best }

// CompareSortKeys orders a and b by the columnar sortable encoding (spec
// §3.2.4): unbound < blank node < IRI < literal, agreeing with both MIN/MAX
// (above) and the executor's ORDER BY (internal/engine/exec.evalOrderBy).
func CompareSortKeys(a, b term.Term) int {
	return bytes.Compare(columnar.SortKey(a), columnar.SortKey(b))
}

// sampleAcc implements SAMPLE: any one bound value, deterministically the
// first seen (spec §4.3 "picks any one value deterministically").
type sampleAcc struct {
	have bool
	v    term.Term
}

func NewSample() Accumulator { return &sampleAcc{} }

func (s *sampleAcc) Add(t term.Term, bound bool) {
	if bound && !s.have {
		s.v, s.have = t, true
	}
}

func (s *sampleAcc) Result() term.Term { return s.v }

// groupConcatAcc implements GROUP_CONCAT with an optional separator
// (default " ", spec §4.3).
type groupConcatAcc struct {
	sep   string
	parts []string
}

func NewGroupConcat(sep string, hasSep bool) Accumulator {
	if !hasSep {
		sep = " "
	}
	return &groupConcatAcc{sep: sep}
}

func (g *groupConcatAcc) Add(t term.Term, bound bool) {
	if !bound {
		return
	}
	if s, ok := literalString(t); ok {
		g.parts = append(g.parts, s)
	} else if t.Kind == term.KindNamedNode {
		g.parts = append(g.parts, t.Named.IRI)
	}
}

func (g *groupConcatAcc) Result() term.Term {
	return term.NewSimpleLiteral(strings.Join(g.parts, g.sep))
}

func itoa64(n int64) string {
	return itoa(int(n))
}
