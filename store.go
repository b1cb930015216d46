// Package graphfusion is the C7 query API: a thin Store façade over the
// MVCC quad index (internal/store), the SPARQL rewriter (internal/sparql)
// and optimizer (internal/engine/optimize), and the tree-walking executor
// (internal/engine/exec). It ingests quads, executes already-parsed SPARQL
// algebra, and streams results back as solutions, a boolean, or triples
// (spec §6).
package graphfusion

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"github.com/graphfusion/graphfusion-go/internal/columnar"
	"github.com/graphfusion/graphfusion-go/internal/engine/exec"
	"github.com/graphfusion/graphfusion-go/internal/engine/optimize"
	"github.com/graphfusion/graphfusion-go/internal/functions"
	"github.com/graphfusion/graphfusion-go/internal/sparql"
	"github.com/graphfusion/graphfusion-go/internal/store"
	"github.com/graphfusion/graphfusion-go/internal/term"
)

// Quad is a (subject, predicate, object, graph) tuple of RDF terms at the
// façade boundary (spec §3.3); Graph nil means the default graph.
type Quad struct {
	Subject, Predicate, Object term.Term
	Graph                      *term.Term
}

// Triple is one CONSTRUCT/DESCRIBE result triple.
type Triple struct {
	Subject, Predicate, Object term.Term
}

// Store is the C7 façade: one term dictionary and MVCC quad index plus
// the store-lifetime options every query inherits.
type Store struct {
	quads *store.QuadStore
	opts  StoreOptions
}

// New returns an empty store (spec §6 "new() -> empty store").
func New(opts ...StoreOption) *Store {
	o := defaultStoreOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Store{quads: store.NewQuadStore(o.RowGroupSize), opts: o}
}

func (s *Store) intern(t term.Term) uint32 { return uint32(s.quads.Dictionary().Intern(t)) }

func (s *Store) toInternalQuad(q Quad) store.Quad {
	dict := s.quads.Dictionary()
	iq := store.Quad{
		Subject:   dict.Intern(q.Subject),
		Predicate: dict.Intern(q.Predicate),
		Object:    dict.Intern(q.Object),
	}
	if q.Graph != nil {
		iq.Graph = dict.Intern(*q.Graph)
	}
	return iq
}

// Insert stages q for insertion as an atomic single-quad transaction,
// reporting whether the store's content changed (spec §6 "insert(quad)").
func (s *Store) Insert(q Quad) (bool, error) {
	txn, err := s.quads.Begin()
	if err != nil {
		return false, NewError(KindStorageError, "Insert", err)
	}
	changed := txn.Insert(s.toInternalQuad(q))
	txn.Commit()
	s.opts.Logger.Debug("insert", "changed", changed)
	return changed, nil
}

// Remove stages q for removal as an atomic single-quad transaction.
func (s *Store) Remove(q Quad) (bool, error) {
	txn, err := s.quads.Begin()
	if err != nil {
		return false, NewError(KindStorageError, "Remove", err)
	}
	changed := txn.Remove(s.toInternalQuad(q))
	txn.Commit()
	s.opts.Logger.Debug("remove", "changed", changed)
	return changed, nil
}

// Extend bulk-inserts quads under one transaction, amortizing the writer
// lock over the whole batch (SPEC_FULL §3, grounded on oxigraph's
// bulk_loader-style extend()). It returns how many quads were new.
func (s *Store) Extend(quads []Quad) (int, error) {
	txn, err := s.quads.Begin()
	if err != nil {
		return 0, NewError(KindStorageError, "Extend", err)
	}
	n := 0
	for _, q := range s.internBatch(quads) {
		if txn.Insert(q) {
			n++
		}
	}
	txn.Commit()
	s.opts.Logger.Debug("extend", "inserted", n, "total", len(quads))
	return n, nil
}

// internBatch resolves every term across quads to object ids with one
// columnar.Dictionary.InternBatch round trip (spec §3.2.2, §4.2) instead
// of interning term by term, the path Extend/LoadFromReader's bulk loads
// take through the columnar Builder/Array machinery. A nil Graph is kept
// out of the batch entirely (its id is the reserved NullObjectID) rather
// than appended as a zero term.Term, since the zero Kind is NamedNode and
// would otherwise intern as an empty-IRI named node.
func (s *Store) internBatch(quads []Quad) []store.Quad {
	dict := s.quads.Dictionary()
	spo := make([]term.Term, 0, len(quads)*3)
	for _, q := range quads {
		spo = append(spo, q.Subject, q.Predicate, q.Object)
	}
	spoIDs := dict.InternBatch(spo)

	graphs := make([]term.Term, 0, len(quads))
	graphRows := make([]int, 0, len(quads))
	for i, q := range quads {
		if q.Graph != nil {
			graphs = append(graphs, *q.Graph)
			graphRows = append(graphRows, i)
		}
	}
	graphIDs := dict.InternBatch(graphs)

	out := make([]store.Quad, len(quads))
	for i := range quads {
		out[i] = store.Quad{Subject: spoIDs[i*3], Predicate: spoIDs[i*3+1], Object: spoIDs[i*3+2]}
	}
	for j, i := range graphRows {
		out[i].Graph = graphIDs[j]
	}
	return out
}

// Contains reports whether q is visible at the current snapshot. Unlike
// Insert/Remove this never mutates the dictionary: a term never seen
// before trivially cannot be contained.
func (s *Store) Contains(q Quad) bool {
	dict := s.quads.Dictionary()
	sid, ok := dict.TryLookup(q.Subject)
	if !ok {
		return false
	}
	pid, ok := dict.TryLookup(q.Predicate)
	if !ok {
		return false
	}
	oid, ok := dict.TryLookup(q.Object)
	if !ok {
		return false
	}
	var gid columnar.ObjectID
	if q.Graph != nil {
		gid, ok = dict.TryLookup(*q.Graph)
		if !ok {
			return false
		}
	}
	return s.quads.Contains(s.quads.Snapshot(), store.Quad{Subject: sid, Predicate: pid, Object: oid, Graph: gid})
}

// Len reports the number of quads currently live. It is a full scan
// (internal/store has no running quad counter); fine for a thin façade,
// not for a hot path.
func (s *Store) Len() int { return len(s.quads.QuadsForPattern(s.quads.Snapshot(), store.Pattern{})) }

// IsEmpty reports whether the store holds no quads.
func (s *Store) IsEmpty() bool { return s.Len() == 0 }

// QuadsForPattern returns every live quad matching the given pattern; a
// nil position means unbound (spec §6 "quads_for_pattern(s?, p?, o?, g?)").
// A non-nil position for a term never interned matches nothing, since
// lookup never mutates the dictionary.
func (s *Store) QuadsForPattern(subject, predicate, object, graph *term.Term) []Quad {
	dict := s.quads.Dictionary()
	var pat store.Pattern
	for _, pair := range []struct {
		t   *term.Term
		dst **uint32
	}{{subject, &pat.Subject}, {predicate, &pat.Predicate}, {object, &pat.Object}, {graph, &pat.Graph}} {
		if pair.t == nil {
			continue
		}
		id, ok := dict.TryLookup(*pair.t)
		if !ok {
			return nil
		}
		idVal := uint32(id)
		*pair.dst = &idVal
	}

	quads := s.quads.QuadsForPattern(s.quads.Snapshot(), pat)
	return s.decodeBatch(quads)
}

// decodeBatch resolves object ids back to terms with one
// columnar.Dictionary.LookupBatch round trip (the inverse of internBatch),
// used by QuadsForPattern and so by DumpToWriter/DumpGraphToWriter's bulk
// export.
func (s *Store) decodeBatch(quads []store.Quad) []Quad {
	dict := s.quads.Dictionary()
	ids := make([]columnar.ObjectID, 0, len(quads)*4)
	for _, q := range quads {
		ids = append(ids, q.Subject, q.Predicate, q.Object, q.Graph)
	}
	terms := dict.LookupBatch(ids)

	out := make([]Quad, len(quads))
	for i, q := range quads {
		out[i] = Quad{Subject: terms[i*4], Predicate: terms[i*4+1], Object: terms[i*4+2]}
		if q.Graph != columnar.NullObjectID {
			g := terms[i*4+3]
			out[i].Graph = &g
		}
	}
	return out
}

// NamedGraphs returns every currently-declared named graph id, resolved
// back to RDF terms.
func (s *Store) NamedGraphs() []term.Term {
	dict := s.quads.Dictionary()
	ids := s.quads.NamedGraphs(s.quads.Snapshot())
	out := make([]term.Term, 0, len(ids))
	for _, id := range ids {
		if t, ok := dict.Lookup(columnar.ObjectID(id)); ok {
			out = append(out, t)
		}
	}
	return out
}

// ContainsNamedGraph reports whether g is currently declared.
func (s *Store) ContainsNamedGraph(g term.Term) bool {
	for _, t := range s.NamedGraphs() {
		if t.Eq(g) {
			return true
		}
	}
	return false
}

// InsertNamedGraph declares g present, possibly empty.
func (s *Store) InsertNamedGraph(g term.Term) error {
	txn, err := s.quads.Begin()
	if err != nil {
		return NewError(KindStorageError, "InsertNamedGraph", err)
	}
	txn.InsertNamedGraph(s.intern(g))
	txn.Commit()
	return nil
}

// RemoveNamedGraph un-declares g. It does not remove g's quads; callers
// wanting that should call ClearGraph first (spec §6).
func (s *Store) RemoveNamedGraph(g term.Term) error {
	txn, err := s.quads.Begin()
	if err != nil {
		return NewError(KindStorageError, "RemoveNamedGraph", err)
	}
	txn.RemoveNamedGraph(s.intern(g))
	txn.Commit()
	return nil
}

// ClearGraph removes every quad in graph g without un-declaring g itself.
func (s *Store) ClearGraph(g term.Term) error {
	txn, err := s.quads.Begin()
	if err != nil {
		return NewError(KindStorageError, "ClearGraph", err)
	}
	dict := s.quads.Dictionary()
	gid, ok := dict.TryLookup(g)
	if ok {
		idVal := uint32(gid)
		quads := s.quads.QuadsForPattern(s.quads.Snapshot(), store.Pattern{Graph: &idVal})
		for _, q := range quads {
			txn.Remove(q)
		}
	}
	txn.Commit()
	return nil
}

// Clear removes every quad in every graph, including the default graph.
func (s *Store) Clear() error {
	txn, err := s.quads.Begin()
	if err != nil {
		return NewError(KindStorageError, "Clear", err)
	}
	quads := s.quads.QuadsForPattern(s.quads.Snapshot(), store.Pattern{})
	for _, q := range quads {
		txn.Remove(q)
	}
	txn.Commit()
	return nil
}

// RDFParser is the external collaborator contract for LoadFromReader
// (spec §1 "RDF parsing... treated as external collaborators", §6 "the
// store accepts a reader-plus-parser pair"): Parse decodes all of r and
// returns its quads as one slice.
type RDFParser interface {
	Parse(r io.Reader) ([]Quad, error)
}

// RDFSerializer is the external collaborator contract for DumpToWriter.
type RDFSerializer interface {
	Serialize(w io.Writer, quads []Quad) error
}

// LoadFromReader bulk-ingests every quad parser decodes from r under one
// transaction (spec §6 "load_from_reader(parser, reader)").
func (s *Store) LoadFromReader(parser RDFParser, r io.Reader) (int, error) {
	quads, err := parser.Parse(r)
	if err != nil {
		return 0, NewError(KindParseError, "LoadFromReader", err)
	}
	return s.Extend(quads)
}

// DumpToWriter serializes every live quad in the store to w (spec §6
// "dump_to_writer(serializer, writer)").
func (s *Store) DumpToWriter(serializer RDFSerializer, w io.Writer) error {
	quads := s.QuadsForPattern(nil, nil, nil, nil)
	if err := serializer.Serialize(w, quads); err != nil {
		return NewError(KindEvaluationError, "DumpToWriter", err)
	}
	return nil
}

// DumpGraphToWriter serializes only quads in graph g.
func (s *Store) DumpGraphToWriter(g term.Term, serializer RDFSerializer, w io.Writer) error {
	quads := s.QuadsForPattern(nil, nil, nil, &g)
	if err := serializer.Serialize(w, quads); err != nil {
		return NewError(KindEvaluationError, "DumpGraphToWriter", err)
	}
	return nil
}

// Update always fails with ErrNotImplemented: sparqlText is neither parsed
// nor executed, since Update execution is a stated Non-goal (spec.md §1;
// SPEC_FULL Open Questions: "Update semantics").
func (s *Store) Update(sparqlText string) error {
	return NewError(KindEvaluationError, "Update", ErrNotImplemented)
}

// QueryForm is which of SPARQL's four result shapes a Query produces
// (spec §6 "Supported forms: SELECT, ASK, CONSTRUCT, DESCRIBE").
type QueryForm int

const (
	FormSelect QueryForm = iota
	FormAsk
	FormConstruct
	FormDescribe
)

// Query is an already-parsed SPARQL query (spec §6: parsing is delegated
// to an external collaborator, so Query never accepts raw SPARQL text).
type Query struct {
	Form      QueryForm
	Algebra   sparql.Algebra
	Variables []string              // projected variables, SELECT header order
	Template  []sparql.TriplePattern // CONSTRUCT/DESCRIBE triple template
}

// QueryResults is the Form-tagged result of one Query (spec §6 "a
// QueryResults stream (solutions | boolean | graph)"); exactly one of
// Solutions, Boolean, Triples is meaningful, selected by Form.
type QueryResults struct {
	Form      QueryForm
	Variables []string
	Solutions []functions.Solution
	Boolean   bool
	Triples   []Triple
}

// Query runs q against the store's default options.
func (s *Store) Query(q Query) (*QueryResults, error) { return s.QueryOpt(q) }

// QueryOpt runs q with per-query overrides (spec §6 "query_opt(sparql,
// options)"): rewrite (C6) -> optimize (collapse patterns, push down join
// filters) -> execute (C5/C4 via internal/engine/exec) -> shape by Form.
func (s *Store) QueryOpt(q Query, opts ...QueryOption) (*QueryResults, error) {
	qo := defaultQueryOptions(s.opts)
	for _, opt := range opts {
		opt(&qo)
	}

	rewriter := sparql.NewRewriter(qo.Dataset, s.intern)
	plan := rewriter.Rewrite(q.Algebra)
	plan = optimize.PushDownJoinFilters(optimize.CollapsePatterns(plan))

	seed1, seed2 := randSeeds(qo)
	ctx := functions.NewContext(qo.Clock, seed1, seed2)
	version := s.quads.Snapshot()
	rows, err := exec.New(s.quads, version, ctx).Eval(plan)
	if err != nil {
		qo.Logger.Error("query failed", "error", err)
		return nil, NewError(KindEvaluationError, "Query", err)
	}

	switch q.Form {
	case FormAsk:
		return &QueryResults{Form: FormAsk, Boolean: len(rows) > 0}, nil
	case FormConstruct, FormDescribe:
		return &QueryResults{Form: q.Form, Triples: s.materializeTemplate(q.Template, rows)}, nil
	default:
		return &QueryResults{Form: FormSelect, Variables: q.Variables, Solutions: rows}, nil
	}
}

// randSeeds resolves the two RAND() seed words: the caller's
// explicit seed, or two crypto-random words when left at the zero value
// (SPEC_FULL Open Questions: "production use seeds from crypto-random by
// default").
func randSeeds(qo QueryOptions) (uint64, uint64) {
	if qo.RandSeed1 != 0 || qo.RandSeed2 != 0 {
		return qo.RandSeed1, qo.RandSeed2
	}
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 1, 1
	}
	return binary.LittleEndian.Uint64(buf[:8]), binary.LittleEndian.Uint64(buf[8:])
}

// materializeTemplate substitutes each solution's bindings into template,
// skipping triples with an unbound position and deduplicating the result
// across all solutions (standard CONSTRUCT semantics). Blank nodes in the
// template are not re-scoped per solution; SPARQL's "fresh blank node per
// solution" CONSTRUCT rule is a known simplification, see DESIGN.md.
func (s *Store) materializeTemplate(tmpl []sparql.TriplePattern, rows []functions.Solution) []Triple {
	seen := map[string]bool{}
	var out []Triple
	for _, sol := range rows {
		for _, tp := range tmpl {
			subj, ok1 := resolveTermOrVar(tp.Subject, sol)
			pred, ok2 := resolveTermOrVar(tp.Predicate, sol)
			obj, ok3 := resolveTermOrVar(tp.Object, sol)
			if !ok1 || !ok2 || !ok3 {
				continue
			}
			key := subj.String() + "\x1f" + pred.String() + "\x1f" + obj.String()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Triple{Subject: subj, Predicate: pred, Object: obj})
		}
	}
	return out
}

func resolveTermOrVar(tv sparql.TermOrVar, sol functions.Solution) (term.Term, bool) {
	if tv.IsTerm {
		return tv.Term, true
	}
	t, ok := sol[tv.Var]
	return t, ok
}
