package logical

// Node is one operator in a logical plan tree (spec §4.5, §4.6's
// rewrite target). The concrete types below are the full set the
// rewriter (internal/sparql) and optimizer (internal/engine/optimize)
// operate on.
type Node interface {
	isLogicalNode()
	Children() []Node
}

// Scan is a leaf pattern scan over the quads relation, with its scan
// variables resolved at compile time by QuadPattern.Plan. Except
// overrides the predicate position with a PredExcept scan instruction
// when non-empty (negated property sets; spec §4.5.2).
type Scan struct {
	Pattern QuadPattern
	Except  []uint32
}

func (*Scan) isLogicalNode()      {}
func (*Scan) Children() []Node    { return nil }

// Join is an inner compatibility join (spec §4.6.2).
type Join struct {
	Left, Right Node
}

func (*Join) isLogicalNode()   {}
func (j *Join) Children() []Node { return []Node{j.Left, j.Right} }

// LeftJoin is SPARQL OPTIONAL: every lhs row is kept, joined with a
// matching rhs row or padded with unbound rhs columns; Expr is the
// OPTIONAL's own filter expression, evaluated against the joined schema
// (spec §4.6.2 step 4). Expr may be nil.
type LeftJoin struct {
	Left, Right Node
	Expr        Expr
}

func (*LeftJoin) isLogicalNode()      {}
func (j *LeftJoin) Children() []Node  { return []Node{j.Left, j.Right} }

// Union computes the column union of both children's schemas, padding
// missing columns with null (spec §4.6 "Union").
type Union struct {
	Left, Right Node
}

func (*Union) isLogicalNode()     {}
func (u *Union) Children() []Node { return []Node{u.Left, u.Right} }

// Minus is SPARQL MINUS: a left-anti join requiring at least one shared
// variable bound on both sides (spec §4.6 "Minus").
type Minus struct {
	Left, Right Node
}

func (*Minus) isLogicalNode()     {}
func (m *Minus) Children() []Node { return []Node{m.Left, m.Right} }

// Filter keeps rows where EBV(Expr) is true.
type Filter struct {
	Child Node
	Expr  Expr
}

func (*Filter) isLogicalNode()     {}
func (f *Filter) Children() []Node { return []Node{f.Child} }

// Extend appends a computed column `Expr AS As` (spec §4.6 "Extend").
type Extend struct {
	Child Node
	As    string
	Expr  Expr
}

func (*Extend) isLogicalNode()     {}
func (e *Extend) Children() []Node { return []Node{e.Child} }

// ExtendEquals is the degenerate VALUES used by a? path expansion: a
// single-row, single-solution extension binding Object := Subject when
// Subject is already bound, or vice versa (spec §4.5.2's "a? = BGP(a)
// UNION VALUES injecting subject = object").
type ExtendEquals struct {
	Subject, Object PositionBinding
}

func (*ExtendEquals) isLogicalNode()   {}
func (*ExtendEquals) Children() []Node { return nil }

// FixedPointClosure computes the reflexive-transitive (ZeroOrMore) or
// transitive (OneOrMore) closure of Step between Subject and Object over
// the active graph (spec §4.5.2). The optimizer/executor materializes it
// by repeated self-join until a fixed point (no new pairs) is reached,
// which always terminates because the quad set is finite.
type FixedPointClosure struct {
	Subject, Object PositionBinding
	Graph           PositionBinding
	Step            PathExpr
	IncludeEmpty    bool // true for ZeroOrMore
	Gen             *VarGen
}

func (*FixedPointClosure) isLogicalNode()   {}
func (*FixedPointClosure) Children() []Node { return nil }

// Project keeps only the named variables, in order.
type Project struct {
	Child     Node
	Variables []string
}

func (*Project) isLogicalNode()     {}
func (p *Project) Children() []Node { return []Node{p.Child} }

// Distinct removes duplicate rows under sortable-encoded equality over
// On (spec §4.6 "Distinct / Distinct-on"); On is nil for plain DISTINCT
// (compare on every projected column).
type Distinct struct {
	Child Node
	On    []Expr
}

func (*Distinct) isLogicalNode()     {}
func (d *Distinct) Children() []Node { return []Node{d.Child} }

// SortKey is one ORDER BY clause.
type SortKey struct {
	Expr       Expr
	Descending bool
}

// OrderBy sorts by Keys using the sortable encoding, nulls placed per
// SPARQL order (spec §4.6 "OrderBy").
type OrderBy struct {
	Child Node
	Keys  []SortKey
}

func (*OrderBy) isLogicalNode()     {}
func (o *OrderBy) Children() []Node { return []Node{o.Child} }

// Slice applies OFFSET/LIMIT. Limit < 0 means unbounded.
type Slice struct {
	Child  Node
	Offset int64
	Limit  int64
}

func (*Slice) isLogicalNode()     {}
func (s *Slice) Children() []Node { return []Node{s.Child} }

// AggregateExpr is one `AGG(expr) AS var` projection of a Group node.
type AggregateExpr struct {
	As           string
	Func         string // "COUNT", "SUM", "AVG", "MIN", "MAX", "SAMPLE", "GROUP_CONCAT"
	Arg          Expr   // nil for COUNT(*)
	Distinct     bool
	Separator    string // GROUP_CONCAT only
	HasSeparator bool
}

// Group computes GROUP BY Keys then evaluates each Aggregates entry per
// group (spec §4.6 "Group / Aggregate"). Keys is empty for an implicit
// single-group aggregate (no GROUP BY clause but an aggregate present).
type Group struct {
	Child      Node
	Keys       []Expr
	Aggregates []AggregateExpr
}

func (*Group) isLogicalNode()     {}
func (g *Group) Children() []Node { return []Node{g.Child} }

// Values is a literal relation: each row is a slice of resolved scalars
// (one per Columns entry), each a ValueCell that is either bound or
// unbound (spec §4.6 "Values").
type Values struct {
	Columns []string
	Rows    [][]ValueCell
}

func (*Values) isLogicalNode()   {}
func (*Values) Children() []Node { return nil }

// ValueCell is one VALUES cell: either a constant object id or unbound.
type ValueCell struct {
	Bound bool
	ID    uint32
}

// GraphFrameMode distinguishes the active-graph frame shapes of spec
// §4.6 "Active graph".
type GraphFrameMode int

const (
	GraphDefault GraphFrameMode = iota
	GraphFixedIRI
	GraphVariableInScope
	GraphVariableOutOfScope
)

// Graph scopes its child to the given active-graph frame.
type Graph struct {
	Child    Node
	Mode     GraphFrameMode
	Variable string
	IRI      *uint32
}

func (*Graph) isLogicalNode()     {}
func (g *Graph) Children() []Node { return []Node{g.Child} }

// Expr is a scalar expression evaluated per row, compiled from SPARQL
// algebra expressions by internal/sparql and executed via
// internal/functions. It is intentionally opaque to internal/engine:
// the engine only needs to know an Expr's referenced variables in order
// to do join-filter pushdown (spec §4.5.3).
type Expr interface {
	ReferencedVariables() []string
	IsVolatile() bool // RAND(), NOW() inside a non-deterministic context
}
