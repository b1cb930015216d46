package sparql

import "github.com/graphfusion/graphfusion-go/internal/engine/logical"

// Dataset is a query's FROM/FROM NAMED scoping (spec §4.6.1): when both
// are nil the store's own default/named graph sets are used.
type Dataset struct {
	DefaultGraphs []uint32 // nil: store default-graph set (i.e. the unnamed default graph)
	NamedGraphs   []uint32 // nil: every named graph the store currently has
}

// activeGraphFrame tracks the active-graph state while rewriting a
// query (spec §4.6 "Active graph"): no frame (default graph), an IRI
// frame, or a variable frame that may or may not still be in scope.
type activeGraphFrame struct {
	mode     logical.GraphFrameMode
	variable string
	iri      *uint32
}

func defaultFrame() activeGraphFrame { return activeGraphFrame{mode: logical.GraphDefault} }

// graphBinding resolves frame plus the query's Dataset into the
// PositionBinding the rewriter should bind a scan's graph position to,
// and -- when the frame is a variable still in scope -- leaves it
// unbound so the scan variable surfaces the matched graph.
func (ds Dataset) graphBinding(frame activeGraphFrame) logical.PositionBinding {
	switch frame.mode {
	case logical.GraphFixedIRI:
		return logical.BindConst(*frame.iri)
	case logical.GraphVariableInScope:
		if frame.variable == "" {
			return logical.PositionBinding{}
		}
		if ds.NamedGraphs != nil {
			return logical.BindVarRestricted(frame.variable, ds.NamedGraphs)
		}
		return logical.BindVar(frame.variable)
	case logical.GraphVariableOutOfScope:
		// The variable no longer surfaces in the output, but the scan
		// still must not cross outside an explicit FROM NAMED set (spec
		// §4.6.1): an out-of-scope GRAPH ?g inside a nested GRAPH <iri>
		// would otherwise match quads in graphs the dataset never named.
		if ds.NamedGraphs != nil {
			return logical.BindUnboundRestricted(ds.NamedGraphs)
		}
		return logical.PositionBinding{}
	default:
		// Default graph: the store's graph id 0 represents it, per
		// spec §3.3 "graph id may be 0 to denote the default graph".
		return logical.BindConst(0)
	}
}

// wrapGraph attaches the GraphFrameMode metadata the executor needs to
// choose which named graphs a scan is allowed to read (spec §4.6.1):
// when the frame is a variable, the scan's graph binding alone already
// restricts it correctly (unbound = "any named graph" is too permissive
// for the "variable still in scope, restrict to available named graphs"
// case, so the Graph node records the distinction for the executor).
func wrapGraph(child logical.Node, frame activeGraphFrame) logical.Node {
	if frame.mode == logical.GraphDefault {
		return child
	}
	return &logical.Graph{Child: child, Mode: frame.mode, Variable: frame.variable, IRI: frame.iri}
}
