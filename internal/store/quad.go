package store

import "github.com/graphfusion/graphfusion-go/internal/columnar"

// Quad is an ordered (graph, subject, predicate, object) tuple of object
// ids (spec §3.3). Graph == NullObjectID denotes the default graph.
type Quad struct {
	Graph, Subject, Predicate, Object columnar.ObjectID
}

// Permutation is a total order over the four quad positions (spec §3.3,
// §4.4.1). The four named here are the canonical set this store
// maintains simultaneously (SPEC_FULL supplemented feature): GSPO
// supports graph-first scans and named_graphs(); SPOG/POSG/OSPG round
// out every subject-bound, predicate-bound and object-bound access
// pattern a SPARQL BGP scan produces.
type Permutation int

const (
	PermSPOG Permutation = iota
	PermPOSG
	PermOSPG
	PermGSPO
)

func (p Permutation) String() string {
	switch p {
	case PermSPOG:
		return "SPOG"
	case PermPOSG:
		return "POSG"
	case PermOSPG:
		return "OSPG"
	case PermGSPO:
		return "GSPO"
	default:
		return "?"
	}
}

// positions returns q's four ids in this permutation's order.
func (p Permutation) positions(q Quad) [4]columnar.ObjectID {
	switch p {
	case PermSPOG:
		return [4]columnar.ObjectID{q.Subject, q.Predicate, q.Object, q.Graph}
	case PermPOSG:
		return [4]columnar.ObjectID{q.Predicate, q.Object, q.Subject, q.Graph}
	case PermOSPG:
		return [4]columnar.ObjectID{q.Object, q.Subject, q.Predicate, q.Graph}
	default: // PermGSPO
		return [4]columnar.ObjectID{q.Graph, q.Subject, q.Predicate, q.Object}
	}
}

// positionNames names the logical quad position (Subject/Predicate/
// Object/Graph) occupying each of this permutation's four columns, in
// order -- used by the index chooser to map a pattern's bound positions
// onto a permutation's leading columns.
func (p Permutation) positionNames() [4]quadPosition {
	switch p {
	case PermSPOG:
		return [4]quadPosition{posSubject, posPredicate, posObject, posGraph}
	case PermPOSG:
		return [4]quadPosition{posPredicate, posObject, posSubject, posGraph}
	case PermOSPG:
		return [4]quadPosition{posObject, posSubject, posPredicate, posGraph}
	default:
		return [4]quadPosition{posGraph, posSubject, posPredicate, posObject}
	}
}

type quadPosition int

const (
	posSubject quadPosition = iota
	posPredicate
	posObject
	posGraph
)

func lessPositions(a, b [4]columnar.ObjectID) bool {
	for i := 0; i < 4; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
