package logical

// PathExpr is a SPARQL 1.1 property path expression (spec §4.5.2).
type PathExpr interface{ isPathExpr() }

// PathIRI is a single predicate IRI, already interned.
type PathIRI struct{ ID uint32 }

// PathInverse is ^path.
type PathInverse struct{ Path PathExpr }

// PathSeq is path1/path2.
type PathSeq struct{ Left, Right PathExpr }

// PathAlt is path1|path2.
type PathAlt struct{ Left, Right PathExpr }

// PathZeroOrOne is path?.
type PathZeroOrOne struct{ Path PathExpr }

// PathZeroOrMore is path*.
type PathZeroOrMore struct{ Path PathExpr }

// PathOneOrMore is path+.
type PathOneOrMore struct{ Path PathExpr }

// PathNegatedPropertySet is !(iri1|...|irin) or !(^iri1|...), the
// negated property set grammar production.
type PathNegatedPropertySet struct {
	Forward []uint32 // !p
	Inverse []uint32 // !^p
}

func (PathIRI) isPathExpr()                 {}
func (PathInverse) isPathExpr()             {}
func (PathSeq) isPathExpr()                 {}
func (PathAlt) isPathExpr()                 {}
func (PathZeroOrOne) isPathExpr()           {}
func (PathZeroOrMore) isPathExpr()          {}
func (PathOneOrMore) isPathExpr()           {}
func (PathNegatedPropertySet) isPathExpr()  {}

// PathNode represents `subject PATH object` over the active graph (spec
// §4.5.2). Subject/Object are variables or fixed object ids, same
// representation as QuadPattern's positions.
type PathNode struct {
	Subject, Object PositionBinding
	Graph           PositionBinding
	Path            PathExpr
}

// VarGen produces fresh anonymous join variables for path expansion; one
// per query so expansions of the same query don't collide with each
// other or with user-written variable names.
type VarGen struct{ n int }

// NewVarGen returns an empty generator.
func NewVarGen() *VarGen { return &VarGen{} }

func (g *VarGen) fresh() string {
	g.n++
	return pathVarPrefix + itoaSmall(g.n)
}

// Fresh exposes fresh() to callers outside this package (the executor's
// FixedPointClosure evaluator needs its own scratch join variables that
// are guaranteed not to collide with the ones Expand already generated
// for the same query).
func (g *VarGen) Fresh() string { return g.fresh() }

const pathVarPrefix = "__path$"

func itoaSmall(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// Expand lowers a PathNode into a Node tree of Scan/Join/Union per spec
// §4.5.2's expansion rules. It is not itself a Node; the rewriter calls
// Expand and splices the result into the plan being built.
func (p PathNode) Expand(g *VarGen) Node {
	return expandPath(p.Subject, p.Path, p.Object, p.Graph, g)
}

func expandPath(subj PositionBinding, path PathExpr, obj PositionBinding, graph PositionBinding, g *VarGen) Node {
	switch pe := path.(type) {
	case PathIRI:
		return &Scan{Pattern: QuadPattern{Subject: subj, Predicate: BindConst(pe.ID), Object: obj, Graph: graph}}

	case PathInverse:
		return expandPath(obj, pe.Path, subj, graph, g)

	case PathSeq:
		mid := BindVar(g.fresh())
		left := expandPath(subj, pe.Left, mid, graph, g)
		right := expandPath(mid, pe.Right, obj, graph, g)
		return &Join{Left: left, Right: right}

	case PathAlt:
		return &Union{Left: expandPath(subj, pe.Left, obj, graph, g), Right: expandPath(subj, pe.Right, obj, graph, g)}

	case PathNegatedPropertySet:
		// !(p1|...|^q1|...): forward exclusions scan S->O excepting the
		// forward set, inverse exclusions scan O->S excepting the inverse
		// set with positions swapped back (spec §4.5.2 "!NPS").
		var sides []Node
		if len(pe.Forward) > 0 || len(pe.Inverse) == 0 {
			sides = append(sides, &Scan{
				Pattern: QuadPattern{Subject: subj, Object: obj, Graph: graph},
				Except:  pe.Forward,
			})
		}
		if len(pe.Inverse) > 0 {
			sides = append(sides, &Scan{
				Pattern: QuadPattern{Subject: obj, Object: subj, Graph: graph},
				Except:  pe.Inverse,
			})
		}
		if len(sides) == 1 {
			return sides[0]
		}
		return &Union{Left: sides[0], Right: sides[1]}

	case PathZeroOrOne:
		// a? == BGP(a) UNION (VALUES injecting subject = object), spec §4.5.2.
		return &Union{
			Left:  expandPath(subj, pe.Path, obj, graph, g),
			Right: &ExtendEquals{Subject: subj, Object: obj},
		}

	case PathZeroOrMore:
		return &FixedPointClosure{
			Subject:      subj,
			Object:       obj,
			Graph:        graph,
			Step:         pe.Path,
			IncludeEmpty: true,
			Gen:          g,
		}

	case PathOneOrMore:
		return &FixedPointClosure{
			Subject:      subj,
			Object:       obj,
			Graph:        graph,
			Step:         pe.Path,
			IncludeEmpty: false,
			Gen:          g,
		}

	default:
		return &Scan{Pattern: QuadPattern{Subject: subj, Object: obj, Graph: graph}}
	}
}
