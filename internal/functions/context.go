// Package functions implements the SPARQL scalar and aggregate built-ins
// of spec §4.3 over internal/term values. Every scalar function follows
// the same failure policy: a per-row type mismatch or domain error
// returns ok=false (the caller masks that row to null/unbound) rather
// than a Go error; a Go error means the call was structurally invalid
// (wrong arity, wrong encoding) and should fail the whole batch.
package functions

import (
	"math/rand/v2"
	"time"

	"github.com/graphfusion/graphfusion-go/internal/term"
)

// Clock supplies the current instant; injected so NOW() is stable across
// one query's evaluation and deterministic in tests (SPEC_FULL Open
// Questions).
type Clock func() time.Time

// Context carries the per-query evaluation state scalar functions need
// beyond their arguments: the fixed NOW() instant, a seeded RAND()
// source, and the BNODE() stability map (spec §4.3: "unary [BNODE] ->
// stable per lexical value within a solution sequence").
type Context struct {
	Now      time.Time
	Rand     *rand.Rand
	bnodes   map[string]term.Term
	bnodeSeq int
}

// NewContext builds a Context from a Clock and an explicit RAND() seed
// (0 lets the caller seed from crypto-random at the QueryOptions layer).
func NewContext(clock Clock, seed1, seed2 uint64) *Context {
	if clock == nil {
		clock = time.Now
	}
	return &Context{
		Now:    clock(),
		Rand:   rand.New(rand.NewPCG(seed1, seed2)),
		bnodes: make(map[string]term.Term),
	}
}

// FreshBlankNode returns a new, never-before-seen blank node (nullary
// BNODE()).
func (c *Context) FreshBlankNode() term.Term {
	c.bnodeSeq++
	return term.NewBlankNode(genBlankLabel(c.bnodeSeq))
}

// StableBlankNode returns the same blank node for the same lexical value
// across one Context's lifetime (unary BNODE(lexical)), per spec §4.3.
func (c *Context) StableBlankNode(lexical string) term.Term {
	if t, ok := c.bnodes[lexical]; ok {
		return t
	}
	t := c.FreshBlankNode()
	c.bnodes[lexical] = t
	return t
}

func genBlankLabel(n int) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	if n == 0 {
		return "b0"
	}
	buf := make([]byte, 0, 8)
	for n > 0 {
		buf = append(buf, alphabet[n%len(alphabet)])
		n /= len(alphabet)
	}
	out := make([]byte, len(buf)+1)
	out[0] = 'b'
	for i, c := range buf {
		out[len(buf)-i] = c
	}
	return string(out)
}

// ArityError signals a structurally invalid call (spec §4.3: "wrong
// arity ... fails the whole batch with an internal error"), distinct from
// a per-row failure which is reported as ok=false instead of an error.
type ArityError struct {
	Func string
	Want string
	Got  int
}

func (e *ArityError) Error() string {
	return "functions: " + e.Func + ": expected " + e.Want + " arguments, got " + itoa(e.Got)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
