package graphfusion

import (
	"io"

	"github.com/graphfusion/graphfusion-go/internal/rdfio"
	"github.com/graphfusion/graphfusion-go/internal/term"
)

// NQuadsCodec is the default RDFParser/RDFSerializer implementation,
// covering N-Quads (spec §6's "the store accepts a reader-plus-parser
// pair" ingress/egress boundary). Any other serialization plugs in by
// implementing the same two interfaces; this is not the only collaborator
// LoadFromReader/DumpToWriter accept, just the one the engine ships.
type NQuadsCodec struct{}

func (NQuadsCodec) Parse(r io.Reader) ([]Quad, error) {
	wire, err := rdfio.NewQuadDecoder(r).DecodeAll()
	if err != nil {
		return nil, err
	}
	out := make([]Quad, len(wire))
	for i, q := range wire {
		out[i] = Quad{
			Subject:   term.FromWire(q.Subj),
			Predicate: term.FromWire(q.Pred),
			Object:    term.FromWire(q.Obj),
		}
		if q.Graph.Value != "" {
			g := term.FromWire(q.Graph)
			out[i].Graph = &g
		}
	}
	return out, nil
}

func (NQuadsCodec) Serialize(w io.Writer, quads []Quad) error {
	enc := rdfio.NewQuadEncoder(w)
	for _, q := range quads {
		wq := rdfio.Quad{Triple: rdfio.Triple{
			Subj: q.Subject.ToWire(),
			Pred: q.Predicate.ToWire(),
			Obj:  q.Object.ToWire(),
		}}
		if q.Graph != nil {
			wq.Graph = q.Graph.ToWire()
		}
		if err := enc.Encode(wq); err != nil {
			return err
		}
	}
	return enc.Close()
}

// NTriplesCodec parses and serializes N-Triples; every quad is in the
// default graph (spec §3.3 "Graph nil means the default graph").
type NTriplesCodec struct{}

func (NTriplesCodec) Parse(r io.Reader) ([]Quad, error) {
	wire, err := rdfio.NewTripleDecoder(r).DecodeAll()
	if err != nil {
		return nil, err
	}
	out := make([]Quad, len(wire))
	for i, t := range wire {
		out[i] = Quad{
			Subject:   term.FromWire(t.Subj),
			Predicate: term.FromWire(t.Pred),
			Object:    term.FromWire(t.Obj),
		}
	}
	return out, nil
}

func (NTriplesCodec) Serialize(w io.Writer, quads []Quad) error {
	enc := rdfio.NewTripleEncoder(w)
	for _, q := range quads {
		if err := enc.Encode(rdfio.Triple{
			Subj: q.Subject.ToWire(),
			Pred: q.Predicate.ToWire(),
			Obj:  q.Object.ToWire(),
		}); err != nil {
			return err
		}
	}
	return enc.Close()
}
