package columnar

import "github.com/graphfusion/graphfusion-go/internal/term"

// ObjectID is a dictionary-assigned 32-bit identifier (spec §3.2.3). 0 is
// reserved for null / the default graph; the dictionary that issues these
// lives in internal/store, which also owns durability, so this package
// only defines the encoding's shape and its round-trip contract.
type ObjectID uint32

// NullObjectID is the reserved null/default-graph id.
const NullObjectID ObjectID = 0

// Dictionary resolves terms to object ids and back. internal/store's
// dictionary implements this so quad-index code (internal/store, §C4) can
// depend on the columnar package without an import cycle.
type Dictionary interface {
	Intern(t term.Term) ObjectID
	Lookup(id ObjectID) (term.Term, bool)
}

// ObjectIDArray is the object-id encoding of a term array: one ObjectID
// per row, dense, no tagged union needed since the dictionary already
// disambiguates term kind.
type ObjectIDArray struct {
	ids []ObjectID
}

// NewObjectIDArray wraps a slice of ids (ownership transfers to the array).
func NewObjectIDArray(ids []ObjectID) *ObjectIDArray { return &ObjectIDArray{ids: ids} }

// Len reports the row count.
func (a *ObjectIDArray) Len() int { return len(a.ids) }

// At returns the object id at row i.
func (a *ObjectIDArray) At(i int) ObjectID { return a.ids[i] }

// EncodeObjectIDs converts a term Array into object ids via dict,
// interning each row's decoded term.
func EncodeObjectIDs(src *Array, dict Dictionary) *ObjectIDArray {
	ids := make([]ObjectID, src.Len())
	for i := 0; i < src.Len(); i++ {
		if src.Field(i) == FieldNull {
			ids[i] = NullObjectID
			continue
		}
		ids[i] = dict.Intern(src.Decode(i))
	}
	return NewObjectIDArray(ids)
}

// DecodeObjectIDs converts object ids back into a value-encoded term
// Array (spec §4.2 round-trip contract), appending the decoded terms to b
// and finalizing it.
func DecodeObjectIDs(ids *ObjectIDArray, dict Dictionary, b *Builder) *Array {
	for i := 0; i < ids.Len(); i++ {
		id := ids.At(i)
		if id == NullObjectID {
			b.AppendNull()
			continue
		}
		t, ok := dict.Lookup(id)
		if !ok {
			b.AppendNull()
			continue
		}
		b.AppendTerm(t)
	}
	return b.Finalize()
}
