package columnar

import "github.com/apache/arrow-go/v18/arrow/memory"

// NewPlainBuilder constructs a Builder in plain-term mode (spec §3.2.2):
// every literal except simple and language-tagged strings is appended to
// FieldOtherLiteral verbatim, regardless of whether its lexical value
// would parse under the value encoding. Graph pattern joins, SAMETERM and
// hashing all operate against plain-encoded arrays so that two syntactically
// identical literals compare equal without needing to agree on datatype
// parseability.
func NewPlainBuilder(mem memory.Allocator) *Builder { return NewBuilder(mem, ModePlain) }

// ToPlain re-encodes every row of a (value-encoded or plain) array into a
// fresh plain-encoded Array, by round-tripping each row through Decode and
// re-appending under ModePlain. Used at join and hash boundaries (spec
// §4.2's "Plain <-> Value" contract): a row in plain encoding whose
// lexical value and datatype are well-formed converts losslessly back to
// the value encoding by reversing this step with ToValue.
func ToPlain(mem memory.Allocator, src *Array) *Array {
	b := NewPlainBuilder(mem)
	for i := 0; i < src.Len(); i++ {
		b.AppendTerm(src.Decode(i))
	}
	return b.Finalize()
}

// ToValue re-encodes every row into the value encoding, parsing literals
// that were stored verbatim in a plain array's OtherLiteral field.
// Ill-formed literals remain in OtherLiteral, per spec §4.2.
func ToValue(mem memory.Allocator, src *Array) *Array {
	b := NewBuilder(mem, ModeValue)
	for i := 0; i < src.Len(); i++ {
		b.AppendTerm(src.Decode(i))
	}
	return b.Finalize()
}
