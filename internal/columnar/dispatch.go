package columnar

// numericRank mirrors term.NumericPromotionRank for the columnar field
// ids: int(0) < integer(1) < decimal(2) < float(3) < double(4), the
// promotion lattice spec §4.3 applies before a binary numeric kernel runs.
var numericRank = map[FieldID]int{
	FieldInt:     0,
	FieldInteger: 1,
	FieldDecimal: 2,
	FieldFloat:   3,
	FieldDouble:  4,
}

// PromoteNumericPair returns the FieldID both operands should be cast to
// before a binary numeric kernel is applied, and false if either field is
// not numeric at all (spec §4.2 "type-pair table selects the kernel").
func PromoteNumericPair(a, b FieldID) (FieldID, bool) {
	ra, aok := numericRank[a]
	rb, bok := numericRank[b]
	if !aok || !bok {
		return 0, false
	}
	if ra >= rb {
		return a, true
	}
	return b, true
}

