package engine

// Fact is a (Symbol, Value) pair representing an assertion.
type Fact struct {
	Symbol Symbol
	Value  Value
}

// Equal reports whether two facts are structurally equal: same symbol and
// same value (per ValuesEqual's variant-wise rule).
func (f Fact) Equal(other Fact) bool {
	return f.Symbol == other.Symbol && ValuesEqual(f.Value, other.Value)
}

// matchFact reports whether query matches known, per §4.4 of the
// specification: the symbols must match exactly, and then the values must
// be of the same variant and equal. It never consults bindings or
// comparisons — relational semantics live entirely in LogicalExpression's
// comparison nodes.
func matchFact(query, known Fact) bool {
	if query.Symbol != known.Symbol {
		return false
	}
	return ValuesEqual(query.Value, known.Value)
}

// containsFact reports whether facts already contains a structural
// duplicate of f.
func containsFact(facts []Fact, f Fact) bool {
	for _, known := range facts {
		if f.Equal(known) {
			return true
		}
	}
	return false
}
