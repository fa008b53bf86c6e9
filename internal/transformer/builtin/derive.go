package builtin

import "shopetl/internal/records"

// Derive adds a computed column: Target = Left * Right with float64
// semantics. When either operand is missing or not numeric the target is set
// to nil and the row is kept; dropping rows is a validation concern, not a
// derivation one.
type Derive struct {
	Target string
	Left   string
	Right  string
}

// Apply computes the target column for every record in place.
func (d Derive) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		l, lok := r.Float(d.Left)
		rv, rok := r.Float(d.Right)
		if lok && rok {
			r[d.Target] = l * rv
		} else {
			r[d.Target] = nil
		}
	}
	return in
}
