package tabular

// suspectRows is the row count under which a visible table is treated as a
// possibly-truncated summary when a larger comment-hidden table coexists.
// Empirical constant tuned against one provider's layout; tunable, but the
// strict comparisons around it are part of the contract.
const suspectRows = 100

// Primary merges the visible and hidden discovery outcomes into one winner:
//
//  1. only hidden found → hidden
//  2. visible shorter than suspectRows and hidden strictly taller → hidden
//  3. visible found → visible
//  4. neither → an explicitly empty candidate
//
// Primary never returns nil.
func Primary(visible, hidden *Candidate) *Candidate {
	if visible == nil {
		if hidden != nil {
			return hidden
		}
		return &Candidate{}
	}
	if hidden != nil {
		vr, _ := visible.Size()
		hr, _ := hidden.Size()
		if vr < suspectRows && hr > vr {
			return hidden
		}
	}
	return visible
}
