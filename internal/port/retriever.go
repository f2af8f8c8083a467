package port

// Diversifier narrows a deduplicated candidate context list down to k
// passages for answer synthesis.
type Diversifier interface {
	Diversify(question string, contexts []string, k int) []string
}
