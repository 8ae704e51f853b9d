package ledger

// SetSearchLimit lowers the bound of the nonce search and returns a function
// that restores it.
func SetSearchLimit(limit uint64) func() {
	prev := searchLimit
	searchLimit = limit

	return func() { searchLimit = prev }
}
