package session

// ListOptions provides ordering options for listing sessions.
type ListOptions struct {
	// NewestFirst orders by timestamp descending. Storage order is
	// unspecified otherwise.
	NewestFirst bool
}
