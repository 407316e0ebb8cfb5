package carddef

import "context"

// Repository reads and seeds card definition tables.
type Repository interface {
	// List returns every row of kind's table, decoded.
	List(ctx context.Context, kind Kind) ([]Definition, error)
	// ExistingIDs returns the subset of ids present in kind's table.
	ExistingIDs(ctx context.Context, kind Kind, ids []int64) ([]int64, error)
	// SaveTokenCards inserts or updates token card rows by id.
	SaveTokenCards(ctx context.Context, cards []TokenCard) error
	// SaveDiscoveryCards inserts or updates discovery card rows by id.
	SaveDiscoveryCards(ctx context.Context, cards []DiscoveryCard) error
}
