package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/salesdash/api/internal/domain"
)

// SaleRepository defines the store operations for the sales dashboard. All
// reads return canonical Sales; adaptation from the stored document shapes
// happens inside the repository, never in callers.
type SaleRepository interface {
	// List returns one page of matching sales plus the total match count.
	List(ctx context.Context, q domain.ListQuery) ([]domain.Sale, int64, error)

	// Aggregate computes the summary totals over the same filter predicate
	// List uses, independent of the pagination window.
	Aggregate(ctx context.Context, filter domain.SaleFilter) (domain.Stats, error)

	// FilterOptions returns the distinct values per filter dimension.
	FilterOptions(ctx context.Context) (domain.FilterOptions, error)

	// GetByTransactionID looks a sale up by its natural key.
	GetByTransactionID(ctx context.Context, transactionID string) (domain.Sale, error)

	// InsertDocument stores a raw sale document. Only the ingestion tools
	// call this; the HTTP surface is read-only.
	InsertDocument(ctx context.Context, doc domain.Document) (uuid.UUID, error)
}
