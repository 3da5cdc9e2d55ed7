package ports

import (
	"context"

	"dispatch/internal/core/domain/model/company"
	"dispatch/internal/core/domain/model/kernel"
)

// CompanyRepository defines the persistence contract for company aggregates.
type CompanyRepository interface {
	// Add persists a new company aggregate to storage.
	Add(ctx context.Context, aggregate *company.Company) error

	// Update persists changes to an existing company aggregate.
	Update(ctx context.Context, aggregate *company.Company) error

	// Get retrieves a company aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*company.Company, error)

	// GetForUpdate retrieves a company aggregate and locks its row for the
	// rest of the transaction, serializing read-modify-write sequences on
	// the reputation aggregate.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*company.Company, error)
}
