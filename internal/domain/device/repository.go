package device

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the store contract the reconciliation flow depends on.
// Upsert must be a single atomic insert-or-update keyed on the udid
// unique constraint, so concurrent callbacks for the same unseen UDID
// cannot create two records.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Device, error)
	GetByUDID(ctx context.Context, udid string) (*Device, error)
	Upsert(ctx context.Context, device *Device) (*Device, error)
	List(ctx context.Context, offset, limit int) ([]Device, int64, error)
}
