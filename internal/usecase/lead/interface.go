package lead

import (
	"context"

	domain "lead-crm-service/internal/domain/lead"
)

// Usecase defines the interface for owner-scoped lead operations.
// The ownerID always comes from the authenticated request context, never from
// client-supplied input.
type Usecase interface {
	List(ctx context.Context, ownerID string) ([]domain.Lead, error)
	Get(ctx context.Context, ownerID, leadID string) (*domain.Lead, error)
	Create(ctx context.Context, ownerID string, in CreateLeadRequest) (*domain.Lead, error)
	Update(ctx context.Context, ownerID, leadID string, in UpdateLeadRequest) (*domain.Lead, error)
	Delete(ctx context.Context, ownerID, leadID string) error
}
