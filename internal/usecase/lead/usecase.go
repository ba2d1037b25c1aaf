package lead

import (
	"context"
	"strings"

	"go.uber.org/zap"

	domain "lead-crm-service/internal/domain/lead"
	pkgerrors "lead-crm-service/pkg/errors"
)

// Repository defines the interface for lead data access operations.
// Reads and deletes are always filtered by lead ID and owner ID together;
// GetByIDAndOwner returns (nil, nil) when no owned lead matches.
type Repository interface {
	Create(ctx context.Context, l *domain.Lead) (string, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Lead, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Lead, error)
	Update(ctx context.Context, l *domain.Lead) error
	DeleteByIDAndOwner(ctx context.Context, id, ownerID string) (int64, error)
}

// Service implements owner-scoped lead CRUD on top of the lead repository.
type Service struct {
	repo Repository
	log  *zap.Logger
}

// New creates a new lead Service.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{repo: r, log: log}
}

func leadNotFound() error {
	return pkgerrors.NewNotFoundError("lead", "Lead not found")
}

// List returns all leads owned by the caller, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]domain.Lead, error) {
	leads, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.log.Error("failed to list leads", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to list leads", err)
	}
	return leads, nil
}

// Get returns a single lead by ID, scoped to the caller. A lead owned by a
// different identity is reported as not found, never as forbidden.
func (s *Service) Get(ctx context.Context, ownerID, leadID string) (*domain.Lead, error) {
	l, err := s.repo.GetByIDAndOwner(ctx, leadID, ownerID)
	if err != nil {
		s.log.Error("failed to get lead", zap.String("lead_id", leadID), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to get lead", err)
	}
	if l == nil {
		s.log.Warn("lead not found", zap.String("lead_id", leadID), zap.String("owner_id", ownerID))
		return nil, leadNotFound()
	}
	return l, nil
}

// Create persists a new lead owned by the caller. Status defaults to "New"
// when not supplied.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateLeadRequest) (*domain.Lead, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)

	if in.Name == "" || in.Email == "" || in.Phone == "" {
		s.log.Warn("create lead validation failed", zap.String("reason", "missing fields"))
		return nil, pkgerrors.NewValidationError("", "Name, email, and phone are required")
	}

	status := in.Status
	if status == "" {
		status = domain.StatusNew
	}

	l := &domain.Lead{
		Name:   in.Name,
		Email:  in.Email,
		Phone:  in.Phone,
		Status: status,
		UserID: ownerID,
	}

	id, err := s.repo.Create(ctx, l)
	if err != nil {
		s.log.Error("failed to create lead", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to create lead", err)
	}
	l.ID = id

	created, err := s.repo.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil || created == nil {
		// The insert succeeded; return what we have rather than failing the request.
		s.log.Warn("failed to reload created lead", zap.String("lead_id", id), zap.Error(err))
		return l, nil
	}

	s.log.Info("lead created", zap.String("lead_id", id), zap.String("owner_id", ownerID))
	return created, nil
}

// Update applies a partial update to an owned lead. Only fields present in
// the request with a non-empty value are applied; absent fields are left
// untouched.
func (s *Service) Update(ctx context.Context, ownerID, leadID string, in UpdateLeadRequest) (*domain.Lead, error) {
	l, err := s.repo.GetByIDAndOwner(ctx, leadID, ownerID)
	if err != nil {
		s.log.Error("failed to load lead for update", zap.String("lead_id", leadID), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to load lead", err)
	}
	if l == nil {
		s.log.Warn("lead not found for update", zap.String("lead_id", leadID), zap.String("owner_id", ownerID))
		return nil, leadNotFound()
	}

	if v := trimmed(in.Name); v != "" {
		l.Name = v
	}
	if v := trimmed(in.Email); v != "" {
		l.Email = v
	}
	if v := trimmed(in.Phone); v != "" {
		l.Phone = v
	}
	if v := trimmed(in.Status); v != "" {
		l.Status = v
	}

	if err := s.repo.Update(ctx, l); err != nil {
		s.log.Error("failed to update lead", zap.String("lead_id", leadID), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to update lead", err)
	}

	s.log.Info("lead updated", zap.String("lead_id", leadID), zap.String("owner_id", ownerID))
	return l, nil
}

// Delete removes an owned lead permanently. Deleting a lead that is absent or
// owned by someone else reports not found, so a repeated delete is safe.
func (s *Service) Delete(ctx context.Context, ownerID, leadID string) error {
	deleted, err := s.repo.DeleteByIDAndOwner(ctx, leadID, ownerID)
	if err != nil {
		s.log.Error("failed to delete lead", zap.String("lead_id", leadID), zap.Error(err))
		return pkgerrors.NewInternalError("failed to delete lead", err)
	}
	if deleted == 0 {
		s.log.Warn("lead not found for delete", zap.String("lead_id", leadID), zap.String("owner_id", ownerID))
		return leadNotFound()
	}

	s.log.Info("lead deleted", zap.String("lead_id", leadID), zap.String("owner_id", ownerID))
	return nil
}

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}
