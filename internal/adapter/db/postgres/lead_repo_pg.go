package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"lead-crm-service/internal/domain/lead"
)

// LeadRepoPG implements the lead.Repository interface using GORM.
// Every read, update, and delete filters by lead ID and owner ID together.
type LeadRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewLeadRepoPG creates a new instance of LeadRepoPG.
func NewLeadRepoPG(db *gorm.DB, log *zap.Logger) *LeadRepoPG {
	return &LeadRepoPG{db: db, log: log}
}

// LeadSchema represents the database schema for the leads table.
type LeadSchema struct {
	ID        string    `gorm:"primaryKey;size:36"`    // Opaque UUID assigned on creation
	Name      string    `gorm:"not null"`              // Contact name (required)
	Email     string    `gorm:"not null"`              // Contact email (required)
	Phone     string    `gorm:"not null"`              // Contact phone (required)
	Status    string    `gorm:"not null;default:New"`  // Pipeline stage
	UserID    string    `gorm:"size:36;not null;index"` // Owning user
	CreatedAt time.Time `gorm:"not null"`              // Ordering timestamp
}

// TableName specifies the table name for the LeadSchema model.
func (LeadSchema) TableName() string {
	return "leads"
}

// BeforeCreate assigns an opaque UUID before insert.
func (s *LeadSchema) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (s *LeadSchema) toDomain() lead.Lead {
	return lead.Lead{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Status:    s.Status,
		UserID:    s.UserID,
		CreatedAt: s.CreatedAt,
	}
}

func fromDomain(l *lead.Lead) LeadSchema {
	return LeadSchema{
		ID:        l.ID,
		Name:      l.Name,
		Email:     l.Email,
		Phone:     l.Phone,
		Status:    l.Status,
		UserID:    l.UserID,
		CreatedAt: l.CreatedAt,
	}
}

// Create inserts a new lead and returns the assigned ID.
func (r *LeadRepoPG) Create(ctx context.Context, l *lead.Lead) (string, error) {
	if l == nil {
		return "", errors.New("lead cannot be nil")
	}

	model := LeadSchema{
		Name:   l.Name,
		Email:  l.Email,
		Phone:  l.Phone,
		Status: l.Status,
		UserID: l.UserID,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create lead in db", zap.Error(err), zap.String("user_id", l.UserID))
		return "", fmt.Errorf("failed to create lead: %w", err)
	}

	r.log.Info("lead created in db", zap.String("id", model.ID))
	return model.ID, nil
}

// ListByOwner retrieves all leads owned by a user, newest first.
func (r *LeadRepoPG) ListByOwner(ctx context.Context, ownerID string) ([]lead.Lead, error) {
	var models []LeadSchema
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		r.log.Error("failed to list leads from db", zap.Error(err), zap.String("user_id", ownerID))
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	leads := make([]lead.Lead, len(models))
	for i, model := range models {
		leads[i] = model.toDomain()
	}

	return leads, nil
}

// GetByIDAndOwner retrieves a lead by ID scoped to its owner.
// Returns (nil, nil) when no owned lead matches.
func (r *LeadRepoPG) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*lead.Lead, error) {
	var model LeadSchema
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("lead not found", zap.String("id", id), zap.String("user_id", ownerID))
			return nil, nil
		}
		r.log.Error("failed to get lead from db", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	l := model.toDomain()
	return &l, nil
}

// Update saves the full lead record. The caller has already loaded it through
// an owner-scoped query.
func (r *LeadRepoPG) Update(ctx context.Context, l *lead.Lead) error {
	if l == nil {
		return errors.New("lead cannot be nil")
	}

	model := fromDomain(l)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		r.log.Error("failed to update lead in db", zap.Error(err), zap.String("id", l.ID))
		return fmt.Errorf("failed to update lead: %w", err)
	}

	r.log.Info("lead updated in db", zap.String("id", l.ID))
	return nil
}

// DeleteByIDAndOwner removes a lead in a single owner-scoped statement and
// returns the number of rows affected. Zero rows means absent or not owned.
func (r *LeadRepoPG) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&LeadSchema{})
	if res.Error != nil {
		r.log.Error("failed to delete lead in db", zap.Error(res.Error), zap.String("id", id))
		return 0, fmt.Errorf("failed to delete lead: %w", res.Error)
	}

	if res.RowsAffected > 0 {
		r.log.Info("lead deleted in db", zap.String("id", id))
	}
	return res.RowsAffected, nil
}
