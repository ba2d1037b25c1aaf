package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"lead-crm-service/internal/domain/user"
)

// UserRepoPG implements the auth.Repository interface using GORM.
type UserRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID        string    `gorm:"primaryKey;size:36"`          // Opaque UUID assigned on creation
	Name      string    `gorm:"not null"`                    // User's full name (required)
	Email     string    `gorm:"not null;uniqueIndex"`        // Normalized email (required, unique)
	Password  string    `gorm:"not null"`                    // bcrypt hash only
	PhoneNo   string    `gorm:"column:phoneno;not null"`     // Phone number (required)
	CreatedAt time.Time `gorm:"not null"`                    // Registration timestamp
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// BeforeCreate assigns an opaque UUID before insert.
func (s *UserSchema) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (s *UserSchema) toDomain() *user.User {
	return &user.User{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Password:  s.Password,
		PhoneNo:   s.PhoneNo,
		CreatedAt: s.CreatedAt,
	}
}

// Create inserts a new user and returns the assigned ID.
func (r *UserRepoPG) Create(ctx context.Context, u *user.User) (string, error) {
	if u == nil {
		return "", errors.New("user cannot be nil")
	}

	model := UserSchema{
		Name:     u.Name,
		Email:    u.Email,
		Password: u.Password,
		PhoneNo:  u.PhoneNo,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created in db", zap.String("id", model.ID))
	return model.ID, nil
}

// GetByEmail retrieves a user by their normalized email address.
// Returns (nil, nil) when no user matches.
func (r *UserRepoPG) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by email", zap.String("email", email))
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return model.toDomain(), nil
}

// GetByID retrieves a user by their unique ID.
// Returns (nil, nil) when no user matches, so the auth middleware can tell a
// dangling token identity apart from a storage failure.
func (r *UserRepoPG) GetByID(ctx context.Context, id string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found", zap.String("id", id))
			return nil, nil
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return model.toDomain(), nil
}
