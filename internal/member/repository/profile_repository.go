package repository

import (
	"context"

	"noteshub/internal/member/domain"

	"gorm.io/gorm"
)

// ProfileRepository definition get Profile info
type ProfileRepository interface {
	AutoMigrate() error
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository create a ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Profile{})
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
