package repository

import (
	"noteshub/internal/catalog/domain"

	"gorm.io/gorm"
)

// ResourceRepo definition get resource info
type ResourceRepo interface {
	AutoMigrate() error
	Create(resource *domain.Resource) error
	GetByID(id string) (*domain.Resource, error)
	FindBySubject(branch domain.Branch, subjectID string, tag domain.Tag) ([]domain.Resource, error)
}

type resourceRepo struct {
	db *gorm.DB
}

// NewResourceRepo create ResourceRepo
func NewResourceRepo(db *gorm.DB) ResourceRepo {
	return &resourceRepo{db: db}
}

func (r *resourceRepo) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Resource{})
}

func (r *resourceRepo) Create(resource *domain.Resource) error {
	return r.db.Create(resource).Error
}

func (r *resourceRepo) GetByID(id string) (*domain.Resource, error) {
	var res domain.Resource
	if err := r.db.First(&res, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

// FindBySubject list resources of one (branch, subject) scope, newest first.
// TagAll means no tag predicate. Rows sharing a created_at keep the order the
// store returns them in.
func (r *resourceRepo) FindBySubject(branch domain.Branch, subjectID string, tag domain.Tag) ([]domain.Resource, error) {
	resources := []domain.Resource{}
	q := r.db.Where("branch = ? AND subject_id = ?", branch, subjectID)
	if tag != domain.TagAll {
		q = q.Where("tag = ?", tag)
	}
	if err := q.Order("created_at DESC").Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}
