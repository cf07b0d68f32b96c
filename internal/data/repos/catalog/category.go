package catalog

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/competence-backend/internal/domain"
	pkgerrors "github.com/yungbote/competence-backend/internal/pkg/errors"
	"github.com/yungbote/competence-backend/internal/platform/logger"
)

type CategoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, category *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, tx *gorm.DB, category *domain.Category) error
	ExistsByID(ctx context.Context, tx *gorm.DB, id int64) (bool, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.Category, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Category, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id int64) error
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	repoLog := baseLog.With("repo", "CategoryRepo")
	return &categoryRepo{db: db, log: repoLog}
}

func (r *categoryRepo) Create(ctx context.Context, tx *gorm.DB, category *domain.Category) (*domain.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Omit(clause.Associations).
		Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Update writes every column; ErrNotFound when the row is gone.
func (r *categoryRepo) Update(ctx context.Context, tx *gorm.DB, category *domain.Category) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&domain.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]any{
			"name": category.Name,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}

func (r *categoryRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id int64) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Category{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *categoryRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Category
	if err := transaction.WithContext(ctx).
		Preload("Competences", orderByID).
		Where("id = ?", id).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, pkgerrors.ErrNotFound
	}
	return results[0], nil
}

func (r *categoryRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Category, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	results := []*domain.Category{}
	if err := transaction.WithContext(ctx).
		Preload("Competences", orderByID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// DeleteByID unlinks the category's competences, then removes the row.
// Deleting a missing id is not an error.
func (r *categoryRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Transaction(func(inner *gorm.DB) error {
		if err := inner.Model(&domain.Competence{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return inner.Where("id = ?", id).Delete(&domain.Category{}).Error
	})
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
