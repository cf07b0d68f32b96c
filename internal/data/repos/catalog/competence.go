package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/competence-backend/internal/domain"
	pkgerrors "github.com/yungbote/competence-backend/internal/pkg/errors"
	"github.com/yungbote/competence-backend/internal/platform/logger"
)

type CompetenceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, competence *domain.Competence) (*domain.Competence, error)
	Update(ctx context.Context, tx *gorm.DB, competence *domain.Competence) error
	UpdateScalars(ctx context.Context, tx *gorm.DB, id int64, name *string, level *int) error
	ExistsByID(ctx context.Context, tx *gorm.DB, id int64) (bool, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.Competence, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Competence, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id int64) error
}

type competenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompetenceRepo(db *gorm.DB, baseLog *logger.Logger) CompetenceRepo {
	repoLog := baseLog.With("repo", "CompetenceRepo")
	return &competenceRepo{db: db, log: repoLog}
}

func (r *competenceRepo) Create(ctx context.Context, tx *gorm.DB, competence *domain.Competence) (*domain.Competence, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(competence).Error; err != nil {
		return nil, err
	}
	return competence, nil
}

// Update writes every column, links included; ErrNotFound when the row is gone.
func (r *competenceRepo) Update(ctx context.Context, tx *gorm.DB, competence *domain.Competence) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&domain.Competence{}).
		Where("id = ?", competence.ID).
		Updates(map[string]any{
			"name":        competence.Name,
			"level":       competence.Level,
			"category_id": competence.CategoryID,
			"employee_id": competence.EmployeeID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}

// UpdateScalars writes only the non-nil values among name and level, leaving
// the link columns untouched. ErrNotFound when the row is gone.
func (r *competenceRepo) UpdateScalars(ctx context.Context, tx *gorm.DB, id int64, name *string, level *int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	cols := map[string]any{}
	if name != nil {
		cols["name"] = *name
	}
	if level != nil {
		cols["level"] = *level
	}
	if len(cols) == 0 {
		return nil
	}

	res := transaction.WithContext(ctx).
		Model(&domain.Competence{}).
		Where("id = ?", id).
		Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}

func (r *competenceRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id int64) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Competence{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *competenceRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.Competence, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Competence
	if err := transaction.WithContext(ctx).
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

func (r *competenceRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Competence, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	results := []*domain.Competence{}
	if err := transaction.WithContext(ctx).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *competenceRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Competence{}).Error
}
