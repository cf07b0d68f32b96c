package catalog

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/competence-backend/internal/domain"
	pkgerrors "github.com/yungbote/competence-backend/internal/pkg/errors"
	"github.com/yungbote/competence-backend/internal/platform/logger"
)

type EmployeeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, employee *domain.Employee) (*domain.Employee, error)
	Update(ctx context.Context, tx *gorm.DB, employee *domain.Employee) error
	ExistsByID(ctx context.Context, tx *gorm.DB, id int64) (bool, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.Employee, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Employee, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id int64) error
}

type employeeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmployeeRepo(db *gorm.DB, baseLog *logger.Logger) EmployeeRepo {
	repoLog := baseLog.With("repo", "EmployeeRepo")
	return &employeeRepo{db: db, log: repoLog}
}

func (r *employeeRepo) Create(ctx context.Context, tx *gorm.DB, employee *domain.Employee) (*domain.Employee, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Omit(clause.Associations).
		Create(employee).Error; err != nil {
		return nil, err
	}
	return employee, nil
}

func (r *employeeRepo) Update(ctx context.Context, tx *gorm.DB, employee *domain.Employee) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id = ?", employee.ID).
		Updates(map[string]any{
			"name":       employee.Name,
			"first_name": employee.FirstName,
			"address":    employee.Address,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}

func (r *employeeRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id int64) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *employeeRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.Employee, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Employee
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

func (r *employeeRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Employee, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	results := []*domain.Employee{}
	if err := transaction.WithContext(ctx).
		Preload("Competences", orderByID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *employeeRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Transaction(func(inner *gorm.DB) error {
		if err := inner.Model(&domain.Competence{}).
			Where("employee_id = ?", id).
			Update("employee_id", nil).Error; err != nil {
			return err
		}
		return inner.Where("id = ?", id).Delete(&domain.Employee{}).Error
	})
}
