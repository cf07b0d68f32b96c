package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/competence-backend/internal/data/repos"
	"github.com/yungbote/competence-backend/internal/domain"
	pkgerrors "github.com/yungbote/competence-backend/internal/pkg/errors"
	"github.com/yungbote/competence-backend/internal/platform/apierr"
	"github.com/yungbote/competence-backend/internal/platform/logger"
	"github.com/yungbote/competence-backend/internal/realtime"
	"github.com/yungbote/competence-backend/internal/realtime/bus"
)

type EmployeeService interface {
	Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
	Update(ctx context.Context, id int64, employee *domain.Employee) (*domain.Employee, error)
	PartialUpdate(ctx context.Context, id int64, patch *domain.Employee) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
	Get(ctx context.Context, id int64) (*domain.Employee, bool, error)
	Delete(ctx context.Context, id int64) error
}

type employeeService struct {
	db     *gorm.DB
	log    *logger.Logger
	repo   repos.EmployeeRepo
	events bus.Bus
}

func NewEmployeeService(db *gorm.DB, baseLog *logger.Logger, repo repos.EmployeeRepo, events bus.Bus) EmployeeService {
	return &employeeService{
		db:     db,
		log:    baseLog.With("service", "EmployeeService"),
		repo:   repo,
		events: events,
	}
}

func (s *employeeService) exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.ExistsByID(ctx, s.db, id)
}

func (s *employeeService) Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	s.log.Debug("Create employee", "employee", employee.String())
	if err := checkNew(domain.EntityEmployee, employee.ID); err != nil {
		return nil, err
	}
	employee.Competences = nil

	created, err := s.repo.Create(ctx, s.db, employee)
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	publish(ctx, s.log, s.events, domain.EntityEmployee, realtime.ActionCreated, created.ID)
	return created, nil
}

func (s *employeeService) Update(ctx context.Context, id int64, employee *domain.Employee) (*domain.Employee, error) {
	s.log.Debug("Update employee", "id", id, "employee", employee.String())
	if err := checkIdentity(ctx, domain.EntityEmployee, id, employee.ID, s.exists); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, s.db, employee); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, apierr.Validation(domain.EntityEmployee, apierr.CodeIDNotFound, "entity not found")
		}
		return nil, fmt.Errorf("update employee %d: %w", id, err)
	}
	stored, err := s.repo.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, vanished(domain.EntityEmployee, id, err)
	}
	publish(ctx, s.log, s.events, domain.EntityEmployee, realtime.ActionUpdated, id)
	return stored, nil
}

func (s *employeeService) PartialUpdate(ctx context.Context, id int64, patch *domain.Employee) (*domain.Employee, error) {
	s.log.Debug("Partial update employee", "id", id, "patch", patch.String())
	if err := checkIdentity(ctx, domain.EntityEmployee, id, patch.ID, s.exists); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, vanished(domain.EntityEmployee, id, err)
	}
	if patch.Name != nil {
		existing.Name = patch.Name
	}
	if patch.FirstName != nil {
		existing.FirstName = patch.FirstName
	}
	if patch.Address != nil {
		existing.Address = patch.Address
	}
	if err := s.repo.Update(ctx, s.db, existing); err != nil {
		return nil, vanished(domain.EntityEmployee, id, err)
	}
	publish(ctx, s.log, s.events, domain.EntityEmployee, realtime.ActionUpdated, id)
	return existing, nil
}

func (s *employeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	rows, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return rows, nil
}

func (s *employeeService) Get(ctx context.Context, id int64) (*domain.Employee, bool, error) {
	row, err := s.repo.GetByID(ctx, s.db, id)
	if errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get employee %d: %w", id, err)
	}
	return row, true, nil
}

func (s *employeeService) Delete(ctx context.Context, id int64) error {
	s.log.Debug("Delete employee", "id", id)
	if err := s.repo.DeleteByID(ctx, s.db, id); err != nil {
		return fmt.Errorf("delete employee %d: %w", id, err)
	}
	publish(ctx, s.log, s.events, domain.EntityEmployee, realtime.ActionDeleted, id)
	return nil
}
