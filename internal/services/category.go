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

type CategoryService interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, id int64, category *domain.Category) (*domain.Category, error)
	PartialUpdate(ctx context.Context, id int64, patch *domain.Category) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Get(ctx context.Context, id int64) (*domain.Category, bool, error)
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	db     *gorm.DB
	log    *logger.Logger
	repo   repos.CategoryRepo
	events bus.Bus
}

func NewCategoryService(db *gorm.DB, baseLog *logger.Logger, repo repos.CategoryRepo, events bus.Bus) CategoryService {
	return &categoryService{
		db:     db,
		log:    baseLog.With("service", "CategoryService"),
		repo:   repo,
		events: events,
	}
}

func (s *categoryService) exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.ExistsByID(ctx, s.db, id)
}

func (s *categoryService) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	s.log.Debug("Create category", "category", category.String())
	if err := checkNew(domain.EntityCategory, category.ID); err != nil {
		return nil, err
	}
	// Links are owned by competences; a category body never writes them.
	category.Competences = nil

	created, err := s.repo.Create(ctx, s.db, category)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	publish(ctx, s.log, s.events, domain.EntityCategory, realtime.ActionCreated, created.ID)
	return created, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, category *domain.Category) (*domain.Category, error) {
	s.log.Debug("Update category", "id", id, "category", category.String())
	if err := checkIdentity(ctx, domain.EntityCategory, id, category.ID, s.exists); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, s.db, category); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, apierr.Validation(domain.EntityCategory, apierr.CodeIDNotFound, "entity not found")
		}
		return nil, fmt.Errorf("update category %d: %w", id, err)
	}
	stored, err := s.repo.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, vanished(domain.EntityCategory, id, err)
	}
	publish(ctx, s.log, s.events, domain.EntityCategory, realtime.ActionUpdated, id)
	return stored, nil
}

func (s *categoryService) PartialUpdate(ctx context.Context, id int64, patch *domain.Category) (*domain.Category, error) {
	s.log.Debug("Partial update category", "id", id, "patch", patch.String())
	if err := checkIdentity(ctx, domain.EntityCategory, id, patch.ID, s.exists); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, vanished(domain.EntityCategory, id, err)
	}
	if patch.Name != nil {
		existing.Name = patch.Name
	}
	if err := s.repo.Update(ctx, s.db, existing); err != nil {
		return nil, vanished(domain.EntityCategory, id, err)
	}
	publish(ctx, s.log, s.events, domain.EntityCategory, realtime.ActionUpdated, id)
	return existing, nil
}

func (s *categoryService) List(ctx context.Context) ([]*domain.Category, error) {
	rows, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return rows, nil
}

func (s *categoryService) Get(ctx context.Context, id int64) (*domain.Category, bool, error) {
	row, err := s.repo.GetByID(ctx, s.db, id)
	if errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get category %d: %w", id, err)
	}
	return row, true, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	s.log.Debug("Delete category", "id", id)
	if err := s.repo.DeleteByID(ctx, s.db, id); err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	publish(ctx, s.log, s.events, domain.EntityCategory, realtime.ActionDeleted, id)
	return nil
}
