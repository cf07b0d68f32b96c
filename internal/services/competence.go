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

type CompetenceService interface {
	Create(ctx context.Context, competence *domain.Competence) (*domain.Competence, error)
	Update(ctx context.Context, id int64, competence *domain.Competence) (*domain.Competence, error)
	// PartialUpdate merges name and level only; links are not patchable.
	PartialUpdate(ctx context.Context, id int64, patch *domain.Competence) (*domain.Competence, error)
	List(ctx context.Context) ([]*domain.Competence, error)
	Get(ctx context.Context, id int64) (*domain.Competence, bool, error)
	Delete(ctx context.Context, id int64) error
}

type competenceService struct {
	db           *gorm.DB
	log          *logger.Logger
	repo         repos.CompetenceRepo
	categoryRepo repos.CategoryRepo
	employeeRepo repos.EmployeeRepo
	events       bus.Bus
}

func NewCompetenceService(
	db *gorm.DB,
	baseLog *logger.Logger,
	repo repos.CompetenceRepo,
	categoryRepo repos.CategoryRepo,
	employeeRepo repos.EmployeeRepo,
	events bus.Bus,
) CompetenceService {
	return &competenceService{
		db:           db,
		log:          baseLog.With("service", "CompetenceService"),
		repo:         repo,
		categoryRepo: categoryRepo,
		employeeRepo: employeeRepo,
		events:       events,
	}
}

func (s *competenceService) exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.ExistsByID(ctx, s.db, id)
}

// checkReferences makes sure linked parents exist, since the schema carries
// no foreign key constraints.
func (s *competenceService) checkReferences(ctx context.Context, competence *domain.Competence) error {
	if competence.CategoryID != nil {
		ok, err := s.categoryRepo.ExistsByID(ctx, s.db, *competence.CategoryID)
		if err != nil {
			return fmt.Errorf("check category %d exists: %w", *competence.CategoryID, err)
		}
		if !ok {
			return apierr.Validation(domain.EntityCompetence, apierr.CodeReferenceNotFound, fmt.Sprintf("category %d not found", *competence.CategoryID))
		}
	}
	if competence.EmployeeID != nil {
		ok, err := s.employeeRepo.ExistsByID(ctx, s.db, *competence.EmployeeID)
		if err != nil {
			return fmt.Errorf("check employee %d exists: %w", *competence.EmployeeID, err)
		}
		if !ok {
			return apierr.Validation(domain.EntityCompetence, apierr.CodeReferenceNotFound, fmt.Sprintf("employee %d not found", *competence.EmployeeID))
		}
	}
	return nil
}

func (s *competenceService) Create(ctx context.Context, competence *domain.Competence) (*domain.Competence, error) {
	s.log.Debug("Create competence", "competence", competence.String())
	if err := checkNew(domain.EntityCompetence, competence.ID); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, competence); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, s.db, competence)
	if err != nil {
		return nil, fmt.Errorf("create competence: %w", err)
	}
	publish(ctx, s.log, s.events, domain.EntityCompetence, realtime.ActionCreated, created.ID)
	return created, nil
}

func (s *competenceService) Update(ctx context.Context, id int64, competence *domain.Competence) (*domain.Competence, error) {
	s.log.Debug("Update competence", "id", id, "competence", competence.String())
	if err := checkIdentity(ctx, domain.EntityCompetence, id, competence.ID, s.exists); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, competence); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, s.db, competence); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, apierr.Validation(domain.EntityCompetence, apierr.CodeIDNotFound, "entity not found")
		}
		return nil, fmt.Errorf("update competence %d: %w", id, err)
	}
	stored, err := s.repo.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, vanished(domain.EntityCompetence, id, err)
	}
	publish(ctx, s.log, s.events, domain.EntityCompetence, realtime.ActionUpdated, id)
	return stored, nil
}

func (s *competenceService) PartialUpdate(ctx context.Context, id int64, patch *domain.Competence) (*domain.Competence, error) {
	s.log.Debug("Partial update competence", "id", id, "patch", patch.String())
	if err := checkIdentity(ctx, domain.EntityCompetence, id, patch.ID, s.exists); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateScalars(ctx, s.db, id, patch.Name, patch.Level); err != nil {
		return nil, vanished(domain.EntityCompetence, id, err)
	}
	updated, err := s.repo.GetByID(ctx, s.db, id)
	if err != nil {
		return nil, vanished(domain.EntityCompetence, id, err)
	}
	publish(ctx, s.log, s.events, domain.EntityCompetence, realtime.ActionUpdated, id)
	return updated, nil
}

func (s *competenceService) List(ctx context.Context) ([]*domain.Competence, error) {
	rows, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("list competences: %w", err)
	}
	return rows, nil
}

func (s *competenceService) Get(ctx context.Context, id int64) (*domain.Competence, bool, error) {
	row, err := s.repo.GetByID(ctx, s.db, id)
	if errors.Is(err, pkgerrors.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get competence %d: %w", id, err)
	}
	return row, true, nil
}

func (s *competenceService) Delete(ctx context.Context, id int64) error {
	s.log.Debug("Delete competence", "id", id)
	if err := s.repo.DeleteByID(ctx, s.db, id); err != nil {
		return fmt.Errorf("delete competence %d: %w", id, err)
	}
	publish(ctx, s.log, s.events, domain.EntityCompetence, realtime.ActionDeleted, id)
	return nil
}
