package services

import (
	"context"
	"net/http"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/competence-backend/internal/data/repos"
	"github.com/yungbote/competence-backend/internal/data/repos/testutil"
	"github.com/yungbote/competence-backend/internal/domain"
	pkgerrors "github.com/yungbote/competence-backend/internal/pkg/errors"
	"github.com/yungbote/competence-backend/internal/pkg/pointers"
	"github.com/yungbote/competence-backend/internal/platform/apierr"
)

func TestCompetenceServiceMergePatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.competences.Create(ctx, domain.NewCompetence().WithName("A").WithLevel(1))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	patched, err := f.competences.PartialUpdate(ctx, c.ID, &domain.Competence{ID: c.ID, Level: pointers.Int(2)})
	if err != nil {
		t.Fatalf("PartialUpdate: %v", err)
	}
	if pointers.Deref(patched.Name) != "A" || pointers.Deref(patched.Level) != 2 {
		t.Fatalf("expected {A, 2}, got %s", patched)
	}

	stored, _, err := f.competences.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if pointers.Deref(stored.Name) != "A" || pointers.Deref(stored.Level) != 2 {
		t.Fatalf("expected stored {A, 2}, got %s", stored)
	}
}

func TestCompetenceServicePatchKeepsLinks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g, err := f.categories.Create(ctx, domain.NewCategory().WithName("Lang"))
	if err != nil {
		t.Fatalf("Create category: %v", err)
	}
	c, err := f.competences.Create(ctx, &domain.Competence{Name: pointers.String("Rust"), CategoryID: pointers.Int64(g.ID)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// A patch carries no link fields of its own; the stored one stays.
	patched, err := f.competences.PartialUpdate(ctx, c.ID, &domain.Competence{ID: c.ID, Name: pointers.String("Rust 2024")})
	if err != nil {
		t.Fatalf("PartialUpdate: %v", err)
	}
	if patched.CategoryID == nil || *patched.CategoryID != g.ID {
		t.Fatalf("expected category link kept, got %v", patched.CategoryID)
	}
}

func TestCompetenceServiceValidatesReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.competences.Create(ctx, &domain.Competence{Name: pointers.String("X"), CategoryID: pointers.Int64(404)})
	wantCode(t, err, http.StatusBadRequest, apierr.CodeReferenceNotFound)

	_, err = f.competences.Create(ctx, &domain.Competence{Name: pointers.String("X"), EmployeeID: pointers.Int64(404)})
	wantCode(t, err, http.StatusBadRequest, apierr.CodeReferenceNotFound)

	c, err := f.competences.Create(ctx, domain.NewCompetence().WithName("Y"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err = f.competences.Update(ctx, c.ID, &domain.Competence{ID: c.ID, EmployeeID: pointers.Int64(404)})
	wantCode(t, err, http.StatusBadRequest, apierr.CodeReferenceNotFound)
}

func TestCompetenceServiceUpdateMovesCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.categories.Create(ctx, domain.NewCategory().WithName("A"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := f.categories.Create(ctx, domain.NewCategory().WithName("B"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	c, err := f.competences.Create(ctx, &domain.Competence{Name: pointers.String("K8s"), CategoryID: pointers.Int64(a.ID)})
	if err != nil {
		t.Fatalf("Create competence: %v", err)
	}

	if _, err := f.competences.Update(ctx, c.ID, &domain.Competence{ID: c.ID, Name: pointers.String("K8s"), CategoryID: pointers.Int64(b.ID)}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	gotA, _, err := f.categories.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("Get A: %v", err)
	}
	gotB, _, err := f.categories.Get(ctx, b.ID)
	if err != nil {
		t.Fatalf("Get B: %v", err)
	}
	if len(gotA.Competences) != 0 {
		t.Fatalf("expected A emptied, got %d", len(gotA.Competences))
	}
	if len(gotB.Competences) != 1 || gotB.Competences[0].ID != c.ID {
		t.Fatalf("expected competence under B, got %+v", gotB.Competences)
	}
}

// vanishingRepo reports the row as present and then loses it, as when a
// concurrent delete lands between the existence check and the write.
type vanishingRepo struct {
	repos.CompetenceRepo
}

func (vanishingRepo) ExistsByID(context.Context, *gorm.DB, int64) (bool, error) { return true, nil }

func (vanishingRepo) GetByID(context.Context, *gorm.DB, int64) (*domain.Competence, error) {
	return nil, pkgerrors.ErrNotFound
}

func (vanishingRepo) Update(context.Context, *gorm.DB, *domain.Competence) error {
	return pkgerrors.ErrNotFound
}

func TestCompetenceServiceConcurrentDelete(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	events := &captureBus{}
	svc := NewCompetenceService(db, log,
		vanishingRepo{CompetenceRepo: repos.NewCompetenceRepo(db, log)},
		repos.NewCategoryRepo(db, log),
		repos.NewEmployeeRepo(db, log),
		events,
	)
	ctx := context.Background()

	_, err := svc.PartialUpdate(ctx, 5, &domain.Competence{ID: 5, Level: pointers.Int(3)})
	wantCode(t, err, http.StatusNotFound, apierr.CodeNotFound)

	_, err = svc.Update(ctx, 5, &domain.Competence{ID: 5, Name: pointers.String("gone")})
	wantCode(t, err, http.StatusBadRequest, apierr.CodeIDNotFound)

	if len(events.actions()) != 0 {
		t.Fatalf("failed writes must not publish, got %v", events.actions())
	}
}

// movingRepo lets a concurrent full update move the competence to another
// category right before the patch is written.
type movingRepo struct {
	repos.CompetenceRepo
	db     *gorm.DB
	moveTo int64
}

func (r movingRepo) UpdateScalars(ctx context.Context, tx *gorm.DB, id int64, name *string, level *int) error {
	row, err := r.CompetenceRepo.GetByID(ctx, r.db, id)
	if err != nil {
		return err
	}
	row.CategoryID = pointers.Int64(r.moveTo)
	if err := r.CompetenceRepo.Update(ctx, r.db, row); err != nil {
		return err
	}
	return r.CompetenceRepo.UpdateScalars(ctx, tx, id, name, level)
}

func TestCompetenceServicePatchKeepsConcurrentMove(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()
	events := &captureBus{}

	categoryRepo := repos.NewCategoryRepo(db, log)
	employeeRepo := repos.NewEmployeeRepo(db, log)
	competenceRepo := repos.NewCompetenceRepo(db, log)
	categories := NewCategoryService(db, log, categoryRepo, events)

	from, err := categories.Create(ctx, domain.NewCategory().WithName("Backend"))
	if err != nil {
		t.Fatalf("Create category: %v", err)
	}
	to, err := categories.Create(ctx, domain.NewCategory().WithName("Frontend"))
	if err != nil {
		t.Fatalf("Create category: %v", err)
	}
	c, err := competenceRepo.Create(ctx, db, &domain.Competence{Name: pointers.String("TypeScript"), CategoryID: pointers.Int64(from.ID)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	svc := NewCompetenceService(db, log,
		movingRepo{CompetenceRepo: competenceRepo, db: db, moveTo: to.ID},
		categoryRepo, employeeRepo, events,
	)
	patched, err := svc.PartialUpdate(ctx, c.ID, &domain.Competence{ID: c.ID, Level: pointers.Int(4)})
	if err != nil {
		t.Fatalf("PartialUpdate: %v", err)
	}

	stored, err := competenceRepo.GetByID(ctx, db, c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.CategoryID == nil || *stored.CategoryID != to.ID {
		t.Fatalf("patch undid the move: category_id=%v want %d", stored.CategoryID, to.ID)
	}
	if pointers.Deref(stored.Level) != 4 || pointers.Deref(stored.Name) != "TypeScript" {
		t.Fatalf("unexpected stored row %s", stored)
	}
	if patched.CategoryID == nil || *patched.CategoryID != to.ID {
		t.Fatalf("response should reflect the stored row, got category_id=%v", patched.CategoryID)
	}
}
