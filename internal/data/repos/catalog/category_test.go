package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/competence-backend/internal/data/repos/testutil"
	"github.com/yungbote/competence-backend/internal/domain"
	pkgerrors "github.com/yungbote/competence-backend/internal/pkg/errors"
)

func TestCategoryRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewCategoryRepo(db, testutil.Logger(t))

	g := domain.NewCategory().WithName("backend")
	if _, err := repo.Create(ctx, tx, g); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID == 0 {
		t.Fatalf("Create: expected identity to be assigned")
	}

	other := domain.NewCategory().WithName("frontend")
	if _, err := repo.Create(ctx, tx, other); err != nil {
		t.Fatalf("Create other: %v", err)
	}
	if other.ID <= g.ID {
		t.Fatalf("expected increasing ids, got %d then %d", g.ID, other.ID)
	}

	if ok, err := repo.ExistsByID(ctx, tx, g.ID); err != nil || !ok {
		t.Fatalf("ExistsByID: ok=%v err=%v", ok, err)
	}

	got, err := repo.GetByID(ctx, tx, g.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Equal(g) || got.Name == nil || *got.Name != "backend" {
		t.Fatalf("GetByID: unexpected %s", got)
	}

	rows, err := repo.List(ctx, tx)
	if err != nil || len(rows) != 2 {
		t.Fatalf("List: err=%v len=%d", err, len(rows))
	}
	if rows[0].ID != g.ID || rows[1].ID != other.ID {
		t.Fatalf("List: expected id order, got %d, %d", rows[0].ID, rows[1].ID)
	}

	g.Name = nil
	if err := repo.Update(ctx, tx, g); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err = repo.GetByID(ctx, tx, g.ID)
	if err != nil {
		t.Fatalf("GetByID after Update: %v", err)
	}
	if got.Name != nil {
		t.Fatalf("after Update: expected name to be cleared, got %q", *got.Name)
	}

	missing := &domain.Category{ID: 9999}
	if err := repo.Update(ctx, tx, missing); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("Update missing: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByID(ctx, tx, 9999); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("GetByID missing: expected ErrNotFound, got %v", err)
	}

	if err := repo.DeleteByID(ctx, tx, g.ID); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if ok, err := repo.ExistsByID(ctx, tx, g.ID); err != nil || ok {
		t.Fatalf("after DeleteByID ExistsByID: ok=%v err=%v", ok, err)
	}
	if err := repo.DeleteByID(ctx, tx, g.ID); err != nil {
		t.Fatalf("DeleteByID twice: %v", err)
	}
}

func TestCategoryRepoPreloadsCompetences(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewCategoryRepo(db, testutil.Logger(t))

	g := testutil.SeedCategory(t, ctx, tx, "ops")
	c1 := testutil.SeedCompetence(t, ctx, tx, "terraform", 2, g, nil)
	c2 := testutil.SeedCompetence(t, ctx, tx, "k8s", 3, g, nil)
	testutil.SeedCompetence(t, ctx, tx, "unlinked", 1, nil, nil)

	got, err := repo.GetByID(ctx, tx, g.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Competences) != 2 {
		t.Fatalf("expected 2 competences, got %d", len(got.Competences))
	}
	if !got.Competences[0].Equal(c1) || !got.Competences[1].Equal(c2) {
		t.Fatalf("unexpected competences: %v", got.Competences)
	}
	for _, c := range got.Competences {
		if c.Category() != got {
			t.Fatalf("back-reference not restored for %s", c)
		}
	}
}

func TestCategoryRepoDeleteUnlinksCompetences(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewCategoryRepo(db, testutil.Logger(t))
	competences := NewCompetenceRepo(db, testutil.Logger(t))

	g := testutil.SeedCategory(t, ctx, tx, "ops")
	c := testutil.SeedCompetence(t, ctx, tx, "terraform", 2, g, nil)

	if err := repo.DeleteByID(ctx, tx, g.ID); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}

	got, err := competences.GetByID(ctx, tx, c.ID)
	if err != nil {
		t.Fatalf("competence should survive its category: %v", err)
	}
	if got.CategoryID != nil {
		t.Fatalf("expected category_id to be cleared, got %d", *got.CategoryID)
	}
}
