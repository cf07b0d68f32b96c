package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/yungbote/competence-backend/internal/domain"
	"github.com/yungbote/competence-backend/internal/pkg/pointers"
	"github.com/yungbote/competence-backend/internal/platform/apierr"
)

func TestEmployeeServicePartialUpdateMergesFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e, err := f.employees.Create(ctx, domain.NewEmployee().WithName("Doe").WithFirstName("Jane").WithAddress("1 Road"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	patched, err := f.employees.PartialUpdate(ctx, e.ID, &domain.Employee{ID: e.ID, Address: pointers.String("2 Lane")})
	if err != nil {
		t.Fatalf("PartialUpdate: %v", err)
	}
	if pointers.Deref(patched.Name) != "Doe" || pointers.Deref(patched.FirstName) != "Jane" {
		t.Fatalf("absent fields must be kept, got %s", patched)
	}
	if pointers.Deref(patched.Address) != "2 Lane" {
		t.Fatalf("expected address patched, got %s", patched)
	}

	stored, _, err := f.employees.Get(ctx, e.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if pointers.Deref(stored.Address) != "2 Lane" || pointers.Deref(stored.FirstName) != "Jane" {
		t.Fatalf("unexpected stored employee %s", stored)
	}
}

func TestEmployeeServiceFullUpdateClearsAbsentFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e, err := f.employees.Create(ctx, domain.NewEmployee().WithName("Roe").WithFirstName("Rick").WithAddress("3 Court"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := f.employees.Update(ctx, e.ID, &domain.Employee{ID: e.ID, Name: pointers.String("Roe")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.FirstName != nil || updated.Address != nil {
		t.Fatalf("full update must replace every field, got %s", updated)
	}
}

func TestEmployeeServiceUpdateUnknownID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.employees.Update(ctx, 42, &domain.Employee{ID: 42, Name: pointers.String("Ghost")})
	wantCode(t, err, http.StatusBadRequest, apierr.CodeIDNotFound)

	_, err = f.employees.PartialUpdate(ctx, 42, &domain.Employee{ID: 42})
	wantCode(t, err, http.StatusBadRequest, apierr.CodeIDNotFound)

	_, err = f.employees.Create(ctx, &domain.Employee{ID: 42})
	wantCode(t, err, http.StatusBadRequest, apierr.CodeIDExists)
}

func TestEmployeeServiceDeleteUnlinksCompetences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e, err := f.employees.Create(ctx, domain.NewEmployee().WithName("Poe"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	c, err := f.competences.Create(ctx, &domain.Competence{Name: pointers.String("Go"), EmployeeID: pointers.Int64(e.ID)})
	if err != nil {
		t.Fatalf("Create competence: %v", err)
	}

	got, _, err := f.employees.Get(ctx, e.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Competences) != 1 || got.Competences[0].Employee() != got {
		t.Fatalf("expected linked competence with back-reference, got %+v", got.Competences)
	}

	if err := f.employees.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	stored, found, err := f.competences.Get(ctx, c.ID)
	if err != nil || !found {
		t.Fatalf("competence must survive its employee: found=%v err=%v", found, err)
	}
	if stored.EmployeeID != nil {
		t.Fatalf("expected employee link cleared, got %d", *stored.EmployeeID)
	}
}
