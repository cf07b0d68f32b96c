package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/competence-backend/internal/domain"
	"github.com/yungbote/competence-backend/internal/pkg/pointers"
)

func SeedCategory(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *domain.Category {
	tb.Helper()
	g := domain.NewCategory().WithName(name)
	if err := tx.WithContext(ctx).Omit("Competences").Create(g).Error; err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	return g
}

func SeedEmployee(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *domain.Employee {
	tb.Helper()
	e := domain.NewEmployee().WithName(name).WithFirstName("A").WithAddress("Main St 1")
	if err := tx.WithContext(ctx).Omit("Competences").Create(e).Error; err != nil {
		tb.Fatalf("seed employee: %v", err)
	}
	return e
}

// SeedCompetence inserts a competence linked to the given parents; either may be nil.
func SeedCompetence(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, level int, category *domain.Category, employee *domain.Employee) *domain.Competence {
	tb.Helper()
	c := domain.NewCompetence().WithName(name).WithLevel(level)
	if category != nil {
		c.CategoryID = pointers.Int64(category.ID)
	}
	if employee != nil {
		c.EmployeeID = pointers.Int64(employee.ID)
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed competence: %v", err)
	}
	return c
}
