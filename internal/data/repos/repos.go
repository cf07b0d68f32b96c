package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/competence-backend/internal/data/repos/catalog"
	"github.com/yungbote/competence-backend/internal/platform/logger"
)

type CategoryRepo = catalog.CategoryRepo
type EmployeeRepo = catalog.EmployeeRepo
type CompetenceRepo = catalog.CompetenceRepo

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return catalog.NewCategoryRepo(db, baseLog)
}
func NewEmployeeRepo(db *gorm.DB, baseLog *logger.Logger) EmployeeRepo {
	return catalog.NewEmployeeRepo(db, baseLog)
}
func NewCompetenceRepo(db *gorm.DB, baseLog *logger.Logger) CompetenceRepo {
	return catalog.NewCompetenceRepo(db, baseLog)
}
