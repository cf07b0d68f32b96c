package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/competence-backend/internal/data/repos"
	"github.com/yungbote/competence-backend/internal/platform/logger"
)

type Repos struct {
	Category   repos.CategoryRepo
	Employee   repos.EmployeeRepo
	Competence repos.CompetenceRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Category:   repos.NewCategoryRepo(db, log),
		Employee:   repos.NewEmployeeRepo(db, log),
		Competence: repos.NewCompetenceRepo(db, log),
	}
}
