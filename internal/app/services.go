package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/competence-backend/internal/platform/logger"
	"github.com/yungbote/competence-backend/internal/realtime/bus"
	"github.com/yungbote/competence-backend/internal/services"
)

type Services struct {
	Category   services.CategoryService
	Employee   services.EmployeeService
	Competence services.CompetenceService
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos, events bus.Bus) Services {
	log.Info("Wiring services...")
	return Services{
		Category:   services.NewCategoryService(db, log, reposet.Category, events),
		Employee:   services.NewEmployeeService(db, log, reposet.Employee, events),
		Competence: services.NewCompetenceService(db, log, reposet.Competence, reposet.Category, reposet.Employee, events),
	}
}
