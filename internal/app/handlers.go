package app

import (
	"gorm.io/gorm"

	httpH "github.com/yungbote/competence-backend/internal/http/handlers"
	"github.com/yungbote/competence-backend/internal/http/response"
	"github.com/yungbote/competence-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Category   *httpH.CategoryHandler
	Employee   *httpH.EmployeeHandler
	Competence *httpH.CompetenceHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, appName string, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	alerts := response.Alerts{App: appName}
	return Handlers{
		Health: httpH.NewHealthHandler(db),
		Category: httpH.NewCategoryHandlerWithDeps(httpH.CategoryHandlerDeps{
			Log:      log,
			Category: serviceset.Category,
			Alerts:   alerts,
		}),
		Employee: httpH.NewEmployeeHandlerWithDeps(httpH.EmployeeHandlerDeps{
			Log:      log,
			Employee: serviceset.Employee,
			Alerts:   alerts,
		}),
		Competence: httpH.NewCompetenceHandlerWithDeps(httpH.CompetenceHandlerDeps{
			Log:        log,
			Competence: serviceset.Competence,
			Alerts:     alerts,
		}),
	}
}
