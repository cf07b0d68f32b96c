package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/competence-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Category{},
		&domain.Employee{},
		&domain.Competence{},
	)
}
