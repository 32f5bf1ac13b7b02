package database

import (
	"gorm.io/gorm"

	"github.com/Ferdismit7/qmstool-sub000/models"
	"github.com/Ferdismit7/qmstool-sub000/utils"
)

// Migrate creates or updates the schema for every model, history and audit
// tables included.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.UserBusinessArea{},
		&models.HistoryRecord{},
		&models.Notification{},
		&models.RiskControl{},
		&models.BusinessDocument{},
		&models.BusinessImprovement{},
		&models.QualityObjective{},
		&models.ObjectiveProgress{},
		&models.NonConformity{},
		&models.RecordKeepingSystem{},
		&models.ThirdPartyEvaluation{},
		&models.PerformanceMetric{},
		&models.CustomerFeedback{},
	)
	if err != nil {
		return err
	}

	utils.InfoLogger.Printf("Database migration complete")
	return nil
}
