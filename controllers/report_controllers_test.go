package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/Ferdismit7/qmstool-sub000/controllers"
	"github.com/Ferdismit7/qmstool-sub000/middlewares"
	"github.com/Ferdismit7/qmstool-sub000/models"
	"github.com/Ferdismit7/qmstool-sub000/report"
	"github.com/Ferdismit7/qmstool-sub000/utils"
)

func setupReportRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	reportCtrl := controllers.NewReportController(db)
	api := router.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	api.GET("/management-report", reportCtrl.GetReport)
	api.GET("/management-report/pdf", reportCtrl.GetReportPDF)
	return router
}

func seedReportModels(t *testing.T, db *gorm.DB) {
	err := db.AutoMigrate(
		&models.BusinessDocument{},
		&models.BusinessImprovement{},
		&models.NonConformity{},
		&models.RecordKeepingSystem{},
		&models.ThirdPartyEvaluation{},
		&models.PerformanceMetric{},
		&models.CustomerFeedback{},
	)
	assert.NoError(t, err)
}

func TestManagementReportScopeRules(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	seedReportModels(t, db)
	router := setupReportRouter(db)
	token := financeToken(t)

	rec := models.RiskControl{
		ProcessName:      "Invoice Approval",
		IssueDescription: "Late payments",
		StatusPercentage: 60,
	}
	rec.BusinessArea = "Finance"
	assert.NoError(t, db.Create(&rec).Error)

	// Defaults to the caller's primary area
	w := doJSON(router, "GET", "/api/management-report", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data report.ReportSummary `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Finance", resp.Data.BusinessArea)

	// Asking for an area outside scope is forbidden
	w = doJSON(router, "GET", "/api/management-report?businessArea=HR", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// No token at all
	w = doJSON(router, "GET", "/api/management-report", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestManagementReportPDFDownload(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	seedReportModels(t, db)
	router := setupReportRouter(db)
	token := financeToken(t)

	rec := models.RiskControl{
		ProcessName:      "Invoice Approval",
		IssueDescription: "Late payments",
		StatusPercentage: 60,
	}
	rec.BusinessArea = "Finance"
	assert.NoError(t, db.Create(&rec).Error)

	w := doJSON(router, "GET", "/api/management-report/pdf", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "management-report-Finance")
	assert.Equal(t, "%PDF", w.Body.String()[:4])
}
