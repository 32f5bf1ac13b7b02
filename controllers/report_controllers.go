package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Ferdismit7/qmstool-sub000/middlewares"
	"github.com/Ferdismit7/qmstool-sub000/report"
	"github.com/Ferdismit7/qmstool-sub000/store"
	"github.com/Ferdismit7/qmstool-sub000/utils"
)

type ReportController struct {
	DB      *gorm.DB
	Weights report.Weights
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db, Weights: report.LoadWeights()}
}

// resolveArea picks the business area to report on: the businessArea query
// param when present (must be in the caller's scope), else the caller's
// primary area.
func (rc *ReportController) resolveArea(c *gin.Context) (string, bool) {
	scope := middlewares.AreasFrom(c)
	if len(scope) == 0 {
		utils.RespondError(c, http.StatusUnauthorized, store.ErrUnauthorized)
		return "", false
	}

	area := c.Query("businessArea")
	if area == "" {
		return scope[0], true
	}
	if !inScope(scope, area) {
		utils.RespondError(c, http.StatusForbidden, store.ErrForbidden)
		return "", false
	}
	return area, true
}

// GetReport returns the aggregated management report for one business area.
func (rc *ReportController) GetReport(c *gin.Context) {
	area, ok := rc.resolveArea(c)
	if !ok {
		return
	}

	summary := report.Summarize(rc.DB, area, rc.Weights)
	utils.RespondJSON(c, http.StatusOK, "Management report", summary)
}

// GetReportPDF renders the same summary server-side as a PDF download.
func (rc *ReportController) GetReportPDF(c *gin.Context) {
	area, ok := rc.resolveArea(c)
	if !ok {
		return
	}

	summary := report.Summarize(rc.DB, area, rc.Weights)
	pdfBytes, err := report.BuildPDF(summary)
	if err != nil {
		utils.ErrorLogger.Printf("Report PDF error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	filename := fmt.Sprintf("management-report-%s-%s.pdf",
		area, summary.GeneratedAt.Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
