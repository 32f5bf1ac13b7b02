package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Ferdismit7/qmstool-sub000/middlewares"
	"github.com/Ferdismit7/qmstool-sub000/models"
	"github.com/Ferdismit7/qmstool-sub000/store"
	"github.com/Ferdismit7/qmstool-sub000/utils"
)

// ObjectiveProgressController serves the monthly progress sub-resource of a
// quality objective. Scope is enforced through the owning objective.
type ObjectiveProgressController struct {
	DB    *gorm.DB
	Store *store.Store
}

func NewObjectiveProgressController(db *gorm.DB) *ObjectiveProgressController {
	return &ObjectiveProgressController{DB: db, Store: store.New(db)}
}

func (opc *ObjectiveProgressController) loadObjective(c *gin.Context) (*models.QualityObjective, bool) {
	scope := middlewares.AreasFrom(c)
	if len(scope) == 0 {
		utils.RespondError(c, http.StatusUnauthorized, store.ErrUnauthorized)
		return nil, false
	}

	id, err := recordID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return nil, false
	}

	var obj models.QualityObjective
	if err := opc.Store.Get(scope, id, &obj); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
		} else {
			utils.ErrorLogger.Printf("Quality objective lookup error: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		}
		return nil, false
	}
	return &obj, true
}

// ListProgress returns the objective's monthly entries, oldest month first.
func (opc *ObjectiveProgressController) ListProgress(c *gin.Context) {
	obj, ok := opc.loadObjective(c)
	if !ok {
		return
	}

	var entries []models.ObjectiveProgress
	if err := opc.DB.Where("objective_id = ?", obj.ID).
		Order("month ASC, id ASC").
		Find(&entries).Error; err != nil {
		utils.ErrorLogger.Printf("Objective progress list error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Objective progress", entries)
}

// AddProgress appends one monthly entry and refreshes the objective's
// status percentage to the latest month on record, so backfilling an
// earlier month never regresses the objective. The entry, the objective
// update and its history row commit together.
func (opc *ObjectiveProgressController) AddProgress(c *gin.Context) {
	obj, ok := opc.loadObjective(c)
	if !ok {
		return
	}

	var req struct {
		Month      string  `json:"month" binding:"required"`
		Percentage float64 `json:"percentage"`
		Notes      string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if _, err := time.Parse("2006-01", req.Month); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("month must be formatted YYYY-MM"))
		return
	}
	if req.Percentage < 0 || req.Percentage > 100 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("percentage must be between 0 and 100"))
		return
	}

	entry := models.ObjectiveProgress{
		ObjectiveID: obj.ID,
		Month:       req.Month,
		Percentage:  req.Percentage,
		Notes:       req.Notes,
	}

	err := opc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		var latest models.ObjectiveProgress
		if err := tx.Where("objective_id = ?", obj.ID).
			Order("month DESC, id DESC").
			First(&latest).Error; err != nil {
			return err
		}
		obj.StatusPercentage = latest.Percentage
		return store.New(tx).Update(obj)
	})
	if err != nil {
		utils.ErrorLogger.Printf("Objective progress create error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Objective progress recorded", entry)
}
