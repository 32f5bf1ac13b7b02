package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Ferdismit7/qmstool-sub000/controllers"
	"github.com/Ferdismit7/qmstool-sub000/middlewares"
	"github.com/Ferdismit7/qmstool-sub000/models"
	"github.com/Ferdismit7/qmstool-sub000/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.RiskControl{},
		&models.QualityObjective{},
		&models.ObjectiveProgress{},
		&models.HistoryRecord{},
	)
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func setupAPIRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	api := router.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	for _, res := range controllers.Resources {
		crud := controllers.NewCrudController(db, res)
		grp := api.Group("/" + res.Path)
		grp.GET("", crud.List)
		grp.POST("", crud.Create)
		grp.GET("/:id", crud.Get)
		grp.PUT("/:id", crud.Update)
		grp.DELETE("/:id", crud.Delete)
		grp.GET("/:id/history", crud.History)
	}
	progressCtrl := controllers.NewObjectiveProgressController(db)
	api.GET("/quality-objectives/:id/progress", progressCtrl.ListProgress)
	api.POST("/quality-objectives/:id/progress", progressCtrl.AddProgress)

	return router
}

func financeToken(t *testing.T) string {
	token, err := utils.GenerateToken(1, "manager", []string{"Finance"})
	assert.NoError(t, err)
	return token
}

func doJSON(router *gin.Engine, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// Scenario: scoped create assigns the caller's primary area and writes a
// created history row.
func TestCreateRiskControl(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupAPIRouter(db)
	token := financeToken(t)

	w := doJSON(router, "POST", "/api/risk-controls", token, map[string]interface{}{
		"process_name":      "Invoice Approval",
		"issue_description": "Late payments",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "Finance", data["business_area"])
	assert.NotZero(t, data["id"])

	var history []models.HistoryRecord
	db.Find(&history)
	assert.Len(t, history, 1)
	assert.Equal(t, models.ChangeCreated, history[0].ChangeType)
}

// Scenario: a validation failure writes neither a row nor a history record.
func TestCreateMissingRequiredField(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupAPIRouter(db)
	token := financeToken(t)

	w := doJSON(router, "POST", "/api/risk-controls", token, map[string]interface{}{
		"process_name":      "Invoice Approval",
		"issue_description": "",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var rows, history int64
	db.Model(&models.RiskControl{}).Count(&rows)
	db.Model(&models.HistoryRecord{}).Count(&history)
	assert.Equal(t, int64(0), rows)
	assert.Equal(t, int64(0), history)
}

func TestMissingTokenUnauthorized(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupAPIRouter(db)

	w := doJSON(router, "GET", "/api/risk-controls", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEmptyScopeUnauthorized(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupAPIRouter(db)

	// Valid identity, zero business areas
	token, err := utils.GenerateToken(2, "contributor", nil)
	assert.NoError(t, err)

	w := doJSON(router, "GET", "/api/risk-controls", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Scenario: updating a record owned by another business area is a 404, so
// callers cannot probe for existence across partitions.
func TestUpdateOutOfScopeIsNotFound(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupAPIRouter(db)
	token := financeToken(t)

	other := models.RiskControl{
		ProcessName:      "Onboarding",
		IssueDescription: "Slow paperwork",
	}
	other.BusinessArea = "HR"
	assert.NoError(t, db.Create(&other).Error)

	w := doJSON(router, "PUT", fmt.Sprintf("/api/risk-controls/%d", other.ID), token, map[string]interface{}{
		"process_name":      "Onboarding",
		"issue_description": "changed",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var unchanged models.RiskControl
	assert.NoError(t, db.First(&unchanged, other.ID).Error)
	assert.Equal(t, "Slow paperwork", unchanged.IssueDescription)
}

// Scenario: moving a record into an area outside the caller's scope is
// forbidden and leaves the row untouched, updated_at included.
func TestUpdateForbiddenAreaMove(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupAPIRouter(db)
	token := financeToken(t)

	w := doJSON(router, "POST", "/api/risk-controls", token, map[string]interface{}{
		"process_name":      "Invoice Approval",
		"issue_description": "Late payments",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.RiskControl
	assert.NoError(t, db.First(&created).Error)

	w = doJSON(router, "PUT", fmt.Sprintf("/api/risk-controls/%d", created.ID), token, map[string]interface{}{
		"process_name":      "Invoice Approval",
		"issue_description": "Late payments",
		"business_area":     "HR",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var after models.RiskControl
	assert.NoError(t, db.First(&after, created.ID).Error)
	assert.Equal(t, "Finance", after.BusinessArea)
	assert.Equal(t, created.UpdatedAt, after.UpdatedAt)

	var history int64
	db.Model(&models.HistoryRecord{}).Count(&history)
	assert.Equal(t, int64(1), history) // only the created row
}

func TestUpdateThenHistoryEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupAPIRouter(db)
	token := financeToken(t)

	w := doJSON(router, "POST", "/api/risk-controls", token, map[string]interface{}{
		"process_name":      "Invoice Approval",
		"issue_description": "Late payments",
		"status":            "open",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var created models.RiskControl
	assert.NoError(t, db.First(&created).Error)

	w = doJSON(router, "PUT", fmt.Sprintf("/api/risk-controls/%d", created.ID), token, map[string]interface{}{
		"process_name":      "Invoice Approval",
		"issue_description": "Late payments",
		"status":            "completed",
		"status_percentage": 100,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "GET", fmt.Sprintf("/api/risk-controls/%d/history", created.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.HistoryRecord `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, models.ChangeCreated, resp.Data[0].ChangeType)
	assert.Equal(t, models.ChangeUpdated, resp.Data[1].ChangeType)
	assert.Equal(t, "completed", resp.Data[1].Status)
}

func TestDeleteTwiceIsNotFound(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupAPIRouter(db)
	token := financeToken(t)

	w := doJSON(router, "POST", "/api/risk-controls", token, map[string]interface{}{
		"process_name":      "Invoice Approval",
		"issue_description": "Late payments",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var created models.RiskControl
	assert.NoError(t, db.First(&created).Error)

	url := fmt.Sprintf("/api/risk-controls/%d", created.ID)
	w = doJSON(router, "DELETE", url, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "DELETE", url, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Deleted rows vanish from the list
	w = doJSON(router, "GET", "/api/risk-controls", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []models.RiskControl `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 0)
}

func TestCreateIdempotencyKeyReplay(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupAPIRouter(db)
	token := financeToken(t)

	payload := map[string]interface{}{
		"process_name":      "Invoice Approval",
		"issue_description": "Late payments",
	}

	send := func() *httptest.ResponseRecorder {
		data, _ := json.Marshal(payload)
		req, _ := http.NewRequest("POST", "/api/risk-controls", bytes.NewBuffer(data))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Idempotency-Key", "client-retry-77")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := send()
	assert.Equal(t, http.StatusCreated, first.Code)

	second := send()
	assert.Equal(t, http.StatusOK, second.Code)

	var count int64
	db.Model(&models.RiskControl{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateIdempotencyKeyFromOtherAreaIsConflict(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupAPIRouter(db)

	send := func(token string, payload map[string]interface{}) *httptest.ResponseRecorder {
		data, _ := json.Marshal(payload)
		req, _ := http.NewRequest("POST", "/api/risk-controls", bytes.NewBuffer(data))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Idempotency-Key", "client-retry-88")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := send(financeToken(t), map[string]interface{}{
		"process_name":      "Invoice Approval",
		"issue_description": "Late payments",
	})
	assert.Equal(t, http.StatusCreated, first.Code)

	hrToken, err := utils.GenerateToken(2, "manager", []string{"HR"})
	assert.NoError(t, err)

	// Same key, different area: conflict, not a replay and not a 500
	second := send(hrToken, map[string]interface{}{
		"process_name":      "Onboarding",
		"issue_description": "Missing forms",
	})
	assert.Equal(t, http.StatusConflict, second.Code)

	var count int64
	db.Model(&models.RiskControl{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
