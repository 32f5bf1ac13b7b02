package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Ferdismit7/qmstool-sub000/controllers"
	"github.com/Ferdismit7/qmstool-sub000/models"
	"github.com/Ferdismit7/qmstool-sub000/utils"
)

func setupUserTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.UserBusinessArea{}); err != nil {
		t.Fatal(err)
	}
	return db
}

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	userCtrl := controllers.NewUserController(db)
	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)
	return router
}

func TestRegisterAndLoginCarriesBusinessAreas(t *testing.T) {
	utils.InitLogger()
	db := setupUserTestDB(t)
	router := setupUserRouter(db)

	w := doJSON(router, "POST", "/register", "", map[string]interface{}{
		"name":           "Quality Manager",
		"email":          "qm@example.com",
		"password":       "verysecret1",
		"role":           "manager",
		"business_areas": []string{"Finance", "Operations"},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "POST", "/login", "", map[string]interface{}{
		"email":    "qm@example.com",
		"password": "verysecret1",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token         string   `json:"token"`
			BusinessAreas []string `json:"business_areas"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, []string{"Finance", "Operations"}, resp.Data.BusinessAreas)

	claims, err := utils.ParseToken(resp.Data.Token)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Finance", "Operations"}, claims.BusinessAreas)
}

func TestLoginWrongPassword(t *testing.T) {
	utils.InitLogger()
	db := setupUserTestDB(t)
	router := setupUserRouter(db)

	w := doJSON(router, "POST", "/register", "", map[string]interface{}{
		"name":     "Someone",
		"email":    "someone@example.com",
		"password": "verysecret1",
		"role":     "contributor",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "POST", "/login", "", map[string]interface{}{
		"email":    "someone@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
