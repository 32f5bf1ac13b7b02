package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Ferdismit7/qmstool-sub000/models"
	"github.com/Ferdismit7/qmstool-sub000/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// Register creates a user together with their business area grants. The
// first listed area becomes the user's primary area and every record they
// create lands in it.
func (uc *UserController) Register(c *gin.Context) {
	type request struct {
		Name          string   `json:"name" binding:"required"`
		Email         string   `json:"email" binding:"required,email"`
		Password      string   `json:"password" binding:"required,min=8"`
		Role          string   `json:"role" binding:"required"` // admin, manager, contributor
		BusinessAreas []string `json:"business_areas"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     req.Role,
	}
	for _, area := range req.BusinessAreas {
		user.BusinessAreas = append(user.BusinessAreas, models.UserBusinessArea{BusinessArea: area})
	}

	if err := uc.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s (role=%s, areas=%d)",
		user.Email, user.Role, len(user.BusinessAreas))

	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"user_id": user.ID,
	})
}

// Login checks credentials and returns a JWT whose claims carry the user's
// business areas. A user with no grants still gets a token; scoped
// endpoints will answer 401 until an admin grants an area.
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Preload("BusinessAreas").Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role, user.AreaNames())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login successful for user: %s", user.Email)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":          token,
		"role":           user.Role,
		"business_areas": user.AreaNames(),
	})
}

// GrantBusinessArea adds an area to a user's scope. Admin only; takes
// effect on the user's next token.
func (uc *UserController) GrantBusinessArea(c *gin.Context) {
	var req struct {
		UserID       uint   `json:"user_id" binding:"required"`
		BusinessArea string `json:"business_area" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.First(&user, req.UserID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}

	grant := models.UserBusinessArea{UserID: req.UserID, BusinessArea: req.BusinessArea}
	if err := uc.DB.Create(&grant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Business area granted", grant)
}
