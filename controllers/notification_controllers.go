package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Ferdismit7/qmstool-sub000/middlewares"
	"github.com/Ferdismit7/qmstool-sub000/models"
	"github.com/Ferdismit7/qmstool-sub000/store"
	"github.com/Ferdismit7/qmstool-sub000/utils"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetNotifications lists alerts for the caller's business areas, newest
// first.
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	scope := middlewares.AreasFrom(c)
	if len(scope) == 0 {
		utils.RespondError(c, http.StatusUnauthorized, store.ErrUnauthorized)
		return
	}

	q := nc.DB.Where("business_area IN ?", scope)
	if c.Query("unread") == "true" {
		q = q.Where("`read` = ?", false)
	}

	var notifications []models.Notification
	if err := q.Order("created_at DESC").Find(&notifications).Error; err != nil {
		utils.ErrorLogger.Printf("Notification list error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications", notifications)
}

// MarkRead flags one notification as read.
func (nc *NotificationController) MarkRead(c *gin.Context) {
	scope := middlewares.AreasFrom(c)
	if len(scope) == 0 {
		utils.RespondError(c, http.StatusUnauthorized, store.ErrUnauthorized)
		return
	}

	id, err := recordID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := nc.DB.Model(&models.Notification{}).
		Where("id = ? AND business_area IN ?", id, scope).
		Update("read", true)
	if res.Error != nil {
		utils.ErrorLogger.Printf("Notification update error: %v", res.Error)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, store.ErrNotFound)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification marked read", gin.H{"id": id})
}
