package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Ferdismit7/qmstool-sub000/events"
	"github.com/Ferdismit7/qmstool-sub000/models"
	"github.com/Ferdismit7/qmstool-sub000/utils"
)

// ReviewMonitor periodically scans business documents whose review date has
// passed and raises a notification per overdue document. The notification
// is persisted and pushed to connected dashboard clients of the document's
// business area.
type ReviewMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewReviewMonitor(db *gorm.DB) *ReviewMonitor {
	return &ReviewMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Hour,
	}
}

func (rm *ReviewMonitor) Start() {
	go func() {
		ticker := time.NewTicker(rm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rm.CheckOverdue()
			case <-rm.StopChan:
				return
			}
		}
	}()
}

func (rm *ReviewMonitor) Stop() {
	close(rm.StopChan)
}

// CheckOverdue runs one scan. Exposed so tests and a startup pass can call
// it directly.
func (rm *ReviewMonitor) CheckOverdue() {
	var docs []models.BusinessDocument
	err := rm.DB.Where("review_date IS NOT NULL AND review_date < ? AND status <> ?",
		time.Now(), "archived").
		Find(&docs).Error
	if err != nil {
		utils.ErrorLogger.Printf("Review monitor scan failed: %v", err)
		return
	}

	for _, doc := range docs {
		title := fmt.Sprintf("Document review overdue: %s", doc.DocumentName)

		// One open alert per document; skip if an unread one exists.
		var existing int64
		rm.DB.Model(&models.Notification{}).
			Where("business_area = ? AND title = ? AND `read` = ?", doc.BusinessArea, title, false).
			Count(&existing)
		if existing > 0 {
			continue
		}

		notification := models.Notification{
			BusinessArea: doc.BusinessArea,
			Title:        title,
			Message: fmt.Sprintf("%s (version %s) was due for review on %s",
				doc.DocumentName, doc.Version, doc.ReviewDate.Format("2006-01-02")),
		}
		if err := rm.DB.Create(&notification).Error; err != nil {
			utils.ErrorLogger.Printf("Review monitor notification failed: %v", err)
			continue
		}

		events.BroadcastNotification(doc.BusinessArea, notification.Title, notification.Message)
	}
}
