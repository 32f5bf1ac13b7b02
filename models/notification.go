package models

import "time"

// Notification is a persisted alert for a business area, e.g. a document
// whose review date has passed. The websocket hub broadcasts the same
// payload; this row is the durable copy.
type Notification struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BusinessArea string    `gorm:"type:varchar(100);not null;index" json:"business_area"`
	Title        string    `gorm:"type:varchar(255)" json:"title"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	Read         bool      `gorm:"default:false" json:"read"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}
