package models

import "time"

type BusinessDocument struct {
	BaseModel
	DocumentName     string     `gorm:"type:varchar(255);not null" json:"document_name" binding:"required"`
	DocumentType     string     `gorm:"type:varchar(100);not null" json:"document_type" binding:"required"` // policy, procedure, work_instruction, form
	Version          string     `gorm:"type:varchar(50)" json:"version"`
	ReviewDate       *time.Time `json:"review_date,omitempty"`
	Status           string     `gorm:"type:varchar(50);default:'draft'" json:"status"`
	StatusPercentage float64    `json:"status_percentage"`
	FileMeta
}

func (BusinessDocument) EntityType() string { return "business_document" }

func (d *BusinessDocument) Snapshot() Snapshot {
	pct := d.StatusPercentage
	return Snapshot{Status: d.Status, StatusPercentage: &pct}
}
