package models

type RecordKeepingSystem struct {
	BaseModel
	SystemName       string  `gorm:"type:varchar(255);not null" json:"system_name" binding:"required"`
	Description      string  `gorm:"type:text;not null" json:"description" binding:"required"`
	RetentionMonths  int     `json:"retention_months"`
	Status           string  `gorm:"type:varchar(50);default:'active'" json:"status"`
	StatusPercentage float64 `json:"status_percentage"`
}

func (RecordKeepingSystem) EntityType() string { return "record_keeping_system" }

func (r *RecordKeepingSystem) Snapshot() Snapshot {
	pct := r.StatusPercentage
	return Snapshot{Status: r.Status, StatusPercentage: &pct}
}
