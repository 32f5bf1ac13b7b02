package models

import "time"

type QualityObjective struct {
	BaseModel
	Objective        string              `gorm:"type:text;not null" json:"objective" binding:"required"`
	KPI              string              `gorm:"type:varchar(255);not null" json:"kpi" binding:"required"`
	TargetDate       *time.Time          `json:"target_date,omitempty"`
	Status           string              `gorm:"type:varchar(50);default:'open'" json:"status"`
	StatusPercentage float64             `json:"status_percentage"`
	ProgressEntries  []ObjectiveProgress `gorm:"foreignKey:ObjectiveID" json:"progress_entries,omitempty"`
}

func (QualityObjective) EntityType() string { return "quality_objective" }

func (q *QualityObjective) Snapshot() Snapshot {
	pct := q.StatusPercentage
	return Snapshot{Status: q.Status, StatusPercentage: &pct}
}

// ObjectiveProgress is one monthly progress entry attached to a quality
// objective. Entries are append-only; scope is enforced through the owning
// objective, never stored here.
type ObjectiveProgress struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ObjectiveID uint      `gorm:"not null;index" json:"objective_id"`
	Month       string    `gorm:"type:varchar(7);not null" json:"month" binding:"required"` // YYYY-MM
	Percentage  float64   `json:"percentage"`
	Notes       string    `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}
