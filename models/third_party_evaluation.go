package models

import "time"

type ThirdPartyEvaluation struct {
	BaseModel
	SupplierName     string     `gorm:"type:varchar(255);not null" json:"supplier_name" binding:"required"`
	Findings         string     `gorm:"type:text;not null" json:"findings" binding:"required"`
	EvaluationDate   *time.Time `json:"evaluation_date,omitempty"`
	Rating           int        `json:"rating"` // 1-5
	Status           string     `gorm:"type:varchar(50);default:'open'" json:"status"`
	StatusPercentage float64    `json:"status_percentage"`
	FileMeta
}

func (ThirdPartyEvaluation) EntityType() string { return "third_party_evaluation" }

func (t *ThirdPartyEvaluation) Snapshot() Snapshot {
	pct := t.StatusPercentage
	return Snapshot{Status: t.Status, StatusPercentage: &pct}
}
