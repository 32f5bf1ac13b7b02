package models

type NonConformity struct {
	BaseModel
	Title            string  `gorm:"type:varchar(255);not null" json:"title" binding:"required"`
	Description      string  `gorm:"type:text;not null" json:"description" binding:"required"`
	Severity         string  `gorm:"type:varchar(20);default:'minor'" json:"severity"` // minor, major, critical
	CorrectiveAction string  `gorm:"type:text" json:"corrective_action"`
	Status           string  `gorm:"type:varchar(50);default:'open'" json:"status"`
	StatusPercentage float64 `json:"status_percentage"`
	FileMeta
}

func (NonConformity) EntityType() string { return "non_conformity" }

func (n *NonConformity) Snapshot() Snapshot {
	pct := n.StatusPercentage
	return Snapshot{Status: n.Status, StatusPercentage: &pct}
}
