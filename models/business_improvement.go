package models

type BusinessImprovement struct {
	BaseModel
	Title            string  `gorm:"type:varchar(255);not null" json:"title" binding:"required"`
	Description      string  `gorm:"type:text;not null" json:"description" binding:"required"`
	Benefit          string  `gorm:"type:text" json:"benefit"`
	Status           string  `gorm:"type:varchar(50);default:'proposed'" json:"status"`
	StatusPercentage float64 `json:"status_percentage"`
}

func (BusinessImprovement) EntityType() string { return "business_improvement" }

func (b *BusinessImprovement) Snapshot() Snapshot {
	pct := b.StatusPercentage
	return Snapshot{Status: b.Status, StatusPercentage: &pct}
}
