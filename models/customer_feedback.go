package models

type CustomerFeedback struct {
	BaseModel
	Source           string  `gorm:"type:varchar(100);not null" json:"source" binding:"required"` // survey, complaint, review
	Summary          string  `gorm:"type:text;not null" json:"summary" binding:"required"`
	Sentiment        string  `gorm:"type:varchar(20)" json:"sentiment"` // positive, neutral, negative
	ActionTaken      string  `gorm:"type:text" json:"action_taken"`
	Status           string  `gorm:"type:varchar(50);default:'open'" json:"status"`
	StatusPercentage float64 `json:"status_percentage"`
}

func (CustomerFeedback) EntityType() string { return "customer_feedback" }

func (f *CustomerFeedback) Snapshot() Snapshot {
	pct := f.StatusPercentage
	return Snapshot{Status: f.Status, StatusPercentage: &pct}
}
