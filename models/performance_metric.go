package models

type PerformanceMetric struct {
	BaseModel
	MetricName       string  `gorm:"type:varchar(255);not null" json:"metric_name" binding:"required"`
	Frequency        string  `gorm:"type:varchar(50);not null" json:"frequency" binding:"required"` // daily, weekly, monthly, quarterly
	TargetValue      float64 `json:"target_value"`
	ActualValue      float64 `json:"actual_value"`
	Status           string  `gorm:"type:varchar(50);default:'active'" json:"status"`
	StatusPercentage float64 `json:"status_percentage"`
}

func (PerformanceMetric) EntityType() string { return "performance_metric" }

func (p *PerformanceMetric) Snapshot() Snapshot {
	pct := p.StatusPercentage
	return Snapshot{Status: p.Status, StatusPercentage: &pct}
}
