package models

// RiskControl tracks one process risk and the control mitigating it.
// Risk scores are likelihood x impact on a 1-25 matrix.
type RiskControl struct {
	BaseModel
	ProcessName         string  `gorm:"type:varchar(255);not null" json:"process_name" binding:"required"`
	ActivityDescription string  `gorm:"type:text" json:"activity_description"`
	IssueDescription    string  `gorm:"type:text;not null" json:"issue_description" binding:"required"`
	InherentRisk        int     `json:"inherent_risk"`
	ResidualRisk        int     `json:"residual_risk"`
	ControlDescription  string  `gorm:"type:text" json:"control_description"`
	ControlType         string  `gorm:"type:varchar(50)" json:"control_type"` // preventive, detective, corrective
	Status              string  `gorm:"type:varchar(50);default:'open'" json:"status"`
	StatusPercentage    float64 `json:"status_percentage"`
	FileMeta
}

func (RiskControl) EntityType() string { return "risk_control" }

func (rc *RiskControl) Snapshot() Snapshot {
	ir, rr := rc.InherentRisk, rc.ResidualRisk
	pct := rc.StatusPercentage
	return Snapshot{
		Status:           rc.Status,
		StatusPercentage: &pct,
		InherentRisk:     &ir,
		ResidualRisk:     &rr,
	}
}
