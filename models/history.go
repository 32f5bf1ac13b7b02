package models

import "time"

// Change types recorded on history rows.
const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

// HistoryRecord is an append-only audit row. One is written in the same
// transaction as every create, update and soft delete of a scoped record;
// rows are never updated or removed afterwards, so the trail outlives the
// record it describes. BusinessArea is denormalized from the record so
// audit queries stay scope-safe without a join.
type HistoryRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EntityType   string    `gorm:"type:varchar(100);not null;index:idx_history_entity" json:"entity_type"`
	EntityID     uint      `gorm:"not null;index:idx_history_entity" json:"entity_id"`
	BusinessArea string    `gorm:"type:varchar(100);not null;index" json:"business_area"`
	ChangeType   string    `gorm:"type:varchar(20);not null" json:"change_type"`
	ChangeDate   time.Time `gorm:"not null" json:"change_date"`

	// Snapshot of the salient fields at the time of the change.
	Status           string   `gorm:"type:varchar(50)" json:"status"`
	StatusPercentage *float64 `json:"status_percentage,omitempty"`
	InherentRisk     *int     `json:"inherent_risk,omitempty"`
	ResidualRisk     *int     `json:"residual_risk,omitempty"`
}

// Snapshot is the denormalized copy of a record's salient fields that goes
// onto its history rows.
type Snapshot struct {
	Status           string
	StatusPercentage *float64
	InherentRisk     *int
	ResidualRisk     *int
}
