package models

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel is embedded by every scoped record. BusinessArea is the
// partition key: it is set once at creation from the caller's authorised
// scope and a record is visible only to callers whose scope contains it.
type BaseModel struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	BusinessArea   string         `gorm:"type:varchar(100);not null;index" json:"business_area"`
	IdempotencyKey *string        `gorm:"type:varchar(100);uniqueIndex" json:"-"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy      *uint          `json:"-"`
}

func (m *BaseModel) Base() *BaseModel { return m }

func (m *BaseModel) SetBusinessArea(area string) { m.BusinessArea = area }

func (m *BaseModel) SetIdempotencyKey(key string) {
	if key != "" {
		m.IdempotencyKey = &key
	}
}

// CarryOver preserves the immutable columns of an existing row when a bound
// update payload is saved over it.
func (m *BaseModel) CarryOver(existing *BaseModel) {
	m.ID = existing.ID
	m.CreatedAt = existing.CreatedAt
	m.IdempotencyKey = existing.IdempotencyKey
	if m.BusinessArea == "" {
		m.BusinessArea = existing.BusinessArea
	}
}

// FileMeta is optional attachment metadata, persisted opaquely. The upload
// itself happens elsewhere; the record keeps only the pointer.
type FileMeta struct {
	FileURL  string `gorm:"type:varchar(500)" json:"file_url,omitempty"`
	FileName string `gorm:"type:varchar(255)" json:"file_name,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
	FileType string `gorm:"type:varchar(100)" json:"file_type,omitempty"`
}
