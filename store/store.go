package store

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/Ferdismit7/qmstool-sub000/models"
)

// Record is implemented by every scoped entity via an embedded
// models.BaseModel plus per-type EntityType/Snapshot methods.
type Record interface {
	Base() *models.BaseModel
	EntityType() string
	Snapshot() models.Snapshot
}

// Store is the scoped CRUD engine shared by all modules. Every read is
// filtered to the caller's business areas and to non-deleted rows; every
// mutation writes its history row in the same transaction, so a record can
// never exist without its audit trail.
type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// List fills dest (a pointer to a slice of a concrete record type) with all
// active rows in scope, newest-created first. limit <= 0 means no limit.
func (s *Store) List(scope []string, dest interface{}, limit, offset int) error {
	if len(scope) == 0 {
		return ErrUnauthorized
	}
	q := s.DB.Where("business_area IN ?", scope).
		Order("created_at DESC, id DESC")
	if offset > 0 && limit <= 0 {
		// SQL requires a LIMIT clause for OFFSET to take effect
		limit = math.MaxInt32
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	return q.Find(dest).Error
}

// Get loads one active row in scope into rec. A missing id and an id owned
// by another business area both come back as ErrNotFound.
func (s *Store) Get(scope []string, id uint, rec Record) error {
	if len(scope) == 0 {
		return ErrUnauthorized
	}
	err := s.DB.Where("business_area IN ?", scope).First(rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Create inserts rec into the caller's primary business area (scope[0]) and
// appends a created history row in the same transaction. When idemKey
// matches a row already present in scope the original row is loaded into
// rec instead and replayed=true; nothing new is written. The key lookup
// itself ignores scope and soft deletion, because the unique index does
// too: a key held by a row the caller cannot replay is ErrConflict, never
// a raw duplicate-key failure.
func (s *Store) Create(scope []string, rec Record, idemKey string) (replayed bool, err error) {
	if len(scope) == 0 {
		return false, ErrUnauthorized
	}

	if idemKey != "" {
		err := s.DB.Unscoped().Where("idempotency_key = ?", idemKey).First(rec).Error
		if err == nil {
			base := rec.Base()
			if base.DeletedAt.Valid || !containsArea(scope, base.BusinessArea) {
				return false, ErrConflict
			}
			return true, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}
		rec.Base().SetIdempotencyKey(idemKey)
	}

	// The store assigns the id and timestamps, never the payload.
	rec.Base().ID = 0
	rec.Base().CreatedAt = time.Time{}
	rec.Base().UpdatedAt = time.Time{}
	rec.Base().SetBusinessArea(scope[0])

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return err
		}
		return tx.Create(historyFor(rec, models.ChangeCreated)).Error
	})
	return false, err
}

// Update saves rec over the row it was loaded from and appends an updated
// history row in the same transaction. The caller does the scoped existence
// check and carries over the immutable columns before calling.
func (s *Store) Update(rec Record) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(rec).Error; err != nil {
			return err
		}
		return tx.Create(historyFor(rec, models.ChangeUpdated)).Error
	})
}

// SoftDelete marks the row deleted and records who did it, then appends a
// deleted history row. Deleting a row that is already deleted, missing, or
// outside scope returns ErrNotFound.
func (s *Store) SoftDelete(scope []string, id uint, rec Record, actorID uint) error {
	if err := s.Get(scope, id, rec); err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(rec).
			Where("deleted_at IS NULL").
			Updates(map[string]interface{}{
				"deleted_at": time.Now(),
				"deleted_by": actorID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Create(historyFor(rec, models.ChangeDeleted)).Error
	})
}

// History returns the audit rows for one record, oldest first. The rows are
// scope-checked through their denormalized business area.
func (s *Store) History(scope []string, entityType string, entityID uint) ([]models.HistoryRecord, error) {
	if len(scope) == 0 {
		return nil, ErrUnauthorized
	}
	var rows []models.HistoryRecord
	err := s.DB.Where("entity_type = ? AND entity_id = ? AND business_area IN ?",
		entityType, entityID, scope).
		Order("change_date ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func containsArea(scope []string, area string) bool {
	for _, a := range scope {
		if a == area {
			return true
		}
	}
	return false
}

func historyFor(rec Record, changeType string) *models.HistoryRecord {
	snap := rec.Snapshot()
	return &models.HistoryRecord{
		EntityType:       rec.EntityType(),
		EntityID:         rec.Base().ID,
		BusinessArea:     rec.Base().BusinessArea,
		ChangeType:       changeType,
		ChangeDate:       time.Now(),
		Status:           snap.Status,
		StatusPercentage: snap.StatusPercentage,
		InherentRisk:     snap.InherentRisk,
		ResidualRisk:     snap.ResidualRisk,
	}
}
