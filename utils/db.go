package utils

import (
	"sync"

	"gorm.io/gorm"
)

var (
	db *gorm.DB
	mu sync.RWMutex
)

// InitDB stores the shared database handle for code that runs outside a
// request, such as the review monitor.
func InitDB(database *gorm.DB) {
	mu.Lock()
	defer mu.Unlock()
	if db == nil {
		db = database
	}
}

// GetDB returns the shared database handle.
func GetDB() *gorm.DB {
	mu.RLock()
	defer mu.RUnlock()
	return db
}
