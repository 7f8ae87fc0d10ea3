package inmemdb

import (
	"sync"

	"github.com/trezcool/aimforms/core/location"
)

type (
	DB struct {
		mutex     sync.RWMutex
		pkCount   int
		countries map[int]*location.Country
		states    map[int]*location.State
		cities    map[int]*location.City
	}
)

func Open() *DB {
	return &DB{
		countries: make(map[int]*location.Country),
		states:    make(map[int]*location.State),
		cities:    make(map[int]*location.City),
	}
}

// nextID must be called with the write lock held.
func (db *DB) nextID() int {
	db.pkCount++
	return db.pkCount
}
