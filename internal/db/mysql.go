package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQL returns a connected GORM DB instance. The underlying pool is
// owned by the caller for the lifetime of the process and shared across
// requests; nothing here connects or disconnects per call.
func NewMySQL(dsn string) (*gorm.DB, error) {
	// TranslateError surfaces duplicate-key violations as
	// gorm.ErrDuplicatedKey, which the vote ledger relies on.
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}
