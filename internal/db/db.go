package db

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the sqlite database file. Foreign-key enforcement is off by
// default in sqlite, so the DSN switches it on; TranslateError turns driver
// integrity failures into gorm's typed errors.
func Connect(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
	})
}
