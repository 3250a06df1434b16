package db

import (
	"gorm.io/gorm"
)

// NotDeletedWithAlias filters out soft-deleted joined records. Joins bypass
// model-level soft delete filtering, so the condition must be added with the
// joined table's alias.
func NotDeletedWithAlias(alias string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(alias + ".deleted_at IS NULL")
	}
}
