package database

import (
	"gorm.io/gorm"
)

// OwnedBy restricts a task query to one user's rows.
func OwnedBy(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tasks.user_id = ?", userID)
	}
}

// OrderBy sorts by column, then by id so equal keys keep creation order.
// An empty column leaves the store order untouched.
func OrderBy(column string, desc bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if column == "" {
			return db
		}
		direction := "ASC"
		if desc {
			direction = "DESC"
		}
		return db.Order("tasks." + column + " " + direction).Order("tasks.id ASC")
	}
}
