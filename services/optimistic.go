package services

import (
	"time"

	"hotel-pms/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxRetries bounds every optimistic retry loop in the engine before
// the conflict is surfaced to the caller.
const maxRetries = 3

// casUpdateReservation applies updates to the reservation row guarded
// by its version counter. The version bump and the touch of updated_at
// happen in the same statement as the state change, so the whole update
// is visible in one atomic unit. Returns errStaleVersion when another
// writer got there first; callers retry the enclosing transaction.
func casUpdateReservation(tx *gorm.DB, res *models.Reservation, updates map[string]interface{}) error {
	updates["version"] = res.Version + 1
	updates["updated_at"] = time.Now().UTC()

	result := tx.Model(&models.Reservation{}).
		Where("id = ? AND version = ?", res.ID, res.Version).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errStaleVersion
	}
	res.Version++
	return nil
}

// lockForUpdate adds a row-level write lock where the dialect supports
// it. SQLite (used by the test suite) serializes writers on its own and
// rejects FOR UPDATE syntax, so the clause is applied only on MySQL.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
