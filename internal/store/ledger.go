package store

import (
	"gorm.io/gorm"

	"hotel-occupancy-backend/internal/model"
)

// ConsumptionLedger is the append-only charge log backing an occupation's
// running total. The total is always re-derived with Sum over the full ledger
// rather than incremented, so two interleaved appends cannot drift the
// materialized figure: whichever write commits last re-reads everything the
// other one wrote.
type ConsumptionLedger struct{}

// Append persists one charge. Rows are never updated afterwards.
func (ConsumptionLedger) Append(tx *gorm.DB, c *model.Consumption) error {
	return tx.Create(c).Error
}

// Sum returns the ledger total for an occupation.
func (ConsumptionLedger) Sum(tx *gorm.DB, occupationID int64) (model.Cents, error) {
	var total int64
	err := tx.Model(&model.Consumption{}).
		Where("occupation_id = ?", occupationID).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	return model.Cents(total), err
}

// Purge removes every charge for an occupation. Only occupation deletion may
// do this; individual rows are never removed.
func (ConsumptionLedger) Purge(tx *gorm.DB, occupationID int64) error {
	return tx.Where("occupation_id = ?", occupationID).Delete(&model.Consumption{}).Error
}
