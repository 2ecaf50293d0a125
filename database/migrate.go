package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate applies the idempotent schema hardening that AutoMigrate does not
// cover:
// - Money/quantity column types (NUMERIC)
// - Indexes (transactions.billno, stock name, adjustments, idempotency keys)
// - Basic CHECK constraints (non-negative prices and paid amounts)
//
// Note: stock_items.quantity deliberately has NO non-negative CHECK; sales
// may drive it below zero and the dashboard shows the negative value as-is.
func Migrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		// --- Enforce numeric column types (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE transactions ALTER COLUMN quantity      TYPE numeric(14,3)`,
			`ALTER TABLE transactions ALTER COLUMN cost_price    TYPE numeric(12,2)`,
			`ALTER TABLE transactions ALTER COLUMN selling_price TYPE numeric(12,2)`,
			`ALTER TABLE transactions ALTER COLUMN paid_cash     TYPE numeric(12,2)`,
			`ALTER TABLE transactions ALTER COLUMN paid_online   TYPE numeric(12,2)`,
			`ALTER TABLE stock_items  ALTER COLUMN quantity      TYPE numeric(14,3)`,
			`ALTER TABLE stock_items  ALTER COLUMN price         TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("numeric type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE INDEX IF NOT EXISTS idx_transactions_billno ON transactions (bill_no)`,
			`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions (date)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_line_id ON transactions (line_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_stock_items_name ON stock_items (name)`,
			`CREATE INDEX IF NOT EXISTS idx_stock_adjustments_billno ON stock_adjustments (bill_no)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'transactions'::regclass
					  AND conname  = 'chk_transactions_prices_nonneg'
				) THEN
					ALTER TABLE transactions
					ADD CONSTRAINT chk_transactions_prices_nonneg
					CHECK (cost_price >= 0 AND selling_price >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'transactions'::regclass
					  AND conname  = 'chk_transactions_paid_nonneg'
				) THEN
					ALTER TABLE transactions
					ADD CONSTRAINT chk_transactions_paid_nonneg
					CHECK (paid_cash >= 0 AND paid_online >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'stock_items'::regclass
					  AND conname  = 'chk_stock_items_price_nonneg'
				) THEN
					ALTER TABLE stock_items
					ADD CONSTRAINT chk_stock_items_price_nonneg
					CHECK (price >= 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
