package database

import (
	"fmt"

	"gorm.io/gorm"

	"autoshop-backend/models"
)

// Migrate applies idempotent schema migrations:
// - AutoMigrate (tables/columns)
// - Money column types (NUMERIC(15,2))
// - Helpful indexes
// - Basic CHECK constraints on stock and money columns
// - Idempotency keys table + unique index
func Migrate(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(
			&models.Branch{},
			&models.Wallet{},
			&models.User{},
			&models.Supplier{},
			&models.Client{},
			&models.Employee{},
			&models.Product{},
			&models.Service{},
			&models.Car{},
			&models.Order{},
			&models.OrderService{},
			&models.OrderProduct{},
			&models.ImportList{},
			&models.ImportProduct{},
			&models.Debt{},
			&models.Lending{},
			&models.ExpenseType{},
			&models.Expense{},
			&models.Salary{},
			&models.BranchFundTransfer{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		// --- Enforce money columns as NUMERIC(15,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE branches         ALTER COLUMN balance         TYPE numeric(15,2)`,
			`ALTER TABLE wallets          ALTER COLUMN balance         TYPE numeric(15,2)`,
			`ALTER TABLE suppliers        ALTER COLUMN debt            TYPE numeric(15,2)`,
			`ALTER TABLE clients          ALTER COLUMN lending         TYPE numeric(15,2)`,
			`ALTER TABLE employees        ALTER COLUMN balance         TYPE numeric(15,2)`,
			`ALTER TABLE products         ALTER COLUMN arrival_price   TYPE numeric(15,2)`,
			`ALTER TABLE products         ALTER COLUMN sell_price      TYPE numeric(15,2)`,
			`ALTER TABLE services         ALTER COLUMN price           TYPE numeric(15,2)`,
			`ALTER TABLE orders           ALTER COLUMN overall_total   TYPE numeric(15,2)`,
			`ALTER TABLE orders           ALTER COLUMN total           TYPE numeric(15,2)`,
			`ALTER TABLE orders           ALTER COLUMN paid            TYPE numeric(15,2)`,
			`ALTER TABLE orders           ALTER COLUMN landing         TYPE numeric(15,2)`,
			`ALTER TABLE order_services   ALTER COLUMN price           TYPE numeric(15,2)`,
			`ALTER TABLE order_services   ALTER COLUMN kpi_accrued     TYPE numeric(15,2)`,
			`ALTER TABLE order_services   ALTER COLUMN total           TYPE numeric(15,2)`,
			`ALTER TABLE order_products   ALTER COLUMN sell_price      TYPE numeric(15,2)`,
			`ALTER TABLE order_products   ALTER COLUMN commission      TYPE numeric(15,2)`,
			`ALTER TABLE order_products   ALTER COLUMN total           TYPE numeric(15,2)`,
			`ALTER TABLE import_lists     ALTER COLUMN total           TYPE numeric(15,2)`,
			`ALTER TABLE import_lists     ALTER COLUMN paid            TYPE numeric(15,2)`,
			`ALTER TABLE import_lists     ALTER COLUMN debt            TYPE numeric(15,2)`,
			`ALTER TABLE import_products  ALTER COLUMN total_summ      TYPE numeric(15,2)`,
			`ALTER TABLE debts            ALTER COLUMN debt_amount     TYPE numeric(15,2)`,
			`ALTER TABLE lendings         ALTER COLUMN lending_amount  TYPE numeric(15,2)`,
			`ALTER TABLE expenses         ALTER COLUMN amount          TYPE numeric(15,2)`,
			`ALTER TABLE salaries         ALTER COLUMN amount          TYPE numeric(15,2)`,
			`ALTER TABLE branch_fund_transfers ALTER COLUMN amount     TYPE numeric(15,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_wallets_name ON wallets (name)`,
			`CREATE INDEX IF NOT EXISTS idx_orders_branch_created ON orders (branch_id, created_at)`,
			`CREATE INDEX IF NOT EXISTS idx_order_services_order ON order_services (order_id)`,
			`CREATE INDEX IF NOT EXISTS idx_order_products_order ON order_products (order_id)`,
			`CREATE INDEX IF NOT EXISTS idx_import_products_list ON import_products (import_list_id)`,
			`CREATE INDEX IF NOT EXISTS idx_products_branch_name ON products (branch_id, name)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			// Stock never goes negative
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'products'::regclass
					  AND conname  = 'chk_products_amount_nonneg'
				) THEN
					ALTER TABLE products
					ADD CONSTRAINT chk_products_amount_nonneg
					CHECK (amount >= 0);
				END IF;
			END $$;`,
			// Supplier debt never goes negative
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'suppliers'::regclass
					  AND conname  = 'chk_suppliers_debt_nonneg'
				) THEN
					ALTER TABLE suppliers
					ADD CONSTRAINT chk_suppliers_debt_nonneg
					CHECK (debt >= 0);
				END IF;
			END $$;`,
			// Ledger event amounts are positive
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'debts'::regclass
					  AND conname  = 'chk_debts_amount_pos'
				) THEN
					ALTER TABLE debts
					ADD CONSTRAINT chk_debts_amount_pos
					CHECK (debt_amount > 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'lendings'::regclass
					  AND conname  = 'chk_lendings_amount_pos'
				) THEN
					ALTER TABLE lendings
					ADD CONSTRAINT chk_lendings_amount_pos
					CHECK (lending_amount > 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'expenses'::regclass
					  AND conname  = 'chk_expenses_amount_pos'
				) THEN
					ALTER TABLE expenses
					ADD CONSTRAINT chk_expenses_amount_pos
					CHECK (amount > 0);
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
