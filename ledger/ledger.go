package ledger

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"autoshop-backend/models"
)

var hundred = decimal.NewFromInt(100)

// forUpdate adds a row lock on dialects that support it. SQLite (used by the
// test suite) serializes writers on its own and rejects FOR UPDATE.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func lockBranch(tx *gorm.DB, id uint) (*models.Branch, error) {
	var branch models.Branch
	if err := forUpdate(tx).First(&branch, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "branch", id)
	}
	return &branch, nil
}

func lockSupplier(tx *gorm.DB, id, branchId uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := forUpdate(tx).First(&supplier, "id = ? AND branch_id = ?", id, branchId).Error; err != nil {
		return nil, notFoundOr(err, "supplier", id)
	}
	return &supplier, nil
}

func lockClient(tx *gorm.DB, id uint) (*models.Client, error) {
	var client models.Client
	if err := forUpdate(tx).First(&client, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "client", id)
	}
	return &client, nil
}

func lockEmployee(tx *gorm.DB, id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := forUpdate(tx).First(&employee, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "employee", id)
	}
	return &employee, nil
}

func lockProduct(tx *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	if err := forUpdate(tx).First(&product, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "product", id)
	}
	return &product, nil
}

// lockWallet loads the singleton wallet row under a row lock.
func lockWallet(tx *gorm.DB) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := forUpdate(tx).First(&wallet, "name = ?", models.WalletName).Error; err != nil {
		return nil, notFoundOr(err, "wallet", models.WalletName)
	}
	return &wallet, nil
}

// warehouseValues returns the sell- and arrival-price valuation of the branch
// warehouse: non-temp products with positive stock only.
func warehouseValues(tx *gorm.DB, branchId uint) (sell, arrival decimal.Decimal, err error) {
	var products []models.Product
	if err = tx.Where("branch_id = ? AND is_temp = ? AND amount > 0", branchId, false).
		Find(&products).Error; err != nil {
		return
	}
	for _, p := range products {
		amount := decimal.NewFromFloat(p.Amount)
		sell = sell.Add(p.SellPrice.Mul(amount))
		arrival = arrival.Add(p.ArrivalPrice.Mul(amount))
	}
	return
}

// WarehouseValue exposes the branch warehouse valuation to the API layer.
func WarehouseValue(tx *gorm.DB, branchId uint) (sell, arrival decimal.Decimal, err error) {
	return warehouseValues(tx, branchId)
}

// applyDiscount validates the discount spec against the pre-discount line
// value and returns the discounted total. Percentage discounts must lie in
// (0,100], money discounts in (0, unit price].
func applyDiscount(total, discount decimal.Decimal, discountType string, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	if discount.Sign() <= 0 {
		return total, nil
	}
	switch discountType {
	case models.DiscountPercent:
		if discount.GreaterThan(hundred) {
			return total, Invalid("percentage discount must be between 0 and 100, got %s", discount)
		}
		return total.Sub(total.Mul(discount).Div(hundred)).Round(2), nil
	case models.DiscountMoney:
		if discount.GreaterThan(unitPrice) {
			return total, Invalid("money discount must not exceed the unit price %s, got %s", unitPrice, discount)
		}
		return total.Sub(discount), nil
	default:
		return total, Invalid("discount type must be %q or %q", models.DiscountPercent, models.DiscountMoney)
	}
}
