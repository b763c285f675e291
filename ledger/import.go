package ledger

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"autoshop-backend/models"
)

type ImportProductInput struct {
	Name         string          `json:"name" validate:"required"`
	Code         string          `json:"code"`
	Unit         string          `json:"unit"`
	Amount       float64         `json:"amount" validate:"gt=0"`
	ArrivalPrice decimal.Decimal `json:"arrival_price"`
	SellPrice    decimal.Decimal `json:"sell_price"`
	MinAmount    float64         `json:"min_amount"`
	MaxDiscount  int             `json:"max_discount"`
}

type ImportInput struct {
	SupplierId     uint                 `json:"supplier_id" validate:"required"`
	Paid           decimal.Decimal      `json:"paid"`
	PaymentType    string               `json:"payment_type"`
	IsInitialStock bool                 `json:"is_initial_stock"`
	Description    string               `json:"description"`
	BranchId       uint                 `json:"branch_id" validate:"required"`
	Products       []ImportProductInput `json:"products" validate:"min=1,dive"`
}

func validPaymentType(t string) bool {
	switch t {
	case models.PaymentCash, models.PaymentTransfer, models.PaymentNone:
		return true
	}
	return false
}

// financialImport reports whether the list moves money: initial stock loads
// the warehouse without touching the supplier debt or the wallet, and
// cash-in-hand purchases settle outside the wallet.
func financialImport(list *models.ImportList) bool {
	return !list.IsInitialStock && list.PaymentType != models.PaymentCash
}

// resolveImportedProduct finds or creates the warehouse row an import line
// lands on. An existing priced row with the same name absorbs the stock and
// takes the incoming prices (last import wins); a temp row with the same name
// is promoted to a priced row; otherwise a fresh row is created.
func resolveImportedProduct(tx *gorm.DB, list *models.ImportList, in *ImportProductInput) (*models.Product, error) {
	var product models.Product
	err := forUpdate(tx).
		Where("name = ? AND branch_id = ?", in.Name, list.BranchId).
		Order("is_temp asc").
		First(&product).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		product = models.Product{
			Name:       in.Name,
			BranchId:   list.BranchId,
			SupplierId: list.SupplierId,
		}
	}

	product.IsTemp = false
	product.Amount += in.Amount
	product.ArrivalPrice = in.ArrivalPrice
	product.SellPrice = in.SellPrice
	if in.Code != "" {
		product.Code = in.Code
	}
	if in.Unit != "" {
		product.Unit = in.Unit
	}
	if in.MinAmount > 0 {
		product.MinAmount = in.MinAmount
	}
	if in.MaxDiscount > 0 {
		product.MaxDiscount = in.MaxDiscount
	}
	if product.SupplierId == 0 {
		product.SupplierId = list.SupplierId
	}
	if err := tx.Omit(clause.Associations).Save(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ImportStock records a stock purchase: header, every line's stock increment
// and the supplier/wallet effect, atomically.
func ImportStock(tx *gorm.DB, in *ImportInput) (*models.ImportList, error) {
	if in.PaymentType == "" {
		in.PaymentType = models.PaymentCash
	}
	if !validPaymentType(in.PaymentType) {
		return nil, Invalid("payment type must be %q, %q or %q",
			models.PaymentCash, models.PaymentTransfer, models.PaymentNone)
	}
	if in.Paid.Sign() < 0 {
		return nil, Invalid("paid must not be negative, got %s", in.Paid)
	}

	supplier, err := lockSupplier(tx, in.SupplierId, in.BranchId)
	if err != nil {
		return nil, err
	}

	list := &models.ImportList{
		Paid:           in.Paid,
		PaymentType:    in.PaymentType,
		IsInitialStock: in.IsInitialStock,
		Description:    in.Description,
		SupplierId:     supplier.Id,
		BranchId:       in.BranchId,
	}
	if err := tx.Omit(clause.Associations).Create(list).Error; err != nil {
		return nil, err
	}

	for i := range in.Products {
		if _, err := addImportLine(tx, list, &in.Products[i]); err != nil {
			return nil, err
		}
	}

	if in.Paid.GreaterThan(list.Total) {
		return nil, Invalid("paid %s exceeds the import total %s", in.Paid, list.Total)
	}
	list.Debt = list.Total.Sub(list.Paid)
	if err := saveImportTotals(tx, list); err != nil {
		return nil, err
	}

	if financialImport(list) {
		supplier.Debt = supplier.Debt.Add(list.Debt)
		if err := tx.Omit(clause.Associations).Save(supplier).Error; err != nil {
			return nil, err
		}
		wallet, err := lockWallet(tx)
		if err != nil {
			return nil, err
		}
		wallet.Balance = wallet.Balance.Sub(list.Paid)
		if err := tx.Save(wallet).Error; err != nil {
			return nil, err
		}
	}
	return list, nil
}

func saveImportTotals(tx *gorm.DB, list *models.ImportList) error {
	return tx.Model(&models.ImportList{}).Where("id = ?", list.Id).Updates(map[string]any{
		"total": list.Total,
		"paid":  list.Paid,
		"debt":  list.Debt,
	}).Error
}

// addImportLine lands one line on the warehouse and snapshots the branch
// valuation after the stock increment. Header totals are updated in memory.
func addImportLine(tx *gorm.DB, list *models.ImportList, in *ImportProductInput) (*models.ImportProduct, error) {
	product, err := resolveImportedProduct(tx, list, in)
	if err != nil {
		return nil, err
	}

	sellValue, arrivalValue, err := warehouseValues(tx, list.BranchId)
	if err != nil {
		return nil, err
	}

	line := &models.ImportProduct{
		ImportListId:          list.Id,
		ProductId:             product.Id,
		Amount:                in.Amount,
		ArrivalPrice:          in.ArrivalPrice,
		SellPrice:             in.SellPrice,
		TotalSumm:             in.ArrivalPrice.Mul(decimal.NewFromFloat(in.Amount)).Round(2),
		RemainderSellValue:    sellValue,
		RemainderArrivalValue: arrivalValue,
	}
	if err := tx.Omit(clause.Associations).Create(line).Error; err != nil {
		return nil, err
	}

	list.Total = list.Total.Add(line.TotalSumm)
	return line, nil
}

// reverseImportLine takes the line's stock back off the warehouse row and
// backs its value out of the header total (in memory).
func reverseImportLine(tx *gorm.DB, list *models.ImportList, line *models.ImportProduct) error {
	product, err := lockProduct(tx, line.ProductId)
	if err != nil {
		return err
	}
	if product.Amount < line.Amount {
		return Invalid("cannot reverse import line: only %g of product %d left in stock",
			product.Amount, product.Id)
	}
	product.Amount -= line.Amount
	if err := tx.Omit(clause.Associations).Save(product).Error; err != nil {
		return err
	}
	list.Total = list.Total.Sub(line.TotalSumm)
	return nil
}

func getImportList(tx *gorm.DB, id uint) (*models.ImportList, error) {
	var list models.ImportList
	if err := forUpdate(tx).First(&list, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "import list", id)
	}
	return &list, nil
}

// settleImportTotals recomputes the header debt after a line-level event and
// moves the debt delta onto the supplier when the list is a financial one.
func settleImportTotals(tx *gorm.DB, list *models.ImportList) error {
	if list.Paid.GreaterThan(list.Total) {
		return Invalid("paid %s exceeds the import total %s", list.Paid, list.Total)
	}
	oldDebt := list.Debt
	list.Debt = list.Total.Sub(list.Paid)
	delta := list.Debt.Sub(oldDebt)

	if financialImport(list) && !delta.IsZero() {
		supplier, err := lockSupplier(tx, list.SupplierId, list.BranchId)
		if err != nil {
			return err
		}
		supplier.Debt = supplier.Debt.Add(delta)
		if err := tx.Omit(clause.Associations).Save(supplier).Error; err != nil {
			return err
		}
	}
	return saveImportTotals(tx, list)
}

// UpdateImportProduct reverses the line's stock and value, then re-applies it
// from the new input against the same warehouse row.
func UpdateImportProduct(tx *gorm.DB, id uint, in *ImportProductInput) (*models.ImportProduct, error) {
	var line models.ImportProduct
	if err := forUpdate(tx).First(&line, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "import product", id)
	}
	list, err := getImportList(tx, line.ImportListId)
	if err != nil {
		return nil, err
	}
	if err := reverseImportLine(tx, list, &line); err != nil {
		return nil, err
	}
	if err := tx.Delete(&models.ImportProduct{}, "id = ?", line.Id).Error; err != nil {
		return nil, err
	}
	fresh, err := addImportLine(tx, list, in)
	if err != nil {
		return nil, err
	}
	return fresh, settleImportTotals(tx, list)
}

func DeleteImportProduct(tx *gorm.DB, id uint) error {
	var line models.ImportProduct
	if err := forUpdate(tx).First(&line, "id = ?", id).Error; err != nil {
		return notFoundOr(err, "import product", id)
	}
	list, err := getImportList(tx, line.ImportListId)
	if err != nil {
		return err
	}
	if err := reverseImportLine(tx, list, &line); err != nil {
		return err
	}
	if err := tx.Delete(&models.ImportProduct{}, "id = ?", line.Id).Error; err != nil {
		return err
	}
	return settleImportTotals(tx, list)
}

// DeleteImportList reverses every line's stock, backs the supplier debt and
// wallet payment out, and removes the list with its lines.
func DeleteImportList(tx *gorm.DB, id uint) error {
	list, err := getImportList(tx, id)
	if err != nil {
		return err
	}
	var lines []models.ImportProduct
	if err := tx.Where("import_list_id = ?", list.Id).Find(&lines).Error; err != nil {
		return err
	}
	for i := range lines {
		if err := reverseImportLine(tx, list, &lines[i]); err != nil {
			return err
		}
	}

	if financialImport(list) {
		supplier, err := lockSupplier(tx, list.SupplierId, list.BranchId)
		if err != nil {
			return err
		}
		supplier.Debt = supplier.Debt.Sub(list.Debt)
		if err := tx.Omit(clause.Associations).Save(supplier).Error; err != nil {
			return err
		}
		wallet, err := lockWallet(tx)
		if err != nil {
			return err
		}
		wallet.Balance = wallet.Balance.Add(list.Paid)
		if err := tx.Save(wallet).Error; err != nil {
			return err
		}
	}

	if err := tx.Where("import_list_id = ?", list.Id).Delete(&models.ImportProduct{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.ImportList{}, "id = ?", list.Id).Error
}
