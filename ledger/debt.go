package ledger

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"autoshop-backend/models"
)

type DebtInput struct {
	SupplierId uint            `json:"supplier_id" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
	BranchId   uint            `json:"branch_id" validate:"required"`
}

// GetDebt records additional borrowing from a supplier outside an import:
// the supplier debt grows by the amount.
func GetDebt(tx *gorm.DB, in *DebtInput) (*models.Debt, error) {
	if in.Amount.Sign() <= 0 {
		return nil, Invalid("debt amount must be positive, got %s", in.Amount)
	}
	supplier, err := lockSupplier(tx, in.SupplierId, in.BranchId)
	if err != nil {
		return nil, err
	}
	supplier.Debt = supplier.Debt.Add(in.Amount)
	if err := tx.Omit(clause.Associations).Save(supplier).Error; err != nil {
		return nil, err
	}

	debt := &models.Debt{
		SupplierId:  supplier.Id,
		DebtAmount:  in.Amount,
		IsDebt:      true,
		CurrentDebt: supplier.Debt,
		BranchId:    in.BranchId,
	}
	return debt, tx.Omit(clause.Associations).Create(debt).Error
}

// PayDebt pays supplier debt down out of the branch cash. Paying more than is
// owed, or more than the branch holds, is rejected.
func PayDebt(tx *gorm.DB, in *DebtInput) (*models.Debt, error) {
	if in.Amount.Sign() <= 0 {
		return nil, Invalid("debt amount must be positive, got %s", in.Amount)
	}
	supplier, err := lockSupplier(tx, in.SupplierId, in.BranchId)
	if err != nil {
		return nil, err
	}
	if in.Amount.GreaterThan(supplier.Debt) {
		return nil, Invalid("payment %s exceeds the supplier debt %s", in.Amount, supplier.Debt)
	}
	branch, err := lockBranch(tx, in.BranchId)
	if err != nil {
		return nil, err
	}
	if branch.Balance.LessThan(in.Amount) {
		return nil, Invalid("branch balance %s cannot cover the payment %s", branch.Balance, in.Amount)
	}

	supplier.Debt = supplier.Debt.Sub(in.Amount)
	if err := tx.Omit(clause.Associations).Save(supplier).Error; err != nil {
		return nil, err
	}
	branch.Balance = branch.Balance.Sub(in.Amount)
	if err := tx.Save(branch).Error; err != nil {
		return nil, err
	}

	debt := &models.Debt{
		SupplierId:  supplier.Id,
		DebtAmount:  in.Amount,
		IsDebt:      false,
		CurrentDebt: supplier.Debt,
		BranchId:    in.BranchId,
	}
	return debt, tx.Omit(clause.Associations).Create(debt).Error
}

// reverseDebtEffect undoes a recorded debt event: a borrowing shrinks the
// supplier debt back, a payment restores both the debt and the branch cash.
func reverseDebtEffect(tx *gorm.DB, debt *models.Debt) error {
	supplier, err := lockSupplier(tx, debt.SupplierId, debt.BranchId)
	if err != nil {
		return err
	}
	if debt.IsDebt {
		if debt.DebtAmount.GreaterThan(supplier.Debt) {
			return Invalid("cannot reverse borrowing of %s: supplier debt is only %s",
				debt.DebtAmount, supplier.Debt)
		}
		supplier.Debt = supplier.Debt.Sub(debt.DebtAmount)
		return tx.Omit(clause.Associations).Save(supplier).Error
	}

	supplier.Debt = supplier.Debt.Add(debt.DebtAmount)
	if err := tx.Omit(clause.Associations).Save(supplier).Error; err != nil {
		return err
	}
	branch, err := lockBranch(tx, debt.BranchId)
	if err != nil {
		return err
	}
	branch.Balance = branch.Balance.Add(debt.DebtAmount)
	return tx.Save(branch).Error
}

// UpdateDebt replaces a debt event's amount: the old effect is reversed and
// the new one applied with the same validations as a fresh event. The event's
// direction and supplier stay fixed.
func UpdateDebt(tx *gorm.DB, id uint, amount decimal.Decimal) (*models.Debt, error) {
	var debt models.Debt
	if err := forUpdate(tx).First(&debt, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "debt", id)
	}
	if err := reverseDebtEffect(tx, &debt); err != nil {
		return nil, err
	}
	if err := tx.Delete(&models.Debt{}, "id = ?", debt.Id).Error; err != nil {
		return nil, err
	}

	in := &DebtInput{SupplierId: debt.SupplierId, Amount: amount, BranchId: debt.BranchId}
	if debt.IsDebt {
		return GetDebt(tx, in)
	}
	return PayDebt(tx, in)
}

func DeleteDebt(tx *gorm.DB, id uint) error {
	var debt models.Debt
	if err := forUpdate(tx).First(&debt, "id = ?", id).Error; err != nil {
		return notFoundOr(err, "debt", id)
	}
	if err := reverseDebtEffect(tx, &debt); err != nil {
		return err
	}
	return tx.Delete(&models.Debt{}, "id = ?", debt.Id).Error
}
