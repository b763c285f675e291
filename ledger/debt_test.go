package ledger

import (
	"testing"

	"gorm.io/gorm"

	"autoshop-backend/models"
)

func TestGetDebtGrowsSupplierDebt(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "0")
	supplier := seedSupplier(t, db, branch.Id)

	var debt *models.Debt
	mustTx(t, db, func(tx *gorm.DB) error {
		var err error
		debt, err = GetDebt(tx, &DebtInput{SupplierId: supplier.Id, Amount: dec("300"), BranchId: branch.Id})
		return err
	})

	if !debt.IsDebt {
		t.Error("borrowing event must have is_debt=true")
	}
	wantDec(t, "debt.current_debt", "300", debt.CurrentDebt)
	wantDec(t, "supplier.debt", "300", getSupplier(t, db, supplier.Id).Debt)
}

func TestPayDebt(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "500")
	supplier := seedSupplier(t, db, branch.Id)
	mustTx(t, db, func(tx *gorm.DB) error {
		_, err := GetDebt(tx, &DebtInput{SupplierId: supplier.Id, Amount: dec("300"), BranchId: branch.Id})
		return err
	})

	var payment *models.Debt
	mustTx(t, db, func(tx *gorm.DB) error {
		var err error
		payment, err = PayDebt(tx, &DebtInput{SupplierId: supplier.Id, Amount: dec("200"), BranchId: branch.Id})
		return err
	})

	if payment.IsDebt {
		t.Error("payment event must have is_debt=false")
	}
	wantDec(t, "payment.current_debt", "100", payment.CurrentDebt)
	wantDec(t, "supplier.debt", "100", getSupplier(t, db, supplier.Id).Debt)
	wantDec(t, "branch.balance", "300", getBranch(t, db, branch.Id).Balance)
}

func TestPayDebtRejectsOverpayment(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "500")
	supplier := seedSupplier(t, db, branch.Id)
	mustTx(t, db, func(tx *gorm.DB) error {
		_, err := GetDebt(tx, &DebtInput{SupplierId: supplier.Id, Amount: dec("100"), BranchId: branch.Id})
		return err
	})

	err := inTx(t, db, func(tx *gorm.DB) error {
		_, err := PayDebt(tx, &DebtInput{SupplierId: supplier.Id, Amount: dec("150"), BranchId: branch.Id})
		return err
	})
	wantLedgerError(t, err, CodeValidation)
	wantDec(t, "supplier.debt", "100", getSupplier(t, db, supplier.Id).Debt)
}

func TestPayDebtRejectsInsufficientBranchCash(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "50")
	supplier := seedSupplier(t, db, branch.Id)
	mustTx(t, db, func(tx *gorm.DB) error {
		_, err := GetDebt(tx, &DebtInput{SupplierId: supplier.Id, Amount: dec("300"), BranchId: branch.Id})
		return err
	})

	err := inTx(t, db, func(tx *gorm.DB) error {
		_, err := PayDebt(tx, &DebtInput{SupplierId: supplier.Id, Amount: dec("100"), BranchId: branch.Id})
		return err
	})
	wantLedgerError(t, err, CodeValidation)
	wantDec(t, "branch.balance", "50", getBranch(t, db, branch.Id).Balance)
}

func TestUpdateDebtReappliesAmount(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "500")
	supplier := seedSupplier(t, db, branch.Id)
	mustTx(t, db, func(tx *gorm.DB) error {
		_, err := GetDebt(tx, &DebtInput{SupplierId: supplier.Id, Amount: dec("300"), BranchId: branch.Id})
		return err
	})

	var payment *models.Debt
	mustTx(t, db, func(tx *gorm.DB) error {
		var err error
		payment, err = PayDebt(tx, &DebtInput{SupplierId: supplier.Id, Amount: dec("100"), BranchId: branch.Id})
		return err
	})
	wantDec(t, "branch.balance", "400", getBranch(t, db, branch.Id).Balance)

	mustTx(t, db, func(tx *gorm.DB) error {
		_, err := UpdateDebt(tx, payment.Id, dec("250"))
		return err
	})

	// Old payment reversed, new 250 applied: debt 300-250, cash 500-250.
	wantDec(t, "supplier.debt", "50", getSupplier(t, db, supplier.Id).Debt)
	wantDec(t, "branch.balance", "250", getBranch(t, db, branch.Id).Balance)
}

func TestDeleteDebtReversesBorrowing(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "0")
	supplier := seedSupplier(t, db, branch.Id)

	var debt *models.Debt
	mustTx(t, db, func(tx *gorm.DB) error {
		var err error
		debt, err = GetDebt(tx, &DebtInput{SupplierId: supplier.Id, Amount: dec("300"), BranchId: branch.Id})
		return err
	})
	mustTx(t, db, func(tx *gorm.DB) error {
		return DeleteDebt(tx, debt.Id)
	})

	wantDec(t, "supplier.debt", "0", getSupplier(t, db, supplier.Id).Debt)
	var count int64
	db.Model(&models.Debt{}).Count(&count)
	if count != 0 {
		t.Errorf("debt events remaining = %d, want 0", count)
	}
}

func TestDeleteDebtGuardsAgainstNegativeDebt(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "500")
	supplier := seedSupplier(t, db, branch.Id)

	var borrowing *models.Debt
	mustTx(t, db, func(tx *gorm.DB) error {
		var err error
		borrowing, err = GetDebt(tx, &DebtInput{SupplierId: supplier.Id, Amount: dec("300"), BranchId: branch.Id})
		return err
	})
	mustTx(t, db, func(tx *gorm.DB) error {
		_, err := PayDebt(tx, &DebtInput{SupplierId: supplier.Id, Amount: dec("300"), BranchId: branch.Id})
		return err
	})

	// Debt is already 0; reversing the borrowing would drive it negative.
	err := inTx(t, db, func(tx *gorm.DB) error {
		return DeleteDebt(tx, borrowing.Id)
	})
	wantLedgerError(t, err, CodeValidation)
}

func TestGetDebtRejectsNonPositiveAmount(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "0")
	supplier := seedSupplier(t, db, branch.Id)

	err := inTx(t, db, func(tx *gorm.DB) error {
		_, err := GetDebt(tx, &DebtInput{SupplierId: supplier.Id, Amount: dec("0"), BranchId: branch.Id})
		return err
	})
	wantLedgerError(t, err, CodeValidation)

	err = inTx(t, db, func(tx *gorm.DB) error {
		_, err := GetDebt(tx, &DebtInput{SupplierId: supplier.Id, Amount: dec("-5"), BranchId: branch.Id})
		return err
	})
	wantLedgerError(t, err, CodeValidation)
}

func TestDebtUnknownSupplier(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "0")

	err := inTx(t, db, func(tx *gorm.DB) error {
		_, err := GetDebt(tx, &DebtInput{SupplierId: 99, Amount: dec("10"), BranchId: branch.Id})
		return err
	})
	wantLedgerError(t, err, CodeNotFound)
}
