package ledger

import (
	"testing"

	"gorm.io/gorm"

	"autoshop-backend/models"
)

func seedExpenseType(t *testing.T, db *gorm.DB, branchId uint) *models.ExpenseType {
	t.Helper()
	expenseType := &models.ExpenseType{Name: "rent", BranchId: branchId}
	if err := db.Create(expenseType).Error; err != nil {
		t.Fatalf("seed expense type: %v", err)
	}
	return expenseType
}

func TestRecordExpenseDebitsBranch(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "500")
	expenseType := seedExpenseType(t, db, branch.Id)

	mustTx(t, db, func(tx *gorm.DB) error {
		_, err := RecordExpense(tx, &ExpenseInput{
			TypeId: expenseType.Id, Amount: dec("120"), Description: "september rent",
			FromUserId: "u-1", BranchId: branch.Id,
		})
		return err
	})
	wantDec(t, "branch.balance", "380", getBranch(t, db, branch.Id).Balance)
}

func TestRecordExpenseRejectsInsufficientBranchCash(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "100")
	expenseType := seedExpenseType(t, db, branch.Id)

	err := inTx(t, db, func(tx *gorm.DB) error {
		_, err := RecordExpense(tx, &ExpenseInput{
			TypeId: expenseType.Id, Amount: dec("120"), Description: "rent",
			FromUserId: "u-1", BranchId: branch.Id,
		})
		return err
	})
	wantLedgerError(t, err, CodeValidation)
	wantDec(t, "branch.balance", "100", getBranch(t, db, branch.Id).Balance)
}

func TestUpdateAndDeleteExpense(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "500")
	expenseType := seedExpenseType(t, db, branch.Id)

	var expense *models.Expense
	mustTx(t, db, func(tx *gorm.DB) error {
		var err error
		expense, err = RecordExpense(tx, &ExpenseInput{
			TypeId: expenseType.Id, Amount: dec("100"), Description: "rent",
			FromUserId: "u-1", BranchId: branch.Id,
		})
		return err
	})

	mustTx(t, db, func(tx *gorm.DB) error {
		var err error
		expense, err = UpdateExpense(tx, expense.Id, &ExpenseInput{
			TypeId: expenseType.Id, Amount: dec("250"), Description: "rent + utilities",
		})
		return err
	})
	wantDec(t, "branch.balance", "250", getBranch(t, db, branch.Id).Balance)

	mustTx(t, db, func(tx *gorm.DB) error {
		return DeleteExpense(tx, expense.Id)
	})
	wantDec(t, "branch.balance", "500", getBranch(t, db, branch.Id).Balance)
}

func TestPaySalaryDebitsEmployeeAndWallet(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "0")
	seedWallet(t, db, "1000")
	employee := seedEmployee(t, db, branch.Id, models.PositionOther, 0, 0, 300)
	if err := db.Model(employee).Update("balance", dec("300")).Error; err != nil {
		t.Fatalf("seed employee balance: %v", err)
	}

	mustTx(t, db, func(tx *gorm.DB) error {
		_, err := PaySalary(tx, &SalaryInput{
			EmployeeId: employee.Id, Amount: dec("200"), FromUserId: "u-1", BranchId: branch.Id,
		})
		return err
	})

	wantDec(t, "employee.balance", "100", getEmployee(t, db, employee.Id).Balance)
	wantDec(t, "wallet.balance", "800", getWallet(t, db).Balance)
}

func TestPaySalaryRejectsMoreThanAccrued(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "0")
	seedWallet(t, db, "1000")
	employee := seedEmployee(t, db, branch.Id, models.PositionOther, 0, 0, 300)

	err := inTx(t, db, func(tx *gorm.DB) error {
		_, err := PaySalary(tx, &SalaryInput{
			EmployeeId: employee.Id, Amount: dec("50"), FromUserId: "u-1", BranchId: branch.Id,
		})
		return err
	})
	wantLedgerError(t, err, CodeValidation)
	wantDec(t, "wallet.balance", "1000", getWallet(t, db).Balance)
}

func TestUpdateAndDeleteSalary(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "0")
	seedWallet(t, db, "1000")
	employee := seedEmployee(t, db, branch.Id, models.PositionOther, 0, 0, 300)
	if err := db.Model(employee).Update("balance", dec("300")).Error; err != nil {
		t.Fatalf("seed employee balance: %v", err)
	}

	var salary *models.Salary
	mustTx(t, db, func(tx *gorm.DB) error {
		var err error
		salary, err = PaySalary(tx, &SalaryInput{
			EmployeeId: employee.Id, Amount: dec("200"), FromUserId: "u-1", BranchId: branch.Id,
		})
		return err
	})

	mustTx(t, db, func(tx *gorm.DB) error {
		var err error
		salary, err = UpdateSalary(tx, salary.Id, dec("300"))
		return err
	})
	wantDec(t, "employee.balance", "0", getEmployee(t, db, employee.Id).Balance)
	wantDec(t, "wallet.balance", "700", getWallet(t, db).Balance)

	mustTx(t, db, func(tx *gorm.DB) error {
		return DeleteSalary(tx, salary.Id)
	})
	wantDec(t, "employee.balance", "300", getEmployee(t, db, employee.Id).Balance)
	wantDec(t, "wallet.balance", "1000", getWallet(t, db).Balance)
}

func TestSweepBranchFunds(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "750")
	seedWallet(t, db, "1000")

	var transfer *models.BranchFundTransfer
	mustTx(t, db, func(tx *gorm.DB) error {
		var err error
		transfer, err = SweepBranchFunds(tx, branch.Id, "u-1", "end of day")
		return err
	})

	wantDec(t, "transfer.amount", "750", transfer.Amount)
	wantDec(t, "branch.balance", "0", getBranch(t, db, branch.Id).Balance)
	wantDec(t, "wallet.balance", "1750", getWallet(t, db).Balance)

	mustTx(t, db, func(tx *gorm.DB) error {
		return DeleteBranchFundTransfer(tx, transfer.Id)
	})
	wantDec(t, "branch.balance", "750", getBranch(t, db, branch.Id).Balance)
	wantDec(t, "wallet.balance", "1000", getWallet(t, db).Balance)
}

func TestCreateWalletIsSingleton(t *testing.T) {
	db := newTestDB(t)

	mustTx(t, db, func(tx *gorm.DB) error {
		_, err := CreateWallet(tx, dec("100"))
		return err
	})
	err := inTx(t, db, func(tx *gorm.DB) error {
		_, err := CreateWallet(tx, dec("0"))
		return err
	})
	wantLedgerError(t, err, CodeConflict)

	balance, err := WalletBalance(db)
	if err != nil {
		t.Fatalf("wallet balance: %v", err)
	}
	wantDec(t, "wallet.balance", "100", balance)
}

func TestAccrueMonthlySalaries(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "0")
	fixed := seedEmployee(t, db, branch.Id, models.PositionOther, 0, 0, 400)
	unpaid := seedEmployee(t, db, branch.Id, models.PositionOther, 0, 0, 0)
	manager := seedEmployee(t, db, branch.Id, models.PositionManager, 5, 0, 500)

	count, err := AccrueMonthlySalaries(db)
	if err != nil {
		t.Fatalf("accrue: %v", err)
	}
	if count != 1 {
		t.Errorf("accrued = %d, want 1", count)
	}

	wantDec(t, "fixed.balance", "400", getEmployee(t, db, fixed.Id).Balance)
	wantDec(t, "unpaid.balance", "0", getEmployee(t, db, unpaid.Id).Balance)
	// Managers earn through commissions, not the monthly run.
	wantDec(t, "manager.balance", "0", getEmployee(t, db, manager.Id).Balance)

	// A second run accrues again: the job fires once a month.
	if _, err := AccrueMonthlySalaries(db); err != nil {
		t.Fatalf("second accrue: %v", err)
	}
	wantDec(t, "fixed.balance", "800", getEmployee(t, db, fixed.Id).Balance)
}
