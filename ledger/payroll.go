package ledger

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"autoshop-backend/models"
)

type ExpenseInput struct {
	TypeId      uint            `json:"type_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Description string          `json:"description" validate:"required"`
	FromUserId  string          `json:"-"`
	BranchId    uint            `json:"branch_id" validate:"required"`
}

type SalaryInput struct {
	EmployeeId  uint            `json:"employee_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Description string          `json:"description"`
	FromUserId  string          `json:"-"`
	BranchId    uint            `json:"branch_id" validate:"required"`
}

// RecordExpense pays a branch expense out of the branch cash.
func RecordExpense(tx *gorm.DB, in *ExpenseInput) (*models.Expense, error) {
	if in.Amount.Sign() <= 0 {
		return nil, Invalid("expense amount must be positive, got %s", in.Amount)
	}
	var expenseType models.ExpenseType
	if err := tx.First(&expenseType, "id = ?", in.TypeId).Error; err != nil {
		return nil, notFoundOr(err, "expense type", in.TypeId)
	}
	branch, err := lockBranch(tx, in.BranchId)
	if err != nil {
		return nil, err
	}
	if branch.Balance.LessThan(in.Amount) {
		return nil, Invalid("branch balance %s cannot cover the expense %s", branch.Balance, in.Amount)
	}
	branch.Balance = branch.Balance.Sub(in.Amount)
	if err := tx.Save(branch).Error; err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Description: in.Description,
		TypeId:      expenseType.Id,
		Amount:      in.Amount,
		FromUserId:  in.FromUserId,
		BranchId:    in.BranchId,
	}
	return expense, tx.Omit(clause.Associations).Create(expense).Error
}

// UpdateExpense reverses the old debit and applies the new one.
func UpdateExpense(tx *gorm.DB, id uint, in *ExpenseInput) (*models.Expense, error) {
	var expense models.Expense
	if err := forUpdate(tx).First(&expense, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "expense", id)
	}
	branch, err := lockBranch(tx, expense.BranchId)
	if err != nil {
		return nil, err
	}
	branch.Balance = branch.Balance.Add(expense.Amount)
	if err := tx.Save(branch).Error; err != nil {
		return nil, err
	}
	if err := tx.Delete(&models.Expense{}, "id = ?", expense.Id).Error; err != nil {
		return nil, err
	}
	if in.FromUserId == "" {
		in.FromUserId = expense.FromUserId
	}
	in.BranchId = expense.BranchId
	return RecordExpense(tx, in)
}

func DeleteExpense(tx *gorm.DB, id uint) error {
	var expense models.Expense
	if err := forUpdate(tx).First(&expense, "id = ?", id).Error; err != nil {
		return notFoundOr(err, "expense", id)
	}
	branch, err := lockBranch(tx, expense.BranchId)
	if err != nil {
		return err
	}
	branch.Balance = branch.Balance.Add(expense.Amount)
	if err := tx.Save(branch).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Expense{}, "id = ?", expense.Id).Error
}

// PaySalary pays accrued earnings out: both the employee balance and the
// wallet shrink by the amount. Paying out more than the employee has accrued
// is rejected.
func PaySalary(tx *gorm.DB, in *SalaryInput) (*models.Salary, error) {
	if in.Amount.Sign() <= 0 {
		return nil, Invalid("salary amount must be positive, got %s", in.Amount)
	}
	employee, err := lockEmployee(tx, in.EmployeeId)
	if err != nil {
		return nil, err
	}
	if employee.Balance.LessThan(in.Amount) {
		return nil, Invalid("employee balance %s cannot cover the payout %s", employee.Balance, in.Amount)
	}
	wallet, err := lockWallet(tx)
	if err != nil {
		return nil, err
	}

	employee.Balance = employee.Balance.Sub(in.Amount)
	if err := tx.Omit(clause.Associations).Save(employee).Error; err != nil {
		return nil, err
	}
	wallet.Balance = wallet.Balance.Sub(in.Amount)
	if err := tx.Save(wallet).Error; err != nil {
		return nil, err
	}

	salary := &models.Salary{
		EmployeeId:  employee.Id,
		Description: in.Description,
		Amount:      in.Amount,
		FromUserId:  in.FromUserId,
		BranchId:    in.BranchId,
	}
	return salary, tx.Omit(clause.Associations).Create(salary).Error
}

// UpdateSalary replaces the payout amount with reverse-then-apply semantics.
func UpdateSalary(tx *gorm.DB, id uint, amount decimal.Decimal) (*models.Salary, error) {
	var salary models.Salary
	if err := forUpdate(tx).First(&salary, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "salary", id)
	}
	if err := reverseSalaryEffect(tx, &salary); err != nil {
		return nil, err
	}
	if err := tx.Delete(&models.Salary{}, "id = ?", salary.Id).Error; err != nil {
		return nil, err
	}
	return PaySalary(tx, &SalaryInput{
		EmployeeId:  salary.EmployeeId,
		Amount:      amount,
		Description: salary.Description,
		FromUserId:  salary.FromUserId,
		BranchId:    salary.BranchId,
	})
}

func DeleteSalary(tx *gorm.DB, id uint) error {
	var salary models.Salary
	if err := forUpdate(tx).First(&salary, "id = ?", id).Error; err != nil {
		return notFoundOr(err, "salary", id)
	}
	if err := reverseSalaryEffect(tx, &salary); err != nil {
		return err
	}
	return tx.Delete(&models.Salary{}, "id = ?", salary.Id).Error
}

func reverseSalaryEffect(tx *gorm.DB, salary *models.Salary) error {
	employee, err := lockEmployee(tx, salary.EmployeeId)
	if err != nil {
		return err
	}
	employee.Balance = employee.Balance.Add(salary.Amount)
	if err := tx.Omit(clause.Associations).Save(employee).Error; err != nil {
		return err
	}
	wallet, err := lockWallet(tx)
	if err != nil {
		return err
	}
	wallet.Balance = wallet.Balance.Add(salary.Amount)
	return tx.Save(wallet).Error
}

// SweepBranchFunds moves the whole branch cash into the wallet and records
// the swept figure. The caller does not choose the amount.
func SweepBranchFunds(tx *gorm.DB, branchId uint, userId, description string) (*models.BranchFundTransfer, error) {
	branch, err := lockBranch(tx, branchId)
	if err != nil {
		return nil, err
	}
	if branch.Balance.Sign() < 0 {
		return nil, Invalid("branch balance %s is negative, nothing to sweep", branch.Balance)
	}
	wallet, err := lockWallet(tx)
	if err != nil {
		return nil, err
	}

	swept := branch.Balance
	branch.Balance = decimal.Zero
	if err := tx.Save(branch).Error; err != nil {
		return nil, err
	}
	wallet.Balance = wallet.Balance.Add(swept)
	if err := tx.Save(wallet).Error; err != nil {
		return nil, err
	}

	transfer := &models.BranchFundTransfer{
		Description: description,
		Amount:      swept,
		UserId:      userId,
		BranchId:    &branchId,
	}
	return transfer, tx.Omit(clause.Associations).Create(transfer).Error
}

// DeleteBranchFundTransfer puts the swept cash back on the branch.
func DeleteBranchFundTransfer(tx *gorm.DB, id uint) error {
	var transfer models.BranchFundTransfer
	if err := forUpdate(tx).First(&transfer, "id = ?", id).Error; err != nil {
		return notFoundOr(err, "fund transfer", id)
	}
	wallet, err := lockWallet(tx)
	if err != nil {
		return err
	}
	wallet.Balance = wallet.Balance.Sub(transfer.Amount)
	if err := tx.Save(wallet).Error; err != nil {
		return err
	}
	if transfer.BranchId != nil {
		branch, err := lockBranch(tx, *transfer.BranchId)
		if err != nil {
			return err
		}
		branch.Balance = branch.Balance.Add(transfer.Amount)
		if err := tx.Save(branch).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&models.BranchFundTransfer{}, "id = ?", transfer.Id).Error
}

// CreateWallet creates the singleton wallet. A second wallet is a conflict;
// the unique index on the name backs this up at the schema level.
func CreateWallet(tx *gorm.DB, balance decimal.Decimal) (*models.Wallet, error) {
	var count int64
	if err := tx.Model(&models.Wallet{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, Conflict("a wallet already exists")
	}
	wallet := &models.Wallet{Name: models.WalletName, Balance: balance}
	return wallet, tx.Create(wallet).Error
}

func WalletBalance(tx *gorm.DB) (decimal.Decimal, error) {
	var wallet models.Wallet
	if err := tx.First(&wallet, "name = ?", models.WalletName).Error; err != nil {
		return decimal.Zero, notFoundOr(err, "wallet", models.WalletName)
	}
	return wallet.Balance, nil
}

// AccrueMonthlySalaries adds the contracted monthly salary to the balance of
// every fixed-salary employee. Managers and mechanics earn through
// commissions and KPI instead.
func AccrueMonthlySalaries(db *gorm.DB) (int, error) {
	accrued := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		var employees []models.Employee
		if err := forUpdate(tx).
			Where("position = ? AND salary > 0", models.PositionOther).
			Find(&employees).Error; err != nil {
			return err
		}
		for i := range employees {
			e := &employees[i]
			e.Balance = e.Balance.Add(decimal.NewFromInt(int64(e.Salary)))
			if err := tx.Omit(clause.Associations).Save(e).Error; err != nil {
				return err
			}
			accrued++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return accrued, nil
}
