package ledger

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"autoshop-backend/models"
)

type LendingInput struct {
	ClientId uint            `json:"client_id" validate:"required"`
	Amount   decimal.Decimal `json:"amount" validate:"required"`
	BranchId uint            `json:"branch_id" validate:"required"`
}

// GiveLending hands the client cash on credit: the client's lending grows and
// the branch cash shrinks by the amount.
func GiveLending(tx *gorm.DB, in *LendingInput) (*models.Lending, error) {
	if in.Amount.Sign() <= 0 {
		return nil, Invalid("lending amount must be positive, got %s", in.Amount)
	}
	client, err := lockClient(tx, in.ClientId)
	if err != nil {
		return nil, err
	}
	branch, err := lockBranch(tx, in.BranchId)
	if err != nil {
		return nil, err
	}
	if branch.Balance.LessThan(in.Amount) {
		return nil, Invalid("branch balance %s cannot cover the lending %s", branch.Balance, in.Amount)
	}

	client.Lending = client.Lending.Add(in.Amount)
	if err := tx.Omit(clause.Associations).Save(client).Error; err != nil {
		return nil, err
	}
	branch.Balance = branch.Balance.Sub(in.Amount)
	if err := tx.Save(branch).Error; err != nil {
		return nil, err
	}

	lending := &models.Lending{
		ClientId:       client.Id,
		LendingAmount:  in.Amount,
		IsLending:      true,
		CurrentLending: client.Lending,
		BranchId:       in.BranchId,
	}
	return lending, tx.Omit(clause.Associations).Create(lending).Error
}

// PayLending records the client paying debt back into the branch cash.
// Paying more than the client owes is rejected.
func PayLending(tx *gorm.DB, in *LendingInput) (*models.Lending, error) {
	if in.Amount.Sign() <= 0 {
		return nil, Invalid("lending amount must be positive, got %s", in.Amount)
	}
	client, err := lockClient(tx, in.ClientId)
	if err != nil {
		return nil, err
	}
	if in.Amount.GreaterThan(client.Lending) {
		return nil, Invalid("payment %s exceeds the client debt %s", in.Amount, client.Lending)
	}

	client.Lending = client.Lending.Sub(in.Amount)
	if err := tx.Omit(clause.Associations).Save(client).Error; err != nil {
		return nil, err
	}
	branch, err := lockBranch(tx, in.BranchId)
	if err != nil {
		return nil, err
	}
	branch.Balance = branch.Balance.Add(in.Amount)
	if err := tx.Save(branch).Error; err != nil {
		return nil, err
	}

	lending := &models.Lending{
		ClientId:       client.Id,
		LendingAmount:  in.Amount,
		IsLending:      false,
		CurrentLending: client.Lending,
		BranchId:       in.BranchId,
	}
	return lending, tx.Omit(clause.Associations).Create(lending).Error
}

func reverseLendingEffect(tx *gorm.DB, lending *models.Lending) error {
	client, err := lockClient(tx, lending.ClientId)
	if err != nil {
		return err
	}
	branch, err := lockBranch(tx, lending.BranchId)
	if err != nil {
		return err
	}

	if lending.IsLending {
		if lending.LendingAmount.GreaterThan(client.Lending) {
			return Invalid("cannot reverse lending of %s: client debt is only %s",
				lending.LendingAmount, client.Lending)
		}
		client.Lending = client.Lending.Sub(lending.LendingAmount)
		branch.Balance = branch.Balance.Add(lending.LendingAmount)
	} else {
		client.Lending = client.Lending.Add(lending.LendingAmount)
		branch.Balance = branch.Balance.Sub(lending.LendingAmount)
	}

	if err := tx.Omit(clause.Associations).Save(client).Error; err != nil {
		return err
	}
	return tx.Save(branch).Error
}

// UpdateLending replaces a lending event's amount with reverse-then-apply
// semantics, direction and client fixed.
func UpdateLending(tx *gorm.DB, id uint, amount decimal.Decimal) (*models.Lending, error) {
	var lending models.Lending
	if err := forUpdate(tx).First(&lending, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "lending", id)
	}
	if err := reverseLendingEffect(tx, &lending); err != nil {
		return nil, err
	}
	if err := tx.Delete(&models.Lending{}, "id = ?", lending.Id).Error; err != nil {
		return nil, err
	}

	in := &LendingInput{ClientId: lending.ClientId, Amount: amount, BranchId: lending.BranchId}
	if lending.IsLending {
		return GiveLending(tx, in)
	}
	return PayLending(tx, in)
}

func DeleteLending(tx *gorm.DB, id uint) error {
	var lending models.Lending
	if err := forUpdate(tx).First(&lending, "id = ?", id).Error; err != nil {
		return notFoundOr(err, "lending", id)
	}
	if err := reverseLendingEffect(tx, &lending); err != nil {
		return err
	}
	return tx.Delete(&models.Lending{}, "id = ?", lending.Id).Error
}
