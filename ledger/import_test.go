package ledger

import (
	"testing"

	"gorm.io/gorm"

	"autoshop-backend/models"
)

func TestImportStockCreatesWarehouseRow(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "0")
	supplier := seedSupplier(t, db, branch.Id)
	seedWallet(t, db, "1000")

	var list *models.ImportList
	mustTx(t, db, func(tx *gorm.DB) error {
		var err error
		list, err = ImportStock(tx, &ImportInput{
			SupplierId:  supplier.Id,
			Paid:        dec("100"),
			PaymentType: models.PaymentTransfer,
			BranchId:    branch.Id,
			Products: []ImportProductInput{
				{Name: "brake pad", Code: "BP-1", Unit: "pcs", Amount: 5, ArrivalPrice: dec("60"), SellPrice: dec("90")},
			},
		})
		return err
	})

	wantDec(t, "list.total", "300", list.Total)
	wantDec(t, "list.debt", "200", list.Debt)

	var product models.Product
	if err := db.First(&product, "name = ? AND branch_id = ?", "brake pad", branch.Id).Error; err != nil {
		t.Fatalf("warehouse row not created: %v", err)
	}
	if product.Amount != 5 {
		t.Errorf("stock = %g, want 5", product.Amount)
	}
	wantDec(t, "product.sell_price", "90", product.SellPrice)
	if product.IsTemp {
		t.Error("imported product must not be temp")
	}

	wantDec(t, "supplier.debt", "200", getSupplier(t, db, supplier.Id).Debt)
	wantDec(t, "wallet.balance", "900", getWallet(t, db).Balance)
}

func TestImportStockMergesByName(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "0")
	supplier := seedSupplier(t, db, branch.Id)
	seedWallet(t, db, "1000")
	existing := seedProduct(t, db, branch.Id, supplier.Id, "spark plug", 4, "10", "15")

	mustTx(t, db, func(tx *gorm.DB) error {
		_, err := ImportStock(tx, &ImportInput{
			SupplierId:  supplier.Id,
			PaymentType: models.PaymentCash,
			BranchId:    branch.Id,
			Products: []ImportProductInput{
				{Name: "spark plug", Amount: 6, ArrivalPrice: dec("12"), SellPrice: dec("18")},
			},
		})
		return err
	})

	product := getProduct(t, db, existing.Id)
	if product.Amount != 10 {
		t.Errorf("merged stock = %g, want 10", product.Amount)
	}
	// Last import wins on pricing.
	wantDec(t, "product.arrival_price", "12", product.ArrivalPrice)
	wantDec(t, "product.sell_price", "18", product.SellPrice)

	var count int64
	db.Model(&models.Product{}).Where("name = ?", "spark plug").Count(&count)
	if count != 1 {
		t.Errorf("product rows = %d, want 1", count)
	}
}

func TestImportStockPromotesTempProduct(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "0")
	supplier := seedSupplier(t, db, branch.Id)
	seedWallet(t, db, "1000")

	temp := &models.Product{Name: "air filter", IsTemp: true, SupplierId: supplier.Id, BranchId: branch.Id}
	if err := db.Create(temp).Error; err != nil {
		t.Fatalf("seed temp product: %v", err)
	}

	mustTx(t, db, func(tx *gorm.DB) error {
		_, err := ImportStock(tx, &ImportInput{
			SupplierId:  supplier.Id,
			PaymentType: models.PaymentCash,
			BranchId:    branch.Id,
			Products: []ImportProductInput{
				{Name: "air filter", Amount: 3, ArrivalPrice: dec("20"), SellPrice: dec("35")},
			},
		})
		return err
	})

	product := getProduct(t, db, temp.Id)
	if product.IsTemp {
		t.Error("temp product should be promoted to a priced row")
	}
	if product.Amount != 3 {
		t.Errorf("stock = %g, want 3", product.Amount)
	}
	wantDec(t, "product.sell_price", "35", product.SellPrice)
}

func TestImportStockInitialAndCashHaveNoFinancialEffect(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "0")
	supplier := seedSupplier(t, db, branch.Id)
	seedWallet(t, db, "1000")

	mustTx(t, db, func(tx *gorm.DB) error {
		_, err := ImportStock(tx, &ImportInput{
			SupplierId:     supplier.Id,
			PaymentType:    models.PaymentTransfer,
			IsInitialStock: true,
			BranchId:       branch.Id,
			Products: []ImportProductInput{
				{Name: "wiper", Amount: 2, ArrivalPrice: dec("30"), SellPrice: dec("50")},
			},
		})
		return err
	})
	mustTx(t, db, func(tx *gorm.DB) error {
		_, err := ImportStock(tx, &ImportInput{
			SupplierId:  supplier.Id,
			Paid:        dec("40"),
			PaymentType: models.PaymentCash,
			BranchId:    branch.Id,
			Products: []ImportProductInput{
				{Name: "bulb", Amount: 4, ArrivalPrice: dec("10"), SellPrice: dec("20")},
			},
		})
		return err
	})

	wantDec(t, "supplier.debt", "0", getSupplier(t, db, supplier.Id).Debt)
	wantDec(t, "wallet.balance", "1000", getWallet(t, db).Balance)
}

func TestImportStockRejectsOverpayment(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "0")
	supplier := seedSupplier(t, db, branch.Id)
	seedWallet(t, db, "1000")

	err := inTx(t, db, func(tx *gorm.DB) error {
		_, err := ImportStock(tx, &ImportInput{
			SupplierId:  supplier.Id,
			Paid:        dec("500"),
			PaymentType: models.PaymentTransfer,
			BranchId:    branch.Id,
			Products: []ImportProductInput{
				{Name: "hose", Amount: 2, ArrivalPrice: dec("50"), SellPrice: dec("80")},
			},
		})
		return err
	})
	wantLedgerError(t, err, CodeValidation)

	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count != 0 {
		t.Errorf("products persisted = %d, want 0", count)
	}
}

func TestImportStockRejectsNegativePaid(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "0")
	supplier := seedSupplier(t, db, branch.Id)
	seedWallet(t, db, "1000")

	err := inTx(t, db, func(tx *gorm.DB) error {
		_, err := ImportStock(tx, &ImportInput{
			SupplierId:  supplier.Id,
			Paid:        dec("-40"),
			PaymentType: models.PaymentTransfer,
			BranchId:    branch.Id,
			Products: []ImportProductInput{
				{Name: "gasket", Amount: 1, ArrivalPrice: dec("30"), SellPrice: dec("45")},
			},
		})
		return err
	})
	wantLedgerError(t, err, CodeValidation)
	wantDec(t, "wallet.balance", "1000", getWallet(t, db).Balance)
}

func TestDeleteImportListReversesEverything(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "0")
	supplier := seedSupplier(t, db, branch.Id)
	seedWallet(t, db, "1000")

	var list *models.ImportList
	mustTx(t, db, func(tx *gorm.DB) error {
		var err error
		list, err = ImportStock(tx, &ImportInput{
			SupplierId:  supplier.Id,
			Paid:        dec("100"),
			PaymentType: models.PaymentTransfer,
			BranchId:    branch.Id,
			Products: []ImportProductInput{
				{Name: "clutch", Amount: 2, ArrivalPrice: dec("200"), SellPrice: dec("320")},
			},
		})
		return err
	})

	mustTx(t, db, func(tx *gorm.DB) error {
		return DeleteImportList(tx, list.Id)
	})

	wantDec(t, "supplier.debt", "0", getSupplier(t, db, supplier.Id).Debt)
	wantDec(t, "wallet.balance", "1000", getWallet(t, db).Balance)

	var product models.Product
	if err := db.First(&product, "name = ?", "clutch").Error; err != nil {
		t.Fatalf("warehouse row vanished: %v", err)
	}
	if product.Amount != 0 {
		t.Errorf("stock = %g, want 0", product.Amount)
	}
	var count int64
	db.Model(&models.ImportList{}).Count(&count)
	if count != 0 {
		t.Errorf("import lists remaining = %d, want 0", count)
	}
}

func TestUpdateImportProductAdjustsStockAndDebt(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "0")
	supplier := seedSupplier(t, db, branch.Id)
	seedWallet(t, db, "1000")

	var list *models.ImportList
	mustTx(t, db, func(tx *gorm.DB) error {
		var err error
		list, err = ImportStock(tx, &ImportInput{
			SupplierId:  supplier.Id,
			PaymentType: models.PaymentNone,
			BranchId:    branch.Id,
			Products: []ImportProductInput{
				{Name: "belt", Amount: 5, ArrivalPrice: dec("40"), SellPrice: dec("60")},
			},
		})
		return err
	})
	wantDec(t, "supplier.debt", "200", getSupplier(t, db, supplier.Id).Debt)

	var line models.ImportProduct
	if err := db.First(&line, "import_list_id = ?", list.Id).Error; err != nil {
		t.Fatalf("load import line: %v", err)
	}

	mustTx(t, db, func(tx *gorm.DB) error {
		_, err := UpdateImportProduct(tx, line.Id, &ImportProductInput{
			Name: "belt", Amount: 3, ArrivalPrice: dec("40"), SellPrice: dec("60"),
		})
		return err
	})

	var product models.Product
	if err := db.First(&product, "name = ?", "belt").Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	if product.Amount != 3 {
		t.Errorf("stock = %g, want 3", product.Amount)
	}
	// Debt follows the new total: 3 x 40.
	wantDec(t, "supplier.debt", "120", getSupplier(t, db, supplier.Id).Debt)
}

func TestDeleteImportProductFailsWhenStockAlreadySold(t *testing.T) {
	db := newTestDB(t)
	branch := seedBranch(t, db, "0")
	supplier := seedSupplier(t, db, branch.Id)
	seedWallet(t, db, "1000")

	var list *models.ImportList
	mustTx(t, db, func(tx *gorm.DB) error {
		var err error
		list, err = ImportStock(tx, &ImportInput{
			SupplierId:  supplier.Id,
			PaymentType: models.PaymentCash,
			BranchId:    branch.Id,
			Products: []ImportProductInput{
				{Name: "rotor", Amount: 2, ArrivalPrice: dec("70"), SellPrice: dec("110")},
			},
		})
		return err
	})

	// Simulate the stock leaving through a sale.
	if err := db.Model(&models.Product{}).Where("name = ?", "rotor").Update("amount", 1).Error; err != nil {
		t.Fatalf("adjust stock: %v", err)
	}

	var line models.ImportProduct
	if err := db.First(&line, "import_list_id = ?", list.Id).Error; err != nil {
		t.Fatalf("load import line: %v", err)
	}
	err := inTx(t, db, func(tx *gorm.DB) error {
		return DeleteImportProduct(tx, line.Id)
	})
	wantLedgerError(t, err, CodeValidation)
}
