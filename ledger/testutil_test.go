package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"autoshop-backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Branch{}, &models.Wallet{}, &models.User{},
		&models.Supplier{}, &models.Client{}, &models.Employee{},
		&models.Product{}, &models.Service{}, &models.Car{},
		&models.Order{}, &models.OrderService{}, &models.OrderProduct{},
		&models.ImportList{}, &models.ImportProduct{},
		&models.Debt{}, &models.Lending{},
		&models.ExpenseType{}, &models.Expense{}, &models.Salary{},
		&models.BranchFundTransfer{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func wantDec(t *testing.T, name, want string, got decimal.Decimal) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

// inTx mimics the per-request transaction the HTTP layer wraps every ledger
// call in, so failures roll everything back like production does.
func inTx(t *testing.T, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	t.Helper()
	return db.Transaction(fn)
}

func mustTx(t *testing.T, db *gorm.DB, fn func(tx *gorm.DB) error) {
	t.Helper()
	if err := inTx(t, db, fn); err != nil {
		t.Fatalf("transaction failed: %v", err)
	}
}

func seedBranch(t *testing.T, db *gorm.DB, balance string) *models.Branch {
	t.Helper()
	branch := &models.Branch{Name: "main branch", Balance: dec(balance)}
	if err := db.Create(branch).Error; err != nil {
		t.Fatalf("seed branch: %v", err)
	}
	return branch
}

func seedWallet(t *testing.T, db *gorm.DB, balance string) *models.Wallet {
	t.Helper()
	wallet := &models.Wallet{Name: models.WalletName, Balance: dec(balance)}
	if err := db.Create(wallet).Error; err != nil {
		t.Fatalf("seed wallet: %v", err)
	}
	return wallet
}

func seedSupplier(t *testing.T, db *gorm.DB, branchId uint) *models.Supplier {
	t.Helper()
	supplier := &models.Supplier{FirstName: "Aziz", LastName: "K", Phone: "+998901112233", BranchId: branchId}
	if err := db.Create(supplier).Error; err != nil {
		t.Fatalf("seed supplier: %v", err)
	}
	return supplier
}

func seedClient(t *testing.T, db *gorm.DB, branchId uint) *models.Client {
	t.Helper()
	client := &models.Client{FirstName: "Olim", LastName: "T", Phone: "+998907654321", BranchId: branchId}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return client
}

func seedEmployee(t *testing.T, db *gorm.DB, branchId uint, position string, commissionPer, kpi, salary int) *models.Employee {
	t.Helper()
	employee := &models.Employee{
		FirstName: "Emp", LastName: position, Phone: "+998901234567",
		Position: position, CommissionPer: commissionPer, KPI: kpi, Salary: salary,
		BranchId: branchId,
	}
	if err := db.Create(employee).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return employee
}

func seedProduct(t *testing.T, db *gorm.DB, branchId, supplierId uint, name string, amount float64, arrival, sell string) *models.Product {
	t.Helper()
	product := &models.Product{
		Code: "P-" + name, Name: name, Amount: amount, Unit: "pcs",
		ArrivalPrice: dec(arrival), SellPrice: dec(sell),
		SupplierId: supplierId, BranchId: branchId,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func seedService(t *testing.T, db *gorm.DB, branchId uint, name, price string) *models.Service {
	t.Helper()
	service := &models.Service{Name: name, Price: dec(price), BranchId: branchId}
	if err := db.Create(service).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	return service
}

func seedCar(t *testing.T, db *gorm.DB, branchId, clientId uint) *models.Car {
	t.Helper()
	car := &models.Car{Name: "Cobalt", Brand: "Chevrolet", ClientId: clientId, BranchId: branchId}
	if err := db.Create(car).Error; err != nil {
		t.Fatalf("seed car: %v", err)
	}
	return car
}

func getBranch(t *testing.T, db *gorm.DB, id uint) *models.Branch {
	t.Helper()
	var branch models.Branch
	if err := db.First(&branch, "id = ?", id).Error; err != nil {
		t.Fatalf("reload branch %d: %v", id, err)
	}
	return &branch
}

func getWallet(t *testing.T, db *gorm.DB) *models.Wallet {
	t.Helper()
	var wallet models.Wallet
	if err := db.First(&wallet, "name = ?", models.WalletName).Error; err != nil {
		t.Fatalf("reload wallet: %v", err)
	}
	return &wallet
}

func getSupplier(t *testing.T, db *gorm.DB, id uint) *models.Supplier {
	t.Helper()
	var supplier models.Supplier
	if err := db.First(&supplier, "id = ?", id).Error; err != nil {
		t.Fatalf("reload supplier %d: %v", id, err)
	}
	return &supplier
}

func getClient(t *testing.T, db *gorm.DB, id uint) *models.Client {
	t.Helper()
	var client models.Client
	if err := db.First(&client, "id = ?", id).Error; err != nil {
		t.Fatalf("reload client %d: %v", id, err)
	}
	return &client
}

func getEmployee(t *testing.T, db *gorm.DB, id uint) *models.Employee {
	t.Helper()
	var employee models.Employee
	if err := db.First(&employee, "id = ?", id).Error; err != nil {
		t.Fatalf("reload employee %d: %v", id, err)
	}
	return &employee
}

func getProduct(t *testing.T, db *gorm.DB, id uint) *models.Product {
	t.Helper()
	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		t.Fatalf("reload product %d: %v", id, err)
	}
	return &product
}

func getOrderRow(t *testing.T, db *gorm.DB, id uint) *models.Order {
	t.Helper()
	var order models.Order
	if err := db.First(&order, "id = ?", id).Error; err != nil {
		t.Fatalf("reload order %d: %v", id, err)
	}
	return &order
}

func wantLedgerError(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	le, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *ledger.Error, got %T: %v", err, err)
	}
	if le.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, le.Code, le.Message)
	}
}
