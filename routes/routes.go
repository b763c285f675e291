package routes

import (
	"github.com/gofiber/fiber/v2"

	"autoshop-backend/controllers"
	"autoshop-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/login", controllers.Login)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then the per-request transaction (commits/rolls back around the handler)
	protected.Use(middlewares.Tx())

	protected.Get("/me", controllers.Me)

	// Admin-only management
	admin := protected.Group("", middlewares.RequireAdmin())
	admin.Post("/register", controllers.Register)
	admin.Post("/branch", controllers.CreateBranch)
	admin.Put("/branch/:id", controllers.UpdateBranch)
	admin.Post("/wallet", controllers.CreateWallet)
	admin.Post("/salaries/accrue", controllers.AccrueSalaries)

	// Branches & wallet
	protected.Get("/branches", controllers.GetBranches)
	protected.Get("/branch/:id", controllers.GetBranch)
	protected.Get("/branch/:id/balance", controllers.GetBranchBalance)
	protected.Get("/wallet", controllers.GetWallet)

	// Suppliers
	protected.Post("/supplier", controllers.CreateSupplier)
	protected.Get("/suppliers", controllers.GetSuppliers)
	protected.Get("/supplier/:id", controllers.GetSupplier)
	protected.Put("/supplier/:id", controllers.UpdateSupplier)
	protected.Delete("/supplier/:id", controllers.DeleteSupplier)

	// Clients
	protected.Post("/client", controllers.CreateClient)
	protected.Get("/clients", controllers.GetClients)
	protected.Get("/client/:id", controllers.GetClient)
	protected.Put("/client/:id", controllers.UpdateClient)
	protected.Delete("/client/:id", controllers.DeleteClient)

	// Employees
	protected.Post("/employee", controllers.CreateEmployee)
	protected.Get("/employees", controllers.GetEmployees)
	protected.Get("/employee/:id", controllers.GetEmployee)
	protected.Put("/employee/:id", controllers.UpdateEmployee)
	protected.Delete("/employee/:id", controllers.DeleteEmployee)

	// Cars
	protected.Post("/car", controllers.CreateCar)
	protected.Get("/cars", controllers.GetCars)
	protected.Get("/car/:id", controllers.GetCar)
	protected.Put("/car/:id", controllers.UpdateCar)
	protected.Delete("/car/:id", controllers.DeleteCar)

	// Products & services
	protected.Post("/product", controllers.CreateProduct)
	protected.Get("/products", controllers.GetProducts)
	protected.Get("/product/:id", controllers.GetProduct)
	protected.Put("/product/:id", controllers.UpdateProduct)
	protected.Delete("/product/:id", controllers.DeleteProduct)
	protected.Get("/warehouse/value", controllers.GetWarehouseValue)

	protected.Post("/service", controllers.CreateService)
	protected.Get("/services", controllers.GetServices)
	protected.Put("/service/:id", controllers.UpdateService)
	protected.Delete("/service/:id", controllers.DeleteService)

	// Orders and their lines
	protected.Post("/order", controllers.CreateOrder)
	protected.Get("/orders", controllers.GetOrders)
	protected.Get("/order/:id", controllers.GetOrder)
	protected.Put("/order/:id", controllers.UpdateOrder)
	protected.Delete("/order/:id", controllers.DeleteOrder)
	protected.Post("/order/:id/service", controllers.AddOrderService)
	protected.Put("/order-service/:id", controllers.UpdateOrderService)
	protected.Delete("/order-service/:id", controllers.DeleteOrderService)
	protected.Post("/order/:id/product", controllers.AddOrderProduct)
	protected.Put("/order-product/:id", controllers.UpdateOrderProduct)
	protected.Delete("/order-product/:id", controllers.DeleteOrderProduct)

	// Imports
	protected.Post("/import", controllers.CreateImport)
	protected.Get("/imports", controllers.GetImports)
	protected.Get("/import/:id", controllers.GetImport)
	protected.Put("/import-product/:id", controllers.UpdateImportProduct)
	protected.Delete("/import-product/:id", controllers.DeleteImportProduct)
	protected.Delete("/import/:id", controllers.DeleteImport)

	// Supplier debts
	protected.Post("/debt/get", controllers.GetDebtFromSupplier)
	protected.Post("/debt/pay", controllers.PayDebtToSupplier)
	protected.Get("/debts", controllers.GetDebts)
	protected.Get("/debt/:id", controllers.GetDebt)
	protected.Put("/debt/:id", controllers.UpdateDebt)
	protected.Delete("/debt/:id", controllers.DeleteDebt)

	// Client lendings
	protected.Post("/lending/give", controllers.GiveLending)
	protected.Post("/lending/pay", controllers.PayLending)
	protected.Get("/lendings", controllers.GetLendings)
	protected.Get("/lending/:id", controllers.GetLending)
	protected.Put("/lending/:id", controllers.UpdateLending)
	protected.Delete("/lending/:id", controllers.DeleteLending)

	// Expenses & salaries
	protected.Post("/expense-type", controllers.CreateExpenseType)
	protected.Get("/expense-types", controllers.GetExpenseTypes)
	protected.Post("/expense", controllers.CreateExpense)
	protected.Get("/expenses", controllers.GetExpenses)
	protected.Get("/expense/:id", controllers.GetExpense)
	protected.Put("/expense/:id", controllers.UpdateExpense)
	protected.Delete("/expense/:id", controllers.DeleteExpense)

	protected.Post("/salary", controllers.CreateSalary)
	protected.Get("/salaries", controllers.GetSalaries)
	protected.Get("/salary/:id", controllers.GetSalary)
	protected.Put("/salary/:id", controllers.UpdateSalary)
	protected.Delete("/salary/:id", controllers.DeleteSalary)

	// Fund sweeps
	protected.Post("/transfer", controllers.SweepBranchFunds)
	protected.Get("/transfers", controllers.GetTransfers)
	protected.Delete("/transfer/:id", controllers.DeleteTransfer)
}
