package ledger

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"autoshop-backend/models"
)

type OrderServiceInput struct {
	ServiceId    uint            `json:"service_id" validate:"required"`
	Part         float64         `json:"part" validate:"gt=0"`
	MechanicId   *uint           `json:"mechanic_id"`
	DiscountType string          `json:"discount_type"`
	Discount     decimal.Decimal `json:"discount"`
	Description  string          `json:"description"`
}

type OrderProductInput struct {
	ProductId    uint            `json:"product_id" validate:"required"`
	Amount       float64         `json:"amount" validate:"gt=0"`
	DiscountType string          `json:"discount_type"`
	Discount     decimal.Decimal `json:"discount"`
	Description  string          `json:"description"`
}

type OrderInput struct {
	CarId       uint            `json:"car_id" validate:"required"`
	Description string          `json:"description"`
	ManagerId   *uint           `json:"manager_id"`
	Paid        decimal.Decimal `json:"paid"`
	OdoMileage  float64         `json:"odo_mileage"`
	HevMileage  float64         `json:"hev_mileage"`
	EvMileage   float64         `json:"ev_mileage"`
	StartDate   *datatypes.Date `json:"start_date"`
	EndDate     *datatypes.Date `json:"end_date"`
	PlanDate    *datatypes.Date `json:"plan_date"`
	Services    []OrderServiceInput `json:"services" validate:"dive"`
	Products    []OrderProductInput `json:"products" validate:"dive"`
}

func discountTypeOrDefault(t string) string {
	if t == "" {
		return models.DiscountPercent
	}
	return t
}

// RecordOrder atomically records a service order: header, every line, the
// stock decrements, the commission accruals and the client/branch balance
// effects. The client is derived from the car; the branch from the car's
// branch. Any rejected line aborts the whole order.
func RecordOrder(tx *gorm.DB, in *OrderInput) (*models.Order, error) {
	if in.Paid.Sign() < 0 {
		return nil, Invalid("paid must not be negative, got %s", in.Paid)
	}
	var car models.Car
	if err := forUpdate(tx).First(&car, "id = ?", in.CarId).Error; err != nil {
		return nil, notFoundOr(err, "car", in.CarId)
	}

	if len(in.Products) > 0 && in.ManagerId == nil {
		return nil, Invalid("manager is required when the order sells products")
	}
	if in.ManagerId != nil {
		manager, err := lockEmployee(tx, *in.ManagerId)
		if err != nil {
			return nil, err
		}
		if manager.Position != models.PositionManager {
			return nil, Invalid("employee %d is not a manager", manager.Id)
		}
	}

	today := datatypes.Date(time.Now())
	order := &models.Order{
		CarId:       car.Id,
		ClientId:    car.ClientId,
		Description: in.Description,
		ManagerId:   in.ManagerId,
		Paid:        in.Paid,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		PlanDate:    in.PlanDate,
		BranchId:    car.BranchId,
	}
	if order.StartDate == nil {
		order.StartDate = &today
	}
	if order.PlanDate == nil {
		order.PlanDate = &today
	}
	if order.EndDate == nil {
		order.EndDate = order.StartDate
	}
	if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
		return nil, err
	}

	for i := range in.Services {
		if _, err := addServiceLine(tx, order, &in.Services[i]); err != nil {
			return nil, err
		}
	}
	for i := range in.Products {
		if _, err := addProductLine(tx, order, &in.Products[i]); err != nil {
			return nil, err
		}
	}

	order.Landing = order.Total.Sub(order.Paid)
	if err := saveOrderTotals(tx, order); err != nil {
		return nil, err
	}

	client, err := lockClient(tx, car.ClientId)
	if err != nil {
		return nil, err
	}
	client.Lending = client.Lending.Add(order.Landing)
	if err := tx.Omit(clause.Associations).Save(client).Error; err != nil {
		return nil, err
	}

	branch, err := lockBranch(tx, order.BranchId)
	if err != nil {
		return nil, err
	}
	branch.Balance = branch.Balance.Add(order.Paid)
	if err := tx.Save(branch).Error; err != nil {
		return nil, err
	}

	if err := snapshotMileage(tx, order, &car, in); err != nil {
		return nil, err
	}
	return order, nil
}

// snapshotMileage exchanges mileage between the order and the car: a value
// supplied on the order updates the car, a missing one is filled in from the
// car's current reading.
func snapshotMileage(tx *gorm.DB, order *models.Order, car *models.Car, in *OrderInput) error {
	if in.OdoMileage > 0 {
		car.OdoMileage = in.OdoMileage
	}
	order.OdoMileage = car.OdoMileage
	if in.HevMileage > 0 {
		car.HevMileage = in.HevMileage
	}
	order.HevMileage = car.HevMileage
	if in.EvMileage > 0 {
		car.EvMileage = in.EvMileage
	}
	order.EvMileage = car.EvMileage

	if err := tx.Omit(clause.Associations).Save(car).Error; err != nil {
		return err
	}
	return tx.Model(&models.Order{}).Where("id = ?", order.Id).Updates(map[string]any{
		"odo_mileage": order.OdoMileage,
		"hev_mileage": order.HevMileage,
		"ev_mileage":  order.EvMileage,
	}).Error
}

func saveOrderTotals(tx *gorm.DB, order *models.Order) error {
	return tx.Model(&models.Order{}).Where("id = ?", order.Id).Updates(map[string]any{
		"overall_total": order.OverallTotal,
		"total":         order.Total,
		"paid":          order.Paid,
		"landing":       order.Landing,
		"product_total": order.ProductTotal,
		"service_total": order.ServiceTotal,
	}).Error
}

// addServiceLine computes and persists one service line and accrues the
// mechanic KPI. Order totals are updated in memory; the caller persists them.
func addServiceLine(tx *gorm.DB, order *models.Order, in *OrderServiceInput) (*models.OrderService, error) {
	var service models.Service
	if err := tx.First(&service, "id = ?", in.ServiceId).Error; err != nil {
		return nil, notFoundOr(err, "service", in.ServiceId)
	}
	if service.BranchId != order.BranchId {
		return nil, Invalid("service %d belongs to another branch", service.Id)
	}

	part := decimal.NewFromFloat(in.Part)
	preDiscount := service.Price.Mul(part).Round(2)
	discountType := discountTypeOrDefault(in.DiscountType)
	// Labor discounts are strict: a line may be cheapened but never zeroed.
	if in.Discount.Sign() > 0 {
		if discountType == models.DiscountPercent && !in.Discount.LessThan(hundred) {
			return nil, Invalid("percentage discount on services must be below 100, got %s", in.Discount)
		}
		if discountType == models.DiscountMoney && !in.Discount.LessThan(service.Price) {
			return nil, Invalid("money discount on services must be below the price %s, got %s", service.Price, in.Discount)
		}
	}
	total, err := applyDiscount(preDiscount, in.Discount, discountType, service.Price)
	if err != nil {
		return nil, err
	}

	// KPI accrual is independent of the discount. The accrued figure is
	// frozen on the line so a later rate change cannot skew the reversal.
	var mechanic *models.Employee
	kpiAccrued := decimal.Zero
	if in.MechanicId != nil {
		mechanic, err = lockEmployee(tx, *in.MechanicId)
		if err != nil {
			return nil, err
		}
		if mechanic.Position != models.PositionMechanic {
			return nil, Invalid("employee %d is not a mechanic", mechanic.Id)
		}
		kpiAccrued = decimal.NewFromInt(int64(mechanic.KPI)).Mul(part)
	}

	line := &models.OrderService{
		OrderId:      order.Id,
		ServiceId:    service.Id,
		Part:         in.Part,
		MechanicId:   in.MechanicId,
		Price:        service.Price,
		KpiAccrued:   kpiAccrued,
		DiscountType: discountType,
		Discount:     in.Discount,
		Total:        total,
		Description:  in.Description,
	}
	if err := tx.Omit(clause.Associations).Create(line).Error; err != nil {
		return nil, err
	}

	if mechanic != nil {
		mechanic.Balance = mechanic.Balance.Add(kpiAccrued)
		if err := tx.Omit(clause.Associations).Save(mechanic).Error; err != nil {
			return nil, err
		}
	}

	order.Total = order.Total.Add(total)
	order.ServiceTotal = order.ServiceTotal.Add(total)
	order.OverallTotal = order.OverallTotal.Add(preDiscount)
	return line, nil
}

// reverseServiceLine undoes exactly what addServiceLine applied, reading the
// frozen figures off the line row rather than the current catalog.
func reverseServiceLine(tx *gorm.DB, order *models.Order, line *models.OrderService) error {
	if line.MechanicId != nil {
		mechanic, err := lockEmployee(tx, *line.MechanicId)
		if err != nil {
			return err
		}
		mechanic.Balance = mechanic.Balance.Sub(line.KpiAccrued)
		if err := tx.Omit(clause.Associations).Save(mechanic).Error; err != nil {
			return err
		}
	}

	part := decimal.NewFromFloat(line.Part)
	order.Total = order.Total.Sub(line.Total)
	order.ServiceTotal = order.ServiceTotal.Sub(line.Total)
	order.OverallTotal = order.OverallTotal.Sub(line.Price.Mul(part).Round(2))
	return nil
}

// addProductLine computes and persists one product line: stock decrement,
// manager commission accrual and the warehouse valuation snapshot.
func addProductLine(tx *gorm.DB, order *models.Order, in *OrderProductInput) (*models.OrderProduct, error) {
	product, err := lockProduct(tx, in.ProductId)
	if err != nil {
		return nil, err
	}
	if product.BranchId != order.BranchId {
		return nil, Invalid("product %d belongs to another branch", product.Id)
	}

	amount := decimal.NewFromFloat(in.Amount)
	preDiscount := product.SellPrice.Mul(amount).Round(2)
	discountType := discountTypeOrDefault(in.DiscountType)
	if err := checkMaxDiscount(product, in.Discount, discountType); err != nil {
		return nil, err
	}
	total, err := applyDiscount(preDiscount, in.Discount, discountType, product.SellPrice)
	if err != nil {
		return nil, err
	}

	if product.Amount < in.Amount {
		return nil, Invalid("not enough product stock: available %g, requested %g", product.Amount, in.Amount)
	}
	product.Amount -= in.Amount
	if err := tx.Omit(clause.Associations).Save(product).Error; err != nil {
		return nil, err
	}

	// The accrued commission is frozen on the line so a later reprice or
	// rate change cannot skew the reversal.
	commission := decimal.Zero
	if order.ManagerId != nil {
		manager, err := lockEmployee(tx, *order.ManagerId)
		if err != nil {
			return nil, err
		}
		commission = managerCommission(manager, in.Amount, product.SellPrice)
		manager.Balance = manager.Balance.Add(commission)
		if err := tx.Omit(clause.Associations).Save(manager).Error; err != nil {
			return nil, err
		}
	}

	sellValue, _, err := warehouseValues(tx, order.BranchId)
	if err != nil {
		return nil, err
	}

	line := &models.OrderProduct{
		OrderId:            order.Id,
		ProductId:          product.Id,
		Amount:             in.Amount,
		SellPrice:          product.SellPrice,
		Commission:         commission,
		DiscountType:       discountType,
		Discount:           in.Discount,
		Total:              total,
		Description:        in.Description,
		WarehouseRemainder: sellValue,
	}
	if err := tx.Omit(clause.Associations).Create(line).Error; err != nil {
		return nil, err
	}

	order.Total = order.Total.Add(total)
	order.ProductTotal = order.ProductTotal.Add(total)
	order.OverallTotal = order.OverallTotal.Add(preDiscount)
	return line, nil
}

// checkMaxDiscount enforces the per-product discount ceiling. A zero
// max_discount means the product carries no cap. Money discounts are compared
// against the cap's share of the sell price.
func checkMaxDiscount(product *models.Product, discount decimal.Decimal, discountType string) error {
	if product.MaxDiscount <= 0 || discount.Sign() <= 0 {
		return nil
	}
	ceiling := decimal.NewFromInt(int64(product.MaxDiscount))
	switch discountType {
	case models.DiscountPercent:
		if discount.GreaterThan(ceiling) {
			return Invalid("discount on product %d is capped at %s%%, got %s%%", product.Id, ceiling, discount)
		}
	case models.DiscountMoney:
		limit := product.SellPrice.Mul(ceiling).Div(hundred).Round(2)
		if discount.GreaterThan(limit) {
			return Invalid("discount on product %d is capped at %s (%s%%), got %s", product.Id, limit, ceiling, discount)
		}
	}
	return nil
}

// managerCommission accrues on the sell price of the sold amount. An earlier
// revision of the formula used the sell/arrival margin on reversal only;
// reversal here always undoes the accrued figure.
func managerCommission(manager *models.Employee, amount float64, sellPrice decimal.Decimal) decimal.Decimal {
	return sellPrice.Mul(decimal.NewFromFloat(amount)).
		Mul(decimal.NewFromInt(int64(manager.CommissionPer))).Div(hundred).Round(2)
}

// reverseProductLine undoes exactly what addProductLine applied: stock is
// restored, and the frozen commission and sale-time sell price are backed
// out of the balances and totals.
func reverseProductLine(tx *gorm.DB, order *models.Order, line *models.OrderProduct) error {
	product, err := lockProduct(tx, line.ProductId)
	if err != nil {
		return err
	}
	product.Amount += line.Amount
	if err := tx.Omit(clause.Associations).Save(product).Error; err != nil {
		return err
	}

	if order.ManagerId != nil && !line.Commission.IsZero() {
		manager, err := lockEmployee(tx, *order.ManagerId)
		if err != nil {
			return err
		}
		manager.Balance = manager.Balance.Sub(line.Commission)
		if err := tx.Omit(clause.Associations).Save(manager).Error; err != nil {
			return err
		}
	}

	amount := decimal.NewFromFloat(line.Amount)
	order.Total = order.Total.Sub(line.Total)
	order.ProductTotal = order.ProductTotal.Sub(line.Total)
	order.OverallTotal = order.OverallTotal.Sub(line.SellPrice.Mul(amount).Round(2))
	return nil
}

func getOrder(tx *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	if err := forUpdate(tx).First(&order, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "order", id)
	}
	return &order, nil
}

// settleOrderTotals persists the order totals after a line-level event and
// moves the landing delta onto the client's lending so the client debt stays
// the running sum of order landings.
func settleOrderTotals(tx *gorm.DB, order *models.Order) error {
	oldLanding := order.Landing
	order.Landing = order.Total.Sub(order.Paid)
	delta := order.Landing.Sub(oldLanding)

	if !delta.IsZero() {
		client, err := lockClient(tx, order.ClientId)
		if err != nil {
			return err
		}
		client.Lending = client.Lending.Add(delta)
		if err := tx.Omit(clause.Associations).Save(client).Error; err != nil {
			return err
		}
	}
	return saveOrderTotals(tx, order)
}

// AddOrderService appends a service line to an existing order.
func AddOrderService(tx *gorm.DB, orderId uint, in *OrderServiceInput) (*models.OrderService, error) {
	order, err := getOrder(tx, orderId)
	if err != nil {
		return nil, err
	}
	line, err := addServiceLine(tx, order, in)
	if err != nil {
		return nil, err
	}
	return line, settleOrderTotals(tx, order)
}

// UpdateOrderService reverses the line's previous effect and applies the new
// input on the same row. Moving part from P1 to P2 moves the mechanic balance
// by exactly kpi*(P2-P1).
func UpdateOrderService(tx *gorm.DB, id uint, in *OrderServiceInput) (*models.OrderService, error) {
	var line models.OrderService
	if err := forUpdate(tx).First(&line, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "order service", id)
	}
	order, err := getOrder(tx, line.OrderId)
	if err != nil {
		return nil, err
	}
	if err := reverseServiceLine(tx, order, &line); err != nil {
		return nil, err
	}
	if err := tx.Delete(&models.OrderService{}, "id = ?", line.Id).Error; err != nil {
		return nil, err
	}
	fresh, err := addServiceLine(tx, order, in)
	if err != nil {
		return nil, err
	}
	return fresh, settleOrderTotals(tx, order)
}

func DeleteOrderService(tx *gorm.DB, id uint) error {
	var line models.OrderService
	if err := forUpdate(tx).First(&line, "id = ?", id).Error; err != nil {
		return notFoundOr(err, "order service", id)
	}
	order, err := getOrder(tx, line.OrderId)
	if err != nil {
		return err
	}
	if err := reverseServiceLine(tx, order, &line); err != nil {
		return err
	}
	if err := tx.Delete(&models.OrderService{}, "id = ?", line.Id).Error; err != nil {
		return err
	}
	return settleOrderTotals(tx, order)
}

// AddOrderProduct appends a product line to an existing order. The order must
// already carry a manager, since product sales accrue manager commission.
func AddOrderProduct(tx *gorm.DB, orderId uint, in *OrderProductInput) (*models.OrderProduct, error) {
	order, err := getOrder(tx, orderId)
	if err != nil {
		return nil, err
	}
	if order.ManagerId == nil {
		return nil, Invalid("manager is required when the order sells products")
	}
	line, err := addProductLine(tx, order, in)
	if err != nil {
		return nil, err
	}
	return line, settleOrderTotals(tx, order)
}

func UpdateOrderProduct(tx *gorm.DB, id uint, in *OrderProductInput) (*models.OrderProduct, error) {
	var line models.OrderProduct
	if err := forUpdate(tx).First(&line, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "order product", id)
	}
	order, err := getOrder(tx, line.OrderId)
	if err != nil {
		return nil, err
	}
	if err := reverseProductLine(tx, order, &line); err != nil {
		return nil, err
	}
	if err := tx.Delete(&models.OrderProduct{}, "id = ?", line.Id).Error; err != nil {
		return nil, err
	}
	fresh, err := addProductLine(tx, order, in)
	if err != nil {
		return nil, err
	}
	return fresh, settleOrderTotals(tx, order)
}

func DeleteOrderProduct(tx *gorm.DB, id uint) error {
	var line models.OrderProduct
	if err := forUpdate(tx).First(&line, "id = ?", id).Error; err != nil {
		return notFoundOr(err, "order product", id)
	}
	order, err := getOrder(tx, line.OrderId)
	if err != nil {
		return err
	}
	if err := reverseProductLine(tx, order, &line); err != nil {
		return err
	}
	if err := tx.Delete(&models.OrderProduct{}, "id = ?", line.Id).Error; err != nil {
		return err
	}
	return settleOrderTotals(tx, order)
}

// reverseOrderEffects backs out everything the order applied: every line's
// stock/commission effect, then the client lending and branch balance.
func reverseOrderEffects(tx *gorm.DB, order *models.Order) error {
	var services []models.OrderService
	if err := tx.Where("order_id = ?", order.Id).Find(&services).Error; err != nil {
		return err
	}
	for i := range services {
		if err := reverseServiceLine(tx, order, &services[i]); err != nil {
			return err
		}
	}
	var products []models.OrderProduct
	if err := tx.Where("order_id = ?", order.Id).Find(&products).Error; err != nil {
		return err
	}
	for i := range products {
		if err := reverseProductLine(tx, order, &products[i]); err != nil {
			return err
		}
	}

	client, err := lockClient(tx, order.ClientId)
	if err != nil {
		return err
	}
	client.Lending = client.Lending.Sub(order.Landing)
	if err := tx.Omit(clause.Associations).Save(client).Error; err != nil {
		return err
	}

	branch, err := lockBranch(tx, order.BranchId)
	if err != nil {
		return err
	}
	branch.Balance = branch.Balance.Sub(order.Paid)
	return tx.Save(branch).Error
}

// UpdateOrder is "delete old effect, then apply new effect" in one
// transaction: the previous lines and balance effects are reversed, the old
// line rows dropped, and the new input applied onto the same order row.
func UpdateOrder(tx *gorm.DB, id uint, in *OrderInput) (*models.Order, error) {
	if in.Paid.Sign() < 0 {
		return nil, Invalid("paid must not be negative, got %s", in.Paid)
	}
	order, err := getOrder(tx, id)
	if err != nil {
		return nil, err
	}
	if err := reverseOrderEffects(tx, order); err != nil {
		return nil, err
	}
	if err := tx.Where("order_id = ?", order.Id).Delete(&models.OrderService{}).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("order_id = ?", order.Id).Delete(&models.OrderProduct{}).Error; err != nil {
		return nil, err
	}

	var car models.Car
	if err := forUpdate(tx).First(&car, "id = ?", in.CarId).Error; err != nil {
		return nil, notFoundOr(err, "car", in.CarId)
	}
	if len(in.Products) > 0 && in.ManagerId == nil {
		return nil, Invalid("manager is required when the order sells products")
	}
	if in.ManagerId != nil {
		manager, err := lockEmployee(tx, *in.ManagerId)
		if err != nil {
			return nil, err
		}
		if manager.Position != models.PositionManager {
			return nil, Invalid("employee %d is not a manager", manager.Id)
		}
	}

	order.CarId = car.Id
	order.ClientId = car.ClientId
	order.BranchId = car.BranchId
	order.Description = in.Description
	order.ManagerId = in.ManagerId
	order.Paid = in.Paid
	order.OverallTotal = decimal.Zero
	order.Total = decimal.Zero
	order.ProductTotal = decimal.Zero
	order.ServiceTotal = decimal.Zero
	if in.StartDate != nil {
		order.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		order.EndDate = in.EndDate
	}
	if in.PlanDate != nil {
		order.PlanDate = in.PlanDate
	}
	if err := tx.Omit(clause.Associations).Save(order).Error; err != nil {
		return nil, err
	}

	for i := range in.Services {
		if _, err := addServiceLine(tx, order, &in.Services[i]); err != nil {
			return nil, err
		}
	}
	for i := range in.Products {
		if _, err := addProductLine(tx, order, &in.Products[i]); err != nil {
			return nil, err
		}
	}

	order.Landing = order.Total.Sub(order.Paid)
	if err := saveOrderTotals(tx, order); err != nil {
		return nil, err
	}

	client, err := lockClient(tx, order.ClientId)
	if err != nil {
		return nil, err
	}
	client.Lending = client.Lending.Add(order.Landing)
	if err := tx.Omit(clause.Associations).Save(client).Error; err != nil {
		return nil, err
	}

	branch, err := lockBranch(tx, order.BranchId)
	if err != nil {
		return nil, err
	}
	branch.Balance = branch.Balance.Add(order.Paid)
	if err := tx.Save(branch).Error; err != nil {
		return nil, err
	}

	return order, snapshotMileage(tx, order, &car, in)
}

// DeleteOrder reverses every effect of the order and removes it with its lines.
func DeleteOrder(tx *gorm.DB, id uint) error {
	order, err := getOrder(tx, id)
	if err != nil {
		return err
	}
	if err := reverseOrderEffects(tx, order); err != nil {
		return err
	}
	if err := tx.Where("order_id = ?", order.Id).Delete(&models.OrderService{}).Error; err != nil {
		return err
	}
	if err := tx.Where("order_id = ?", order.Id).Delete(&models.OrderProduct{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Order{}, "id = ?", order.Id).Error
}
