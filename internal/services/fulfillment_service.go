package services

import (
	"errors"
	"fmt"
	"log"

	"production_control/internal/models"
	"production_control/internal/repository"

	"gorm.io/gorm"
)

// FulfillmentResult is what a fulfillment run reports back (and what a
// tracked job serializes).
type FulfillmentResult struct {
	Scenario          models.ScenarioTag `json:"scenario"`
	Status            models.OrderStatus `json:"status"`
	WarehouseOrderID  *uint              `json:"warehouse_order_id,omitempty"`
	ProductionOrderID *uint              `json:"production_order_id,omitempty"`
}

// FulfillmentService owns the scenario-specific side effects: inventory
// mutation, creation of downstream orders, and the parent order's status
// transition. Every execution path re-derives the scenario from current
// stock; the tag cached at confirmation time is advisory only.
type FulfillmentService interface {
	CreateCustomerOrder(order *models.CustomerOrder, items []models.OrderLineItem) error
	GetCustomerOrder(id uint) (*models.CustomerOrder, []models.OrderLineItem, error)
	ListCustomerOrders() ([]models.CustomerOrder, error)
	// ConfirmCustomerOrder classifies the order, caches the tag and moves
	// it to assigned. Execution happens separately.
	ConfirmCustomerOrder(id uint) (models.ScenarioTag, error)
	// CheckScenario re-derives the current tag without mutating state.
	CheckScenario(id uint) (models.ScenarioTag, error)
	ExecuteFulfillment(id uint) (*FulfillmentResult, error)
	CancelCustomerOrder(id uint) error
	// ConfirmWarehouseOrder is the join point: when the replenished
	// modules are all available it debits them and creates one
	// final-assembly order per distinct originating (product, quantity)
	// pair recovered from line-item provenance.
	ConfirmWarehouseOrder(id uint) (models.ScenarioTag, error)
	// DispatchProductionOrder expands the order down to control and
	// workstation orders.
	DispatchProductionOrder(id uint) error
}

type fulfillmentService struct {
	customerRepo    repository.CustomerOrderRepository
	warehouseRepo   repository.WarehouseOrderRepository
	productionRepo  repository.ProductionOrderRepository
	controlRepo     repository.ControlOrderRepository
	workstationRepo repository.WorkstationOrderRepository
	lineItemRepo    repository.LineItemRepository
	scenario        ScenarioService
	stock           StockService
	bom             BOMService
	webhooks        WebhookService
	scheduler       SchedulerService
	moduleStoreID   string
	goodsStoreID    string
}

func NewFulfillmentService(
	customerRepo repository.CustomerOrderRepository,
	warehouseRepo repository.WarehouseOrderRepository,
	productionRepo repository.ProductionOrderRepository,
	controlRepo repository.ControlOrderRepository,
	workstationRepo repository.WorkstationOrderRepository,
	lineItemRepo repository.LineItemRepository,
	scenario ScenarioService,
	stock StockService,
	bom BOMService,
	webhooks WebhookService,
	scheduler SchedulerService,
	moduleStoreID string,
	goodsStoreID string,
) FulfillmentService {
	return &fulfillmentService{
		customerRepo:    customerRepo,
		warehouseRepo:   warehouseRepo,
		productionRepo:  productionRepo,
		controlRepo:     controlRepo,
		workstationRepo: workstationRepo,
		lineItemRepo:    lineItemRepo,
		scenario:        scenario,
		stock:           stock,
		bom:             bom,
		webhooks:        webhooks,
		scheduler:       scheduler,
		moduleStoreID:   moduleStoreID,
		goodsStoreID:    goodsStoreID,
	}
}

// mapNotFound turns gorm's record-not-found into the service-level
// validation error.
func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrderNotFound
	}
	return err
}

func (s *fulfillmentService) CreateCustomerOrder(order *models.CustomerOrder, items []models.OrderLineItem) error {
	if len(items) == 0 {
		return ErrEmptyOrder
	}

	order.OrderNumber = models.NewOrderNumber("CO")
	if order.LocationID == "" {
		order.LocationID = s.goodsStoreID
	}
	order.Status = string(models.StatusPending)

	if err := s.customerRepo.Create(order); err != nil {
		return err
	}
	for i := range items {
		items[i].OrderType = string(models.TypeCustomerOrder)
		items[i].OrderID = order.ID
		if err := s.lineItemRepo.Create(&items[i]); err != nil {
			return err
		}
	}

	s.webhooks.Record(models.TypeCustomerOrder, order.ID, models.EventCreated,
		fmt.Sprintf("customer order %s created", order.OrderNumber))
	return nil
}

func (s *fulfillmentService) GetCustomerOrder(id uint) (*models.CustomerOrder, []models.OrderLineItem, error) {
	order, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, nil, mapNotFound(err)
	}
	items, err := s.lineItemRepo.GetForOrder(models.TypeCustomerOrder, id)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

func (s *fulfillmentService) ListCustomerOrders() ([]models.CustomerOrder, error) {
	return s.customerRepo.GetAll()
}

func (s *fulfillmentService) ConfirmCustomerOrder(id uint) (models.ScenarioTag, error) {
	order, items, err := s.GetCustomerOrder(id)
	if err != nil {
		return "", err
	}
	if models.OrderStatus(order.Status).IsTerminal() {
		return "", ErrOrderTerminal
	}

	tag, err := s.scenario.Classify(order.LocationID, items)
	if err != nil {
		return "", err
	}
	if err := s.customerRepo.SetScenario(id, tag); err != nil {
		return "", err
	}

	ok, err := s.customerRepo.TransitionStatus(id, models.StatusAssigned,
		models.StatusPending, models.StatusAssigned)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidTransition
	}

	s.scheduler.NotifyStatus(order.OrderNumber, models.StatusAssigned)
	s.webhooks.Record(models.TypeCustomerOrder, id, models.EventConfirmed,
		fmt.Sprintf("order %s confirmed, scenario %s", order.OrderNumber, tag))
	return tag, nil
}

func (s *fulfillmentService) CheckScenario(id uint) (models.ScenarioTag, error) {
	order, items, err := s.GetCustomerOrder(id)
	if err != nil {
		return "", err
	}
	return s.scenario.Classify(order.LocationID, items)
}

func (s *fulfillmentService) ExecuteFulfillment(id uint) (*FulfillmentResult, error) {
	order, items, err := s.GetCustomerOrder(id)
	if err != nil {
		return nil, err
	}
	if models.OrderStatus(order.Status).IsTerminal() {
		return nil, ErrOrderTerminal
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	// Only the unfulfilled remainder of each line takes part in this
	// run: lines delivered by an earlier attempt must never be debited
	// or re-ordered again.
	items = openLineItems(items)
	if len(items) == 0 {
		if _, err := s.customerRepo.TransitionStatus(order.ID, models.StatusCompleted,
			models.StatusPending, models.StatusAssigned, models.StatusInProgress); err != nil {
			return nil, err
		}
		s.scheduler.NotifyStatus(order.OrderNumber, models.StatusCompleted)
		s.webhooks.Record(models.TypeCustomerOrder, order.ID, models.EventCompleted,
			fmt.Sprintf("order %s fulfilled", order.OrderNumber))
		return &FulfillmentResult{Scenario: models.ScenarioDirectFulfillment, Status: models.StatusCompleted}, nil
	}

	// Stock may have drifted since confirmation, so the scenario is
	// always recomputed here; the cached tag is refreshed to match.
	tag, err := s.scenario.Classify(order.LocationID, items)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.SetScenario(id, tag); err != nil {
		return nil, err
	}

	switch tag {
	case models.ScenarioDirectFulfillment:
		return s.executeDirectFulfillment(order, items)
	case models.ScenarioWarehouseOrder:
		return s.executeWarehouseOrder(order, items)
	case models.ScenarioPartialFulfillment:
		return s.executePartialFulfillment(order, items)
	case models.ScenarioDirectProduction:
		return s.executeDirectProduction(order, items)
	}
	return nil, fmt.Errorf("unknown scenario %q", tag)
}

// executeDirectFulfillment debits every line item from the order's
// location. Any failed debit cancels the whole order; debits already
// applied are not rolled back but are flagged as a secondary failure on
// the order for manual reconciliation.
func (s *fulfillmentService) executeDirectFulfillment(order *models.CustomerOrder, items []models.OrderLineItem) (*FulfillmentResult, error) {
	reason := fmt.Sprintf("direct fulfillment of %s", order.OrderNumber)
	for i, item := range items {
		if !s.stock.Debit(order.LocationID, item.ItemID, item.Quantity, reason) {
			if _, err := s.customerRepo.TransitionStatus(order.ID, models.StatusCancelled,
				models.StatusPending, models.StatusAssigned, models.StatusInProgress, models.StatusHalted); err != nil {
				return nil, err
			}
			s.scheduler.NotifyStatus(order.OrderNumber, models.StatusCancelled)
			s.webhooks.Record(models.TypeCustomerOrder, order.ID, models.EventCancelled,
				fmt.Sprintf("order %s cancelled: debit of item %d failed", order.OrderNumber, item.ItemID))
			if i > 0 {
				note := fmt.Sprintf("%d line items debited before cancellation were not restocked", i)
				if err := s.customerRepo.SetSecondaryFailure(order.ID, note); err != nil {
					log.Printf("failed to flag secondary failure on customer order %d: %v", order.ID, err)
				}
				s.webhooks.Record(models.TypeCustomerOrder, order.ID, models.EventSecondaryFailure, note)
			}
			return &FulfillmentResult{Scenario: models.ScenarioDirectFulfillment, Status: models.StatusCancelled}, nil
		}
		if err := s.lineItemRepo.AddFulfilled(item.ID, item.Quantity); err != nil {
			return nil, err
		}
	}

	if _, err := s.customerRepo.TransitionStatus(order.ID, models.StatusCompleted,
		models.StatusPending, models.StatusAssigned, models.StatusInProgress); err != nil {
		return nil, err
	}
	s.scheduler.NotifyStatus(order.OrderNumber, models.StatusCompleted)
	s.webhooks.Record(models.TypeCustomerOrder, order.ID, models.EventCompleted,
		fmt.Sprintf("order %s fulfilled from stock", order.OrderNumber))
	return &FulfillmentResult{Scenario: models.ScenarioDirectFulfillment, Status: models.StatusCompleted}, nil
}

// resolveModuleItems expands product line items into module line items
// carrying provenance back to the originating product. Lines that are
// already modules pass through unchanged; quantities for repeated
// modules of the same product are summed.
func (s *fulfillmentService) resolveModuleItems(items []models.OrderLineItem) ([]models.OrderLineItem, error) {
	var resolved []models.OrderLineItem
	for _, item := range items {
		if item.ItemCategory != string(models.CategoryProduct) {
			resolved = append(resolved, models.OrderLineItem{
				ItemCategory:     item.ItemCategory,
				ItemID:           item.ItemID,
				Quantity:         item.Quantity,
				SourceProductID:  item.SourceProductID,
				SourceProductQty: item.SourceProductQty,
			})
			continue
		}

		modules, err := s.bom.ResolveModulesForProduct(item.ItemID, item.Quantity)
		if err != nil {
			return nil, err
		}
		productID := item.ItemID
		for moduleID, qty := range modules {
			resolved = append(resolved, models.OrderLineItem{
				ItemCategory:     string(models.CategoryModule),
				ItemID:           moduleID,
				Quantity:         qty,
				SourceProductID:  &productID,
				SourceProductQty: item.Quantity,
			})
		}
	}
	return resolved, nil
}

// executeWarehouseOrder creates exactly one child warehouse order for
// the aggregated module requirements. No production order is created:
// replenishment is attempted first, manually, at the module store.
func (s *fulfillmentService) executeWarehouseOrder(order *models.CustomerOrder, items []models.OrderLineItem) (*FulfillmentResult, error) {
	moduleItems, err := s.resolveModuleItems(items)
	if err != nil {
		// BOM failure aborts before anything was created; the order keeps
		// its prior status so the caller can retry once master data is
		// fixed.
		return nil, err
	}

	warehouseOrder := &models.WarehouseOrder{
		OrderNumber:     models.NewOrderNumber("WO"),
		CustomerOrderID: &order.ID,
		LocationID:      s.moduleStoreID,
		Status:          string(models.StatusPending),
	}
	if err := s.warehouseRepo.CreateWithItems(warehouseOrder, moduleItems); err != nil {
		return nil, err
	}

	if _, err := s.customerRepo.TransitionStatus(order.ID, models.StatusInProgress,
		models.StatusPending, models.StatusAssigned); err != nil {
		return nil, err
	}
	s.scheduler.NotifyStatus(order.OrderNumber, models.StatusInProgress)
	s.webhooks.Record(models.TypeWarehouseOrder, warehouseOrder.ID, models.EventCreated,
		fmt.Sprintf("warehouse order %s created for %s", warehouseOrder.OrderNumber, order.OrderNumber))
	s.webhooks.Record(models.TypeCustomerOrder, order.ID, models.EventStatusChanged,
		fmt.Sprintf("order %s waiting for warehouse replenishment", order.OrderNumber))

	return &FulfillmentResult{
		Scenario:         models.ScenarioWarehouseOrder,
		Status:           models.StatusInProgress,
		WarehouseOrderID: &warehouseOrder.ID,
	}, nil
}

// executePartialFulfillment debits what is available and opens both a
// warehouse order and a production order for the shortfall. Partial
// availability signals urgency, so production is triggered immediately
// here, unlike the pure warehouse-order scenario. The shortfall and its
// composition are computed before any debit so a missing BOM aborts
// with inventory untouched.
func (s *fulfillmentService) executePartialFulfillment(order *models.CustomerOrder, items []models.OrderLineItem) (*FulfillmentResult, error) {
	var available, shortfall []models.OrderLineItem
	for _, item := range items {
		if s.stock.CheckStock(order.LocationID, item.ItemID, item.Quantity) {
			available = append(available, item)
		} else {
			shortfall = append(shortfall, item)
		}
	}

	var moduleItems []models.OrderLineItem
	if len(shortfall) > 0 {
		var err error
		moduleItems, err = s.resolveModuleItems(shortfall)
		if err != nil {
			return nil, err
		}
	}

	reason := fmt.Sprintf("partial fulfillment of %s", order.OrderNumber)
	drifted := 0
	for _, item := range available {
		if !s.stock.Debit(order.LocationID, item.ItemID, item.Quantity, reason) {
			// Stock drifted between check and debit. The line stays open
			// for a later run instead of joining a replenishment round
			// whose composition is already resolved.
			drifted++
			s.webhooks.Record(models.TypeCustomerOrder, order.ID, models.EventStatusChanged,
				fmt.Sprintf("order %s: debit of item %d failed, line left open", order.OrderNumber, item.ItemID))
			continue
		}
		if err := s.lineItemRepo.AddFulfilled(item.ID, item.Quantity); err != nil {
			return nil, err
		}
	}

	if len(shortfall) == 0 {
		if drifted > 0 {
			if _, err := s.customerRepo.TransitionStatus(order.ID, models.StatusInProgress,
				models.StatusPending, models.StatusAssigned); err != nil {
				return nil, err
			}
			s.scheduler.NotifyStatus(order.OrderNumber, models.StatusInProgress)
			return &FulfillmentResult{Scenario: models.ScenarioPartialFulfillment, Status: models.StatusInProgress}, nil
		}
		// Stock drifted upward since classification and everything was
		// debited after all.
		if _, err := s.customerRepo.TransitionStatus(order.ID, models.StatusCompleted,
			models.StatusPending, models.StatusAssigned, models.StatusInProgress); err != nil {
			return nil, err
		}
		s.scheduler.NotifyStatus(order.OrderNumber, models.StatusCompleted)
		s.webhooks.Record(models.TypeCustomerOrder, order.ID, models.EventCompleted,
			fmt.Sprintf("order %s fulfilled from stock", order.OrderNumber))
		return &FulfillmentResult{Scenario: models.ScenarioPartialFulfillment, Status: models.StatusCompleted}, nil
	}

	warehouseOrder := &models.WarehouseOrder{
		OrderNumber:     models.NewOrderNumber("WO"),
		CustomerOrderID: &order.ID,
		LocationID:      s.moduleStoreID,
		Status:          string(models.StatusPending),
	}
	if err := s.warehouseRepo.CreateWithItems(warehouseOrder, copyLineItems(moduleItems)); err != nil {
		return nil, err
	}

	productionOrder := &models.ProductionOrder{
		OrderNumber:     models.NewOrderNumber("PO"),
		CustomerOrderID: &order.ID,
		Status:          string(models.StatusPending),
	}
	if err := s.productionRepo.CreateWithItems(productionOrder, copyLineItems(moduleItems)); err != nil {
		return nil, err
	}

	if _, err := s.customerRepo.TransitionStatus(order.ID, models.StatusInProgress,
		models.StatusPending, models.StatusAssigned); err != nil {
		return nil, err
	}
	s.scheduler.NotifyStatus(order.OrderNumber, models.StatusInProgress)
	s.webhooks.Record(models.TypeWarehouseOrder, warehouseOrder.ID, models.EventCreated,
		fmt.Sprintf("warehouse order %s created for shortfall of %s", warehouseOrder.OrderNumber, order.OrderNumber))
	s.webhooks.Record(models.TypeProductionOrder, productionOrder.ID, models.EventCreated,
		fmt.Sprintf("production order %s auto-triggered for shortfall of %s", productionOrder.OrderNumber, order.OrderNumber))
	s.webhooks.Record(models.TypeCustomerOrder, order.ID, models.EventStatusChanged,
		fmt.Sprintf("order %s partially fulfilled, %d items short", order.OrderNumber, len(shortfall)))

	return &FulfillmentResult{
		Scenario:          models.ScenarioPartialFulfillment,
		Status:            models.StatusInProgress,
		WarehouseOrderID:  &warehouseOrder.ID,
		ProductionOrderID: &productionOrder.ID,
	}, nil
}

// executeDirectProduction skips warehouse replenishment entirely and
// hands the full line-item set to production.
func (s *fulfillmentService) executeDirectProduction(order *models.CustomerOrder, items []models.OrderLineItem) (*FulfillmentResult, error) {
	productionOrder := &models.ProductionOrder{
		OrderNumber:     models.NewOrderNumber("PO"),
		CustomerOrderID: &order.ID,
		Status:          string(models.StatusPending),
	}
	if err := s.productionRepo.CreateWithItems(productionOrder, copyLineItems(items)); err != nil {
		return nil, err
	}

	if _, err := s.customerRepo.TransitionStatus(order.ID, models.StatusInProgress,
		models.StatusPending, models.StatusAssigned); err != nil {
		return nil, err
	}
	s.scheduler.NotifyStatus(order.OrderNumber, models.StatusInProgress)
	s.webhooks.Record(models.TypeProductionOrder, productionOrder.ID, models.EventCreated,
		fmt.Sprintf("production order %s created for %s", productionOrder.OrderNumber, order.OrderNumber))
	s.webhooks.Record(models.TypeCustomerOrder, order.ID, models.EventStatusChanged,
		fmt.Sprintf("order %s sent to production", order.OrderNumber))

	return &FulfillmentResult{
		Scenario:          models.ScenarioDirectProduction,
		Status:            models.StatusInProgress,
		ProductionOrderID: &productionOrder.ID,
	}, nil
}

func (s *fulfillmentService) CancelCustomerOrder(id uint) error {
	order, err := s.customerRepo.GetByID(id)
	if err != nil {
		return mapNotFound(err)
	}
	ok, err := s.customerRepo.TransitionStatus(id, models.StatusCancelled,
		models.StatusPending, models.StatusAssigned, models.StatusInProgress, models.StatusHalted)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOrderTerminal
	}
	s.scheduler.NotifyStatus(order.OrderNumber, models.StatusCancelled)
	s.webhooks.Record(models.TypeCustomerOrder, id, models.EventCancelled,
		fmt.Sprintf("order %s cancelled", order.OrderNumber))
	return nil
}

func (s *fulfillmentService) ConfirmWarehouseOrder(id uint) (models.ScenarioTag, error) {
	order, err := s.warehouseRepo.GetByID(id)
	if err != nil {
		return "", mapNotFound(err)
	}
	if models.OrderStatus(order.Status).IsTerminal() {
		return "", ErrOrderTerminal
	}
	items, err := s.lineItemRepo.GetForOrder(models.TypeWarehouseOrder, id)
	if err != nil {
		return "", err
	}

	tag, err := s.scenario.Classify(order.LocationID, items)
	if err != nil {
		return "", err
	}
	if tag != models.ScenarioDirectFulfillment {
		// Module stock is short. Replenishment stays a manual decision at
		// this level: an operator dispatches production explicitly.
		s.webhooks.Record(models.TypeWarehouseOrder, id, models.EventClassified,
			fmt.Sprintf("warehouse order %s modules not available, scenario %s", order.OrderNumber, tag))
		return tag, nil
	}

	reason := fmt.Sprintf("assembly for warehouse order %s", order.OrderNumber)
	for _, item := range items {
		if !s.stock.Debit(order.LocationID, item.ItemID, item.Quantity, reason) {
			// Stock drifted between check and debit; treat the module set
			// as unavailable and leave the order for a retry.
			s.webhooks.Record(models.TypeWarehouseOrder, id, models.EventClassified,
				fmt.Sprintf("warehouse order %s debit of module %d failed", order.OrderNumber, item.ItemID))
			return models.ScenarioWarehouseOrder, nil
		}
		if err := s.lineItemRepo.AddFulfilled(item.ID, item.Quantity); err != nil {
			return "", err
		}
	}

	if err := s.createFinalAssemblyOrders(order, items); err != nil {
		return "", err
	}

	if _, err := s.warehouseRepo.TransitionStatus(id, models.StatusInProgress,
		models.StatusPending, models.StatusAssigned); err != nil {
		return "", err
	}
	s.scheduler.NotifyStatus(order.OrderNumber, models.StatusInProgress)
	s.webhooks.Record(models.TypeWarehouseOrder, id, models.EventConfirmed,
		fmt.Sprintf("warehouse order %s confirmed, final assembly started", order.OrderNumber))
	return tag, nil
}

// createFinalAssemblyOrders re-attaches module replenishment to the
// products the customer actually ordered: one assembly control order per
// distinct (product, quantity) pair found in the line-item provenance,
// each with a single final-assembly workstation order.
func (s *fulfillmentService) createFinalAssemblyOrders(order *models.WarehouseOrder, items []models.OrderLineItem) error {
	type pair struct {
		productID uint
		qty       int
	}
	seen := make(map[pair]bool)

	for _, item := range items {
		if item.SourceProductID == nil {
			continue
		}
		p := pair{productID: *item.SourceProductID, qty: item.SourceProductQty}
		if seen[p] {
			continue
		}
		seen[p] = true

		controlOrder := &models.ControlOrder{
			OrderNumber:      models.NewOrderNumber("FA"),
			Variant:          string(models.ControlAssembly),
			WarehouseOrderID: &order.ID,
			ItemCategory:     string(models.CategoryProduct),
			ItemID:           p.productID,
			Quantity:         p.qty,
			Status:           string(models.StatusPending),
		}
		if err := s.controlRepo.Create(controlOrder); err != nil {
			return err
		}

		workstationOrder := &models.WorkstationOrder{
			OrderNumber:    models.NewOrderNumber("WS"),
			Kind:           string(models.StationFinalAssembly),
			ControlOrderID: &controlOrder.ID,
			ItemCategory:   string(models.CategoryProduct),
			ItemID:         p.productID,
			Quantity:       p.qty,
			Status:         string(models.StatusPending),
		}
		if err := s.workstationRepo.Create(workstationOrder); err != nil {
			return err
		}

		s.webhooks.Record(models.TypeControlOrder, controlOrder.ID, models.EventCreated,
			fmt.Sprintf("final assembly order %s created for %s x%d",
				controlOrder.OrderNumber, s.bom.ItemName(models.CategoryProduct, p.productID), p.qty))
	}
	return nil
}

func (s *fulfillmentService) DispatchProductionOrder(id uint) error {
	order, err := s.productionRepo.GetByID(id)
	if err != nil {
		return mapNotFound(err)
	}
	if models.OrderStatus(order.Status).IsTerminal() {
		return ErrOrderTerminal
	}
	items, err := s.lineItemRepo.GetForOrder(models.TypeProductionOrder, id)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return ErrEmptyOrder
	}

	// Resolve the whole BOM before creating anything: a missing
	// composition must abort the dispatch with the order untouched.
	moduleItems, err := s.resolveModuleItems(items)
	if err != nil {
		return err
	}
	partsPerItem := make([]map[uint]int, len(moduleItems))
	for i, moduleItem := range moduleItems {
		parts, err := s.bom.ResolvePartsForModule(moduleItem.ItemID, moduleItem.Quantity)
		if err != nil {
			return err
		}
		partsPerItem[i] = parts
	}

	for i, moduleItem := range moduleItems {
		controlOrder := &models.ControlOrder{
			OrderNumber:       models.NewOrderNumber("CTRL"),
			Variant:           string(models.ControlProduction),
			ProductionOrderID: &order.ID,
			ItemCategory:      string(models.CategoryModule),
			ItemID:            moduleItem.ItemID,
			Quantity:          moduleItem.Quantity,
			Status:            string(models.StatusPending),
		}
		if err := s.controlRepo.Create(controlOrder); err != nil {
			return err
		}

		for partID, qty := range partsPerItem[i] {
			partItem := &models.OrderLineItem{
				OrderType:    string(models.TypeControlOrder),
				OrderID:      controlOrder.ID,
				ItemCategory: string(models.CategoryPart),
				ItemID:       partID,
				Quantity:     qty,
			}
			if err := s.lineItemRepo.Create(partItem); err != nil {
				return err
			}
		}

		for _, stage := range models.ProductionStages {
			workstationOrder := &models.WorkstationOrder{
				OrderNumber:    models.NewOrderNumber("WS"),
				Kind:           string(stage),
				ControlOrderID: &controlOrder.ID,
				ItemCategory:   string(models.CategoryModule),
				ItemID:         moduleItem.ItemID,
				Quantity:       moduleItem.Quantity,
				Status:         string(models.StatusPending),
			}
			if err := s.workstationRepo.Create(workstationOrder); err != nil {
				return err
			}
		}

		s.webhooks.Record(models.TypeControlOrder, controlOrder.ID, models.EventCreated,
			fmt.Sprintf("control order %s created for %s x%d",
				controlOrder.OrderNumber, s.bom.ItemName(models.CategoryModule, moduleItem.ItemID), moduleItem.Quantity))
	}

	if _, err := s.productionRepo.TransitionStatus(id, models.StatusInProgress,
		models.StatusPending, models.StatusAssigned); err != nil {
		return err
	}
	s.scheduler.NotifyStatus(order.OrderNumber, models.StatusInProgress)
	s.webhooks.Record(models.TypeProductionOrder, id, models.EventStatusChanged,
		fmt.Sprintf("production order %s dispatched to workstations", order.OrderNumber))
	return nil
}

// openLineItems narrows an order's lines to their unfulfilled
// remainder, dropping lines that are already fully delivered.
func openLineItems(items []models.OrderLineItem) []models.OrderLineItem {
	var open []models.OrderLineItem
	for _, item := range items {
		remaining := item.Quantity - item.FulfilledQuantity
		if remaining <= 0 {
			continue
		}
		item.Quantity = remaining
		item.FulfilledQuantity = 0
		open = append(open, item)
	}
	return open
}

func copyLineItems(items []models.OrderLineItem) []models.OrderLineItem {
	copied := make([]models.OrderLineItem, len(items))
	for i, item := range items {
		copied[i] = models.OrderLineItem{
			ItemCategory:     item.ItemCategory,
			ItemID:           item.ItemID,
			Quantity:         item.Quantity,
			SourceProductID:  item.SourceProductID,
			SourceProductQty: item.SourceProductQty,
		}
	}
	return copied
}
