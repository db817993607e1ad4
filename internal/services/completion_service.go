package services

import (
	"fmt"
	"log"

	"production_control/internal/models"
	"production_control/internal/repository"
)

// CompletionService handles workstation-level completions and cascades
// them upward through the order hierarchy. Each level's check-then-update
// is its own guarded statement; the cascade as a whole is deliberately
// not atomic, which is safe because completion counts are monotonic and
// the guarded transition fires at most once per parent.
type CompletionService interface {
	StartWorkstationOrder(id uint) error
	// CompleteWorkstationOrder runs the station's terminal action (the
	// downstream inventory credit) and then recounts and cascades parent
	// completion up to the root customer order.
	CompleteWorkstationOrder(id uint) error
	// Transition applies a halt/resume/cancel style status change to any
	// order level, validating it against the shared state machine.
	Transition(orderType models.OrderType, id uint, to models.OrderStatus) error
}

type completionService struct {
	customerRepo    repository.CustomerOrderRepository
	warehouseRepo   repository.WarehouseOrderRepository
	productionRepo  repository.ProductionOrderRepository
	controlRepo     repository.ControlOrderRepository
	workstationRepo repository.WorkstationOrderRepository
	stock           StockService
	webhooks        WebhookService
	scheduler       SchedulerService
	moduleStoreID   string
	goodsStoreID    string
}

func NewCompletionService(
	customerRepo repository.CustomerOrderRepository,
	warehouseRepo repository.WarehouseOrderRepository,
	productionRepo repository.ProductionOrderRepository,
	controlRepo repository.ControlOrderRepository,
	workstationRepo repository.WorkstationOrderRepository,
	stock StockService,
	webhooks WebhookService,
	scheduler SchedulerService,
	moduleStoreID string,
	goodsStoreID string,
) CompletionService {
	return &completionService{
		customerRepo:    customerRepo,
		warehouseRepo:   warehouseRepo,
		productionRepo:  productionRepo,
		controlRepo:     controlRepo,
		workstationRepo: workstationRepo,
		stock:           stock,
		webhooks:        webhooks,
		scheduler:       scheduler,
		moduleStoreID:   moduleStoreID,
		goodsStoreID:    goodsStoreID,
	}
}

func (s *completionService) StartWorkstationOrder(id uint) error {
	return s.Transition(models.TypeWorkstationOrder, id, models.StatusInProgress)
}

func (s *completionService) CompleteWorkstationOrder(id uint) error {
	order, err := s.workstationRepo.GetByID(id)
	if err != nil {
		return mapNotFound(err)
	}

	ok, err := s.workstationRepo.TransitionStatus(id, models.StatusCompleted, models.StatusInProgress)
	if err != nil {
		return err
	}
	if !ok {
		if models.OrderStatus(order.Status).IsTerminal() {
			return ErrOrderTerminal
		}
		return ErrInvalidTransition
	}

	// The status transition is durable at this point. A failed credit is
	// a secondary failure: recorded on the order, never rolled back into
	// the completion, so inventory and status can drift here.
	location := s.moduleStoreID
	if order.Kind == string(models.StationFinalAssembly) {
		location = s.goodsStoreID
	}
	reason := fmt.Sprintf("output of workstation order %s", order.OrderNumber)
	if !s.stock.Credit(location, order.ItemID, order.Quantity, reason) {
		note := fmt.Sprintf("credit of %d x item %d at %s failed", order.Quantity, order.ItemID, location)
		if err := s.workstationRepo.SetSecondaryFailure(id, note); err != nil {
			log.Printf("failed to flag secondary failure on workstation order %d: %v", id, err)
		}
		s.webhooks.Record(models.TypeWorkstationOrder, id, models.EventSecondaryFailure, note)
	}

	s.scheduler.NotifyStatus(order.OrderNumber, models.StatusCompleted)
	s.webhooks.Record(models.TypeWorkstationOrder, id, models.EventCompleted,
		fmt.Sprintf("workstation order %s completed", order.OrderNumber))

	// Propagation failures never reach the operator who completed the
	// leaf; the leaf's own completion already succeeded.
	if order.ControlOrderID != nil {
		s.checkControlOrder(*order.ControlOrderID)
	} else if order.WarehouseOrderID != nil {
		s.checkWarehouseOrder(*order.WarehouseOrderID)
	}
	return nil
}

// completeParent applies the guarded COMPLETED transition and reports
// whether this call was the one that advanced the parent. Re-invocation
// on an already-completed parent is a no-op.
func completeParent(transition func(id uint, to models.OrderStatus, from ...models.OrderStatus) (bool, error), id uint) bool {
	ok, err := transition(id, models.StatusCompleted,
		models.StatusPending, models.StatusAssigned, models.StatusInProgress, models.StatusHalted)
	if err != nil {
		log.Printf("completion cascade: transition of order %d failed: %v", id, err)
		return false
	}
	return ok
}

func (s *completionService) checkControlOrder(id uint) {
	total, completed, err := s.workstationRepo.CountByControlOrder(id)
	if err != nil {
		log.Printf("completion cascade: counting workstation orders of control order %d failed: %v", id, err)
		return
	}
	if total == 0 || completed != total {
		return
	}
	if !completeParent(s.controlRepo.TransitionStatus, id) {
		return
	}

	order, err := s.controlRepo.GetByID(id)
	if err != nil {
		log.Printf("completion cascade: control order %d lookup failed: %v", id, err)
		return
	}
	s.scheduler.NotifyStatus(order.OrderNumber, models.StatusCompleted)
	s.webhooks.Record(models.TypeControlOrder, id, models.EventCompleted,
		fmt.Sprintf("control order %s completed", order.OrderNumber))

	if order.ProductionOrderID != nil {
		s.checkProductionOrder(*order.ProductionOrderID)
	} else if order.WarehouseOrderID != nil {
		s.checkWarehouseOrder(*order.WarehouseOrderID)
	}
}

func (s *completionService) checkProductionOrder(id uint) {
	total, completed, err := s.controlRepo.CountByProductionOrder(id)
	if err != nil {
		log.Printf("completion cascade: counting control orders of production order %d failed: %v", id, err)
		return
	}
	if total == 0 || completed != total {
		return
	}
	if !completeParent(s.productionRepo.TransitionStatus, id) {
		return
	}

	order, err := s.productionRepo.GetByID(id)
	if err != nil {
		log.Printf("completion cascade: production order %d lookup failed: %v", id, err)
		return
	}
	s.scheduler.NotifyStatus(order.OrderNumber, models.StatusCompleted)
	s.webhooks.Record(models.TypeProductionOrder, id, models.EventCompleted,
		fmt.Sprintf("production order %s completed", order.OrderNumber))

	if order.CustomerOrderID != nil {
		s.checkCustomerOrder(*order.CustomerOrderID)
	} else if order.WarehouseOrderID != nil {
		s.checkWarehouseOrder(*order.WarehouseOrderID)
	}
}

// checkWarehouseOrder counts children across all three tables a
// warehouse order can spawn into: assembly control orders, production
// orders and direct workstation orders.
func (s *completionService) checkWarehouseOrder(id uint) {
	ctrlTotal, ctrlDone, err := s.controlRepo.CountByWarehouseOrder(id)
	if err != nil {
		log.Printf("completion cascade: counting control orders of warehouse order %d failed: %v", id, err)
		return
	}
	prodTotal, prodDone, err := s.productionRepo.CountByWarehouseOrder(id)
	if err != nil {
		log.Printf("completion cascade: counting production orders of warehouse order %d failed: %v", id, err)
		return
	}
	wsTotal, wsDone, err := s.workstationRepo.CountByWarehouseOrder(id)
	if err != nil {
		log.Printf("completion cascade: counting workstation orders of warehouse order %d failed: %v", id, err)
		return
	}

	total := ctrlTotal + prodTotal + wsTotal
	completed := ctrlDone + prodDone + wsDone
	if total == 0 || completed != total {
		return
	}
	if !completeParent(s.warehouseRepo.TransitionStatus, id) {
		return
	}

	order, err := s.warehouseRepo.GetByID(id)
	if err != nil {
		log.Printf("completion cascade: warehouse order %d lookup failed: %v", id, err)
		return
	}
	s.scheduler.NotifyStatus(order.OrderNumber, models.StatusCompleted)
	s.webhooks.Record(models.TypeWarehouseOrder, id, models.EventCompleted,
		fmt.Sprintf("warehouse order %s completed", order.OrderNumber))

	if order.CustomerOrderID != nil {
		s.checkCustomerOrder(*order.CustomerOrderID)
	}
}

func (s *completionService) checkCustomerOrder(id uint) {
	whTotal, whDone, err := s.warehouseRepo.CountByCustomerOrder(id)
	if err != nil {
		log.Printf("completion cascade: counting warehouse orders of customer order %d failed: %v", id, err)
		return
	}
	prodTotal, prodDone, err := s.productionRepo.CountByCustomerOrder(id)
	if err != nil {
		log.Printf("completion cascade: counting production orders of customer order %d failed: %v", id, err)
		return
	}

	total := whTotal + prodTotal
	completed := whDone + prodDone
	if total == 0 || completed != total {
		return
	}
	if !completeParent(s.customerRepo.TransitionStatus, id) {
		return
	}

	order, err := s.customerRepo.GetByID(id)
	if err != nil {
		log.Printf("completion cascade: customer order %d lookup failed: %v", id, err)
		return
	}
	s.scheduler.NotifyStatus(order.OrderNumber, models.StatusCompleted)
	s.webhooks.Record(models.TypeCustomerOrder, id, models.EventCompleted,
		fmt.Sprintf("customer order %s completed", order.OrderNumber))
}

func (s *completionService) Transition(orderType models.OrderType, id uint, to models.OrderStatus) error {
	// Only the manual transitions go through here; completion has its own
	// path with the inventory side effect.
	if to == models.StatusCompleted {
		return ErrInvalidTransition
	}

	var from []models.OrderStatus
	for _, status := range []models.OrderStatus{
		models.StatusPending, models.StatusAssigned, models.StatusInProgress, models.StatusHalted,
	} {
		if models.CanTransition(status, to) {
			from = append(from, status)
		}
	}
	if len(from) == 0 {
		return ErrInvalidTransition
	}

	orderNumber, transition, err := s.forType(orderType, id)
	if err != nil {
		return err
	}

	ok, err := transition(id, to, from...)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidTransition
	}

	s.scheduler.NotifyStatus(orderNumber, to)
	s.webhooks.Record(orderType, id, models.EventStatusChanged,
		fmt.Sprintf("order %s moved to %s", orderNumber, to))
	return nil
}

func (s *completionService) forType(orderType models.OrderType, id uint) (string, func(uint, models.OrderStatus, ...models.OrderStatus) (bool, error), error) {
	switch orderType {
	case models.TypeCustomerOrder:
		order, err := s.customerRepo.GetByID(id)
		if err != nil {
			return "", nil, mapNotFound(err)
		}
		return order.OrderNumber, s.customerRepo.TransitionStatus, nil
	case models.TypeWarehouseOrder:
		order, err := s.warehouseRepo.GetByID(id)
		if err != nil {
			return "", nil, mapNotFound(err)
		}
		return order.OrderNumber, s.warehouseRepo.TransitionStatus, nil
	case models.TypeProductionOrder:
		order, err := s.productionRepo.GetByID(id)
		if err != nil {
			return "", nil, mapNotFound(err)
		}
		return order.OrderNumber, s.productionRepo.TransitionStatus, nil
	case models.TypeControlOrder:
		order, err := s.controlRepo.GetByID(id)
		if err != nil {
			return "", nil, mapNotFound(err)
		}
		return order.OrderNumber, s.controlRepo.TransitionStatus, nil
	case models.TypeWorkstationOrder:
		order, err := s.workstationRepo.GetByID(id)
		if err != nil {
			return "", nil, mapNotFound(err)
		}
		return order.OrderNumber, s.workstationRepo.TransitionStatus, nil
	}
	return "", nil, fmt.Errorf("unknown order type %q", orderType)
}
